package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Sign in with a username and password, or with a Google ID token.
The session is stored locally and reused by later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		googleToken, _ := cmd.Flags().GetString("google-token")

		controller := openController(loadConfig())
		defer controller.Close()
		ctx := context.Background()

		if googleToken != "" {
			user, err := controller.LoginGoogle(ctx, googleToken)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("login failed: %w", err))
			}
			fmt.Printf("✅ Signed in as %s\n", displayName(user.Username, user.Email))
			return
		}

		if username == "" {
			username = prompt("Username: ")
		}
		if password == "" {
			password = os.Getenv("FITGUIDE_PASSWORD")
		}
		if password == "" {
			password = prompt("Password: ")
		}

		user, err := controller.Login(ctx, username, password)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("login failed: %w", err))
		}
		fmt.Printf("✅ Signed in as %s\n", displayName(user.Username, user.Email))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		if err := controller.Logout(); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("👋 Signed out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		user, err := controller.WhoAmI(context.Background())
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("%s (id %s)\n", displayName(user.Username, user.Email), user.ID)
		if user.FullName != "" {
			fmt.Println(user.FullName)
		}
	},
}

func prompt(label string) string {
	fmt.Print(label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func displayName(username, email string) string {
	if username != "" {
		return username
	}
	return email
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username")
	loginCmd.Flags().StringP("password", "p", "", "Password (default FITGUIDE_PASSWORD or prompt)")
	loginCmd.Flags().String("google-token", "", "Google ID token")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
