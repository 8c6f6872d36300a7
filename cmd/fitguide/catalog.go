package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog maintenance",
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report layer conflicts and index entries without records",
	Long: `Load the catalog and report:
  - exercises defined in both the primary and alternatives layers with differing fields
  - index entries naming exercises that have no catalog record

With --strict the command exits non-zero when anything is reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, cfg, _ := openCatalog()

		source := "built-in catalog"
		if cfg.CatalogDir != "" {
			source = cfg.CatalogDir
		}
		fmt.Printf("🔎 Linting %s\n\n", source)

		conflicts := c.Conflicts()
		for _, cf := range conflicts {
			fmt.Printf("⚠️  conflict: %s\n", cf)
		}
		issues := c.Validate()
		for _, is := range issues {
			fmt.Printf("⚠️  missing record: %s\n", is)
		}

		if len(conflicts)+len(issues) == 0 {
			fmt.Println("✅ No problems found")
			return
		}
		fmt.Printf("\n%d conflicts, %d missing records\n", len(conflicts), len(issues))
		if strict, _ := cmd.Flags().GetBool("strict"); !strict {
			return
		}
		cobra.CheckErr(fmt.Errorf("%d conflicts, %d missing records", len(conflicts), len(issues)))
	},
}

func init() {
	catalogLintCmd.Flags().Bool("strict", false, "Fail when problems are found")

	catalogCmd.AddCommand(catalogLintCmd)
	rootCmd.AddCommand(catalogCmd)
}
