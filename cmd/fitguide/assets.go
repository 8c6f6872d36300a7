package cmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/services"
	"github.com/spf13/cobra"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Exercise media",
}

var assetsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror exercise media from the remote asset host",
	Long: `Download every declared exercise image from --asset-remote (or
FITGUIDE_ASSET_REMOTE) into the local asset directory. Each image walks the
fallback paths until one exists; files already present are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.AssetRemote == "" {
			cobra.CheckErr(fmt.Errorf("no asset host configured, set --asset-remote or FITGUIDE_ASSET_REMOTE"))
		}
		controller := openController(cfg)
		defer controller.Close()

		items := services.SyncItems(controller.Catalog())
		if only, _ := cmd.Flags().GetString("gender"); only != "" {
			g, err := catalog.ParseGender(only)
			if err != nil {
				cobra.CheckErr(err)
			}
			items = filterItems(items, g)
		}
		fmt.Printf("📥 Syncing %d files into %s\n", len(items), cfg.AssetDir)

		syncer := controller.Syncer()
		verbose, _ := cmd.Flags().GetBool("verbose")

		// Listen for progress
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range syncer.Progress() {
				switch p.Status {
				case services.SyncComplete:
					fmt.Printf("  [%d/%d] %s (%s)\n", p.Current, p.Total, p.Exercise, p.Gender)
				case services.SyncMissing:
					fmt.Printf("  [%d/%d] %s (%s): not found after %d attempts\n", p.Current, p.Total, p.Exercise, p.Gender, p.Attempts)
				case services.SyncError:
					fmt.Printf("  [%d/%d] %s (%s): %s\n", p.Current, p.Total, p.Exercise, p.Gender, p.Error)
				default:
					if verbose {
						fmt.Printf("  [%d/%d] %s (%s): %s\n", p.Current, p.Total, p.Exercise, p.Gender, p.Status)
					}
				}
			}
		}()

		ctx, stop := signalContext()
		defer stop()

		res, err := syncer.Sync(ctx, items)
		syncer.Close()
		wg.Wait()

		fmt.Printf("\n✅ Downloaded %d · present %d · missing %d · failed %d\n",
			res.Downloaded, res.Skipped, res.Missing, res.Failed)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("sync interrupted: %w", err))
		}
		if res.Failed > 0 {
			cobra.CheckErr(fmt.Errorf("%d files failed", res.Failed))
		}
	},
}

func filterItems(items []services.SyncItem, g catalog.Gender) []services.SyncItem {
	var out []services.SyncItem
	for _, it := range items {
		if it.Gender == g {
			out = append(out, it)
		}
	}
	return out
}

var assetsLocateCmd = &cobra.Command{
	Use:   "locate [exercise name]",
	Short: "Show which media path the fallback cascade settles on",
	Long: `Resolve an exercise's image and probe the fallback paths in order,
locally or, with --remote, against the asset host.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		c, cfg, logger := openCatalog()
		g := parseGender(cmd)

		d := assets.NewResolver(c, logger).Resolve(name, g)
		if !d.Available() {
			fmt.Printf("%s: %s\n", name, assets.NoDemonstration)
			return
		}

		var prober assets.Prober = assets.FSProber{Root: cfg.AssetDir}
		where := cfg.AssetDir
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			if cfg.AssetRemote == "" {
				cobra.CheckErr(fmt.Errorf("no asset host configured, set --asset-remote or FITGUIDE_ASSET_REMOTE"))
			}
			prober = assets.NewHTTPProber(cfg.AssetRemote)
			where = cfg.AssetRemote
		}

		fmt.Printf("🔍 %s (%s) in %s\n", name, g, where)
		fmt.Printf("  declared: %s\n", d.Src)
		for i, p := range assets.Candidates(d.Src, g) {
			fmt.Printf("  fallback %d: %s\n", i+1, p)
		}

		ctx, stop := signalContext()
		defer stop()
		loc, err := assets.Locate(ctx, prober, d.Src, g, logger)
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("\n➡️  %s\n", loc)
	},
}

func init() {
	assetsSyncCmd.Flags().StringP("gender", "g", "", "Only sync one body type")
	assetsSyncCmd.Flags().BoolP("verbose", "v", false, "Print every status change")

	assetsLocateCmd.Flags().StringP("gender", "g", "male", "Body type: male or female")
	assetsLocateCmd.Flags().Bool("remote", false, "Probe the asset host instead of the local directory")

	assetsCmd.AddCommand(assetsSyncCmd, assetsLocateCmd)
	rootCmd.AddCommand(assetsCmd)
}
