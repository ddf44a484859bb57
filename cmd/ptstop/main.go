package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/theoremus-urban-solutions/ptstop/config"
	"github.com/theoremus-urban-solutions/ptstop/overpass"
	"github.com/theoremus-urban-solutions/ptstop/pipeline"
)

var (
	configFile string
	verbose    bool
	debug      bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "ptstop",
		Short: "Public transport stop reconstruction pipeline",
		Long: `Reconstructs normalized public transport stops from raw tagged map
objects: ingests a region's nodes, ways, and relations from a tagged-object
query service, classifies them into stop positions, poles, and platforms,
infers transport modalities, spatially matches components into stops, and
exports GeoJSON layers plus per-stop provenance and a dubious-object
quality report.

Examples:
  ptstop -c config.yaml
  ptstop region OSLO -c config.yaml
  ptstop generate-config myconfig.yaml`,
		RunE: runAllRegions,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (defaults embedded if omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug-level logging")

	rootCmd.AddCommand(regionCmd())
	rootCmd.AddCommand(generateConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigAndOptions() (*config.PipelineConfig, *pipeline.Options, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}
	opts := pipeline.FromConfig(cfg).WithDebug(debug || cfg.Debug)
	return cfg, opts, nil
}

func runAllRegions(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfigAndOptions()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	results, err := pipeline.RunManifest(ctx, cfg, opts)
	if err != nil {
		return fmt.Errorf("manifest run: %w", err)
	}

	failed := 0
	for _, r := range results {
		if verbose || !r.Succeeded() {
			fmt.Println(r.String())
		}
		if !r.Succeeded() {
			failed++
		}
	}
	fmt.Printf("processed %d regions, %d failed\n", len(results), failed)
	return nil
}

func regionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "region <code>",
		Short: "Process a single region by its manifest code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			cfg, opts, err := loadConfigAndOptions()
			if err != nil {
				return err
			}

			regions, err := pipeline.ReadManifest(cfg.RegionsPath)
			if err != nil {
				return fmt.Errorf("loading region manifest: %w", err)
			}

			var target *pipeline.Region
			for _, r := range regions {
				if r.Code == code {
					target = r
					break
				}
			}
			if target == nil {
				return fmt.Errorf("region %q not found in manifest %s", code, cfg.RegionsPath)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			client := overpass.NewClient(opts.Overpass)
			defer client.Close()

			result := pipeline.Run(ctx, client, target, opts)
			fmt.Println(result.String())
			if !result.Succeeded() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func generateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config [file]",
		Short: "Generate a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ptstop.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.GenerateDefaultConfigFile(path); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Printf("generated default configuration file: %s\n", path)
			return nil
		},
	}
}
