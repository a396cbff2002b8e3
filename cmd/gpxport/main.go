package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gpxport/gpxport/cmd/gpxport/commands"
	"github.com/gpxport/gpxport/config"
	"github.com/gpxport/gpxport/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gpxport",
	Short: "Convert Strava export archives to GPX",
	Long: `gpxport - Convert the activities of a Strava account export to GPX.

A Strava export (directory or .zip archive) carries an activities.csv
manifest plus one track file per activity in whatever format the recording
device uploaded: FIT, TCX, GPX, each possibly gzip-compressed. gpxport walks
the manifest, detects each track file's format, and converts everything it
recognizes into uniformly named GPX files.

Available commands:
  convert - Convert activities to GPX
  types   - List the activity types present in an export
  gear    - List the gear names present in an export
  config  - Manage gpxport configuration

Examples:
  gpxport convert -i export_1234567.zip -o ./gpx
  gpxport convert -i ./export_1234567 -t Run -y 2023
  gpxport types -i export_1234567.zip
  gpxport config init`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// Config load failures must not block commands; themes and
		// defaults just fall back.
		if cfg, err := config.Load(); err == nil {
			logger.SetTheme(cfg.Log.Theme)
			if cfg.Log.JSON {
				jsonOutput = true
			}
		}

		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if logger.ShouldOutput(verbosity, logger.OutputConfig) {
			categories := logger.EnabledCategories(verbosity)
			names := make([]string, 0, len(categories))
			for _, category := range categories {
				names = append(names, logger.CategoryName(category))
			}
			sort.Strings(names)
			logger.Debugw("Logging initialized",
				"verbosity", verbosity,
				"output", logger.VerbosityDescription(verbosity),
				"categories", names)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results and progress as JSON")

	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.TypesCmd)
	rootCmd.AddCommand(commands.GearCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
