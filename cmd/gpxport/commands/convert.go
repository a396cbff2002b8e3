package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gpxport/gpxport/config"
	"github.com/gpxport/gpxport/convert"
	"github.com/gpxport/gpxport/display"
	"github.com/gpxport/gpxport/export"
	"github.com/gpxport/gpxport/logger"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the activities of a Strava export to GPX",
	Long: `Convert the activities of a Strava account export to GPX files.

The export may be the unpacked directory or the downloaded .zip archive;
both are read the same way. Activities are processed in manifest order and
written as {date}_{type}_{id}.gpx into the output directory. Track files
in unrecognized formats are skipped with a warning; a failure on one
activity never aborts the rest of the run.

Filters combine with AND across categories and OR within one:
  gpxport convert -i export.zip -t Run -t Ride -y 2023
converts runs and rides recorded in 2023.

Examples:
  gpxport convert -i export_1234567.zip                  # Everything, into ./gpx
  gpxport convert -i ./export_1234567 -o /tmp/out        # Unpacked export
  gpxport convert -i export.zip -t Run -y 2023 -y 2024   # Runs from 2023-2024
  gpxport convert -i export.zip -g "Pegasus 39"          # One pair of shoes
  gpxport convert -i export.zip --json                   # JSON event stream`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		types, _ := cmd.Flags().GetStringArray("type")
		years, _ := cmd.Flags().GetStringArray("year")
		gear, _ := cmd.Flags().GetStringArray("gear")
		timeLayout, _ := cmd.Flags().GetString("time-layout")
		verbosity, _ := cmd.Flags().GetCount("verbose")

		return runConvert(cmd, input, output, types, years, gear, timeLayout, verbosity)
	},
}

func init() {
	ConvertCmd.Flags().StringP("input", "i", "", "Export directory or .zip archive (required)")
	ConvertCmd.Flags().StringP("output", "o", "", "Output directory for GPX files (default ./gpx)")
	ConvertCmd.Flags().StringArrayP("type", "t", nil, "Only convert activities of this type (repeatable)")
	ConvertCmd.Flags().StringArrayP("year", "y", nil, "Only convert activities from this year (repeatable)")
	ConvertCmd.Flags().StringArrayP("gear", "g", nil, "Only convert activities using this gear (repeatable)")
	ConvertCmd.Flags().String("time-layout", "", "Manifest timestamp layout for non-English exports")
	ConvertCmd.Flags().Bool("json", false, "Output results and progress as JSON")
	ConvertCmd.MarkFlagRequired("input")
}

func runConvert(cmd *cobra.Command, input, output string, types, years, gear []string, timeLayout string, verbosity int) error {
	useJSON := display.ShouldOutputJSON(cmd)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over config, config over defaults.
	if output == "" {
		output = cfg.Output.Dir
	}
	if output == "" {
		output = "gpx"
	}
	if timeLayout == "" {
		timeLayout = cfg.GetTimeLayout()
	}
	if len(types) == 0 {
		types = cfg.Convert.Types
	}
	if len(years) == 0 {
		years = cfg.Convert.Years
	}
	if len(gear) == 0 {
		gear = cfg.Convert.Gear
	}

	if !useJSON {
		pterm.DefaultHeader.WithFullWidth().Printf("gpxport - Strava export to GPX")
		pterm.Println()
		pterm.Info.Printfln("Export: %s", input)
		pterm.Info.Printfln("Output: %s", output)
		if len(types) > 0 || len(years) > 0 || len(gear) > 0 {
			pterm.Info.Printfln("Filters: types=%v years=%v gear=%v", types, years, gear)
		}
		pterm.Println()
	}

	exp, err := export.Open(input)
	if err != nil {
		if !useJSON {
			pterm.Error.Printfln("Failed to open export: %v", err)
		}
		return err
	}
	defer exp.Close()

	var emitter convert.Emitter
	if useJSON {
		emitter = convert.NewJSONEmitter()
	} else {
		emitter = convert.NewCLIEmitter(verbosity)
	}

	converter := convert.New(exp, output,
		convert.WithFilter(export.Filter{Types: types, Years: years, Gear: gear}),
		convert.WithTimeLayout(timeLayout),
		convert.WithVerbosity(verbosity),
		convert.WithEmitter(emitter),
		convert.WithLogger(logger.ComponentLogger("convert")),
	)

	startTime := time.Now()
	result, runErr := converter.Run(cmd.Context())

	if useJSON {
		// The event stream already carried progress; the result closes it.
		if err := display.OutputJSON(result); err != nil {
			return err
		}
		return runErr
	}

	if runErr != nil {
		pterm.Error.Printfln("Conversion failed: %v", runErr)
		return runErr
	}

	pterm.Println()
	pterm.Info.Printfln("Statistics:")
	pterm.Printfln("  Activities in manifest: %d", result.Total)
	pterm.Printfln("  Converted:              %d", result.Converted)
	pterm.Printfln("  Filtered out:           %d", result.Filtered)
	pterm.Printfln("  Unrecognized format:    %d", result.Skipped)
	pterm.Printfln("  No track file:          %d", result.NoFile)
	pterm.Printfln("  Failed:                 %d", result.Failed)
	pterm.Printfln("  Processing time:        %s", time.Since(startTime).Round(time.Millisecond))
	pterm.Println()

	if result.Converted > 0 {
		abs, err := filepath.Abs(output)
		if err != nil {
			abs = output
		}
		pterm.Success.Printfln("GPX files written to %s", abs)
	}

	return nil
}
