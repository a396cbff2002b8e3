package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gpxport/gpxport/display"
	"github.com/gpxport/gpxport/export"
)

// TypesCmd lists the distinct activity types present in an export, so the
// user knows what -t values a convert run can filter on.
var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the activity types present in an export",
	Long: `List the distinct activity types recorded in an export's manifest.

Use the listed values with 'gpxport convert -t'.

Examples:
  gpxport types -i export_1234567.zip
  gpxport types -i ./export_1234567 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		return runListing(cmd, input, "Activity types", func(e *export.Export) ([]string, error) {
			return e.Types()
		})
	},
}

// GearCmd lists the distinct gear names present in an export.
var GearCmd = &cobra.Command{
	Use:   "gear",
	Short: "List the gear names present in an export",
	Long: `List the distinct gear names recorded in an export's manifest.

Use the listed values with 'gpxport convert -g'.

Examples:
  gpxport gear -i export_1234567.zip
  gpxport gear -i ./export_1234567 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		return runListing(cmd, input, "Gear", func(e *export.Export) ([]string, error) {
			return e.Gear()
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{TypesCmd, GearCmd} {
		cmd.Flags().StringP("input", "i", "", "Export directory or .zip archive (required)")
		cmd.Flags().Bool("json", false, "Output results as JSON")
		cmd.MarkFlagRequired("input")
	}
}

// runListing opens the export, collects one manifest column's distinct
// values, and prints them.
func runListing(cmd *cobra.Command, input, title string, collect func(*export.Export) ([]string, error)) error {
	useJSON := display.ShouldOutputJSON(cmd)

	exp, err := export.Open(input)
	if err != nil {
		return err
	}
	defer exp.Close()

	values, err := collect(exp)
	if err != nil {
		return err
	}

	if useJSON {
		return display.OutputJSON(values)
	}

	if len(values) == 0 {
		pterm.Info.Printfln("%s: none found in %s", title, input)
		return nil
	}

	pterm.Info.Printfln("%s in %s:", title, input)
	for _, v := range values {
		pterm.Printfln("  %s", v)
	}
	return nil
}
