// internal/cli/inspect.go
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sstent/tcxclean/internal/parser"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print summary metrics for a TCX, GPX, or FIT file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parser.DetectFile(args[0])
		if err != nil {
			return err
		}
		if format == parser.FileTypeUnknown {
			return fmt.Errorf("unrecognized file format: %s", args[0])
		}

		metrics, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Format:       %s\n", format)
		fmt.Fprintf(out, "Sport:        %s\n", metrics.Sport)
		if !metrics.StartTime.IsZero() {
			fmt.Fprintf(out, "Start:        %s\n", metrics.StartTime.Format(time.RFC3339))
		}
		fmt.Fprintf(out, "Duration:     %s\n", metrics.Duration)
		fmt.Fprintf(out, "Distance:     %.0f m\n", metrics.Distance)
		fmt.Fprintf(out, "Trackpoints:  %d\n", metrics.Trackpoints)
		if metrics.AvgHeartRate > 0 {
			fmt.Fprintf(out, "Heart rate:   %d avg / %d max bpm\n", metrics.AvgHeartRate, metrics.MaxHeartRate)
		}
		if metrics.AvgPower > 0 {
			fmt.Fprintf(out, "Power:        %d W avg\n", metrics.AvgPower)
		}
		if metrics.Calories > 0 {
			fmt.Fprintf(out, "Calories:     %d\n", metrics.Calories)
		}
		return nil
	},
}
