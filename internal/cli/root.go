// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "tcxclean",
		Short: "Clean Strava TCX exports for Garmin Connect",
		Long: `tcxclean repairs TCX activity files exported from Strava for Peloton
workouts so Garmin Connect accepts the upload.

It strips the elements Garmin's parser rejects (Creator blocks, Peloton
resistance metrics, lap-level cadence), rounds heart rate, cadence, calorie
and power values to the integers the schema requires, and rewrites vendor
extension blocks into the TPX/LX shape Garmin expects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
