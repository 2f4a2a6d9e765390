// internal/cli/fix.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sstent/tcxclean/internal/tcx"
)

var fixOutput string

var fixCmd = &cobra.Command{
	Use:   "fix INPUT",
	Short: "Clean one TCX file",
	Long: `Clean a Strava TCX export and write the result next to the input as
<name>_fixed.tcx, or to the path given with -o. The input file is only
overwritten if -o names it explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := tcx.FixFile(args[0], fixOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleaned file saved to: %s\n", output)
		return nil
	},
}

func init() {
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "path for the cleaned file")
}
