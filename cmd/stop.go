package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current project's container",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Stop())
}
