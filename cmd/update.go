package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Pull the latest image and recreate the container if stale",
	Long: `Update pulls the configured image. When the current project's
container was created from an older image it is removed and recreated;
a container that is already current is left alone.

Local-only images cannot be updated; rebuild them instead.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Update())
}
