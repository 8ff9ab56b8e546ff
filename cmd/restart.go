package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Recreate the current project's container from scratch",
	Long: `Restart tears the container down and creates a fresh one from the
configured image. Anything written outside the project directory and
the shared home is lost; that is the point.`,
	Args: cobra.NoArgs,
	RunE: runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Restart())
}
