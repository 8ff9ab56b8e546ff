package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
)

var rmAll bool

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove the current project's container",
	Long: `Remove deletes the current project's container, running or not.
The project directory itself is never touched.

With --all, every denbox container on the host is removed along with
the shared home volume, regardless of the working directory.`,
	Args: cobra.NoArgs,
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVar(&rmAll, "all", false, "Remove every denbox container and the shared home volume")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	if rmAll {
		removed, err := reconciler().RemoveAll(cmd.Context())
		if err != nil {
			return err
		}
		if removed == 0 {
			logInfo("No containers to remove")
			return nil
		}
		logSuccess("Removed %d container(s)", removed)
		return nil
	}

	d, err := currentDen()
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Remove())
}
