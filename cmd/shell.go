package cmd

import (
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open another shell in the running container",
	Long: `Shell opens an additional interactive shell in the current project's
container. The container must already be running; use plain denbox to
start or create it first.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Shell())
}
