package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all containers and the shared home volume",
	Long: `Reset removes every denbox container and deletes the shared home
volume, so the next enter starts with a factory-fresh home. Project
directories are never touched.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	return reconciler().ResetHome(cmd.Context())
}
