package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/runtime"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current project's container state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	rep := reconciler().Status(cmd.Context(), d)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"project":   rep.Path,
			"container": rep.Name,
			"state":     rep.State.String(),
			"image":     rep.Image,
			"stale":     rep.Stale,
		})
	}

	fmt.Printf("Project: %s\n", rep.Path)
	fmt.Printf("Container: %s\n", rep.Name)
	fmt.Printf("State: %s\n", formatState(rep.State))
	fmt.Printf("Image: %s\n", rep.Image)
	if rep.ContainerImage != "" && rep.ContainerImage != rep.Image {
		fmt.Printf("Created from: %s\n", rep.ContainerImage)
	}
	if rep.StartedAt != "" {
		fmt.Printf("Started: %s\n", rep.StartedAt)
	}

	if rep.Stale {
		logWarning("Image has changed since this container was created; run 'denbox update' to recreate it")
	}
	return nil
}

func formatState(s runtime.State) string {
	switch s {
	case runtime.StateRunning:
		return "✓ running"
	case runtime.StateStopped:
		return "● stopped"
	default:
		return "○ absent"
	}
}
