package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/denbox-io/denbox/internal/den"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/logging"
	"github.com/denbox-io/denbox/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive container picker",
	Long: `Opens an interactive TUI listing every denbox container.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Enter the selected project's container
  s      - Stop the selected container
  r      - Remove the selected container
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.ValidationError("pick needs an interactive terminal; use 'denbox ls' instead")
	}

	summaries, err := reconciler().List(cmd.Context())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		logInfo("No denbox containers. Run 'denbox' inside a project to create one")
		return nil
	}

	result, err := tui.RunPicker(summaries)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	if result.Container == nil {
		return nil
	}

	d, err := den.ForProject(result.Container.Project)
	if err != nil {
		return err
	}

	switch result.Action {
	case tui.ActionEnter:
		return reconciler().Apply(cmd.Context(), d, den.Enter(nil, nil))
	case tui.ActionStop:
		return reconciler().Apply(cmd.Context(), d, den.Stop())
	case tui.ActionRemove:
		return reconciler().Apply(cmd.Context(), d, den.Remove())
	}
	return nil
}
