package cmd

import (
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/runtime"
)

var execCmd = &cobra.Command{
	Use:   "exec -- <command> [args...]",
	Short: "Run a command in the current project's container",
	Long: `Exec runs a one-off command in the running container through the
configured shell, so aliases and login environment apply:

  denbox exec -- make test
  denbox exec -- git status`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch runtime.StateOf(ctx, getRuntime(), d.Name) {
	case runtime.StateAbsent:
		return errors.NoContainer(d.Path)
	case runtime.StateStopped:
		return errors.NotRunning(d.Name)
	}

	shell, err := settings().ShellArgv()
	if err != nil {
		return errors.ConfigError("invalid shell", err)
	}

	argv := append(shell, "-lc", shellquote.Join(args...))
	return getRuntime().Exec(ctx, d.Name, argv)
}
