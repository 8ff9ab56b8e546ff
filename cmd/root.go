package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/denbox-io/denbox/internal/app"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "denbox",
	Short: "One disposable dev container per project",
	Long: `denbox keeps one container per project directory and drops you into it.

Run it inside a project and it creates, resumes, or attaches as needed:
  - The project is bind-mounted at its own absolute path
  - A home volume persists shell history and tool state across projects
  - A host SSH agent socket is forwarded when one is available

Container names derive from the project path, so every directory maps
to the same container on every invocation.`,
	Args: cobra.NoArgs,
	RunE: runEnter,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, logWriter())

		// version has no use for a runtime
		if cmd.Name() == "version" {
			return nil
		}

		if err := app.Init(); err != nil {
			return err
		}
		if err := app.Default.Runtime.Ping(cmd.Context()); err != nil {
			return errors.RuntimeUnavailable(err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs and reports in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// The bare command runs enter, so it carries the same flags.
	addEnterFlags(rootCmd)
}

// logWriter picks the structured log destination. A file target gets
// rotation so long-lived shells cannot grow it without bound.
func logWriter() io.Writer {
	if logFile == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
