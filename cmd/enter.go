package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/docker/go-connections/nat"
	"github.com/spf13/cobra"

	"github.com/denbox-io/denbox/internal/den"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/runtime"
)

var (
	enterPorts   []string
	enterVolumes []string
)

var enterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Enter the container for the current project",
	Long: `Enter creates, resumes, or attaches to the current project's container,
whichever its live state calls for. Running denbox with no subcommand
does the same thing.

Port and volume mappings only take effect when the container is
created; against an existing container they are ignored with a warning.
Remove the container first to apply new mappings.`,
	Args: cobra.NoArgs,
	RunE: runEnter,
}

func init() {
	addEnterFlags(enterCmd)
	rootCmd.AddCommand(enterCmd)
}

// addEnterFlags registers the creation-time flags. The root command and
// enter share the same variables; only one of them runs per invocation.
func addEnterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&enterPorts, "publish", "p", nil, "Publish a container port (host:container, creation only)")
	cmd.Flags().StringArrayVarP(&enterVolumes, "volume", "v", nil, "Mount an extra volume src:dst[:ro] (creation only)")
}

func runEnter(cmd *cobra.Command, args []string) error {
	d, err := currentDen()
	if err != nil {
		return err
	}

	ports, err := parsePorts(enterPorts)
	if err != nil {
		return err
	}

	volumes, err := parseVolumes(enterVolumes, d.Path)
	if err != nil {
		return err
	}

	return reconciler().Apply(cmd.Context(), d, den.Enter(ports, volumes))
}

// parsePorts validates -p values without reshaping them; the runtime
// accepts the same syntax.
func parsePorts(specs []string) ([]string, error) {
	for _, spec := range specs {
		if _, err := nat.ParsePortSpec(spec); err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid port mapping %q: %v", spec, err))
		}
	}
	return specs, nil
}

// parseVolumes expands src:dst[:ro] mappings into mounts.
func parseVolumes(specs []string, projectDir string) ([]runtime.Mount, error) {
	var mounts []runtime.Mount
	for _, spec := range specs {
		m, err := parseVolume(spec, projectDir)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, m)
	}
	return mounts, nil
}

func parseVolume(spec, projectDir string) (runtime.Mount, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return runtime.Mount{}, errors.ValidationError(fmt.Sprintf("invalid volume mapping %q (want src:dst[:ro])", spec))
	}

	src, dst := parts[0], parts[1]
	readOnly := false
	if len(parts) == 3 {
		if parts[2] != "ro" {
			return runtime.Mount{}, errors.ValidationError(fmt.Sprintf("invalid volume option %q in %q (only \"ro\" is supported)", parts[2], spec))
		}
		readOnly = true
	}

	if !filepath.IsAbs(dst) {
		return runtime.Mount{}, errors.ValidationError(fmt.Sprintf("volume target %q must be absolute", dst))
	}

	// Relative sources live under the project directory. SecureJoin
	// resolves them without letting symlinks escape it.
	if !filepath.IsAbs(src) {
		joined, err := securejoin.SecureJoin(projectDir, src)
		if err != nil {
			return runtime.Mount{}, errors.ValidationError(fmt.Sprintf("volume source %q: %v", src, err))
		}
		src = joined
	}

	return runtime.Mount{Source: src, Target: dst, ReadOnly: readOnly}, nil
}
