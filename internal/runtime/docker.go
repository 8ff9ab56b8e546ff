package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/denbox-io/denbox/internal/logging"
)

// DockerCLI implements Runtime by shelling out to the docker binary.
// Query verbs capture output; foreground verbs replace the denbox
// process via exec so the session owns the terminal, signal handling,
// and exit status.
type DockerCLI struct {
	// Command is the runtime binary, normally "docker"
	Command string

	// Context selects a docker context via --context; empty uses the
	// CLI's active context
	Context string
}

// NewDockerCLI returns a DockerCLI after verifying the binary is on PATH.
func NewDockerCLI(dockerContext string) (*DockerCLI, error) {
	if _, err := exec.LookPath("docker"); err != nil {
		return nil, fmt.Errorf("docker not found in PATH: %w", err)
	}
	return &DockerCLI{Command: "docker", Context: dockerContext}, nil
}

// Name returns the runtime identifier
func (r *DockerCLI) Name() string {
	return r.Command
}

// globalArgs returns the CLI arguments preceding every verb.
func (r *DockerCLI) globalArgs() []string {
	if r.Context == "" {
		return nil
	}
	return []string{"--context", r.Context}
}

// runCmd executes a docker command and captures its output
func (r *DockerCLI) runCmd(ctx context.Context, args ...string) (string, error) {
	full := append(r.globalArgs(), args...)
	cmd := exec.CommandContext(ctx, r.Command, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w",
			r.Command, args[0], strings.TrimSpace(stderr.String()), err)
	}

	return stdout.String(), nil
}

// foreground replaces the current process with the docker command.
// On success it never returns.
func (r *DockerCLI) foreground(args []string) error {
	cmdPath, err := exec.LookPath(r.Command)
	if err != nil {
		return fmt.Errorf("%s not found: %w", r.Command, err)
	}

	argv := append([]string{r.Command}, r.globalArgs()...)
	argv = append(argv, args...)

	logging.Debug("handing terminal to runtime", "argv", strings.Join(argv, " "))
	return syscall.Exec(cmdPath, argv, os.Environ())
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ping verifies the daemon is reachable
func (r *DockerCLI) Ping(ctx context.Context) error {
	_, err := r.runCmd(ctx, "info", "--format", "{{.ServerVersion}}")
	return err
}

// dockerContainer holds the relevant fields from docker inspect
type dockerContainer struct {
	ID    string `json:"Id"`
	Name  string `json:"Name"`
	Image string `json:"Image"`
	State struct {
		Status    string `json:"Status"`
		Running   bool   `json:"Running"`
		StartedAt string `json:"StartedAt"`
	} `json:"State"`
	Config struct {
		Image  string            `json:"Image"`
		Labels map[string]string `json:"Labels"`
	} `json:"Config"`
}

// Inspect returns details for a container, or ErrNotFound.
// Every inspection failure collapses to ErrNotFound: callers either
// classify state (absent) or treat the answer as advisory.
func (r *DockerCLI) Inspect(ctx context.Context, name string) (*Details, error) {
	output, err := r.runCmd(ctx, "inspect", "--type", "container", name)
	if err != nil {
		logging.Debug("inspect failed", "name", name, "error", err)
		return nil, ErrNotFound
	}

	var containers []dockerContainer
	if err := json.Unmarshal([]byte(output), &containers); err != nil || len(containers) == 0 {
		logging.Debug("inspect returned no usable payload", "name", name, "error", err)
		return nil, ErrNotFound
	}

	c := containers[0]
	return &Details{
		ID:        c.ID,
		Name:      strings.TrimPrefix(c.Name, "/"),
		Running:   c.State.Running,
		Status:    c.State.Status,
		ImageID:   c.Image,
		ImageName: c.Config.Image,
		Labels:    c.Config.Labels,
		StartedAt: c.State.StartedAt,
	}, nil
}

// buildRunArgs assembles the argv for a foreground docker run.
// Label keys are emitted in sorted order so the argv is deterministic.
func buildRunArgs(opts RunOptions, tty bool) []string {
	args := []string{"run", "--name", opts.Name, "-i"}
	if tty {
		args = append(args, "-t")
	}

	if opts.Hostname != "" {
		args = append(args, "--hostname", opts.Hostname)
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	keys := make([]string, 0, len(opts.Labels))
	for k := range opts.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--label", fmt.Sprintf("%s=%s", k, opts.Labels[k]))
	}

	for _, m := range opts.Mounts {
		args = append(args, "-v", m.String())
	}
	for _, p := range opts.Ports {
		args = append(args, "-p", p)
	}
	for _, e := range opts.Env {
		args = append(args, "-e", e)
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)
	return args
}

// Run creates a container and runs it in the foreground
func (r *DockerCLI) Run(ctx context.Context, opts RunOptions) error {
	return r.foreground(buildRunArgs(opts, stdinIsTerminal()))
}

// Start resumes a stopped container and attaches to it
func (r *DockerCLI) Start(ctx context.Context, name string) error {
	return r.foreground([]string{"start", "-ai", name})
}

// Attach joins a running container's session
func (r *DockerCLI) Attach(ctx context.Context, name string) error {
	return r.foreground([]string{"attach", name})
}

// Exec opens an additional interactive session
func (r *DockerCLI) Exec(ctx context.Context, name string, command []string) error {
	args := []string{"exec", "-i"}
	if stdinIsTerminal() {
		args = append(args, "-t")
	}
	args = append(args, name)
	args = append(args, command...)
	return r.foreground(args)
}

// Stop stops a running container
func (r *DockerCLI) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping container", "container", name)

	_, err := r.runCmd(ctx, "stop", name)
	return err
}

// Remove deletes a container
func (r *DockerCLI) Remove(ctx context.Context, name string, force bool) error {
	logging.Debug("removing container", "container", name, "force", force)

	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, name)

	_, err := r.runCmd(ctx, args...)
	return err
}

// Pull fetches an image. Progress streams to stderr so stdout stays
// clean for primary output.
func (r *DockerCLI) Pull(ctx context.Context, image string) error {
	logging.Debug("pulling image", "image", image)

	full := append(r.globalArgs(), "pull", image)
	cmd := exec.CommandContext(ctx, r.Command, full...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s pull %s failed: %w", r.Command, image, err)
	}
	return nil
}

// ImageID resolves an image reference to its local image ID
func (r *DockerCLI) ImageID(ctx context.Context, image string) (string, error) {
	output, err := r.runCmd(ctx, "image", "inspect", "--format", "{{.Id}}", image)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// ListByLabel enumerates containers carrying a label key.
// Containers that vanish between the listing and their inspection are
// skipped.
func (r *DockerCLI) ListByLabel(ctx context.Context, key string) ([]Summary, error) {
	output, err := r.runCmd(ctx, "ps", "-a",
		"--filter", fmt.Sprintf("label=%s", key),
		"--format", "{{.Names}}")
	if err != nil {
		return nil, err
	}

	var summaries []Summary
	for _, name := range strings.Split(strings.TrimSpace(output), "\n") {
		if name == "" {
			continue
		}

		details, err := r.Inspect(ctx, name)
		if err != nil {
			continue
		}

		state := StateStopped
		if details.Running {
			state = StateRunning
		}

		summaries = append(summaries, Summary{
			Name:    details.Name,
			Project: details.Labels[key],
			Image:   details.ImageName,
			State:   state,
		})
	}

	return summaries, nil
}

// VolumeExists reports whether a named volume exists
func (r *DockerCLI) VolumeExists(ctx context.Context, name string) (bool, error) {
	if _, err := r.runCmd(ctx, "volume", "inspect", name); err != nil {
		return false, nil
	}
	return true, nil
}

// VolumeRemove deletes a named volume
func (r *DockerCLI) VolumeRemove(ctx context.Context, name string) error {
	logging.Debug("removing volume", "volume", name)

	_, err := r.runCmd(ctx, "volume", "rm", name)
	return err
}

// Ensure DockerCLI implements Runtime
var _ Runtime = (*DockerCLI)(nil)
