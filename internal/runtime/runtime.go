package runtime

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that a container does not exist.
var ErrNotFound = errors.New("container not found")

// State classifies a project's container. It is always derived from a
// live runtime query, never cached.
type State int

const (
	// StateAbsent means no container exists, or inspection failed.
	StateAbsent State = iota

	// StateStopped means the container exists but is not running.
	StateStopped

	// StateRunning means the container is currently running.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Mount describes a single mount: a host bind when Source is an
// absolute path, a named volume otherwise.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// String renders the mount in the runtime CLI's -v syntax.
func (m Mount) String() string {
	s := m.Source + ":" + m.Target
	if m.ReadOnly {
		s += ":ro"
	}
	return s
}

// Details holds the fields denbox reads from a container inspection.
type Details struct {
	ID        string
	Name      string
	Running   bool
	Status    string
	ImageID   string // resolved image the container was created from
	ImageName string // image reference as given at creation
	Labels    map[string]string
	StartedAt string
}

// Summary is one row of a fleet listing.
type Summary struct {
	Name    string
	Project string
	Image   string
	State   State
}

// RunOptions configures a create-and-run in the foreground.
type RunOptions struct {
	// Name is the container name (and usually the hostname)
	Name string

	// Hostname inside the container
	Hostname string

	// Image reference to run
	Image string

	// WorkDir is the initial working directory
	WorkDir string

	// Labels applied at creation
	Labels map[string]string

	// Env entries in KEY=VALUE form
	Env []string

	// Mounts in declaration order
	Mounts []Mount

	// Ports are host:container publish specs, validated by the caller
	Ports []string

	// Command optionally overrides the image command
	Command []string
}

// Runtime is the container runtime surface denbox consumes. The
// production implementation shells out to the docker CLI; tests use
// the in-memory mock.
//
// The foreground verbs (Run, Start, Attach, Exec) hand the terminal to
// the runtime CLI by replacing the current process; on success they do
// not return.
type Runtime interface {
	// Name returns the runtime identifier
	Name() string

	// Ping verifies the runtime daemon is reachable
	Ping(ctx context.Context) error

	// Inspect returns details for a container, or ErrNotFound
	Inspect(ctx context.Context, name string) (*Details, error)

	// Run creates a container and runs it in the foreground
	Run(ctx context.Context, opts RunOptions) error

	// Start resumes a stopped container and attaches to it
	Start(ctx context.Context, name string) error

	// Attach joins a running container's session
	Attach(ctx context.Context, name string) error

	// Exec opens an additional interactive session
	Exec(ctx context.Context, name string, command []string) error

	// Stop stops a running container
	Stop(ctx context.Context, name string) error

	// Remove deletes a container, forcefully when force is set
	Remove(ctx context.Context, name string, force bool) error

	// Pull fetches an image, streaming progress to stderr
	Pull(ctx context.Context, image string) error

	// ImageID resolves an image reference to its local image ID
	ImageID(ctx context.Context, image string) (string, error)

	// ListByLabel enumerates containers carrying a label key
	ListByLabel(ctx context.Context, key string) ([]Summary, error)

	// VolumeExists reports whether a named volume exists
	VolumeExists(ctx context.Context, name string) (bool, error)

	// VolumeRemove deletes a named volume
	VolumeRemove(ctx context.Context, name string) error
}

// StateOf classifies a container by live inspection. Any inspection
// failure, not-found included, collapses to StateAbsent.
func StateOf(ctx context.Context, rt Runtime, name string) State {
	details, err := rt.Inspect(ctx, name)
	if err != nil || details == nil {
		return StateAbsent
	}
	if details.Running {
		return StateRunning
	}
	return StateStopped
}
