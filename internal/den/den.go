package den

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/identity"
	"github.com/denbox-io/denbox/internal/logging"
	"github.com/denbox-io/denbox/internal/runtime"
)

// Den ties a project directory to its container identity.
type Den struct {
	// Path is the absolute project directory
	Path string

	// Name is the derived container name
	Name string
}

// ForProject resolves the den for a project directory.
// The path must be absolute; identity is a pure function of it.
func ForProject(path string) (*Den, error) {
	if !filepath.IsAbs(path) {
		return nil, errors.ValidationError(fmt.Sprintf("project path must be absolute, got %q", path))
	}
	clean := filepath.Clean(path)
	return &Den{Path: clean, Name: identity.ContainerName(clean)}, nil
}

// ActionKind enumerates the per-project lifecycle actions.
type ActionKind int

const (
	ActionEnter ActionKind = iota
	ActionStop
	ActionRemove
	ActionRestart
	ActionUpdate
	ActionShell
)

func (k ActionKind) String() string {
	switch k {
	case ActionEnter:
		return "enter"
	case ActionStop:
		return "stop"
	case ActionRemove:
		return "remove"
	case ActionRestart:
		return "restart"
	case ActionUpdate:
		return "update"
	case ActionShell:
		return "shell"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a lifecycle request. Only Enter carries payload: port and
// volume mappings exist at creation time and nowhere else.
type Action struct {
	Kind    ActionKind
	Ports   []string
	Volumes []runtime.Mount
}

// Enter requests create, resume, or attach, whichever the live state
// calls for.
func Enter(ports []string, volumes []runtime.Mount) Action {
	return Action{Kind: ActionEnter, Ports: ports, Volumes: volumes}
}

// Stop requests a container stop.
func Stop() Action { return Action{Kind: ActionStop} }

// Remove requests container removal.
func Remove() Action { return Action{Kind: ActionRemove} }

// Restart requests teardown followed by a fresh enter.
func Restart() Action { return Action{Kind: ActionRestart} }

// Update requests an image refresh, recreating a stale container.
func Update() Action { return Action{Kind: ActionUpdate} }

// Shell requests an additional interactive session.
func Shell() Action { return Action{Kind: ActionShell} }

// Reconciler drives a project's container toward a requested action.
// It is single-threaded and blocking; the runtime's own name-conflict
// rejection is the only guard against concurrent invocations.
type Reconciler struct {
	rt       runtime.Runtime
	settings *config.Settings
}

// NewReconciler returns a Reconciler over the given runtime.
func NewReconciler(rt runtime.Runtime, settings *config.Settings) *Reconciler {
	return &Reconciler{rt: rt, settings: settings}
}

// Apply classifies the container live and dispatches the action.
// The complete state-action table lives in this one function; every
// pair resolves to exactly one runtime sequence or one precondition
// error.
func (r *Reconciler) Apply(ctx context.Context, d *Den, act Action) error {
	state := runtime.StateOf(ctx, r.rt, d.Name)
	logging.Debug("dispatching", "action", act.Kind.String(), "state", state.String(), "container", d.Name)

	switch act.Kind {
	case ActionEnter:
		switch state {
		case runtime.StateAbsent:
			return r.create(ctx, d, act)
		case runtime.StateStopped:
			warnCreationFlags(act)
			r.adviseStale(ctx, d)
			logging.UserInfo("Resuming container %s", d.Name)
			return r.rt.Start(ctx, d.Name)
		case runtime.StateRunning:
			warnCreationFlags(act)
			r.adviseStale(ctx, d)
			logging.UserInfo("Attaching to %s", d.Name)
			return r.rt.Attach(ctx, d.Name)
		}

	case ActionStop:
		switch state {
		case runtime.StateAbsent:
			return errors.NoContainer(d.Path)
		case runtime.StateStopped:
			logging.UserInfo("Container %s is already stopped", d.Name)
			return nil
		case runtime.StateRunning:
			if err := r.rt.Stop(ctx, d.Name); err != nil {
				return errors.ContainerFailed("stop", err)
			}
			logging.UserSuccess("Stopped %s", d.Name)
			return nil
		}

	case ActionRemove:
		switch state {
		case runtime.StateAbsent:
			return errors.NoContainer(d.Path)
		case runtime.StateStopped, runtime.StateRunning:
			// Only a running container needs the force flag.
			if err := r.rt.Remove(ctx, d.Name, state == runtime.StateRunning); err != nil {
				return errors.ContainerFailed("remove", err)
			}
			logging.UserSuccess("Removed %s", d.Name)
			return nil
		}

	case ActionRestart:
		switch state {
		case runtime.StateAbsent:
			return errors.NoContainer(d.Path)
		case runtime.StateStopped, runtime.StateRunning:
			// Teardown is best-effort; a fresh create follows either way.
			if err := r.rt.Remove(ctx, d.Name, true); err != nil {
				logging.Debug("teardown before restart failed", "container", d.Name, "error", err)
			}
			return r.create(ctx, d, Action{Kind: ActionEnter})
		}

	case ActionUpdate:
		return r.update(ctx, d, state)

	case ActionShell:
		switch state {
		case runtime.StateAbsent:
			return errors.NoContainer(d.Path)
		case runtime.StateStopped:
			return errors.NotRunning(d.Name)
		case runtime.StateRunning:
			shell, err := r.settings.ShellArgv()
			if err != nil {
				return errors.ConfigError("invalid shell", err)
			}
			return r.rt.Exec(ctx, d.Name, shell)
		}
	}

	return errors.ValidationError(fmt.Sprintf("unknown action %s", act.Kind))
}

// create pulls the image when the reference is remote, assembles the
// container configuration, and hands the terminal to the runtime.
func (r *Reconciler) create(ctx context.Context, d *Den, act Action) error {
	if remoteImage(r.settings.Image) {
		logging.UserInfo("Pulling %s...", r.settings.Image)
		if err := r.rt.Pull(ctx, r.settings.Image); err != nil {
			return errors.ContainerFailed("pull", err)
		}
	}

	opts, err := assemble(d, r.settings, act, agentSocket())
	if err != nil {
		return err
	}

	logging.UserInfo("Creating container %s", d.Name)
	if err := r.rt.Run(ctx, opts); err != nil {
		return errors.ContainerFailed("run", err)
	}
	return nil
}

// update refreshes the image and recreates the container when it lags
// behind. Local-only references have nowhere to pull from.
func (r *Reconciler) update(ctx context.Context, d *Den, state runtime.State) error {
	if !remoteImage(r.settings.Image) {
		return errors.LocalImage(r.settings.Image)
	}

	logging.UserInfo("Pulling %s...", r.settings.Image)
	if err := r.rt.Pull(ctx, r.settings.Image); err != nil {
		return errors.ContainerFailed("pull", err)
	}

	if state == runtime.StateAbsent {
		logging.UserSuccess("Image updated; the next enter will use it")
		return nil
	}

	if !imageStale(ctx, r.rt, d.Name, r.settings.Image) {
		logging.UserInfo("Container %s is already up to date", d.Name)
		return nil
	}

	logging.UserInfo("Recreating %s with the updated image", d.Name)
	if err := r.rt.Remove(ctx, d.Name, true); err != nil {
		return errors.ContainerFailed("remove", err)
	}
	return r.create(ctx, d, Action{Kind: ActionEnter})
}

// adviseStale prints a freshness advisory for an existing container.
func (r *Reconciler) adviseStale(ctx context.Context, d *Den) {
	if imageStale(ctx, r.rt, d.Name, r.settings.Image) {
		logging.UserWarning("Image %s has changed since this container was created; run 'denbox update' to recreate it", r.settings.Image)
	}
}

// warnCreationFlags warns when creation-time mappings are supplied for
// a container that already exists; they are ignored.
func warnCreationFlags(act Action) {
	if len(act.Ports) > 0 || len(act.Volumes) > 0 {
		logging.UserWarning("Port and volume mappings only apply when a container is created; ignoring")
	}
}

// Report is the status snapshot for one project.
type Report struct {
	Path           string
	Name           string
	State          runtime.State
	Image          string // configured image reference
	ContainerImage string // reference the container was created from
	StartedAt      string
	Stale          bool
}

// Status inspects a project's container without changing anything.
func (r *Reconciler) Status(ctx context.Context, d *Den) *Report {
	rep := &Report{
		Path:  d.Path,
		Name:  d.Name,
		Image: r.settings.Image,
		State: runtime.StateAbsent,
	}

	details, err := r.rt.Inspect(ctx, d.Name)
	if err != nil {
		return rep
	}

	if details.Running {
		rep.State = runtime.StateRunning
	} else {
		rep.State = runtime.StateStopped
	}
	rep.ContainerImage = details.ImageName
	rep.StartedAt = details.StartedAt
	rep.Stale = imageStale(ctx, r.rt, d.Name, r.settings.Image)

	return rep
}
