package den

import (
	"context"

	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/logging"
	"github.com/denbox-io/denbox/internal/runtime"
)

// Fleet-wide operations. These work across every container carrying
// the ownership label, independent of any single project identity.

// List enumerates every denbox container.
func (r *Reconciler) List(ctx context.Context) ([]runtime.Summary, error) {
	summaries, err := r.rt.ListByLabel(ctx, config.LabelKey)
	if err != nil {
		return nil, errors.ContainerFailed("list", err)
	}
	return summaries, nil
}

// RemoveAll force-removes every denbox container, then the shared home
// volume. It returns the number of containers removed.
func (r *Reconciler) RemoveAll(ctx context.Context) (int, error) {
	summaries, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, s := range summaries {
		if err := r.rt.Remove(ctx, s.Name, true); err != nil {
			return removed, errors.ContainerFailed("remove", err)
		}
		logging.UserSuccess("Removed %s (%s)", s.Name, s.Project)
		removed++
	}

	if err := r.removeHomeVolume(ctx); err != nil {
		return removed, err
	}

	return removed, nil
}

// ResetHome tears down every denbox container and the shared home
// volume, so the next enter starts from a clean home.
func (r *Reconciler) ResetHome(ctx context.Context) error {
	if _, err := r.RemoveAll(ctx); err != nil {
		return err
	}
	logging.UserSuccess("Shared home reset; it will be recreated on the next enter")
	return nil
}

// removeHomeVolume deletes the shared volume, tolerating its absence.
func (r *Reconciler) removeHomeVolume(ctx context.Context) error {
	exists, err := r.rt.VolumeExists(ctx, config.HomeVolume)
	if err != nil || !exists {
		logging.Debug("shared home volume not present", "volume", config.HomeVolume)
		return nil
	}

	if err := r.rt.VolumeRemove(ctx, config.HomeVolume); err != nil {
		return errors.ContainerFailed("volume remove", err)
	}
	logging.UserInfo("Removed shared home volume %s", config.HomeVolume)
	return nil
}
