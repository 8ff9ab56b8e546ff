// Package den implements the per-project container lifecycle.
//
// A den is the pairing of a project directory with its deterministic
// container identity. The Reconciler classifies the container's live
// state (absent, stopped, running) and dispatches the requested action
// against it:
//
//	d, err := den.ForProject("/home/dev/app")
//	r := den.NewReconciler(rt, settings)
//	err = r.Apply(ctx, d, den.Enter(ports, volumes))
//
// # Dispatch
//
// Reconciler.Apply holds the complete state-action table in a single
// function. Enter creates, resumes, or attaches; Stop and Remove
// require an existing container; Restart tears down best-effort and
// re-enters; Update pulls and recreates only a stale container; Shell
// opens an additional session in a running one. Port and volume
// mappings are creation-time-only and are dropped with a warning on
// any non-creating enter.
//
// # Fleet operations
//
// List, RemoveAll, and ResetHome operate across every container that
// carries the ownership label, independent of a single identity.
// RemoveAll and ResetHome also delete the shared home volume,
// tolerating its absence.
//
// # Durable state
//
// There is none on the host. The runtime's name registry and the
// ownership label are the only records a den leaves behind.
package den
