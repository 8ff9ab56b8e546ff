// Package runtime provides the container runtime interface for denbox.
//
// The Runtime interface covers exactly the verbs the lifecycle needs:
//   - Inspect, ListByLabel: state queries
//   - Run, Start, Attach, Exec: foreground sessions
//   - Stop, Remove: teardown
//   - Pull, ImageID: image handling
//   - VolumeExists, VolumeRemove: the shared home volume
//   - Ping: daemon reachability
//
// # Docker CLI
//
// DockerCLI shells out to the docker binary. Query verbs capture
// output; the foreground verbs replace the denbox process with the
// docker client (exec), which is what gives sessions correct TTY
// behavior, signal handling, and exit status pass-through. A docker
// context override is threaded through as --context on every call.
//
// # State classification
//
// StateOf collapses a live inspection into the three-valued State:
// Absent, Stopped, or Running. Inspection failures of any kind read as
// Absent; the reconciler's create path then lets the runtime's own
// name-conflict rejection surface races.
//
// # Mock Runtime
//
// For testing, NewMockRuntime() provides an in-memory implementation
// with seedable containers, images, and volumes, per-operation error
// injection, and a call log for verifying dispatch order.
package runtime
