// Package testutil provides a shared harness for command tests.
//
// NewTestEnv wires a throwaway project directory and a mock runtime
// into the app default, so command handlers resolve against in-memory
// state instead of a live daemon:
//
//	func TestStop(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    defer env.Cleanup()
//
//	    env.AddContainer(runtime.StateRunning)
//	    // run the command under test against env.Project
//	}
//
// # Seeding containers
//
// AddContainer seeds the environment project's own container;
// AddProjectContainer seeds one for any path, carrying the ownership
// label and image fields a real create would set.
package testutil
