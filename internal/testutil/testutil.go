// Package testutil provides test utilities for command tests
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/denbox-io/denbox/internal/app"
	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/den"
	"github.com/denbox-io/denbox/internal/runtime"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	Project  string
	Settings *config.Settings
	Runtime  *runtime.MockRuntime
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a test environment with a throwaway project
// directory and a mock runtime, and installs it as the app default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	// Resolve symlinks (macOS /var -> /private/var) so the path seen
	// through Chdir+Getwd derives the same container name.
	project, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	settings := config.DefaultSettings()
	mockRuntime := runtime.NewMockRuntime()

	testApp := app.New(
		app.WithSettings(settings),
		app.WithRuntime(mockRuntime),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:        t,
		Project:  project,
		Settings: settings,
		Runtime:  mockRuntime,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// Den returns the den for the environment's project directory.
func (e *TestEnv) Den() *den.Den {
	e.T.Helper()

	d, err := den.ForProject(e.Project)
	if err != nil {
		e.T.Fatalf("ForProject(%q): %v", e.Project, err)
	}
	return d
}

// AddContainer seeds the project's own container in the given state.
func (e *TestEnv) AddContainer(state runtime.State) *runtime.Details {
	e.T.Helper()
	return e.AddProjectContainer(e.Project, state)
}

// AddProjectContainer seeds a container owned by an arbitrary project
// path, labeled and imaged the way a real create would leave it.
func (e *TestEnv) AddProjectContainer(path string, state runtime.State) *runtime.Details {
	e.T.Helper()

	d, err := den.ForProject(path)
	if err != nil {
		e.T.Fatalf("ForProject(%q): %v", path, err)
	}

	details := e.Runtime.AddContainer(d.Name, state)
	details.Labels[config.LabelKey] = d.Path
	details.ImageName = e.Settings.Image
	details.ImageID = "sha256:current"
	e.Runtime.SetImage(e.Settings.Image, "sha256:current")
	return details
}
