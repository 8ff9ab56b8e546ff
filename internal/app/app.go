// Package app provides the application context for denbox.
// It allows dependency injection for testing.
package app

import (
	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/den"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/runtime"
)

// App holds the application dependencies
type App struct {
	// Settings is the loaded host configuration
	Settings *config.Settings

	// Runtime is the container runtime
	Runtime runtime.Runtime
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets custom settings
func WithSettings(settings *config.Settings) Option {
	return func(a *App) {
		a.Settings = settings
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// New creates a new App with the given options. It performs no I/O;
// production wiring happens in Init.
func New(opts ...Option) *App {
	app := &App{
		Settings: config.DefaultSettings(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Reconciler returns a lifecycle reconciler over the app's runtime.
func (a *App) Reconciler() *den.Reconciler {
	return den.NewReconciler(a.Runtime, a.Settings)
}

// Default is the default application instance
var Default = New()

// Init loads the host configuration and connects the container
// runtime, replacing Default. A malformed configuration file or a
// missing docker binary surfaces here. An instance injected through
// SetDefault is left untouched.
func Init() error {
	if Default != nil && Default.Runtime != nil {
		return nil
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}

	rt, err := runtime.NewDockerCLI(settings.Context)
	if err != nil {
		return errors.RuntimeUnavailable(err)
	}

	Default = New(WithSettings(settings), WithRuntime(rt))
	return nil
}

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
