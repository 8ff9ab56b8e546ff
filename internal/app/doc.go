// Package app provides the application context for denbox.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Settings *config.Settings // Host configuration
//	    Runtime  runtime.Runtime  // Container runtime
//	}
//
// # Creating an App
//
// Production code calls Init once before running a command; it loads
// the configuration and connects the docker CLI:
//
//	if err := app.Init(); err != nil {
//	    return err
//	}
//	r := app.Default.Reconciler()
//
// Tests inject their own dependencies:
//
//	app.SetDefault(app.New(
//	    app.WithSettings(settings),
//	    app.WithRuntime(mockRuntime),
//	))
//	defer app.ResetDefault()
//
// # Available Options
//
//	WithSettings(settings) // Custom host configuration
//	WithRuntime(runtime)   // Custom container runtime
package app
