package cmd

import (
	"os"

	"github.com/denbox-io/denbox/internal/app"
	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/den"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/runtime"
)

// currentDen resolves the den for the working directory.
// This is the only place project identity enters the command layer.
func currentDen() (*den.Den, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap("cannot resolve working directory", err)
	}
	return den.ForProject(wd)
}

// reconciler returns a lifecycle reconciler over the app runtime.
func reconciler() *den.Reconciler {
	return app.Default.Reconciler()
}

// getRuntime returns the application runtime.
func getRuntime() runtime.Runtime {
	return app.Default.Runtime
}

// settings returns the loaded host configuration.
func settings() *config.Settings {
	return app.Default.Settings
}
