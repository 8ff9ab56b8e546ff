package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/runtime"
	"github.com/denbox-io/denbox/internal/testutil"
)

func TestRmCommand_NoContainer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	t.Chdir(env.Project)

	_, _, err := executeCommand("rm")
	if err == nil || !strings.Contains(err.Error(), "no container") {
		t.Errorf("error = %v, want mention of missing container", err)
	}
}

func TestRmCommand_RemovesOwnContainer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	t.Chdir(env.Project)

	env.AddContainer(runtime.StateRunning)
	other := env.AddProjectContainer(filepath.Join(env.Project, "..", "elsewhere"), runtime.StateRunning)

	if _, _, err := executeCommand("rm"); err != nil {
		t.Fatalf("rm failed: %v", err)
	}

	if _, ok := env.Runtime.Containers[env.Den().Name]; ok {
		t.Error("own container should be removed")
	}
	if _, ok := env.Runtime.Containers[other.Name]; !ok {
		t.Error("rm must only touch the current project's container")
	}
}

func TestRmCommand_All(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.AddContainer(runtime.StateRunning)
	env.AddProjectContainer("/srv/site", runtime.StateStopped)
	env.Runtime.AddContainer("postgres", runtime.StateRunning)
	env.Runtime.Volumes[config.HomeVolume] = true

	if _, _, err := executeCommand("rm", "--all"); err != nil {
		t.Fatalf("rm --all failed: %v", err)
	}

	if _, ok := env.Runtime.Containers["postgres"]; !ok {
		t.Error("rm --all must not touch foreign containers")
	}
	if len(env.Runtime.Containers) != 1 {
		t.Errorf("%d containers left, want only the foreign one", len(env.Runtime.Containers))
	}
	if env.Runtime.Volumes[config.HomeVolume] {
		t.Error("rm --all should remove the shared home volume")
	}
}

func TestRmCommand_AllEmpty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	if _, _, err := executeCommand("rm", "--all"); err != nil {
		t.Fatalf("rm --all on an empty fleet failed: %v", err)
	}
}
