package den

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/runtime"
)

const (
	testPath = "/home/dev/app"
	testName = "denbox-app-720d8948"
)

func newTestReconciler(t *testing.T) (*Reconciler, *runtime.MockRuntime) {
	t.Helper()
	mock := runtime.NewMockRuntime()
	return NewReconciler(mock, config.DefaultSettings()), mock
}

func testDen(t *testing.T) *Den {
	t.Helper()
	d, err := ForProject(testPath)
	if err != nil {
		t.Fatalf("ForProject(%q): %v", testPath, err)
	}
	return d
}

func seedContainer(mock *runtime.MockRuntime, state runtime.State) {
	d := mock.AddContainer(testName, state)
	d.Labels[config.LabelKey] = testPath
	d.ImageName = config.DefaultImage
	d.ImageID = "sha256:current"
	mock.SetImage(config.DefaultImage, "sha256:current")
}

// captureStderr runs fn with os.Stderr redirected and returns what it
// wrote. Warnings and advisories go straight to stderr, not through
// the logger.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = oldStderr })

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestForProject(t *testing.T) {
	d, err := ForProject("/home/dev/app/")
	if err != nil {
		t.Fatalf("ForProject() error = %v", err)
	}
	if d.Path != "/home/dev/app" {
		t.Errorf("Path = %q, want cleaned path", d.Path)
	}
	if d.Name != testName {
		t.Errorf("Name = %q, want %q", d.Name, testName)
	}

	if _, err := ForProject("relative/path"); err == nil {
		t.Error("ForProject() should reject relative paths")
	}
}

func TestApply_EnterAbsent_PullsAndCreates(t *testing.T) {
	r, mock := newTestReconciler(t)
	d := testDen(t)

	err := r.Apply(context.Background(), d, Enter([]string{"3000:3000"}, nil))
	if err != nil {
		t.Fatalf("Apply(Enter) error = %v", err)
	}

	if calls := mock.GetCallsFor("Pull"); len(calls) != 1 {
		t.Errorf("expected 1 Pull for a remote image, got %d", len(calls))
	}

	runs := mock.GetCallsFor("Run")
	if len(runs) != 1 {
		t.Fatalf("expected 1 Run, got %d", len(runs))
	}

	opts := runs[0].Args[0].(runtime.RunOptions)
	if opts.Name != testName || opts.Hostname != testName {
		t.Errorf("name/hostname = %q/%q, want %q", opts.Name, opts.Hostname, testName)
	}
	if opts.WorkDir != testPath {
		t.Errorf("workdir = %q, want project path", opts.WorkDir)
	}
	if opts.Labels[config.LabelKey] != testPath {
		t.Errorf("ownership label = %q, want project path", opts.Labels[config.LabelKey])
	}
	if len(opts.Mounts) == 0 || opts.Mounts[0] != (runtime.Mount{Source: testPath, Target: testPath}) {
		t.Errorf("first mount should bind the project at its own path: %+v", opts.Mounts)
	}
	if len(opts.Ports) != 1 || opts.Ports[0] != "3000:3000" {
		t.Errorf("ports not forwarded to creation: %v", opts.Ports)
	}
}

func TestApply_EnterAbsent_LocalImageSkipsPull(t *testing.T) {
	mock := runtime.NewMockRuntime()
	settings := config.DefaultSettings()
	settings.Image = "scratchpad:dev"
	r := NewReconciler(mock, settings)

	if err := r.Apply(context.Background(), testDen(t), Enter(nil, nil)); err != nil {
		t.Fatalf("Apply(Enter) error = %v", err)
	}

	if calls := mock.GetCallsFor("Pull"); len(calls) != 0 {
		t.Errorf("local-only image should not be pulled, got %d pulls", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 1 {
		t.Errorf("expected 1 Run, got %d", len(calls))
	}
}

func TestApply_EnterRunning_AttachesNeverCreates(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)

	if err := r.Apply(context.Background(), testDen(t), Enter(nil, nil)); err != nil {
		t.Fatalf("Apply(Enter) error = %v", err)
	}

	if calls := mock.GetCallsFor("Attach"); len(calls) != 1 {
		t.Errorf("expected 1 Attach, got %d", len(calls))
	}
	for _, method := range []string{"Run", "Start", "Pull"} {
		if calls := mock.GetCallsFor(method); len(calls) != 0 {
			t.Errorf("re-entry must not call %s, got %d calls", method, len(calls))
		}
	}
}

func TestApply_EnterRunning_DropsCreationFlags(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)

	ports := []string{"3000:3000"}
	vols := []runtime.Mount{{Source: "/data", Target: "/data"}}
	if err := r.Apply(context.Background(), testDen(t), Enter(ports, vols)); err != nil {
		t.Fatalf("Apply(Enter) error = %v", err)
	}

	if calls := mock.GetCallsFor("Attach"); len(calls) != 1 {
		t.Errorf("expected attach despite creation flags, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 0 {
		t.Errorf("creation flags must not force a new container, got %d runs", len(calls))
	}
}

func TestApply_EnterStopped_Resumes(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateStopped)

	if err := r.Apply(context.Background(), testDen(t), Enter(nil, nil)); err != nil {
		t.Fatalf("Apply(Enter) error = %v", err)
	}

	if calls := mock.GetCallsFor("Start"); len(calls) != 1 {
		t.Errorf("expected 1 Start, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 0 {
		t.Errorf("resume must not create, got %d runs", len(calls))
	}
}

func TestApply_EnterExisting_WarnsIgnoredFlags(t *testing.T) {
	for _, state := range []runtime.State{runtime.StateStopped, runtime.StateRunning} {
		t.Run(state.String(), func(t *testing.T) {
			r, mock := newTestReconciler(t)
			seedContainer(mock, state)

			ports := []string{"3000:3000"}
			vols := []runtime.Mount{{Source: "/data", Target: "/data"}}
			stderr := captureStderr(t, func() {
				if err := r.Apply(context.Background(), testDen(t), Enter(ports, vols)); err != nil {
					t.Fatalf("Apply(Enter) error = %v", err)
				}
			})

			if !strings.Contains(stderr, "Port and volume mappings") {
				t.Errorf("stderr = %q, want a warning naming the mappings", stderr)
			}
			if !strings.Contains(stderr, "ignoring") {
				t.Errorf("stderr = %q, want the warning to say the flags are ignored", stderr)
			}
		})
	}
}

func TestApply_EnterExisting_StaleImageAdvisory(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)
	mock.Containers[testName].ImageID = "sha256:old"

	stderr := captureStderr(t, func() {
		if err := r.Apply(context.Background(), testDen(t), Enter(nil, nil)); err != nil {
			t.Fatalf("Apply(Enter) error = %v", err)
		}
	})

	if !strings.Contains(stderr, "has changed") {
		t.Errorf("stderr = %q, want mention that the image changed", stderr)
	}
	if !strings.Contains(stderr, "denbox update") {
		t.Errorf("stderr = %q, want a pointer to 'denbox update'", stderr)
	}
	if calls := mock.GetCallsFor("Attach"); len(calls) != 1 {
		t.Errorf("the advisory must not block the attach, got %d Attach calls", len(calls))
	}
}

func TestApply_EnterExisting_QuietWhenCurrent(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)

	stderr := captureStderr(t, func() {
		if err := r.Apply(context.Background(), testDen(t), Enter(nil, nil)); err != nil {
			t.Fatalf("Apply(Enter) error = %v", err)
		}
	})

	if strings.Contains(stderr, "⚠") {
		t.Errorf("flagless re-entry with a current image should not warn, stderr = %q", stderr)
	}
}

func TestApply_Stop(t *testing.T) {
	tests := []struct {
		name      string
		state     runtime.State
		wantErr   string
		wantStops int
	}{
		{name: "absent errors", state: runtime.StateAbsent, wantErr: "no container"},
		{name: "stopped is a no-op", state: runtime.StateStopped, wantStops: 0},
		{name: "running stops", state: runtime.StateRunning, wantStops: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := newTestReconciler(t)
			if tt.state != runtime.StateAbsent {
				seedContainer(mock, tt.state)
			}

			err := r.Apply(context.Background(), testDen(t), Stop())

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply(Stop) error = %v", err)
			}
			if calls := mock.GetCallsFor("Stop"); len(calls) != tt.wantStops {
				t.Errorf("Stop calls = %d, want %d", len(calls), tt.wantStops)
			}
		})
	}
}

func TestApply_Remove(t *testing.T) {
	tests := []struct {
		state     runtime.State
		wantForce bool
	}{
		{runtime.StateStopped, false},
		{runtime.StateRunning, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			r, mock := newTestReconciler(t)
			seedContainer(mock, tt.state)

			if err := r.Apply(context.Background(), testDen(t), Remove()); err != nil {
				t.Fatalf("Apply(Remove) error = %v", err)
			}

			calls := mock.GetCallsFor("Remove")
			if len(calls) != 1 {
				t.Fatalf("expected 1 Remove, got %d", len(calls))
			}
			if force := calls[0].Args[1].(bool); force != tt.wantForce {
				t.Errorf("force = %v, want %v", force, tt.wantForce)
			}
		})
	}

	t.Run("absent errors", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		err := r.Apply(context.Background(), testDen(t), Remove())
		if err == nil || !strings.Contains(err.Error(), "no container") {
			t.Errorf("error = %v, want mention of missing container", err)
		}
	})
}

func TestApply_Restart_RecreatesFresh(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)

	if err := r.Apply(context.Background(), testDen(t), Restart()); err != nil {
		t.Fatalf("Apply(Restart) error = %v", err)
	}

	if calls := mock.GetCallsFor("Remove"); len(calls) != 1 {
		t.Errorf("expected 1 Remove, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 1 {
		t.Errorf("expected 1 Run, got %d", len(calls))
	}
}

func TestApply_Restart_TeardownFailureTolerated(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)
	mock.SetError("Remove", fmt.Errorf("daemon busy"))

	// The teardown failure is logged and ignored; the create step must
	// still be attempted (and here trips the runtime's name conflict).
	_ = r.Apply(context.Background(), testDen(t), Restart())

	if calls := mock.GetCallsFor("Run"); len(calls) != 1 {
		t.Errorf("create must be attempted after a failed teardown, got %d runs", len(calls))
	}
}

func TestApply_Restart_AbsentErrors(t *testing.T) {
	r, _ := newTestReconciler(t)

	err := r.Apply(context.Background(), testDen(t), Restart())
	if err == nil || !strings.Contains(err.Error(), "no container") {
		t.Errorf("error = %v, want mention of missing container", err)
	}
}

func TestApply_Update_LocalImageFailsBeforePull(t *testing.T) {
	mock := runtime.NewMockRuntime()
	settings := config.DefaultSettings()
	settings.Image = "scratchpad:dev"
	r := NewReconciler(mock, settings)

	err := r.Apply(context.Background(), testDen(t), Update())
	if err == nil || !strings.Contains(err.Error(), "local image") {
		t.Fatalf("error = %v, want local image rejection", err)
	}
	if calls := mock.GetCallsFor("Pull"); len(calls) != 0 {
		t.Errorf("no pull may happen for a local-only image, got %d", len(calls))
	}
}

func TestApply_Update_CurrentReportsUpToDate(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateRunning)

	if err := r.Apply(context.Background(), testDen(t), Update()); err != nil {
		t.Fatalf("Apply(Update) error = %v", err)
	}

	if calls := mock.GetCallsFor("Pull"); len(calls) != 1 {
		t.Errorf("expected 1 Pull, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Remove"); len(calls) != 0 {
		t.Errorf("an up-to-date container must not be removed, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 0 {
		t.Errorf("an up-to-date container must not be recreated, got %d", len(calls))
	}
}

func TestApply_Update_StaleRecreates(t *testing.T) {
	r, mock := newTestReconciler(t)
	seedContainer(mock, runtime.StateStopped)
	mock.Containers[testName].ImageID = "sha256:old"

	if err := r.Apply(context.Background(), testDen(t), Update()); err != nil {
		t.Fatalf("Apply(Update) error = %v", err)
	}

	if calls := mock.GetCallsFor("Remove"); len(calls) != 1 {
		t.Errorf("stale container should be removed, got %d removes", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 1 {
		t.Errorf("stale container should be recreated, got %d runs", len(calls))
	}
}

func TestApply_Update_AbsentPullsOnly(t *testing.T) {
	r, mock := newTestReconciler(t)

	if err := r.Apply(context.Background(), testDen(t), Update()); err != nil {
		t.Fatalf("Apply(Update) error = %v", err)
	}

	if calls := mock.GetCallsFor("Pull"); len(calls) != 1 {
		t.Errorf("expected 1 Pull, got %d", len(calls))
	}
	if calls := mock.GetCallsFor("Run"); len(calls) != 0 {
		t.Errorf("update must not create a container, got %d runs", len(calls))
	}
}

func TestApply_Shell(t *testing.T) {
	t.Run("absent errors", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		err := r.Apply(context.Background(), testDen(t), Shell())
		if err == nil || !strings.Contains(err.Error(), "no container") {
			t.Errorf("error = %v, want mention of missing container", err)
		}
	})

	t.Run("stopped errors", func(t *testing.T) {
		r, mock := newTestReconciler(t)
		seedContainer(mock, runtime.StateStopped)
		err := r.Apply(context.Background(), testDen(t), Shell())
		if err == nil || !strings.Contains(err.Error(), "not running") {
			t.Errorf("error = %v, want not-running rejection", err)
		}
	})

	t.Run("running opens a session", func(t *testing.T) {
		r, mock := newTestReconciler(t)
		seedContainer(mock, runtime.StateRunning)

		if err := r.Apply(context.Background(), testDen(t), Shell()); err != nil {
			t.Fatalf("Apply(Shell) error = %v", err)
		}

		calls := mock.GetCallsFor("Exec")
		if len(calls) != 1 {
			t.Fatalf("expected 1 Exec, got %d", len(calls))
		}
		argv := calls[0].Args[1].([]string)
		if len(argv) == 0 || argv[0] != config.DefaultShell {
			t.Errorf("exec argv = %v, want the configured shell", argv)
		}
	})
}

// Every state-action pair must resolve to a runtime sequence, a
// precondition error, or the one documented no-op (stop on stopped).
func TestApply_StateActionCompleteness(t *testing.T) {
	actions := []Action{Enter(nil, nil), Stop(), Remove(), Restart(), Update(), Shell()}
	states := []runtime.State{runtime.StateAbsent, runtime.StateStopped, runtime.StateRunning}

	for _, act := range actions {
		for _, state := range states {
			t.Run(fmt.Sprintf("%s/%s", act.Kind, state), func(t *testing.T) {
				r, mock := newTestReconciler(t)
				if state != runtime.StateAbsent {
					seedContainer(mock, state)
				}

				err := r.Apply(context.Background(), testDen(t), act)

				verbs := 0
				for _, call := range mock.GetCalls() {
					if call.Method != "Inspect" && call.Method != "ImageID" {
						verbs++
					}
				}

				noOp := act.Kind == ActionStop && state == runtime.StateStopped
				if err == nil && verbs == 0 && !noOp {
					t.Errorf("pair (%s, %s) did nothing and reported nothing", act.Kind, state)
				}
				if err != nil && strings.Contains(err.Error(), "unknown action") {
					t.Errorf("pair (%s, %s) fell through the dispatch table", act.Kind, state)
				}
			})
		}
	}
}

func TestStatus(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		rep := r.Status(context.Background(), testDen(t))
		if rep.State != runtime.StateAbsent {
			t.Errorf("State = %v, want absent", rep.State)
		}
		if rep.Name != testName || rep.Path != testPath {
			t.Errorf("identity not carried: %+v", rep)
		}
	})

	t.Run("running and current", func(t *testing.T) {
		r, mock := newTestReconciler(t)
		seedContainer(mock, runtime.StateRunning)

		rep := r.Status(context.Background(), testDen(t))
		if rep.State != runtime.StateRunning {
			t.Errorf("State = %v, want running", rep.State)
		}
		if rep.Stale {
			t.Error("container with the current image reported stale")
		}
		if rep.ContainerImage != config.DefaultImage {
			t.Errorf("ContainerImage = %q", rep.ContainerImage)
		}
	})

	t.Run("stale", func(t *testing.T) {
		r, mock := newTestReconciler(t)
		seedContainer(mock, runtime.StateRunning)
		mock.Containers[testName].ImageID = "sha256:old"

		rep := r.Status(context.Background(), testDen(t))
		if !rep.Stale {
			t.Error("container behind the local image should report stale")
		}
	})
}
