package runtime

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MockRuntime is an in-memory implementation of Runtime for testing
type MockRuntime struct {
	mu sync.RWMutex

	// Containers tracks the state of mock containers by name
	Containers map[string]*Details

	// Images maps image references to local image IDs
	Images map[string]string

	// Volumes tracks named volumes
	Volumes map[string]bool

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Containers: make(map[string]*Details),
		Images:     make(map[string]string),
		Volumes:    make(map[string]bool),
		Errors:     make(map[string]error),
		CallLog:    make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddContainer seeds a container in the given state
func (m *MockRuntime) AddContainer(name string, state State) *Details {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := &Details{
		ID:      "mock-" + name,
		Name:    name,
		Running: state == StateRunning,
		Status:  "exited",
		Labels:  make(map[string]string),
	}
	if state == StateRunning {
		d.Status = "running"
	}
	m.Containers[name] = d
	return d
}

// SetImage registers a local image ID for a reference
func (m *MockRuntime) SetImage(ref, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Images[ref] = id
}

// GetCalls returns all recorded calls
func (m *MockRuntime) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.CallLog))
	copy(calls, m.CallLog)
	return calls
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Reset clears all state
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers = make(map[string]*Details)
	m.Images = make(map[string]string)
	m.Volumes = make(map[string]bool)
	m.Errors = make(map[string]error)
	m.CallLog = make([]MockCall, 0)
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// Ping verifies the daemon is reachable
func (m *MockRuntime) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Ping")

	return m.Errors["Ping"]
}

// Inspect returns details for a container, or ErrNotFound
func (m *MockRuntime) Inspect(ctx context.Context, name string) (*Details, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Inspect", name)

	if err, ok := m.Errors["Inspect"]; ok {
		return nil, err
	}

	if d, ok := m.Containers[name]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}

// Run creates a container in the running state.
// A name conflict is rejected the way the real runtime rejects it.
func (m *MockRuntime) Run(ctx context.Context, opts RunOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Run", opts)

	if err, ok := m.Errors["Run"]; ok {
		return err
	}

	if _, exists := m.Containers[opts.Name]; exists {
		return fmt.Errorf("container name %q is already in use", opts.Name)
	}

	imageID, ok := m.Images[opts.Image]
	if !ok {
		imageID = "sha256:mock-" + opts.Image
	}

	labels := make(map[string]string, len(opts.Labels))
	for k, v := range opts.Labels {
		labels[k] = v
	}

	m.Containers[opts.Name] = &Details{
		ID:        "mock-" + opts.Name,
		Name:      opts.Name,
		Running:   true,
		Status:    "running",
		ImageID:   imageID,
		ImageName: opts.Image,
		Labels:    labels,
	}

	return nil
}

// Start resumes a stopped container
func (m *MockRuntime) Start(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", name)

	if err, ok := m.Errors["Start"]; ok {
		return err
	}

	d, ok := m.Containers[name]
	if !ok {
		return fmt.Errorf("no such container: %s", name)
	}
	d.Running = true
	d.Status = "running"
	return nil
}

// Attach joins a running container's session
func (m *MockRuntime) Attach(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Attach", name)

	if err, ok := m.Errors["Attach"]; ok {
		return err
	}

	if _, ok := m.Containers[name]; !ok {
		return fmt.Errorf("no such container: %s", name)
	}
	return nil
}

// Exec opens an additional session
func (m *MockRuntime) Exec(ctx context.Context, name string, command []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exec", name, command)

	if err, ok := m.Errors["Exec"]; ok {
		return err
	}

	if _, ok := m.Containers[name]; !ok {
		return fmt.Errorf("no such container: %s", name)
	}
	return nil
}

// Stop stops a running container
func (m *MockRuntime) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}

	d, ok := m.Containers[name]
	if !ok {
		return fmt.Errorf("no such container: %s", name)
	}
	d.Running = false
	d.Status = "exited"
	return nil
}

// Remove deletes a container
func (m *MockRuntime) Remove(ctx context.Context, name string, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Remove", name, force)

	if err, ok := m.Errors["Remove"]; ok {
		return err
	}

	if _, ok := m.Containers[name]; !ok {
		return fmt.Errorf("no such container: %s", name)
	}
	delete(m.Containers, name)
	return nil
}

// Pull fetches an image
func (m *MockRuntime) Pull(ctx context.Context, image string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Pull", image)

	if err, ok := m.Errors["Pull"]; ok {
		return err
	}

	if _, ok := m.Images[image]; !ok {
		m.Images[image] = "sha256:pulled-" + image
	}
	return nil
}

// ImageID resolves an image reference to its local image ID
func (m *MockRuntime) ImageID(ctx context.Context, image string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ImageID", image)

	if err, ok := m.Errors["ImageID"]; ok {
		return "", err
	}

	id, ok := m.Images[image]
	if !ok {
		return "", fmt.Errorf("no such image: %s", image)
	}
	return id, nil
}

// ListByLabel enumerates containers carrying a label key,
// sorted by name for deterministic assertions
func (m *MockRuntime) ListByLabel(ctx context.Context, key string) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListByLabel", key)

	if err, ok := m.Errors["ListByLabel"]; ok {
		return nil, err
	}

	var summaries []Summary
	for _, d := range m.Containers {
		project, ok := d.Labels[key]
		if !ok {
			continue
		}

		state := StateStopped
		if d.Running {
			state = StateRunning
		}

		summaries = append(summaries, Summary{
			Name:    d.Name,
			Project: project,
			Image:   d.ImageName,
			State:   state,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// VolumeExists reports whether a named volume exists
func (m *MockRuntime) VolumeExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("VolumeExists", name)

	if err, ok := m.Errors["VolumeExists"]; ok {
		return false, err
	}
	return m.Volumes[name], nil
}

// VolumeRemove deletes a named volume
func (m *MockRuntime) VolumeRemove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("VolumeRemove", name)

	if err, ok := m.Errors["VolumeRemove"]; ok {
		return err
	}

	if !m.Volumes[name] {
		return fmt.Errorf("no such volume: %s", name)
	}
	delete(m.Volumes, name)
	return nil
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
