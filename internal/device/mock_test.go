package device

import (
	"context"
	"sync"
	"time"

	"github.com/peasenet/homelink/internal/bridges/sprinkler"
)

// mockRepository is an in-memory Repository for tests.
type mockRepository struct {
	mu      sync.Mutex
	devices map[string]Device
	lists   map[string][]string

	getErr  error
	putErr  error
	listErr error

	putCalls []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		devices: make(map[string]Device),
		lists:   make(map[string][]string),
	}
}

func (m *mockRepository) GetDevice(ctx context.Context, id string) (Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return Default(), m.getErr
	}
	d, ok := m.devices[id]
	if !ok {
		return Default(), nil
	}
	return d, nil
}

func (m *mockRepository) PutDevice(ctx context.Context, d Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls = append(m.putCalls, d.ID)
	if m.putErr != nil {
		return m.putErr
	}
	m.devices[d.ID] = d
	return nil
}

func (m *mockRepository) RemoveDevice(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.devices, id)
	return nil
}

func (m *mockRepository) DeviceList(ctx context.Context, ownerID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]string{}, m.lists[ownerID]...), nil
}

func (m *mockRepository) SetDeviceList(ctx context.Context, ownerID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[ownerID] = append([]string{}, ids...)
	return nil
}

func (m *mockRepository) wrotebackTo(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.putCalls {
		if call == id {
			return true
		}
	}
	return false
}

// fakeSprinkler is a scripted SprinklerControl.
type fakeSprinkler struct {
	mu sync.Mutex

	system    bool
	systemErr error
	zones     []sprinkler.Zone
	zonesErr  error

	setSystemCalls []bool
	setZoneCalls   []struct {
		Host  string
		Index int
		On    bool
	}
}

func (f *fakeSprinkler) SystemState(ctx context.Context, host string) (bool, error) {
	return f.system, f.systemErr
}

func (f *fakeSprinkler) SetSystem(ctx context.Context, host string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setSystemCalls = append(f.setSystemCalls, enabled)
	return f.systemErr
}

func (f *fakeSprinkler) Zones(ctx context.Context, host string) ([]sprinkler.Zone, error) {
	return f.zones, f.zonesErr
}

func (f *fakeSprinkler) SetZone(ctx context.Context, host string, zoneIndex int, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setZoneCalls = append(f.setZoneCalls, struct {
		Host  string
		Index int
		On    bool
	}{host, zoneIndex, on})
	return f.zonesErr
}

// fakeTV is a scripted TVStatus.
type fakeTV struct {
	status map[string]any
	err    error
	calls  int
}

func (f *fakeTV) Status(ctx context.Context, host string) (map[string]any, error) {
	f.calls++
	return f.status, f.err
}

// fakeUPS is a scripted UPSStatus.
type fakeUPS struct {
	status map[string]any
	err    error
}

func (f *fakeUPS) Status(ctx context.Context, host string) (map[string]any, error) {
	return f.status, f.err
}

// fakeProber marks specific hosts reachable.
type fakeProber struct {
	reachable map[string]bool
}

func (f *fakeProber) Probe(ctx context.Context, host string) bool {
	return f.reachable[host]
}

// testFixture bundles a Service with its fakes.
type testFixture struct {
	svc    *Service
	repo   *mockRepository
	spr    *fakeSprinkler
	tv     *fakeTV
	ups    *fakeUPS
	prober *fakeProber
}

func newTestFixture() *testFixture {
	f := &testFixture{
		repo:   newMockRepository(),
		spr:    &fakeSprinkler{},
		tv:     &fakeTV{},
		ups:    &fakeUPS{},
		prober: &fakeProber{reachable: make(map[string]bool)},
	}
	f.svc = NewService(f.repo, f.spr, f.tv, f.ups, Config{
		ProbeTimeout:  100 * time.Millisecond,
		StatusTimeout: 100 * time.Millisecond,
		Concurrency:   2,
	})
	f.svc.SetProber(f.prober)
	return f
}
