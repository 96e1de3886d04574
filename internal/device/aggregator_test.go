package device

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/peasenet/homelink/internal/bridges/sprinkler"
)

func TestListForUserSingleSwitch(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U1"] = []string{"switch-A"}
	f.repo.devices["switch-A"] = Device{
		ID:         "switch-A",
		Kind:       KindSwitch,
		Hardware:   HardwareArduino,
		LiveStatus: true,
	}

	devices, err := f.svc.ListForUser(context.Background(), "U1")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ListForUser() returned %d devices, want 1", len(devices))
	}
	if devices[0].ID != "switch-A" || devices[0].LiveStatus != true {
		t.Errorf("device = %+v", devices[0])
	}
}

func TestListForUserReachableHostExpandsZonesBeforeHost(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U2"] = []string{"host-B"}
	f.repo.devices["host-B"] = Device{
		ID:             "host-B",
		NetworkAddress: "10.0.0.30",
		Kind:           KindSprinklerHost,
		Hardware:       HardwarePi,
		LiveStatus:     false,
	}
	f.prober.reachable["10.0.0.30"] = true
	f.spr.system = true
	f.spr.zones = []sprinkler.Zone{
		{Index: 0, Name: "Front Lawn", Position: 0},
		{Index: 1, Name: "Back Lawn", Position: 1},
	}

	devices, err := f.svc.ListForUser(context.Background(), "U2")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("ListForUser() returned %d devices, want 3", len(devices))
	}
	if devices[0].ID != "host-B-0" || devices[1].ID != "host-B-1" {
		t.Errorf("zone ids = %q, %q", devices[0].ID, devices[1].ID)
	}
	if devices[2].ID != "host-B" || devices[2].Kind != KindSprinklerHost {
		t.Errorf("last entry = %+v, want the host itself", devices[2])
	}
}

func TestListForUserUnreachableHostKeptDegraded(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U2"] = []string{"host-B"}
	f.repo.devices["host-B"] = Device{
		ID:             "host-B",
		NetworkAddress: "10.0.0.30",
		Kind:           KindSprinklerHost,
		Hardware:       HardwarePi,
		LiveStatus:     true,
	}
	// prober reports unreachable

	devices, err := f.svc.ListForUser(context.Background(), "U2")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ListForUser() returned %d devices, want just the host", len(devices))
	}
	if devices[0].ID != "host-B" {
		t.Errorf("device = %+v", devices[0])
	}
	if devices[0].LiveStatus != false {
		t.Errorf("LiveStatus = %v, want degraded false", devices[0].LiveStatus)
	}
}

func TestListForUserPreservesInputOrder(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U3"] = []string{"switch-C", "switch-A", "switch-B"}
	for _, id := range []string{"switch-A", "switch-B", "switch-C"} {
		f.repo.devices[id] = Device{ID: id, Kind: KindSwitch, Hardware: HardwareArduino, LiveStatus: false}
	}

	devices, err := f.svc.ListForUser(context.Background(), "U3")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	got := []string{devices[0].ID, devices[1].ID, devices[2].ID}
	want := []string{"switch-C", "switch-A", "switch-B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestListForUserIdempotent(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U2"] = []string{"host-B", "switch-A"}
	f.repo.devices["host-B"] = Device{
		ID:             "host-B",
		NetworkAddress: "10.0.0.30",
		Kind:           KindSprinklerHost,
		Hardware:       HardwarePi,
		LiveStatus:     false,
	}
	f.repo.devices["switch-A"] = Device{ID: "switch-A", Kind: KindSwitch, Hardware: HardwareArduino, LiveStatus: true}
	f.prober.reachable["10.0.0.30"] = true
	f.spr.zones = []sprinkler.Zone{{Index: 0, Name: "Front Lawn"}}

	first, err := f.svc.ListForUser(context.Background(), "U2")
	if err != nil {
		t.Fatalf("first ListForUser() error = %v", err)
	}
	second, err := f.svc.ListForUser(context.Background(), "U2")
	if err != nil {
		t.Fatalf("second ListForUser() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive lists differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestListForUserTVRefreshedTwice(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U4"] = []string{"tv-1"}
	f.repo.devices["tv-1"] = Device{
		ID:             "tv-1",
		NetworkAddress: "10.0.0.5",
		Kind:           KindTV,
		Hardware:       HardwareLG,
		LiveStatus:     map[string]any{"on": false},
	}
	f.tv.status = map[string]any{"on": true}

	if _, err := f.svc.ListForUser(context.Background(), "U4"); err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if f.tv.calls != 2 {
		t.Errorf("tv status queried %d times, want 2", f.tv.calls)
	}
}

func TestListForUserBatteryFailurePropagates(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U5"] = []string{"ups-1"}
	f.repo.devices["ups-1"] = Device{
		ID:             "ups-1",
		NetworkAddress: "10.0.0.9",
		Kind:           KindBattery,
		Hardware:       HardwarePi,
		LiveStatus:     false,
	}
	f.ups.err = errors.New("connection refused")

	if _, err := f.svc.ListForUser(context.Background(), "U5"); !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("ListForUser() error = %v, want ErrRefreshFailed", err)
	}
}

func TestListForUserEmptyList(t *testing.T) {
	f := newTestFixture()

	devices, err := f.svc.ListForUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("ListForUser() = %+v, want empty", devices)
	}
}
