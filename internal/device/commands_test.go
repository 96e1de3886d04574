package device

import (
	"context"
	"errors"
	"testing"
)

func TestSetStateZone(t *testing.T) {
	f := newTestFixture()
	const hostID = "11111111-2222-3333-4444-555555555555"
	f.repo.devices[hostID] = Device{
		ID:             hostID,
		NetworkAddress: "10.0.0.30",
		Kind:           KindSprinklerHost,
		Hardware:       HardwarePi,
		LiveStatus:     false,
	}

	if err := f.svc.SetState(context.Background(), hostID+"-3", true); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}
	if len(f.spr.setZoneCalls) != 1 {
		t.Fatalf("SetZone called %d times, want 1", len(f.spr.setZoneCalls))
	}
	call := f.spr.setZoneCalls[0]
	if call.Host != "10.0.0.30" || call.Index != 3 || !call.On {
		t.Errorf("SetZone call = %+v", call)
	}
}

func TestSetStateHost(t *testing.T) {
	f := newTestFixture()
	f.repo.devices["host-B"] = Device{
		ID:             "host-B",
		NetworkAddress: "10.0.0.30",
		Kind:           KindSprinklerHost,
		Hardware:       HardwarePi,
		LiveStatus:     false,
	}

	if err := f.svc.SetState(context.Background(), "host-B", false); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}
	if len(f.spr.setSystemCalls) != 1 || f.spr.setSystemCalls[0] != false {
		t.Errorf("SetSystem calls = %v", f.spr.setSystemCalls)
	}
}

func TestSetStateUnsupportedKind(t *testing.T) {
	f := newTestFixture()
	f.repo.devices["switch-A"] = Device{
		ID:         "switch-A",
		Kind:       KindSwitch,
		Hardware:   HardwareArduino,
		LiveStatus: false,
	}

	err := f.svc.SetState(context.Background(), "switch-A", true)
	if !errors.Is(err, ErrUnsupportedCommand) {
		t.Fatalf("SetState() error = %v, want ErrUnsupportedCommand", err)
	}
}

func TestSetStateUnknownDevice(t *testing.T) {
	f := newTestFixture()

	err := f.svc.SetState(context.Background(), "ghost", true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetState() error = %v, want ErrNotFound", err)
	}
}

func TestAddDeviceGeneratesIDAndLists(t *testing.T) {
	f := newTestFixture()

	added, err := f.svc.AddDevice(context.Background(), "U1", Device{
		Kind:        KindLight,
		Hardware:    HardwareArduino,
		DisplayName: "Porch Light",
	})
	if err != nil {
		t.Fatalf("AddDevice() error = %v", err)
	}
	if added.ID == "" {
		t.Fatal("AddDevice() did not generate an id")
	}
	if added.OwnerID != "U1" {
		t.Errorf("OwnerID = %q, want U1", added.OwnerID)
	}
	if added.LiveStatus != false {
		t.Errorf("LiveStatus = %v, want never-polled sentinel false", added.LiveStatus)
	}

	ids, err := f.repo.DeviceList(context.Background(), "U1")
	if err != nil {
		t.Fatalf("DeviceList() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != added.ID {
		t.Errorf("device list = %v, want [%s]", ids, added.ID)
	}
}

func TestAddDeviceRejectsDuplicate(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U1"] = []string{"light-1"}

	_, err := f.svc.AddDevice(context.Background(), "U1", Device{
		ID:       "light-1",
		Kind:     KindLight,
		Hardware: HardwareArduino,
	})
	if !errors.Is(err, ErrInvalidDevice) {
		t.Fatalf("AddDevice() error = %v, want ErrInvalidDevice", err)
	}
}

func TestRemoveDevice(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U1"] = []string{"light-1", "switch-A"}
	f.repo.devices["light-1"] = Device{
		ID:         "light-1",
		Kind:       KindLight,
		Hardware:   HardwareArduino,
		OwnerID:    "U1",
		LiveStatus: false,
	}

	if err := f.svc.RemoveDevice(context.Background(), "U1", "light-1"); err != nil {
		t.Fatalf("RemoveDevice() error = %v", err)
	}

	ids, _ := f.repo.DeviceList(context.Background(), "U1")
	if len(ids) != 1 || ids[0] != "switch-A" {
		t.Errorf("device list after removal = %v", ids)
	}
	if _, ok := f.repo.devices["light-1"]; ok {
		t.Error("record still present after removal")
	}
}

func TestRemoveDeviceOwnerMismatch(t *testing.T) {
	f := newTestFixture()
	f.repo.lists["U1"] = []string{"light-1"}
	f.repo.devices["light-1"] = Device{
		ID:         "light-1",
		Kind:       KindLight,
		Hardware:   HardwareArduino,
		OwnerID:    "someone-else",
		LiveStatus: false,
	}

	err := f.svc.RemoveDevice(context.Background(), "U1", "light-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveDevice() error = %v, want ErrNotFound", err)
	}
	if _, ok := f.repo.devices["light-1"]; !ok {
		t.Error("record deleted despite owner mismatch")
	}
}
