package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peasenet/homelink/internal/bridges/sprinkler"
	"github.com/peasenet/homelink/internal/device"
	"github.com/peasenet/homelink/internal/infrastructure/config"
	"github.com/peasenet/homelink/internal/infrastructure/logging"
)

// fakeRepository is an in-memory device.Repository for handler tests.
type fakeRepository struct {
	devices map[string]device.Device
	lists   map[string][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		devices: make(map[string]device.Device),
		lists:   make(map[string][]string),
	}
}

func (r *fakeRepository) GetDevice(_ context.Context, id string) (device.Device, error) {
	d, ok := r.devices[id]
	if !ok {
		return device.Default(), nil
	}
	return d, nil
}

func (r *fakeRepository) PutDevice(_ context.Context, d device.Device) error {
	r.devices[d.ID] = d
	return nil
}

func (r *fakeRepository) RemoveDevice(_ context.Context, id string) error {
	delete(r.devices, id)
	return nil
}

func (r *fakeRepository) DeviceList(_ context.Context, ownerID string) ([]string, error) {
	ids, ok := r.lists[ownerID]
	if !ok {
		return []string{}, nil
	}
	return ids, nil
}

func (r *fakeRepository) SetDeviceList(_ context.Context, ownerID string, ids []string) error {
	r.lists[ownerID] = ids
	return nil
}

// stubSprinkler satisfies device.SprinklerControl with fixed responses.
type stubSprinkler struct {
	systemOn bool
	zones    []sprinkler.Zone
}

func (s *stubSprinkler) SystemState(_ context.Context, _ string) (bool, error) {
	return s.systemOn, nil
}

func (s *stubSprinkler) SetSystem(_ context.Context, _ string, _ bool) error { return nil }

func (s *stubSprinkler) Zones(_ context.Context, _ string) ([]sprinkler.Zone, error) {
	return s.zones, nil
}

func (s *stubSprinkler) SetZone(_ context.Context, _ string, _ int, _ bool) error { return nil }

type stubTV struct{}

func (stubTV) Status(_ context.Context, _ string) (map[string]any, error) {
	return map[string]any{"power": "on"}, nil
}

type stubUPS struct{}

func (stubUPS) Status(_ context.Context, _ string) (map[string]any, error) {
	return map[string]any{"charge": 100.0}, nil
}

// stubProber reports every host reachable.
type stubProber struct{}

func (stubProber) Probe(_ context.Context, _ string) bool { return true }

// testServer wires a Server with fakes and returns it with its router.
func testServer(t *testing.T, repo *fakeRepository) (*Server, http.Handler) {
	t.Helper()

	svc := device.NewService(repo, &stubSprinkler{}, stubTV{}, stubUPS{}, device.Config{})
	svc.SetProber(stubProber{})

	logger := logging.New(config.LoggingConfig{Level: "error", Format: "json"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{Host: "127.0.0.1", Port: 8080},
		WS:     config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10},
		Security: config.SecurityConfig{
			JWT:   config.JWTConfig{Secret: "test-secret", AccessTokenTTL: 60},
			Admin: config.AdminConfig{Username: "admin", Password: "hunter2"},
		},
		Logger:  logger,
		Devices: svc,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv, srv.buildRouter()
}

// login performs a real login and returns the bearer token.
func login(t *testing.T, router http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(loginRequest{Username: "admin", Password: "hunter2"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("login returned empty access token")
	}
	return resp.AccessToken
}

func TestHandleHealth(t *testing.T) {
	_, router := testServer(t, newFakeRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       `{"username":"admin","password":"hunter2"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"username":"admin","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			body:       `{"username":"nobody","password":"hunter2"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	_, router := testServer(t, newFakeRepository())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, router := testServer(t, newFakeRepository())

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/devices", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleGetDevice(t *testing.T) {
	repo := newFakeRepository()
	repo.devices["switch-1"] = device.Device{
		ID:          "switch-1",
		Kind:        device.KindSwitch,
		DisplayName: "Desk Lamp",
		OwnerID:     "alice",
		LiveStatus:  true,
	}

	_, router := testServer(t, repo)
	token := login(t, router)

	t.Run("known device", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/devices/switch-1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var d device.Device
		if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if d.ID != "switch-1" {
			t.Errorf("id = %q, want switch-1", d.ID)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/devices/no-such-device", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestHandleListDevices(t *testing.T) {
	repo := newFakeRepository()
	repo.devices["switch-1"] = device.Device{
		ID:      "switch-1",
		Kind:    device.KindSwitch,
		OwnerID: "alice",
	}
	repo.devices["switch-2"] = device.Device{
		ID:      "switch-2",
		Kind:    device.KindLight,
		OwnerID: "alice",
	}
	repo.lists["alice"] = []string{"switch-1", "switch-2"}

	_, router := testServer(t, repo)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/devices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		OwnerID string          `json:"owner_id"`
		Count   int             `json:"count"`
		Devices []device.Device `json:"devices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
	if len(body.Devices) != 2 || body.Devices[0].ID != "switch-1" {
		t.Errorf("devices = %+v, want switch-1 first", body.Devices)
	}
}

func TestHandleSetDeviceState(t *testing.T) {
	repo := newFakeRepository()
	repo.devices["switch-1"] = device.Device{
		ID:      "switch-1",
		Kind:    device.KindSwitch,
		OwnerID: "alice",
	}

	_, router := testServer(t, repo)
	token := login(t, router)

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{
			name:       "switch accepts no commands",
			id:         "switch-1",
			body:       `{"on":true}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown device",
			id:         "ghost",
			body:       `{"on":true}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing on field",
			id:         "switch-1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/devices/"+tt.id+"/state", bytes.NewBufferString(tt.body))
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleSyncDevices(t *testing.T) {
	repo := newFakeRepository()
	repo.devices["switch-1"] = device.Device{
		ID:          "switch-1",
		Kind:        device.KindSwitch,
		DisplayName: "Desk Lamp",
		OwnerID:     "alice",
	}
	repo.lists["alice"] = []string{"switch-1"}

	_, router := testServer(t, repo)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/fulfillment/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		AgentUserID string            `json:"agentUserId"`
		Devices     []json.RawMessage `json:"devices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.AgentUserID != "alice" {
		t.Errorf("agentUserId = %q, want alice", body.AgentUserID)
	}
	if len(body.Devices) != 1 {
		t.Errorf("devices len = %d, want 1", len(body.Devices))
	}
}

func TestWSTicketFlow(t *testing.T) {
	srv, router := testServer(t, newFakeRepository())
	token := login(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/ws-ticket", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Ticket string `json:"ticket"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Ticket == "" {
		t.Fatal("ticket is empty")
	}

	entry, ok := srv.tickets.consume(body.Ticket)
	if !ok {
		t.Fatal("ticket was not consumable")
	}
	if entry.userID != "admin" {
		t.Errorf("ticket user = %q, want admin", entry.userID)
	}

	// Tickets are single-use.
	if _, ok := srv.tickets.consume(body.Ticket); ok {
		t.Error("ticket was consumable twice")
	}
}
