package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("HOMELINK_CONFIG")
	defer os.Setenv("HOMELINK_CONFIG", originalEnv)

	os.Setenv("HOMELINK_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDocstoreURL verifies run fails when the document store URL
// is absent, since device records cannot be loaded without it.
func TestRun_MissingDocstoreURL(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
bridge:
  id: test-bridge

docstore:
  base_url: ""

database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: info
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 8080

security:
  jwt:
    secret: "test-secret-for-development-only"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("HOMELINK_CONFIG")
	defer os.Setenv("HOMELINK_CONFIG", originalEnv)
	os.Setenv("HOMELINK_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty docstore base_url")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("HOMELINK_CONFIG")
	defer os.Setenv("HOMELINK_CONFIG", originalEnv)

	os.Unsetenv("HOMELINK_CONFIG")

	path := getConfigPath()
	if path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("HOMELINK_CONFIG")
	defer os.Setenv("HOMELINK_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("HOMELINK_CONFIG", expected)

	path := getConfigPath()
	if path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestStateAnnouncer_NilSinks verifies the announcer tolerates absent sinks.
func TestStateAnnouncer_NilSinks(t *testing.T) {
	a := &stateAnnouncer{}
	if err := a.AnnounceState("dev-1", []byte(`{"id":"dev-1"}`)); err != nil {
		t.Errorf("AnnounceState() with nil sinks = %v, want nil", err)
	}
}
