package config_test

import (
	"testing"

	"github.com/openplm/plmseed/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Unset any env vars that might be set.
	t.Setenv("PLMSEED_HOST", "")
	t.Setenv("PLMSEED_USER", "")
	t.Setenv("PLMSEED_PASSWORD", "")
	t.Setenv("PLMSEED_ADDR", "")
	t.Setenv("PLMSEED_DB", "")

	cfg := config.Load()

	if cfg.Host != "http://localhost:8080" {
		t.Errorf("Host = %q, want %q", cfg.Host, "http://localhost:8080")
	}
	if cfg.User != "admin" {
		t.Errorf("User = %q, want %q", cfg.User, "admin")
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, ":memory:")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PLMSEED_HOST", "http://plm.example.com")
	t.Setenv("PLMSEED_USER", "rob")
	t.Setenv("PLMSEED_PASSWORD", "secret")
	t.Setenv("PLMSEED_ADDR", ":9090")
	t.Setenv("PLMSEED_DB", "/tmp/test.db")

	cfg := config.Load()

	if cfg.Host != "http://plm.example.com" {
		t.Errorf("Host = %q, want %q", cfg.Host, "http://plm.example.com")
	}
	if cfg.User != "rob" {
		t.Errorf("User = %q, want %q", cfg.User, "rob")
	}
	if cfg.Password != "secret" {
		t.Errorf("Password = %q, want %q", cfg.Password, "secret")
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
}
