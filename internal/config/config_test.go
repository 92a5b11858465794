package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "tasktracker" {
		t.Fatalf("app name = %q", cfg.AppName)
	}
	if cfg.Store.Path != "./data/tasktracker.db" || cfg.Store.Bucket != "tasktracker" {
		t.Fatalf("store defaults = %+v", cfg.Store)
	}
	if cfg.Login.Delay != 800*time.Millisecond {
		t.Fatalf("login delay = %s", cfg.Login.Delay)
	}
	if cfg.Logger.Level != "info" {
		t.Fatalf("log level = %q", cfg.Logger.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_PATH", "/tmp/alt.db")
	t.Setenv("LOGIN_DELAY", "0s")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_ENCODING", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Path != "/tmp/alt.db" {
		t.Fatalf("store path = %q", cfg.Store.Path)
	}
	if cfg.Login.Delay != 0 {
		t.Fatalf("login delay = %s", cfg.Login.Delay)
	}
	// bare integers are read as seconds
	if cfg.Context.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %s", cfg.Context.ShutdownTimeout)
	}
	if cfg.Logger.Encoding != "json" {
		t.Fatalf("encoding = %q", cfg.Logger.Encoding)
	}
}
