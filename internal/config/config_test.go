package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultPriority != "medium" {
		t.Errorf("DefaultPriority = %s, want medium", cfg.DefaultPriority)
	}
	if d, err := cfg.DeskEvery(); err != nil || d != 30*time.Second {
		t.Errorf("DeskEvery = (%s, %v), want 30s", d, err)
	}
	if filepath.Base(cfg.DBPath) != "hive.db" {
		t.Errorf("DBPath = %s, want .../hive.db", cfg.DBPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".hive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	yaml := "agent: Aria\ndefault_priority: high\ndesk_interval: 10s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Agent != "Aria" {
		t.Errorf("Agent = %s, want Aria", cfg.Agent)
	}
	if cfg.DefaultPriority != "high" {
		t.Errorf("DefaultPriority = %s, want high", cfg.DefaultPriority)
	}
	if d, err := cfg.DeskEvery(); err != nil || d != 10*time.Second {
		t.Errorf("DeskEvery = (%s, %v), want 10s", d, err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".hive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("agent: Aria\n"), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	t.Setenv("HIVE_AGENT", "Brook")
	t.Setenv("HIVE_DB_PATH", "/tmp/other.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Agent != "Brook" {
		t.Errorf("Agent = %s, want Brook (env wins over file)", cfg.Agent)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %s, want /tmp/other.db", cfg.DBPath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".hive")
	want := &Config{DBPath: filepath.Join(dir, "hive.db"), Agent: "Cole", DefaultPriority: "low", DeskInterval: "1m"}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Agent != "Cole" || got.DefaultPriority != "low" || got.DeskInterval != "1m" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
