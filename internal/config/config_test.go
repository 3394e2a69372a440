package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Excel.MaxRows != DefaultMaxRows {
		t.Errorf("default max_rows = %d", cfg.Excel.MaxRows)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("default log level = %q", cfg.Log.Level)
	}
	if cfg.Output.Pretty {
		t.Error("pretty output should default to false")
	}
}

func TestLoadFromHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".officeskills")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "excel:\n  max_rows: 25\nlog:\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Excel.MaxRows != 25 {
		t.Errorf("max_rows = %d, want 25", cfg.Excel.MaxRows)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoadRejectsNegativeMaxRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("excel:\n  max_rows: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative max_rows")
	}
}

func TestDefaultMatchesLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	loaded, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *Default() != *loaded {
		t.Errorf("Default() = %+v, Load(\"\") = %+v", *Default(), *loaded)
	}
}
