package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Scale != 1.35 || cfg.Format != "png" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcart.toml")
	content := `
scale  = 2.0
format = "jpeg"
font   = "/fonts/custom.ttf"

[remote]
username = "svc"
password = "hunter2"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scale != 2.0 || cfg.Format != "jpeg" || cfg.Font != "/fonts/custom.ttf" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Remote.Username != "svc" || cfg.Remote.Password != "hunter2" {
		t.Errorf("remote = %+v", cfg.Remote)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcart.toml")
	if err := os.WriteFile(path, []byte(`font = "x.ttf"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scale != 1.35 || cfg.Format != "png" || cfg.Font != "x.ttf" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for explicitly named missing file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcart.toml")
	if err := os.WriteFile(path, []byte("scale = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
