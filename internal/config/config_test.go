package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panegrid.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"USER=sam"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Workers != 2 || cfg.App.TTL != 30*time.Second || !cfg.App.Mouse {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.Viewer != "sam" {
		t.Fatalf("expected the login name as viewer, got %q", cfg.App.Viewer)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfig(t, `
viewer = "from-file"
workers = 4
ttl = "5m"
database = "shop.db"
trace = true
screen = "stash"
`)
	env := []string{
		"PANEGRID_CONFIG=" + path,
		"PANEGRID_WORKERS=6",
	}
	cfg, err := LoadArgs([]string{"--viewer", "from-flag"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Viewer != "from-flag" {
		t.Fatalf("flag should win, got %q", cfg.App.Viewer)
	}
	if cfg.App.Screen != "stash" {
		t.Fatalf("file should pick the screen, got %q", cfg.App.Screen)
	}
	if cfg.App.Workers != 6 {
		t.Fatalf("env should beat the file, got %d", cfg.App.Workers)
	}
	if cfg.App.TTL != 5*time.Minute || cfg.App.Database != "shop.db" || !cfg.Logging.Trace {
		t.Fatalf("file values not applied: %+v %+v", cfg.App, cfg.Logging)
	}
	if cfg.File != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.File)
	}
}

func TestLoadArgsConfigFlag(t *testing.T) {
	path := writeConfig(t, `mouse = false`)
	cfg, err := LoadArgs([]string{"--config=" + path}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Mouse {
		t.Fatalf("expected mouse disabled by file")
	}
}

func TestLoadArgsRejectsBadInput(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "-1"}, nil); err == nil {
		t.Fatalf("expected negative width to fail")
	}
	if _, err := LoadArgs([]string{"--unknown"}, nil); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
	path := writeConfig(t, `ttl = "soon"`)
	if _, err := LoadArgs([]string{"--config", path}, nil); err == nil {
		t.Fatalf("expected bad ttl to fail")
	}
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, nil); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--workers", "0"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected zero workers to fail validation")
	}
}
