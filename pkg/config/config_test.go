package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Engine != "pdflatex" {
		t.Errorf("Engine = %q, want pdflatex", cfg.Render.Engine)
	}
	if cfg.Cache.Dir != "/tmp/xdg-cache/tikzlayout" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Server.Addr != ":8080" || cfg.Log.Level != "info" {
		t.Errorf("Server.Addr = %q, Log.Level = %q", cfg.Server.Addr, cfg.Log.Level)
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, `
[render]
engine = "lualatex"
formats = ["tex", "pdf"]

[cache]
ttl = "72h"

[server]
addr = ":9000"
`)
	t.Setenv("TIKZLAYOUT_ADDR", ":7000")
	t.Setenv("TIKZLAYOUT_REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Engine != "lualatex" || len(cfg.Render.Formats) != 2 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Cache.TTL != 72*time.Hour {
		t.Errorf("Cache.TTL = %v, want 72h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want the environment to win", cfg.Server.Addr)
	}
	if cfg.Server.RedisAddr != "redis:6379" {
		t.Errorf("Server.RedisAddr = %q", cfg.Server.RedisAddr)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("Server.MaxBodyBytes = %d, want the default kept", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		code errs.Code
	}{
		{"unknown key", "[render]\ncolour = 1\n", nil, errs.ErrCodeInvalidInput},
		{"bad toml", "[render\n", nil, errs.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"svg\"]\n", nil, errs.ErrCodeInvalidInput},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil, errs.ErrCodeInvalidInput},
		{"bad env", "", map[string]string{"TIKZLAYOUT_CACHE_TTL": "soon"}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			if !errs.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApplyEnvFormats(t *testing.T) {
	t.Setenv("TIKZLAYOUT_FORMATS", "tex,json")
	t.Setenv("TIKZLAYOUT_NO_CACHE", "true")
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "json" {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled = false, want true")
	}
}
