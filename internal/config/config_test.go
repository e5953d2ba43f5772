package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/reoring/onboarding/internal/config"
)

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("ONBOARD_LANGUAGE", "ja")
	t.Setenv("ONBOARD_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "ja" || cfg.Log.Format != "text" {
		t.Fatalf("cfg: %+v", cfg)
	}
	if lvl, err := cfg.Level(); err != nil || lvl != slog.LevelDebug {
		t.Fatalf("level: %v %v", lvl, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("ONBOARD_LOG_FORMAT", "text")
	path := filepath.Join(t.TempDir(), "onboard.yaml")
	data := "language: en\ntimezone: UTC\nlog:\n  format: json\n  level: warn\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "warn" {
		t.Fatalf("cfg: %+v", cfg)
	}
	if loc, err := cfg.Location(); err != nil || loc.String() != "UTC" {
		t.Fatalf("location: %v %v", loc, err)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboard.yaml")
	if err := os.WriteFile(path, []byte("colour: blue\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := config.Config{Language: "en", Log: config.Log{Format: "text", Level: "info"}}
	cases := map[string]func(c *config.Config){
		"language": func(c *config.Config) { c.Language = "fr" },
		"format":   func(c *config.Config) { c.Log.Format = "xml" },
		"level":    func(c *config.Config) { c.Log.Level = "loud" },
		"timezone": func(c *config.Config) { c.Timezone = "Nowhere/Atlantis" },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mut(&c)
			if err := c.Validate(); !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("ONBOARD_OUTPUT=out.json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ONBOARD_OUTPUT", "")
	os.Unsetenv("ONBOARD_OUTPUT")
	if err := config.LoadDotEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output != "out.json" {
		t.Fatalf("output: %q", cfg.Output)
	}
	if err := config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}
}
