package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcat/modelcat/config"
)

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelcat.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
library: neuralforecast

source:
  manifest_dir: descriptors/

docs:
  models_url: "http://localhost:9000/models.html"
  llms_url: "http://localhost:9000/llms.txt"
  timeout: 15s

cache:
  dir: /tmp/mc-cache
  force: true

output:
  dir: results/
  tree:
    group_by: [kind, family]

logging:
  level: debug
  format: json
`

	cfg := writeAndLoad(t, content)

	if cfg.Source.ManifestDir != "descriptors/" {
		t.Errorf("ManifestDir = %s, want descriptors/", cfg.Source.ManifestDir)
	}
	if cfg.Docs.ModelsURL != "http://localhost:9000/models.html" {
		t.Errorf("ModelsURL = %s", cfg.Docs.ModelsURL)
	}
	if cfg.Docs.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Docs.Timeout)
	}
	if !cfg.Cache.Force {
		t.Error("Cache.Force = false, want true")
	}
	if len(cfg.Output.Tree.GroupBy) != 2 || cfg.Output.Tree.GroupBy[0] != "kind" {
		t.Errorf("GroupBy = %v, want [kind family]", cfg.Output.Tree.GroupBy)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := writeAndLoad(t, "source:\n  manifest_dir: descriptors/\n")

	if cfg.Library != "neuralforecast" {
		t.Errorf("Library = %s, want neuralforecast", cfg.Library)
	}
	if cfg.Docs.ModelsURL != "https://nixtlaverse.nixtla.io/neuralforecast/models.html" {
		t.Errorf("ModelsURL default = %s", cfg.Docs.ModelsURL)
	}
	if cfg.Docs.LlmsURL != "https://nixtlaverse.nixtla.io/llms.txt" {
		t.Errorf("LlmsURL default = %s", cfg.Docs.LlmsURL)
	}
	if cfg.Docs.Timeout != 30*time.Second {
		t.Errorf("Timeout default = %v, want 30s", cfg.Docs.Timeout)
	}
	if cfg.Cache.Dir != ".modelcat-cache" {
		t.Errorf("Cache.Dir default = %s", cfg.Cache.Dir)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir default = %s", cfg.Output.Dir)
	}
	want := []string{"library", "namespace", "kind", "family"}
	if len(cfg.Output.Tree.GroupBy) != len(want) {
		t.Fatalf("GroupBy default = %v, want %v", cfg.Output.Tree.GroupBy, want)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
}

func TestLoad_MissingManifestDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelcat.yaml")
	if err := os.WriteFile(path, []byte("library: neuralforecast\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() should fail without source.manifest_dir")
	}
}

func TestLoad_InvalidLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelcat.yaml")
	content := "source:\n  manifest_dir: d/\nlogging:\n  level: loud\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() should reject unknown log level")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MODELCAT_OUTPUT_DIR", "/tmp/override")
	t.Setenv("MODELCAT_FORCE_REFRESH", "true")
	t.Setenv("MODELCAT_LOG_LEVEL", "warn")

	cfg := writeAndLoad(t, "source:\n  manifest_dir: descriptors/\noutput:\n  dir: file-dir/\n")

	if cfg.Output.Dir != "/tmp/override" {
		t.Errorf("Output.Dir = %s, want env override", cfg.Output.Dir)
	}
	if !cfg.Cache.Force {
		t.Error("Cache.Force = false, want env override true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithFallback(t *testing.T) {
	if _, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadWithFallback() should fail with no file and no env")
	}

	t.Setenv("MODELCAT_MANIFEST_DIR", "descriptors/")
	cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadWithFallback() error = %v", err)
	}
	if cfg.Source.ManifestDir != "descriptors/" {
		t.Errorf("ManifestDir = %s, want env value", cfg.Source.ManifestDir)
	}
}
