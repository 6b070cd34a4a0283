package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "espprc-cli" {
		t.Errorf("expected app name 'espprc-cli', got %s", cfg.App.Name)
	}
	if cfg.Solver.Capacity != 100 {
		t.Errorf("expected solver capacity 100, got %d", cfg.Solver.Capacity)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("expected metrics addr ':9090', got %s", cfg.Metrics.Addr)
	}
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
app:
  name: custom-cli
  version: 2.0.0
  environment: staging
solver:
  capacity: 250
log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader(WithConfigPaths(configPath))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "custom-cli" {
		t.Errorf("expected app name 'custom-cli', got %s", cfg.App.Name)
	}
	if cfg.App.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %s", cfg.App.Version)
	}
	if cfg.Solver.Capacity != 250 {
		t.Errorf("expected capacity 250, got %d", cfg.Solver.Capacity)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
}

func TestLoader_LoadFromEnv(t *testing.T) {
	os.Setenv("ESPPRC_APP_NAME", "env-cli")
	os.Setenv("ESPPRC_SOLVER_CAPACITY", "300")
	defer func() {
		os.Unsetenv("ESPPRC_APP_NAME")
		os.Unsetenv("ESPPRC_SOLVER_CAPACITY")
	}()

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "env-cli" {
		t.Errorf("expected app name 'env-cli', got %s", cfg.App.Name)
	}
	if cfg.Solver.Capacity != 300 {
		t.Errorf("expected capacity 300, got %d", cfg.Solver.Capacity)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
app:
  name: file-cli
solver:
  capacity: 150
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("ESPPRC_APP_NAME", "env-override")
	defer os.Unsetenv("ESPPRC_APP_NAME")

	cfg, err := NewLoader(WithConfigPaths(configPath)).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "env-override" {
		t.Errorf("expected env override, got %s", cfg.App.Name)
	}
	if cfg.Solver.Capacity != 150 {
		t.Errorf("expected capacity from file 150, got %d", cfg.Solver.Capacity)
	}
}

func TestLoader_WithEnvPrefix(t *testing.T) {
	os.Setenv("CUSTOM_APP_NAME", "custom-prefix-cli")
	defer os.Unsetenv("CUSTOM_APP_NAME")

	cfg, err := NewLoader(WithEnvPrefix("CUSTOM_")).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "custom-prefix-cli" {
		t.Errorf("expected 'custom-prefix-cli', got %s", cfg.App.Name)
	}
}

func TestMustLoad_Success(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustLoad should not panic with valid config")
		}
	}()

	cfg := MustLoad()
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoad_Simple(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoader_ConfigEnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")

	configContent := `
app:
  name: config-env-var-cli
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("CONFIG_PATH", configPath)
	defer os.Unsetenv("CONFIG_PATH")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "config-env-var-cli" {
		t.Errorf("expected 'config-env-var-cli', got %s", cfg.App.Name)
	}
}
