package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/fiber/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Scheduler.Slice != DefaultSlice {
		t.Errorf("Scheduler.Slice = %q, want %q", cfg.Scheduler.Slice, DefaultSlice)
	}
	if cfg.Inspector.Port != DefaultInspectorPort {
		t.Errorf("Inspector.Port = %d, want %d", cfg.Inspector.Port, DefaultInspectorPort)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E131") {
		t.Errorf("Load of empty dir = %v, want E131", err)
	}

	configJSON := `{
  "name": "demo",
  "scene": "scenes/todo.yaml",
  "scheduler": {
    "slice": "8ms",
    "minRemaining": "2ms",
    "debug": true
  },
  "inspector": {
    "host": "0.0.0.0",
    "port": 9090,
    "allowedOrigins": ["http://localhost:5173"]
  },
  "metrics": {
    "disabled": true
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if got := cfg.SliceDuration(); got != 8*time.Millisecond {
		t.Errorf("SliceDuration() = %v, want 8ms", got)
	}
	if got := cfg.MinRemainingDuration(); got != 2*time.Millisecond {
		t.Errorf("MinRemainingDuration() = %v, want 2ms", got)
	}
	if !cfg.Scheduler.Debug {
		t.Error("Scheduler.Debug should be true")
	}
	if got := cfg.InspectorAddress(); got != "0.0.0.0:9090" {
		t.Errorf("InspectorAddress() = %q, want 0.0.0.0:9090", got)
	}
	if len(cfg.Inspector.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v, want one origin", cfg.Inspector.AllowedOrigins)
	}
	if !cfg.Metrics.Disabled {
		t.Error("Metrics.Disabled should be true")
	}
	// Unset fields keep their defaults.
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Metrics.Namespace)
	}
	if got, want := cfg.ScenePath(), filepath.Join(tmpDir, "scenes/todo.yaml"); got != want {
		t.Errorf("ScenePath() = %q, want %q", got, want)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E130") {
		t.Errorf("Expected E130 error, got: %v", err)
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad slice", `{"scheduler": {"slice": "fast"}}`},
		{"negative slice", `{"scheduler": {"slice": "-5ms"}}`},
		{"threshold above slice", `{"scheduler": {"slice": "1ms", "minRemaining": "2ms"}}`},
		{"port out of range", `{"inspector": {"port": 70000}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); !errors.HasCode(err, "E130") {
				t.Errorf("LoadFile() = %v, want E130", err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Inspector.Port = 9000
	cfg.Scheduler.Slice = "10ms"

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Inspector.Port != 9000 {
		t.Errorf("Inspector.Port = %d, want 9000", loaded.Inspector.Port)
	}
	if loaded.SliceDuration() != 10*time.Millisecond {
		t.Errorf("SliceDuration() = %v, want 10ms", loaded.SliceDuration())
	}

	loaded.Inspector.Port = 9001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Inspector.Port != 9001 {
		t.Errorf("Inspector.Port = %d, want 9001", reloaded.Inspector.Port)
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{Scheduler: SchedulerConfig{Slice: "nope", MinRemaining: "0s"}}

	if got := cfg.SliceDuration(); got != 5*time.Millisecond {
		t.Errorf("SliceDuration() = %v, want default 5ms", got)
	}
	if got := cfg.MinRemainingDuration(); got != time.Millisecond {
		t.Errorf("MinRemainingDuration() = %v, want default 1ms", got)
	}
}

func TestScenePath(t *testing.T) {
	cfg := New()
	if cfg.ScenePath() != "" {
		t.Errorf("ScenePath() = %q, want empty", cfg.ScenePath())
	}
	cfg.Scene = "/abs/scene.yaml"
	if cfg.ScenePath() != "/abs/scene.yaml" {
		t.Errorf("ScenePath() = %q, want absolute path unchanged", cfg.ScenePath())
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Should fail when no config exists
	if _, err := FindProjectRoot(nestedDir); err == nil {
		t.Error("FindProjectRoot should fail when no config exists")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nestedDir)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Scheduler.Slice != DefaultSlice || cfg.Scheduler.MinRemaining != DefaultMinRemaining {
		t.Errorf("Scheduler = %+v, want defaults", cfg.Scheduler)
	}
	if cfg.Inspector.Host != DefaultInspectorHost {
		t.Errorf("Inspector.Host = %q, want %q", cfg.Inspector.Host, DefaultInspectorHost)
	}
	if cfg.Inspector.Port != DefaultInspectorPort {
		t.Errorf("Inspector.Port = %d, want %d", cfg.Inspector.Port, DefaultInspectorPort)
	}
}
