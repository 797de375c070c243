package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Viewer.CloudPointSize != 2.0 {
		t.Errorf("expected cloud point size 2.0, got %f", cfg.Viewer.CloudPointSize)
	}
	if cfg.Viewer.SelectionPointSize != 4.0 {
		t.Errorf("expected selection point size 4.0, got %f", cfg.Viewer.SelectionPointSize)
	}
	if cfg.Viewer.BrushSize != 0.05 {
		t.Errorf("expected brush size 0.05, got %f", cfg.Viewer.BrushSize)
	}

	if cfg.Dataset.Format != "xyz" {
		t.Errorf("expected format 'xyz', got %s", cfg.Dataset.Format)
	}
	if cfg.Dataset.CloudPath != "" {
		t.Errorf("expected empty cloud path, got %s", cfg.Dataset.CloudPath)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "annotator.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

viewer:
  cloud_point_size: 3.0
  selection_point_size: 6.0
  brush_size: 0.1
  background: [0.0, 0.0, 0.0, 1.0]

dataset:
  cloud_path: "scans/sample.pcd"
  format: "xzy"
  labels_file: "labels.yaml"

logging:
  level: "debug"
  log_file: "annotator.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Viewer.CloudPointSize != 3.0 {
		t.Errorf("expected cloud point size 3.0, got %f", cfg.Viewer.CloudPointSize)
	}
	if cfg.Viewer.Background != [4]float32{0, 0, 0, 1} {
		t.Errorf("expected black background, got %v", cfg.Viewer.Background)
	}

	if cfg.Dataset.CloudPath != "scans/sample.pcd" {
		t.Errorf("expected cloud path scans/sample.pcd, got %s", cfg.Dataset.CloudPath)
	}
	if cfg.Dataset.Format != "xzy" {
		t.Errorf("expected format 'xzy', got %s", cfg.Dataset.Format)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "annotator.log" {
		t.Errorf("expected log file 'annotator.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/annotator.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS; just verify shape.
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "annotator.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find annotator.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "cloud flag",
			setup: func() {
				*flagCloud = "scans/drive-042.pcd"
			},
			verify: func(cfg *Config) {
				if cfg.Dataset.CloudPath != "scans/drive-042.pcd" {
					t.Errorf("expected cloud path scans/drive-042.pcd, got %s", cfg.Dataset.CloudPath)
				}
			},
			teardown: func() {
				*flagCloud = ""
			},
		},
		{
			name: "format flag",
			setup: func() {
				*flagFormat = "zyx"
			},
			verify: func(cfg *Config) {
				if cfg.Dataset.Format != "zyx" {
					t.Errorf("expected format 'zyx', got %s", cfg.Dataset.Format)
				}
			},
			teardown: func() {
				*flagFormat = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "annotator.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag should override file, file should override defaults.
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadLabels(t *testing.T) {
	tmpDir := t.TempDir()
	labelsPath := filepath.Join(tmpDir, "labels.yaml")

	yamlContent := `
classes:
  - id: 1
    name: car
    color: [0.2, 0.5, 1.0]
  - id: 2
    name: pedestrian
    color: [1.0, 0.4, 0.2]
  - id: 1
    name: duplicate-car
    color: [0.0, 0.0, 0.0]
`

	if err := os.WriteFile(labelsPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write labels file: %v", err)
	}

	classes, err := LoadLabels(labelsPath)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}

	if len(classes) != 2 {
		t.Fatalf("expected 2 classes after dedup, got %d", len(classes))
	}
	if classes[0].Name != "car" {
		t.Errorf("expected first class 'car', got %s", classes[0].Name)
	}
	if classes[1].ID != 2 {
		t.Errorf("expected second class id 2, got %d", classes[1].ID)
	}
	if classes[0].Color != [3]float32{0.2, 0.5, 1.0} {
		t.Errorf("unexpected color %v", classes[0].Color)
	}
}

func TestLoadLabelsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	labelsPath := filepath.Join(tmpDir, "labels.yaml")

	if err := os.WriteFile(labelsPath, []byte("classes: []\n"), 0644); err != nil {
		t.Fatalf("failed to write labels file: %v", err)
	}

	_, err := LoadLabels(labelsPath)
	if !errors.Is(err, ErrNoClasses) {
		t.Errorf("expected ErrNoClasses, got %v", err)
	}
}

func TestLoadLabelsMissing(t *testing.T) {
	_, err := LoadLabels("/nonexistent/labels.yaml")
	if err == nil {
		t.Error("expected error loading missing labels file, got nil")
	}
}

func TestDefaultLabels(t *testing.T) {
	classes := DefaultLabels()
	if len(classes) == 0 {
		t.Fatal("expected built-in taxonomy to be non-empty")
	}

	seen := make(map[int]bool)
	for _, c := range classes {
		if seen[c.ID] {
			t.Errorf("duplicate class id %d in built-in taxonomy", c.ID)
		}
		seen[c.ID] = true
		if c.Name == "" {
			t.Errorf("class %d has empty name", c.ID)
		}
	}
}
