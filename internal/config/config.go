// Package config handles annotator configuration loading and management.
package config

// Config holds all annotator settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds viewport and interaction settings.
type ViewerConfig struct {
	CloudPointSize     float32    `yaml:"cloud_point_size"`
	SelectionPointSize float32    `yaml:"selection_point_size"`
	BrushSize          float32    `yaml:"brush_size"`
	Background         [4]float32 `yaml:"background"`
	DragSensitivity    float32    `yaml:"drag_sensitivity"`
	ZoomSensitivity    float32    `yaml:"zoom_sensitivity"`
	PanSensitivity     float32    `yaml:"pan_sensitivity"`
}

// DatasetConfig holds point cloud data settings.
type DatasetConfig struct {
	// CloudPath is a PCD file opened at startup. Empty means start with an
	// empty viewport.
	CloudPath string `yaml:"cloud_path"`

	// Format names the coordinate axis order of the dataset, one of the
	// six permutations of x, y and z.
	Format string `yaml:"format"`

	// LabelsFile is the label taxonomy YAML. Empty falls back to the
	// built-in taxonomy.
	LabelsFile string `yaml:"labels_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			CloudPointSize:     2.0,
			SelectionPointSize: 4.0,
			BrushSize:          0.05,
			Background:         [4]float32{0.1, 0.1, 0.15, 1.0},
			DragSensitivity:    0.01,
			ZoomSensitivity:    0.1,
			PanSensitivity:     0.01,
		},
		Dataset: DatasetConfig{
			CloudPath:  "",
			Format:     "xyz",
			LabelsFile: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
