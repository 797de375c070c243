package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
)

// ErrNoClasses indicates a taxonomy file that defines no label classes.
var ErrNoClasses = errors.New("label taxonomy is empty")

// labelsFile is the YAML shape of a taxonomy file.
type labelsFile struct {
	Classes []label.Class `yaml:"classes"`
}

// LoadLabels reads a label taxonomy from a YAML file. Duplicate class ids
// keep the first definition and log the rest.
func LoadLabels(path string) ([]label.Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels from %s: %w", path, err)
	}

	var file labelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing labels from %s: %w", path, err)
	}
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoClasses)
	}

	seen := make(map[int]bool, len(file.Classes))
	classes := make([]label.Class, 0, len(file.Classes))
	for _, c := range file.Classes {
		if seen[c.ID] {
			zap.L().Warn("duplicate label class id, keeping first",
				zap.Int("id", c.ID),
				zap.String("name", c.Name))
			continue
		}
		seen[c.ID] = true
		classes = append(classes, c)
	}

	return classes, nil
}

// DefaultLabels returns the built-in taxonomy used when no labels file is
// configured.
func DefaultLabels() []label.Class {
	return []label.Class{
		{ID: 1, Name: "car", Color: [3]float32{0.2, 0.5, 1.0}},
		{ID: 2, Name: "pedestrian", Color: [3]float32{1.0, 0.4, 0.2}},
		{ID: 3, Name: "cyclist", Color: [3]float32{1.0, 0.9, 0.2}},
		{ID: 4, Name: "ground", Color: [3]float32{0.4, 0.3, 0.2}},
		{ID: 5, Name: "building", Color: [3]float32{0.6, 0.6, 0.7}},
		{ID: 6, Name: "vegetation", Color: [3]float32{0.3, 0.8, 0.3}},
	}
}
