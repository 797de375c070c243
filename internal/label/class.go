// Package label holds the annotation entities: the active point cloud, the
// label taxonomy, persistent label selections, and the editor that grows and
// shrinks selections from drawn shapes.
package label

import "fmt"

// Class is a taxonomy entry assignable to a selection. Classes are created
// once per dataset and never mutated.
type Class struct {
	ID    int        `yaml:"id"`
	Name  string     `yaml:"name"`
	Color [3]float32 `yaml:"color,flow"`
}

// String returns "id:name" for logging.
func (c *Class) String() string {
	return fmt.Sprintf("%d:%s", c.ID, c.Name)
}
