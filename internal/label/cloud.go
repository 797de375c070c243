package label

import (
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
)

// Cloud wraps a point buffer with its display state. The buffer is held by
// reference; Filtered produces derived clouds without touching the source.
type Cloud struct {
	Buffer    *cloud.Buffer
	PointSize float32
}

// DefaultCloudPointSize is the display point size for freshly loaded clouds.
const DefaultCloudPointSize = 2.0

// NewCloud wraps a buffer with default display state.
func NewCloud(b *cloud.Buffer) *Cloud {
	return &Cloud{Buffer: b, PointSize: DefaultCloudPointSize}
}

// SetPointSize updates the display point size. Non-positive sizes are
// replaced with the default and logged, matching the local-recovery policy
// for out-of-range numeric settings.
func (c *Cloud) SetPointSize(size float32) {
	if size <= 0 {
		zap.L().Warn("point size out of range, using default",
			zap.Float32("size", size))
		size = DefaultCloudPointSize
	}
	c.PointSize = size
}

// Filtered returns a new cloud containing only the points whose value in the
// given channel lies within [min, max]. Used to back the attribute range
// widget: spatial queries run against the filtered cloud so hidden points
// are never captured.
func (c *Cloud) Filtered(channel int, min, max float32) *Cloud {
	b := c.Buffer
	n := b.NumPoints()
	channels := b.NumChannels()

	filtered := make([]float32, 0, n*channels)
	values := b.Channel(channel)
	for i := 0; i < n; i++ {
		if values[i] < min || values[i] > max {
			continue
		}
		filtered = append(filtered, b.Point(i)...)
	}

	return &Cloud{
		Buffer:    cloud.NewBuffer(filtered, channels, b.Format()),
		PointSize: c.PointSize,
	}
}
