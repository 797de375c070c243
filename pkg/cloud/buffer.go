package cloud

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Buffer construction errors.
var (
	ErrEmptyData     = errors.New("empty point data")
	ErrInvalidStride = errors.New("invalid stride: must be at least 3 and divide the data length")
)

// Buffer interprets a flat float32 array as numPoints x numChannels values.
// The first three channels of every point are the project-frame x/y/z;
// remaining channels are opaque per-point attributes addressed by index.
//
// The backing array is referenced, not copied. Use Clone for an independent
// copy.
type Buffer struct {
	data     []float32
	format   Format
	channels int
}

// CheckNumChannels validates a channel count against a data length and
// returns a safe value to use. Counts below 3 fall back to 3; counts that do
// not evenly divide the data length fall back to the data length itself
// (a degenerate single-point buffer). Both fallbacks log a diagnostic.
func CheckNumChannels(dataLen, channels int) int {
	if channels < 3 {
		zap.L().Warn("channel count below 3, falling back to 3",
			zap.Int("channels", channels))
		channels = 3
	}
	if dataLen%channels != 0 {
		zap.L().Warn("channel count does not divide data length, treating data as a single point",
			zap.Int("channels", channels),
			zap.Int("dataLen", dataLen))
		channels = dataLen
	}
	return channels
}

// NewBuffer wraps data as a point buffer with the given channel count and
// coordinate format. Malformed channel counts are corrected via
// CheckNumChannels rather than rejected.
func NewBuffer(data []float32, channels int, format Format) *Buffer {
	return &Buffer{
		data:     data,
		format:   format,
		channels: CheckNumChannels(len(data), channels),
	}
}

// FromVectors builds a 3-channel buffer from renderer-frame vectors,
// converting each through the format's inverse mapping. Fails on empty input.
func FromVectors(vecs []math.Vec3, format Format) (*Buffer, error) {
	if len(vecs) == 0 {
		return nil, fmt.Errorf("building buffer from vectors: %w", ErrEmptyData)
	}

	data := make([]float32, 0, len(vecs)*3)
	for _, v := range vecs {
		p := format.ToProject(v)
		data = append(data, p[0], p[1], p[2])
	}

	return &Buffer{data: data, format: format, channels: 3}, nil
}

// FromRaw wraps an externally supplied attribute array with a strict stride
// check. Unlike NewBuffer there is no corrective fallback: a stride below 3
// or one that does not divide the data length is an error, since the source
// layout cannot be guessed.
func FromRaw(data []float32, stride int, format Format) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("building buffer from raw data: %w", ErrEmptyData)
	}
	if stride < 3 || len(data)%stride != 0 {
		return nil, fmt.Errorf("building buffer from raw data (len %d, stride %d): %w",
			len(data), stride, ErrInvalidStride)
	}

	return &Buffer{data: data, format: format, channels: stride}, nil
}

// NumPoints returns the number of points in the buffer.
func (b *Buffer) NumPoints() int {
	if b.channels == 0 {
		return 0
	}
	return len(b.data) / b.channels
}

// NumChannels returns the per-point channel count.
func (b *Buffer) NumChannels() int { return b.channels }

// Format returns the buffer's coordinate format.
func (b *Buffer) Format() Format { return b.format }

// Point returns the raw channel slice of one point. Out-of-range indices are
// clamped to the valid range with a logged warning.
func (b *Buffer) Point(i int) []float32 {
	if len(b.data) == 0 {
		return nil
	}
	i = b.clampIndex(i)
	return b.data[i*b.channels : (i+1)*b.channels]
}

// Coords returns the renderer-frame coordinates of one point.
func (b *Buffer) Coords(i int) math.Vec3 {
	p := b.Point(i)
	if len(p) < 3 {
		return math.Vec3{}
	}
	return b.format.ToRenderer([3]float32{p[0], p[1], p[2]})
}

// AllCoords returns the renderer-frame coordinates of every point in point
// order. Allocates one vector per point; fine at annotation scale, not meant
// for per-frame re-querying.
func (b *Buffer) AllCoords() []math.Vec3 {
	n := b.NumPoints()
	coords := make([]math.Vec3, n)
	for i := 0; i < n; i++ {
		coords[i] = b.Coords(i)
	}
	return coords
}

// Channel projects out a single channel across all points. Out-of-range
// channel indices are clamped with a logged warning.
func (b *Buffer) Channel(c int) []float32 {
	if c < 0 || c >= b.channels {
		clamped := c
		if clamped < 0 {
			clamped = 0
		}
		if clamped >= b.channels {
			clamped = b.channels - 1
		}
		zap.L().Warn("channel index out of range, clamping",
			zap.Int("channel", c),
			zap.Int("clamped", clamped))
		c = clamped
	}

	n := b.NumPoints()
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		values[i] = b.data[i*b.channels+c]
	}
	return values
}

// Bounds returns the renderer-frame axis-aligned bounds of all points.
func (b *Buffer) Bounds() (min, max math.Vec3) {
	n := b.NumPoints()
	if n == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = b.Coords(0)
	max = min
	for i := 1; i < n; i++ {
		v := b.Coords(i)
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// Clone returns a buffer with a deep copy of the backing data. Format and
// channel count are shared; both are immutable.
func (b *Buffer) Clone() *Buffer {
	data := make([]float32, len(b.data))
	copy(data, b.data)
	return &Buffer{data: data, format: b.format, channels: b.channels}
}

func (b *Buffer) clampIndex(i int) int {
	n := b.NumPoints()
	if n == 0 {
		return 0
	}
	if i < 0 || i >= n {
		clamped := i
		if clamped < 0 {
			clamped = 0
		}
		if clamped >= n {
			clamped = n - 1
		}
		zap.L().Warn("point index out of range, clamping",
			zap.Int("index", i),
			zap.Int("clamped", clamped))
		return clamped
	}
	return i
}
