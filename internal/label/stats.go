package label

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
)

// ChannelStats summarizes one attribute channel across a buffer. The
// filter range widget seeds its slider bounds from Min/Max and its default
// window from the 5th/95th percentiles so a handful of outliers does not
// flatten the usable range.
type ChannelStats struct {
	Min    float32
	Max    float32
	Mean   float32
	Median float32
	P05    float32
	P95    float32
}

// ComputeChannelStats computes summary statistics for one channel.
// Returns the zero value for empty buffers.
func ComputeChannelStats(b *cloud.Buffer, channel int) ChannelStats {
	raw := b.Channel(channel)
	if len(raw) == 0 {
		return ChannelStats{}
	}

	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}
	sort.Float64s(values)

	return ChannelStats{
		Min:    float32(floats.Min(values)),
		Max:    float32(floats.Max(values)),
		Mean:   float32(stat.Mean(values, nil)),
		Median: float32(stat.Quantile(0.5, stat.Empirical, values, nil)),
		P05:    float32(stat.Quantile(0.05, stat.Empirical, values, nil)),
		P95:    float32(stat.Quantile(0.95, stat.Empirical, values, nil)),
	}
}
