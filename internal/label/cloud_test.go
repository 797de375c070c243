package label

import (
	"testing"

	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/camera"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

func createTestBuffer() *cloud.Buffer {
	// Four points with an intensity channel.
	data := []float32{
		0, 0, 0, 0.1,
		1, 0, 0, 0.4,
		2, 0, 0, 0.7,
		3, 0, 0, 1.0,
	}
	return cloud.NewBuffer(data, 4, cloud.FormatXYZ)
}

func TestCloudFiltered(t *testing.T) {
	c := NewCloud(createTestBuffer())

	f := c.Filtered(3, 0.3, 0.8)
	if got := f.Buffer.NumPoints(); got != 2 {
		t.Fatalf("filtered cloud has %d points, want 2", got)
	}
	if got := f.Buffer.Coords(0); got != (math.Vec3{X: 1}) {
		t.Errorf("first filtered point = %v, want {1 0 0}", got)
	}
	// Attribute channels survive filtering.
	if got := f.Buffer.Point(1)[3]; got != 0.7 {
		t.Errorf("intensity of second filtered point = %v, want 0.7", got)
	}
}

func TestCloudFilteredEmpty(t *testing.T) {
	c := NewCloud(createTestBuffer())
	f := c.Filtered(3, 5, 6)
	if got := f.Buffer.NumPoints(); got != 0 {
		t.Errorf("filtered cloud has %d points, want 0", got)
	}
}

func TestCloudSetPointSize(t *testing.T) {
	c := NewCloud(createTestBuffer())

	c.SetPointSize(6)
	if c.PointSize != 6 {
		t.Errorf("PointSize = %v, want 6", c.PointSize)
	}

	// Out-of-range sizes fall back to the default instead of failing.
	c.SetPointSize(-3)
	if c.PointSize != DefaultCloudPointSize {
		t.Errorf("PointSize = %v, want default %v", c.PointSize, DefaultCloudPointSize)
	}
}

func TestComputeChannelStats(t *testing.T) {
	c := createTestBuffer()
	stats := ComputeChannelStats(c, 3)

	if stats.Min != 0.1 {
		t.Errorf("Min = %v, want 0.1", stats.Min)
	}
	if stats.Max != 1.0 {
		t.Errorf("Max = %v, want 1.0", stats.Max)
	}
	if stats.Mean < 0.54 || stats.Mean > 0.56 {
		t.Errorf("Mean = %v, want 0.55", stats.Mean)
	}
	if stats.Median < stats.Min || stats.Median > stats.Max {
		t.Errorf("Median = %v, want within [%v, %v]", stats.Median, stats.Min, stats.Max)
	}
}

func TestComputeChannelStatsEmpty(t *testing.T) {
	empty := cloud.NewBuffer(nil, 3, cloud.FormatXYZ)
	if got := ComputeChannelStats(empty, 0); got != (ChannelStats{}) {
		t.Errorf("stats of empty buffer = %v, want zero value", got)
	}
}

func TestSelectionBounds(t *testing.T) {
	sel := NewSelection([]math.Vec3{
		{X: 1, Y: -2, Z: 3},
		{X: -1, Y: 4, Z: 0},
	}, &Class{ID: 1})

	min, max := sel.Bounds()
	if min != (math.Vec3{X: -1, Y: -2, Z: 0}) {
		t.Errorf("Bounds min = %v, want {-1 -2 0}", min)
	}
	if max != (math.Vec3{X: 1, Y: 4, Z: 3}) {
		t.Errorf("Bounds max = %v, want {1 4 3}", max)
	}
}

func TestSelectionUniqueIDs(t *testing.T) {
	a := NewSelection(nil, nil)
	b := NewSelection(nil, nil)
	if a.ID == b.ID {
		t.Errorf("two selections share id %s", a.ID)
	}
}

func TestProjectionsViewAlignment(t *testing.T) {
	cam := camera.NewOrbitCamera()
	proj := camera.NewProjector(640, 480)
	proj.Update(cam)

	points := []math.Vec3{{X: 0}, {X: 1}}
	pc := NewProjections()
	pc.Refresh("cloud", points, proj)

	view, ok := pc.View("cloud", points)
	if !ok {
		t.Fatal("View should find a refreshed snapshot")
	}
	if len(view.NDC) != 2 {
		t.Errorf("view has %d NDC entries, want 2", len(view.NDC))
	}

	// A stale snapshot no longer index-aligned with the points is rejected.
	points = append(points, math.Vec3{X: 2})
	if _, ok := pc.View("cloud", points); ok {
		t.Error("View should reject a misaligned snapshot")
	}

	if _, ok := pc.View("missing", points); ok {
		t.Error("View should miss unknown ids")
	}
}
