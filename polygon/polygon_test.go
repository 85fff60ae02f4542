package polygon

import (
	"math"
	"testing"

	"github.com/npillmayer/linkage"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(linkage.P(0, 0)).Knot(linkage.P(1, 3)).Knot(linkage.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(linkage.P(0, 5), linkage.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.Area(), 0.0001)
}

func TestFromSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	samples := []linkage.Pair{
		linkage.P(0, 0),
		linkage.P(4, 0),
		linkage.NaNPair, // infeasible configuration, must be skipped
		linkage.P(4, 0), // repeated knot, must be skipped
		linkage.P(4, 3),
	}
	pg := FromSamples(samples)
	if pg.N() != 3 {
		t.Errorf("expected 3 knots, got %d", pg.N())
	}
	assert.InDelta(t, 6.0, pg.Area(), 0.0001)
}

func TestArea(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// Orientation must not matter.
	ccw := NullPolygon().Knot(linkage.P(0, 0)).Knot(linkage.P(3, 0)).Knot(linkage.P(1, 3)).Cycle()
	cw := NullPolygon().Knot(linkage.P(0, 0)).Knot(linkage.P(1, 3)).Knot(linkage.P(3, 0)).Cycle()
	assert.InDelta(t, 4.5, ccw.Area(), 0.0001)
	assert.InDelta(t, 4.5, cw.Area(), 0.0001)
	degenerate := NullPolygon().Knot(linkage.P(0, 0)).Knot(linkage.P(1, 1)).Cycle()
	assert.Equal(t, 0.0, degenerate.Area())
}

func TestBooleanOps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(linkage.P(0, 0), linkage.P(4, 4))
	b := Box(linkage.P(2, 2), linkage.P(6, 6))
	assert.InDelta(t, 4.0, setArea(Intersect(a, b)), 0.0001)
	assert.InDelta(t, 28.0, setArea(Union(a, b)), 0.0001)
	clipped := a.Clip(Box(linkage.P(0, 0), linkage.P(2, 8)))
	assert.InDelta(t, 8.0, setArea(clipped), 0.0001)
}

func TestOverlap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(linkage.P(0, 0), linkage.P(4, 4))
	assert.InDelta(t, 1.0, Overlap(a, a), 0.0001)
	disjoint := Box(linkage.P(10, 10), linkage.P(12, 12))
	assert.Equal(t, 0.0, Overlap(a, disjoint))
	half := Box(linkage.P(0, 0), linkage.P(4, 2))
	assert.InDelta(t, 0.5, Overlap(a, half), 0.0001)
}

func TestOverlapOfTracedCircles(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	circle := func(center linkage.Pair, r float64) *Polygon {
		samples := make([]linkage.Pair, 0, 120)
		for k := 0; k < 120; k++ {
			samples = append(samples, center.Shifted(linkage.Polar(r, float64(k)*3)))
		}
		return FromSamples(samples)
	}
	a := circle(linkage.P(0, 0), 5)
	b := circle(linkage.P(0, 0), 5)
	assert.InDelta(t, 1.0, Overlap(a, b), 0.01)
	// A 120-gon underestimates the disk slightly.
	assert.InDelta(t, math.Pi*25, a.Area(), 0.1)
}
