package expr

import (
	"errors"
	"testing"

	"github.com/npillmayer/linkage"
	"github.com/npillmayer/linkage/mech"
	"github.com/npillmayer/linkage/sweep"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// A crank-rocker four-bar profile. Edge order numbers the joints:
// P0 = ground-crank pivot, P1 = crank pin, P2 = coupler-rocker pin,
// P3 = ground-rocker pivot. Bar lengths 5 / 13 / 15 over a 19-unit span,
// feasible at every crank angle.
func fourbarProfile() *mech.Profile {
	return &mech.Profile{
		Name:       "fourbar",
		Expression: "PLAP[P0,a0,L0](P1);PLLP[P1,L1,L2,P3](P2)",
		Edges:      [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}},
		Pos: map[int]linkage.Pair{
			0: linkage.P(0, 0),
			1: linkage.P(5, 0),
			2: linkage.P(10, 12),
			3: linkage.P(19, 0),
		},
		Inputs: [][2]int{{0, 1}},
	}
}

func TestPlanProfile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	plan, err := PlanProfile(fourbarProfile())
	if err != nil {
		t.Fatalf("PlanProfile failed: %v", err)
	}
	assert.Equal(t, []string{"P0", "P1", "P2", "P3"}, plan.Mapping)
	assert.Equal(t, []int{0}, plan.Drivers)
	assert.Equal(t, 4, plan.System.N())
	for i, want := range []linkage.Pair{
		linkage.P(0, 0), linkage.P(5, 0), linkage.P(10, 12), linkage.P(19, 0),
	} {
		assert.Truef(t, plan.Start[i].Pin.Equal(want), "seed of joint %d", i)
	}
	// The plan must reproduce the layout at driver angle zero.
	frame, err := plan.System.Solve(plan.Start, []float64{0})
	assert.NoError(t, err)
	assert.True(t, frame[1].Pin.Equal(linkage.P(5, 0)))
	assert.True(t, frame[2].Pin.Equal(linkage.P(10, 12)))
}

func TestPlanProfilePlacementOverride(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := fourbarProfile()
	// Move the rocker pivot; the seed state must pick up the override.
	p.Placement = map[int]linkage.Pair{3: linkage.P(20, 1)}
	plan, err := PlanProfile(p)
	assert.NoError(t, err)
	assert.True(t, plan.Start[3].Pin.Equal(linkage.P(20, 1)))
}

func TestPlanProfileCollapsesDuplicates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := fourbarProfile()
	// Joint 4 duplicates the crank pin; the expression references the
	// duplicate, the plan must collapse it onto P1.
	p.Expression = "PLAP[P0,a0,L0](P4);PLLP[P4,L1,L2,P3](P2)"
	p.Same = map[int]int{4: 1}
	p.Pos[4] = linkage.P(5, 0)
	plan, err := PlanProfile(p)
	if err != nil {
		t.Fatalf("PlanProfile failed: %v", err)
	}
	assert.Equal(t, []string{"P0", "P1", "P2", "P3"}, plan.Mapping,
		"duplicate joints are excluded from the mapping")
	assert.Equal(t, 4, plan.System.N())
	frame, err := plan.System.Solve(plan.Start, []float64{90})
	assert.NoError(t, err)
	assert.True(t, frame[1].Pin.Equal(linkage.P(0, 5)), "P4 resolves to P1")
}

func TestPlanProfileErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := fourbarProfile()
	p.Expression = "PLAP[P0,a0,L0](P9)"
	_, err := PlanProfile(p)
	assert.True(t, errors.Is(err, ErrConfig), "unknown joint: %v", err)

	p = fourbarProfile()
	p.Expression = "PLAP[P0,a0,L0](P1"
	_, err = PlanProfile(p)
	assert.True(t, errors.Is(err, ErrBadExpression))

	p = fourbarProfile()
	p.Edges = nil
	_, err = PlanProfile(p)
	assert.Error(t, err)
}

// End to end: stored profile to traced coupler curve.
func TestPlanTraceFourbar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	plan, err := PlanProfile(fourbarProfile())
	if err != nil {
		t.Fatalf("PlanProfile failed: %v", err)
	}
	tr, err := sweep.New(sweep.Config{
		Solver:  plan.System,
		Start:   plan.Start,
		Drivers: plan.Drivers,
		Mapping: plan.Mapping,
	})
	if err != nil {
		t.Fatalf("sweep.New failed: %v", err)
	}
	path, err := tr.Trace()
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	assert.Equal(t, []string{"P0", "P1", "P2", "P3"}, tr.Names())
	assert.Len(t, path, 4)
	assert.Equal(t, 240, path.Samples(), "120 forward and 120 backward samples")
	for i := 0; i < 4; i++ {
		assert.Equalf(t, 240, path.Feasible(i), "joint %d fully feasible", i)
	}
	for k := 0; k < path.Samples(); k++ {
		assert.True(t, path[0][k].Equal(linkage.P(0, 0)), "ground pivot stays put")
		assert.True(t, path[3][k].Equal(linkage.P(19, 0)), "ground pivot stays put")
		assert.InDelta(t, 5.0, linkage.Dist(path[0][k], path[1][k]), 0.000001)
		assert.InDelta(t, 13.0, linkage.Dist(path[1][k], path[2][k]), 0.000001)
		assert.InDelta(t, 15.0, linkage.Dist(path[3][k], path[2][k]), 0.000001)
	}
	// Forward sample k puts the crank at 3k degrees.
	crank := linkage.Polar(5, 90)
	assert.InDelta(t, crank.X(), path[1][30].X(), 0.000001)
	assert.InDelta(t, crank.Y(), path[1][30].Y(), 0.000001)
}
