package expr

import (
	"fmt"
	"math"

	"github.com/npillmayer/linkage"
	"github.com/npillmayer/linkage/mech"
)

// System is a compiled, validated solving plan for a mechanism with a
// fixed number of joints. It is immutable and safe for concurrent use;
// all per-call state is passed through Solve explicitly.
type System struct {
	steps   []Step
	n       int   // joint count
	drivers []int // driver joint per angle slot
}

// NewSystem validates a solving plan and binds it to a mechanism of n
// joints. drivers lists the driver joint per input angle slot, in sweep
// order; each must be the base pivot of the corresponding PLAP step.
//
// Violated invariants (empty plan, joints referenced before they are
// resolved, driver mismatch, n too small) are configuration errors.
func NewSystem(steps []Step, drivers []int, n int) (*System, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty solving plan", ErrConfig)
	}
	// Joints never targeted by a step are fixed placements and known
	// upfront; targets become known in step order.
	solved := make(map[int]bool)
	targeted := make(map[int]bool)
	for _, st := range steps {
		targeted[st.Target] = true
	}
	known := func(j int) bool {
		return j >= 0 && j < n && (!targeted[j] || solved[j])
	}
	inputs := 0
	for i, st := range steps {
		refs := []int{st.Base}
		switch st.Op {
		case PLAP:
			if st.Ref >= 0 {
				refs = append(refs, st.Ref)
			}
			if st.Input != inputs {
				return nil, fmt.Errorf("%w: step %d input slot a%d, want a%d",
					ErrConfig, i, st.Input, inputs)
			}
			if inputs >= len(drivers) {
				return nil, fmt.Errorf("%w: no driver for input slot a%d", ErrConfig, inputs)
			}
			if drivers[inputs] != st.Base {
				return nil, fmt.Errorf("%w: driver %d is P%d, but step %d pivots on P%d",
					ErrConfig, inputs, drivers[inputs], i, st.Base)
			}
			inputs++
		case PLLP:
			refs = append(refs, st.Base2)
		case PLPP:
			refs = append(refs, st.Ref, st.Ref2)
		case PXY:
			// base only
		default:
			return nil, fmt.Errorf("%w: step %d has unknown operation", ErrConfig, i)
		}
		for _, j := range refs {
			if !known(j) {
				return nil, fmt.Errorf("%w: step %d references joint P%d before it is resolved",
					ErrConfig, i, j)
			}
		}
		if st.Target < 0 || st.Target >= n {
			return nil, fmt.Errorf("%w: step %d target P%d outside joint range [0,%d)",
				ErrConfig, i, st.Target, n)
		}
		if solved[st.Target] {
			return nil, fmt.Errorf("%w: joint P%d resolved twice", ErrConfig, st.Target)
		}
		solved[st.Target] = true
	}
	if inputs != len(drivers) {
		return nil, fmt.Errorf("%w: %d drivers for %d input slots", ErrConfig, len(drivers), inputs)
	}
	sys := &System{
		steps:   append([]Step(nil), steps...),
		n:       n,
		drivers: append([]int(nil), drivers...),
	}
	tracer().Infof("system of %d steps, %d joints, %d drivers", len(steps), n, inputs)
	return sys, nil
}

// N returns the number of joints the system resolves positions for.
func (s *System) N() int {
	return s.n
}

// Inputs returns the number of independent input angles.
func (s *System) Inputs() int {
	return len(s.drivers)
}

// Drivers returns the driver joint indices in input-slot order.
func (s *System) Drivers() []int {
	return append([]int(nil), s.drivers...)
}

// Solve executes the plan: given the current joint positions and one angle
// per driver (degrees), it returns the resulting frame of positions. The
// input state is read twice -- link lengths are measured from it, and it
// seeds joints not targeted by any step -- but never written.
//
// A geometrically infeasible step yields an error wrapping ErrUnsolvable.
func (s *System) Solve(state []mech.Position, angles []float64) ([]mech.Position, error) {
	if len(state) != s.n {
		return nil, fmt.Errorf("%w: %d positions for %d joints", ErrConfig, len(state), s.n)
	}
	if len(angles) != len(s.drivers) {
		return nil, fmt.Errorf("%w: %d angles for %d drivers", ErrConfig, len(angles), len(s.drivers))
	}
	frame := make([]mech.Position, s.n)
	copy(frame, state)
	for i, st := range s.steps {
		if err := s.apply(st, state, frame, angles); err != nil {
			tracer().Debugf("step %d (%s) failed: %v", i, st, err)
			return nil, err
		}
	}
	return frame, nil
}

func (s *System) apply(st Step, state, frame []mech.Position, angles []float64) error {
	base := frame[st.Base].Pin
	if base.IsNaN() {
		return fmt.Errorf("%w: base joint P%d is unsolved", ErrConfig, st.Base)
	}
	switch st.Op {
	case PLAP:
		length := linkage.Dist(state[st.Base].Pin, state[st.Target].Pin)
		theta := angles[st.Input]
		if st.Ref >= 0 {
			theta += linkage.HeadingDeg(base, frame[st.Ref].Pin)
		}
		frame[st.Target] = mech.At(base.Shifted(linkage.Polar(length, theta)))
	case PLLP:
		r1 := linkage.Dist(state[st.Base].Pin, state[st.Target].Pin)
		r2 := linkage.Dist(state[st.Base2].Pin, state[st.Target].Pin)
		pt, err := circleCircle(base, r1, frame[st.Base2].Pin, r2, st.Inverse)
		if err != nil {
			return err
		}
		frame[st.Target] = mech.At(pt)
	case PLPP:
		r := linkage.Dist(state[st.Base].Pin, state[st.Target].Pin)
		p1, p2 := frame[st.Ref].Pin, frame[st.Ref2].Pin
		pin, err := circleLine(base, r, p1, p2, st.Inverse)
		if err != nil {
			return err
		}
		frame[st.Target] = mech.Position{Slot: p1, Pin: pin}
	case PXY:
		frame[st.Target] = mech.At(base.Shifted(linkage.P(st.Dx, st.Dy)))
	}
	return nil
}

// circleCircle intersects the circles around c1 (radius r1) and c2
// (radius r2). The default branch lies left of the heading c1->c2;
// inverse selects the mirrored one.
func circleCircle(c1 linkage.Pair, r1 float64, c2 linkage.Pair, r2 float64, inverse bool) (linkage.Pair, error) {
	d := linkage.Dist(c1, c2)
	if linkage.Is0(d) {
		return linkage.NaNPair, fmt.Errorf("%w: concentric base joints", ErrUnsolvable)
	}
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return linkage.NaNPair, fmt.Errorf("%w: circles do not intersect (d=%g, r1=%g, r2=%g)",
			ErrUnsolvable, d, r1, r2)
	}
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0 // tangent case, numeric noise
	}
	u := (c2 - c1).Scaled(1 / d)
	mid := c1 + u.Scaled(a)
	off := (u * linkage.P(0, 1)).Scaled(math.Sqrt(h2))
	if inverse {
		return mid - off, nil
	}
	return mid + off, nil
}

// circleLine intersects the circle around c (radius r) with the line
// through p1 and p2. The default branch lies further along the heading
// p1->p2; inverse selects the other one.
func circleLine(c linkage.Pair, r float64, p1, p2 linkage.Pair, inverse bool) (linkage.Pair, error) {
	d := linkage.Dist(p1, p2)
	if linkage.Is0(d) {
		return linkage.NaNPair, fmt.Errorf("%w: degenerate slot line", ErrUnsolvable)
	}
	u := (p2 - p1).Scaled(1 / d)
	// Foot of the perpendicular from c onto the line.
	t := (c - p1).X()*u.X() + (c-p1).Y()*u.Y()
	foot := p1 + u.Scaled(t)
	h2 := r*r - linkage.Dist(c, foot)*linkage.Dist(c, foot)
	if h2 < 0 {
		return linkage.NaNPair, fmt.Errorf("%w: slot line misses circle (r=%g)", ErrUnsolvable, r)
	}
	off := u.Scaled(math.Sqrt(h2))
	if inverse {
		return foot - off, nil
	}
	return foot + off, nil
}
