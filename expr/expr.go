// Package expr models the symbolic solving plan of a planar mechanism and
// implements the position solver executing it.
/*

A solving plan is an ordered sequence of steps. Each step is a tagged
operation resolving the coordinate of one joint from joints resolved by
earlier steps (or fixed by placement), a measured link length, and -- for
driver steps -- an input angle:

   PLAP[P0,a0,L0,P1](P2)    crank: P2 lies at distance L0 from P0, at the
                            driver angle a0 (relative to the heading
                            P0->P1, if a reference is given)
   PLLP[P2,L1,L2,P3](P4)    dyad: P4 is an intersection of the circles
                            around P2 (radius L1) and P3 (radius L2)
   PLPP[P2,L3,P5,P6](P7)    slider pin: P7 is an intersection of the
                            circle around P2 (radius L3) with the slot
                            line through P5 and P6
   PXY[P0,x,y](P8)          offset: P8 = P0 + (x,y)

Step order is significant: later steps may depend on joints resolved by
earlier steps. Link lengths are not stored in the plan; they are measured
from the seed positions handed to each Solve call (solving preserves them,
so they stay constant across a sweep).

Solving is a pure function of explicit state: it never mutates its inputs
and returns a fresh frame. Geometric infeasibility (circles that do not
intersect) is reported as ErrUnsolvable and is recoverable by contract;
malformed plans are configuration errors and fatal.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'expr'
func tracer() tracing.Trace {
	return tracing.Select("expr")
}

var (
	// ErrBadExpression indicates malformed solving-plan text.
	ErrBadExpression = errors.New("malformed expression")
	// ErrConfig indicates an inconsistent solving plan or trace setup.
	// Configuration errors are fatal for the whole trace.
	ErrConfig = errors.New("invalid configuration")
	// ErrUnsolvable indicates a geometrically infeasible step at the given
	// angles. It is expected and recoverable: the sweep records a sentinel
	// sample and moves on.
	ErrUnsolvable = errors.New("unsolvable configuration")
)

// Op is the tag of a solving-step operation.
type Op uint8

const (
	PLAP Op = iota // point + length + angle -> point
	PLLP           // two points + two lengths -> point
	PLPP           // point + length + line -> point
	PXY            // point + offset -> point
)

func (op Op) String() string {
	switch op {
	case PLAP:
		return "PLAP"
	case PLLP:
		return "PLLP"
	case PLPP:
		return "PLPP"
	case PXY:
		return "PXY"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Step is one tagged operation of a solving plan. Joint fields hold
// solved-joint indices; unused fields are -1.
type Step struct {
	Op      Op
	Base    int     // primary base joint
	Base2   int     // second base joint (PLLP)
	Ref     int     // heading reference (PLAP) / first slot-line point (PLPP)
	Ref2    int     // second slot-line point (PLPP)
	Input   int     // driver angle slot (PLAP)
	Target  int     // joint resolved by this step
	Dx, Dy  float64 // constant offset (PXY)
	LSym    string  // length symbol, e.g. "L0"
	LSym2   string  // second length symbol (PLLP)
	Inverse bool    // select the other intersection branch
}

// String renders the step in the plan text format.
func (st Step) String() string {
	j := func(n int) string { return fmt.Sprintf("P%d", n) }
	switch st.Op {
	case PLAP:
		if st.Ref >= 0 {
			return fmt.Sprintf("PLAP[%s,a%d,%s,%s](%s)",
				j(st.Base), st.Input, st.LSym, j(st.Ref), j(st.Target))
		}
		return fmt.Sprintf("PLAP[%s,a%d,%s](%s)", j(st.Base), st.Input, st.LSym, j(st.Target))
	case PLLP:
		return fmt.Sprintf("PLLP[%s,%s,%s,%s](%s)",
			j(st.Base), st.LSym, st.LSym2, j(st.Base2), j(st.Target))
	case PLPP:
		return fmt.Sprintf("PLPP[%s,%s,%s,%s](%s)",
			j(st.Base), st.LSym, j(st.Ref), j(st.Ref2), j(st.Target))
	case PXY:
		return fmt.Sprintf("PXY[%s,%g,%g](%s)", j(st.Base), st.Dx, st.Dy, j(st.Target))
	}
	return "?"
}

// AsString renders a whole solving plan in the plan text format.
func AsString(steps []Step) string {
	parts := make([]string, len(steps))
	for i, st := range steps {
		parts[i] = st.String()
	}
	return strings.Join(parts, ";")
}
