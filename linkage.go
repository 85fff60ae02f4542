/*
Package linkage implements the numeric ground floor for planar-linkage
mechanism kinematics: 2D pairs, angle arithmetic, affine transformations,
and the not-a-number sentinel pair used to mark infeasible mechanism
configurations.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package linkage

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'linkage'
func tracer() tracing.Trace {
	return tracing.Select("linkage")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// WrapDeg wraps an angle in degrees to the interval [0,360).
func WrapDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// === Pair Data Type ========================================================

// Pair is an interface for pairs / 2D-points
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// NaNPair is the sentinel marking an unreachable/degenerate mechanism
// configuration. It never compares Equal to anything, including itself.
var NaNPair = Pair(cmplx.NaN())

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	if p.IsNaN() {
		return "(<unsolved>)"
	}
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p.C()), imag(p.C())
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// IsNaN is a predicate: is any coordinate of p unrepresentable?
// Sentinel pairs satisfy it; valid geometric points never do.
func (p Pair) IsNaN() bool {
	return cmplx.IsNaN(p.C()) || cmplx.IsInf(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// Equal compares two pairs. A sentinel pair equals nothing.
func (p Pair) Equal(p2 Pair) bool {
	if p.IsNaN() || p2.IsNaN() {
		return false
	}
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Dist returns the Euclidean distance between two pairs.
func Dist(p, q Pair) float64 {
	return cmplx.Abs(q.C() - p.C())
}

// HeadingDeg returns the direction from p towards q, in degrees
// counterclockwise from the positive x-axis.
func HeadingDeg(p, q Pair) float64 {
	return cmplx.Phase(q.C()-p.C()) / Deg2Rad
}

// Polar returns the pair at distance r from the origin in direction deg
// (degrees counterclockwise from the positive x-axis).
func Polar(r, deg float64) Pair {
	return Pair(cmplx.Rect(r, deg*Deg2Rad))
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return (p + v).Zap()
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a).Zap()
}
