package sweep

import (
	"fmt"
	"strings"

	"github.com/npillmayer/linkage"
)

// Path holds the traced sample sequence per joint. Sequences are
// index-aligned: sample k of every joint stems from the same solver call.
// Sentinel (NaN) pairs mark infeasible configurations and must be skipped
// by geometric consumers.
type Path [][]linkage.Pair

// Samples returns the number of samples per joint (all joints share it).
func (p Path) Samples() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Feasible returns the number of non-sentinel samples of joint i.
func (p Path) Feasible(i int) int {
	n := 0
	for _, s := range p[i] {
		if !s.IsNaN() {
			n++
		}
	}
	return n
}

// Transformed returns a copy of the path with every sample transformed by
// m (move / rotate / scale adjustment before comparison or merging).
// Sentinel samples stay sentinels.
func (p Path) Transformed(m linkage.AT) Path {
	q := make(Path, len(p))
	for i, samples := range p {
		q[i] = make([]linkage.Pair, len(samples))
		for k, s := range samples {
			q[i][k] = m.Transform(s)
		}
	}
	return q
}

// AsString renders one joint's sample sequence as a (debugging) string,
// e.g. "(10,0) .. (9.9863,0.5234) .. (<unsolved>)".
func AsString(samples []linkage.Pair) string {
	var b strings.Builder
	for i, s := range samples {
		if i > 0 {
			b.WriteString(" .. ")
		}
		if s.IsNaN() {
			b.WriteString("(<unsolved>)")
		} else {
			fmt.Fprintf(&b, "(%.4g,%.4g)", s.X(), s.Y())
		}
	}
	return b.String()
}
