package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/linkage/mech"
)

// Plan bundles everything a path trace needs, derived from a stored
// mechanism profile: the compiled system, the seed positions, the driver
// order, and the solved-index to joint-name mapping.
type Plan struct {
	System  *System
	Start   []mech.Position
	Drivers []int
	Mapping []string // joint name per solved index; duplicates excluded
}

// PlanProfile derives a trace plan from a mechanism profile.
//
// Joint numbers in the profile's expression text are the original ones;
// duplicate ("same") joints are collapsed onto their canonical joint and
// excluded from the mapping, so the plan works in dense solved indices.
func PlanProfile(p *mech.Profile) (*Plan, error) {
	g, err := mech.NewGraph(p.Edges)
	if err != nil {
		return nil, err
	}
	joints, err := mech.FromGraph(g, p.Layout(), p.Cus, p.Same)
	if err != nil {
		return nil, err
	}
	index := make(map[int]int, len(joints)) // original joint number -> solved index
	mapping := make([]string, len(joints))
	start := make([]mech.Position, len(joints))
	for i, j := range joints {
		n, err := jointNumber(j.Name)
		if err != nil {
			return nil, err
		}
		index[n] = i
		mapping[i] = j.Name
		start[i] = j.At
	}
	remap := func(n int) (int, error) {
		if n < 0 {
			return n, nil // unused field
		}
		if can, isDup := p.Same[n]; isDup {
			n = can
		}
		i, ok := index[n]
		if !ok {
			return -1, fmt.Errorf("%w: expression references unknown joint P%d", ErrConfig, n)
		}
		return i, nil
	}
	steps, err := Parse(p.Expression)
	if err != nil {
		return nil, err
	}
	for i := range steps {
		st := &steps[i]
		for _, f := range []*int{&st.Base, &st.Base2, &st.Ref, &st.Ref2, &st.Target} {
			if *f, err = remap(*f); err != nil {
				return nil, err
			}
		}
	}
	drivers := make([]int, len(p.Inputs))
	for i, in := range p.Inputs {
		if drivers[i], err = remap(in[0]); err != nil {
			return nil, err
		}
	}
	sys, err := NewSystem(steps, drivers, len(joints))
	if err != nil {
		return nil, err
	}
	return &Plan{System: sys, Start: start, Drivers: drivers, Mapping: mapping}, nil
}

func jointNumber(name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "P"))
	if err != nil {
		return -1, fmt.Errorf("%w: joint name %q", ErrConfig, name)
	}
	return n, nil
}
