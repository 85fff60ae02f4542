package mech

import "github.com/npillmayer/linkage"

// Profile is a stored mechanism description, the artifact a trace run is
// configured from. Profiles are built once (loaded from a collection or a
// synthesis result) and read-only afterwards.
type Profile struct {
	Name       string
	Expression string               // solving plan text, see package expr
	Edges      [][2]int             // link graph edge list, node 0 is ground
	Pos        map[int]linkage.Pair // layout coordinate per joint number
	Cus        map[int]int          // custom joint number -> link node
	Same       map[int]int          // duplicate joint number -> canonical joint number
	Inputs     [][2]int             // driver (base joint, driven joint) pairs, sweep order
	Placement  map[int]linkage.Pair // grounded-pivot overrides of Pos
}

// Layout returns the effective joint coordinates: Pos with Placement
// overrides applied. The receiver is not modified.
func (p *Profile) Layout() map[int]linkage.Pair {
	layout := make(map[int]linkage.Pair, len(p.Pos))
	for n, c := range p.Pos {
		layout[n] = c
	}
	for n, c := range p.Placement {
		layout[n] = c
	}
	return layout
}

// Drivers returns the driver joint indices in sweep-precedence order.
func (p *Profile) Drivers() []int {
	drivers := make([]int, len(p.Inputs))
	for i, in := range p.Inputs {
		drivers[i] = in[0]
	}
	return drivers
}
