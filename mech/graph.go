package mech

import (
	"fmt"
	"sort"

	"github.com/npillmayer/linkage"
)

// Graph is an undirected link graph: nodes are links, edges are the joints
// connecting them. Node 0 is the frame ("ground"). Edge order is
// significant, it numbers the joints.
type Graph struct {
	edges [][2]int
	n     int // node count
}

// NewGraph builds a validated link graph from an edge list.
func NewGraph(edges [][2]int) (*Graph, error) {
	if len(edges) == 0 {
		return nil, ErrEmptyGraph
	}
	g := &Graph{edges: make([][2]int, len(edges))}
	for i, e := range edges {
		if e[0] < 0 || e[1] < 0 {
			return nil, fmt.Errorf("%w: edge %d = (%d,%d)", ErrBadNode, i, e[0], e[1])
		}
		if e[0] == e[1] {
			return nil, fmt.Errorf("%w: edge %d on link %d", ErrSelfLoop, i, e[0])
		}
		g.edges[i] = e
		if e[0] >= g.n {
			g.n = e[0] + 1
		}
		if e[1] >= g.n {
			g.n = e[1] + 1
		}
	}
	return g, nil
}

// N returns the number of links (graph nodes).
func (g *Graph) N() int {
	return g.n
}

// Edges returns a copy of the edge list. Edge i is joint i.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Degree returns the number of joints on link n.
func (g *Graph) Degree(n int) int {
	d := 0
	for _, e := range g.edges {
		if e[0] == n || e[1] == n {
			d++
		}
	}
	return d
}

// IsConnected is a predicate: can every link be reached from ground?
// A mechanism with a detached link cannot be solved as one expression.
func (g *Graph) IsConnected() bool {
	seen := make([]bool, g.n)
	stack := []int{0}
	seen[0] = true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.edges {
			var m int
			switch n {
			case e[0]:
				m = e[1]
			case e[1]:
				m = e[0]
			default:
				continue
			}
			if !seen[m] {
				seen[m] = true
				stack = append(stack, m)
			}
		}
	}
	for _, s := range seen {
		if !s {
			return false
		}
	}
	return true
}

// LinkName returns the conventional name of graph node n.
func LinkName(n int) string {
	if n == 0 {
		return Ground
	}
	return fmt.Sprintf("L%d", n)
}

// FromGraph synthesizes the joint list of a mechanism from its link graph
// and a layout.
//
// Edge i of the graph yields revolute joint i, placed at pos[i] and
// belonging to the two links the edge connects. Joints listed in same are
// duplicates: they are merged into their canonical joint (which absorbs
// their link membership) and do not appear in the result. Custom joints
// (cus, joint number to link node) are appended after the edge joints.
//
// The returned slice is indexed by solved-joint index; the original joint
// numbers survive in Joint.Name.
func FromGraph(g *Graph, pos map[int]linkage.Pair, cus map[int]int, same map[int]int) ([]Joint, error) {
	base := len(g.edges)
	for dup, can := range same {
		if dup < 0 || dup >= base {
			return nil, fmt.Errorf("%w: no joint %d", ErrBadSameRef, dup)
		}
		if can < 0 || can >= base || can == dup {
			return nil, fmt.Errorf("%w: joint %d -> %d", ErrBadSameRef, dup, can)
		}
		if _, nested := same[can]; nested {
			return nil, fmt.Errorf("%w: joint %d -> %d is itself a duplicate", ErrBadSameRef, dup, can)
		}
	}
	joints := make([]Joint, 0, base+len(cus))
	index := make(map[int]int, base) // original joint number -> solved index
	for n := 0; n < base; n++ {
		if _, isDup := same[n]; isDup {
			continue
		}
		p, ok := pos[n]
		if !ok {
			return nil, fmt.Errorf("%w: joint %d", ErrMissingPos, n)
		}
		e := g.edges[n]
		index[n] = len(joints)
		joints = append(joints, Joint{
			Name:  fmt.Sprintf("P%d", n),
			Kind:  R,
			Links: []string{LinkName(e[0]), LinkName(e[1])},
			At:    At(p),
		})
	}
	for dup, can := range same {
		j := &joints[index[can]]
		for _, l := range []string{LinkName(g.edges[dup][0]), LinkName(g.edges[dup][1])} {
			if !j.On(l) {
				j.Links = append(j.Links, l)
			}
		}
	}
	// Custom joints, in ascending joint-number order.
	nums := make([]int, 0, len(cus))
	for n := range cus {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		link := cus[n]
		if link < 0 || link >= g.n {
			return nil, fmt.Errorf("%w: joint %d on node %d", ErrUnknownLink, n, link)
		}
		p, ok := pos[n]
		if !ok {
			return nil, fmt.Errorf("%w: joint %d", ErrMissingPos, n)
		}
		joints = append(joints, Joint{
			Name:  fmt.Sprintf("P%d", n),
			Kind:  R,
			Links: []string{LinkName(link)},
			At:    At(p),
		})
	}
	tracer().Debugf("mechanism with %d links and %d joints", g.n, len(joints))
	return joints, nil
}
