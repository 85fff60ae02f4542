// Package mech models planar-linkage mechanisms: joints, links, the link
// graph, and stored mechanism profiles.
/*

A mechanism is a set of rigid links connected by joints. The link graph has
one node per link and one edge per joint connecting two links; the
first-declared link is the frame ("ground"). Joints carry a kind tag:
revolute pins, prismatic sliders, or revolute-sliders (a pin travelling in
a slot).

A joint's placement is a Position: a slot anchor plus a pin coordinate.
For non-sliding joints both coincide. Positions are plain values passed
into and returned from the position solver; solving never mutates hidden
joint state.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package mech

import (
	"errors"
	"fmt"

	"github.com/npillmayer/linkage"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mech'
func tracer() tracing.Trace {
	return tracing.Select("mech")
}

var (
	// ErrEmptyGraph indicates a link graph without edges.
	ErrEmptyGraph = errors.New("link graph has no edges")
	// ErrSelfLoop indicates an edge connecting a link to itself.
	ErrSelfLoop = errors.New("link graph edge must connect two distinct links")
	// ErrBadNode indicates a negative link node index.
	ErrBadNode = errors.New("link graph node index must not be negative")
	// ErrMissingPos indicates a joint without a layout coordinate.
	ErrMissingPos = errors.New("joint has no layout coordinate")
	// ErrUnknownLink indicates a custom joint bound to a link outside the graph.
	ErrUnknownLink = errors.New("custom joint references unknown link")
	// ErrBadSameRef indicates a duplicate joint referencing an invalid canonical joint.
	ErrBadSameRef = errors.New("duplicate joint references invalid canonical joint")
)

// Kind is the joint kind tag.
type Kind uint8

const (
	R  Kind = iota // revolute (pin) joint
	P              // prismatic (slider) joint
	RP             // revolute-slider joint
)

func (k Kind) String() string {
	switch k {
	case R:
		return "R"
	case P:
		return "P"
	case RP:
		return "RP"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Ground is the conventional name of the frame link (node 0 of the graph).
const Ground = "ground"

// Position is a joint's solved placement: a slot anchor and a pin
// coordinate. Revolute joints have Slot == Pin. A sliding joint's next
// feasibility depends on where its pin currently sits, so positions are
// threaded explicitly between solver calls.
type Position struct {
	Slot linkage.Pair
	Pin  linkage.Pair
}

// At places a non-sliding joint: slot and pin coincide at p.
func At(p linkage.Pair) Position {
	return Position{Slot: p, Pin: p}
}

// IsNaN is a predicate: does any coordinate of the position carry the
// unsolved sentinel?
func (ps Position) IsNaN() bool {
	return ps.Slot.IsNaN() || ps.Pin.IsNaN()
}

func (ps Position) String() string {
	if ps.Slot.Equal(ps.Pin) {
		return ps.Pin.String()
	}
	return fmt.Sprintf("%s@%s", ps.Pin, ps.Slot)
}

// Joint is a pin/slot point connecting links.
type Joint struct {
	Name  string   // externally stable name, e.g. "P3"
	Kind  Kind     // joint kind tag
	Links []string // names of links this joint belongs to
	Angle float64  // slot orientation in degrees, sliding joints only
	At    Position // current placement
}

// On is a predicate: does the joint belong to the named link?
func (j Joint) On(link string) bool {
	for _, l := range j.Links {
		if l == link {
			return true
		}
	}
	return false
}

// IsSlider is a predicate: does the joint's pin travel in a slot?
func (j Joint) IsSlider() bool {
	return j.Kind == P || j.Kind == RP
}

// Link is a rigid body containing two or more joints.
type Link struct {
	Name   string
	Joints []int // joint indices on this link
}

// LinksOf groups a joint list by link membership. The frame link comes
// first (possibly with no joints); further links follow in order of first
// appearance.
func LinksOf(joints []Joint) []Link {
	index := map[string]int{Ground: 0}
	links := []Link{{Name: Ground}}
	for i, j := range joints {
		for _, name := range j.Links {
			k, ok := index[name]
			if !ok {
				k = len(links)
				index[name] = k
				links = append(links, Link{Name: name})
			}
			links[k].Joints = append(links[k].Joints, i)
		}
	}
	return links
}
