/*
Package polygon implements closed polygons over linkage pairs, with
boolean clipping and area scoring.

Coupler curves traced by a mechanism sweep arrive as sample sequences;
this package closes them into polygons and compares them: union,
intersection, clipping to a box, and an overlap score in [0,1] used to
rank a traced curve against a target curve.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/linkage"
	"github.com/npillmayer/schuko/tracing"
)

// L writes to trace with key 'polygon'
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// === Polygon Data Type =====================================================

// Polygon is a closed sequence of knots. The closing edge from the last
// knot back to the first is implicit.
type Polygon struct {
	knots []linkage.Pair
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.knots)
}

// Pt returns knot i.
func (pg *Polygon) Pt(i int) linkage.Pair {
	return pg.knots[i]
}

// AsString returns a polygon as a string, MetaPost style.
func AsString(pg *Polygon) string {
	var s string
	for i, k := range pg.knots {
		if i > 0 {
			s += " -- "
		}
		s += k.String()
	}
	return s + " -- cycle"
}

// === Polygon Builder =======================================================

// Builder collects knots for a polygon. Start with NullPolygon, then add
// knots, then close the cycle:
//
//	pg := polygon.NullPolygon().Knot(p1).Knot(p2).Knot(p3).Cycle()
type Builder struct {
	pg *Polygon
}

// NullPolygon starts a polygon builder with no knots.
func NullPolygon() *Builder {
	return &Builder{pg: &Polygon{}}
}

// Knot appends a knot.
func (b *Builder) Knot(p linkage.Pair) *Builder {
	b.pg.knots = append(b.pg.knots, p)
	return b
}

// Cycle closes the polygon and returns it. Polygons with fewer than 3
// knots are degenerate; they are returned nevertheless, with a trace
// warning, and have zero area.
func (b *Builder) Cycle() *Polygon {
	if b.pg.N() < 3 {
		L().Infof("degenerate polygon with %d knots", b.pg.N())
	}
	return b.pg
}

// Box builds a rectangle polygon from two opposite corners.
func Box(p1, p2 linkage.Pair) *Polygon {
	return NullPolygon().
		Knot(p1).
		Knot(linkage.P(p2.X(), p1.Y())).
		Knot(p2).
		Knot(linkage.P(p1.X(), p2.Y())).
		Cycle()
}

// FromSamples closes a traced coupler curve into a polygon. Sentinel
// samples (infeasible configurations) and immediately repeated knots are
// skipped.
func FromSamples(samples []linkage.Pair) *Polygon {
	b := NullPolygon()
	for _, s := range samples {
		if s.IsNaN() {
			continue
		}
		if n := b.pg.N(); n > 0 && b.pg.knots[n-1].Equal(s) {
			continue
		}
		b.Knot(s)
	}
	return b.Cycle()
}

// === Area and Boolean Operations ===========================================

// Area returns the absolute enclosed area (shoelace formula). Degenerate
// polygons have zero area.
func (pg *Polygon) Area() float64 {
	return math.Abs(signedArea(pg.knots))
}

func signedArea(knots []linkage.Pair) float64 {
	if len(knots) < 3 {
		return 0
	}
	var a float64
	for i, k := range knots {
		next := knots[(i+1)%len(knots)]
		a += k.X()*next.Y() - next.X()*k.Y()
	}
	return a / 2
}

// Union returns the boolean union of two polygons. The result may consist
// of several disjoint polygons (and holes, traced with opposite
// orientation).
func Union(a, b *Polygon) []*Polygon {
	return construct(polyclip.UNION, a, b)
}

// Intersect returns the boolean intersection of two polygons.
func Intersect(a, b *Polygon) []*Polygon {
	return construct(polyclip.INTERSECTION, a, b)
}

// Clip cuts a polygon down to the given box (a viewport, typically).
func (pg *Polygon) Clip(box *Polygon) []*Polygon {
	return construct(polyclip.INTERSECTION, pg, box)
}

func construct(op polyclip.Op, a, b *Polygon) []*Polygon {
	result := contours(a).Construct(op, contours(b))
	set := make([]*Polygon, 0, len(result))
	for _, c := range result {
		pg := &Polygon{knots: make([]linkage.Pair, 0, len(c))}
		for _, pt := range c {
			pg.knots = append(pg.knots, linkage.P(pt.X, pt.Y))
		}
		set = append(set, pg)
	}
	return set
}

func contours(pg *Polygon) polyclip.Polygon {
	c := make(polyclip.Contour, 0, pg.N())
	for _, k := range pg.knots {
		c = append(c, polyclip.Point{X: k.X(), Y: k.Y()})
	}
	return polyclip.Polygon{c}
}

// setArea sums the signed areas of a polygon set. Holes carry opposite
// orientation and subtract themselves.
func setArea(set []*Polygon) float64 {
	var a float64
	for _, pg := range set {
		a += signedArea(pg.knots)
	}
	return math.Abs(a)
}

// Overlap scores the similarity of two polygons as intersection area over
// union area, in [0,1]. Identical polygons score 1, disjoint ones 0.
func Overlap(a, b *Polygon) float64 {
	u := setArea(Union(a, b))
	if linkage.Is0(u) {
		return 0
	}
	score := setArea(Intersect(a, b)) / u
	L().Debugf("overlap = %.4f", score)
	return score
}
