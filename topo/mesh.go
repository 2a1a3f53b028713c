// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"encoding/json"
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// A MeshFilter decides whether an arc belongs in a mesh. a and b are
// the first and last geometries that reference the arc; they are the
// same geometry if only one does.
type MeshFilter func(a, b *Geometry) bool

// Interior is a MeshFilter that keeps only arcs shared by two distinct
// geometries, such as the border between two states.
func Interior(a, b *Geometry) bool { return a != b }

// Exterior is a MeshFilter that keeps only arcs on the outer boundary
// of o.
func Exterior(a, b *Geometry) bool { return a == b }

// Mesh returns the arcs referenced by o that satisfy filter, each
// exactly once, in arc order. If filter is nil every referenced arc
// is returned. Each arc is its own line; arcs are not joined.
func (t *Topology) Mesh(o *Geometry, filter MeshFilter) (orb.MultiLineString, error) {
	type ref struct {
		i int
		g *Geometry
	}
	byArc := make(map[int][]ref)
	var order []int

	var extract func(g *Geometry) error
	extract = func(g *Geometry) error {
		add := func(i int) {
			j := i
			if j < 0 {
				j = ^j
			}
			if _, ok := byArc[j]; !ok {
				order = append(order, j)
			}
			byArc[j] = append(byArc[j], ref{i, g})
		}
		switch g.Type {
		case "GeometryCollection":
			for _, sub := range g.Geometries {
				if err := extract(sub); err != nil {
					return err
				}
			}
		case "LineString":
			var refs []int
			if err := json.Unmarshal(g.Arcs, &refs); err != nil {
				return errors.Wrap(err, "decoding arcs")
			}
			for _, i := range refs {
				add(i)
			}
		case "MultiLineString", "Polygon":
			var refs [][]int
			if err := json.Unmarshal(g.Arcs, &refs); err != nil {
				return errors.Wrap(err, "decoding arcs")
			}
			for _, r := range refs {
				for _, i := range r {
					add(i)
				}
			}
		case "MultiPolygon":
			var refs [][][]int
			if err := json.Unmarshal(g.Arcs, &refs); err != nil {
				return errors.Wrap(err, "decoding arcs")
			}
			for _, p := range refs {
				for _, r := range p {
					for _, i := range r {
						add(i)
					}
				}
			}
		}
		return nil
	}
	if err := extract(o); err != nil {
		return nil, err
	}

	sort.Ints(order)
	var out orb.MultiLineString
	for _, j := range order {
		refs := byArc[j]
		if filter != nil && !filter(refs[0].g, refs[len(refs)-1].g) {
			continue
		}
		l, err := t.arc(refs[0].i)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
