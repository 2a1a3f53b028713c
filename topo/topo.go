// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topo decodes TopoJSON topologies into planar geometries.
//
// A topology stores each shared boundary once as an arc. Geometries
// refer to arcs by index; a negative index ^i refers to arc i
// traversed in reverse. Feature reassembles the geometries of an
// object from its arcs and Mesh extracts the arcs themselves, which
// is how shared borders are drawn exactly once.
//
// See https://github.com/topojson/topojson-specification.
package topo

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// A Topology is a decoded TopoJSON document.
type Topology struct {
	Type      string               `json:"type"`
	BBox      []float64            `json:"bbox,omitempty"`
	Transform *Transform           `json:"transform,omitempty"`
	Objects   map[string]*Geometry `json:"objects"`

	// Arcs are the raw arc positions as they appear in the
	// document. If Transform is non-nil they are quantized and
	// delta-encoded.
	Arcs [][][]float64 `json:"arcs"`

	arcs []orb.LineString
}

// Transform maps quantized positions back to coordinates.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// A Geometry is a TopoJSON geometry object. Arcs holds the arc
// references and is nested according to Type: []int for LineString,
// [][]int for MultiLineString and Polygon, and [][][]int for
// MultiPolygon. Coordinates holds positions for Point and MultiPoint.
type Geometry struct {
	Type        string                 `json:"type"`
	ID          ID                     `json:"id,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Arcs        json.RawMessage        `json:"arcs,omitempty"`
	Coordinates json.RawMessage        `json:"coordinates,omitempty"`
	Geometries  []*Geometry            `json:"geometries,omitempty"`
}

// An ID is a geometry identifier. TopoJSON allows either strings or
// numbers; both are kept in their textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "geometry id must be a string or number")
	}
	*id = ID(n.String())
	return nil
}

// Int returns id as an integer. Numeric ids with leading zeros, as
// FIPS codes are often written, parse as their decimal value.
func (id ID) Int() (int, error) {
	if id == "" {
		return 0, errors.New("geometry has no id")
	}
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, errors.Wrapf(err, "geometry id %q", string(id))
	}
	return n, nil
}

// Decode reads a TopoJSON topology from r.
func Decode(r io.Reader) (*Topology, error) {
	t := new(Topology)
	if err := json.NewDecoder(r).Decode(t); err != nil {
		return nil, errors.Wrap(err, "decoding topology")
	}
	if t.Type != "Topology" {
		return nil, errors.Errorf("not a topology: type %q", t.Type)
	}
	if err := t.decodeArcs(); err != nil {
		return nil, err
	}
	return t, nil
}

// Object returns the named geometry object of t.
func (t *Topology) Object(name string) (*Geometry, error) {
	o, ok := t.Objects[name]
	if !ok || o == nil {
		return nil, errors.Errorf("topology has no object %q", name)
	}
	return o, nil
}

// decodeArcs resolves the quantized, delta-encoded arcs into absolute
// positions.
func (t *Topology) decodeArcs() error {
	t.arcs = make([]orb.LineString, len(t.Arcs))
	for i, raw := range t.Arcs {
		arc := make(orb.LineString, len(raw))
		var x, y float64
		for j, p := range raw {
			if len(p) < 2 {
				return errors.Errorf("arc %d position %d has %d coordinates", i, j, len(p))
			}
			if t.Transform == nil {
				arc[j] = orb.Point{p[0], p[1]}
				continue
			}
			x += p[0]
			y += p[1]
			arc[j] = t.transformPoint(x, y)
		}
		t.arcs[i] = arc
	}
	return nil
}

func (t *Topology) transformPoint(x, y float64) orb.Point {
	if t.Transform == nil {
		return orb.Point{x, y}
	}
	tr := t.Transform
	return orb.Point{x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]}
}

// arc returns arc reference i in traversal order.
func (t *Topology) arc(i int) (orb.LineString, error) {
	j := i
	if j < 0 {
		j = ^j
	}
	if j >= len(t.arcs) {
		return nil, errors.Errorf("arc %d out of range (%d arcs)", i, len(t.arcs))
	}
	a := t.arcs[j]
	if i >= 0 {
		return a, nil
	}
	rev := make(orb.LineString, len(a))
	for k, p := range a {
		rev[len(a)-1-k] = p
	}
	return rev, nil
}

// line stitches arc references into one line. The first point of
// each arc after the first duplicates the last point of the previous
// arc and is dropped.
func (t *Topology) line(refs []int) (orb.LineString, error) {
	var out orb.LineString
	for k, i := range refs {
		a, err := t.arc(i)
		if err != nil {
			return nil, err
		}
		if k > 0 && len(a) > 0 {
			a = a[1:]
		}
		out = append(out, a...)
	}
	return out, nil
}

func (t *Topology) ring(refs []int) (orb.Ring, error) {
	l, err := t.line(refs)
	if err != nil {
		return nil, err
	}
	r := orb.Ring(l)
	// Rings of fewer than four points are degenerate; pad them
	// so they still close.
	for len(r) > 0 && len(r) < 4 {
		r = append(r, r[0])
	}
	return r, nil
}

func (t *Topology) polygon(refs [][]int) (orb.Polygon, error) {
	p := make(orb.Polygon, 0, len(refs))
	for _, rr := range refs {
		r, err := t.ring(rr)
		if err != nil {
			return nil, err
		}
		p = append(p, r)
	}
	return p, nil
}
