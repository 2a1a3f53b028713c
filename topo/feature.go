// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// A Feature is a geometry of a topology resolved into coordinates.
type Feature struct {
	ID         ID
	Properties map[string]interface{}
	Geometry   orb.Geometry // nil for a null geometry
}

// Feature returns the features of o. A GeometryCollection yields one
// feature per member; any other geometry yields a single feature.
func (t *Topology) Feature(o *Geometry) ([]Feature, error) {
	if o.Type == "GeometryCollection" {
		fs := make([]Feature, 0, len(o.Geometries))
		for i, g := range o.Geometries {
			geom, err := t.Geometry(g)
			if err != nil {
				return nil, errors.Wrapf(err, "geometry %d (id %q)", i, string(g.ID))
			}
			fs = append(fs, Feature{g.ID, g.Properties, geom})
		}
		return fs, nil
	}
	geom, err := t.Geometry(o)
	if err != nil {
		return nil, err
	}
	return []Feature{{o.ID, o.Properties, geom}}, nil
}

// Geometry resolves g into coordinates.
func (t *Topology) Geometry(g *Geometry) (orb.Geometry, error) {
	switch g.Type {
	case "", "null":
		return nil, nil

	case "Point":
		var p []float64
		if err := unmarshal(g.Coordinates, &p); err != nil {
			return nil, err
		}
		return t.point(p)

	case "MultiPoint":
		var ps [][]float64
		if err := unmarshal(g.Coordinates, &ps); err != nil {
			return nil, err
		}
		mp := make(orb.MultiPoint, 0, len(ps))
		for _, p := range ps {
			pt, err := t.point(p)
			if err != nil {
				return nil, err
			}
			mp = append(mp, pt)
		}
		return mp, nil

	case "LineString":
		var refs []int
		if err := unmarshal(g.Arcs, &refs); err != nil {
			return nil, err
		}
		return t.line(refs)

	case "MultiLineString":
		var refs [][]int
		if err := unmarshal(g.Arcs, &refs); err != nil {
			return nil, err
		}
		ml := make(orb.MultiLineString, 0, len(refs))
		for _, r := range refs {
			l, err := t.line(r)
			if err != nil {
				return nil, err
			}
			ml = append(ml, l)
		}
		return ml, nil

	case "Polygon":
		var refs [][]int
		if err := unmarshal(g.Arcs, &refs); err != nil {
			return nil, err
		}
		return t.polygon(refs)

	case "MultiPolygon":
		var refs [][][]int
		if err := unmarshal(g.Arcs, &refs); err != nil {
			return nil, err
		}
		mp := make(orb.MultiPolygon, 0, len(refs))
		for _, r := range refs {
			p, err := t.polygon(r)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p)
		}
		return mp, nil

	case "GeometryCollection":
		c := make(orb.Collection, 0, len(g.Geometries))
		for _, sub := range g.Geometries {
			geom, err := t.Geometry(sub)
			if err != nil {
				return nil, err
			}
			if geom != nil {
				c = append(c, geom)
			}
		}
		return c, nil
	}
	return nil, errors.Errorf("unknown geometry type %q", g.Type)
}

func (t *Topology) point(p []float64) (orb.Point, error) {
	if len(p) < 2 {
		return orb.Point{}, errors.Errorf("position has %d coordinates", len(p))
	}
	return t.transformPoint(p[0], p[1]), nil
}

func unmarshal(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return errors.New("geometry has no arcs or coordinates")
	}
	return errors.Wrap(json.Unmarshal(data, v), "decoding geometry")
}
