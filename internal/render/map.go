// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"

	"github.com/ajstarks/svgo"
	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/threshold"
	"github.com/edattain/choropleth/topo"
	"github.com/pkg/errors"
)

// MapOptions controls the county map.
type MapOptions struct {
	// Width and Height are the size of the map in pixels. The
	// topology is assumed to be projected to this space already.
	Width, Height int

	// Counties and States name the topology objects holding the
	// county polygons and the state polygons.
	Counties, States string
}

// DefaultMapOptions returns options for the us-atlas style county
// topology.
func DefaultMapOptions() MapOptions {
	return MapOptions{Width: 1000, Height: 630, Counties: "counties", States: "states"}
}

// A CountyShape is a county as drawn on the map.
type CountyShape struct {
	County edu.County
	Fill   string // CSS color
	Path   string // SVG path data
}

// CountyShapes joins the counties of t with their education records
// and colors them by s. It fails with a *edu.LookupMissError if a
// county geometry has no record.
func CountyShapes(lookup edu.Lookup, t *topo.Topology, s *threshold.Scale, o MapOptions) ([]CountyShape, error) {
	obj, err := t.Object(o.Counties)
	if err != nil {
		return nil, err
	}
	fs, err := t.Feature(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", o.Counties)
	}
	shapes := make([]CountyShape, 0, len(fs))
	for _, f := range fs {
		fips, err := f.ID.Int()
		if err != nil {
			return nil, err
		}
		c, err := lookup.Get(fips)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, CountyShape{
			County: c,
			Fill:   threshold.Hex(s.Map(c.Degrees)),
			Path:   topo.PathData(f.Geometry),
		})
	}
	return shapes, nil
}

// StateBorders returns SVG path data for the borders between distinct
// states of t.
func StateBorders(t *topo.Topology, o MapOptions) (string, error) {
	obj, err := t.Object(o.States)
	if err != nil {
		return "", err
	}
	mesh, err := t.Mesh(obj, topo.Interior)
	if err != nil {
		return "", errors.Wrapf(err, "meshing %s", o.States)
	}
	return topo.PathData(mesh), nil
}

// Map writes the SVG county map to w and returns the county lookup
// built from recs. Each county path carries data-fips and
// data-education attributes. State borders are drawn over the
// counties as a single unfilled path.
//
// Nothing is written if any county lacks a record.
func Map(w io.Writer, recs []edu.Record, t *topo.Topology, s *threshold.Scale, o MapOptions) (edu.Lookup, error) {
	lookup := edu.NewLookup(recs)
	shapes, err := CountyShapes(lookup, t, s, o)
	if err != nil {
		return nil, err
	}
	borders, err := StateBorders(t, o)
	if err != nil {
		return nil, err
	}

	canvas := svg.New(w)
	canvas.Start(o.Width, o.Height, `id="map"`)
	canvas.Group(`class="counties"`)
	for _, sh := range shapes {
		canvas.Path(sh.Path,
			`class="county"`,
			fmt.Sprintf(`data-fips="%d"`, sh.County.ID),
			`data-education="`+edu.FormatPercent(sh.County.Degrees)+`"`,
			`fill="`+sh.Fill+`"`)
	}
	canvas.Gend()
	canvas.Path(borders, `class="states"`, `fill="none"`, `stroke="#fff"`, `stroke-linejoin="round"`)
	canvas.End()
	return lookup, nil
}
