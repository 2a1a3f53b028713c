// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/threshold"
	"github.com/edattain/choropleth/topo"
)

var threeRecords = []edu.Record{
	{FIPS: 1, AreaName: "A", State: "S", BachelorsOrHigher: 10},
	{FIPS: 2, AreaName: "B", State: "S", BachelorsOrHigher: 50},
	{FIPS: 3, AreaName: "C", State: "S", BachelorsOrHigher: 90},
}

// threeSquares has counties 1, 2 and 3 left to right, and states X
// (county 1) and Y (counties 2 and 3).
const threeSquares = `{
  "type": "Topology",
  "objects": {
    "counties": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1, "arcs": [[0, 2]]},
      {"type": "Polygon", "id": 2, "arcs": [[3, 1, 4, -1]]},
      {"type": "Polygon", "id": 3, "arcs": [[5, -2]]}
    ]},
    "states": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": "X", "arcs": [[0, 2]]},
      {"type": "Polygon", "id": "Y", "arcs": [[3, 5, 4, -1]]}
    ]}
  },
  "arcs": [
    [[1, 0], [1, 1]],
    [[2, 0], [2, 1]],
    [[1, 1], [0, 1], [0, 0], [1, 0]],
    [[1, 0], [2, 0]],
    [[2, 1], [1, 1]],
    [[2, 0], [3, 0], [3, 1], [2, 1]]
  ]
}`

var palette3 = []color.Color{
	color.RGBA{0xde, 0xeb, 0xf7, 0xff},
	color.RGBA{0x9e, 0xca, 0xe1, 0xff},
	color.RGBA{0x31, 0x82, 0xbd, 0xff},
}

func setup(t *testing.T) (*topo.Topology, *threshold.Scale) {
	t.Helper()
	tp, err := topo.Decode(strings.NewReader(threeSquares))
	if err != nil {
		t.Fatal(err)
	}
	s, err := threshold.Build(edu.Percentages(threeRecords), palette3)
	if err != nil {
		t.Fatal(err)
	}
	return tp, s
}

// elements returns the attributes of every element named name in the
// XML document r.
func elements(t *testing.T, r io.Reader, name string) []map[string]string {
	t.Helper()
	var out []map[string]string
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != name {
			continue
		}
		attrs := make(map[string]string)
		for _, a := range se.Attr {
			attrs[a.Name.Local] = a.Value
		}
		out = append(out, attrs)
	}
	return out
}

func TestLegendLayout(t *testing.T) {
	_, s := setup(t)
	o := DefaultLegendOptions()
	rects, ticks := LegendLayout(10, 90, s, o)
	if len(rects) != 3 {
		t.Fatalf("want 3 rects, got %d", len(rects))
	}
	if rects[0].X != o.Padding || rects[0].Lo != 10 {
		t.Errorf("first rect starts at x=%d value=%v, want x=%d value=10", rects[0].X, rects[0].Lo, o.Padding)
	}
	if rects[2].Hi != 90 {
		t.Errorf("last rect ends at value %v, want 90", rects[2].Hi)
	}
	for i, r := range rects {
		if !sameColor(s.Map(r.Lo), r.Color) {
			t.Errorf("rect %d color does not match scale at its left edge", i)
		}
	}

	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	if have, want := strings.Join(labels, " "), "36% 63%"; have != want {
		t.Errorf("tick labels %q, want %q", have, want)
	}
}

func sameColor(a, b color.Color) bool {
	return threshold.Hex(a) == threshold.Hex(b)
}

func TestLegendWidthsSum(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		n := 2 + r.Intn(9)
		colors := make([]color.Color, n)
		for i := range colors {
			colors[i] = color.Gray{uint8(i * 20)}
		}
		lo := r.Float64() * 50
		hi := lo + 0.5 + r.Float64()*50
		s, err := threshold.Build([]float64{lo, hi}, colors)
		if err != nil {
			t.Fatal(err)
		}
		o := LegendOptions{Width: 100 + r.Intn(500), Height: 50, Padding: r.Intn(30), BarHeight: 20}
		rects, _ := LegendLayout(lo, hi, s, o)
		sum, x := 0, o.Padding
		for i, rc := range rects {
			if rc.Width < 0 {
				t.Fatalf("rect %d has negative width %d", i, rc.Width)
			}
			if rc.X != x {
				t.Fatalf("rect %d starts at %d, want %d (no gaps)", i, rc.X, x)
			}
			sum += rc.Width
			x += rc.Width
		}
		if want := o.Width - 2*o.Padding; sum != want {
			t.Fatalf("widths sum to %d, want %d", sum, want)
		}
	}
}

func TestLegendSVG(t *testing.T) {
	_, s := setup(t)
	var buf bytes.Buffer
	if err := Legend(&buf, 10, 90, s, DefaultLegendOptions()); err != nil {
		t.Fatal(err)
	}
	svgs := elements(t, bytes.NewReader(buf.Bytes()), "svg")
	if len(svgs) != 1 || svgs[0]["id"] != "legend" {
		t.Errorf("want one svg#legend, got %v", svgs)
	}
	if rects := elements(t, bytes.NewReader(buf.Bytes()), "rect"); len(rects) != 3 {
		t.Errorf("want 3 rects, got %d", len(rects))
	}
	if !strings.Contains(buf.String(), ">36%<") {
		t.Errorf("legend missing 36%% label:\n%s", buf.String())
	}

	if err := Legend(&buf, 5, 5, s, DefaultLegendOptions()); err == nil {
		t.Errorf("Legend accepted an empty range")
	}
}

func TestMap(t *testing.T) {
	tp, s := setup(t)
	var buf bytes.Buffer
	lookup, err := Map(&buf, threeRecords, tp, s, DefaultMapOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(lookup) != 3 {
		t.Errorf("want 3 lookup entries, got %d", len(lookup))
	}

	paths := elements(t, bytes.NewReader(buf.Bytes()), "path")
	var counties []map[string]string
	var states []map[string]string
	for _, p := range paths {
		switch p["class"] {
		case "county":
			counties = append(counties, p)
		case "states":
			states = append(states, p)
		}
	}
	if len(counties) != 3 {
		t.Fatalf("want 3 county paths, got %d", len(counties))
	}
	for i, want := range []struct {
		fips, education, d string
		bucket             int
	}{
		{"1", "10", "M1,0L1,1L0,1L0,0Z", 0},
		{"2", "50", "M1,0L2,0L2,1L1,1Z", 1},
		{"3", "90", "M2,0L3,0L3,1L2,1Z", 2},
	} {
		c := counties[i]
		if c["data-fips"] != want.fips || c["data-education"] != want.education {
			t.Errorf("county %d: data-fips=%q data-education=%q, want %q %q", i, c["data-fips"], c["data-education"], want.fips, want.education)
		}
		if c["d"] != want.d {
			t.Errorf("county %d: d=%q, want %q", i, c["d"], want.d)
		}
		if have, wantFill := c["fill"], threshold.Hex(palette3[want.bucket]); have != wantFill {
			t.Errorf("county %d: fill %s, want %s", i, have, wantFill)
		}
	}

	if len(states) != 1 {
		t.Fatalf("want 1 state border path, got %d", len(states))
	}
	if states[0]["d"] != "M1,0L1,1" || states[0]["fill"] != "none" {
		t.Errorf("state borders d=%q fill=%q, want only the X|Y border unfilled", states[0]["d"], states[0]["fill"])
	}
}

func TestMapLookupMiss(t *testing.T) {
	tp, s := setup(t)
	var buf bytes.Buffer
	_, err := Map(&buf, threeRecords[:2], tp, s, DefaultMapOptions())
	var miss *edu.LookupMissError
	if !errors.As(err, &miss) || miss.FIPS != 3 {
		t.Fatalf("want LookupMissError for FIPS 3, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Map wrote %d bytes despite failing", buf.Len())
	}
}

func TestDocument(t *testing.T) {
	tp, s := setup(t)
	var buf bytes.Buffer
	if err := Document(&buf, threeRecords, tp, s, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	page := buf.String()
	if strings.Contains(page, "<?xml") {
		t.Errorf("page contains an XML prolog")
	}
	for _, want := range []string{
		`<svg width="300" height="50"`,
		`id="legend"`,
		`id="map"`,
		`<div id="tooltip" style="opacity: 0"></div>`,
		`data-fips="2"`,
		`"area":"B"`,
		`addEventListener("mouseover", enter)`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	buf.Reset()
	err := Document(&buf, threeRecords[1:], tp, s, DefaultOptions())
	if err == nil || buf.Len() != 0 {
		t.Errorf("Document with a missing county: err=%v, wrote %d bytes", err, buf.Len())
	}
}
