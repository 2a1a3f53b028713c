// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// pointRadius is the radius of the circle drawn for point geometries.
const pointRadius = 4.5

// PathData returns SVG path data for g in planar coordinates. Rings
// are closed with "Z" rather than by repeating their first point.
// Coordinates are rounded to three decimal places.
func PathData(g orb.Geometry) string {
	var b strings.Builder
	writePath(&b, g)
	return b.String()
}

func writePath(b *strings.Builder, g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		writeCircle(b, g)
	case orb.MultiPoint:
		for _, p := range g {
			writeCircle(b, p)
		}
	case orb.LineString:
		writeLine(b, g, false)
	case orb.MultiLineString:
		for _, l := range g {
			writeLine(b, l, false)
		}
	case orb.Ring:
		writeLine(b, orb.LineString(g), true)
	case orb.Polygon:
		for _, r := range g {
			writeLine(b, orb.LineString(r), true)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			writePath(b, p)
		}
	case orb.Collection:
		for _, sub := range g {
			writePath(b, sub)
		}
	case orb.Bound:
		writePath(b, g.ToPolygon())
	}
}

func writeLine(b *strings.Builder, l orb.LineString, closed bool) {
	n := len(l)
	if closed && n > 1 && l[0] == l[n-1] {
		n--
	}
	for i := 0; i < n; i++ {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		writePoint(b, l[i])
	}
	if closed && n > 0 {
		b.WriteByte('Z')
	}
}

func writeCircle(b *strings.Builder, p orb.Point) {
	r := formatCoord(pointRadius)
	d := formatCoord(2 * pointRadius)
	b.WriteByte('M')
	writePoint(b, p)
	b.WriteString("m0," + r)
	b.WriteString("a" + r + "," + r + " 0 1,1 0,-" + d)
	b.WriteString("a" + r + "," + r + " 0 1,1 0," + d)
	b.WriteByte('Z')
}

func writePoint(b *strings.Builder, p orb.Point) {
	b.WriteString(formatCoord(p[0]))
	b.WriteByte(',')
	b.WriteString(formatCoord(p[1]))
}

func formatCoord(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		// Avoid "-0".
		x = 0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
