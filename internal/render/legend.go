// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the education choropleth: a legend, the county
// map and the HTML page that hosts them.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"github.com/ajstarks/svgo"
	"github.com/edattain/choropleth/threshold"
	"github.com/pkg/errors"
)

// LegendOptions controls the size of the legend.
type LegendOptions struct {
	// Width and Height are the size of the legend in pixels.
	Width, Height int

	// Padding is the horizontal inset of the color bar and the
	// distance of the axis from the bottom edge.
	Padding int

	// BarHeight is the height of the color bar. The bar sits
	// directly above the axis.
	BarHeight int
}

// DefaultLegendOptions returns a 300x50 legend.
func DefaultLegendOptions() LegendOptions {
	return LegendOptions{Width: 300, Height: 50, Padding: 20, BarHeight: 20}
}

// A LegendRect is the color bar segment of one bucket.
type LegendRect struct {
	X, Width int
	Color    color.Color

	// Lo and Hi are the values at the left and right edges.
	Lo, Hi float64
}

// A LegendTick is an axis tick at a bucket boundary.
type LegendTick struct {
	X     int
	Value float64
	Label string
}

// LegendLayout computes the color bar segments and axis ticks for a
// legend spanning [lo, hi]. Bucket extents are projected onto
// [Padding, Width-Padding]; the open ends of the first and last
// buckets are closed at lo and hi. Edges are rounded to whole pixels
// before widths are taken, so the widths sum to the bar width.
func LegendLayout(lo, hi float64, s *threshold.Scale, o LegendOptions) ([]LegendRect, []LegendTick) {
	lin := scale.Linear{Min: lo, Max: hi}
	left, right := float64(o.Padding), float64(o.Width-o.Padding)
	px := func(x float64) int {
		x = math.Max(lo, math.Min(hi, x))
		return round(left + lin.Map(x)*(right-left))
	}

	var rects []LegendRect
	for i, c := range s.Range() {
		elo, ehi := s.Extent(i)
		if math.IsInf(elo, -1) {
			elo = lo
		}
		if math.IsInf(ehi, 1) {
			ehi = hi
		}
		x0, x1 := px(elo), px(ehi)
		if x1 < x0 {
			x1 = x0
		}
		rects = append(rects, LegendRect{x0, x1 - x0, c, elo, ehi})
	}

	var ticks []LegendTick
	for _, d := range s.Domain() {
		ticks = append(ticks, LegendTick{px(d), d, percentLabel(d)})
	}
	return rects, ticks
}

// percentLabel formats x as a whole percentage, truncating toward
// zero.
func percentLabel(x float64) string {
	return strconv.Itoa(int(x)) + "%"
}

// Legend writes an SVG legend for s over the value range [lo, hi] to
// w: a horizontal axis labeled at each bucket boundary and a row of
// colored rectangles, one per bucket.
func Legend(w io.Writer, lo, hi float64, s *threshold.Scale, o LegendOptions) error {
	if !(lo < hi) {
		return errors.Errorf("legend range [%v, %v] is empty", lo, hi)
	}
	rects, ticks := LegendLayout(lo, hi, s, o)
	axisY := o.Height - o.Padding

	canvas := svg.New(w)
	canvas.Start(o.Width, o.Height, `id="legend"`)
	canvas.Group(`class="swatches"`)
	for _, r := range rects {
		canvas.Rect(r.X, axisY-o.BarHeight, r.Width, o.BarHeight, `fill="`+threshold.Hex(r.Color)+`"`)
	}
	canvas.Gend()

	canvas.Gtransform(fmt.Sprintf("translate(0,%d)", axisY))
	canvas.Group(`class="axis"`, `font-size="10"`, `font-family="sans-serif"`, `text-anchor="middle"`)
	canvas.Path(fmt.Sprintf("M%d,6V0H%dV6", o.Padding, o.Width-o.Padding), `fill="none"`, `stroke="currentColor"`)
	for _, t := range ticks {
		canvas.Line(t.X, 0, t.X, 6, `stroke="currentColor"`)
		canvas.Text(t.X, 9, t.Label, `dy="0.71em"`, `fill="currentColor"`)
	}
	canvas.Gend()
	canvas.Gend()
	canvas.End()
	return nil
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
