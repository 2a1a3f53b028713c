// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threshold implements threshold color scales: step functions
// that map a continuous value to one of a fixed set of colors through
// an ordered list of boundaries.
package threshold

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// ErrInsufficientData is returned by Build when the values do not
// determine a usable range: there are none, some are not finite, they
// are all equal, or their range cannot be split into distinct
// boundaries.
var ErrInsufficientData = errors.New("insufficient data for threshold scale")

// A Scale maps values to colors. Value x maps to Range()[i] where i is
// the number of domain boundaries less than or equal to x. Hence a
// value equal to a boundary belongs to the upper bucket.
type Scale struct {
	domain []float64
	colors []color.Color
}

// New returns a threshold scale with the given boundaries and colors.
// domain must be strictly increasing and colors must have exactly one
// more element than domain.
func New(domain []float64, colors []color.Color) (*Scale, error) {
	if len(colors) != len(domain)+1 {
		return nil, errors.Errorf("threshold scale with %d boundaries needs %d colors, have %d", len(domain), len(domain)+1, len(colors))
	}
	for i, d := range domain {
		if math.IsNaN(d) {
			return nil, errors.Errorf("boundary %d is NaN", i)
		}
		if i > 0 && !(domain[i-1] < d) {
			return nil, errors.Errorf("boundaries not strictly increasing at %d: %v >= %v", i, domain[i-1], d)
		}
	}
	return &Scale{
		domain: append([]float64(nil), domain...),
		colors: append([]color.Color(nil), colors...),
	}, nil
}

// Build returns a scale with len(colors) equal-width buckets spanning
// the range of values. The first bucket is unbounded below and the
// last is unbounded above, so values outside [min, max] saturate to
// the end colors.
func Build(values []float64, colors []color.Color) (*Scale, error) {
	if len(colors) < 2 {
		return nil, errors.Errorf("threshold scale needs at least 2 colors, have %d", len(colors))
	}
	if len(values) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "no values")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrInsufficientData, "value %d is %v", i, v)
		}
	}
	min, max := stats.Bounds(values)
	if min == max {
		return nil, errors.Wrapf(ErrInsufficientData, "all %d values equal %v", len(values), min)
	}

	span := max - min
	if math.IsInf(span, 0) {
		return nil, errors.Wrapf(ErrInsufficientData, "range [%v, %v] overflows", min, max)
	}
	n := len(colors)
	step := span / float64(n)
	if !(step > 0) {
		return nil, errors.Wrapf(ErrInsufficientData, "range [%v, %v] too narrow for %d buckets", min, max, n)
	}
	domain := make([]float64, n-1)
	prev := min
	for i := range domain {
		d := min + float64(i+1)*step
		if !(prev < d && d < max) {
			return nil, errors.Wrapf(ErrInsufficientData, "range [%v, %v] too narrow for %d buckets", min, max, n)
		}
		domain[i], prev = d, d
	}
	return New(domain, colors)
}

// Map returns the color for x.
func (s *Scale) Map(x float64) color.Color {
	return s.colors[s.Bucket(x)]
}

// Bucket returns the index into Range of the color for x.
func (s *Scale) Bucket(x float64) int {
	return sort.Search(len(s.domain), func(i int) bool { return s.domain[i] > x })
}

// Domain returns the boundaries of s in increasing order.
func (s *Scale) Domain() []float64 {
	return append([]float64(nil), s.domain...)
}

// Range returns the colors of s, one per bucket.
func (s *Scale) Range() []color.Color {
	return append([]color.Color(nil), s.colors...)
}

// Extent returns the half-open interval [lo, hi) of values that map
// to bucket i. The first bucket has lo = -Inf and the last has
// hi = +Inf.
func (s *Scale) Extent(i int) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if i > 0 {
		lo = s.domain[i-1]
	}
	if i < len(s.domain) {
		hi = s.domain[i]
	}
	return
}

// InvertExtent returns the interval of values that map to c. ok is
// false if c is not in the range of s. If c appears more than once,
// the first bucket is used.
func (s *Scale) InvertExtent(c color.Color) (lo, hi float64, ok bool) {
	for i, rc := range s.colors {
		if sameColor(rc, c) {
			lo, hi = s.Extent(i)
			return lo, hi, true
		}
	}
	return math.NaN(), math.NaN(), false
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Hex formats c as a CSS "#rrggbb" color. Alpha is ignored.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
