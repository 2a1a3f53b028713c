// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threshold

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

func grays(n int) []color.Color {
	cs := make([]color.Color, n)
	for i := range cs {
		cs[i] = color.Gray{uint8(255 - 20*i)}
	}
	return cs
}

func TestBuildThreeCounties(t *testing.T) {
	s, err := Build([]float64{10, 50, 90}, grays(3))
	if err != nil {
		t.Fatal(err)
	}
	dom := s.Domain()
	if len(dom) != 2 || math.Abs(dom[0]-36.6667) > 1e-3 || math.Abs(dom[1]-63.3333) > 1e-3 {
		t.Fatalf("want domain ≈ [36.67 63.33], got %v", dom)
	}
	for v, want := range map[float64]int{10: 0, 50: 1, 90: 2} {
		if have := s.Bucket(v); have != want {
			t.Errorf("Bucket(%v) = %d, want %d", v, have, want)
		}
		if !sameColor(s.Map(v), grays(3)[want]) {
			t.Errorf("Map(%v) = %v, want color %d", v, s.Map(v), want)
		}
	}
}

func TestBoundaryTies(t *testing.T) {
	s, err := New([]float64{1, 2}, grays(3))
	if err != nil {
		t.Fatal(err)
	}
	try := func(x float64, want int) {
		t.Helper()
		if have := s.Bucket(x); have != want {
			t.Errorf("Bucket(%v) = %d, want %d", x, have, want)
		}
	}
	try(math.Inf(-1), 0)
	try(0.999, 0)
	try(1, 1)
	try(1.5, 1)
	try(2, 2)
	try(math.Inf(1), 2)
}

func TestBuildProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 100; iter++ {
		n := 2 + r.Intn(10)
		vals := make([]float64, 1+r.Intn(200))
		for i := range vals {
			vals[i] = r.Float64() * 100
		}
		vals = append(vals, -5, 105)
		colors := grays(n)
		s, err := Build(vals, colors)
		if err != nil {
			t.Fatal(err)
		}

		dom := s.Domain()
		if len(dom) != n-1 {
			t.Fatalf("want %d boundaries, got %d", n-1, len(dom))
		}
		for i := 1; i < len(dom); i++ {
			if !(dom[i-1] < dom[i]) {
				t.Fatalf("boundaries not increasing: %v", dom)
			}
		}

		// Every bucket is hit by some value in [min, max].
		seen := make(map[int]bool)
		lo, hi := -5.0, 105.0
		for i := 0; i <= 1000; i++ {
			seen[s.Bucket(lo+(hi-lo)*float64(i)/1000)] = true
		}
		if len(seen) != n {
			t.Fatalf("want %d distinct colors, got %d", n, len(seen))
		}

		// Saturation at the extremes.
		if s.Bucket(lo-1) != s.Bucket(lo) || s.Bucket(lo) != 0 {
			t.Errorf("values below min do not saturate")
		}
		if s.Bucket(hi+1) != s.Bucket(hi) || s.Bucket(hi) != n-1 {
			t.Errorf("values above max do not saturate")
		}

		// Inverting a color and mapping its low end gives the
		// same color.
		for i, c := range s.Range() {
			elo, ehi, ok := s.InvertExtent(c)
			if !ok {
				t.Fatalf("color %d not invertible", i)
			}
			if !(elo < ehi) {
				t.Errorf("bucket %d: empty extent [%v, %v)", i, elo, ehi)
			}
			if !sameColor(s.Map(elo), c) {
				t.Errorf("bucket %d: Map(%v) = %v, want %v", i, elo, s.Map(elo), c)
			}
		}
	}
}

func TestExtentOpenEnds(t *testing.T) {
	s, err := New([]float64{5}, grays(2))
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := s.Extent(0)
	if !math.IsInf(lo, -1) || hi != 5 {
		t.Errorf("Extent(0) = [%v, %v), want [-Inf, 5)", lo, hi)
	}
	lo, hi = s.Extent(1)
	if lo != 5 || !math.IsInf(hi, 1) {
		t.Errorf("Extent(1) = [%v, %v), want [5, +Inf)", lo, hi)
	}
	if _, _, ok := s.InvertExtent(color.RGBA{1, 2, 3, 255}); ok {
		t.Errorf("InvertExtent of unknown color succeeded")
	}
}

func TestBuildInsufficient(t *testing.T) {
	for _, vals := range [][]float64{
		nil,
		{42},
		{7, 7, 7},
		{1, math.NaN()},
		{1, math.Inf(1)},
		{1, math.Nextafter(1, 2)},
		{-1e308, 1e308},
	} {
		_, err := Build(vals, grays(9))
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Build(%v): want ErrInsufficientData, got %v", vals, err)
		}
	}
	if _, err := Build([]float64{1, 2}, grays(1)); err == nil || errors.Is(err, ErrInsufficientData) {
		t.Errorf("Build with one color: want usage error, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]float64{1, 2}, grays(2)); err == nil {
		t.Errorf("New accepted mismatched colors")
	}
	if _, err := New([]float64{2, 1}, grays(3)); err == nil {
		t.Errorf("New accepted decreasing domain")
	}
	if _, err := New([]float64{1, 1}, grays(3)); err == nil {
		t.Errorf("New accepted repeated boundary")
	}
}

func TestPalette(t *testing.T) {
	cs, err := Palette("Blues", 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 9 {
		t.Fatalf("want 9 colors, got %d", len(cs))
	}
	if have := Hex(cs[0]); have != "#f7fbff" {
		t.Errorf("first Blues color = %s, want #f7fbff", have)
	}
	if have := Hex(cs[8]); have != "#08306b" {
		t.Errorf("last Blues color = %s, want #08306b", have)
	}
	if _, err := Palette("Blues", 42); err == nil {
		t.Errorf("Palette accepted 42 levels")
	}
	if _, err := Palette("NoSuchPalette", 9); err == nil {
		t.Errorf("Palette accepted unknown name")
	}
}
