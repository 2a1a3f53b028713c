// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threshold

import (
	"image/color"
	"sort"

	"github.com/aclements/go-gg/palette/brewer"
	"github.com/pkg/errors"
)

// Palette returns the ColorBrewer palette name with the given number
// of levels, for example Palette("Blues", 9).
func Palette(name string, levels int) ([]color.Color, error) {
	variants, ok := brewer.ByName[name]
	if !ok {
		return nil, errors.Errorf("unknown palette %q", name)
	}
	cs, ok := variants[levels]
	if !ok {
		have := []int{}
		for n := range variants {
			have = append(have, n)
		}
		sort.Ints(have)
		return nil, errors.Errorf("palette %q has no %d-level variant (have %v)", name, levels, have)
	}
	out := make([]color.Color, 0, len(cs))
	for _, c := range cs {
		out = append(out, c)
	}
	return out, nil
}
