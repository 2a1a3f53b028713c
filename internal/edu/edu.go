// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edu holds the county educational attainment records and the
// per-county lookup used when drawing the map.
package edu

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// A Record is the educational attainment of one county.
type Record struct {
	FIPS              int     `json:"fips"`
	AreaName          string  `json:"area_name"`
	State             string  `json:"state"`
	BachelorsOrHigher float64 `json:"bachelorsOrHigher"`
}

// Decode reads a JSON array of records from r.
func Decode(r io.Reader) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errors.Wrap(err, "decoding education records")
	}
	return recs, nil
}

// Percentages returns the BachelorsOrHigher value of each record.
func Percentages(recs []Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.BachelorsOrHigher
	}
	return out
}

// A County is the view of a record used for rendering.
type County struct {
	ID      int     `json:"id"`
	Area    string  `json:"area"`
	State   string  `json:"state"`
	Degrees float64 `json:"degrees"`
}

// Label returns the tooltip text for c, for example
// "Autauga County, AL: 21.9%".
func (c County) Label() string {
	return fmt.Sprintf("%s, %s: %s%%", c.Area, c.State, FormatPercent(c.Degrees))
}

// FormatPercent formats a percentage with the shortest representation
// that round-trips, so 50 is "50" and 21.9 is "21.9".
func FormatPercent(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// A Lookup maps FIPS codes to counties.
type Lookup map[int]County

// NewLookup indexes recs by FIPS code. If a code appears more than
// once, the last record wins.
func NewLookup(recs []Record) Lookup {
	l := make(Lookup, len(recs))
	for _, r := range recs {
		l[r.FIPS] = County{
			ID:      r.FIPS,
			Area:    r.AreaName,
			State:   r.State,
			Degrees: r.BachelorsOrHigher,
		}
	}
	return l
}

// Get returns the county with the given FIPS code, or a
// *LookupMissError if there is none.
func (l Lookup) Get(fips int) (County, error) {
	c, ok := l[fips]
	if !ok {
		return County{}, &LookupMissError{FIPS: fips}
	}
	return c, nil
}

// LookupMissError reports a geometry whose FIPS code has no education
// record.
type LookupMissError struct {
	FIPS int
}

func (e *LookupMissError) Error() string {
	return fmt.Sprintf("no education record for FIPS %d", e.FIPS)
}
