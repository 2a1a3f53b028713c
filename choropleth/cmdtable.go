// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/edattain/choropleth/internal/config"
	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/threshold"
	"github.com/sirupsen/logrus"
)

var cmdTableFlags = flag.NewFlagSet(os.Args[0]+" table", flag.ExitOnError)

var (
	tableOut     string
	tableByState bool
)

func init() {
	f := cmdTableFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s table [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&tableOut, "o", "", "write the table to `file` (default: stdout)")
	f.BoolVar(&tableByState, "by-state", false, "group counties by state")
	registerSubcommand("table", "print counties with their color buckets", cmdTable, f)
}

func cmdTable(cfg *config.Config) error {
	data, s, err := load(cfg)
	if err != nil {
		return err
	}

	pcts := edu.Percentages(data.Records)
	logrus.WithFields(logrus.Fields{
		"counties": len(pcts),
		"mean":     stats.Mean(pcts),
	}).Debug("summarizing")

	var g table.Grouping = countyTable(data.Records, s)
	if tableByState {
		g = table.GroupBy(g, "state")
	}
	var out bytes.Buffer
	table.Fprint(&out, g, "%d", "%s", "%s", "%.1f", "%d", "%s")
	return writeOutput(tableOut, out.Bytes())
}

// countyTable returns a table of recs with each record's bucket and
// color under s.
func countyTable(recs []edu.Record, s *threshold.Scale) *table.Table {
	var (
		fips    = make([]int, len(recs))
		area    = make([]string, len(recs))
		state   = make([]string, len(recs))
		pct     = make([]float64, len(recs))
		buckets = make([]int, len(recs))
		colors  = make([]string, len(recs))
	)
	for i, r := range recs {
		fips[i] = r.FIPS
		area[i] = r.AreaName
		state[i] = r.State
		pct[i] = r.BachelorsOrHigher
		buckets[i] = s.Bucket(r.BachelorsOrHigher)
		colors[i] = threshold.Hex(s.Map(r.BachelorsOrHigher))
	}
	return new(table.Builder).
		Add("fips", fips).
		Add("county", area).
		Add("state", state).
		Add("bachelors %", pct).
		Add("bucket", buckets).
		Add("color", colors).
		Done()
}
