// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/edattain/choropleth/internal/config"
	"github.com/edattain/choropleth/internal/edu"
	"github.com/pkg/errors"
)

var cmdDistFlags = flag.NewFlagSet(os.Args[0]+" dist", flag.ExitOnError)

var (
	distOut           string
	distWidth, distHt int
)

func init() {
	f := cmdDistFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s dist [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&distOut, "o", "", "write the SVG plot to `file` (default: stdout)")
	f.IntVar(&distWidth, "width", 600, "plot width in `pixels`")
	f.IntVar(&distHt, "height", 400, "plot height in `pixels`")
	registerSubcommand("dist", "plot the distribution of attainment", cmdDist, f)
}

const distCol = "bachelors or higher (%)"

func cmdDist(cfg *config.Config) error {
	data, _, err := load(cfg)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	p := distPlot(data.Records)
	if err := p.WriteSVG(&out, distWidth, distHt); err != nil {
		return errors.Wrap(err, "rendering plot")
	}
	return writeOutput(distOut, out.Bytes())
}

// distPlot returns an empirical CDF of the county percentages.
func distPlot(recs []edu.Record) *gg.Plot {
	tab := new(table.Builder).Add(distCol, edu.Percentages(recs)).Done()
	p := gg.NewPlot(tab)
	p.Stat(ggstat.ECDF{X: distCol, Label: "counties"})
	p.Add(gg.LayerSteps{LayerPaths: gg.LayerPaths{X: distCol, Y: "cumulative density of counties"}})
	p.Add(gg.Title("County educational attainment"))
	return p
}
