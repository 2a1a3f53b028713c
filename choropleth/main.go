// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command choropleth draws a map of U.S. county educational
// attainment.
//
// Usage:
//
//	choropleth [-config file] [-v] <subcommand> [flags]
//
// choropleth fetches county education records and a county topology
// (by default from the freeCodeCamp choropleth project), colors each
// county by a threshold scale of equal-width buckets spanning the
// data, and writes the result. The subcommands are:
//
//	render  write an HTML page with the legend, map and hover tooltips
//	table   print the county table with each county's bucket and color
//	dist    write an SVG plot of the distribution of percentages
//
// Every subcommand accepts -education, -topology, -timeout, -palette
// and -levels. Defaults for these, and for the page title and
// dimensions, may be given in a YAML file with -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/edattain/choropleth/internal/config"
	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/internal/fetch"
	"github.com/edattain/choropleth/threshold"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type subcommand struct {
	name, desc string
	cmd        func(*config.Config) error
	flags      *flag.FlagSet
}

var subcommands = map[string]*subcommand{}

func registerSubcommand(name, desc string, cmd func(*config.Config) error, flags *flag.FlagSet) {
	subcommands[name] = &subcommand{name, desc, cmd, flags}
}

var (
	flagConfig  = flag.String("config", "", "read settings from YAML `file`")
	flagVerbose = flag.Bool("v", false, "log progress")
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <subcommand> [subcommand flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		var names []string
		for name := range subcommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", name, subcommands[name].desc)
		}
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	sub, ok := subcommands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			logrus.Fatal(err)
		}
	}
	cfg.RegisterFlags(sub.flags)
	sub.flags.Parse(flag.Args()[1:])
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	if err := sub.cmd(cfg); err != nil {
		logrus.WithField("subcommand", sub.name).Fatal(err)
	}
}

// load fetches both datasets and builds the color scale.
func load(cfg *config.Config) (*fetch.Data, *threshold.Scale, error) {
	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	logrus.WithFields(logrus.Fields{
		"education": cfg.Education,
		"topology":  cfg.Topology,
	}).Debug("loading data")
	data, err := fetch.Load(ctx, nil, cfg.Education, cfg.Topology)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{
		"records": len(data.Records),
		"objects": len(data.Topology.Objects),
		"arcs":    len(data.Topology.Arcs),
	}).Debug("loaded data")

	colors, err := cfg.Colors()
	if err != nil {
		return nil, nil, err
	}
	s, err := threshold.Build(edu.Percentages(data.Records), colors)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building color scale")
	}
	logrus.WithField("boundaries", s.Domain()).Debug("built color scale")
	return data, s, nil
}

// writeOutput writes data to path, or to stdout if path is "".
// Subcommands render into memory first so a failure never leaves a
// partial file.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := ioutil.WriteFile(path, data, 0666); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Info("wrote output")
	return nil
}
