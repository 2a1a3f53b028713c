// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the choropleth settings. Settings start from
// Default, may be overridden by a YAML file, and finally by command
// line flags.
package config

import (
	"flag"
	"image/color"
	"io/ioutil"
	"time"

	"github.com/edattain/choropleth/internal/fetch"
	"github.com/edattain/choropleth/internal/render"
	"github.com/edattain/choropleth/threshold"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the complete set of settings.
type Config struct {
	Education string `yaml:"education"`
	Topology  string `yaml:"topology"`

	// Timeout bounds loading both sources. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	Palette string `yaml:"palette"`
	Levels  int    `yaml:"levels"`

	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	Legend struct {
		Width     int `yaml:"width"`
		Height    int `yaml:"height"`
		Padding   int `yaml:"padding"`
		BarHeight int `yaml:"bar_height"`
	} `yaml:"legend"`

	Map struct {
		Width    int    `yaml:"width"`
		Height   int    `yaml:"height"`
		Counties string `yaml:"counties"`
		States   string `yaml:"states"`
	} `yaml:"map"`
}

// Default returns the settings for the U.S. educational attainment
// map.
func Default() *Config {
	opts := render.DefaultOptions()
	c := &Config{
		Education:   fetch.EducationURL,
		Topology:    fetch.TopologyURL,
		Palette:     "Blues",
		Levels:      9,
		Title:       opts.Title,
		Description: opts.Description,
	}
	c.Legend.Width = opts.Legend.Width
	c.Legend.Height = opts.Legend.Height
	c.Legend.Padding = opts.Legend.Padding
	c.Legend.BarHeight = opts.Legend.BarHeight
	c.Map.Width = opts.Map.Width
	c.Map.Height = opts.Map.Height
	c.Map.Counties = opts.Map.Counties
	c.Map.States = opts.Map.States
	return c
}

// Load returns Default overridden by the YAML file at path. Keys
// missing from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return c, nil
}

// RegisterFlags defines flags on fs that override fields of c. It
// must be called before fs is parsed.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Education, "education", c.Education, "load education records from `source` (URL or path)")
	fs.StringVar(&c.Topology, "topology", c.Topology, "load county topology from `source` (URL or path)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "give up loading data after `duration` (0 means never)")
	fs.StringVar(&c.Palette, "palette", c.Palette, "ColorBrewer palette `name`")
	fs.IntVar(&c.Levels, "levels", c.Levels, "number of color `levels`")
}

// Validate checks that c describes a renderable map.
func (c *Config) Validate() error {
	if c.Education == "" || c.Topology == "" {
		return errors.New("education and topology sources are required")
	}
	if c.Timeout < 0 {
		return errors.Errorf("negative timeout %v", c.Timeout)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Legend.Width <= 2*c.Legend.Padding || c.Legend.Height <= c.Legend.Padding+c.Legend.BarHeight || c.Legend.Padding < 0 {
		return errors.Errorf("legend %dx%d cannot fit padding %d and bar height %d", c.Legend.Width, c.Legend.Height, c.Legend.Padding, c.Legend.BarHeight)
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return errors.Errorf("bad map size %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Map.Counties == "" || c.Map.States == "" {
		return errors.New("map counties and states objects are required")
	}
	return nil
}

// Colors returns the palette colors selected by c.
func (c *Config) Colors() ([]color.Color, error) {
	return threshold.Palette(c.Palette, c.Levels)
}

// RenderOptions returns the rendering options selected by c.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Title:       c.Title,
		Description: c.Description,
		Legend: render.LegendOptions{
			Width:     c.Legend.Width,
			Height:    c.Legend.Height,
			Padding:   c.Legend.Padding,
			BarHeight: c.Legend.BarHeight,
		},
		Map: render.MapOptions{
			Width:    c.Map.Width,
			Height:   c.Map.Height,
			Counties: c.Map.Counties,
			States:   c.Map.States,
		},
	}
}
