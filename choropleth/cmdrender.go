// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/edattain/choropleth/internal/config"
	"github.com/edattain/choropleth/internal/render"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var cmdRenderFlags = flag.NewFlagSet(os.Args[0]+" render", flag.ExitOnError)

var (
	renderOut  string
	renderOpen string
)

func init() {
	f := cmdRenderFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s render [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&renderOut, "o", "", "write the HTML page to `file` (default: stdout)")
	f.StringVar(&renderOpen, "open", "", "after writing, run `command` with the output file as its last argument")
	registerSubcommand("render", "write the choropleth HTML page", cmdRender, f)
}

func cmdRender(cfg *config.Config) error {
	if renderOpen != "" && renderOut == "" {
		return errors.New("-open requires -o")
	}

	data, s, err := load(cfg)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := render.Document(&page, data.Records, data.Topology, s, cfg.RenderOptions()); err != nil {
		return err
	}
	if err := writeOutput(renderOut, page.Bytes()); err != nil {
		return err
	}

	if renderOpen != "" {
		return openCommand(renderOpen, renderOut)
	}
	return nil
}

// openCommand starts the shell-quoted command line cmdline with path
// appended and does not wait for it to exit.
func openCommand(cmdline, path string) error {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return errors.Wrapf(err, "parsing -open %q", cmdline)
	}
	if len(args) == 0 {
		return errors.Errorf("empty -open command")
	}
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", args[0])
	}
	logrus.WithFields(logrus.Fields{"command": args[0], "pid": cmd.Process.Pid}).Debug("opened output")
	return nil
}
