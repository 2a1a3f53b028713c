// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch loads the education records and county topology.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/topo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Default sources.
const (
	EducationURL = "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/for_user_education.json"
	TopologyURL  = "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/counties.json"
)

// Data is the result of a successful Load.
type Data struct {
	Records  []edu.Record
	Topology *topo.Topology
}

// DataUnavailableError reports that a source could not be fetched or
// decoded.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: data unavailable: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// Load fetches the education records from eduSrc and the topology
// from topoSrc concurrently. It returns only once both have been
// fetched and decoded; if either fails, Load returns a
// *DataUnavailableError and no data.
//
// Sources are opened with Open. Load does not retry and imposes no
// timeout beyond ctx.
func Load(ctx context.Context, client *http.Client, eduSrc, topoSrc string) (*Data, error) {
	var data Data
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return fetch(ctx, client, eduSrc, func(r io.Reader) (err error) {
			data.Records, err = edu.Decode(r)
			return
		})
	})
	g.Go(func() error {
		return fetch(ctx, client, topoSrc, func(r io.Reader) (err error) {
			data.Topology, err = topo.Decode(r)
			return
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// fetch opens src and passes its body to decode.
func fetch(ctx context.Context, client *http.Client, src string, decode func(io.Reader) error) error {
	body, err := Open(ctx, client, src)
	if err != nil {
		return &DataUnavailableError{src, err}
	}
	defer body.Close()
	if err := decode(body); err != nil {
		return &DataUnavailableError{src, err}
	}
	return nil
}

// Open returns the contents of src, which may be an http or https
// URL, a file URL with an empty or "localhost" host, or a local path. If client is nil,
// http.DefaultClient is used.
func Open(ctx context.Context, client *http.Client, src string) (io.ReadCloser, error) {
	u, err := url.Parse(src)
	// A one-letter scheme is a Windows drive letter.
	if err != nil || len(u.Scheme) <= 1 {
		return os.Open(src)
	}
	switch u.Scheme {
	case "file":
		if u.Host != "" && u.Host != "localhost" {
			return nil, errors.Errorf("file URL %q has host %q; use file:///path for local files", src, u.Host)
		}
		return os.Open(filepath.FromSlash(u.Path))
	case "http", "https":
	default:
		return nil, errors.Errorf("unsupported scheme %q", u.Scheme)
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequest("GET", src, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		resp.Body.Close()
		return nil, errors.Errorf("GET %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}
