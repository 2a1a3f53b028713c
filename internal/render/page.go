// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"

	"github.com/aclements/go-moremath/stats"
	"github.com/edattain/choropleth/internal/edu"
	"github.com/edattain/choropleth/threshold"
	"github.com/edattain/choropleth/topo"
	"github.com/pkg/errors"
)

//go:embed tooltip.js
var tooltipJS string

const pageHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <style>
body {
  font-family: sans-serif;
  color: #222;
  text-align: center;
}
#description {
  color: #555;
}
#container {
  display: inline-block;
}
.county:hover {
  stroke: #222;
  stroke-width: 1;
}
#tooltip {
  position: absolute;
  pointer-events: none;
  padding: 6px 10px;
  background: rgba(255, 255, 204, 0.9);
  border: 1px solid #888;
  border-radius: 4px;
  font-size: 12px;
  transform: translate(12px, -28px);
}
    </style>
  </head>
  <body>
    <h1 id="title">{{.Title}}</h1>
    <p id="description">{{.Description}}</p>
    <div id="legend-container">{{.Legend}}</div>
    <div id="container">
      {{.Map}}
      <div id="tooltip" style="opacity: 0"></div>
    </div>
    <script>
var counties = {{.Counties}};
{{.Script}}
    </script>
  </body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// PageData is the content of the HTML page.
type PageData struct {
	Title, Description string

	// Legend and Map are SVG documents, as written by Legend and
	// Map.
	Legend, Map []byte

	// Counties is the data shown by the hover tooltip.
	Counties edu.Lookup
}

// Page writes an HTML page hosting the legend and map to w, with a
// script that shows a tooltip when hovering over a county.
func Page(w io.Writer, d PageData) error {
	err := pageTemplate.Execute(w, struct {
		Title, Description string
		Legend, Map        template.HTML
		Counties           edu.Lookup
		Script             template.JS
	}{
		d.Title, d.Description,
		inlineSVG(d.Legend), inlineSVG(d.Map),
		d.Counties,
		template.JS(tooltipJS),
	})
	return errors.Wrap(err, "executing page template")
}

// inlineSVG strips the XML prolog from an SVG document so it can be
// embedded in HTML.
func inlineSVG(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i >= 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}

// Options configures Document.
type Options struct {
	Title, Description string
	Legend             LegendOptions
	Map                MapOptions
}

// DefaultOptions returns the options for the U.S. educational
// attainment map.
func DefaultOptions() Options {
	return Options{
		Title:       "United States Educational Attainment",
		Description: "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)",
		Legend:      DefaultLegendOptions(),
		Map:         DefaultMapOptions(),
	}
}

// Document renders the legend and map for recs and t, colored by s,
// and writes the complete HTML page to w. Nothing is written to w if
// any step fails.
func Document(w io.Writer, recs []edu.Record, t *topo.Topology, s *threshold.Scale, o Options) error {
	lo, hi := stats.Bounds(edu.Percentages(recs))

	var legend, chart bytes.Buffer
	if err := Legend(&legend, lo, hi, s, o.Legend); err != nil {
		return err
	}
	lookup, err := Map(&chart, recs, t, s, o.Map)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := Page(&page, PageData{o.Title, o.Description, legend.Bytes(), chart.Bytes(), lookup}); err != nil {
		return err
	}
	_, err = page.WriteTo(w)
	return err
}
