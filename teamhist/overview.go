// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/teamstats/teamhist/hist"
)

// binTable returns one row per team, measurement, and bin, with the
// bin midpoint as "value".
func binTable(c *hist.Chart) *table.Table {
	var (
		teams, tooltips []string
		facets          []int
		vals, counts    []float64
	)
	for _, t := range c.Teams.List() {
		for i, m := range c.Measurements {
			h := t.Hists[m.Name]
			for _, b := range h.Bins {
				teams = append(teams, t.Key)
				facets = append(facets, i)
				vals = append(vals, (b.Lower+b.Upper)/2)
				counts = append(counts, float64(b.Count))
				tooltips = append(tooltips, fmt.Sprintf("%s %.6g-%.6g: %d", t.Key, b.Lower, b.Upper, b.Count))
			}
		}
	}
	return new(table.Builder).
		Add("team", teams).
		Add("measurement", facets).
		Add("value", vals).
		Add("count", counts).
		Add("tooltip", tooltips).
		Done()
}

// overviewPlot draws every team's histograms as frequency polygons,
// one facet per measurement.
func overviewPlot(c *hist.Chart, title string) *gg.Plot {
	ms := c.Measurements
	plot := gg.NewPlot(binTable(c))

	// Always show count 0.
	plot.SetScale("y", gg.NewLinearScaler().Include(0))

	plot.Add(gg.FacetX{
		Col:          "measurement",
		SplitXScales: true,
		Labeler: func(v interface{}) string {
			m := ms[v.(int)]
			if m.Unit == "" {
				return m.Label
			}
			return fmt.Sprintf("%s (%s)", m.Label, m.Unit)
		},
	})
	plot.Add(gg.LayerLines{X: "value", Y: "count", Color: "team"})
	plot.Add(gg.LayerPoints{X: "value", Y: "count", Color: "team"})
	plot.Add(gg.LayerTooltips{X: "value", Y: "count", Label: "tooltip"})
	if title != "" {
		plot.Add(gg.Title(title))
	}
	return plot
}

func writeOverview(w io.Writer, c *hist.Chart, title string) error {
	if c.Teams.Len() == 0 || len(c.Measurements) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	return overviewPlot(c, title).WriteSVG(w, 400*len(c.Measurements), 400)
}
