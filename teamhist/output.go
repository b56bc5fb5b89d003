// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"math"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/goccy/go-json"
	"github.com/teamstats/teamhist/hist"
	"github.com/teamstats/teamhist/internal/svgchart"
)

// write renders c in j's output mode, with teams ordered by sortBy.
func (j *job) write(w io.Writer, c *hist.Chart, sortBy string, order hist.Order) error {
	return j.writeMode(w, j.mode, c, sortBy, order, "")
}

func (j *job) writeMode(w io.Writer, mode outputMode, c *hist.Chart, sortBy string, order hist.Order, sortHref string) error {
	teams := c.Sorted(sortBy, order, j.rng())
	switch mode {
	case modeTable:
		return writeTable(w, c, teams)
	case modeJSON:
		return writeJSON(w, c, teams, j.cfg.Color)
	case modeOverview:
		return writeOverview(w, c, j.title())
	}
	return svgchart.Render(w, c, teams, j.cfg, svgchart.Options{
		SortBy:   sortBy,
		Order:    order,
		SortHref: sortHref,
		Logos:    j.logos,
		Title:    j.title(),
	})
}

func (j *job) title() string {
	if len(j.inputs) == 1 && j.inputs[0] == "-" {
		return ""
	}
	return strings.Join(j.inputs, " ")
}

// summaryTable returns one row per team and measurement.
func summaryTable(c *hist.Chart, teams []*hist.Team) *table.Table {
	var (
		names, ms    []string
		ns, dropped  []int
		means, peaks []float64
	)
	for _, t := range teams {
		for _, m := range c.Measurements {
			h := t.Hists[m.Name]
			names = append(names, t.Key)
			ms = append(ms, m.Name)
			ns = append(ns, h.Total-h.Dropped)
			dropped = append(dropped, h.Dropped)
			means = append(means, h.Mean)
			peak := math.NaN()
			if top := h.Max(); top > 0 {
				for _, b := range h.Bins {
					if b.Count == top {
						peak = (b.Lower + b.Upper) / 2
						break
					}
				}
			}
			peaks = append(peaks, peak)
		}
	}
	return new(table.Builder).
		Add("team", names).
		Add("measurement", ms).
		Add("n", ns).
		Add("missing", dropped).
		Add("mean", means).
		Add("mode", peaks).
		Done()
}

// errWriter remembers the first write error, since table.Fprint
// does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	if _, err := e.w.Write(p); err != nil {
		e.err = err
	}
	return len(p), nil
}

func writeTable(w io.Writer, c *hist.Chart, teams []*hist.Team) error {
	ew := &errWriter{w: w}
	table.Fprint(ew, summaryTable(c, teams), "%s", "%s", "%d", "%d", "%.1f", "%.1f")
	return ew.err
}

type jsonChart struct {
	Records      int               `json:"records"`
	Measurements []jsonMeasurement `json:"measurements"`
	Teams        []jsonTeam        `json:"teams"`
}

type jsonMeasurement struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Unit     string    `json:"unit,omitempty"`
	Edges    []float64 `json:"edges"`
	CountMax float64   `json:"countMax"`
}

type jsonTeam struct {
	Team       string              `json:"team"`
	Color      string              `json:"color"`
	Players    int                 `json:"players"`
	Histograms map[string]jsonHist `json:"histograms"`
}

type jsonHist struct {
	Counts  []int    `json:"counts"`
	Mean    *float64 `json:"mean"`
	Missing int      `json:"missing,omitempty"`
}

func chartJSON(c *hist.Chart, teams []*hist.Team, color func(int) string) *jsonChart {
	out := &jsonChart{
		Records:      c.Records,
		Measurements: []jsonMeasurement{},
		Teams:        []jsonTeam{},
	}
	for _, m := range c.Measurements {
		sc := c.Scales[m.Name]
		edges := sc.Edges
		if edges == nil {
			edges = []float64{}
		}
		out.Measurements = append(out.Measurements, jsonMeasurement{
			Name: m.Name, Label: m.Label, Unit: m.Unit,
			Edges: edges, CountMax: sc.CountMax,
		})
	}
	for _, t := range teams {
		jt := jsonTeam{
			Team:       t.Key,
			Color:      color(t.Index),
			Players:    len(t.Records),
			Histograms: make(map[string]jsonHist),
		}
		for name, h := range t.Hists {
			jh := jsonHist{Counts: make([]int, len(h.Bins)), Missing: h.Dropped}
			for i, b := range h.Bins {
				jh.Counts[i] = b.Count
			}
			if !math.IsNaN(h.Mean) {
				mean := h.Mean
				jh.Mean = &mean
			}
			jt.Histograms[name] = jh
		}
		out.Teams = append(out.Teams, jt)
	}
	return out
}

func writeJSON(w io.Writer, c *hist.Chart, teams []*hist.Team, color func(int) string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chartJSON(c, teams, color))
}
