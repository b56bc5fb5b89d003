// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgchart draws a hist.Chart as an SVG document with one
// column of stacked horizontal histograms per team.
package svgchart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/teamstats/teamhist/hist"
	"github.com/teamstats/teamhist/internal/chartconf"
	"github.com/teamstats/teamhist/internal/logo"
)

// controlsHeight is the height of the sort control row.
const controlsHeight = 30

// Options control rendering of interactive and decorative parts of
// a chart.
type Options struct {
	// SortBy and Order describe the current team order. The
	// control for SortBy is highlighted.
	SortBy string
	Order  hist.Order

	// SortHref, if non-empty, turns each sort control into a
	// link. It is a format string whose single %s verb is
	// replaced by the measurement name.
	SortHref string

	// Logos supplies team logos. It may be nil.
	Logos *logo.Set

	Title string
}

// errWriter remembers the first write error, since svgo discards
// them.
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

// Size returns the pixel size of the SVG Render draws for nteams
// teams and nmeasure measurements.
func Size(cfg *chartconf.Config, nteams, nmeasure int) (width, height int) {
	width = cfg.Width * nteams
	if width < 300 {
		width = 300
	}
	height = controlsHeight + cfg.Margin.Top + nmeasure*(cfg.PlotHeight()+cfg.Margin.Bottom)
	return
}

// Render writes c as SVG to w. teams gives the left-to-right order of
// team columns and is usually c.Sorted(...).
func Render(w io.Writer, c *hist.Chart, teams []*hist.Team, cfg *chartconf.Config, opts Options) error {
	// Resolve logos first so a bad image does not leave a
	// truncated document behind.
	logos := make([]*logo.Logo, len(teams))
	for i, t := range teams {
		l, err := opts.Logos.Get(t.Key)
		if err != nil {
			return err
		}
		logos[i] = l
	}

	ew := &errWriter{w: w}
	s := svg.New(ew)
	width, height := Size(cfg, len(teams), len(c.Measurements))
	s.Start(width, height, `font-family="Helvetica,Arial,sans-serif" font-size="11px"`)
	if opts.Title != "" {
		s.Title(opts.Title)
	}
	renderControls(s, c, opts)

	for i, t := range teams {
		s.Group(fmt.Sprintf(`class="team" transform="translate(%d,%d)"`, i*cfg.Width, controlsHeight))
		renderTeam(s, c, t, logos[i], cfg)
		s.Gend()
	}
	s.End()
	return ew.err
}

func renderControls(s *svg.SVG, c *hist.Chart, opts Options) {
	s.Group(`class="controls"`)
	s.Text(5, 20, "Sort by:", `fill="#444"`)
	x := 60
	for _, m := range c.Measurements {
		style := `class="control" fill="#06c"`
		if m.Name == opts.SortBy {
			style = `class="control selected" fill="#000" font-weight="bold"`
		}
		if opts.SortHref != "" {
			href := fmt.Sprintf(opts.SortHref, m.Name)
			s.Link(html.EscapeString(href), html.EscapeString("Sort by "+m.Label))
			s.Text(x, 20, m.Label, style)
			s.LinkEnd()
		} else {
			s.Text(x, 20, m.Label, style)
		}
		x += 8*len(m.Label) + 12
	}
	s.Gend()
}

func renderTeam(s *svg.SVG, c *hist.Chart, t *hist.Team, l *logo.Logo, cfg *chartconf.Config) {
	m := cfg.Margin
	color := cfg.Color(t.Index)

	labelY := m.Top / 2
	if l != nil {
		lh, lw := l.Height, l.Width
		if limit := m.Top - 24; lh > limit && limit > 0 {
			lw, lh = lw*limit/lh, limit
		}
		s.Image(m.Left, 4, lw, lh, l.URI, `class="logo"`)
		labelY = m.Top - 8
	}
	s.Text(m.Left, labelY, t.Key, `class="team label" font-size="1.0em"`)

	h := cfg.PlotHeight() + m.Bottom
	for k, meas := range c.Measurements {
		s.Group(fmt.Sprintf(`class="hist %s" transform="translate(%d,%d)"`, meas.Name, m.Left, m.Top+k*h))
		renderHistogram(s, c.Scales[meas.Name], t.Hists[meas.Name], meas, color, cfg)
		s.Gend()
	}
}

func px(x float64) int {
	return int(math.Round(x))
}

func renderHistogram(s *svg.SVG, sc *hist.Scale, h *hist.Histogram, meas hist.Measurement, color string, cfg *chartconf.Config) {
	pw, ph := float64(cfg.PlotWidth()), float64(cfg.PlotHeight())
	axis := `stroke="#888" stroke-width="1"`

	// Value axis, down the left edge.
	s.Line(0, 0, 0, px(ph), axis)
	for _, v := range sc.ValueTicks(4) {
		y := px(sc.ValuePx(v, 0, ph))
		s.Line(-4, y, 0, y, axis)
		s.Text(-6, y, fmt.Sprintf("%.6g", v), `text-anchor="end" dy=".3em" fill="#666"`)
	}

	// Count axis, along the top.
	s.Line(0, 0, px(pw), 0, axis)
	for _, n := range sc.CountTicks(4) {
		x := px(sc.CountPx(n, 0, pw))
		s.Line(x, -4, x, 0, axis)
		s.Text(x, -6, strconv.Itoa(n), `text-anchor="middle" class="count-tick" fill="#666"`)
	}

	s.Text(px(pw), px(ph)+14, meas.Label, `text-anchor="end" fill="#444"`)

	if h == nil {
		return
	}
	for _, b := range h.Bins {
		y0 := px(sc.ValuePx(b.Lower, 0, ph))
		y1 := px(sc.ValuePx(b.Upper, 0, ph))
		bh := y1 - y0 - 1
		if bh < 1 {
			bh = 1
		}
		s.Group(`class="bar"`)
		s.Title(fmt.Sprintf("%s %.6g to %.6g: %d", meas.Label, b.Lower, b.Upper, b.Count))
		s.Rect(1, y0+1, px(sc.CountPx(b.Count, 0, pw)), bh, "fill:"+color)
		s.Gend()
	}

	if math.IsNaN(h.Mean) {
		return
	}
	y := px(sc.ValuePx(h.Mean, 0, ph))
	s.Group(`class="average"`)
	s.Title(AverageLabel(h.Mean, meas.Unit))
	s.Line(0, y, px(pw), y, `stroke="#222" stroke-width="1" stroke-dasharray="3,2"`)
	s.Circle(0, y, 3, `fill="#222"`)
	s.Gend()
}

// AverageLabel formats a team mean for a tooltip.
func AverageLabel(mean float64, unit string) string {
	if math.IsNaN(mean) {
		return "Average: n/a"
	}
	return strings.TrimSpace(fmt.Sprintf("Average: %.1f %s", mean, unit))
}
