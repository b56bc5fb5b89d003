// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/teamstats/teamhist/hist"
)

const testRoster = `Team,Player,Games,Jumper,Weight,Height,DoB
Sydney,A. Able,10,1,80,180,1996-10-17
Sydney,B. Baker,20,2,90,190,2000-01-02
Geelong,C. Clark,100,3,85,185,1990-05-05
Geelong,D. Dunn,150,4,95,195,1992-05-05
Carlton,E. Evans,,5,70,175,2001-03-03
Carlton,F. Fox,lots,6,75,178,2002-03-03
`

// writeFile writes data to name in dir and returns its path.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustParseFlags(t *testing.T, args ...string) *flags {
	t.Helper()
	f, err := parseFlags("teamhist", args, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags(%q): %v", args, err)
	}
	return f
}

func mustJob(t *testing.T, args ...string) *job {
	t.Helper()
	j, err := newJob(mustParseFlags(t, args...))
	if err != nil {
		t.Fatalf("newJob(%q): %v", args, err)
	}
	return j
}

func TestParseFlags(t *testing.T) {
	f := mustParseFlags(t)
	if !cmp.Equal(f.inputs, []string{"-"}) {
		t.Errorf("inputs = %q, want stdin", f.inputs)
	}
	if f.setSort || f.setOrder {
		t.Errorf("sort flags marked set without being given")
	}

	f = mustParseFlags(t, "-sort", "", "-order", "asc", "a.csv", "b.csv")
	if !f.setSort || !f.setOrder {
		t.Errorf("explicit sort flags not marked set")
	}
	if !cmp.Equal(f.inputs, []string{"a.csv", "b.csv"}) {
		t.Errorf("inputs = %q", f.inputs)
	}

	var stderr bytes.Buffer
	if _, err := parseFlags("teamhist", []string{"-table", "-json"}, &stderr); err == nil {
		t.Errorf("conflicting output flags accepted")
	} else if !strings.Contains(stderr.String(), "at most one") {
		t.Errorf("conflict not reported; stderr: %s", stderr.String())
	}

	if _, err := parseFlags("teamhist", []string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
}

func TestChooseMode(t *testing.T) {
	for _, test := range []struct {
		args []string
		tty  bool
		want outputMode
	}{
		{nil, false, modeSVG},
		{nil, true, modeTable},
		{[]string{"-o", "x.svg"}, true, modeSVG},
		{[]string{"-http", ":0"}, true, modeSVG},
		{[]string{"-json"}, true, modeJSON},
		{[]string{"-overview", "-o", "x.svg"}, false, modeOverview},
		{[]string{"-table", "-o", "x.txt"}, false, modeTable},
	} {
		got := chooseMode(mustParseFlags(t, test.args...), test.tty)
		if got != test.want {
			t.Errorf("chooseMode(%q, tty=%v) = %v, want %v", test.args, test.tty, got, test.want)
		}
	}
}

func TestNewJobOverrides(t *testing.T) {
	dir := t.TempDir()
	conf := writeFile(t, dir, "chart.yaml", `
measurements: [games, weight]
sort:
  by: games
  order: asc
`)

	j := mustJob(t, "-config", conf)
	if j.sortBy != "games" || j.order != hist.Ascending {
		t.Errorf("from config: sort %q %v, want games asc", j.sortBy, j.order)
	}
	if len(j.ms) != 2 || j.ms[0].Name != "games" || j.ms[1].Name != "weight" {
		t.Errorf("measurements = %v", j.ms)
	}

	j = mustJob(t, "-config", conf, "-sort", "weight", "-order", "desc", "-seed", "7")
	if j.sortBy != "weight" || j.order != hist.Descending || j.seed != 7 {
		t.Errorf("flags: sort %q %v seed %d, want weight desc 7", j.sortBy, j.order, j.seed)
	}

	// Clearing the sort measurement leaves teams in input order.
	j = mustJob(t, "-config", conf, "-sort", "")
	if j.order != hist.Original {
		t.Errorf("no sort measurement: order %v, want none", j.order)
	}

	// Random order does not need a measurement.
	j = mustJob(t, "-order", "random")
	if j.order != hist.Random {
		t.Errorf("order = %v, want random", j.order)
	}

	if j.logos != nil {
		t.Errorf("logos set without a logo directory")
	}
	j = mustJob(t, "-logos", dir)
	if j.logos == nil || j.logos.Dir != dir {
		t.Errorf("-logos not applied")
	}

	if _, err := newJob(mustParseFlags(t, "-sort", "shoesize")); err == nil {
		t.Errorf("unknown sort measurement accepted")
	}
	if _, err := newJob(mustParseFlags(t, "-config", conf, "-sort", "height")); err == nil {
		t.Errorf("sort by a measurement the chart does not draw accepted")
	}
	if _, err := newJob(mustParseFlags(t, "-order", "sideways")); err == nil {
		t.Errorf("unknown order accepted")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "roster.csv", testRoster)

	for _, test := range []struct {
		flag string
		want []string
	}{
		{"", []string{"<svg", `class="bar"`, "Sydney", "Geelong", "Carlton", "Average:"}},
		{"-table", []string{"team", "measurement", "Geelong", "games"}},
		{"-json", []string{`"teams"`, `"edges"`, `"Carlton"`}},
		{"-overview", []string{"<svg"}},
	} {
		out := filepath.Join(dir, "out"+test.flag)
		args := []string{"-o", out}
		if test.flag != "" {
			args = append(args, test.flag)
		}
		j := mustJob(t, append(args, in)...)
		if err := j.run(); err != nil {
			t.Errorf("%s: %v", test.flag, err)
			continue
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		for _, w := range test.want {
			if !strings.Contains(string(data), w) {
				t.Errorf("%s: output lacks %q", test.flag, w)
			}
		}
	}
}

func TestRunStrict(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "roster.csv", testRoster)
	j := mustJob(t, "-strict", "-o", filepath.Join(dir, "out.svg"), in)
	if err := j.run(); err == nil {
		t.Fatalf("malformed field accepted with -strict")
	} else if !strings.Contains(err.Error(), in) {
		t.Errorf("error %q does not name the input", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	j := mustJob(t, "-o", filepath.Join(dir, "out.svg"), filepath.Join(dir, "missing.csv"))
	if err := j.run(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want not-exist error", err)
	}
}

func TestChartJSON(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "roster.csv", testRoster)
	j := mustJob(t, "-sort", "games", "-order", "desc", in)
	c, err := j.chart()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, c, c.Sorted(j.sortBy, j.order, nil), j.cfg.Color); err != nil {
		t.Fatal(err)
	}
	var got jsonChart
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%v\n%s", err, buf.String())
	}

	if got.Records != 6 {
		t.Errorf("records = %d, want 6", got.Records)
	}
	var order []string
	for _, tm := range got.Teams {
		order = append(order, tm.Team)
	}
	// Carlton has no games data, so its mean sorts last.
	if want := []string{"Geelong", "Sydney", "Carlton"}; !cmp.Equal(order, want) {
		t.Errorf("team order %q, want %q", order, want)
	}

	carlton := got.Teams[2].Histograms["games"]
	if carlton.Mean != nil {
		t.Errorf("Carlton games mean = %v, want null", *carlton.Mean)
	}
	if carlton.Missing != 2 {
		t.Errorf("Carlton games missing = %d, want 2", carlton.Missing)
	}
	if got.Teams[0].Color != j.cfg.Color(1) {
		t.Errorf("Geelong color %q, want palette entry 1 %q", got.Teams[0].Color, j.cfg.Color(1))
	}

	for _, m := range got.Measurements {
		for _, tm := range got.Teams {
			h := tm.Histograms[m.Name]
			if len(h.Counts) != len(m.Edges)-1 {
				t.Errorf("%s %s: %d counts for %d edges", tm.Team, m.Name, len(h.Counts), len(m.Edges))
			}
		}
	}
}

func TestChartJSONEmpty(t *testing.T) {
	c := hist.Build(nil, []hist.Measurement{hist.Games}, hist.Options{})
	var buf bytes.Buffer
	if err := writeJSON(&buf, c, c.Teams.List(), func(int) string { return "red" }); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"teams": []`) {
		t.Errorf("empty roster does not give an empty team list:\n%s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTableError(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "roster.csv", testRoster)
	c, err := mustJob(t, in).chart()
	if err != nil {
		t.Fatal(err)
	}
	if err := writeTable(failWriter{}, c, c.Teams.List()); err == nil || err.Error() != "disk full" {
		t.Errorf("writeTable error = %v, want disk full", err)
	}
}

func TestSummaryTable(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "roster.csv", testRoster)
	j := mustJob(t, "-sort", "", in)
	c, err := j.chart()
	if err != nil {
		t.Fatal(err)
	}
	tab := summaryTable(c, c.Teams.List())
	if n := tab.Len(); n != 3*len(c.Measurements) {
		t.Errorf("table has %d rows, want %d", n, 3*len(c.Measurements))
	}
	teams := tab.MustColumn("team").([]string)
	if teams[0] != "Sydney" || teams[len(teams)-1] != "Carlton" {
		t.Errorf("rows not in input order: %q", teams)
	}
	missing := tab.MustColumn("missing").([]int)
	ms := tab.MustColumn("measurement").([]string)
	for i := range teams {
		if teams[i] == "Carlton" && ms[i] == "games" && missing[i] != 2 {
			t.Errorf("Carlton games missing = %d, want 2", missing[i])
		}
	}
}

func TestWatchPaths(t *testing.T) {
	dir := t.TempDir()
	conf := writeFile(t, dir, "chart.yaml", "bins: 8\n")
	j := mustJob(t, "-config", conf, "-logos", dir, "a.csv", "-", "b.csv")
	want := []string{"a.csv", "b.csv", conf, dir}
	if got := j.watchPaths(); !cmp.Equal(got, want) {
		t.Errorf("watchPaths() = %q, want %q", got, want)
	}

	dirs, names := watchTargets([]string{filepath.Join(dir, "a.csv"), dir})
	if !cmp.Equal(dirs, []string{dir}) {
		t.Errorf("watch dirs = %q, want %q", dirs, []string{dir})
	}
	if !relevant(names, filepath.Join(dir, "a.csv")) {
		t.Errorf("change to watched file ignored")
	}
	if !relevant(names, filepath.Join(dir, "logo.png")) {
		t.Errorf("change inside watched directory ignored")
	}
	if relevant(names, filepath.Join(dir, "sub", "x.png")) {
		t.Errorf("change in nested directory reported")
	}
}
