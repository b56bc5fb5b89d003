// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command teamhist plots per-team histograms of a player roster.
//
// teamhist reads one or more roster CSV files with a Team column and
// some of the Games, Jumper, Weight, Height, and DoB columns. It
// groups players by team and draws, for each team, a column of
// histograms (by default age, games, height, and weight) whose bins
// are shared by all teams so the columns can be compared directly.
// Teams can be ordered by their average of any measurement.
//
// By default teamhist writes an SVG chart. It can instead print a
// summary table (the default when writing to a terminal), write the
// binned data as JSON, or draw a single faceted overview plot. With
// -http it serves the chart, where clicking a measurement re-sorts
// the teams.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/teamstats/teamhist/hist"
	"github.com/teamstats/teamhist/internal/chartconf"
	"github.com/teamstats/teamhist/internal/logo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/ssh/terminal"
)

var logger = zap.NewNop()

func main() {
	f, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		os.Exit(2)
	}

	logger = newLogger(f.verbose)
	defer logger.Sync()

	if err := runMain(f); err != nil {
		logger.Fatal("failed", zap.Error(err))
	}
}

func runMain(f *flags) error {
	if f.batch != "" {
		return runBatch(f.batch)
	}
	j, err := newJob(f)
	if err != nil {
		return err
	}
	if f.http != "" {
		return serve(f.http, j, f.watch)
	}
	if err := j.run(); err != nil {
		return err
	}
	if f.watch {
		return watchJob(j)
	}
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("teamhist")
}

type flags struct {
	config, out       string
	sortBy, order     string
	seed              int64
	logos             string
	table, json       bool
	overview, strict  bool
	verbose, watch    bool
	http, batch       string
	inputs            []string
	setSort, setOrder bool
}

func parseFlags(name string, args []string, stderr io.Writer) (*flags, error) {
	f := new(flags)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "read chart configuration from YAML `file`")
	fs.StringVar(&f.out, "o", "", "write output to `file` (default: stdout)")
	fs.StringVar(&f.sortBy, "sort", "", "order teams by the average of `measurement`")
	fs.StringVar(&f.order, "order", "", "sort `order`: desc, asc, random, or none (default from config: desc)")
	fs.Int64Var(&f.seed, "seed", 0, "random `seed` for -order random (default: time-based)")
	fs.StringVar(&f.logos, "logos", "", "read team logos from `dir`")
	fs.BoolVar(&f.table, "table", false, "print a summary table instead of a chart")
	fs.BoolVar(&f.json, "json", false, "write the binned data as JSON")
	fs.BoolVar(&f.overview, "overview", false, "draw a faceted overview plot of all teams")
	fs.BoolVar(&f.strict, "strict", false, "treat malformed fields as errors")
	fs.BoolVar(&f.verbose, "v", false, "log debug messages")
	fs.BoolVar(&f.watch, "watch", false, "redraw when inputs or configuration change")
	fs.StringVar(&f.http, "http", "", "serve the chart on `addr`")
	fs.StringVar(&f.batch, "batch", "", "run each line of `file` as a separate invocation")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [inputs...]\n", name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sort":
			f.setSort = true
		case "order":
			f.setOrder = true
		}
	})
	f.inputs = fs.Args()
	if len(f.inputs) == 0 {
		f.inputs = []string{"-"}
	}

	modes := 0
	for _, b := range []bool{f.table, f.json, f.overview} {
		if b {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintf(stderr, "%s: at most one of -table, -json, and -overview may be given\n", name)
		return nil, errors.New("conflicting output flags")
	}
	return f, nil
}

type outputMode int

const (
	modeSVG outputMode = iota
	modeTable
	modeJSON
	modeOverview
)

// chooseMode picks the output format. Charts are not written to a
// terminal unless asked for.
func chooseMode(f *flags, stdoutIsTerminal bool) outputMode {
	switch {
	case f.table:
		return modeTable
	case f.json:
		return modeJSON
	case f.overview:
		return modeOverview
	case f.out == "" && f.http == "" && stdoutIsTerminal:
		return modeTable
	}
	return modeSVG
}

// A job is one fully configured rendering of a set of inputs.
type job struct {
	cfg        *chartconf.Config
	configPath string
	ms         []hist.Measurement
	inputs     []string
	out        string
	mode       outputMode
	strict     bool

	sortBy string
	order  hist.Order
	seed   int64

	logos *logo.Set
}

func newJob(f *flags) (*job, error) {
	cfg := chartconf.Default()
	if f.config != "" {
		var err error
		if cfg, err = chartconf.Load(f.config); err != nil {
			return nil, err
		}
	}
	if f.setSort {
		cfg.Sort.By = f.sortBy
	}
	if f.setOrder {
		cfg.Sort.Order = f.order
	}
	if f.seed != 0 {
		cfg.Sort.Seed = f.seed
	}
	if f.logos != "" {
		cfg.Logo.Dir = f.logos
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	j := &job{
		cfg:        cfg,
		configPath: f.config,
		inputs:     f.inputs,
		out:        f.out,
		mode:       chooseMode(f, f.out == "" && terminal.IsTerminal(int(os.Stdout.Fd()))),
		strict:     f.strict,
		sortBy:     cfg.Sort.By,
		seed:       cfg.Sort.Seed,
	}
	j.ms, _ = cfg.HistMeasurements()
	j.order, _ = hist.ParseOrder(cfg.Sort.Order)
	if j.sortBy == "" && j.order != hist.Random {
		j.order = hist.Original
	}
	if cfg.Logo.Dir != "" {
		j.logos = &logo.Set{Dir: cfg.Logo.Dir, Size: cfg.Logo.Size}
	}
	return j, nil
}

// rng returns the source for random team orders.
func (j *job) rng() *rand.Rand {
	seed := j.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// run loads the inputs and writes the output once.
func (j *job) run() error {
	c, err := j.chart()
	if err != nil {
		return err
	}
	if j.out == "" {
		return j.write(os.Stdout, c, j.sortBy, j.order)
	}
	f, err := os.Create(j.out)
	if err != nil {
		return err
	}
	if err := j.write(f, c, j.sortBy, j.order); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Debug("wrote chart", zap.String("file", j.out), zap.Int("teams", c.Teams.Len()))
	return nil
}

// chart loads the inputs and bins them.
func (j *job) chart() (*hist.Chart, error) {
	recs, err := j.load()
	if err != nil {
		return nil, err
	}
	return hist.Build(recs, j.ms, j.cfg.Options()), nil
}
