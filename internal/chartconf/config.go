// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chartconf holds the layout and binning configuration of a
// team histogram chart.
package chartconf

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/teamstats/teamhist/hist"
	"gopkg.in/yaml.v3"
)

// Margin is the space around each team's histograms, in pixels.
type Margin struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Config is the configuration of one chart.
type Config struct {
	Margin Margin `yaml:"margin"`

	// Width and Height are the outer size of one histogram
	// panel, including margins.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Palette is the list of team colors, as SVG color strings.
	// Teams are assigned colors in order of first appearance,
	// wrapping around.
	Palette []string `yaml:"palette"`

	// Bins is the target number of bins per histogram and Nice
	// enables rounding of domains and bin edges (see
	// hist.Options).
	Bins int  `yaml:"bins"`
	Nice bool `yaml:"nice"`

	// Measurements names the histograms to draw, top to bottom.
	Measurements []string `yaml:"measurements"`

	Sort SortConfig `yaml:"sort"`
	Logo LogoConfig `yaml:"logo"`
}

// SortConfig is the default team ordering.
type SortConfig struct {
	By    string `yaml:"by"`
	Order string `yaml:"order"`
	Seed  int64  `yaml:"seed"`
}

// LogoConfig locates team logos.
type LogoConfig struct {
	Dir  string `yaml:"dir"`
	Size int    `yaml:"size"`
}

// Palette is the default team palette, from colorgorical
// (http://vrl.cs.brown.edu/color).
var Palette = []string{
	"rgb(180,221,212)", "rgb(12,95,49)", "rgb(82,220,188)", "rgb(159,33,8)",
	"rgb(44,228,98)", "rgb(157,13,108)", "rgb(163,215,30)", "rgb(62,60,141)",
	"rgb(135,169,253)", "rgb(16,75,109)", "rgb(251,93,231)", "rgb(39,15,226)",
	"rgb(217,146,226)", "rgb(20,143,174)", "rgb(246,187,134)", "rgb(124,68,14)",
	"rgb(244,212,3)", "rgb(255,77,130)",
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Margin:       Margin{Top: 70, Right: 5, Bottom: 40, Left: 30},
		Width:        100,
		Height:       250,
		Palette:      append([]string(nil), Palette...),
		Bins:         hist.DefaultBins,
		Nice:         true,
		Measurements: []string{"age", "games", "height", "weight"},
		Sort:         SortConfig{Order: "desc"},
		Logo:         LogoConfig{Size: 40},
	}
}

// Load reads a YAML configuration file. Settings missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses a YAML configuration over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg describes a drawable chart.
func (c *Config) Validate() error {
	if c.PlotWidth() <= 0 || c.PlotHeight() <= 0 {
		return fmt.Errorf("histogram area %dx%d is empty after margins", c.PlotWidth(), c.PlotHeight())
	}
	if len(c.Palette) == 0 {
		return errors.New("empty palette")
	}
	if c.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", c.Bins)
	}
	if len(c.Measurements) == 0 {
		return errors.New("no measurements")
	}
	if _, err := c.HistMeasurements(); err != nil {
		return err
	}
	if c.Sort.By != "" && !slices.Contains(c.Measurements, c.Sort.By) {
		if _, ok := hist.LookupMeasurement(c.Sort.By); ok {
			return fmt.Errorf("sort measurement %q is not one of the charted measurements %q", c.Sort.By, c.Measurements)
		}
		return fmt.Errorf("unknown sort measurement %q", c.Sort.By)
	}
	if _, err := hist.ParseOrder(c.Sort.Order); err != nil {
		return err
	}
	if c.Logo.Size < 0 {
		return fmt.Errorf("negative logo size %d", c.Logo.Size)
	}
	return nil
}

// PlotWidth returns the width of the histogram area of one panel.
func (c *Config) PlotWidth() int {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// PlotHeight returns the height of the histogram area of one panel.
func (c *Config) PlotHeight() int {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// HistMeasurements resolves the configured measurement names.
func (c *Config) HistMeasurements() ([]hist.Measurement, error) {
	ms := make([]hist.Measurement, 0, len(c.Measurements))
	for _, name := range c.Measurements {
		m, ok := hist.LookupMeasurement(name)
		if !ok {
			return nil, fmt.Errorf("unknown measurement %q", name)
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// Options returns the binning options described by c.
func (c *Config) Options() hist.Options {
	return hist.Options{Bins: c.Bins, Nice: c.Nice}
}

// Color returns the palette color of the i'th team.
func (c *Config) Color(i int) string {
	return c.Palette[i%len(c.Palette)]
}
