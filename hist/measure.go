// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hist groups roster records by team and bins numeric
// measurements into histograms that share bin edges across teams.
//
// The typical flow is a single Build call, which computes one Scale
// per measurement from the global value range of that measurement,
// then counts each team's members into the shared bins. Because every
// team of a measurement uses the same edges and count scale, the
// resulting histograms can be compared directly. Sort reorders teams
// by the mean of a measurement.
//
// Nothing in this package knows how histograms are drawn.
package hist

import "github.com/teamstats/teamhist/roster"

// A Measurement is a named numeric field of a roster record.
type Measurement struct {
	// Name identifies the measurement in configuration, sort
	// keys, and URLs.
	Name string

	// Label is the human-readable name.
	Label string

	// Unit is the unit of values, used when formatting averages.
	Unit string

	// Value returns the measurement for r. It returns NaN if r
	// has no valid value.
	Value func(r *roster.Record) float64
}

var (
	Age = Measurement{"age", "Age", "years",
		func(r *roster.Record) float64 { return r.Age }}
	Games = Measurement{"games", "Games", "games",
		func(r *roster.Record) float64 { return r.Games }}
	Height = Measurement{"height", "Height", "cm",
		func(r *roster.Record) float64 { return r.Height }}
	Weight = Measurement{"weight", "Weight", "kg",
		func(r *roster.Record) float64 { return r.Weight }}
	Jumper = Measurement{"jumper", "Jumper", "",
		func(r *roster.Record) float64 { return r.Jumper }}
)

// Measurements lists every known measurement.
var Measurements = []Measurement{Age, Games, Height, Weight, Jumper}

// LookupMeasurement returns the measurement called name.
func LookupMeasurement(name string) (Measurement, bool) {
	for _, m := range Measurements {
		if m.Name == name {
			return m, true
		}
	}
	return Measurement{}, false
}
