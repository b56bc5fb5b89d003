// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/teamstats/teamhist/roster"
)

// A Team is one group of a Chart with its histogram for each
// measurement.
type Team struct {
	Key string

	// Index is the position of the team's first record in the
	// input.
	Index int

	Records []*roster.Record

	// Hists maps measurement names to histograms.
	Hists map[string]*Histogram
}

// Mean returns the team's mean for the named measurement, or NaN if
// the team has no histogram for it.
func (t *Team) Mean(measurement string) float64 {
	h := t.Hists[measurement]
	if h == nil {
		return math.NaN()
	}
	return h.Mean
}

// Teams is an ordered mapping from team key to Team. Keys iterate in
// insertion order. The zero value is an empty mapping.
type Teams struct {
	list  []*Team
	byKey map[string]*Team
}

// Add returns the Team for key, appending a new empty Team if key is
// not yet present.
func (ts *Teams) Add(key string) *Team {
	if t, ok := ts.byKey[key]; ok {
		return t
	}
	if ts.byKey == nil {
		ts.byKey = make(map[string]*Team)
	}
	t := &Team{Key: key, Index: len(ts.list), Hists: make(map[string]*Histogram)}
	ts.list = append(ts.list, t)
	ts.byKey[key] = t
	return t
}

// Lookup returns the Team for key.
func (ts *Teams) Lookup(key string) (*Team, bool) {
	t, ok := ts.byKey[key]
	return t, ok
}

// Len returns the number of teams.
func (ts *Teams) Len() int {
	return len(ts.list)
}

// Keys returns the team keys in insertion order.
func (ts *Teams) Keys() []string {
	keys := make([]string, len(ts.list))
	for i, t := range ts.list {
		keys[i] = t.Key
	}
	return keys
}

// List returns the teams in insertion order. The caller may reorder
// the returned slice.
func (ts *Teams) List() []*Team {
	return append([]*Team(nil), ts.list...)
}
