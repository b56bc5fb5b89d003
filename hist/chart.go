// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import "github.com/teamstats/teamhist/roster"

// A Chart is the result of binning a set of records for several
// measurements.
type Chart struct {
	Measurements []Measurement

	// Scales maps measurement names to the scale shared by all
	// teams.
	Scales map[string]*Scale

	Teams Teams

	// Records is the number of input records.
	Records int
}

// Build groups records by team and bins each measurement in ms.
func Build(records []*roster.Record, ms []Measurement, opts Options) *Chart {
	c := &Chart{
		Measurements: ms,
		Scales:       make(map[string]*Scale, len(ms)),
		Records:      len(records),
	}
	groups := GroupBy(records, ByTeam)
	for _, g := range groups {
		c.Teams.Add(g.Key).Records = g.Records
	}
	for _, m := range ms {
		sc, hists := binGroups(groups, values(records, m.Value), m, opts)
		c.Scales[m.Name] = sc
		for i := range hists {
			t, _ := c.Teams.Lookup(hists[i].Key)
			t.Hists[m.Name] = &hists[i]
		}
	}
	return c
}

// Measurement returns the chart's measurement called name.
func (c *Chart) Measurement(name string) (Measurement, bool) {
	for _, m := range c.Measurements {
		if m.Name == name {
			return m, true
		}
	}
	return Measurement{}, false
}
