// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// An Order is a way of ordering teams by a measurement.
type Order int

const (
	// Original keeps teams in order of first appearance.
	Original Order = iota
	// Descending orders teams by decreasing mean.
	Descending
	// Ascending orders teams by increasing mean.
	Ascending
	// Random shuffles teams.
	Random
)

var orderNames = []string{"none", "desc", "asc", "random"}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder parses the name of an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "none", "original", "":
		return Original, nil
	case "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	case "random", "shuffle":
		return Random, nil
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// Sort reorders teams by their mean of the named measurement. Teams
// with no mean sort last. Teams with equal means keep their relative
// order. Random order draws from rng, or from the global
// source if rng is nil.
func Sort(teams []*Team, measurement string, order Order, rng *rand.Rand) {
	switch order {
	case Original:
		sort.Slice(teams, func(i, j int) bool {
			return teams[i].Index < teams[j].Index
		})
	case Random:
		swap := func(i, j int) { teams[i], teams[j] = teams[j], teams[i] }
		if rng != nil {
			rng.Shuffle(len(teams), swap)
		} else {
			rand.Shuffle(len(teams), swap)
		}
	case Descending, Ascending:
		sort.SliceStable(teams, func(i, j int) bool {
			a, b := teams[i].Mean(measurement), teams[j].Mean(measurement)
			if math.IsNaN(a) || math.IsNaN(b) {
				return !math.IsNaN(a) && math.IsNaN(b)
			}
			if order == Descending {
				return a > b
			}
			return a < b
		})
	}
}

// Sorted returns the chart's teams ordered by the named measurement.
func (c *Chart) Sorted(measurement string, order Order, rng *rand.Rand) []*Team {
	teams := c.Teams.List()
	Sort(teams, measurement, order, rng)
	return teams
}
