// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/teamstats/teamhist/roster"
)

// DefaultBins is the target number of bins if Options.Bins is 0.
const DefaultBins = 12

// A Bin counts the values in [Lower, Upper). The last bin of a
// histogram also includes Upper.
type Bin struct {
	Lower, Upper float64
	Count        int
}

// A Histogram is the distribution of one measurement within one
// group.
type Histogram struct {
	Key  string
	Bins []Bin

	// Mean is the mean of the group's finite values, or NaN if
	// there are none.
	Mean float64

	// Total is the number of records in the group. Dropped is
	// the number of those not counted in any bin, either because
	// their value is not finite or because it falls outside a
	// fixed domain.
	Total, Dropped int
}

// Max returns the largest bin count of h.
func (h *Histogram) Max() int {
	max := 0
	for _, b := range h.Bins {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Options control binning.
type Options struct {
	// Bins is the target number of bins. If 0, DefaultBins is
	// used.
	Bins int

	// Nice widens the value domain to round numbers and places
	// bin edges at round tick values, so the number of bins is
	// only approximately Bins. It also rounds the count domain
	// up. If Nice is false, the value domain is split into
	// exactly Bins equal-width bins.
	Nice bool

	// Fixed maps measurement names to scales whose edges are
	// reused instead of being computed from the data. The count
	// domain of a fixed scale is widened if the data needs it.
	Fixed map[string]*Scale
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func values(records []*roster.Record, value func(*roster.Record) float64) []float64 {
	xs := make([]float64, 0, len(records))
	for _, r := range records {
		if x := value(r); finite(x) {
			xs = append(xs, x)
		}
	}
	return xs
}

// Edges computes bin edges for the finite values of xs.
func Edges(xs []float64, opts Options) []float64 {
	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	if len(xs) == 0 {
		return nil
	}
	min, max := stats.Bounds(xs)
	if min == max {
		return []float64{min - 0.5, max + 0.5}
	}
	if opts.Nice {
		return niceEdges(min, max, bins)
	}
	return uniformEdges(min, max, bins)
}

// binIndex returns the bin of edges containing x, or -1.
func binIndex(edges []float64, x float64) int {
	n := len(edges) - 1
	if n < 1 || x < edges[0] || x > edges[n] {
		return -1
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > x }) - 1
	if i == n {
		i--
	}
	return i
}

// Count bins the records of g using edges.
func Count(g Group, value func(*roster.Record) float64, edges []float64) Histogram {
	h := Histogram{Key: g.Key, Total: len(g.Records)}
	if len(edges) >= 2 {
		h.Bins = make([]Bin, len(edges)-1)
		for i := range h.Bins {
			h.Bins[i].Lower, h.Bins[i].Upper = edges[i], edges[i+1]
		}
	}
	xs := values(g.Records, value)
	h.Dropped = h.Total - len(xs)
	for _, x := range xs {
		if i := binIndex(edges, x); i >= 0 {
			h.Bins[i].Count++
		} else {
			h.Dropped++
		}
	}
	if len(xs) == 0 {
		h.Mean = math.NaN()
	} else {
		h.Mean = stats.Mean(xs)
	}
	return h
}

// BinRecords computes the histogram of measurement m for every team
// in records.
//
// The bin edges come from the global range of m across all records,
// so every returned histogram has identical bins. The returned
// Scale's count domain covers the largest bin count of any team.
// Histograms are in order of each team's first record.
func BinRecords(records []*roster.Record, m Measurement, opts Options) (*Scale, []Histogram) {
	return binGroups(GroupBy(records, ByTeam), values(records, m.Value), m, opts)
}

func binGroups(groups []Group, all []float64, m Measurement, opts Options) (*Scale, []Histogram) {
	sc := &Scale{Min: math.NaN(), Max: math.NaN()}
	if fixed := opts.Fixed[m.Name]; fixed != nil {
		*sc = *fixed
		sc.Edges = append([]float64(nil), fixed.Edges...)
	} else {
		sc.Edges = Edges(all, opts)
		if len(sc.Edges) > 0 {
			sc.Min, sc.Max = sc.Edges[0], sc.Edges[len(sc.Edges)-1]
		}
	}

	hists := make([]Histogram, len(groups))
	max := 0
	for i, g := range groups {
		hists[i] = Count(g, m.Value, sc.Edges)
		if n := hists[i].Max(); n > max {
			max = n
		}
	}

	countMax := float64(max)
	if opts.Nice && max > 0 {
		_, countMax = nice(0, countMax, 10)
	}
	if countMax > sc.CountMax {
		sc.CountMax = countMax
	}
	return sc, hists
}
