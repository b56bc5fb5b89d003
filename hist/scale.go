// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// A Scale is the shared axis information for one measurement. The
// value axis spans [Min, Max] and is divided by Edges; the count axis
// spans [0, CountMax].
type Scale struct {
	Min, Max float64

	// Edges are the bin boundaries in increasing order. Edges[0]
	// is Min and Edges[len(Edges)-1] is Max. Edges is empty if
	// the measurement had no finite values.
	Edges []float64

	CountMax float64
}

// NBins returns the number of bins described by s.
func (s *Scale) NBins() int {
	if len(s.Edges) < 2 {
		return 0
	}
	return len(s.Edges) - 1
}

func mapLinear(min, max, x, lo, hi float64) float64 {
	if min == max {
		return lo
	}
	return lo + scale.Linear{Min: min, Max: max}.Map(x)*(hi-lo)
}

// ValuePx maps value x from the value domain to the pixel range
// [lo, hi].
func (s *Scale) ValuePx(x, lo, hi float64) float64 {
	return mapLinear(s.Min, s.Max, x, lo, hi)
}

// CountPx maps count n from the count domain to the pixel range
// [lo, hi].
func (s *Scale) CountPx(n int, lo, hi float64) float64 {
	return mapLinear(0, s.CountMax, float64(n), lo, hi)
}

func ticks(min, max float64, n int) []float64 {
	if math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if min == max {
		return []float64{min}
	}
	major, _ := scale.Linear{Min: min, Max: max}.Ticks(scale.TickOptions{Max: n})
	return major
}

// ValueTicks returns at most n round tick values for the value axis.
func (s *Scale) ValueTicks(n int) []float64 {
	if len(s.Edges) == 0 {
		return nil
	}
	return ticks(s.Min, s.Max, n)
}

// CountTicks returns at most n round tick values for the count axis.
// Counts are whole, so fractional ticks are omitted.
func (s *Scale) CountTicks(n int) []int {
	var out []int
	for _, v := range ticks(0, s.CountMax, n) {
		if v == math.Trunc(v) {
			out = append(out, int(v))
		}
	}
	return out
}

// nice widens [min, max] outward to round values, aiming for about n
// ticks.
func nice(min, max float64, n int) (float64, float64) {
	ls := scale.Linear{Min: min, Max: max}
	ls.Nice(scale.TickOptions{Max: n + 1})
	return ls.Min, ls.Max
}

// niceEdges returns bin edges for [min, max] placed at round tick
// values, along with the widened domain.
func niceEdges(min, max float64, bins int) []float64 {
	o := scale.TickOptions{Max: bins + 1}
	ls := scale.Linear{Min: min, Max: max}
	ls.Nice(o)
	major, _ := ls.Ticks(o)
	edges := []float64{ls.Min}
	for _, t := range major {
		if t > ls.Min && t < ls.Max {
			edges = append(edges, t)
		}
	}
	return append(edges, ls.Max)
}

// uniformEdges splits [min, max] into bins equal-width bins.
func uniformEdges(min, max float64, bins int) []float64 {
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + (max-min)*float64(i)/float64(bins)
	}
	edges[bins] = max
	return edges
}
