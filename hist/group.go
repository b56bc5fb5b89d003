// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import "github.com/teamstats/teamhist/roster"

// A Group is the set of records that share a key.
type Group struct {
	Key     string
	Records []*roster.Record
}

// ByTeam is the key function that groups records by team.
func ByTeam(r *roster.Record) string {
	return r.Team
}

// GroupBy partitions records by key. It returns one Group per
// distinct key in order of first occurrence. Records within a group
// keep their input order.
func GroupBy(records []*roster.Record, key func(*roster.Record) string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
