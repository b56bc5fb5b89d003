// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import "time"

var epoch = time.Unix(0, 0).UTC()

// Age returns the number of whole years between dob and now.
//
// The elapsed time is laid out from the Unix epoch and the age is the
// distance in calendar years from 1970 to where it lands. This is
// floor(years elapsed) for dob before now, give or take a day of leap
// year skew. If now is before dob, Age returns the absolute year
// difference of the negative offset, which can overstate ages of less
// than a year.
func Age(dob, now time.Time) int {
	// Durations top out around 292 years.
	d := now.Sub(dob)
	years := epoch.Add(d).Year() - epoch.Year()
	if years < 0 {
		years = -years
	}
	return years
}
