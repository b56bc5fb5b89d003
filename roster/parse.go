// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package roster reads player roster files.
//
// A roster file is CSV with a header row. The Team column is
// required. The Games, Jumper, Weight, and Height columns are parsed
// as numbers and the DoB column as a date, from which the player's
// age is derived. Any other columns are kept as raw text.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a single player (a single row of a roster file).
type Record struct {
	// Team is the team identifier. Teams are compared as exact
	// strings.
	Team string

	// Name is the player name, from the Player or Name column, if
	// present.
	Name string

	// Games, Jumper, Weight, and Height are the numeric
	// measurements of this player. A field that is missing or
	// does not parse as a number is NaN.
	Games, Jumper, Weight, Height float64

	// DoB is the date of birth. It is the zero Time if the DoB
	// column is missing or could not be parsed.
	DoB time.Time

	// Age is the age in whole years at the time the record was
	// read (see Age). It is NaN if DoB is the zero Time.
	Age float64

	// Other holds the raw text of every other column, keyed by
	// the header name.
	Other map[string]string
}

// ErrMissingColumn is returned when a roster header lacks a required
// column.
var ErrMissingColumn = errors.New("missing required column")

// A FieldError describes a field that could not be converted.
type FieldError struct {
	Line   int    // line of the record, starting at 1 for the header
	Column string // header name of the column
	Value  string // raw field text
	Err    error  // underlying conversion error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// DateLayouts are the layouts tried, in order, when parsing the DoB
// column.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// A Reader reads records from a roster file.
type Reader struct {
	// Now returns the instant ages are computed against. If nil,
	// time.Now is used.
	Now func() time.Time

	// Strict makes any field conversion failure an error.
	// Otherwise the field is set to NaN (or the zero Time) and
	// the failure is passed to Warn.
	Strict bool

	// Warn, if non-nil, is called with a *FieldError for each
	// field that could not be converted when Strict is false.
	Warn func(err error)

	r    *csv.Reader
	line int
	cols map[string]int
	hdr  []string
}

// NewReader returns a Reader that reads a roster file from r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return &Reader{r: cr}
}

var numericColumns = []string{"Games", "Jumper", "Weight", "Height"}

func (r *Reader) readHeader() error {
	hdr, err := r.r.Read()
	if err == io.EOF {
		return fmt.Errorf("empty roster: %w: Team", ErrMissingColumn)
	} else if err != nil {
		return err
	}
	r.line++
	r.hdr = hdr
	r.cols = make(map[string]int, len(hdr))
	for i, name := range hdr {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		r.hdr[i] = name
		if _, ok := r.cols[name]; !ok {
			r.cols[name] = i
		}
	}
	if _, ok := r.cols["Team"]; !ok {
		return fmt.Errorf("%w: Team", ErrMissingColumn)
	}
	return nil
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]*Record, error) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	records := []*Record{}
	for {
		fields, err := r.r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		r.line++
		rec, err := r.parseRecord(fields, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Reader) field(fields []string, col string) (string, bool) {
	i, ok := r.cols[col]
	if !ok || i >= len(fields) {
		return "", false
	}
	return strings.TrimSpace(fields[i]), true
}

// fail reports a conversion failure. It returns a non-nil error only
// in strict mode.
func (r *Reader) fail(col, val string, err error) error {
	ferr := &FieldError{Line: r.line, Column: col, Value: val, Err: err}
	if r.Strict {
		return ferr
	}
	if r.Warn != nil {
		r.Warn(ferr)
	}
	return nil
}

func (r *Reader) parseRecord(fields []string, now time.Time) (*Record, error) {
	rec := &Record{Age: math.NaN()}
	rec.Team, _ = r.field(fields, "Team")
	if name, ok := r.field(fields, "Player"); ok {
		rec.Name = name
	} else if name, ok := r.field(fields, "Name"); ok {
		rec.Name = name
	}

	for _, col := range numericColumns {
		v := math.NaN()
		if s, ok := r.field(fields, col); ok {
			x, err := parseNumber(s)
			if err != nil {
				if err := r.fail(col, s, err); err != nil {
					return nil, err
				}
			} else {
				v = x
			}
		}
		switch col {
		case "Games":
			rec.Games = v
		case "Jumper":
			rec.Jumper = v
		case "Weight":
			rec.Weight = v
		case "Height":
			rec.Height = v
		}
	}

	if s, ok := r.field(fields, "DoB"); ok {
		dob, err := ParseDate(s)
		if err != nil {
			if err := r.fail("DoB", s, err); err != nil {
				return nil, err
			}
		} else {
			rec.DoB = dob
			rec.Age = float64(Age(dob, now))
		}
	}

	for i, name := range r.hdr {
		switch name {
		case "Team", "Player", "Name", "Games", "Jumper", "Weight", "Height", "DoB":
			continue
		}
		if i >= len(fields) {
			continue
		}
		if rec.Other == nil {
			rec.Other = make(map[string]string)
		}
		rec.Other[name] = fields[i]
	}
	return rec, nil
}

var errEmpty = errors.New("empty field")

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errEmpty
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err.(*strconv.NumError).Err
	}
	return v, nil
}

// ParseDate parses s using the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errEmpty
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// Parse reads all records of the roster file in r, computing ages
// against the current time. Fields that cannot be converted are left
// as NaN.
func Parse(r io.Reader) ([]*Record, error) {
	return NewReader(r).ReadAll()
}
