// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/teamstats/teamhist/roster"
	"go.uber.org/zap"
)

// load reads and concatenates the records of all inputs. "-" is
// standard input.
func (j *job) load() ([]*roster.Record, error) {
	var records []*roster.Record
	for _, path := range j.inputs {
		recs, err := j.loadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	logger.Debug("loaded roster", zap.Strings("inputs", j.inputs), zap.Int("records", len(records)))
	return records, nil
}

func (j *job) loadFile(path string) ([]*roster.Record, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	r := roster.NewReader(f)
	r.Strict = j.strict
	bad := 0
	r.Warn = func(err error) {
		bad++
		var ferr *roster.FieldError
		if errors.As(err, &ferr) {
			logger.Debug("malformed field",
				zap.String("file", path),
				zap.Int("line", ferr.Line),
				zap.String("column", ferr.Column),
				zap.String("value", ferr.Value),
				zap.Error(ferr.Err))
		}
	}
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if bad > 0 {
		logger.Warn("ignored malformed fields; run with -v for details",
			zap.String("file", path), zap.Int("fields", bad))
	}
	return recs, nil
}
