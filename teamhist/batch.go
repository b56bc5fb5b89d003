// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// A batchLine is one invocation read from a batch file.
type batchLine struct {
	line int
	args []string
}

// readBatch parses a batch file. Each non-blank line that does not
// start with "#" holds the flags and inputs of one invocation, quoted
// as for a shell.
func readBatch(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := shellquote.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, batchLine{n, args})
	}
	return lines, scanner.Err()
}

// runBatch runs every invocation in the batch file at path. A failed
// invocation is logged and does not stop the others.
func runBatch(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	lines, err := readBatch(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	failed := 0
	for _, bl := range lines {
		l := logger.With(zap.String("batch", path), zap.Int("line", bl.line))
		if err := runBatchLine(path, bl); err != nil {
			l.Error("job failed", zap.Error(err))
			failed++
			continue
		}
		l.Debug("job done", zap.Strings("args", bl.args))
	}
	if failed > 0 {
		return fmt.Errorf("%s: %d of %d jobs failed", path, failed, len(lines))
	}
	return nil
}

func runBatchLine(path string, bl batchLine) error {
	name := fmt.Sprintf("%s:%d", path, bl.line)
	f, err := parseFlags(name, bl.args, os.Stderr)
	if err != nil {
		return err
	}
	switch {
	case f.batch != "":
		return fmt.Errorf("-batch cannot be nested")
	case f.http != "" || f.watch:
		return fmt.Errorf("-http and -watch are not allowed in a batch")
	case len(f.inputs) == 1 && f.inputs[0] == "-":
		return fmt.Errorf("no inputs")
	}
	j, err := newJob(f)
	if err != nil {
		return err
	}
	return j.run()
}
