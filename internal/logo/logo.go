// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logo loads team logo images and prepares them for
// embedding in SVG.
package logo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

// A Logo is a scaled team logo.
type Logo struct {
	Width, Height int

	// URI is the PNG-encoded image as a data URI.
	URI string
}

var exts = []string{".png", ".jpg", ".jpeg", ".gif"}

// Slug returns the file name stem used for team's logo: lower case,
// with runs of spaces and punctuation replaced by "-".
func Slug(team string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(team) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	return b.String()
}

// Find returns the path of team's logo in dir. It tries the team name
// as is and then its Slug, with each known image extension. If there
// is no logo, the error satisfies errors.Is(err, os.ErrNotExist).
func Find(dir, team string) (string, error) {
	for _, stem := range []string{team, Slug(team)} {
		if stem == "" {
			continue
		}
		for _, ext := range exts {
			path := filepath.Join(dir, stem+ext)
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no logo for %q in %s: %w", team, dir, os.ErrNotExist)
}

// Load reads the image at path and scales it to fit in a size x size
// square, preserving its aspect ratio.
func Load(path string, size int) (*Logo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Scale(src, size)
}

// Scale fits src in a size x size square and encodes it.
func Scale(src image.Image, size int) (*Logo, error) {
	sb := src.Bounds()
	if sb.Empty() {
		return nil, errors.New("empty image")
	}
	w, h := size, size
	if sb.Dx() > sb.Dy() {
		h = max(1, size*sb.Dy()/sb.Dx())
	} else if sb.Dy() > sb.Dx() {
		w = max(1, size*sb.Dx()/sb.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return &Logo{Width: w, Height: h, URI: uri}, nil
}

// A Set loads logos from a directory on demand and caches them. It
// is safe for concurrent use.
type Set struct {
	Dir  string
	Size int

	mu    sync.Mutex
	cache map[string]*Logo
}

// Get returns the logo for team, or nil if Dir has no logo for it.
func (s *Set) Get(team string) (*Logo, error) {
	if s == nil || s.Dir == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.cache[team]; ok {
		return l, nil
	}
	var l *Logo
	path, err := Find(s.Dir, team)
	if err == nil {
		l, err = Load(path, s.Size)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if s.cache == nil {
		s.cache = make(map[string]*Logo)
	}
	s.cache[team] = l
	return l, nil
}

// Reset drops all cached logos.
func (s *Set) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
