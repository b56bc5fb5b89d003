// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/teamstats/teamhist/hist"
	"go.uber.org/zap"
)

// A server serves the chart of a job. The chart is rebuilt by reload.
type server struct {
	j *job

	mu sync.RWMutex
	c  *hist.Chart
}

func newServer(j *job) (*server, error) {
	s := &server{j: j}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload re-reads the job's inputs. On error, the previous chart is
// kept.
func (s *server) reload() error {
	c, err := s.j.chart()
	if err != nil {
		return err
	}
	s.j.logos.Reset()
	s.mu.Lock()
	s.c = c
	s.mu.Unlock()
	return nil
}

func (s *server) chart() *hist.Chart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c
}

func (s *server) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handle(modeSVG, "image/svg+xml")).Methods("GET", "HEAD")
	r.HandleFunc("/chart.svg", s.handle(modeSVG, "image/svg+xml")).Methods("GET", "HEAD")
	r.HandleFunc("/overview.svg", s.handle(modeOverview, "image/svg+xml")).Methods("GET", "HEAD")
	r.HandleFunc("/data.json", s.handle(modeJSON, "application/json")).Methods("GET", "HEAD")
	r.HandleFunc("/table.txt", s.handle(modeTable, "text/plain; charset=utf-8")).Methods("GET", "HEAD")
	return handlers.CustomLoggingHandler(io.Discard, handlers.CompressHandler(r), logRequest)
}

func logRequest(_ io.Writer, params handlers.LogFormatterParams) {
	logger.Info("request",
		zap.String("method", params.Request.Method),
		zap.String("uri", params.URL.RequestURI()),
		zap.Int("status", params.StatusCode),
		zap.Int("size", params.Size))
}

// sortParams returns the sort measurement and order requested by q,
// falling back to the job's defaults. The measurement must be one
// the chart draws.
func (s *server) sortParams(c *hist.Chart, q url.Values) (string, hist.Order, error) {
	sortBy, order := s.j.sortBy, s.j.order
	if q.Has("sort") {
		sortBy = q.Get("sort")
		if _, ok := c.Measurement(sortBy); !ok && sortBy != "" {
			return "", 0, fmt.Errorf("unknown measurement %q", sortBy)
		}
		if order == hist.Original {
			order = hist.Descending
		}
	}
	if q.Has("order") {
		var err error
		if order, err = hist.ParseOrder(q.Get("order")); err != nil {
			return "", 0, err
		}
	}
	return sortBy, order, nil
}

func (s *server) handle(mode outputMode, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.chart()
		sortBy, order, err := s.sortParams(c, r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		linkOrder := order
		if linkOrder == hist.Original {
			linkOrder = hist.Descending
		}
		href := "/?sort=%s&order=" + linkOrder.String()

		var buf bytes.Buffer
		if err := s.j.writeMode(&buf, mode, c, sortBy, order, href); err != nil {
			logger.Error("rendering failed", zap.String("uri", r.URL.RequestURI()), zap.Error(err))
			http.Error(w, "rendering failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(buf.Bytes())
	}
}

// serve serves j's chart on addr until interrupted. If watch is set,
// the chart is rebuilt when its inputs change.
func serve(addr string, j *job, watch bool) error {
	s, err := newServer(j)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if watch {
		go func() {
			err := watchFiles(ctx, j.watchPaths(), func() {
				if err := s.reload(); err != nil {
					logger.Warn("reload failed; keeping previous data", zap.Error(err))
					return
				}
				logger.Info("reloaded roster")
			})
			if err != nil {
				logger.Error("watch failed", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving", zap.String("addr", addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
