// seehuhn.de/go/markup - annotation overlays for rendered documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package page

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"seehuhn.de/go/markup/internal/logging"
)

// Scheduler loads pages from a [Source].  At most one load per page is in
// flight: a new request for a page cancels the previous one.  The text
// layers of completed loads are kept for selection capture.
//
// All methods are safe for concurrent use.
type Scheduler struct {
	src    Source
	logger *slog.Logger

	mu      sync.Mutex
	pending map[int]*request
	layers  map[int]TextLayer
}

type request struct {
	cancel context.CancelFunc
}

// NewScheduler returns a Scheduler for src.  If logger is nil, nothing is
// logged.
func NewScheduler(src Source, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		src:     src,
		logger:  logging.Or(logger),
		pending: make(map[int]*request),
		layers:  make(map[int]TextLayer),
	}
}

// Load renders the page and extracts its text layer.
//
// Errors are of type *[Error].  If the request is superseded by a newer
// one for the same page, the error wraps [context.Canceled]; callers
// should treat this as a silent outcome.
func (s *Scheduler) Load(ctx context.Context, page int, vp Viewport) (TextLayer, error) {
	ctx, cancel := context.WithCancel(ctx)
	req := &request{cancel: cancel}

	s.mu.Lock()
	if prev := s.pending[page]; prev != nil {
		prev.cancel()
	}
	s.pending[page] = req
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.pending[page] == req {
			delete(s.pending, page)
		}
		s.mu.Unlock()
		cancel()
	}()

	if err := s.src.Render(ctx, page, vp); err != nil {
		return nil, s.fail(page, "render", err)
	}
	tl, err := s.src.TextLayer(ctx, page)
	if err != nil {
		return nil, s.fail(page, "text", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[page] != req {
		// a newer request started after the source returned
		return nil, s.fail(page, "text", context.Canceled)
	}
	s.layers[page] = tl
	return tl, nil
}

func (s *Scheduler) fail(page int, op string, err error) error {
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("page load superseded", "page", page, "op", op)
	} else {
		s.logger.Warn("page load failed", "page", page, "op", op, "error", err)
	}
	return &Error{Page: page, Op: op, Err: err}
}

// TextLayer returns the text layer of the last completed load of a page.
func (s *Scheduler) TextLayer(page int) (TextLayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tl, ok := s.layers[page]
	return tl, ok
}

// Cancel aborts the pending load of a page, if any.
func (s *Scheduler) Cancel(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req := s.pending[page]; req != nil {
		req.cancel()
		delete(s.pending, page)
	}
}

// Close aborts all pending loads.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for page, req := range s.pending {
		req.cancel()
		delete(s.pending, page)
	}
}
