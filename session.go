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

package markup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/capture"
	"seehuhn.de/go/markup/internal/logging"
	"seehuhn.de/go/markup/overlay"
	"seehuhn.de/go/markup/page"
	"seehuhn.de/go/markup/palette"
)

var errNoSource = errors.New("markup: no page source")

// Session holds the annotations of one open document together with the
// overlays of its pages.
//
// Every mutation of the store is followed, within the same call, by a
// rebuild of the overlay of the page concerned.
type Session struct {
	// OnScrollTo is called by [Session.ScrollTo], to bring the annotation
	// with the given id into view in the annotation list.
	OnScrollTo func(id string)

	opt    Options
	logger *slog.Logger
	src    page.Source

	store     *annotation.Store
	syncer    *overlay.Synchronizer
	scheduler *page.Scheduler
	tools     *capture.Tools
	selection *capture.SelectionCapture
	rectangle *capture.RectangleCapture

	mu     sync.Mutex
	layers map[int]*overlay.Layer
}

// New starts a session for a document rendered by src.  If src is nil,
// [Session.LoadPage] fails and text selections are ignored.
func New(src page.Source, opt *Options) *Session {
	o := opt.withDefaults()
	logger := logging.Or(o.Logger)

	s := &Session{
		opt:       o,
		logger:    logger,
		src:       src,
		store:     annotation.NewStore(o.NewID),
		scheduler: page.NewScheduler(src, logger),
		tools:     capture.NewTools(o.Palette[0]),
		layers:    make(map[int]*overlay.Layer),
	}

	s.syncer = overlay.NewSynchronizer(s.store, logger)
	s.syncer.HighlightAlpha = o.HighlightAlpha
	s.syncer.HoverAlpha = o.HoverAlpha

	env := capture.Env{
		Store:  s.store,
		Tools:  s.tools,
		Syncer: s,
		Logger: logger,
		Now:    o.Clock,
	}
	s.selection = capture.NewSelectionCapture(env, s.scheduler)
	s.selection.Debounce = o.Debounce
	s.selection.Alpha = o.HighlightAlpha
	s.rectangle = capture.NewRectangleCapture(env)
	s.rectangle.MinSize = o.MinDragSize
	return s
}

// Close cancels all outstanding page loads.
func (s *Session) Close() {
	s.rectangle.Cancel()
	s.scheduler.Close()
}

// Palette returns the colours offered to the user.
func (s *Session) Palette() []string {
	return append([]string(nil), s.opt.Palette...)
}

// Tool returns the active tool.
func (s *Session) Tool() capture.Tool {
	return s.tools.Tool()
}

// SetTool changes the active tool.  A rectangle drag in progress is
// abandoned.
func (s *Session) SetTool(t capture.Tool) {
	if t != s.tools.Tool() {
		s.rectangle.Cancel()
	}
	s.tools.SetTool(t)
}

// Color returns the active colour.
func (s *Session) Color() string {
	return s.tools.Color()
}

// SetColor changes the active colour.
func (s *Session) SetColor(c string) error {
	return s.tools.SetColor(c)
}

// Layer returns the overlay of a page, creating it if needed.
func (s *Session) Layer(pageNo int) *overlay.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.layers[pageNo]
	if !ok {
		l = overlay.NewLayer(pageNo)
		l.OnDelete = func(id string) { s.RemoveAnnotation(id) }
		l.OnSelect = s.ScrollTo
		s.layers[pageNo] = l
	}
	return l
}

// SyncPage rebuilds the overlay of a page from the store.
func (s *Session) SyncPage(pageNo int) {
	s.syncer.Sync(pageNo, s.Layer(pageNo))
}

// LoadPage renders a page and extracts its text layer.  Once both are
// available, the overlay of the page is rebuilt.
//
// If the load is cancelled, either through ctx or because a newer load for
// the same page supersedes it, LoadPage returns nil and leaves the overlay
// alone.  Other failures are returned as *[page.Error].
func (s *Session) LoadPage(ctx context.Context, pageNo int, vp page.Viewport) error {
	if s.src == nil {
		return &page.Error{Page: pageNo, Op: "render", Err: errNoSource}
	}
	if _, err := s.scheduler.Load(ctx, pageNo, vp); errors.Is(err, context.Canceled) {
		return nil
	} else if err != nil {
		return err
	}
	s.SyncPage(pageNo)
	return nil
}

// CompleteSelection turns a finished text selection into a highlight,
// if the brush tool is active.
func (s *Session) CompleteSelection(sel capture.Selection) (annotation.Annotation, bool) {
	return s.selection.Complete(sel)
}

// PointerDown handles a pointer press at p, in frame coordinates of the
// given page.  With the rectangle tool this starts a drag.
func (s *Session) PointerDown(pageNo int, p vec.Vec2, button int) bool {
	return s.rectangle.PointerDown(s.Layer(pageNo), p, button)
}

// PointerMove handles pointer movement over a page.  During a drag the
// preview is updated, otherwise the hover state of the overlay changes.
func (s *Session) PointerMove(pageNo int, p vec.Vec2) {
	if s.rectangle.Dragging() {
		s.rectangle.PointerMove(p)
		return
	}
	s.Layer(pageNo).PointerMove(p)
}

// PointerUp ends a rectangle drag.
func (s *Session) PointerUp(p vec.Vec2) (annotation.Annotation, bool) {
	return s.rectangle.PointerUp(p)
}

// Click dispatches a click on the overlay of a page, to either the delete
// button or the body of an annotation.
func (s *Session) Click(pageNo int, p vec.Vec2) (overlay.Hit, bool) {
	return s.Layer(pageNo).Click(p)
}

// AddNote creates a note at p, in frame coordinates of the given page.
func (s *Session) AddNote(pageNo int, p vec.Vec2) (annotation.Annotation, error) {
	a, err := s.store.Create(annotation.Draft{
		Page:   pageNo,
		Kind:   annotation.Note,
		Origin: p,
		Text:   NewNoteText,
		Color:  palette.DefaultNote,
	})
	if err != nil {
		return annotation.Annotation{}, err
	}
	s.logger.Info("note created", "id", a.ID, "page", a.Page)
	s.SyncPage(a.Page)
	return a, nil
}

// RemoveAnnotation deletes an annotation and updates its page.  Unknown
// ids are ignored.
func (s *Session) RemoveAnnotation(id string) bool {
	a, ok := s.store.Remove(id)
	if !ok {
		return false
	}
	s.logger.Info("annotation removed", "id", id, "page", a.Page)
	s.SyncPage(a.Page)
	return true
}

// UpdateComment changes the comment of an annotation.  Unknown ids are
// ignored.
func (s *Session) UpdateComment(id, text string) bool {
	a, ok := s.store.UpdateComment(id, text)
	if !ok {
		return false
	}
	s.SyncPage(a.Page)
	return true
}

// ScrollTo asks the annotation list to show the given annotation.
func (s *Session) ScrollTo(id string) {
	if _, ok := s.store.Get(id); !ok {
		return
	}
	if s.OnScrollTo != nil {
		s.OnScrollTo(id)
	}
}

// Annotations returns all annotations in creation order.
func (s *Session) Annotations() []annotation.Annotation {
	return s.store.All()
}

// DrawPage paints the overlay of a page onto dst, which shows the page at
// the given scale.
func (s *Session) DrawPage(pageNo int, dst draw.Image, scale float64) {
	s.Layer(pageNo).Draw(dst, scale)
}

// WriteSVG writes the overlay of a page as HTML with inline SVG.
func (s *Session) WriteSVG(w io.Writer, pageNo int) error {
	return overlay.WriteSVG(w, s.Layer(pageNo).Scene())
}
