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

package capture

import (
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/geometry"
	"seehuhn.de/go/markup/page"
	"seehuhn.de/go/markup/palette"
)

// DefaultDebounce is the minimum time between two accepted selections.
const DefaultDebounce = 1500 * time.Millisecond

// TextLayers gives access to the text layers of rendered pages.
// [page.Scheduler] implements this interface.
type TextLayers interface {
	TextLayer(page int) (page.TextLayer, bool)
}

// Selection is a completed text selection on one page.
type Selection struct {
	Page  int
	Range page.Range

	// Clear, if not nil, removes the live selection from the screen.
	Clear func()
}

// SelectionCapture creates highlight annotations from text selections.
type SelectionCapture struct {
	env    Env
	layers TextLayers

	// Debounce is the minimum time between two accepted selections.
	Debounce time.Duration

	// Alpha is the opacity given to swatch colours without one.
	Alpha float64

	mu       sync.Mutex
	last     time.Time
	accepted bool
}

// NewSelectionCapture returns a SelectionCapture which reads line
// geometry from layers.
func NewSelectionCapture(env Env, layers TextLayers) *SelectionCapture {
	return &SelectionCapture{
		env:      env,
		layers:   layers,
		Debounce: DefaultDebounce,
		Alpha:    palette.HighlightAlpha,
	}
}

// Complete handles the end of a selection gesture, either a pointer
// release or a keyboard selection change.
//
// The selection is turned into a highlight if the brush tool is active
// and the previous accepted selection is at least Debounce in the past.
// Other selections are dropped silently.  On success the live selection
// is cleared and the page is redrawn.
func (c *SelectionCapture) Complete(sel Selection) (annotation.Annotation, bool) {
	log := c.env.logger()

	if tool := c.env.Tools.Tool(); tool != Brush {
		log.Debug("selection ignored", "page", sel.Page, "tool", tool)
		return annotation.Annotation{}, false
	}
	if sel.Range.End <= sel.Range.Start {
		return annotation.Annotation{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.env.now()
	if c.accepted && now.Sub(c.last) < c.Debounce {
		log.Debug("selection debounced", "page", sel.Page, "since", now.Sub(c.last))
		return annotation.Annotation{}, false
	}

	tl, ok := c.layers.TextLayer(sel.Page)
	if !ok {
		log.Debug("selection outside a rendered page", "page", sel.Page)
		return annotation.Annotation{}, false
	}

	frame := tl.Origin()
	var lines []rect.Rect
	for _, r := range tl.LineRects(sel.Range) {
		lines = append(lines, rect.Rect{
			LLx: r.LLx - frame.X,
			LLy: r.LLy - frame.Y,
			URx: r.URx - frame.X,
			URy: r.URy - frame.Y,
		})
	}
	h, err := geometry.BuildHighlight(lines)
	if err != nil {
		log.Debug("selection dropped", "page", sel.Page, "error", err)
		return annotation.Annotation{}, false
	}

	fill, err := palette.Translucent(c.env.Tools.Color(), c.Alpha)
	if err != nil {
		log.Warn("invalid highlight colour", "error", err)
		fill = palette.DefaultHighlight
	}

	a, err := c.env.Store.Create(annotation.Draft{
		Page:    sel.Page,
		Kind:    annotation.Highlight,
		Origin:  h.Origin,
		Extent:  h.Extent,
		Text:    norm.NFC.String(tl.Text(sel.Range)),
		Color:   fill,
		Outline: h.Outline,
	})
	if err != nil {
		log.Warn("highlight rejected", "page", sel.Page, "error", err)
		return annotation.Annotation{}, false
	}
	c.last = now
	c.accepted = true
	log.Info("highlight created", "id", a.ID, "page", a.Page)

	if sel.Clear != nil {
		sel.Clear()
	}
	c.env.sync(a.Page)
	return a, true
}
