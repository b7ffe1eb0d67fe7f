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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/geometry"
	"seehuhn.de/go/markup/palette"
)

// DefaultMinSize is the smallest width and height of a rectangle drag
// which is kept.  Both sides must exceed this value.
const DefaultMinSize = 5

// PrimaryButton is the button number of the main pointer button.
const PrimaryButton = 0

// Previewer shows the outline of a rectangle while it is being drawn.
// [overlay.Layer] implements this interface.
type Previewer interface {
	Page() int
	SetPreview(r rect.Rect, color string)
	ClearPreview()
}

// RectangleCapture implements the drag gesture of the rectangle tool.
// Pointer positions are given relative to the page frame.
type RectangleCapture struct {
	env Env

	// MinSize is the smallest width and height of a kept rectangle.
	MinSize float64

	mu     sync.Mutex
	target Previewer
	start  vec.Vec2
	color  string
}

// NewRectangleCapture returns a RectangleCapture in the idle state.
func NewRectangleCapture(env Env) *RectangleCapture {
	return &RectangleCapture{env: env, MinSize: DefaultMinSize}
}

// Dragging reports whether a drag is in progress.
func (c *RectangleCapture) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target != nil
}

// PointerDown starts a drag on the page shown by target.  The call is
// ignored unless the rectangle tool is active and button is the primary
// button.  It reports whether a drag was started.
func (c *RectangleCapture) PointerDown(target Previewer, p vec.Vec2, button int) bool {
	if button != PrimaryButton || c.env.Tools.Tool() != Rectangle {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target != nil {
		c.target.ClearPreview()
	}
	c.target = target
	c.start = p
	c.color = c.env.Tools.Color()
	target.SetPreview(geometry.NormalizeDrag(p, p), c.color)
	return true
}

// PointerMove updates the preview of an active drag.
func (c *RectangleCapture) PointerMove(p vec.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		return
	}
	c.target.SetPreview(geometry.NormalizeDrag(c.start, p), c.color)
}

// PointerUp ends the drag.  If the dragged rectangle is large enough, a
// rectangle annotation is created and the page is redrawn.
func (c *RectangleCapture) PointerUp(p vec.Vec2) (annotation.Annotation, bool) {
	c.mu.Lock()
	target, start, color := c.target, c.start, c.color
	c.target = nil
	c.mu.Unlock()
	if target == nil {
		return annotation.Annotation{}, false
	}
	target.ClearPreview()

	log := c.env.logger()
	page := target.Page()
	r := geometry.NormalizeDrag(start, p)
	w, h := r.URx-r.LLx, r.URy-r.LLy
	if !(w > c.MinSize && h > c.MinSize) {
		log.Debug("rectangle too small", "page", page, "width", w, "height", h)
		return annotation.Annotation{}, false
	}
	if color == "" {
		color = palette.DefaultRectangle
	}

	a, err := c.env.Store.Create(annotation.Draft{
		Page:   page,
		Kind:   annotation.Rectangle,
		Origin: vec.Vec2{X: r.LLx, Y: r.LLy},
		Extent: vec.Vec2{X: w, Y: h},
		Color:  color,
	})
	if err != nil {
		log.Warn("rectangle rejected", "page", page, "error", err)
		return annotation.Annotation{}, false
	}
	log.Info("rectangle created", "id", a.ID, "page", a.Page)
	c.env.sync(a.Page)
	return a, true
}

// Cancel abandons an active drag without creating an annotation.
func (c *RectangleCapture) Cancel() {
	c.mu.Lock()
	target := c.target
	c.target = nil
	c.mu.Unlock()
	if target != nil {
		target.ClearPreview()
	}
}
