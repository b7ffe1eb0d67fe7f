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

// Package page describes the interface to the document rendering engine:
// page viewports, per-line text geometry and the scheduling of page
// loads.
package page

import (
	"context"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Viewport is the size of a rendered page, in pixels at the given scale.
type Viewport struct {
	Scale         float64
	Width, Height float64
}

// Bounds returns the pixel rectangle covered by the rendered page.
func (v Viewport) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(math.Ceil(v.Width)), int(math.Ceil(v.Height)))
}

// Range is a span of page text, given as rune offsets [Start, End) into
// the text of the page.  Lines are separated by a single newline.
type Range struct {
	Start, End int
}

// TextLayer is the text geometry of one rendered page.
type TextLayer interface {
	// Origin returns the top-left corner of the text frame in page
	// coordinates.
	Origin() vec.Vec2

	// LineRects returns one rectangle per line fragment covered by r, in
	// page coordinates.  Fragments may be empty or overlap.
	LineRects(r Range) []rect.Rect

	// Text returns the text covered by r.
	Text(r Range) string
}

// Source is the document rendering engine.
type Source interface {
	// Render draws the page at the given viewport.
	Render(ctx context.Context, page int, vp Viewport) error

	// TextLayer extracts the text geometry of a rendered page.
	TextLayer(ctx context.Context, page int) (TextLayer, error)
}

// Error reports a failed page operation.
type Error struct {
	Page int
	Op   string // "render" or "text"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("page %d: %s: %v", e.Page, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
