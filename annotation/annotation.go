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

// Package annotation defines annotation records and the store which owns
// them.
package annotation

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Kind is the type of an annotation.
type Kind int

// These are the supported annotation kinds.
const (
	Highlight Kind = iota + 1
	Rectangle
	Note

	// Drawing is reserved for freehand drawings and is not accepted by
	// [Store.Create].
	Drawing
)

func (k Kind) String() string {
	switch k {
	case Highlight:
		return "highlight"
	case Rectangle:
		return "rectangle"
	case Note:
		return "note"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "highlight":
		return Highlight, nil
	case "rectangle":
		return Rectangle, nil
	case "note":
		return Note, nil
	case "drawing":
		return Drawing, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidKind, s)
}

// needsExtent reports whether annotations of kind k cover an area.
func (k Kind) needsExtent() bool {
	return k == Highlight || k == Rectangle
}

// Errors returned by [Store.Create] for malformed drafts.
var (
	ErrInvalidPage   = errors.New("annotation: page number must be positive")
	ErrInvalidKind   = errors.New("annotation: unsupported kind")
	ErrMissingExtent = errors.New("annotation: width and height must be positive")
)

// Annotation is a single annotation on a page.
//
// All fields except Comment are fixed when the annotation is created.
type Annotation struct {
	ID   string
	Page int // 1-based page number
	Kind Kind

	// Origin is the top-left corner in page-local pixel coordinates.
	Origin vec.Vec2

	// Extent is the width (X) and height (Y).  It is zero for notes.
	Extent vec.Vec2

	// Text is the document text captured by a highlight.
	Text string

	Comment string

	// Color is a hex swatch ("#FF0000") or an rgba fill.
	Color string

	// Outline is the stepped outline of a multi-line highlight, relative to
	// Origin.  If Outline is nil, the shape is the rectangle given by
	// Origin and Extent.
	Outline *path.Data
}

// HasExtent reports whether the annotation covers an area.
func (a *Annotation) HasExtent() bool {
	return a.Extent.X > 0 && a.Extent.Y > 0
}

// Bounds returns the area covered by the annotation in page coordinates.
func (a *Annotation) Bounds() rect.Rect {
	return rect.Rect{
		LLx: a.Origin.X,
		LLy: a.Origin.Y,
		URx: a.Origin.X + a.Extent.X,
		URy: a.Origin.Y + a.Extent.Y,
	}
}

// clone returns a deep copy of a.
func (a Annotation) clone() Annotation {
	a.Outline = clonePath(a.Outline)
	return a
}

func clonePath(p *path.Data) *path.Data {
	if p == nil {
		return nil
	}
	return &path.Data{
		Cmds:   append([]path.Command(nil), p.Cmds...),
		Coords: append([]vec.Vec2(nil), p.Coords...),
	}
}

// Draft holds the fields of an annotation which is about to be created.
type Draft struct {
	Page    int
	Kind    Kind
	Origin  vec.Vec2
	Extent  vec.Vec2
	Text    string
	Comment string
	Color   string
	Outline *path.Data
}

// Check verifies that the draft describes a well-formed annotation.
func (d *Draft) Check() error {
	if d.Page < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidPage, d.Page)
	}
	switch d.Kind {
	case Highlight, Rectangle, Note:
		// pass
	default:
		return fmt.Errorf("%w %s", ErrInvalidKind, d.Kind)
	}
	if d.Kind.needsExtent() && !(d.Extent.X > 0 && d.Extent.Y > 0) {
		return fmt.Errorf("%s: %w (got %gx%g)",
			d.Kind, ErrMissingExtent, d.Extent.X, d.Extent.Y)
	}
	return nil
}

// Patch describes a change to an existing annotation.
// Nil fields are left unchanged.
type Patch struct {
	Comment *string
}
