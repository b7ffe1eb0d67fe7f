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

// Package overlay turns the annotations of a page into a drawable scene
// and keeps per-page overlay layers in sync with the annotation store.
//
// A scene is a declarative description: every synchronisation computes
// the complete scene of a page and hands it to the page's [Root] in one
// step.  A [Layer] is the standard Root.  It supports hit testing, hover
// feedback and the delete affordance, and it can rasterise itself onto a
// page bitmap.
package overlay

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/geometry"
)

// Layout of the overlay elements, in page units.
const (
	// DeleteInset is the distance of the delete button centre from the
	// top and right edges of a group.
	DeleteInset = 10

	// DeleteRadius is the radius of the delete button.
	DeleteRadius = 8

	// The delete button has a ring of width DeleteRingWidth and a cross
	// whose arms reach DeleteCrossArm from the centre in x and y.
	DeleteRingWidth  = 1.0
	DeleteCrossArm   = 2.5
	DeleteCrossWidth = 1.5

	// RectangleStrokeWidth is the outline width of rectangle annotations.
	RectangleStrokeWidth = 2

	// MarkerSize is the side length of a note marker.
	MarkerSize = 12
)

// Colours of the delete button.
const (
	DeleteFill  = "rgba(255, 0, 0, 0.8)"
	DeleteGlyph = "#FFFFFF"
)

// Root is the overlay container of one page.
type Root interface {
	// Replace discards all previous overlay content and shows s instead.
	Replace(s Scene)
}

// Scene is the overlay content of one page.  Groups are listed in store
// order; later groups are drawn on top of earlier ones.
type Scene struct {
	Page    int
	Groups  []Group
	Markers []Marker
}

// Group is the overlay element of a highlight or rectangle annotation.
type Group struct {
	ID   string
	Kind annotation.Kind

	// Frame is the area of the group in page coordinates.
	Frame rect.Rect

	// Outline is the stepped outline of a multi-line highlight, relative
	// to the top-left corner of Frame.  Nil means the whole frame.
	Outline *path.Data

	// Fill is the fill colour of the shape, or "" for no fill.
	// HoverFill is used instead while the pointer is over the group.
	Fill      string
	HoverFill string

	// Stroke is the outline colour, or "" for no outline.
	Stroke      string
	StrokeWidth float64

	// Hover is set while the pointer is over the group.
	Hover bool
}

// Size returns the width and height of the group.
func (g *Group) Size() vec.Vec2 {
	return vec.Vec2{X: g.Frame.URx - g.Frame.LLx, Y: g.Frame.URy - g.Frame.LLy}
}

// Shape returns the filled area of the group, relative to the frame.
func (g *Group) Shape() *path.Data {
	if g.Outline != nil {
		return g.Outline
	}
	sz := g.Size()
	return geometry.RectPath(rect.Rect{URx: sz.X, URy: sz.Y})
}

// CurrentFill returns the fill colour for the current hover state.
func (g *Group) CurrentFill() string {
	if g.Hover && g.HoverFill != "" {
		return g.HoverFill
	}
	return g.Fill
}

// DeleteButton returns the centre of the delete button, relative to the
// frame, and its radius.
func (g *Group) DeleteButton() (vec.Vec2, float64) {
	return vec.Vec2{X: g.Size().X - DeleteInset, Y: DeleteInset}, DeleteRadius
}

// DeleteCross returns the two strokes of the cross on the delete button,
// relative to the frame.
func (g *Group) DeleteCross() [2][2]vec.Vec2 {
	c, _ := g.DeleteButton()
	const d = DeleteCrossArm
	return [2][2]vec.Vec2{
		{c.Add(vec.Vec2{X: -d, Y: -d}), c.Add(vec.Vec2{X: d, Y: d})},
		{c.Add(vec.Vec2{X: d, Y: -d}), c.Add(vec.Vec2{X: -d, Y: d})},
	}
}

// Marker is the overlay element of a note.
type Marker struct {
	ID      string
	At      vec.Vec2 // top-left corner, page coordinates
	Color   string
	Text    string // note body
	Comment string
}

// DefaultNoteTitle is shown for notes without a body.
const DefaultNoteTitle = "Note"

// Title returns the tooltip of the marker.
func (m *Marker) Title() string {
	if m.Text == "" {
		return DefaultNoteTitle
	}
	return m.Text
}

// Bounds returns the area covered by the marker.
func (m *Marker) Bounds() rect.Rect {
	return rect.Rect{LLx: m.At.X, LLy: m.At.Y, URx: m.At.X + MarkerSize, URy: m.At.Y + MarkerSize}
}

// clone returns a copy of s which shares no slices with s.
// Outlines are immutable once a scene is built and are shared.
func (s Scene) clone() Scene {
	s.Groups = append([]Group(nil), s.Groups...)
	s.Markers = append([]Marker(nil), s.Markers...)
	return s
}
