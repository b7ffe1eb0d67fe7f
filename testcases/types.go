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

// Package testcases defines the overlay shapes used for reference-image
// tests and benchmarks of the rasteriser.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name   string        // lowercase a-z and _ only
	Path   *path.Data    // the geometry to render
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	Op     Operation     // fill or stroke
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
}

// Operation is the rendering operation to apply to the path.
type Operation interface {
	isOperation()
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// Fill specifies a fill operation.
type Fill struct {
	Rule FillRule
}

func (Fill) isOperation() {}

// Stroke specifies a stroke operation.  The path of a stroke test is
// either a single segment or a closed axis-aligned rectangle; corners
// are mitred.
type Stroke struct {
	Width     float64               // line width (>0)
	Cap       graphics.LineCapStyle // LineCapButt or LineCapSquare
	Dash      []float64             // dash pattern (nil for solid)
	DashPhase float64               // dash phase offset
}

func (Stroke) isOperation() {}

// Segment returns the end points of a single-segment stroke path.
func (tc TestCase) Segment() (a, b vec.Vec2, ok bool) {
	if len(tc.Path.Coords) != 2 || len(tc.Path.Cmds) != 2 {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	return tc.Path.Coords[0], tc.Path.Coords[1], true
}

// Box returns the bounding box of the path coordinates.
func (tc TestCase) Box() rect.Rect {
	var box rect.Rect
	for i, p := range tc.Path.Coords {
		if i == 0 {
			box = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			continue
		}
		box.LLx = min(box.LLx, p.X)
		box.LLy = min(box.LLy, p.Y)
		box.URx = max(box.URx, p.X)
		box.URy = max(box.URy, p.Y)
	}
	return box
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func segment(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x0, y0)).LineTo(pt(x1, y1))
}
