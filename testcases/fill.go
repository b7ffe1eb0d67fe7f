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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/markup/geometry"
)

var fillCases = []TestCase{
	{
		Name:   "highlight_rect",
		Path:   geometry.RectPath(rect.Rect{LLx: 8, LLy: 20, URx: 56, URy: 36}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "highlight_rect_fractional",
		Path:   geometry.RectPath(rect.Rect{LLx: 8.5, LLy: 20.25, URx: 55.75, URy: 35.5}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "staircase_two_lines",
		Path:   staircase([]rect.Rect{{LLx: 4, LLy: 10, URx: 44, URy: 25}, {LLx: 4, LLy: 25, URx: 60, URy: 40}}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name: "staircase_three_lines",
		Path: staircase([]rect.Rect{
			{LLx: 20, LLy: 6, URx: 60, URy: 20},
			{LLx: 4, LLy: 20, URx: 60, URy: 34},
			{LLx: 4, LLy: 34, URx: 30, URy: 48},
		}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "delete_button",
		Path:   geometry.Circle(pt(32, 32), 8),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "frame_evenodd",
		Path:   frame(rect.Rect{LLx: 8, LLy: 8, URx: 56, URy: 56}, 6),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
}

// staircase builds the outline of a multi-line highlight in page
// coordinates.
func staircase(lines []rect.Rect) *path.Data {
	h, err := geometry.BuildHighlight(lines)
	if err != nil {
		panic(err)
	}
	if h.Outline == nil {
		return geometry.RectPath(h.Bounds())
	}
	return geometry.Translate(h.Outline, h.Origin)
}

// frame returns two nested rectangles with the same orientation.
func frame(r rect.Rect, inset float64) *path.Data {
	p := geometry.RectPath(r)
	inner := geometry.RectPath(rect.Rect{
		LLx: r.LLx + inset, LLy: r.LLy + inset,
		URx: r.URx - inset, URy: r.URy - inset,
	})
	p.Cmds = append(p.Cmds, inner.Cmds...)
	p.Coords = append(p.Coords, inner.Coords...)
	return p
}
