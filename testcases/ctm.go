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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/markup/geometry"
)

// ctmCases draw page-space shapes at viewport scales other than 1.
var ctmCases = []TestCase{
	{
		Name:   "staircase_scale_2",
		Path:   staircase([]rect.Rect{{LLx: 2, LLy: 4, URx: 22, URy: 12}, {LLx: 2, LLy: 12, URx: 30, URy: 20}}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(2, 2),
	},
	{
		Name:   "rectangle_scale_1_5",
		Path:   geometry.RectPath(rect.Rect{LLx: 4, LLy: 4, URx: 36, URy: 30}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 2},
		CTM:    matrix.Scale(1.5, 1.5),
	},
	{
		Name:   "delete_button_scroll_offset",
		Path:   geometry.Circle(pt(40, 10), 8),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(1.25, 1.25).Translate(0, 16),
	},
}
