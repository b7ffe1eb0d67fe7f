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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/markup/geometry"
)

var strokeCases = []TestCase{
	{
		Name:   "rectangle_width_2",
		Path:   geometry.RectPath(rect.Rect{LLx: 10, LLy: 12, URx: 54, URy: 50}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 2},
	},
	{
		Name:   "rectangle_width_3",
		Path:   geometry.RectPath(rect.Rect{LLx: 10.5, LLy: 12.5, URx: 53.5, URy: 50.5}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 3},
	},
	{
		Name:   "preview_dashed",
		Path:   geometry.RectPath(rect.Rect{LLx: 8, LLy: 8, URx: 56, URy: 40}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 1, Dash: []float64{4, 2}},
	},
	{
		Name:   "preview_dashed_phase",
		Path:   geometry.RectPath(rect.Rect{LLx: 8, LLy: 8, URx: 56, URy: 40}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 2, Dash: []float64{6, 3}, DashPhase: 2},
	},
	{
		Name:   "dash_odd_pattern",
		Path:   geometry.RectPath(rect.Rect{LLx: 8, LLy: 8, URx: 56, URy: 56}),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 2, Dash: []float64{5}},
	},
	{
		Name:   "dash_square_caps",
		Path:   segment(8, 32, 56, 32),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 4, Cap: graphics.LineCapSquare, Dash: []float64{6, 6}},
	},
	{
		Name:   "cross_diagonal",
		Path:   segment(20, 20, 44, 44),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 3},
	},
	{
		Name:   "cross_square_cap",
		Path:   segment(44, 20, 20, 44),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 3, Cap: graphics.LineCapSquare},
	},
}
