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

package page

import (
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Line is one line of text together with its box in page coordinates.
type Line struct {
	Text string
	Box  rect.Rect
}

// StaticText is a [TextLayer] for pages whose line boxes are known in
// advance.  The glyphs of a line are assumed to have equal widths.
type StaticText struct {
	Frame vec.Vec2
	Lines []Line
}

// Origin implements the [TextLayer] interface.
func (t *StaticText) Origin() vec.Vec2 {
	return t.Frame
}

// LineRects implements the [TextLayer] interface.
func (t *StaticText) LineRects(r Range) []rect.Rect {
	var res []rect.Rect
	off := 0
	for _, l := range t.Lines {
		n := len([]rune(l.Text))
		lo := max(r.Start, off) - off
		hi := min(r.End, off+n) - off
		off += n + 1
		if hi <= lo {
			continue
		}
		w := (l.Box.URx - l.Box.LLx) / float64(n)
		res = append(res, rect.Rect{
			LLx: l.Box.LLx + float64(lo)*w,
			LLy: l.Box.LLy,
			URx: l.Box.LLx + float64(hi)*w,
			URy: l.Box.URy,
		})
	}
	return res
}

// Text implements the [TextLayer] interface.
func (t *StaticText) Text(r Range) string {
	var all []string
	for _, l := range t.Lines {
		all = append(all, l.Text)
	}
	runes := []rune(strings.Join(all, "\n"))
	start := min(max(r.Start, 0), len(runes))
	end := min(max(r.End, start), len(runes))
	return string(runes[start:end])
}
