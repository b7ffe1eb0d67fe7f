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

package geometry

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Line is one visual text line of a selection.
type Line struct {
	Left, Right float64 // leftmost and rightmost edge of the line's rectangles
	Top, Bottom float64 // smallest top and largest bottom edge
}

// ClusterLines groups rectangles into visual lines.
//
// The rectangles are sorted by vertical position, then by horizontal
// position.  A rectangle joins the current line if its vertical centre
// lies within half its own height of the line's reference centre, which is
// the centre of the line's first rectangle.  Otherwise it starts a new
// line.  Lines are returned top to bottom.
//
// Lines of very different heights (for example superscripts next to
// normal text) may be split or merged in ways a reader would not expect.
func ClusterLines(rects []rect.Rect) []Line {
	if len(rects) == 0 {
		return nil
	}

	sorted := slices.Clone(rects)
	slices.SortFunc(sorted, compareRects)

	var lines []Line
	var ref float64
	for i, r := range sorted {
		centre := (r.LLy + r.URy) / 2
		halfHeight := (r.URy - r.LLy) / 2
		if i > 0 && math.Abs(centre-ref) <= halfHeight {
			l := &lines[len(lines)-1]
			l.Left = min(l.Left, r.LLx)
			l.Right = max(l.Right, r.URx)
			l.Top = min(l.Top, r.LLy)
			l.Bottom = max(l.Bottom, r.URy)
			continue
		}
		ref = centre
		lines = append(lines, Line{
			Left:   r.LLx,
			Right:  r.URx,
			Top:    r.LLy,
			Bottom: r.URy,
		})
	}
	return lines
}

// compareRects orders rectangles top to bottom, then left to right.
// The remaining coordinates break ties, so that the order is total and
// clustering does not depend on the order of the input.
func compareRects(a, b rect.Rect) int {
	if c := cmp.Compare(a.LLy, b.LLy); c != 0 {
		return c
	}
	if c := cmp.Compare(a.LLx, b.LLx); c != 0 {
		return c
	}
	if c := cmp.Compare(a.URy, b.URy); c != 0 {
		return c
	}
	return cmp.Compare(a.URx, b.URx)
}

// Staircase returns the closed outline traced around the given lines.
// The lines must be ordered top to bottom, as returned by [ClusterLines].
// The outline uses only horizontal and vertical edges.
//
// The path starts at the top-left corner of the first line and runs
// clockwise (on screen): along the top of the first line, down the right
// side of every line, across the bottom of the last line and back up along
// the left side of every line.  For n lines the path has 4n vertices.
// A single line gives the four corners of its rectangle.
func Staircase(lines []Line) *path.Data {
	if len(lines) == 0 {
		return nil
	}

	first := lines[0]
	last := lines[len(lines)-1]

	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: first.Left, Y: first.Top})
	p.LineTo(vec.Vec2{X: first.Right, Y: first.Top})
	for i := 1; i < len(lines); i++ {
		p.LineTo(vec.Vec2{X: lines[i-1].Right, Y: lines[i].Top})
		p.LineTo(vec.Vec2{X: lines[i].Right, Y: lines[i].Top})
	}
	p.LineTo(vec.Vec2{X: last.Right, Y: last.Bottom})
	p.LineTo(vec.Vec2{X: last.Left, Y: last.Bottom})
	for i := len(lines) - 1; i > 0; i-- {
		p.LineTo(vec.Vec2{X: lines[i].Left, Y: lines[i].Top})
		p.LineTo(vec.Vec2{X: lines[i-1].Left, Y: lines[i].Top})
	}
	p.Close()
	return p
}

// Vertices returns the points of a polygon path in drawing order.
// The implicit closing segment is not repeated.
func Vertices(p *path.Data) []vec.Vec2 {
	if p == nil {
		return nil
	}
	var res []vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			res = append(res, p.Coords[k])
			k++
		case path.CmdQuadTo:
			res = append(res, p.Coords[k+1])
			k += 2
		case path.CmdCubeTo:
			res = append(res, p.Coords[k+2])
			k += 3
		}
	}
	return res
}
