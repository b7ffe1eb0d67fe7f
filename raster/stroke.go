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

package raster

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeRect strokes the outline of an axis-aligned rectangle using Width,
// Cap, Dash and DashPhase.  Corners are mitred.
func (r *Rasteriser) StrokeRect(box rect.Rect, emit EmitFunc) {
	pts := []vec.Vec2{
		{X: box.LLx, Y: box.LLy},
		{X: box.URx, Y: box.LLy},
		{X: box.URx, Y: box.URy},
		{X: box.LLx, Y: box.URy},
	}
	r.strokePolyline(pts, true, emit)
}

// StrokeLine strokes the segment from a to b using Width, Cap, Dash and
// DashPhase.
func (r *Rasteriser) StrokeLine(a, b vec.Vec2, emit EmitFunc) {
	r.strokePolyline([]vec.Vec2{a, b}, false, emit)
}

// strokePolyline builds one quadrilateral per dash piece and fills all of
// them together, so that overlapping pieces are not painted twice.
// Joins are only correct for right angles.
func (r *Rasteriser) strokePolyline(pts []vec.Vec2, closed bool, emit EmitFunc) {
	if r.Width <= 0 || len(pts) < 2 {
		return
	}
	h := r.Width / 2

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}

	d := newDasher(r.Dash, r.DashPhase)
	r.outline.Cmds = r.outline.Cmds[:0]
	r.outline.Coords = r.outline.Coords[:0]

	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		seg := b.Sub(a)
		length := seg.Length()
		if length == 0 {
			continue
		}
		t := seg.Mul(1 / length)
		hasNext := closed || i < n-1

		d.walk(length, func(s, e float64, open bool) {
			s0, e0 := s, e
			if r.Cap == graphics.LineCapSquare {
				s0 -= h
				e0 += h
			} else if open && hasNext {
				// the dash continues around the corner
				e0 += h
			}
			if e0 <= s0 {
				return
			}
			r.addQuad(a.Add(t.Mul(s0)), a.Add(t.Mul(e0)), t, h)
		})
	}

	if len(r.outline.Cmds) > 0 {
		r.FillNonZero(&r.outline, emit)
	}
}

// addQuad appends the rectangle of half-width h around the segment from p
// to q, which has unit direction t.  All quadrilaterals have the same
// orientation.
func (r *Rasteriser) addQuad(p, q, t vec.Vec2, h float64) {
	n := vec.Vec2{X: -t.Y * h, Y: t.X * h}
	r.outline.MoveTo(p.Add(n)).
		LineTo(q.Add(n)).
		LineTo(q.Sub(n)).
		LineTo(p.Sub(n)).
		Close()
}

// dasher tracks the position within a dash pattern while walking along a
// polyline.
type dasher struct {
	pattern []float64
	idx     int
	left    float64 // remaining length of pattern[idx]
	on      bool
}

func newDasher(pattern []float64, phase float64) *dasher {
	total := 0.0
	for _, x := range pattern {
		if x < 0 {
			return &dasher{on: true}
		}
		total += x
	}
	if total == 0 {
		return &dasher{on: true}
	}
	if len(pattern)%2 == 1 {
		// odd patterns repeat with on and off swapped
		pattern = append(pattern[:len(pattern):len(pattern)], pattern...)
		total *= 2
	}

	d := &dasher{pattern: pattern, on: true}
	if phase < 0 {
		phase = total - (-phase - float64(int(-phase/total))*total)
	}
	phase -= float64(int(phase/total)) * total
	d.left = pattern[0]
	for phase > 0 {
		if phase < d.left {
			d.left -= phase
			break
		}
		phase -= d.left
		d.advance()
	}
	for d.left == 0 {
		d.advance()
	}
	return d
}

func (d *dasher) advance() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.left = d.pattern[d.idx]
	d.on = !d.on
}

// walk reports the "on" intervals within a segment of the given length.
// The open flag is set if the dash has not finished at the end of the
// segment.
func (d *dasher) walk(length float64, piece func(s, e float64, open bool)) {
	if d.pattern == nil {
		piece(0, length, true)
		return
	}

	pos := 0.0
	for pos < length {
		step := min(d.left, length-pos)
		if d.on {
			open := pos+step >= length && d.left > step
			piece(pos, pos+step, open)
		}
		pos += step
		d.left -= step
		for d.left <= 0 {
			d.advance()
			if d.on && d.left == 0 {
				piece(pos, pos, false) // zero-length dash
			}
		}
	}
}
