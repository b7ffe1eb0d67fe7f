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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// RectPath returns the outline of r, clockwise on screen.
func RectPath(r rect.Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: r.LLx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.URy}).
		LineTo(vec.Vec2{X: r.LLx, Y: r.URy}).
		Close()
}

// circleK is the control point distance for a quarter circle
// approximated by a cubic Bézier curve.
const circleK = 0.5522847498

// Circle returns a circle around c with radius r, made of four cubic
// Bézier segments.
func Circle(c vec.Vec2, r float64) *path.Data {
	k := circleK * r
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: c.X, Y: c.Y - r})
	cubeTo(p,
		vec.Vec2{X: c.X + k, Y: c.Y - r},
		vec.Vec2{X: c.X + r, Y: c.Y - k},
		vec.Vec2{X: c.X + r, Y: c.Y})
	cubeTo(p,
		vec.Vec2{X: c.X + r, Y: c.Y + k},
		vec.Vec2{X: c.X + k, Y: c.Y + r},
		vec.Vec2{X: c.X, Y: c.Y + r})
	cubeTo(p,
		vec.Vec2{X: c.X - k, Y: c.Y + r},
		vec.Vec2{X: c.X - r, Y: c.Y + k},
		vec.Vec2{X: c.X - r, Y: c.Y})
	cubeTo(p,
		vec.Vec2{X: c.X - r, Y: c.Y - k},
		vec.Vec2{X: c.X - k, Y: c.Y - r},
		vec.Vec2{X: c.X, Y: c.Y - r})
	return p.Close()
}

func cubeTo(p *path.Data, c1, c2, end vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, end)
}

// Translate returns a copy of p, moved by d.
func Translate(p *path.Data, d vec.Vec2) *path.Data {
	if p == nil {
		return nil
	}
	res := &path.Data{
		Cmds:   append([]path.Command(nil), p.Cmds...),
		Coords: make([]vec.Vec2, len(p.Coords)),
	}
	for i, pt := range p.Coords {
		res.Coords[i] = pt.Add(d)
	}
	return res
}
