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

// Package geometry turns raw selection and pointer geometry into the
// shapes stored with an annotation.
//
// All coordinates are page-local pixels with the origin at the top-left
// corner of the page and y growing downwards.  A [rect.Rect] is used with
// LLx/LLy as the minimum (top-left) corner and URx/URy as the maximum
// (bottom-right) corner, the same convention the rasteriser uses for
// device-space clip rectangles.
package geometry

import (
	"errors"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrNoLines is returned by [BuildHighlight] if no rectangle with positive
// area remains after filtering.
var ErrNoLines = errors.New("geometry: no line rectangles with positive area")

// Highlight is the geometry of a text highlight.
type Highlight struct {
	// Origin is the top-left corner of the bounding box.
	Origin vec.Vec2

	// Extent holds the width (X) and height (Y) of the bounding box.
	Extent vec.Vec2

	// Outline is the stepped outline in bounding-box-relative coordinates.
	// It is nil if the selection covers a single visual line, in which case
	// the bounding box itself is the shape.
	Outline *path.Data
}

// Bounds returns the bounding box of h in page coordinates.
func (h Highlight) Bounds() rect.Rect {
	return rect.Rect{
		LLx: h.Origin.X,
		LLy: h.Origin.Y,
		URx: h.Origin.X + h.Extent.X,
		URy: h.Origin.Y + h.Extent.Y,
	}
}

// FilterLines returns the rectangles with positive width and height.
// Rectangles with NaN coordinates are dropped as well.
// The input slice is not modified.
func FilterLines(rects []rect.Rect) []rect.Rect {
	var res []rect.Rect
	for _, r := range rects {
		// written as !(a > b) so that NaN values are rejected
		if !(r.URx > r.LLx) || !(r.URy > r.LLy) {
			continue
		}
		res = append(res, r)
	}
	return res
}

// BuildHighlight computes the highlight geometry for a set of per-line
// selection rectangles.  Rectangles without positive area are ignored.
//
// The result does not depend on the order of the input rectangles.
func BuildHighlight(lines []rect.Rect) (Highlight, error) {
	lines = FilterLines(lines)
	if len(lines) == 0 {
		return Highlight{}, ErrNoLines
	}

	bbox := lines[0]
	for _, r := range lines[1:] {
		bbox.LLx = min(bbox.LLx, r.LLx)
		bbox.LLy = min(bbox.LLy, r.LLy)
		bbox.URx = max(bbox.URx, r.URx)
		bbox.URy = max(bbox.URy, r.URy)
	}
	h := Highlight{
		Origin: vec.Vec2{X: bbox.LLx, Y: bbox.LLy},
		Extent: vec.Vec2{X: bbox.URx - bbox.LLx, Y: bbox.URy - bbox.LLy},
	}
	if len(lines) == 1 {
		return h, nil
	}

	rel := make([]rect.Rect, len(lines))
	for i, r := range lines {
		rel[i] = rect.Rect{
			LLx: r.LLx - bbox.LLx,
			LLy: r.LLy - bbox.LLy,
			URx: r.URx - bbox.LLx,
			URy: r.URy - bbox.LLy,
		}
	}

	clusters := ClusterLines(rel)
	if len(clusters) > 1 {
		h.Outline = Staircase(clusters)
	}
	return h, nil
}

// NormalizeDrag returns the rectangle spanned by the two corner points a
// and b.  The result is the same for NormalizeDrag(a, b) and
// NormalizeDrag(b, a).
func NormalizeDrag(a, b vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X),
		LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X),
		URy: max(a.Y, b.Y),
	}
}
