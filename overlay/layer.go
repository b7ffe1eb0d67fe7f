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

package overlay

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/geometry"
	"seehuhn.de/go/markup/palette"
	"seehuhn.de/go/markup/raster"
)

// hitSlop widens the clickable outline of stroked rectangles.
const hitSlop = 2

// previewDash is the dash pattern of the rectangle drag preview.
var previewDash = []float64{4, 2}

// Hit describes the overlay element under a point.
type Hit struct {
	ID string

	// Delete is set if the point is on the delete button of a group.
	Delete bool

	// Note is set if the element is a note marker.
	Note bool
}

// Layer is the overlay of one page.  It holds the current scene and an
// optional drag preview, and it dispatches pointer input to the
// annotations.
//
// All methods are safe for concurrent use.  The callback fields must be
// set before the layer is shared.
type Layer struct {
	// OnDelete is called when the delete button of a group is clicked.
	OnDelete func(id string)

	// OnSelect is called when an annotation is clicked anywhere other than
	// its delete button.
	OnSelect func(id string)

	mu    sync.Mutex
	page  int
	scene Scene
	hover int // index into scene.Groups, or -1

	preview      rect.Rect
	previewColor string
	hasPreview   bool

	r    *raster.Rasteriser
	mask *image.Alpha
}

// NewLayer returns an empty overlay for the given page.
func NewLayer(page int) *Layer {
	return &Layer{page: page, scene: Scene{Page: page}, hover: -1}
}

// Page returns the page number of the layer.
func (l *Layer) Page() int {
	return l.page
}

// Replace implements the [Root] interface.
func (l *Layer) Replace(s Scene) {
	s = s.clone()
	for i := range s.Groups {
		s.Groups[i].Hover = false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scene = s
	l.hover = -1
}

// Scene returns a copy of the current scene.
func (l *Layer) Scene() Scene {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scene.clone()
}

// SetPreview shows a dashed outline of r in the given colour, on top of
// the scene.  The preview is not part of the scene and is not affected by
// [Layer.Replace].
func (l *Layer) SetPreview(r rect.Rect, color string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.preview = r
	l.previewColor = color
	l.hasPreview = true
}

// ClearPreview removes the drag preview.
func (l *Layer) ClearPreview() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasPreview = false
}

// Preview returns the current drag preview.
func (l *Layer) Preview() (rect.Rect, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.preview, l.hasPreview
}

// HitTest returns the topmost overlay element at the page point p.
func (l *Layer) HitTest(p vec.Vec2) (Hit, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, hit, ok := l.hitTest(p)
	return hit, ok
}

// hitTest must be called with l.mu held.  The returned index refers to
// scene.Groups and is -1 for markers.
func (l *Layer) hitTest(p vec.Vec2) (int, Hit, bool) {
	for i := len(l.scene.Markers) - 1; i >= 0; i-- {
		m := &l.scene.Markers[i]
		if inRect(p, m.Bounds()) {
			return -1, Hit{ID: m.ID, Note: true}, true
		}
	}
	for i := len(l.scene.Groups) - 1; i >= 0; i-- {
		g := &l.scene.Groups[i]
		q := p.Sub(vec.Vec2{X: g.Frame.LLx, Y: g.Frame.LLy})

		c, r := g.DeleteButton()
		if q.Sub(c).Length() <= r {
			return i, Hit{ID: g.ID, Delete: true}, true
		}
		if groupContains(g, q) {
			return i, Hit{ID: g.ID}, true
		}
	}
	return -1, Hit{}, false
}

// groupContains reports whether the frame-relative point q is on the
// painted part of g.  Only the outline of unfilled rectangles reacts to
// the pointer.
func groupContains(g *Group, q vec.Vec2) bool {
	if g.Fill != "" {
		return pathContains(g.Shape(), q)
	}
	sz := g.Size()
	d := g.StrokeWidth/2 + hitSlop
	outer := rect.Rect{LLx: -d, LLy: -d, URx: sz.X + d, URy: sz.Y + d}
	inner := rect.Rect{LLx: d, LLy: d, URx: sz.X - d, URy: sz.Y - d}
	return inRect(q, outer) && !(inner.URx > inner.LLx && inner.URy > inner.LLy && inRect(q, inner))
}

func inRect(p vec.Vec2, r rect.Rect) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// pathContains applies the even-odd rule to the polygon formed by the end
// points of all path segments.
func pathContains(p *path.Data, q vec.Vec2) bool {
	inside := false
	var start, cur vec.Vec2
	cross := func(a, b vec.Vec2) {
		if (a.Y > q.Y) != (b.Y > q.Y) {
			x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if q.X < x {
				inside = !inside
			}
		}
	}
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			cross(cur, start)
			start, cur = pts[0], pts[0]
		case path.CmdClose:
			cross(cur, start)
			cur = start
		default:
			end := pts[len(pts)-1]
			cross(cur, end)
			cur = end
		}
	}
	cross(cur, start)
	return inside
}

// PointerMove updates the hover state for the page point p and reports
// whether it changed.
func (l *Layer) PointerMove(p vec.Vec2) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, _, ok := l.hitTest(p)
	if !ok {
		idx = -1
	}
	return l.setHover(idx)
}

// PointerLeave clears the hover state.
func (l *Layer) PointerLeave() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setHover(-1)
}

// setHover must be called with l.mu held.
func (l *Layer) setHover(idx int) bool {
	if idx == l.hover {
		return false
	}
	if l.hover >= 0 {
		l.scene.Groups[l.hover].Hover = false
	}
	if idx >= 0 {
		l.scene.Groups[idx].Hover = true
	}
	l.hover = idx
	return true
}

// Click dispatches a click at the page point p to the callbacks.
func (l *Layer) Click(p vec.Vec2) (Hit, bool) {
	l.mu.Lock()
	_, hit, ok := l.hitTest(p)
	onDelete, onSelect := l.OnDelete, l.OnSelect
	l.mu.Unlock()

	switch {
	case !ok:
	case hit.Delete && onDelete != nil:
		onDelete(hit.ID)
	case !hit.Delete && onSelect != nil:
		onSelect(hit.ID)
	}
	return hit, ok
}

// Draw paints the overlay onto dst, which shows the page at the given
// scale with the page origin at the image origin.
func (l *Layer) Draw(dst draw.Image, scale float64) {
	if !(scale > 0) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := dst.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	if l.r == nil {
		l.r = raster.NewRasteriser(clip)
	}
	if l.mask == nil || l.mask.Rect != b {
		l.mask = image.NewAlpha(b)
	}
	p := &painter{dst: dst, mask: l.mask, r: l.r, clip: clip, scale: scale}

	for i := range l.scene.Groups {
		p.group(&l.scene.Groups[i])
	}
	for i := range l.scene.Markers {
		m := &l.scene.Markers[i]
		p.begin(m.At)
		p.paint(m.Color, func(emit raster.EmitFunc) {
			p.r.FillNonZero(geometry.RectPath(rect.Rect{URx: MarkerSize, URy: MarkerSize}), emit)
		})
	}
	if l.hasPreview {
		p.begin(vec.Vec2{})
		p.r.Dash = previewDash
		p.paint(l.previewColor, func(emit raster.EmitFunc) {
			p.r.StrokeRect(l.preview, emit)
		})
	}
}

// painter composites rasterised shapes onto an image.  Coverage is
// collected in mask and flushed with one DrawMask call per shape.
type painter struct {
	dst   draw.Image
	mask  *image.Alpha
	dirty image.Rectangle
	r     *raster.Rasteriser
	clip  rect.Rect
	scale float64
}

// begin resets the rasteriser for a shape whose local origin is at the
// page point origin.
func (p *painter) begin(origin vec.Vec2) {
	p.r.Reset(p.clip)
	s := p.scale
	p.r.CTM = matrix.Matrix{s, 0, 0, s, origin.X * s, origin.Y * s}
}

func (p *painter) group(g *Group) {
	p.begin(vec.Vec2{X: g.Frame.LLx, Y: g.Frame.LLy})
	sz := g.Size()

	if fill := g.CurrentFill(); fill != "" {
		p.paint(fill, func(emit raster.EmitFunc) {
			p.r.FillNonZero(g.Shape(), emit)
		})
	}
	if g.Stroke != "" && g.StrokeWidth > 0 {
		p.r.Width = g.StrokeWidth
		p.paint(g.Stroke, func(emit raster.EmitFunc) {
			p.r.StrokeRect(rect.Rect{URx: sz.X, URy: sz.Y}, emit)
		})
	}

	c, radius := g.DeleteButton()
	p.paint(DeleteFill, func(emit raster.EmitFunc) {
		p.r.FillNonZero(geometry.Circle(c, radius), emit)
	})
	p.paint(DeleteGlyph, func(emit raster.EmitFunc) {
		ring := geometry.Circle(c, radius+DeleteRingWidth/2)
		inner := geometry.Circle(c, radius-DeleteRingWidth/2)
		ring.Cmds = append(ring.Cmds, inner.Cmds...)
		ring.Coords = append(ring.Coords, inner.Coords...)
		p.r.FillEvenOdd(ring, emit)
	})
	p.r.Width = DeleteCrossWidth
	p.paint(DeleteGlyph, func(emit raster.EmitFunc) {
		for _, l := range g.DeleteCross() {
			p.r.StrokeLine(l[0], l[1], emit)
		}
	})
}

// paint rasterises one shape and composites it in colour c.
// Shapes with an invalid colour are skipped.
func (p *painter) paint(c string, shape func(raster.EmitFunc)) {
	col, err := palette.Parse(c)
	if err != nil {
		return
	}
	shape(p.emit)
	p.flush(col.Color())
}

func (p *painter) emit(y, xMin int, coverage []float32) {
	row := p.mask.Pix[p.mask.PixOffset(xMin, y):]
	for i, c := range coverage {
		row[i] = max(row[i], uint8(math.Round(float64(c)*255)))
	}
	p.dirty = p.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
}

func (p *painter) flush(c color.Color) {
	if p.dirty.Empty() {
		return
	}
	draw.DrawMask(p.dst, p.dirty, image.NewUniform(c), image.Point{}, p.mask, p.dirty.Min, draw.Over)
	for y := p.dirty.Min.Y; y < p.dirty.Max.Y; y++ {
		off := p.mask.PixOffset(p.dirty.Min.X, y)
		clear(p.mask.Pix[off : off+p.dirty.Dx()])
	}
	p.dirty = image.Rectangle{}
}
