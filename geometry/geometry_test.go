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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func box(x, y, w, h float64) rect.Rect {
	return rect.Rect{LLx: x, LLy: y, URx: x + w, URy: y + h}
}

func TestTwoLineScenario(t *testing.T) {
	h, err := BuildHighlight([]rect.Rect{
		box(0, 0, 50, 15),
		box(0, 15, 80, 15),
	})
	if err != nil {
		t.Fatal(err)
	}

	if h.Origin != (vec.Vec2{X: 0, Y: 0}) {
		t.Errorf("origin = %v, want (0,0)", h.Origin)
	}
	if h.Extent != (vec.Vec2{X: 80, Y: 30}) {
		t.Errorf("extent = %v, want (80,30)", h.Extent)
	}
	if h.Outline == nil {
		t.Fatal("missing outline for a two-line highlight")
	}

	want := []vec.Vec2{
		{X: 0, Y: 0}, {X: 50, Y: 0},
		{X: 50, Y: 15}, {X: 80, Y: 15},
		{X: 80, Y: 30}, {X: 0, Y: 30},
		{X: 0, Y: 15}, {X: 0, Y: 15},
	}
	if d := cmp.Diff(want, Vertices(h.Outline)); d != "" {
		t.Errorf("outline vertices (-want +got):\n%s", d)
	}

	cmds := h.Outline.Cmds
	if cmds[0] != path.CmdMoveTo || cmds[len(cmds)-1] != path.CmdClose {
		t.Errorf("outline is not a closed subpath: %v", cmds)
	}
	for _, c := range cmds[1 : len(cmds)-1] {
		if c != path.CmdLineTo {
			t.Errorf("unexpected command %v in outline", c)
		}
	}
}

func TestSingleRectangle(t *testing.T) {
	r := box(12.5, 30, 40, 11)
	h, err := BuildHighlight([]rect.Rect{r})
	if err != nil {
		t.Fatal(err)
	}
	if h.Outline != nil {
		t.Error("single rectangle must not have an outline")
	}
	if h.Bounds() != r {
		t.Errorf("bounds = %v, want %v", h.Bounds(), r)
	}
}

func TestOneVisualLine(t *testing.T) {
	// three glyph runs on the same line, with sub-pixel jitter and a gap
	rects := []rect.Rect{
		box(10, 100.3, 20, 12),
		box(34, 100, 15, 12.4),
		box(60, 99.8, 30, 12),
	}
	h, err := BuildHighlight(rects)
	if err != nil {
		t.Fatal(err)
	}
	if h.Outline != nil {
		t.Error("one visual line must render as the bounding rectangle")
	}

	// The staircase of the single cluster is the bounding rectangle.
	lines := ClusterLines(rects)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	top := rects[2].LLy
	bottom := rects[1].URy
	want := []vec.Vec2{
		{X: 10, Y: top}, {X: 90, Y: top},
		{X: 90, Y: bottom}, {X: 10, Y: bottom},
	}
	if d := cmp.Diff(want, Vertices(Staircase(lines))); d != "" {
		t.Errorf("single line staircase (-want +got):\n%s", d)
	}
}

func TestThreeLines(t *testing.T) {
	// typical selection: partial first line, full middle, partial last
	rects := []rect.Rect{
		box(140, 200, 260, 14),
		box(72, 216, 328, 14),
		box(72, 232, 90, 14),
	}
	h, err := BuildHighlight(rects)
	if err != nil {
		t.Fatal(err)
	}
	if h.Origin != (vec.Vec2{X: 72, Y: 200}) || h.Extent != (vec.Vec2{X: 328, Y: 46}) {
		t.Fatalf("bounding box = %v + %v", h.Origin, h.Extent)
	}

	want := []vec.Vec2{
		{X: 68, Y: 0}, {X: 328, Y: 0},
		{X: 328, Y: 16}, {X: 328, Y: 16},
		{X: 328, Y: 32}, {X: 90, Y: 32},
		{X: 90, Y: 46}, {X: 0, Y: 46},
		{X: 0, Y: 32}, {X: 0, Y: 32},
		{X: 0, Y: 16}, {X: 68, Y: 16},
	}
	if d := cmp.Diff(want, Vertices(h.Outline)); d != "" {
		t.Errorf("outline vertices (-want +got):\n%s", d)
	}
}

func TestFilterLines(t *testing.T) {
	in := []rect.Rect{
		box(0, 0, 10, 10),
		box(5, 5, 0, 10),
		box(5, 5, 10, 0),
		{LLx: 10, LLy: 0, URx: 0, URy: 10},
		{LLx: math.NaN(), LLy: 0, URx: 10, URy: 10},
		box(20, 0, 1, 1),
	}
	got := FilterLines(in)
	want := []rect.Rect{box(0, 0, 10, 10), box(20, 0, 1, 1)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("FilterLines (-want +got):\n%s", d)
	}
}

func TestBuildHighlightEmpty(t *testing.T) {
	for _, in := range [][]rect.Rect{nil, {box(1, 1, 0, 0)}} {
		_, err := BuildHighlight(in)
		if !errors.Is(err, ErrNoLines) {
			t.Errorf("BuildHighlight(%v): err = %v, want ErrNoLines", in, err)
		}
	}
}

func TestZeroAreaIgnored(t *testing.T) {
	a, err := BuildHighlight([]rect.Rect{box(0, 0, 50, 15), box(0, 15, 80, 15)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildHighlight([]rect.Rect{
		box(500, 500, 0, 15),
		box(0, 0, 50, 15),
		box(-10, 3, 30, 0),
		box(0, 15, 80, 15),
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := diffHighlight(a, b); d != "" {
		t.Errorf("zero-area rectangles changed the result (-want +got):\n%s", d)
	}
}

func TestNormalizeDragScenario(t *testing.T) {
	got := NormalizeDrag(vec.Vec2{X: 120, Y: 80}, vec.Vec2{X: 40, Y: 30})
	want := box(40, 30, 80, 50)
	if got != want {
		t.Errorf("NormalizeDrag = %v, want %v", got, want)
	}
}

// genLines generates a selection: rows of glyph runs on a baseline grid,
// with small vertical jitter inside each row.
func genLines(t *rapid.T) []rect.Rect {
	nRows := rapid.IntRange(1, 6).Draw(t, "rows")
	lineHeight := rapid.Float64Range(8, 20).Draw(t, "lineHeight")
	top := rapid.Float64Range(0, 500).Draw(t, "top")

	var rects []rect.Rect
	for row := range nRows {
		y := top + float64(row)*lineHeight*1.2
		nRuns := rapid.IntRange(1, 4).Draw(t, "runs")
		x := rapid.Float64Range(0, 200).Draw(t, "x")
		for range nRuns {
			w := rapid.Float64Range(1, 120).Draw(t, "w")
			jitter := rapid.Float64Range(-0.4, 0.4).Draw(t, "jitter")
			rects = append(rects, box(x, y+jitter, w, lineHeight))
			x += w + rapid.Float64Range(0, 10).Draw(t, "gap")
		}
	}
	return rects
}

func TestPermutationInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rects := genLines(t)
		perm := rapid.Permutation(rects).Draw(t, "perm")

		a, err := BuildHighlight(rects)
		if err != nil {
			t.Fatal(err)
		}
		b, err := BuildHighlight(perm)
		if err != nil {
			t.Fatal(err)
		}
		if d := diffHighlight(a, b); d != "" {
			t.Fatalf("result depends on input order (-a +b):\n%s", d)
		}
	})
}

func TestBoundingBoxCoversInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rects := genLines(t)
		h, err := BuildHighlight(rects)
		if err != nil {
			t.Fatal(err)
		}

		want := rects[0]
		for _, r := range rects[1:] {
			want.LLx = min(want.LLx, r.LLx)
			want.LLy = min(want.LLy, r.LLy)
			want.URx = max(want.URx, r.URx)
			want.URy = max(want.URy, r.URy)
		}
		const eps = 1e-9
		b := h.Bounds()
		if math.Abs(b.LLx-want.LLx) > eps || math.Abs(b.LLy-want.LLy) > eps ||
			math.Abs(b.URx-want.URx) > eps || math.Abs(b.URy-want.URy) > eps {
			t.Fatalf("bounding box %v, want %v", b, want)
		}
	})
}

func TestOutlineIsRectilinear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rects := genLines(t)
		h, err := BuildHighlight(rects)
		if err != nil {
			t.Fatal(err)
		}
		if h.Outline == nil {
			return
		}

		pts := Vertices(h.Outline)
		n := len(ClusterLines(FilterLines(rects)))
		if len(pts) != 4*n {
			t.Fatalf("got %d vertices for %d lines", len(pts), n)
		}
		if pts[0].Y != 0 {
			t.Fatalf("outline does not start at the top: %v", pts[0])
		}
		for i, p := range pts {
			q := pts[(i+1)%len(pts)]
			if p.X != q.X && p.Y != q.Y {
				t.Fatalf("edge %v -> %v is not axis-aligned", p, q)
			}
			const eps = 1e-9
			if p.X < -eps || p.Y < -eps || p.X > h.Extent.X+eps || p.Y > h.Extent.Y+eps {
				t.Fatalf("vertex %v outside extent %v", p, h.Extent)
			}
		}
	})
}

func TestNormalizeDragCommutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Float64Range(-1000, 1000)
		a := vec.Vec2{X: coord.Draw(t, "ax"), Y: coord.Draw(t, "ay")}
		b := vec.Vec2{X: coord.Draw(t, "bx"), Y: coord.Draw(t, "by")}

		r1 := NormalizeDrag(a, b)
		r2 := NormalizeDrag(b, a)
		if r1 != r2 {
			t.Fatalf("NormalizeDrag(a,b)=%v, NormalizeDrag(b,a)=%v", r1, r2)
		}
		if r1.URx-r1.LLx != math.Abs(a.X-b.X) || r1.URy-r1.LLy != math.Abs(a.Y-b.Y) {
			t.Fatalf("wrong size %v for %v, %v", r1, a, b)
		}
	})
}

// diffHighlight compares two highlights, including the outline commands
// and vertices.
func diffHighlight(a, b Highlight) string {
	type flat struct {
		Origin, Extent vec.Vec2
		Cmds           []path.Command
		Vertices       []vec.Vec2
	}
	flatten := func(h Highlight) flat {
		f := flat{Origin: h.Origin, Extent: h.Extent}
		if h.Outline != nil {
			f.Cmds = h.Outline.Cmds
			f.Vertices = Vertices(h.Outline)
		}
		return f
	}
	return cmp.Diff(flatten(a), flatten(b))
}
