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

package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/page"
	"seehuhn.de/go/markup/palette"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type syncLog []int

func (s *syncLog) SyncPage(page int) { *s = append(*s, page) }

type layers map[int]page.TextLayer

func (l layers) TextLayer(page int) (page.TextLayer, bool) {
	tl, ok := l[page]
	return tl, ok
}

// twoLines is a page whose frame starts at (100, 200).  Each glyph is
// 10 units wide.
var twoLines = &page.StaticText{
	Frame: vec.Vec2{X: 100, Y: 200},
	Lines: []page.Line{
		{Text: "abcdefghij", Box: rect.Rect{LLx: 150, LLy: 220, URx: 250, URy: 235}},
		{Text: "klmnopqrst", Box: rect.Rect{LLx: 100, LLy: 235, URx: 200, URy: 250}},
	},
}

type fixture struct {
	store  *annotation.Store
	tools  *Tools
	synced syncLog
	clock  *fakeClock
	env    Env
}

func newFixture() *fixture {
	f := &fixture{
		store: annotation.NewStore(nil),
		tools: NewTools(""),
		clock: &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.env = Env{
		Store:  f.store,
		Tools:  f.tools,
		Syncer: &f.synced,
		Now:    f.clock.Now,
	}
	return f
}

func TestTools(t *testing.T) {
	tools := NewTools("")
	if tools.Tool() != Cursor || tools.Color() != palette.Yellow {
		t.Errorf("initial state: %s %s", tools.Tool(), tools.Color())
	}
	if c := NewTools(palette.Magenta).Color(); c != palette.Magenta {
		t.Errorf("initial colour = %s", c)
	}
	if c := NewTools("chartreuse").Color(); c != palette.Yellow {
		t.Errorf("invalid initial colour gave %s", c)
	}
	if err := tools.SetColor(palette.Blue); err != nil {
		t.Fatal(err)
	}
	if err := tools.SetColor("chartreuse"); err == nil {
		t.Error("invalid colour accepted")
	}
	if tools.Color() != palette.Blue {
		t.Errorf("colour = %s", tools.Color())
	}

	for _, tool := range []Tool{Cursor, Brush, Rectangle} {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool, got, err)
		}
	}
	if _, err := ParseTool("eraser"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("ParseTool(eraser): err = %v", err)
	}
}

func TestSelectionCreatesHighlight(t *testing.T) {
	f := newFixture()
	f.tools.SetTool(Brush)
	c := NewSelectionCapture(f.env, layers{3: twoLines})

	cleared := false
	a, ok := c.Complete(Selection{
		Page:  3,
		Range: page.Range{Start: 5, End: 15},
		Clear: func() { cleared = true },
	})
	if !ok {
		t.Fatal("selection was not accepted")
	}

	if a.Kind != annotation.Highlight || a.Page != 3 {
		t.Errorf("annotation = %+v", a)
	}
	if a.Origin != (vec.Vec2{X: 0, Y: 20}) || a.Extent != (vec.Vec2{X: 150, Y: 30}) {
		t.Errorf("geometry: origin %v, extent %v", a.Origin, a.Extent)
	}
	if a.Outline == nil {
		t.Error("two-line selection has no outline")
	}
	if a.Text != "fghij\nklmn" {
		t.Errorf("text = %q", a.Text)
	}
	if a.Color != "rgba(255, 255, 0, 0.4)" {
		t.Errorf("colour = %q", a.Color)
	}
	if !cleared {
		t.Error("selection was not cleared")
	}
	if d := cmp.Diff(syncLog{3}, f.synced); d != "" {
		t.Errorf("synced pages (-want +got):\n%s", d)
	}
	if f.store.Len() != 1 {
		t.Errorf("store holds %d annotations", f.store.Len())
	}
}

func TestSelectionNeedsBrush(t *testing.T) {
	for _, tool := range []Tool{Cursor, Rectangle} {
		f := newFixture()
		f.tools.SetTool(tool)
		c := NewSelectionCapture(f.env, layers{1: twoLines})

		cleared := false
		_, ok := c.Complete(Selection{
			Page:  1,
			Range: page.Range{Start: 0, End: 4},
			Clear: func() { cleared = true },
		})
		if ok || cleared || f.store.Len() != 0 || len(f.synced) != 0 {
			t.Errorf("%s: selection was handled", tool)
		}
	}
}

func TestSelectionDebounce(t *testing.T) {
	f := newFixture()
	f.tools.SetTool(Brush)
	c := NewSelectionCapture(f.env, layers{1: twoLines})
	sel := Selection{Page: 1, Range: page.Range{Start: 0, End: 4}}

	if _, ok := c.Complete(sel); !ok {
		t.Fatal("first selection rejected")
	}
	f.clock.advance(1499 * time.Millisecond)
	if _, ok := c.Complete(sel); ok {
		t.Error("selection after 1499ms accepted")
	}
	f.clock.advance(time.Millisecond)
	if _, ok := c.Complete(sel); !ok {
		t.Error("selection after 1500ms rejected")
	}
	if f.store.Len() != 2 {
		t.Errorf("store holds %d annotations, want 2", f.store.Len())
	}
}

func TestSelectionDropped(t *testing.T) {
	f := newFixture()
	f.tools.SetTool(Brush)
	c := NewSelectionCapture(f.env, layers{1: twoLines})

	cases := []struct {
		name string
		sel  Selection
	}{
		{"collapsed", Selection{Page: 1, Range: page.Range{Start: 4, End: 4}}},
		{"unknown page", Selection{Page: 7, Range: page.Range{Start: 0, End: 4}}},
		{"only the line break", Selection{Page: 1, Range: page.Range{Start: 10, End: 11}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := c.Complete(tc.sel); ok {
				t.Error("selection accepted")
			}
		})
	}
	if f.store.Len() != 0 {
		t.Errorf("store holds %d annotations", f.store.Len())
	}

	// dropped selections do not start the debounce interval
	if _, ok := c.Complete(Selection{Page: 1, Range: page.Range{Start: 0, End: 4}}); !ok {
		t.Error("valid selection rejected")
	}
}

func TestSelectionColour(t *testing.T) {
	f := newFixture()
	f.tools.SetTool(Brush)
	f.tools.SetColor(palette.Blue)
	c := NewSelectionCapture(f.env, layers{1: twoLines})
	c.Alpha = 0.25

	a, ok := c.Complete(Selection{Page: 1, Range: page.Range{Start: 0, End: 4}})
	if !ok {
		t.Fatal("selection rejected")
	}
	if a.Color != "rgba(0, 0, 255, 0.25)" {
		t.Errorf("colour = %q", a.Color)
	}
}

func TestSelectionTextIsNormalised(t *testing.T) {
	f := newFixture()
	f.tools.SetTool(Brush)
	tl := &page.StaticText{
		Lines: []page.Line{
			{Text: "cafe\u0301", Box: rect.Rect{LLx: 0, LLy: 0, URx: 50, URy: 12}},
		},
	}
	c := NewSelectionCapture(f.env, layers{1: tl})

	a, ok := c.Complete(Selection{Page: 1, Range: page.Range{Start: 0, End: 5}})
	if !ok {
		t.Fatal("selection rejected")
	}
	if a.Text != "caf\u00e9" {
		t.Errorf("text = %+q", a.Text)
	}
	if a.Outline != nil {
		t.Error("single line selection has an outline")
	}
}
