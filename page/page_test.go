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
	"context"
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// fakeSource blocks the first render call until its context is cancelled.
type fakeSource struct {
	started   chan int
	renderErr error
	textErr   error

	mu    sync.Mutex
	calls int
}

func newFakeSource() *fakeSource {
	return &fakeSource{started: make(chan int, 10)}
}

func (f *fakeSource) Render(ctx context.Context, page int, vp Viewport) error {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()

	f.started <- page
	if first {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.renderErr
}

func (f *fakeSource) TextLayer(ctx context.Context, page int) (TextLayer, error) {
	if f.textErr != nil {
		return nil, f.textErr
	}
	return &StaticText{Lines: []Line{{Text: "x", Box: rect.Rect{URx: 10, URy: 10}}}}, nil
}

func TestSupersededLoadIsCancelled(t *testing.T) {
	src := newFakeSource()
	s := NewScheduler(src, nil)
	vp := Viewport{Scale: 1, Width: 100, Height: 100}

	errc := make(chan error, 1)
	go func() {
		_, err := s.Load(context.Background(), 4, vp)
		errc <- err
	}()
	<-src.started

	tl, err := s.Load(context.Background(), 4, vp)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	err = <-errc
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("first load: err = %v, want cancellation", err)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Page != 4 || pe.Op != "render" {
		t.Errorf("first load: error %#v", err)
	}

	got, ok := s.TextLayer(4)
	if !ok || got != tl {
		t.Error("text layer of the second load was not kept")
	}
}

func TestOtherPagesAreIndependent(t *testing.T) {
	src := newFakeSource()
	s := NewScheduler(src, nil)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Load(context.Background(), 1, Viewport{})
		errc <- err
	}()
	<-src.started

	if _, err := s.Load(context.Background(), 2, Viewport{}); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errc:
		t.Fatalf("load of page 1 finished early: %v", err)
	default:
	}

	s.Cancel(1)
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled load: err = %v", err)
	}
}

func TestClose(t *testing.T) {
	src := newFakeSource()
	s := NewScheduler(src, nil)
	errc := make(chan error, 1)
	go func() {
		_, err := s.Load(context.Background(), 7, Viewport{})
		errc <- err
	}()
	<-src.started
	s.Close()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if _, ok := s.TextLayer(7); ok {
		t.Error("cancelled load left a text layer")
	}
}

func TestLoadFailures(t *testing.T) {
	broken := errors.New("broken")
	cases := []struct {
		name   string
		render error
		text   error
		wantOp string
	}{
		{"render", broken, nil, "render"},
		{"text", nil, broken, "text"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := newFakeSource()
			src.calls = 1 // do not block
			src.renderErr = c.render
			src.textErr = c.text
			s := NewScheduler(src, nil)

			_, err := s.Load(context.Background(), 3, Viewport{})
			if !errors.Is(err, broken) {
				t.Fatalf("err = %v", err)
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.Op != c.wantOp || pe.Page != 3 {
				t.Errorf("err = %#v", err)
			}
			if want := "page 3: " + c.wantOp + ": broken"; err.Error() != want {
				t.Errorf("message %q, want %q", err.Error(), want)
			}
			if _, ok := s.TextLayer(3); ok {
				t.Error("failed load left a text layer")
			}
		})
	}
}

func TestStaticText(t *testing.T) {
	tl := &StaticText{
		Frame: vec.Vec2{X: 5, Y: 7},
		Lines: []Line{
			{Text: "hello world", Box: rect.Rect{LLx: 10, LLy: 10, URx: 120, URy: 25}},
			{Text: "second", Box: rect.Rect{LLx: 10, LLy: 25, URx: 70, URy: 40}},
		},
	}
	r := Range{Start: 6, End: 15}

	want := []rect.Rect{
		{LLx: 70, LLy: 10, URx: 120, URy: 25},
		{LLx: 10, LLy: 25, URx: 40, URy: 40},
	}
	if d := cmp.Diff(want, tl.LineRects(r)); d != "" {
		t.Errorf("LineRects (-want +got):\n%s", d)
	}
	if got := tl.Text(r); got != "world\nsec" {
		t.Errorf("Text = %q", got)
	}
	if got := tl.Text(Range{Start: 15, End: 100}); got != "ond" {
		t.Errorf("Text past the end = %q", got)
	}
	if len(tl.LineRects(Range{Start: 11, End: 12})) != 0 {
		t.Error("the line break produced a rectangle")
	}
	if tl.Origin() != (vec.Vec2{X: 5, Y: 7}) {
		t.Errorf("Origin = %v", tl.Origin())
	}
}

func TestViewportBounds(t *testing.T) {
	vp := Viewport{Scale: 1.5, Width: 100.5, Height: 50}
	if got := vp.Bounds(); got != image.Rect(0, 0, 101, 50) {
		t.Errorf("Bounds = %v", got)
	}
}
