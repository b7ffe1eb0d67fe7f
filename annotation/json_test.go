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

package annotation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestMarshalLayout(t *testing.T) {
	a := Annotation{
		ID:      "a1-1",
		Page:    3,
		Kind:    Highlight,
		Origin:  vec.Vec2{X: 0, Y: 0},
		Extent:  vec.Vec2{X: 80, Y: 30},
		Text:    "stepped selection",
		Color:   "rgba(255, 255, 0, 0.4)",
		Outline: mustParse(t, "M0 0 L50 0 L50 15 L80 15 L80 30 L0 30 L0 15 L0 15 Z"),
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"id":         "a1-1",
		"pageNumber": 3.0,
		"kind":       "highlight",
		"origin":     map[string]any{"x": 0.0, "y": 0.0},
		"extent":     map[string]any{"width": 80.0, "height": 30.0},
		"text":       "stepped selection",
		"comment":    "",
		"color":      "rgba(255, 255, 0, 0.4)",
		"outline":    "M0 0 L50 0 L50 15 L80 15 L80 30 L0 30 L0 15 L0 15 Z",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("JSON layout (-want +got):\n%s", d)
	}
}

func TestNoteHasNoExtent(t *testing.T) {
	a := Annotation{ID: "n", Page: 1, Kind: Note, Origin: vec.Vec2{X: 3, Y: 4}, Comment: "New note"}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["extent"]; ok {
		t.Error("note was written with an extent")
	}
	if _, ok := got["outline"]; ok {
		t.Error("note was written with an outline")
	}
}

func TestUnmarshal(t *testing.T) {
	in := `{"id":"x","pageNumber":2,"kind":"rectangle","origin":{"x":40,"y":30},` +
		`"extent":{"width":80,"height":50},"comment":"box","color":"#FF0000"}`
	var a Annotation
	if err := json.Unmarshal([]byte(in), &a); err != nil {
		t.Fatal(err)
	}
	want := Annotation{
		ID:      "x",
		Page:    2,
		Kind:    Rectangle,
		Origin:  vec.Vec2{X: 40, Y: 30},
		Extent:  vec.Vec2{X: 80, Y: 50},
		Comment: "box",
		Color:   "#FF0000",
	}
	if d := cmp.Diff(want, a); d != "" {
		t.Errorf("Unmarshal (-want +got):\n%s", d)
	}

	err := json.Unmarshal([]byte(`{"kind":"circle"}`), &a)
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("unknown kind: err = %v", err)
	}
}

func TestPathRoundTrip(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 68, Y: 0}).
		LineTo(vec.Vec2{X: 328.5, Y: 0}).
		LineTo(vec.Vec2{X: 328.5, Y: 16.25}).
		LineTo(vec.Vec2{X: 0, Y: 16.25}).
		Close()
	s, err := FormatPath(p)
	if err != nil {
		t.Fatal(err)
	}
	if s != "M68 0 L328.5 0 L328.5 16.25 L0 16.25 Z" {
		t.Errorf("FormatPath = %q", s)
	}

	q, err := ParsePath(s)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(p.Cmds, q.Cmds); d != "" {
		t.Errorf("commands (-want +got):\n%s", d)
	}
	if d := cmp.Diff(p.Coords, q.Coords); d != "" {
		t.Errorf("coordinates (-want +got):\n%s", d)
	}
}

func TestParsePathVariants(t *testing.T) {
	p, err := ParsePath("M 0,0 L 10,0 L10 5 z")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Coords) != 3 || p.Coords[2] != (vec.Vec2{X: 10, Y: 5}) {
		t.Errorf("coords = %v", p.Coords)
	}

	for _, bad := range []string{"", "L0 0", "M0", "M0 0 Q1 1", "Z", "M0 0 Zx", "Mx 0"} {
		if _, err := ParsePath(bad); !errors.Is(err, ErrPathSyntax) {
			t.Errorf("ParsePath(%q): err = %v", bad, err)
		}
	}
}

func mustParse(t *testing.T, s string) *path.Data {
	t.Helper()
	p, err := ParsePath(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
