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

package testcases

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/geometry"
	"seehuhn.de/go/markup/palette"
)

// Scene is an annotated page, used by the overlay tests and by the
// export command.
type Scene struct {
	Name          string
	Page          int
	Width, Height int
	Drafts        []annotation.Draft
}

// Scenes lists the sample pages.
var Scenes = []Scene{
	{
		Name:   "mixed",
		Page:   1,
		Width:  200,
		Height: 160,
		Drafts: []annotation.Draft{
			highlight(1, "first line of text second line",
				rect.Rect{LLx: 20, LLy: 20, URx: 120, URy: 35},
				rect.Rect{LLx: 20, LLy: 35, URx: 180, URy: 50}),
			{
				Page:   1,
				Kind:   annotation.Rectangle,
				Origin: vec.Vec2{X: 40, Y: 70},
				Extent: vec.Vec2{X: 100, Y: 60},
				Color:  palette.Blue,
			},
			{
				Page:    1,
				Kind:    annotation.Note,
				Origin: vec.Vec2{X: 170, Y: 140},
				Text:   "New note",
				Color:  palette.DefaultNote,
			},
		},
	},
	{
		Name:   "defaults",
		Page:   2,
		Width:  120,
		Height: 120,
		Drafts: []annotation.Draft{
			{
				Page:   2,
				Kind:   annotation.Highlight,
				Origin: vec.Vec2{X: 10, Y: 10},
				Extent: vec.Vec2{X: 80, Y: 14},
				Text:   "one line",
			},
			{
				Page:   2,
				Kind:   annotation.Rectangle,
				Origin: vec.Vec2{X: 10, Y: 40},
				Extent: vec.Vec2{X: 60, Y: 60},
			},
		},
	},
}

// Store returns a store holding the drafts of the scene.  Ids have the
// form "<scene name>-<n>", so that they are stable across runs.
func (sc Scene) Store() (*annotation.Store, error) {
	n := 0
	store := annotation.NewStore(func() string {
		n++
		return fmt.Sprintf("%s-%d", sc.Name, n)
	})
	for _, d := range sc.Drafts {
		if _, err := store.Create(d); err != nil {
			return nil, fmt.Errorf("scene %s: %w", sc.Name, err)
		}
	}
	return store, nil
}

func highlight(page int, text string, lines ...rect.Rect) annotation.Draft {
	h, err := geometry.BuildHighlight(lines)
	if err != nil {
		panic(err)
	}
	fill, err := palette.Translucent(palette.Green, palette.HighlightAlpha)
	if err != nil {
		panic(err)
	}
	return annotation.Draft{
		Page:    page,
		Kind:    annotation.Highlight,
		Origin:  h.Origin,
		Extent:  h.Extent,
		Text:    text,
		Color:   fill,
		Outline: h.Outline,
	}
}
