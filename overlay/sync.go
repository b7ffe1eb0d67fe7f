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
	"log/slog"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/internal/logging"
	"seehuhn.de/go/markup/palette"
)

// Synchronizer derives overlay scenes from an annotation store.
type Synchronizer struct {
	store  *annotation.Store
	logger *slog.Logger

	// HighlightAlpha is the opacity of highlight fills, and HoverAlpha the
	// opacity shown while the pointer is over a highlight.
	HighlightAlpha float64
	HoverAlpha     float64
}

// NewSynchronizer returns a Synchronizer for the given store.
// If logger is nil, nothing is logged.
func NewSynchronizer(store *annotation.Store, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		store:          store,
		logger:         logging.Or(logger),
		HighlightAlpha: palette.HighlightAlpha,
		HoverAlpha:     palette.HoverAlpha,
	}
}

// Sync replaces the overlay content of root with the current annotations
// of the given page.  Other pages are not affected.  Calling Sync twice
// without intervening store changes gives the same scene.
func (s *Synchronizer) Sync(page int, root Root) {
	scene := s.Build(page)
	root.Replace(scene)
	s.logger.Debug("overlay synchronised",
		"page", page, "groups", len(scene.Groups), "markers", len(scene.Markers))
}

// Build computes the scene of a page without showing it.
func (s *Synchronizer) Build(page int) Scene {
	scene := Scene{Page: page}
	for _, a := range s.store.ByPage(page) {
		switch a.Kind {
		case annotation.Highlight, annotation.Rectangle:
			if !a.HasExtent() {
				continue
			}
			scene.Groups = append(scene.Groups, s.group(a))
		case annotation.Note:
			scene.Markers = append(scene.Markers, Marker{
				ID:      a.ID,
				At:      a.Origin,
				Color:   s.color(a, palette.DefaultNote),
				Text:    a.Text,
				Comment: a.Comment,
			})
		}
	}
	return scene
}

func (s *Synchronizer) group(a annotation.Annotation) Group {
	g := Group{
		ID:    a.ID,
		Kind:  a.Kind,
		Frame: a.Bounds(),
	}
	if a.Kind == annotation.Rectangle {
		g.Stroke = s.color(a, palette.DefaultRectangle)
		g.StrokeWidth = RectangleStrokeWidth
		return g
	}
	g.Outline = a.Outline
	g.Fill = s.color(a, palette.DefaultHighlight)
	g.HoverFill = palette.Intensify(g.Fill, s.HighlightAlpha, s.HoverAlpha)
	return g
}

// color returns the colour of a, or def if a has no usable colour.
func (s *Synchronizer) color(a annotation.Annotation, def string) string {
	if a.Color == "" {
		return def
	}
	if _, err := palette.Parse(a.Color); err != nil {
		s.logger.Warn("unusable annotation colour", "id", a.ID, "error", err)
		return def
	}
	return a.Color
}
