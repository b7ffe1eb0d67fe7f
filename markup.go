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

// Package markup draws interactive annotations on top of rendered
// document pages.
//
// A [Session] keeps the annotations of one open document: text
// highlights made with the brush tool, rectangles drawn with the
// rectangle tool, and notes.  After every change, the overlay of the
// affected page is rebuilt from the annotation store.  Overlays can be
// rasterised onto a page bitmap, or written as SVG.
package markup

import (
	"log/slog"
	"time"

	"seehuhn.de/go/markup/capture"
	"seehuhn.de/go/markup/palette"
)

// NewNoteText is the content of a freshly created note.
const NewNoteText = "New note"

// Options control the behaviour of a [Session].
// The zero value and nil both give the defaults.
type Options struct {
	// Logger receives diagnostic messages.  If this is nil, nothing is
	// logged.
	Logger *slog.Logger

	// Clock returns the current time.  The default is [time.Now].
	Clock func() time.Time

	// Debounce is the minimum time between two accepted text selections.
	// The default is 1500ms.
	Debounce time.Duration

	// MinDragSize is the size which both sides of a dragged rectangle must
	// exceed for the rectangle to be kept.  The default is 5.
	MinDragSize float64

	// HighlightAlpha is the opacity of highlight fills, HoverAlpha the
	// opacity while the pointer is over a highlight.  The defaults are 0.4
	// and 0.6.
	HighlightAlpha float64
	HoverAlpha     float64

	// Palette lists the colours offered to the user.  The first entry is
	// the initial colour.  The default is [palette.Swatches].
	Palette []string

	// NewID generates annotation ids.  The default produces random hex
	// strings.
	NewID func() string
}

func (o *Options) withDefaults() Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.Clock == nil {
		res.Clock = time.Now
	}
	if res.Debounce <= 0 {
		res.Debounce = capture.DefaultDebounce
	}
	if res.MinDragSize <= 0 {
		res.MinDragSize = capture.DefaultMinSize
	}
	if res.HighlightAlpha <= 0 || res.HighlightAlpha > 1 {
		res.HighlightAlpha = palette.HighlightAlpha
	}
	if res.HoverAlpha <= 0 || res.HoverAlpha > 1 {
		res.HoverAlpha = palette.HoverAlpha
	}
	var valid []string
	for _, c := range res.Palette {
		if _, err := palette.Parse(c); err == nil {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		valid = palette.Swatches
	}
	res.Palette = append([]string(nil), valid...)
	return res
}
