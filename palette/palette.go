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

// Package palette handles the colour strings stored with annotations.
//
// Two notations are used: hex swatches like "#FFFF00" for rectangles and
// notes, and CSS-style "rgba(r, g, b, a)" fills for highlights.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// The swatches offered by the annotation tools.
const (
	Yellow  = "#FFFF00"
	Green   = "#00FF00"
	Red     = "#FF0000"
	Blue    = "#0000FF"
	Magenta = "#FF00FF"
)

// Default colours for annotations which were stored without one.
const (
	DefaultHighlight = "rgba(255, 255, 0, 0.4)"
	DefaultRectangle = Red
	DefaultNote      = "#FFC107"
)

// Default alpha values for highlight fills.
const (
	HighlightAlpha = 0.4
	HoverAlpha     = 0.6
)

// Swatches lists the available colours in toolbar order.
var Swatches = []string{Yellow, Green, Red, Blue, Magenta}

var swatchNames = map[string]string{
	Yellow:  "Yellow",
	Green:   "Green",
	Red:     "Red",
	Blue:    "Blue",
	Magenta: "Magenta",
}

// Name returns the human-readable name of a swatch, or the empty string if
// s is not one of the [Swatches].
func Name(s string) string {
	return swatchNames[strings.ToUpper(s)]
}

// ErrSyntax is returned when a colour string cannot be parsed.
var ErrSyntax = errors.New("palette: invalid colour")

// RGBA is a colour with 8-bit channels and a separate opacity.
type RGBA struct {
	R, G, B uint8
	A       float64 // opacity in [0, 1]
}

// Parse decodes a colour in "#RGB", "#RRGGBB" or "rgba(r, g, b, a)"
// notation.  Hex colours are opaque.
func Parse(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s
		if len(hex) == 4 {
			hex = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w %q: %v", ErrSyntax, s, err)
		}
		r, g, b := c.RGB255()
		return RGBA{R: r, G: g, B: b, A: 1}, nil
	}

	body, ok := strings.CutPrefix(s, "rgba(")
	if !ok {
		body, ok = strings.CutPrefix(s, "rgb(")
	}
	if !ok || !strings.HasSuffix(body, ")") {
		return RGBA{}, fmt.Errorf("%w %q", ErrSyntax, s)
	}
	parts := strings.Split(strings.TrimSuffix(body, ")"), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("%w %q", ErrSyntax, s)
	}

	var ch [3]uint8
	for i := range 3 {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("%w %q", ErrSyntax, s)
		}
		ch[i] = uint8(v)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || math.IsNaN(a) || a < 0 || a > 1 {
			return RGBA{}, fmt.Errorf("%w %q", ErrSyntax, s)
		}
		alpha = a
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// String formats c in "rgba(r, g, b, a)" notation.
func (c RGBA) String() string {
	a := strconv.FormatFloat(c.A, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

// Hex formats the colour channels of c as "#RRGGBB", ignoring opacity.
func (c RGBA) Hex() string {
	return strings.ToUpper(c.colorful().Hex())
}

// Color converts c to a non-premultiplied [color.NRGBA].
func (c RGBA) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// HasAlpha reports whether s is written in a notation which carries its
// own opacity.
func HasAlpha(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "rgba(")
}

// Translucent converts a swatch into a highlight fill.  Colours which
// already carry an opacity are returned unchanged; all other colours get
// the given alpha.
func Translucent(s string, alpha float64) (string, error) {
	if HasAlpha(s) {
		if _, err := Parse(s); err != nil {
			return "", err
		}
		return s, nil
	}
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	c.A = alpha
	return c.String(), nil
}

// Intensify returns the hover variant of a highlight fill: if the
// opacity of s equals from, it is replaced by to.  Any other colour is
// returned unchanged.
func Intensify(s string, from, to float64) string {
	c, err := Parse(s)
	if err != nil || !HasAlpha(s) || math.Abs(c.A-from) > 1e-9 {
		return s
	}
	c.A = to
	return c.String()
}
