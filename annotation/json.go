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
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonAnnotation struct {
	ID         string    `json:"id"`
	PageNumber int       `json:"pageNumber"`
	Kind       string    `json:"kind"`
	Origin     jsonPoint `json:"origin"`
	Extent     *jsonSize `json:"extent,omitempty"`
	Text       string    `json:"text,omitempty"`
	Comment    string    `json:"comment"`
	Color      string    `json:"color,omitempty"`
	Outline    string    `json:"outline,omitempty"`
}

// MarshalJSON implements the [json.Marshaler] interface.
func (a Annotation) MarshalJSON() ([]byte, error) {
	out := jsonAnnotation{
		ID:         a.ID,
		PageNumber: a.Page,
		Kind:       a.Kind.String(),
		Origin:     jsonPoint{X: a.Origin.X, Y: a.Origin.Y},
		Text:       a.Text,
		Comment:    a.Comment,
		Color:      a.Color,
	}
	if a.HasExtent() {
		out.Extent = &jsonSize{Width: a.Extent.X, Height: a.Extent.Y}
	}
	if a.Outline != nil {
		s, err := FormatPath(a.Outline)
		if err != nil {
			return nil, err
		}
		out.Outline = s
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var in jsonAnnotation
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return err
	}

	res := Annotation{
		ID:      in.ID,
		Page:    in.PageNumber,
		Kind:    kind,
		Origin:  vec.Vec2{X: in.Origin.X, Y: in.Origin.Y},
		Text:    in.Text,
		Comment: in.Comment,
		Color:   in.Color,
	}
	if in.Extent != nil {
		res.Extent = vec.Vec2{X: in.Extent.Width, Y: in.Extent.Height}
	}
	if in.Outline != "" {
		res.Outline, err = ParsePath(in.Outline)
		if err != nil {
			return err
		}
	}
	*a = res
	return nil
}

// ErrPathSyntax is returned by [ParsePath] for malformed path strings.
var ErrPathSyntax = errors.New("annotation: malformed path data")

// errCurve is returned by [FormatPath] for paths with curve segments.
var errCurve = errors.New("annotation: outlines must consist of straight lines")

// FormatPath writes a polygon path in SVG path notation, for example
// "M0 0 L50 0 L50 15 Z".  Only move-to, line-to and close-path commands
// are supported.
func FormatPath(p *path.Data) (string, error) {
	var b strings.Builder
	k := 0
	for _, cmd := range p.Cmds {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			if cmd == path.CmdMoveTo {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			pt := p.Coords[k]
			k++
			b.WriteString(formatNumber(pt.X))
			b.WriteByte(' ')
			b.WriteString(formatNumber(pt.Y))
		case path.CmdClose:
			b.WriteByte('Z')
		default:
			return "", errCurve
		}
	}
	return b.String(), nil
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// ParsePath reads a path written by [FormatPath].  Commas may be used
// instead of spaces between coordinates.
func ParsePath(s string) (*path.Data, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	p := &path.Data{}

	number := func(i int) (float64, error) {
		if i >= len(fields) {
			return 0, fmt.Errorf("%w: missing coordinate", ErrPathSyntax)
		}
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPathSyntax, err)
		}
		return x, nil
	}

	hasMove := false
	for i := 0; i < len(fields); {
		f := fields[i]
		op, rest := f[0], f[1:]
		switch op {
		case 'M', 'L':
			if op == 'L' && !hasMove {
				return nil, fmt.Errorf("%w: line-to before move-to", ErrPathSyntax)
			}
			// allow both "M0 0" and "M 0 0"
			var xs string
			j := i + 1
			if rest != "" {
				xs = rest
			} else {
				if j >= len(fields) {
					return nil, fmt.Errorf("%w: missing coordinate", ErrPathSyntax)
				}
				xs = fields[j]
				j++
			}
			x, err := strconv.ParseFloat(xs, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPathSyntax, err)
			}
			y, err := number(j)
			if err != nil {
				return nil, err
			}
			pt := vec.Vec2{X: x, Y: y}
			if op == 'M' {
				p.MoveTo(pt)
				hasMove = true
			} else {
				p.LineTo(pt)
			}
			i = j + 1
		case 'Z', 'z':
			if rest != "" || !hasMove {
				return nil, fmt.Errorf("%w: unexpected %q", ErrPathSyntax, f)
			}
			p.Close()
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrPathSyntax, f)
		}
	}
	if len(p.Cmds) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrPathSyntax)
	}
	return p, nil
}
