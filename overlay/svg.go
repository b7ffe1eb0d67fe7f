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
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"seehuhn.de/go/markup/annotation"
)

// WriteSVG writes the scene as HTML: a container element holding one
// absolutely positioned <svg> element per group and one element per note
// marker.  Every element carries the annotation id in a
// data-annotation-id attribute.
func WriteSVG(w io.Writer, s Scene) error {
	layer := element("div",
		"class", "annotation-layer",
		"data-page-number", strconv.Itoa(s.Page))

	for i := range s.Groups {
		g := &s.Groups[i]
		n, err := groupNode(g)
		if err != nil {
			return fmt.Errorf("annotation %s: %w", g.ID, err)
		}
		layer.AppendChild(n)
	}
	for i := range s.Markers {
		m := &s.Markers[i]
		n := element("div",
			"class", "annotation-note",
			"data-annotation-id", m.ID,
			"title", m.Title(),
			"style", fmt.Sprintf("position: absolute; left: %spx; top: %spx; width: %dpx; height: %dpx; background: %s",
				num(m.At.X), num(m.At.Y), MarkerSize, MarkerSize, m.Color))
		layer.AppendChild(n)
	}

	return html.Render(w, layer)
}

func groupNode(g *Group) (*html.Node, error) {
	sz := g.Size()
	svg := element("svg",
		"data-annotation-id", g.ID,
		"style", fmt.Sprintf("position: absolute; left: %spx; top: %spx; width: %spx; height: %spx",
			num(g.Frame.LLx), num(g.Frame.LLy), num(sz.X), num(sz.Y)))
	svg.Namespace = "svg"

	var shape *html.Node
	if g.Outline != nil {
		d, err := annotation.FormatPath(g.Outline)
		if err != nil {
			return nil, err
		}
		shape = element("path", "d", d)
	} else {
		shape = element("rect",
			"x", "0", "y", "0", "width", num(sz.X), "height", num(sz.Y))
	}
	fill, stroke := g.CurrentFill(), g.Stroke
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		stroke = "none"
	}
	setAttr(shape, "fill", fill, "stroke", stroke)
	if g.Stroke != "" {
		setAttr(shape, "stroke-width", num(g.StrokeWidth))
	}
	svg.AppendChild(shape)

	c, r := g.DeleteButton()
	svg.AppendChild(element("circle",
		"class", "annotation-delete-btn",
		"cx", num(c.X), "cy", num(c.Y), "r", num(r),
		"fill", DeleteFill, "stroke", "white", "stroke-width", "1"))

	glyph := element("text",
		"class", "annotation-delete-btn",
		"x", num(c.X), "y", num(c.Y+4),
		"text-anchor", "middle",
		"font-family", "Arial, sans-serif",
		"font-size", "10",
		"font-weight", "bold",
		"fill", "white")
	glyph.AppendChild(&html.Node{Type: html.TextNode, Data: "×"})
	svg.AppendChild(glyph)

	for n := svg.FirstChild; n != nil; n = n.NextSibling {
		n.Namespace = "svg"
	}
	return svg, nil
}

// element creates an element node.  The attributes are given as
// alternating keys and values.
func element(name string, attr ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(name)), Data: name}
	setAttr(n, attr...)
	return n
}

func setAttr(n *html.Node, attr ...string) {
	for i := 0; i+1 < len(attr); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attr[i], Val: attr[i+1]})
	}
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
