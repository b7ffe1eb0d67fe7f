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

// Command genpdf writes the reference images for the raster and overlay
// tests.
//
// Each raster test case becomes a one-page PDF, drawn in white on black,
// so that grey levels are coverage values.  Each sample scene is drawn in
// colour on a white page, using the overlay layout.  Ghostscript renders
// all PDF files to PNG.
//
// Run from the module root:
//
//	go run ./testcases/genpdf
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/extgstate"

	"seehuhn.de/go/markup/geometry"
	"seehuhn.de/go/markup/overlay"
	"seehuhn.de/go/markup/palette"
	"seehuhn.de/go/markup/testcases"
)

const (
	rasterDir  = "raster/testdata/reference"
	overlayDir = "overlay/testdata/reference"
)

func main() {
	for _, dir := range []string{rasterDir, overlayDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(rasterDir, name+".pdf")
			pngPath := filepath.Join(rasterDir, name+".png")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath, "pnggray"); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	for _, sc := range testcases.Scenes {
		name := "scene_" + sc.Name
		pdfPath := filepath.Join(overlayDir, name+".pdf")
		pngPath := filepath.Join(overlayDir, name+".png")

		if err := generateScenePDF(sc, pdfPath); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
		if err := renderPNG(pdfPath, pngPath, "png16m"); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
	}
}

// newPage creates a one-page PDF of the given size, filled with the
// background colour.  The returned page uses a top-left origin, like the
// overlays.
func newPage(pdfPath string, width, height int, bg color.Color) (*document.Page, error) {
	// Page size in points (1 point = 1 pixel at 72 DPI)
	w, h := float64(width), float64(height)
	page, err := document.CreateSinglePage(pdfPath, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	page.SetFillColor(bg)
	page.Rectangle(0, 0, w, h)
	page.Fill()

	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})
	return page, nil
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	page, err := newPage(pdfPath, tc.Width, tc.Height, color.DeviceGray(0))
	if err != nil {
		return err
	}

	if tc.CTM != (matrix.Matrix{}) && tc.CTM != matrix.Identity {
		page.Transform(tc.CTM)
	}

	page.SetFillColor(color.DeviceGray(1))
	page.SetStrokeColor(color.DeviceGray(1))

	if op, ok := tc.Op.(testcases.Stroke); ok {
		page.SetLineWidth(op.Width)
		page.SetLineCap(op.Cap)
		page.SetLineJoin(graphics.LineJoinMiter)
		page.SetMiterLimit(10)
		if len(op.Dash) > 0 {
			page.SetLineDash(op.Dash, op.DashPhase)
		}
	}

	addPath(page, tc.Path)

	switch op := tc.Op.(type) {
	case testcases.Fill:
		if op.Rule == testcases.EvenOdd {
			page.FillEvenOdd()
		} else {
			page.Fill()
		}
	case testcases.Stroke:
		page.Stroke()
	}

	return page.Close()
}

// generateScenePDF draws the overlay of a sample scene the way
// [overlay.Layer.Draw] paints it: group fills, rectangle outlines and
// delete buttons in store order, then the note markers.
func generateScenePDF(sc testcases.Scene, pdfPath string) error {
	store, err := sc.Store()
	if err != nil {
		return err
	}
	scene := overlay.NewSynchronizer(store, nil).Build(sc.Page)

	page, err := newPage(pdfPath, sc.Width, sc.Height, color.DeviceGray(1))
	if err != nil {
		return err
	}
	page.SetLineJoin(graphics.LineJoinMiter)
	page.SetLineCap(graphics.LineCapButt)

	for i := range scene.Groups {
		g := &scene.Groups[i]
		sz := g.Size()

		page.PushGraphicsState()
		page.Transform(matrix.Matrix{1, 0, 0, 1, g.Frame.LLx, g.Frame.LLy})

		if fill := g.CurrentFill(); fill != "" {
			if err := setColor(page, fill); err != nil {
				return err
			}
			addPath(page, g.Shape())
			page.Fill()
		}
		if g.Stroke != "" && g.StrokeWidth > 0 {
			if err := setColor(page, g.Stroke); err != nil {
				return err
			}
			page.SetLineWidth(g.StrokeWidth)
			addPath(page, geometry.RectPath(rect.Rect{URx: sz.X, URy: sz.Y}))
			page.Stroke()
		}

		c, r := g.DeleteButton()
		circle := geometry.Circle(c, r)
		if err := setColor(page, overlay.DeleteFill); err != nil {
			return err
		}
		addPath(page, circle)
		page.Fill()

		if err := setColor(page, overlay.DeleteGlyph); err != nil {
			return err
		}
		page.SetLineWidth(overlay.DeleteRingWidth)
		addPath(page, circle)
		page.Stroke()
		page.SetLineWidth(overlay.DeleteCrossWidth)
		for _, l := range g.DeleteCross() {
			page.MoveTo(l[0].X, l[0].Y)
			page.LineTo(l[1].X, l[1].Y)
		}
		page.Stroke()

		page.PopGraphicsState()
	}

	for i := range scene.Markers {
		m := &scene.Markers[i]
		if err := setColor(page, m.Color); err != nil {
			return err
		}
		page.Rectangle(m.At.X, m.At.Y, overlay.MarkerSize, overlay.MarkerSize)
		page.Fill()
	}

	return page.Close()
}

// setColor selects c for both filling and stroking.  The opacity is set
// through an extended graphics state.
func setColor(page *document.Page, c string) error {
	col, err := palette.Parse(c)
	if err != nil {
		return err
	}
	rgb := color.DeviceRGB{float64(col.R) / 255, float64(col.G) / 255, float64(col.B) / 255}
	page.SetFillColor(rgb)
	page.SetStrokeColor(rgb)
	page.SetExtGState(&extgstate.ExtGState{
		Set:         graphics.StateFillAlpha | graphics.StateStrokeAlpha,
		FillAlpha:   col.A,
		StrokeAlpha: col.A,
		SingleUse:   true,
	})
	return nil
}

func addPath(page *document.Page, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

func renderPNG(pdfPath, pngPath, device string) error {
	// one point per pixel, 4x anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE="+device,
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
