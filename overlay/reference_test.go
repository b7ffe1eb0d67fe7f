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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/markup/testcases"
)

const referenceDir = "testdata/reference"

// TestSceneReferences compares the rasterised sample scenes with the
// images written by testcases/genpdf.
func TestSceneReferences(t *testing.T) {
	if _, err := os.Stat(referenceDir); errors.Is(err, fs.ErrNotExist) {
		t.Skip("reference images not found, run 'go run ./testcases/genpdf' first")
	}

	for _, sc := range testcases.Scenes {
		t.Run(sc.Name, func(t *testing.T) {
			want, err := loadPNG(filepath.Join(referenceDir, "scene_"+sc.Name+".png"))
			if err != nil {
				t.Fatal(err)
			}
			if b := want.Bounds(); b.Dx() != sc.Width || b.Dy() != sc.Height {
				t.Fatalf("reference is %dx%d, want %dx%d", b.Dx(), b.Dy(), sc.Width, sc.Height)
			}

			store, err := sc.Store()
			if err != nil {
				t.Fatal(err)
			}
			layer := NewLayer(sc.Page)
			NewSynchronizer(store, nil).Sync(sc.Page, layer)
			got := newWhite(sc.Width, sc.Height)
			layer.Draw(got, 1)

			if err := compareColors(want, got); err != nil {
				t.Error(err)
			}
		})
	}
}

func loadPNG(name string) (img image.Image, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Decode(f)
}

// compareColors accepts an image if 90% of the pixels differ by at most
// 2 in every channel and 99% by less than 96.  Only edge pixels are
// expected to differ, because anti-aliasing is done differently.
func compareColors(want image.Image, got *image.RGBA) error {
	b := got.Bounds()
	var diffs []int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r1, g1, b1, _ := want.At(x, y).RGBA()
			c := got.RGBAAt(x, y)
			d := max(
				absDiff(int(r1>>8), int(c.R)),
				absDiff(int(g1>>8), int(c.G)),
				absDiff(int(b1>>8), int(c.B)))
			diffs = append(diffs, d)
		}
	}
	slices.Sort(diffs)

	n := len(diffs)
	p90 := diffs[int(math.Round(0.90*float64(n-1)))]
	p99 := diffs[int(math.Round(0.99*float64(n-1)))]
	if p90 > 2 || p99 >= 96 {
		return fmt.Errorf("90th percentile diff %d (want <=2), 99th percentile diff %d (want <96)", p90, p99)
	}
	return nil
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
