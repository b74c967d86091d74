// This file is part of TileTV.
//
// TileTV is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TileTV is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TileTV.  If not, see <https://www.gnu.org/licenses/>.

package capture_test

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/tiletv/capture"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/test"
	"golang.org/x/image/bmp"
)

func frame(num int) television.Frame {
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	img.Pix[3*img.Stride+5] = television.White
	return television.Frame{Num: num, Image: img, Lines: 8}
}

func TestArm(t *testing.T) {
	dir := t.TempDir()
	c, err := capture.NewCapture(dir, "test")
	test.DemandSuccess(t, err)

	// nothing is saved until the capture is armed
	test.ExpectSuccess(t, c.NewFrame(frame(0)))
	test.ExpectEquality(t, len(c.Saved()), 0)

	c.Arm(2)
	for i := range 4 {
		test.ExpectSuccess(t, c.NewFrame(frame(i+1)))
	}
	test.ExpectEquality(t, c.Pending(), 0)

	saved := c.Saved()
	test.DemandEquality(t, len(saved), 2)
	test.ExpectEquality(t, filepath.Base(saved[0]), "test_0001.bmp")
	test.ExpectEquality(t, filepath.Base(saved[1]), "test_0002.bmp")

	f, err := os.Open(saved[0])
	test.DemandSuccess(t, err)
	defer f.Close()

	img, err := bmp.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 16)
	test.ExpectEquality(t, img.Bounds().Dy(), 8)

	r, _, _, _ := img.At(5, 3).RGBA()
	test.ExpectEquality(t, r, uint32(0xffff))
	r, _, _, _ = img.At(6, 3).RGBA()
	test.ExpectEquality(t, r, uint32(0))
}

func TestCrop(t *testing.T) {
	c, err := capture.NewCapture(t.TempDir(), "crop")
	test.DemandSuccess(t, err)
	c.Crop = image.Rect(4, 2, 8, 6)

	test.ExpectFailure(t, c.Save())
	test.ExpectSuccess(t, c.NewFrame(frame(7)))
	test.DemandSuccess(t, c.Save())

	// the same frame cannot be saved twice
	err = c.Save()
	test.ExpectSuccess(t, curated.Is(err, capture.FileExists))

	f, err := os.Open(c.Saved()[0])
	test.DemandSuccess(t, err)
	defer f.Close()

	img, err := bmp.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 4)
	test.ExpectEquality(t, img.Bounds().Dy(), 4)
}
