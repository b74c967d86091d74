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

package termtv

import (
	"image"
	"strings"

	"github.com/jetsetilly/tiletv/television"
)

// each character cell shows two pixels, one above the other
var cells = [4]string{" ", "▀", "▄", "█"}

// Render the area of the image into rows of text no wider than cols and no
// taller than rows. A half cell is lit if any pixel it covers is white.
func Render(img *image.Gray, area image.Rectangle, cols, rows int) []string {
	area = area.Intersect(img.Bounds())
	if area.Empty() || cols < 1 || rows < 1 {
		return nil
	}

	// pixels per half cell. the same scale is used in both directions so
	// that the picture keeps its shape
	sx := (area.Dx() + cols - 1) / cols
	sy := (area.Dy() + rows*2 - 1) / (rows * 2)
	s := max(sx, sy, 1)

	lit := func(x, y int) bool {
		r := image.Rect(x, y, x+s, y+s).Intersect(area)
		for py := r.Min.Y; py < r.Max.Y; py++ {
			row := img.Pix[(py-img.Rect.Min.Y)*img.Stride:]
			for px := r.Min.X; px < r.Max.X; px++ {
				if row[px-img.Rect.Min.X] == television.White {
					return true
				}
			}
		}
		return false
	}

	var out []string
	for y := area.Min.Y; y < area.Max.Y; y += s * 2 {
		b := strings.Builder{}
		for x := area.Min.X; x < area.Max.X; x += s {
			c := 0
			if lit(x, y) {
				c |= 1
			}
			if lit(x, y+s) {
				c |= 2
			}
			b.WriteString(cells[c])
		}
		out = append(out, b.String())
	}

	return out
}
