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

package crunch

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
)

// Mapping specifies how a colour is reduced to a luminance value.
type Mapping int

// List of valid Mapping values.
const (
	Gamma Mapping = iota
	Linear
	Identity
)

func (m Mapping) String() string {
	switch m {
	case Gamma:
		return "gamma"
	case Linear:
		return "linear"
	case Identity:
		return "identity"
	}
	return "unknown mapping"
}

// ParseMapping returns the Mapping with the name returned by String().
// Case insensitive.
func ParseMapping(s string) (Mapping, error) {
	for _, m := range []Mapping{Gamma, Linear, Identity} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return Gamma, curated.Errorf(BadOptions, fmt.Sprintf("unknown mapping (%s)", s))
}

// sRGB luminance coefficients
const (
	rY = 0.212655
	gY = 0.715158
	bY = 0.072187
)

// inverse of the sRGB transfer function
func linearise(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// sRGB transfer function
func compress(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// Luminance returns the brightness of the colour in the range 0.0 to 1.0.
func Luminance(c color.Color, m Mapping) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)

	var l float64
	switch m {
	case Gamma:
		l = compress(rY*linearise(n.R) + gY*linearise(n.G) + bY*linearise(n.B))
	case Linear:
		l = rY*float64(n.R)/255.0 + gY*float64(n.G)/255.0 + bY*float64(n.B)/255.0
	default:
		l = (float64(n.R) + float64(n.G) + float64(n.B)) / (3 * 255.0)
	}

	return min(max(l, 0.0), 1.0)
}

// luminance map of an image. the map covers the bounds of the image with
// the top-left pixel at index zero
type lumMap struct {
	width  int
	height int
	l      []float64
}

func newLumMap(img image.Image, m Mapping) *lumMap {
	b := img.Bounds()
	lm := &lumMap{
		width:  b.Dx(),
		height: b.Dy(),
		l:      make([]float64, b.Dx()*b.Dy()),
	}
	for y := range lm.height {
		for x := range lm.width {
			lm.l[y*lm.width+x] = Luminance(img.At(b.Min.X+x, b.Min.Y+y), m)
		}
	}
	return lm
}

func (lm *lumMap) add(x, y int, v float64) {
	if x < 0 || x >= lm.width || y >= lm.height {
		return
	}
	lm.l[y*lm.width+x] += v
}

// stats returns the minimum, average and maximum luminance.
func (lm *lumMap) stats() (float64, float64, float64) {
	if len(lm.l) == 0 {
		return 0, 0, 0
	}
	mn, mx, sum := 1.0, 0.0, 0.0
	for _, v := range lm.l {
		mn = min(mn, v)
		mx = max(mx, v)
		sum += v
	}
	return mn, sum / float64(len(lm.l)), mx
}
