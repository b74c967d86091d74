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
	"strings"

	"github.com/jetsetilly/tiletv/curated"
)

// Dither specifies how luminance is reduced to one bit per pixel.
type Dither int

// List of valid Dither values.
const (
	// error diffusion. odd lines are processed right to left
	FloydSteinberg Dither = iota

	// a 2x2 pattern giving five levels of coverage
	Ordered

	// plain threshold at half brightness
	Threshold
)

func (d Dither) String() string {
	switch d {
	case FloydSteinberg:
		return "floyd-steinberg"
	case Ordered:
		return "ordered"
	case Threshold:
		return "threshold"
	}
	return "unknown dither"
}

// ParseDither returns the Dither with the name returned by String(). The
// abbreviation "fs" is also accepted. Case insensitive.
func ParseDither(s string) (Dither, error) {
	if strings.EqualFold(s, "fs") {
		return FloydSteinberg, nil
	}
	for _, d := range []Dither{FloydSteinberg, Ordered, Threshold} {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return FloydSteinberg, curated.Errorf(BadOptions, fmt.Sprintf("unknown dither (%s)", s))
}

func quantise(v float64) float64 {
	if v < 0.5 {
		return 0.0
	}
	return 1.0
}

// diffuse quantisation error over the neighbouring pixels. after diffusion
// every value in the map is either 0.0 or 1.0
func (lm *lumMap) diffuse() {
	for y := range lm.height {
		dir := 1
		x := 0
		if y&1 == 1 {
			dir = -1
			x = lm.width - 1
		}

		for ; x >= 0 && x < lm.width; x += dir {
			old := lm.l[y*lm.width+x]
			q := quantise(old)
			e := old - q
			lm.l[y*lm.width+x] = q

			lm.add(x+dir, y, e*7.0/16.0)
			lm.add(x-dir, y+1, e*3.0/16.0)
			lm.add(x, y+1, e*5.0/16.0)
			lm.add(x+dir, y+1, e*1.0/16.0)
		}
	}
}

// set returns true if the pixel should be lit. the 2x2 pattern has no effect
// on values that have already been reduced to 0.0 or 1.0
func set(v float64, x, y int, d Dither) bool {
	if d == Threshold {
		return v >= 0.5
	}

	switch min(max(int(v*5.0), 0), 4) {
	case 0:
		return false
	case 1:
		return x&1 == 0 && y&1 == 0
	case 2:
		return (x&1 == 0 && y&1 == 0) || (x&1 == 1 && y&1 == 1)
	case 3:
		return !(x&1 == 1 && y&1 == 1)
	}
	return true
}
