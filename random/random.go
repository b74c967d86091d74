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

// Package random provides random numbers that are sensitive to time within the
// simulation. Two simulations with the same seed produce the same sequence of
// numbers at the same coordinates, which makes interrupt jitter reproducible.
package random

import (
	"math/rand"
	"time"

	"github.com/jetsetilly/tiletv/hardware/television/coords"
)

// the base seed for all random numbers
var baseSeed = int64(time.Now().Nanosecond())

// Coords is implemented by anything that can report the current television
// coordinates.
type Coords interface {
	GetCoords() coords.TelevisionCoords
}

// Random is a random number generator that is seeded by the current
// television coordinates.
type Random struct {
	coords Coords

	// use zero seed rather than the random base seed. this is useful for
	// instances where random numbers must be predictable
	ZeroSeed bool

	// reseeded on every call
	r *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(c Coords) *Random {
	return &Random{
		coords: c,
		r:      rand.New(rand.NewSource(0)),
	}
}

// translate television coordinates into a single value. the multipliers are
// large enough that neighbouring coordinates never produce the same seed
func coordsSum(c coords.TelevisionCoords) int64 {
	return int64(c.Frame)<<24 | int64(c.Scanline)<<12 | int64(c.Cycle)
}

func (rnd *Random) rand() *rand.Rand {
	seed := coordsSum(rnd.coords.GetCoords())
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	rnd.r.Seed(seed)
	return rnd.r
}

// Intn returns a random number in the range 0 to n-1. It panics if n <= 0.
// Not safe for concurrent use.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}
