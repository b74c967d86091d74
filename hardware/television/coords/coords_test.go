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

package coords_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/hardware/television/coords"
	"github.com/jetsetilly/tiletv/test"
)

func TestComparison(t *testing.T) {
	a := coords.TelevisionCoords{Frame: 1, Scanline: 10, Cycle: 100}
	b := coords.TelevisionCoords{Frame: 1, Scanline: 10, Cycle: 101}
	c := coords.TelevisionCoords{Frame: 2, Scanline: 0, Cycle: 0}

	test.ExpectSuccess(t, coords.Equal(a, a))
	test.ExpectFailure(t, coords.Equal(a, b))
	test.ExpectSuccess(t, coords.GreaterThan(b, a))
	test.ExpectSuccess(t, coords.GreaterThan(c, b))
	test.ExpectFailure(t, coords.GreaterThan(a, a))
}

func TestSum(t *testing.T) {
	a := coords.TelevisionCoords{Frame: 1, Scanline: 2, Cycle: 3}
	test.ExpectEquality(t, coords.Sum(a, 263, 1016), int64((263+2)*1016+3))
}
