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

package specification_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/test"
)

func TestTimings(t *testing.T) {
	ntsc := specification.SpecNTSC
	test.ExpectEquality(t, ntsc.CyclesScanline(), 1015)
	test.ExpectEquality(t, ntsc.CyclesOutputStart(), 191)
	test.ExpectEquality(t, ntsc.LineMid(), 131)

	pal := specification.SpecPAL
	test.ExpectEquality(t, pal.CyclesScanline(), 1023)
	test.ExpectEquality(t, pal.CyclesOutputStart(), 199)
	test.ExpectEquality(t, pal.LineMid(), 156)

	test.ExpectEquality(t, specification.CyclesHSync(), 74)
	test.ExpectEquality(t, specification.CyclesVSync(), 940)
}

func TestSearch(t *testing.T) {
	spec, ok := specification.SearchSpec("pal")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, spec.ID, "PAL")

	_, ok = specification.SearchSpec("SECAM")
	test.ExpectFailure(t, ok)
}
