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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/tiletv/television/limiter"
	"github.com/jetsetilly/tiletv/test"
)

// tolerance of measurement
const measurementTolerance = 0.05
const numFramesPerTest = 2

func TestLimit(t *testing.T) {
	lmtr := limiter.NewLimiter(60)

	for _, hz := range []float32{60, 50} {
		lmtr.SetLimit(hz)
		for range int(hz * numFramesPerTest) {
			lmtr.CheckFrame()
			lmtr.MeasureActual()
		}
		rate := lmtr.Measured.Load().(float32)
		test.ExpectSuccess(t, rate >= hz*(1.0-measurementTolerance) && rate <= hz*(1.0+measurementTolerance), hz)
	}
}

func TestInactive(t *testing.T) {
	lmtr := limiter.NewLimiter(1)
	lmtr.Active.Store(false)

	start := time.Now()
	for range 10 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
}

func TestNudge(t *testing.T) {
	lmtr := limiter.NewLimiter(1)
	lmtr.Nudge.Store(10)

	start := time.Now()
	for range 10 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
	test.ExpectEquality(t, lmtr.Nudge.Load(), int32(0))
}
