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

package framesync_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/test"
)

// counter increments the frame count every period interrupts
type counter struct {
	period     int
	interrupts int
	frames     int
}

func (c *counter) FrameCount() uint8 {
	return uint8(c.frames)
}

func (c *counter) WaitForInterrupt() {
	c.interrupts++
	if c.interrupts%c.period == 0 {
		c.frames++
	}
}

func TestWaitEndDisplay(t *testing.T) {
	for n := 1; n <= 5; n++ {
		c := &counter{period: 263}
		framesync.WaitEndDisplay(c, n)
		test.ExpectEquality(t, c.frames, n, n)
		test.ExpectEquality(t, c.interrupts, n*263, n)
	}
}

func TestWaitEndDisplayMidFrame(t *testing.T) {
	// starting part way through a frame the first increment arrives early
	// but is still counted as a full wait
	c := &counter{period: 100, interrupts: 60}
	framesync.WaitEndDisplay(c, 2)
	test.ExpectEquality(t, c.frames, 2)
	test.ExpectEquality(t, c.interrupts, 200)
}

func TestWaitEndDisplayWrap(t *testing.T) {
	// the low byte of the counter wraps but every change is counted
	c := &counter{period: 1, frames: 254}
	framesync.WaitEndDisplay(c, 4)
	test.ExpectEquality(t, c.frames, 258)
	test.ExpectEquality(t, c.FrameCount(), uint8(2))
}

func TestWaitEndDisplayZero(t *testing.T) {
	c := &counter{period: 1}
	framesync.WaitEndDisplay(c, 0)
	test.ExpectEquality(t, c.interrupts, 0)
}
