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

// Package framesync synchronises the main context with the end of the active
// display. Updates to the screen buffer made straight after WaitEndDisplay()
// returns are made during vertical blanking and so are not seen half drawn.
package framesync

// Source is implemented by the video generator, or anything that wraps it.
type Source interface {
	// the low byte of the frame counter. the counter is incremented at the
	// end of each active window
	FrameCount() uint8

	// block until the next interrupt has been serviced
	WaitForInterrupt()
}

// WaitEndDisplay blocks until the frame counter has changed n times. The
// counter is polled once after every interrupt. Returns immediately if n is
// zero.
//
// There is no timeout. If the source stops producing interrupts the function
// never returns.
func WaitEndDisplay(src Source, n int) {
	last := src.FrameCount()
	for n > 0 {
		src.WaitForInterrupt()
		if f := src.FrameCount(); f != last {
			last = f
			n--
		}
	}
}
