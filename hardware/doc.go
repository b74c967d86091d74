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

// Package hardware is the base package for the simulation of the video
// generator's host microcontroller. The Machine type ties together the CPU,
// memory, the scanline timer, the two output lines and the video generator.
//
// The Machine is advanced one timer period at a time. Each period begins with
// the timer wrapping to BOTTOM, which starts the sync pulse, and continues
// with the overflow interrupt. The interrupt is entered after a fixed latency
// plus a small random jitter, modelling the instruction that was executing in
// the main context when the interrupt was raised.
//
// The Machine can be run on its own goroutine with Run(), in which case the
// goroutine acts as the interrupt context. The main context synchronises with
// it through Critical() and WaitForInterrupt(). Alternatively the main context
// can advance the Machine itself with Step() or through Lockstep().
package hardware
