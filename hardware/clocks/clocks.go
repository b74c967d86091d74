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

// Package clocks defines the speed of the main clock of the microcontroller
// and helpers for converting between time and clock cycles.
//
// The video timing is derived entirely from the CPU clock. The supported
// frequency is 16MHz, which is what every board in the chip table runs at.
package clocks

// MHz is the CPU clock frequency in megahertz.
const MHz = 16

// Cycles returns the number of cycles for a duration in microseconds, minus
// one. This is the value that must be written to a timer TOP or compare
// register to achieve the duration. The result is truncated.
func Cycles(us float64) int {
	return int(us*MHz - 1)
}

// Microseconds returns the duration of a number of cycles.
func Microseconds(cycles int64) float64 {
	return float64(cycles) / MHz
}
