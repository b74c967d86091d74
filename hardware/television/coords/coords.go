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

// Package coords represents and can work with television coordinates.
//
// Coordinates are a measurement of time from the point of view of the
// television: the frame number, the scanline within the frame and the CPU
// cycle within the scanline. They are used to seed the interrupt jitter and to
// report where timing violations happen.
package coords

import "fmt"

// TelevisionCoords represents the state of the generator at any moment in
// time. Scanline is the value of the scanline counter, which runs from zero to
// the number of lines in the frame inclusive.
type TelevisionCoords struct {
	Frame    int
	Scanline int
	Cycle    int
}

func (c TelevisionCoords) String() string {
	return fmt.Sprintf("Frame: %d  Scanline: %03d  Cycle: %04d", c.Frame, c.Scanline, c.Cycle)
}

// Equal compares two instances of TelevisionCoords and returns true if both
// are equal.
func Equal(A, B TelevisionCoords) bool {
	return A == B
}

// GreaterThan returns true if A is later than B.
func GreaterThan(A, B TelevisionCoords) bool {
	if A.Frame != B.Frame {
		return A.Frame > B.Frame
	}
	if A.Scanline != B.Scanline {
		return A.Scanline > B.Scanline
	}
	return A.Cycle > B.Cycle
}

// Sum returns the number of cycles represented by the coordinates given the
// number of scanlines in a frame and the number of cycles in a scanline.
func Sum(A TelevisionCoords, linesFrame int, cyclesLine int) int64 {
	return (int64(A.Frame)*int64(linesFrame)+int64(A.Scanline))*int64(cyclesLine) + int64(A.Cycle)
}
