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

// Package curated is a helper package for the plain Go language error type.
// Curated errors carry the pattern they were created with so that callers can
// ask whether an error, or any error wrapped inside it, was created with a
// specific pattern.
//
// Patterns are best stored as constants in the package that creates them:
//
//	const DeadlineMissed = "video: scanline %d: deadline missed by %d cycles"
//
//	err := curated.Errorf(DeadlineMissed, line, overrun)
//	...
//	if curated.Is(err, video.DeadlineMissed) {
//		...
//	}
//
// Error messages are normalised so that adjacent duplicate parts of a chain
// are collapsed. For example "timing: timing: bad delay" becomes "timing: bad
// delay".
package curated
