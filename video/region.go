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

package video

// Region is the vertical region of the frame that a scanline belongs to.
//
// Over the course of a frame the region only ever moves forward through the
// list below. After PostActive the next region is always PreSync.
type Region int

// List of valid Region values.
const (
	// the scanline on which the line counter wraps and the vertical sync
	// pulse width is selected
	PreSync Region = iota

	// scanlines carrying a vertical sync pulse
	Sync

	// blank scanlines before the active window
	PostSync

	// scanlines rendered by the display kernel
	Active

	// blank scanlines after the active window
	PostActive
)

func (r Region) String() string {
	switch r {
	case PreSync:
		return "PreSync"
	case Sync:
		return "Sync"
	case PostSync:
		return "PostSync"
	case Active:
		return "Active"
	case PostActive:
		return "PostActive"
	}
	return "unknown region"
}
