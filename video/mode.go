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

import (
	"strings"

	"github.com/jetsetilly/tiletv/curated"
)

// Mode selects the kernel used to render the active window.
type Mode int

// List of valid Mode values.
const (
	// six pixels per tile, two cycles per pixel, ROM tiles only
	SixPixelTile Mode = iota

	// eight pixels per tile, four cycles per pixel, ROM tiles only
	EightPixelTile

	// as EightPixelTile but the top bit of the tile index selects a RAM tile
	EightPixelTileWithRAM

	// as EightPixelTileWithRAM with horizontal fine scroll
	EightPixelTileWithRAMAndScroll
)

// ModeList is the list of mode names in the form accepted by ParseMode().
var ModeList = []string{"six", "eight", "ramtiles", "ramtiles+scroll"}

func (m Mode) String() string {
	switch m {
	case SixPixelTile:
		return "SixPixelTile"
	case EightPixelTile:
		return "EightPixelTile"
	case EightPixelTileWithRAM:
		return "EightPixelTileWithRAM"
	case EightPixelTileWithRAMAndScroll:
		return "EightPixelTileWithRAMAndScroll"
	}
	return "unknown mode"
}

// Name returns the short name of the mode as used on the command line and in
// the preferences file.
func (m Mode) Name() string {
	if m < 0 || int(m) >= len(ModeList) {
		return ""
	}
	return ModeList[m]
}

// RAMTiles returns true if the mode supports tiles in RAM.
func (m Mode) RAMTiles() bool {
	return m == EightPixelTileWithRAM || m == EightPixelTileWithRAMAndScroll
}

// HScroll returns true if the mode supports horizontal fine scroll.
func (m Mode) HScroll() bool {
	return m == EightPixelTileWithRAMAndScroll
}

// Sentinel errors.
const (
	UnknownMode = "video: unknown mode (%s)"
)

// ParseMode converts a mode name to a Mode. The name can be either the short
// name or the result of String().
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range ModeList {
		m := Mode(i)
		if s == n || s == strings.ToLower(m.String()) {
			return m, nil
		}
	}
	return SixPixelTile, curated.Errorf(UnknownMode, s)
}
