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
	"fmt"

	"github.com/jetsetilly/tiletv/curated"
)

// Controls are the runtime display controls. They are written by the main
// context with the Set*() functions of the Video type and read by the
// interrupt.
type Controls struct {
	// high byte of the ROM font and RAM tile addresses
	RomTileHigh uint8
	RAMTileHigh uint8

	// horizontal fine scroll and the mask for the first tile of the line
	HFineScroll     uint8
	HFineScrollMask uint8

	VFineScroll uint8

	HPosOffset int8
	VPosOffset int8
}

func (c Controls) String() string {
	return fmt.Sprintf("rom=%02x00 ram=%02x00 h=%d (%02x) v=%d hpos=%d vpos=%d",
		c.RomTileHigh, c.RAMTileHigh, c.HFineScroll, c.HFineScrollMask, c.VFineScroll,
		c.HPosOffset, c.VPosOffset)
}

// Sentinel errors.
const (
	BadAlignment = "video: %s address %#04x is not on a 256 byte boundary"
)

// update the controls. the new value replaces the old value in a single
// store so the interrupt never sees a partially updated set of controls
func (vid *Video) update(f func(c *Controls)) {
	for {
		old := vid.controls.Load()
		c := *old
		f(&c)
		if vid.controls.CompareAndSwap(old, &c) {
			return
		}
	}
}

// Controls returns a copy of the most recently written controls. These are
// not necessarily the controls in use by the interrupt.
func (vid *Video) Controls() Controls {
	return *vid.controls.Load()
}

// SetFont sets the address of the ROM font. The font must be on a 256 byte
// boundary in program memory.
func (vid *Video) SetFont(addr uint16) error {
	if addr&0xff != 0 {
		return curated.Errorf(BadAlignment, "font", addr)
	}
	vid.update(func(c *Controls) {
		c.RomTileHigh = uint8(addr >> 8)
	})
	return nil
}

// SetRAMTiles sets the address of the RAM tiles. The tiles must be on a 256
// byte boundary in data memory.
func (vid *Video) SetRAMTiles(addr uint16) error {
	if addr&0xff != 0 {
		return curated.Errorf(BadAlignment, "RAM tiles", addr)
	}
	vid.update(func(c *Controls) {
		c.RAMTileHigh = uint8(addr >> 8)
	})
	return nil
}

// SetHScroll sets the horizontal fine scroll. Only the lower three bits of
// the value are used.
func (vid *Video) SetHScroll(h uint8) {
	h &= 0x07
	m := vid.geom.PixelMask(h)
	vid.update(func(c *Controls) {
		c.HFineScroll = h
		c.HFineScrollMask = m
	})
}

// SetVScroll sets the vertical fine scroll. Only the lower three bits of the
// value are used and the result is limited to the last line of a character.
// The value takes effect at the start of the next frame.
func (vid *Video) SetVScroll(v uint8) {
	v = min(v&0x07, uint8(vid.geom.CharHeight-1))
	vid.update(func(c *Controls) {
		c.VFineScroll = v
	})
}

// SetHPos sets the dynamic horizontal position offset, in cycles. Has no
// effect unless the geometry was created with HPosOffset. The value is
// limited to the range given by HPosRange().
func (vid *Video) SetHPos(h int8) {
	h = min(max(h, vid.hposMin), vid.hposMax)
	vid.update(func(c *Controls) {
		c.HPosOffset = h
	})
}

// SetVPos sets the dynamic vertical position offset, in scanlines. Has no
// effect unless the geometry was created with VPosOffset.
func (vid *Video) SetVPos(v int8) {
	vid.update(func(c *Controls) {
		c.VPosOffset = v
	})
}
