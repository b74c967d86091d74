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

// State is a snapshot of the scanline state.
type State struct {
	Line      int
	Frames    uint32
	Region    Region
	TileLine  int
	ScreenPtr uint16
	Handler   Handler

	// the controls in use by the interrupt
	Controls Controls
}

// State returns a snapshot of the scanline state. The region is the region
// of the most recent interrupt.
func (vid *Video) State() State {
	return State{
		Line:      int(vid.line),
		Frames:    vid.frames.Load(),
		Region:    vid.region,
		TileLine:  int(vid.tileLine),
		ScreenPtr: vid.screenPtr,
		Handler:   vid.handler,
		Controls:  vid.live,
	}
}
