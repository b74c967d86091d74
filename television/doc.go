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

// Package television reconstructs the picture from the sync and video lines
// of the generator. It listens to both lines and paints a greyscale image of
// each frame, the way a monitor locks on to a composite signal:
//
//   - the falling edge of a sync pulse starts a new scanline
//   - a sync pulse longer than half a scanline is a vertical sync pulse
//   - the first vertical sync pulse after a short pulse starts a new frame
//
// The television does not present the image itself. Instances of
// PixelRenderer and FrameTrigger are added to the television to do that.
// Renderers are called from the goroutine that writes to the lines, which
// when the machine is being run is the interrupt context.
//
// Frames can be paced to the refresh rate of the television specification
// with SetFPSCap(). The pacing is performed by the limiter package.
package television
