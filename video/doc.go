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

// Package video is the scanline video generator. It is driven by the
// Interrupt() function, which is called once per scanline by the timer
// overflow interrupt.
//
// Outside of the active window the interrupt runs the inactive line routine.
// This advances the scanline counter, selects the width of the sync pulse
// for the next scanline and, at the start of the active window, performs the
// mode setup. The mode setup hands the interrupt over to the kernel for the
// selected Mode. The kernel is a cycle counted program run on the CPU which
// writes the pixels for one scanline to the video port. At the end of the
// active window the kernel hands back to the inactive line routine and the
// frame counter is incremented.
//
// The handlers are held in a dispatch table indexed by the Handler type. The
// current handler is never invalid.
//
// Display controls are written by the main context with the Set*() functions
// and read by the interrupt. Each write replaces the complete set of controls
// in one atomic store so the interrupt never sees a partial update. If the
// geometry specifies LatchAtVBlank the controls are only sampled by the mode
// setup, otherwise they are sampled at the start of every interrupt.
//
// The scanline state is owned by the interrupt. Functions that read it, such
// as State(), must not be called while the interrupt may be running.
package video
