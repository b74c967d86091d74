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

// Package specification contains the timing definitions of the PAL and NTSC
// television standards as produced by the video generator.
//
// The generator does not produce interlaced video. Every frame has the same
// number of scanlines and the sync pulses are simplified: a long pulse on each
// of the vertical sync lines and a short pulse on every other line.
package specification

import (
	"strings"

	"github.com/jetsetilly/tiletv/hardware/clocks"
)

// SpecList is the list of specifications that the generator supports.
var SpecList = []string{"NTSC", "PAL"}

// Spec is used to define the two television specifications.
type Spec struct {
	ID string

	// duration of each scanline and the time from the start of the sync pulse
	// to the earliest point the picture can be shown, in microseconds
	TimeScanline    float64
	TimeOutputStart float64

	// the number of scanlines in the frame
	LinesFrame int

	// the number of scanlines with a vertical sync pulse
	LinesVSync int

	// number of scanlines considered safe for picture information
	LinesDisplay int

	// the active window is biased by this number of scanlines from the
	// vertical centre of the display area
	VerticalBias int

	FramesPerSecond float32
}

// LineMid is the scanline at the vertical centre of the display area.
func (spec Spec) LineMid() int {
	return (spec.LinesFrame-spec.LinesDisplay)/2 + spec.LinesDisplay/2
}

// CyclesScanline is the value for the timer TOP register. The period of the
// timer is one greater than this.
func (spec Spec) CyclesScanline() int {
	return clocks.Cycles(spec.TimeScanline)
}

// CyclesOutputStart is the number of cycles from the start of the scanline to
// the earliest point picture information can be output.
func (spec Spec) CyclesOutputStart() int {
	return clocks.Cycles(spec.TimeOutputStart)
}

// Sync pulse widths are the same for both specifications.
const (
	TimeHSync = 4.7
	TimeVSync = 58.85
)

// CyclesHSync is the value of the compare register for a horizontal sync
// pulse.
func CyclesHSync() int {
	return clocks.Cycles(TimeHSync)
}

// CyclesVSync is the value of the compare register for a vertical sync pulse.
func CyclesVSync() int {
	return clocks.Cycles(TimeVSync)
}

// SpecNTSC is the specification for NTSC television types.
var SpecNTSC = Spec{
	ID:              "NTSC",
	TimeScanline:    63.55,
	TimeOutputStart: 12,
	LinesFrame:      262,
	LinesVSync:      3,
	LinesDisplay:    216,
	VerticalBias:    8,
	FramesPerSecond: 60,
}

// SpecPAL is the specification for PAL television types.
var SpecPAL = Spec{
	ID:              "PAL",
	TimeScanline:    64,
	TimeOutputStart: 12.5,
	LinesFrame:      312,
	LinesVSync:      7,
	LinesDisplay:    260,
	VerticalBias:    0,
	FramesPerSecond: 50,
}

// SearchSpec looks for a specification by ID. The search is case insensitive.
// Returns false if no specification with that ID exists.
func SearchSpec(id string) (Spec, bool) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "NTSC":
		return SpecNTSC, true
	case "PAL":
		return SpecPAL, true
	}
	return Spec{}, false
}
