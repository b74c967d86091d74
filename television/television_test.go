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

package television_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/chips"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/test"
	"github.com/jetsetilly/tiletv/video"
)

type frames struct {
	f []television.Frame
}

func (r *frames) NewFrame(f television.Frame) error {
	r.f = append(r.f, f)
	return nil
}

// pulse writes a sync pulse to the television at the start of the scanline
func pulse(tv *television.Television, start int64, width int64) {
	tv.Signal(signal.Event{Line: signal.Sync, Cycle: start, Level: false})
	tv.Signal(signal.Event{Line: signal.Sync, Cycle: start + width, Level: true})
}

func TestReconstruction(t *testing.T) {
	spec := specification.SpecNTSC
	period := int64(spec.CyclesScanline()) + 1

	tv, err := television.NewTelevision(spec, 2)
	test.DemandSuccess(t, err)

	w, h := tv.Size()
	test.ExpectEquality(t, w, 508)
	test.ExpectEquality(t, h, spec.LinesFrame+1)

	r := &frames{}
	tv.AddFrameTrigger(r)

	// two frames of 20 scanlines. the first three scanlines of each frame
	// have vertical sync pulses
	cycle := int64(0)
	for range 2 {
		for l := range 20 {
			if l < 3 {
				pulse(tv, cycle, 940)
			} else {
				pulse(tv, cycle, 74)
			}
			if l == 10 {
				tv.Signal(signal.Event{Line: signal.Video, Cycle: cycle + 200, Level: true})
				tv.Signal(signal.Event{Line: signal.Video, Cycle: cycle + 300, Level: false})
			}
			cycle += period
		}
	}

	// the second frame is sent by the start of the third
	pulse(tv, cycle, 940)

	test.DemandEquality(t, len(r.f), 2)
	test.ExpectEquality(t, r.f[0].Lines, 20)
	test.ExpectSuccess(t, !r.f[0].Stable)
	test.ExpectSuccess(t, r.f[1].Stable)

	for _, f := range r.f {
		test.ExpectEquality(t, f.Visible.Min.X, 100)
		test.ExpectEquality(t, f.Visible.Max.X, 150)
		test.ExpectEquality(t, f.Visible.Min.Y, 10)
		test.ExpectEquality(t, f.Visible.Max.Y, 11)
		test.ExpectEquality(t, f.Image.GrayAt(99, 10).Y, television.Black)
		test.ExpectEquality(t, f.Image.GrayAt(100, 10).Y, television.White)
		test.ExpectEquality(t, f.Image.GrayAt(149, 10).Y, television.White)
		test.ExpectEquality(t, f.Image.GrayAt(150, 10).Y, television.Black)
	}
}

func TestNoPictureBeforeVSync(t *testing.T) {
	tv, err := television.NewTelevision(specification.SpecPAL, 4)
	test.DemandSuccess(t, err)

	r := &frames{}
	tv.AddFrameTrigger(r)

	// short pulses only. the television has not locked on to the signal
	for l := range 400 {
		pulse(tv, int64(l)*1024, 74)
		tv.Signal(signal.Event{Line: signal.Video, Cycle: int64(l)*1024 + 300, Level: true})
		tv.Signal(signal.Event{Line: signal.Video, Cycle: int64(l)*1024 + 400, Level: false})
	}
	test.ExpectEquality(t, len(r.f), 0)

	// the first vertical sync starts the first frame. it is sent at the
	// second
	pulse(tv, 400*1024, 940)
	test.ExpectEquality(t, len(r.f), 0)
	pulse(tv, 401*1024, 940)
	test.ExpectEquality(t, len(r.f), 0)
	pulse(tv, 402*1024, 74)
	pulse(tv, 403*1024, 940)
	test.DemandEquality(t, len(r.f), 1)
	test.ExpectEquality(t, r.f[0].Lines, 3)
	test.ExpectSuccess(t, r.f[0].Visible.Empty())
}

func TestBadScale(t *testing.T) {
	_, err := television.NewTelevision(specification.SpecNTSC, 0)
	test.ExpectFailure(t, err)
}

func TestMachine(t *testing.T) {
	chip, err := chips.Lookup("1284", false)
	test.DemandSuccess(t, err)

	g, err := video.NewGeometry(video.Layout{
		Spec:       specification.SpecNTSC,
		Mode:       video.EightPixelTileWithRAM,
		Columns:    20,
		Rows:       20,
		FontChars:  128,
		FontHeight: 8,
		RAMTiles:   16,
		VideoBit:   7,
		HPosOrigin: -24,
	})
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(chip, g, hardware.DefaultInterrupts)
	test.DemandSuccess(t, err)

	data, err := fonts.Builtin().Layout(128, false)
	test.DemandSuccess(t, err)
	_, err = m.LoadFont(data)
	test.DemandSuccess(t, err)

	// a solid block in the top left corner of the screen
	m.Critical(func(mem *memory.Memory) {
		for i := range g.ScreenBytes() {
			mem.Write(m.Screen+uint16(i), ' ')
		}
		mem.Write(m.Screen, 0x80)
		for l := range g.FontHeight {
			mem.Write(m.RAMTiles+uint16(fonts.Offset(128, 0, l)), 0xff)
		}
	})

	tv, err := television.NewTelevision(g.Spec, 2)
	test.DemandSuccess(t, err)
	m.SyncLine.AddListener(tv)
	m.VideoLine.AddListener(tv)

	r := &frames{}
	tv.AddFrameTrigger(r)

	test.DemandSuccess(t, m.RunForFrameCount(3))
	test.DemandEquality(t, len(r.f), 2)

	f := r.f[1]
	test.ExpectEquality(t, f.Lines, g.Spec.LinesFrame+1)
	test.ExpectSuccess(t, f.Stable)

	// the block is eight pixels of four cycles on each of the eight lines
	// of the first row
	start := g.StartRender(0)
	test.ExpectEquality(t, f.Visible.Min.Y, start+1)
	test.ExpectEquality(t, f.Visible.Max.Y, start+1+g.FontHeight)
	test.ExpectEquality(t, f.Visible.Dx(), 16)
	test.ExpectSuccess(t, f.Visible.Min.X*2 > int(g.HSync))
}
