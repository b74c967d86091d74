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

package hardware_test

import (
	"context"
	"testing"

	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/govern"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/chips"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/test"
	"github.com/jetsetilly/tiletv/video"
)

func newMachine(t *testing.T, ints hardware.Interrupts) *hardware.Machine {
	t.Helper()

	chip, err := chips.Lookup("1284", false)
	test.DemandSuccess(t, err)

	geom, err := video.NewGeometry(video.Layout{
		Spec:       specification.SpecNTSC,
		Mode:       video.EightPixelTileWithRAM,
		Columns:    22,
		Rows:       22,
		FontChars:  128,
		FontHeight: 8,
		RAMTiles:   64,
		VScroll:    true,
		VideoBit:   chip.Video.Bit,
		HPosOrigin: -24,
	})
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(chip, geom, ints)
	test.DemandSuccess(t, err)

	return m
}

type events []signal.Event

func (ev *events) Signal(e signal.Event) {
	*ev = append(*ev, e)
}

func TestNewMachine(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)
	test.ExpectInequality(t, m.Screen, 0)
	test.ExpectInequality(t, m.RAMTiles, 0)
	test.ExpectEquality(t, m.RAMTiles%256, 0)
	test.ExpectEquality(t, m.FrameCount(), uint8(0))

	chip, err := chips.Lookup("1284", false)
	test.DemandSuccess(t, err)
	_, err = hardware.NewMachine(chip, m.Geom, hardware.Interrupts{Latency: -1})
	test.ExpectFailure(t, err)
}

func TestStepSync(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)

	var sync events
	m.SyncLine.AddListener(&sync)

	test.DemandSuccess(t, m.Step())
	test.DemandEquality(t, len(sync), 2)
	test.ExpectEquality(t, sync[0].Level, false)
	test.ExpectEquality(t, sync[1].Level, true)

	w := sync[1].Cycle - sync[0].Cycle
	test.ExpectSuccess(t, w == int64(m.Geom.HSync) || w == int64(m.Geom.VSync))

	// the next period starts one timer cycle after the first
	test.DemandSuccess(t, m.Step())
	test.DemandEquality(t, len(sync), 4)
	test.ExpectEquality(t, sync[2].Cycle-sync[0].Cycle, int64(m.Geom.Top)+1)
}

func TestFrames(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)

	var video events
	m.VideoLine.AddListener(&video)

	test.DemandSuccess(t, m.RunForFrameCount(2))
	test.ExpectEquality(t, m.FrameCount(), uint8(2))
	test.ExpectEquality(t, m.Video.State().Frames, uint32(2))
	test.ExpectEquality(t, m.Overruns(), 0)
	test.ExpectSuccess(t, m.WorstCase() <= int64(m.Geom.Top)+1)
	test.ExpectSuccess(t, len(video) > 0)
}

func TestLockstep(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)

	l := m.Lockstep()
	framesync.WaitEndDisplay(l, 3)
	test.ExpectSuccess(t, l.Err())
	test.ExpectEquality(t, l.FrameCount(), uint8(3))
}

func TestOverrun(t *testing.T) {
	ints := hardware.DefaultInterrupts
	ints.Latency = 2000
	m := newMachine(t, ints)

	for i := 0; i < 10; i++ {
		test.DemandSuccess(t, m.Step())
	}
	test.ExpectEquality(t, m.Overruns(), 9)
	test.ExpectSuccess(t, m.WorstCase() > int64(m.Geom.Top))
}

func TestCriticalFromHook(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)
	m.SetHooks(video.Hooks{
		LineStart: func() {
			m.Critical(func(_ *memory.Memory) {})
		},
	})

	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	_ = m.Step()
	t.Errorf("Critical() from interrupt context did not panic")
}

func TestCriticalWhileRunning(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error)
	go func() {
		done <- m.Run(ctx, govern.AlwaysRunning)
	}()

	// the main context updates the screen between interrupts
	framesync.WaitEndDisplay(m, 1)
	m.Critical(func(mem *memory.Memory) {
		mem.Write(m.Screen, 0x41)
	})
	framesync.WaitEndDisplay(m, 1)

	var v uint8
	m.Critical(func(mem *memory.Memory) {
		v = mem.Read(m.Screen)
	})
	test.ExpectEquality(t, v, uint8(0x41))

	cancel()
	test.ExpectFailure(t, <-done)

	// no longer running so this must not block
	m.WaitForInterrupt()
}

func TestRunEnding(t *testing.T) {
	m := newMachine(t, hardware.DefaultInterrupts)

	n := 0
	err := m.Run(context.Background(), func() (govern.State, error) {
		n++
		switch {
		case n < 10:
			return govern.Paused, nil
		case n < 100:
			return govern.Running, nil
		}
		return govern.Ending, nil
	})
	test.ExpectSuccess(t, err)

	// the first period always runs and paused periods do not step
	test.ExpectEquality(t, m.Video.State().Line > 0, true)

	err = m.Run(context.Background(), func() (govern.State, error) {
		return govern.Initialising, nil
	})
	test.ExpectFailure(t, err)
}

func TestHPosLimitedByInterrupts(t *testing.T) {
	chip, err := chips.Lookup("1284", false)
	test.DemandSuccess(t, err)

	l := video.Layout{
		Spec:       specification.SpecNTSC,
		Mode:       video.EightPixelTileWithRAMAndScroll,
		Columns:    22,
		Rows:       22,
		FontChars:  128,
		FontHeight: 8,
		RAMTiles:   64,
		VideoBit:   chip.Video.Bit,
		HPosOrigin: -24,
		HPosOffset: true,
	}
	geom, err := video.NewGeometry(l)
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(chip, geom, hardware.DefaultInterrupts)
	test.DemandSuccess(t, err)
	lo, hi := m.Video.HPosRange()

	// later entry and a longer exit narrow the range
	slow := hardware.DefaultInterrupts
	slow.Latency += 10
	slow.Exit += 10
	m2, err := hardware.NewMachine(chip, geom, slow)
	test.DemandSuccess(t, err)
	lo2, hi2 := m2.Video.HPosRange()
	test.ExpectEquality(t, lo2, lo+10)
	test.ExpectEquality(t, hi2, hi-10)

	// the picture can be moved to either end of the range without the
	// interrupt overrunning the scanline
	for _, p := range []int8{-128, 127} {
		m.Video.SetHPos(p)
		m.Video.SetHScroll(7)
		test.DemandSuccess(t, m.RunForFrameCount(2))
		test.ExpectEquality(t, m.Overruns(), 0, p)
	}
}
