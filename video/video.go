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
	"sync/atomic"

	"github.com/jetsetilly/tiletv/hardware/cpu"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
	"github.com/jetsetilly/tiletv/logger"
)

// SyncTimer is the part of the scanline timer that the state machine
// reprograms.
type SyncTimer interface {
	SetCompare(v uint16)
}

// Hooks are called from interrupt context. They must not block.
type Hooks struct {
	// before and after the scanline handler on every interrupt
	LineStart func()
	LineEnd   func()

	// after the last scanline of the active window and before the frame
	// counter is incremented
	EndDisplay func()

	// when the scanline counter wraps
	NewFrame func()
}

// Handler identifies a scanline routine.
type Handler int

// List of valid Handler values. There is one kernel handler for each Mode.
const (
	Inactive Handler = iota
	KernelSixPixelTile
	KernelEightPixelTile
	KernelEightPixelTileWithRAM
	KernelEightPixelTileWithRAMAndScroll
	numHandlers
)

func kernelHandler(m Mode) Handler {
	return Handler(int(m) + 1)
}

func (h Handler) String() string {
	if h == Inactive {
		return "inactive"
	}
	if h > Inactive && h < numHandlers {
		return Mode(h - 1).String()
	}
	return "unknown handler"
}

// the number of cycles spent in the parts of the interrupt that are not
// modelled instruction by instruction
const (
	// the whole of the inactive line routine
	InactiveCycles = 24

	// counter updates after the kernel program
	PostKernelCycles = 28
)

// Video is the video generator.
type Video struct {
	geom   *Geometry
	kernel Kernel
	timer  SyncTimer

	// data address of the screen buffer
	screen uint16

	// written by the main context
	controls atomic.Pointer[Controls]

	// controls in use by the interrupt
	live Controls

	// scanline state
	line      uint16
	region    Region
	tileLine  uint8
	screenPtr uint16
	handler   Handler

	// the scanline at which the active window ends. set by the mode setup
	end int

	// the active window has been rendered in this frame
	displayed bool

	frames atomic.Uint32

	// range of the dynamic horizontal position offset
	hposMin int8
	hposMax int8

	dispatch [numHandlers]func(mc *cpu.CPU) error
	hooks    Hooks
}

// NewVideo is the preferred method of initialisation for the Video type. The
// screen argument is the data address of the screen buffer.
func NewVideo(geom *Geometry, timer SyncTimer, screen uint16) (*Video, error) {
	k, err := NewKernel(geom)
	if err != nil {
		return nil, err
	}

	vid := &Video{
		geom:   geom,
		kernel: k,
		timer:  timer,
		screen: screen,
	}

	vid.controls.Store(&Controls{
		HFineScrollMask: geom.PixelMask(0),
	})

	vid.dispatch[Inactive] = vid.inactive
	vid.dispatch[kernelHandler(geom.Mode)] = vid.render

	vid.LimitHPos(0, 0)
	vid.Reset()

	logger.Logf(logger.Allow, "video", "%s", geom)
	logger.Logf(logger.Allow, "video", "%s kernel is %d instructions", geom.Mode, k.Program().Len())

	return vid, nil
}

func (vid *Video) String() string {
	return fmt.Sprintf("line=%d region=%s tile_line=%d screen_ptr=%#04x handler=%s frames=%d",
		vid.line, vid.region, vid.tileLine, vid.screenPtr, vid.handler, vid.frames.Load())
}

// Reset the scanline state. The first interrupt after a reset begins a new
// frame.
func (vid *Video) Reset() {
	vid.live = *vid.controls.Load()
	vid.line = uint16(vid.geom.Spec.LinesFrame + 1)
	vid.region = PreSync
	vid.tileLine = 0
	vid.screenPtr = vid.screen
	vid.handler = Inactive
	vid.displayed = false
	vid.frames.Store(0)
	vid.timer.SetCompare(vid.geom.HSync)
}

// SetHooks installs the hooks. Must not be called while the interrupt may be
// running.
func (vid *Video) SetHooks(h Hooks) {
	vid.hooks = h
}

// Geometry returns the geometry used by the video generator.
func (vid *Video) Geometry() *Geometry {
	return vid.geom
}

// LimitHPos sets the range of the dynamic horizontal position offset from
// the interrupt timing. See Geometry.DelayRange() for the meaning of the
// arguments. Must not be called while the interrupt may be running.
func (vid *Video) LimitHPos(entry int, exit int) {
	vid.hposMin, vid.hposMax = vid.geom.HPosRange(vid.kernel.Timing(), entry, exit)
	logger.Logf(logger.Allow, "video", "horizontal position offset limited to %d to %d", vid.hposMin, vid.hposMax)
}

// HPosRange returns the range of values accepted by SetHPos().
func (vid *Video) HPosRange() (int8, int8) {
	return vid.hposMin, vid.hposMax
}

// Kernel returns the kernel used for the active window.
func (vid *Video) Kernel() Kernel {
	return vid.kernel
}

// FrameCount returns the low byte of the frame counter. The counter is
// incremented at the end of each active window. Safe to call from any
// goroutine.
func (vid *Video) FrameCount() uint8 {
	return uint8(vid.frames.Load())
}

// Interrupt is the timer overflow interrupt. It runs the current scanline
// handler on the CPU.
func (vid *Video) Interrupt(mc *cpu.CPU) error {
	if !vid.geom.LatchAtVBlank {
		vid.live = *vid.controls.Load()
	}

	switch {
	case int(vid.line) >= vid.geom.Spec.LinesFrame:
		vid.region = PreSync
	case int(vid.line) < vid.geom.VSyncEnd:
		vid.region = Sync
	case vid.handler != Inactive:
		vid.region = Active
	case vid.displayed:
		vid.region = PostActive
	default:
		vid.region = PostSync
	}

	if vid.hooks.LineStart != nil {
		vid.hooks.LineStart()
	}

	err := vid.dispatch[vid.handler](mc)

	if vid.hooks.LineEnd != nil {
		vid.hooks.LineEnd()
	}

	return err
}

// the inactive line routine
func (vid *Video) inactive(mc *cpu.CPU) error {
	mc.Stall(InactiveCycles)

	if int(vid.line) >= vid.geom.Spec.LinesFrame {
		vid.timer.SetCompare(vid.geom.VSync)
		vid.line = 0
		vid.displayed = false
		if vid.hooks.NewFrame != nil {
			vid.hooks.NewFrame()
		}
		return nil
	}

	if int(vid.line) == vid.geom.VSyncEnd {
		vid.timer.SetCompare(vid.geom.HSync)
	} else if !vid.displayed && int(vid.line) == vid.geom.StartRender(vid.live.VPosOffset) {
		vid.setup()
	}

	vid.line++

	return nil
}

// the mode setup at the start of the active window
func (vid *Video) setup() {
	if vid.geom.LatchAtVBlank {
		vid.live = *vid.controls.Load()
	}

	vid.tileLine = 0
	if vid.geom.VScroll && vid.geom.Mode != EightPixelTile {
		vid.tileLine = vid.live.VFineScroll
	}

	if vid.geom.Mode.HScroll() {
		vid.live.HFineScrollMask = vid.geom.PixelMask(vid.live.HFineScroll)
	}

	vid.screenPtr = vid.screen
	vid.end = vid.geom.EndRender(int(vid.line))
	vid.handler = kernelHandler(vid.geom.Mode)
}

// the kernel and the counter updates that follow it
func (vid *Video) render(mc *cpu.CPU) error {
	if err := mc.Execute(vid.kernel.Program()); err != nil {
		return err
	}

	mc.Stall(PostKernelCycles)

	vid.tileLine++
	if int(vid.tileLine) >= vid.geom.CharHeight {
		vid.tileLine = 0
		vid.screenPtr += uint16(vid.geom.Columns)
	}

	vid.line++
	if int(vid.line) >= vid.end {
		if vid.hooks.EndDisplay != nil {
			vid.hooks.EndDisplay()
		}
		vid.handler = Inactive
		vid.displayed = true
		vid.frames.Add(1)
	}

	return nil
}

// ReadSymbol implements the bus.SymbolBus interface.
func (vid *Video) ReadSymbol(sym bus.Symbol) uint8 {
	switch sym {
	case bus.ScreenPtrLo:
		return uint8(vid.screenPtr)
	case bus.ScreenPtrHi:
		return uint8(vid.screenPtr >> 8)
	case bus.TileLine:
		return vid.tileLine
	case bus.RomTileHigh:
		return vid.live.RomTileHigh
	case bus.RamTileHigh:
		return vid.live.RAMTileHigh
	case bus.HFineScroll:
		return vid.live.HFineScroll
	case bus.HFineScrollMask:
		return vid.live.HFineScrollMask
	case bus.OutputDelay:
		return vid.geom.OutputDelay(vid.live.HPosOffset)
	}
	return 0
}
