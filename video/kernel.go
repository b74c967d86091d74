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
	"github.com/jetsetilly/tiletv/hardware/cpu"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
)

// Kernel is a scanline rendering routine.
type Kernel interface {
	Mode() Mode

	// the program run by the interrupt for each scanline of the active window
	Program() *cpu.Program

	// the number of cycles each pixel of a tile is held for. the final value
	// is also the number of cycles between the last pixel of the line and
	// the video line being driven low
	Schedule() []int

	// number of tiles output on each scanline
	Slots() int

	// cycle timing of the program
	Timing() KernelTiming
}

// KernelTiming is the cycle timing of a kernel program, measured by running
// it once with no horizontal scroll. Lead and Length are counted from the
// start of the scanline and do not include the output delay. Neither
// depends on the interrupt entry jitter.
type KernelTiming struct {
	// cycles from the first instruction to the sample of the timer
	Sample int

	// first pixel of the line
	Lead int

	// return from the program
	Length int

	// cycles the line is started early for each pixel of horizontal scroll
	ScrollCost int
}

type tileKernel struct {
	mode     Mode
	prg      *cpu.Program
	schedule []int
	slots    int
	timing   KernelTiming
}

func (k *tileKernel) Mode() Mode {
	return k.mode
}

func (k *tileKernel) Program() *cpu.Program {
	return k.prg
}

func (k *tileKernel) Schedule() []int {
	return k.schedule
}

func (k *tileKernel) Slots() int {
	return k.slots
}

func (k *tileKernel) Timing() KernelTiming {
	return k.timing
}

// Sentinel errors.
const (
	BadKernel = "video: %s kernel does not sample the timer before the first pixel"
)

// NewKernel creates the kernel program for the geometry.
func NewKernel(g *Geometry) (Kernel, error) {
	k := &tileKernel{
		mode:  g.Mode,
		slots: g.Columns,
	}

	b := cpu.NewBuilder(g.Mode.String())
	e := emitter{Builder: b, g: g}

	switch g.Mode {
	case SixPixelTile:
		e.sixPixelTile()
		if g.FontChars == 256 {
			k.schedule = []int{2, 2, 2, 2, 2, 6}
		} else {
			k.schedule = []int{2, 2, 2, 2, 2, 7}
		}
	case EightPixelTile:
		e.eightPixelTile()
		k.schedule = []int{4, 4, 4, 4, 4, 4, 4, 4}
	case EightPixelTileWithRAM:
		e.eightPixelTileWithRAM()
		k.schedule = []int{4, 4, 4, 4, 4, 4, 4, 4}
	case EightPixelTileWithRAMAndScroll:
		e.eightPixelTileWithRAMAndScroll()
		k.schedule = []int{4, 4, 4, 4, 4, 4, 4, 4}
	}

	var err error
	k.prg, err = b.Build()
	if err != nil {
		return nil, err
	}

	k.timing, err = measure(k.prg)
	if err != nil {
		return nil, err
	}
	if g.Mode.HScroll() {
		k.timing.ScrollCost = 4
	}

	return k, nil
}

// the output delay used when measuring a kernel. large enough that the delay
// loop never runs out
const measureDelay = 0xff

// dryRun is the bus for measuring a kernel. memory reads as zero and the
// interrupt enters on the first cycle of the scanline
type dryRun struct {
	sample int64
	first  int64
}

func (d *dryRun) Read(_ uint16) uint8 { return 0 }

func (d *dryRun) Write(_ uint16, _ uint8) {}

func (d *dryRun) ReadProgram(_ uint16) uint8 { return 0 }

func (d *dryRun) ReadSymbol(sym bus.Symbol) uint8 {
	if sym == bus.OutputDelay {
		return measureDelay
	}
	return 0
}

func (d *dryRun) In(reg bus.IO, cycle int64) uint8 {
	if reg == bus.TCNT1L {
		d.sample = cycle
		return uint8(cycle)
	}
	return 0
}

func (d *dryRun) Out(reg bus.IO, _ uint8, cycle int64) {
	if reg == bus.VideoPort && d.first == -1 {
		d.first = cycle
	}
}

func measure(prg *cpu.Program) (KernelTiming, error) {
	d := &dryRun{sample: -1, first: -1}
	mc := cpu.NewCPU(d)
	if err := mc.Execute(prg); err != nil {
		return KernelTiming{}, err
	}
	if d.sample == -1 || d.first == -1 {
		return KernelTiming{}, curated.Errorf(BadKernel, prg.Name)
	}
	return KernelTiming{
		Sample: int(d.sample),
		Lead:   int(d.first) - measureDelay,
		Length: int(mc.Cycles) - measureDelay,
	}, nil
}

// emitter adds the instruction sequences shared by the kernels.
type emitter struct {
	*cpu.Builder
	g *Geometry
}

// shift the next pixel into the video bit
func (e emitter) vsh(r cpu.Register) {
	if e.g.LittleEndian {
		e.Lsr(r)
	} else {
		e.Lsl(r)
	}
}

// output the pixel and shift the next pixel into place
func (e emitter) pixel(r cpu.Register) {
	e.Out(bus.VideoPort, r)
	e.vsh(r)
}

// load the output delay and sample the timer. the sample is taken as early as
// possible so that it reflects the entry jitter
func (e emitter) prologue() {
	e.Lds(cpu.R24, bus.OutputDelay)
	e.In(cpu.R25, bus.TCNT1L)
}

// the delay loop absorbs the interrupt jitter. for a value of D remaining
// after the subtraction of the timer sample it takes exactly D+6 cycles
func (e emitter) delay(pre ...func()) {
	for _, f := range pre {
		f()
	}
	e.Sub(cpu.R24, cpu.R25)
	e.Label("delay")
	e.Subi(cpu.R24, 3)
	e.Brcc("delay")
	e.Subi(cpu.R24, 0xfd)
	e.Breq("delay1")
	e.Dec(cpu.R24)
	e.Breq("delay2")
	e.Rjmp("delay2")
	e.Label("delay1")
	e.Nop()
	e.Label("delay2")
}

func (e emitter) epilogue() {
	e.Cbi(bus.VideoPort, e.g.VideoBit)
	e.Clr(cpu.R1)
}

// load the screen pointer into X
func (e emitter) screenPtr() {
	e.Lds(cpu.XL, bus.ScreenPtrLo)
	e.Lds(cpu.XH, bus.ScreenPtrHi)
}

// six pixels per tile at two cycles per pixel. the last pixel of each tile is
// held while the next tile is fetched
func (e emitter) sixPixelTile() {
	g := e.g
	narrow := g.FontChars != 256

	e.prologue()
	e.screenPtr()
	e.Lds(cpu.ZL, bus.TileLine)

	lines := g.FontHeight
	if g.DoubleLines {
		lines <<= 1
	}
	e.Cpi(cpu.ZL, uint8(lines))
	e.Brcs("render")
	e.Clr(cpu.R0)
	e.Rjmp("end")

	e.Label("render")
	e.Lds(cpu.ZH, bus.RomTileHigh)
	if g.DoubleLines {
		e.Lsr(cpu.ZL)
	}
	if narrow {
		e.Lsr(cpu.ZL)
		e.Clr(cpu.R1)
		e.Ror(cpu.R1)
	}
	e.Add(cpu.ZH, cpu.ZL)

	fetch := func() {
		e.LdXInc(cpu.ZL)
		if narrow {
			e.Add(cpu.ZL, cpu.R1)
		}
		e.Lpm(cpu.R0)
	}

	fetch()
	e.delay()

	for range g.Columns {
		e.Out(bus.VideoPort, cpu.R0)
		for range 5 {
			e.vsh(cpu.R0)
			e.Out(bus.VideoPort, cpu.R0)
		}
		fetch()
	}

	e.epilogue()
	e.Label("end")
	e.Ret()
}

// eight pixels per tile at four cycles per pixel from a 256 glyph font
func (e emitter) eightPixelTile() {
	g := e.g

	e.prologue()
	e.Clr(cpu.R17)
	e.Lds(cpu.R18, bus.TileLine)
	e.Lds(cpu.ZH, bus.RomTileHigh)
	e.Add(cpu.ZH, cpu.R18)
	e.screenPtr()

	e.LdXInc(cpu.ZL)
	e.Lpm(cpu.R0)
	e.LdXInc(cpu.ZL)
	e.Lpm(cpu.R18)
	e.delay()

	for range g.Columns {
		for range 3 {
			e.pixel(cpu.R0)
			e.Nop()
			e.Nop()
		}
		e.pixel(cpu.R0)
		e.LdXInc(cpu.ZL)
		for range 2 {
			e.pixel(cpu.R0)
			e.Nop()
			e.Nop()
		}
		e.pixel(cpu.R0)
		e.Mov(cpu.R1, cpu.R0)
		e.Mov(cpu.R0, cpu.R18)
		e.Out(bus.VideoPort, cpu.R1)
		e.Lpm(cpu.R18)
	}

	e.epilogue()
	e.Ret()
}

// the tile bank selection shared by the RAM tile kernels. the index is
// loaded into ZL, the bank bit into T and the line offset added. offset is
// the register holding the offset for odd lines
func (e emitter) tileIndex(offset cpu.Register) {
	e.LdXInc(cpu.ZL)
	e.Bst(cpu.ZL, 7)
	e.Andi(cpu.ZL, 0x7f)
	e.Add(cpu.ZL, offset)
}

// the preamble shared by the RAM tile kernels. tmp and offset are the
// registers used for the tile line and the odd line offset
func (e emitter) ramTilePreamble(tmp cpu.Register, offset cpu.Register) {
	e.Clr(offset)
	e.Lds(tmp, bus.TileLine)
	e.Lsr(tmp)
	e.Ror(offset)
	e.Lds(cpu.ZH, bus.RomTileHigh)
	e.Add(cpu.ZH, tmp)
	e.Lds(cpu.YH, bus.RamTileHigh)
	e.Add(cpu.YH, tmp)
	e.screenPtr()

	e.tileIndex(offset)
	e.Lpm(cpu.R0)
	e.Mov(cpu.YL, cpu.ZL)
	e.LdY(cpu.R1)
	e.Brtc("first")
	e.Mov(cpu.R0, cpu.R1)
	e.Label("first")
}

// one tile of the RAM tile kernels. the bitmap for the next tile is in tmp
// and is replaced by the RAM bitmap if the T flag is set. when next is false
// the index of the following tile is not fetched
func (e emitter) ramTile(col int, tmp cpu.Register, offset cpu.Register, next bool) {
	skip := fmt.Sprintf("rom%d", col)

	e.pixel(cpu.R0)
	e.Mov(cpu.YL, cpu.ZL)
	e.Nop()

	e.pixel(cpu.R0)
	e.LdY(cpu.R1)

	e.pixel(cpu.R0)
	e.Brtc(skip)
	e.Mov(tmp, cpu.R1)
	e.Label(skip)

	if next {
		e.pixel(cpu.R0)
		e.LdXInc(cpu.ZL)

		e.pixel(cpu.R0)
		e.Bst(cpu.ZL, 7)
		e.Nop()

		e.pixel(cpu.R0)
		e.Andi(cpu.ZL, 0x7f)
		e.Add(cpu.ZL, offset)
	} else {
		for range 3 {
			e.pixel(cpu.R0)
			e.Nop()
			e.Nop()
		}
	}

	e.pixel(cpu.R0)
	e.Mov(cpu.R1, cpu.R0)
	e.Mov(cpu.R0, tmp)
	e.Out(bus.VideoPort, cpu.R1)
}

// eight pixels per tile at four cycles per pixel. tile indexes with the top
// bit set are taken from RAM
func (e emitter) eightPixelTileWithRAM() {
	g := e.g

	e.prologue()
	e.ramTilePreamble(cpu.R18, cpu.R17)
	e.tileIndex(cpu.R17)
	e.Lpm(cpu.R18)
	e.delay()

	for c := range g.Columns {
		e.ramTile(c, cpu.R18, cpu.R17, true)
		e.Lpm(cpu.R18)
	}

	e.epilogue()
	e.Ret()
}

// as eightPixelTileWithRAM but with horizontal fine scroll. the line is
// started early by the scroll amount and the first and last tiles are
// masked so that the visible window does not move
func (e emitter) eightPixelTileWithRAMAndScroll() {
	g := e.g

	e.prologue()
	e.ramTilePreamble(cpu.R3, cpu.R2)
	e.Lds(cpu.R17, bus.HFineScrollMask)
	e.And(cpu.R0, cpu.R17)
	e.Com(cpu.R17)
	e.tileIndex(cpu.R2)
	e.Lpm(cpu.R3)

	// four cycles per pixel of scroll
	e.delay(func() {
		e.Lds(cpu.R1, bus.HFineScroll)
		e.Lsl(cpu.R1)
		e.Lsl(cpu.R1)
		e.Sub(cpu.R24, cpu.R1)
	})

	for c := range g.Columns - 2 {
		e.ramTile(c, cpu.R3, cpu.R2, true)
		e.Lpm(cpu.R3)
	}

	// the last full tile does not fetch another index. the tile after it
	// is masked with the complement of the first tile's mask
	e.ramTile(g.Columns-2, cpu.R3, cpu.R2, false)
	e.And(cpu.R0, cpu.R17)
	e.Nop()
	e.Nop()

	for range 7 {
		e.pixel(cpu.R0)
		e.Nop()
		e.Nop()
	}
	e.Out(bus.VideoPort, cpu.R0)
	e.Nop()
	e.Nop()
	e.Clr(cpu.R1)
	e.Cbi(bus.VideoPort, g.VideoBit)
	e.Ret()
}
