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

package hardware

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/tiletv/assert"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/chips"
	"github.com/jetsetilly/tiletv/hardware/cpu"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
	"github.com/jetsetilly/tiletv/hardware/television/coords"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/hardware/timer"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/random"
	"github.com/jetsetilly/tiletv/video"
)

// Interrupts describes the timing of interrupt entry and exit.
type Interrupts struct {
	// cycles from the timer overflow to the first instruction of the
	// scanline handler. includes the vector jump and the register saves
	Latency int

	// the largest additional delay to interrupt entry. the actual delay for
	// each interrupt is chosen at random in the range 0 to Jitter inclusive
	Jitter int

	// cycles from the end of the scanline handler to the return from the
	// interrupt
	Exit int

	// use a predictable sequence of jitter values
	ZeroSeed bool
}

// DefaultInterrupts is the interrupt timing of the AVR core running the
// generator's interrupt service routine.
var DefaultInterrupts = Interrupts{
	Latency: 32,
	Jitter:  3,
	Exit:    20,
}

// Sentinel errors.
const (
	BadInterrupts = "machine: interrupt timing not possible (%s)"
	CriticalInISR = "machine: critical section requested from interrupt context"
)

// Machine is the simulated microcontroller.
type Machine struct {
	Chip chips.Chip
	Geom *video.Geometry

	CPU   *cpu.CPU
	Mem   *memory.Memory
	Timer *timer.Timer
	Video *video.Video

	SyncLine  *signal.Line
	VideoLine *signal.Line

	// data addresses of the screen buffer and the RAM tiles and the
	// program address of the font. RAMTiles is zero if the geometry has no
	// RAM tiles
	Screen   uint16
	RAMTiles uint16
	Font     uint16

	ints Interrupts
	rnd  *random.Random

	// the value last written to the video port
	port uint8

	// the next timer period to be processed
	period int64

	// television coordinates of the current period
	frame    int
	scanline int

	// number of interrupts that did not complete before the next period
	overruns int

	// the most cycles from the start of a period to the return from its
	// interrupt
	worst int64

	// held for the duration of each interrupt
	crit sync.Mutex

	// signalled at the end of each interrupt and when Run() ends
	cond    *sync.Cond
	stopped bool

	// the goroutine running the current interrupt. zero when no interrupt is
	// running
	isrID atomic.Uint64
	isr   assert.SameGoRoutine

	hooks video.Hooks
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The chip provides the memory sizes and the geometry the layout of the
// display.
func NewMachine(chip chips.Chip, geom *video.Geometry, ints Interrupts) (*Machine, error) {
	if ints.Latency < 0 || ints.Jitter < 0 || ints.Exit < 0 {
		return nil, curated.Errorf(BadInterrupts, fmt.Sprintf("%+v", ints))
	}

	m := &Machine{
		Chip:      chip,
		Geom:      geom,
		Mem:       memory.NewMemory(chip.SRAM, chip.Flash),
		Timer:     timer.NewTimer(),
		SyncLine:  signal.NewLine(signal.Sync),
		VideoLine: signal.NewLine(signal.Video),
		ints:      ints,
		stopped:   true,
	}
	m.cond = sync.NewCond(&m.crit)
	m.CPU = cpu.NewCPU(m)
	m.rnd = random.NewRandom(m)
	m.rnd.ZeroSeed = ints.ZeroSeed

	var err error

	m.Screen, err = m.Mem.Allocate(geom.ScreenBytes(), 1)
	if err != nil {
		return nil, curated.Errorf("machine: screen buffer: %v", err)
	}

	if geom.RAMTiles > 0 {
		m.RAMTiles, err = m.Mem.Allocate(geom.RAMTilePages()*256, 256)
		if err != nil {
			return nil, curated.Errorf("machine: RAM tiles: %v", err)
		}
	}

	m.Timer.Start(geom.Top, geom.HSync, 0)

	m.Video, err = video.NewVideo(geom, m.Timer, m.Screen)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}
	m.Video.LimitHPos(ints.Latency+ints.Jitter, ints.Exit)

	if m.RAMTiles != 0 {
		if err := m.Video.SetRAMTiles(m.RAMTiles); err != nil {
			return nil, curated.Errorf("machine: %v", err)
		}
	}

	m.SetHooks(video.Hooks{})

	logger.Logf(logger.Allow, "machine", "%s", chip)
	logger.Logf(logger.Allow, "machine", "screen at %#04x, RAM tiles at %#04x, %d bytes SRAM used",
		m.Screen, m.RAMTiles, m.Mem.SRAMUsed())

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s %s", m.Chip.Name, m.Geom)
}

// SetHooks installs hooks that are called from interrupt context. Must not
// be called while the machine is running.
func (m *Machine) SetHooks(h video.Hooks) {
	m.hooks = h
	nf := h.NewFrame
	h.NewFrame = func() {
		m.frame++
		m.scanline = 0
		if nf != nil {
			nf()
		}
	}
	m.Video.SetHooks(h)
}

// LoadFont places font data in program memory and selects it as the
// current font. The data must be laid out as described by
// video.Geometry.FontPages(). Returns the program address of the font.
func (m *Machine) LoadFont(data []uint8) (uint16, error) {
	addr, err := m.Mem.Place(data, 256)
	if err != nil {
		return 0, curated.Errorf("machine: font: %v", err)
	}
	if err := m.Video.SetFont(addr); err != nil {
		return 0, curated.Errorf("machine: font: %v", err)
	}
	if m.Font == 0 {
		m.Font = addr
	}
	return addr, nil
}

// Critical runs the function with the interrupt excluded. Used by the main
// context to update the screen buffer and RAM tiles. The function must not
// block and must not call Critical() itself.
//
// Calling Critical() from interrupt context, for example from a hook, panics.
func (m *Machine) Critical(f func(mem *memory.Memory)) {
	if id := m.isrID.Load(); id != 0 && id == assert.GetGoRoutineID() {
		panic(curated.Errorf(CriticalInISR))
	}
	m.crit.Lock()
	defer m.crit.Unlock()
	f(m.Mem)
}

// GetCoords implements the random.Coords interface.
func (m *Machine) GetCoords() coords.TelevisionCoords {
	return coords.TelevisionCoords{
		Frame:    m.frame,
		Scanline: m.scanline,
		Cycle:    int(m.CPU.Cycles - m.Timer.PeriodStart(m.period)),
	}
}

// Overruns returns the number of interrupts that did not complete before the
// start of the next timer period.
func (m *Machine) Overruns() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.overruns
}

// WorstCase returns the most cycles taken from the start of a timer period to
// the return from the interrupt.
func (m *Machine) WorstCase() int64 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.worst
}

// ReadSymbol implements the bus.SymbolBus interface.
func (m *Machine) ReadSymbol(sym bus.Symbol) uint8 {
	return m.Video.ReadSymbol(sym)
}

// Read implements the bus.DataBus interface.
func (m *Machine) Read(address uint16) uint8 {
	return m.Mem.Read(address)
}

// Write implements the bus.DataBus interface.
func (m *Machine) Write(address uint16, data uint8) {
	m.Mem.Write(address, data)
}

// ReadProgram implements the bus.ProgramBus interface.
func (m *Machine) ReadProgram(address uint16) uint8 {
	return m.Mem.ReadProgram(address)
}

// In implements the bus.IOBus interface.
func (m *Machine) In(reg bus.IO, cycle int64) uint8 {
	switch reg {
	case bus.TCNT1L:
		return uint8(m.Timer.Count(cycle))
	case bus.VideoPort:
		return m.port
	}
	return 0
}

// Out implements the bus.IOBus interface.
func (m *Machine) Out(reg bus.IO, data uint8, cycle int64) {
	if reg != bus.VideoPort {
		return
	}
	m.port = data
	m.VideoLine.Write(data&(1<<m.Geom.VideoBit) != 0, cycle)
}
