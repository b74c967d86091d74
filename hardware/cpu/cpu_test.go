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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/cpu"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
	"github.com/jetsetilly/tiletv/test"
)

type write struct {
	reg   bus.IO
	data  uint8
	cycle int64
}

// mockBus is a flat 64K data and program space with a free running counter
type mockBus struct {
	data    [0x10000]uint8
	program [0x10000]uint8
	symbols [bus.NumSymbols]uint8
	port    uint8
	writes  []write
}

func (m *mockBus) Read(address uint16) uint8        { return m.data[address] }
func (m *mockBus) Write(address uint16, data uint8) { m.data[address] = data }
func (m *mockBus) ReadProgram(address uint16) uint8 { return m.program[address] }
func (m *mockBus) ReadSymbol(sym bus.Symbol) uint8  { return m.symbols[sym] }

func (m *mockBus) In(reg bus.IO, cycle int64) uint8 {
	if reg == bus.TCNT1L {
		return uint8(cycle)
	}
	return m.port
}

func (m *mockBus) Out(reg bus.IO, data uint8, cycle int64) {
	m.port = data
	m.writes = append(m.writes, write{reg: reg, data: data, cycle: cycle})
}

func build(t *testing.T, b *cpu.Builder) *cpu.Program {
	t.Helper()
	prg, err := b.Build()
	test.DemandSuccess(t, err)
	return prg
}

func TestArithmeticFlags(t *testing.T) {
	mem := &mockBus{}
	mc := cpu.NewCPU(mem)

	b := cpu.NewBuilder("flags")
	b.Ldi(cpu.R16, 0xf0)
	b.Ldi(cpu.R17, 0x20)
	b.Add(cpu.R16, cpu.R17)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))
	test.ExpectEquality(t, mc.R[cpu.R16], uint8(0x10))
	test.ExpectSuccess(t, mc.Carry)
	test.ExpectFailure(t, mc.Zero)

	// subi with a negative immediate is an add that sets carry only when
	// there is no overflow
	b = cpu.NewBuilder("subi")
	b.Ldi(cpu.R24, 0xfe)
	b.Subi(cpu.R24, 0xfd)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))
	test.ExpectEquality(t, mc.R[cpu.R24], uint8(0x01))
	test.ExpectFailure(t, mc.Zero)

	// lsr into carry then ror out of carry
	b = cpu.NewBuilder("ror")
	b.Ldi(cpu.R18, 0x03)
	b.Lsr(cpu.R18)
	b.Clr(cpu.R1)
	b.Ror(cpu.R1)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))
	test.ExpectEquality(t, mc.R[cpu.R18], uint8(0x01))
	test.ExpectEquality(t, mc.R[cpu.R1], uint8(0x80))
	test.ExpectFailure(t, mc.Carry)

	// bst and com
	b = cpu.NewBuilder("bst")
	b.Ldi(cpu.ZL, 0x85)
	b.Bst(cpu.ZL, 7)
	b.Andi(cpu.ZL, 0x7f)
	b.Ldi(cpu.R17, 0x0f)
	b.Com(cpu.R17)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))
	test.ExpectSuccess(t, mc.T)
	test.ExpectEquality(t, mc.R[cpu.ZL], uint8(0x05))
	test.ExpectEquality(t, mc.R[cpu.R17], uint8(0xf0))
	test.ExpectSuccess(t, mc.Carry)
}

func TestMemoryAccess(t *testing.T) {
	mem := &mockBus{}
	mem.data[0x0500] = 0x41
	mem.data[0x0501] = 0x42
	mem.data[0x0142] = 0x99
	mem.program[0x0841] = 0x3c
	mem.symbols[bus.ScreenPtrLo] = 0x00
	mem.symbols[bus.ScreenPtrHi] = 0x05
	mem.symbols[bus.RomTileHigh] = 0x08

	mc := cpu.NewCPU(mem)

	b := cpu.NewBuilder("memory")
	b.Lds(cpu.XL, bus.ScreenPtrLo)
	b.Lds(cpu.XH, bus.ScreenPtrHi)
	b.Lds(cpu.ZH, bus.RomTileHigh)
	b.LdXInc(cpu.ZL)
	b.Lpm(cpu.R0)
	b.LdXInc(cpu.YL)
	b.Ldi(cpu.YH, 0x01)
	b.LdY(cpu.R1)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))

	test.ExpectEquality(t, mc.R[cpu.R0], uint8(0x3c))
	test.ExpectEquality(t, mc.R[cpu.R1], uint8(0x99))
	test.ExpectEquality(t, mc.X(), uint16(0x0502))

	// 3 lds, 2 ld, lpm, ldi, ld, ret
	test.ExpectEquality(t, mc.Cycles, int64(3*2+2*2+3+1+2+4))
}

func TestBranchCycles(t *testing.T) {
	mem := &mockBus{}
	mc := cpu.NewCPU(mem)

	// taken branch is two cycles and skips the mov. not taken is one cycle
	// plus the mov. both paths are the same length
	for _, v := range []uint8{0x00, 0x80} {
		b := cpu.NewBuilder("balanced")
		b.Ldi(cpu.ZL, v)
		b.Bst(cpu.ZL, 7)
		b.Brtc("skip")
		b.Mov(cpu.R18, cpu.R1)
		b.Label("skip")
		b.Ret()

		mc.Cycles = 0
		test.DemandSuccess(t, mc.Execute(build(t, b)))
		test.ExpectEquality(t, mc.Cycles, int64(1+1+2+4), v)
	}
}

// the delay loop used by the video kernels takes exactly D+6 cycles where D
// is the value in the register on entry
func TestDelayLoop(t *testing.T) {
	mem := &mockBus{}
	mc := cpu.NewCPU(mem)

	b := cpu.NewBuilder("delay")
	b.Label("loop")
	b.Subi(cpu.R24, 3)
	b.Brcc("loop")
	b.Subi(cpu.R24, 0xfd)
	b.Breq("one")
	b.Dec(cpu.R24)
	b.Breq("two")
	b.Rjmp("two")
	b.Label("one")
	b.Nop()
	b.Label("two")
	b.Ret()
	prg := build(t, b)

	for d := 0; d < 256; d++ {
		mc.Cycles = 0
		mc.R[cpu.R24] = uint8(d)
		test.DemandSuccess(t, mc.Execute(prg))
		test.ExpectEquality(t, mc.Cycles-4, int64(d+6), d)
	}
}

func TestIO(t *testing.T) {
	mem := &mockBus{}
	mc := cpu.NewCPU(mem)
	mc.Cycles = 100

	b := cpu.NewBuilder("io")
	b.In(cpu.R25, bus.TCNT1L)
	b.Ldi(cpu.R0, 0xff)
	b.Out(bus.VideoPort, cpu.R0)
	b.Lsl(cpu.R0)
	b.Out(bus.VideoPort, cpu.R0)
	b.Cbi(bus.VideoPort, 7)
	b.Ret()
	test.DemandSuccess(t, mc.Execute(build(t, b)))

	test.ExpectEquality(t, mc.R[cpu.R25], uint8(100))
	test.DemandEquality(t, len(mem.writes), 3)
	test.ExpectEquality(t, mem.writes[0].cycle, int64(102))
	test.ExpectEquality(t, mem.writes[1].cycle, int64(104))
	test.ExpectEquality(t, mem.writes[1].data, uint8(0xfe))
	test.ExpectEquality(t, mem.writes[2].cycle, int64(105))
	test.ExpectEquality(t, mem.writes[2].data, uint8(0x7e))
}

func TestBuilderErrors(t *testing.T) {
	b := cpu.NewBuilder("undefined")
	b.Rjmp("nowhere")
	b.Ret()
	_, err := b.Build()
	test.ExpectSuccess(t, curated.Is(err, cpu.UndefinedLabel))

	b = cpu.NewBuilder("duplicate")
	b.Label("a")
	b.Label("a")
	b.Ret()
	_, err = b.Build()
	test.ExpectSuccess(t, curated.Is(err, cpu.DuplicateLabel))

	b = cpu.NewBuilder("noret")
	b.Nop()
	_, err = b.Build()
	test.ExpectSuccess(t, curated.Is(err, cpu.NoReturn))
}

func TestRunaway(t *testing.T) {
	mc := cpu.NewCPU(&mockBus{})

	b := cpu.NewBuilder("forever")
	b.Label("loop")
	b.Rjmp("loop")
	b.Ret()
	err := mc.Execute(build(t, b))
	test.ExpectSuccess(t, curated.Is(err, cpu.RunawayProgram))
}

func TestListing(t *testing.T) {
	b := cpu.NewBuilder("listing")
	b.Label("start")
	b.Lds(cpu.R24, bus.OutputDelay)
	b.Out(bus.VideoPort, cpu.R0)
	b.Ret()
	prg := build(t, b)
	test.ExpectEquality(t, prg.Len(), 3)
	test.ExpectEquality(t, prg.String(), "; listing\nstart:\n\tlds r24, output_delay\n\tout PORT_VID, r0\n\tret\n")
}
