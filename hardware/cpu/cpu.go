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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/cpu/instructions"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
)

// MaxSteps is the maximum number of instructions a single call to Execute()
// will run before giving up.
const MaxSteps = 100000

// Sentinel errors.
const (
	RunawayProgram     = "cpu: %s: no ret after %d instructions"
	UnknownInstruction = "cpu: %s: unsupported instruction at %d"
)

// CPU implements the subset of the AVR core.
type CPU struct {
	Registers

	// the absolute cycle count. the value is the cycle at which the next
	// instruction starts
	Cycles int64

	// number of instructions executed by the most recent call to Execute()
	Steps int

	mem bus.CPUBus
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem bus.CPUBus) *CPU {
	return &CPU{mem: mem}
}

func (mc *CPU) String() string {
	return fmt.Sprintf("cycle=%d %s", mc.Cycles, mc.Registers.String())
}

// Reset the registers and flags. The cycle counter is not changed.
func (mc *CPU) Reset() {
	mc.Registers = Registers{}
}

// Stall advances the cycle counter without executing instructions. Used to
// account for code that is not modelled instruction by instruction.
func (mc *CPU) Stall(cycles int64) {
	mc.Cycles += cycles
}

// Execute runs the program from the first instruction until RET.
func (mc *CPU) Execute(prg *Program) error {
	pc := 0
	mc.Steps = 0

	for {
		if mc.Steps >= MaxSteps {
			return curated.Errorf(RunawayProgram, prg.Name, mc.Steps)
		}
		if pc < 0 || pc >= len(prg.ins) {
			return curated.Errorf(UnknownInstruction, prg.Name, pc)
		}

		ins := &prg.ins[pc]
		cycle := mc.Cycles
		cost := ins.Defn.Cycles
		mc.Steps++
		pc++

		r := &mc.R
		d := ins.Rd

		switch ins.Defn.Opcode {
		case instructions.NOP:

		case instructions.LDI:
			r[d] = ins.K

		case instructions.MOV:
			r[d] = r[ins.Rr]

		case instructions.CLR:
			r[d] = 0
			mc.Zero = true

		case instructions.ADD:
			v := uint16(r[d]) + uint16(r[ins.Rr])
			r[d] = uint8(v)
			mc.Carry = v > 0xff
			mc.Zero = r[d] == 0

		case instructions.AND:
			r[d] &= r[ins.Rr]
			mc.Zero = r[d] == 0

		case instructions.ANDI:
			r[d] &= ins.K
			mc.Zero = r[d] == 0

		case instructions.SUB:
			mc.Carry = r[ins.Rr] > r[d]
			r[d] -= r[ins.Rr]
			mc.Zero = r[d] == 0

		case instructions.SUBI:
			mc.Carry = ins.K > r[d]
			r[d] -= ins.K
			mc.Zero = r[d] == 0

		case instructions.CPI:
			mc.Carry = ins.K > r[d]
			mc.Zero = r[d] == ins.K

		case instructions.COM:
			r[d] = ^r[d]
			mc.Carry = true
			mc.Zero = r[d] == 0

		case instructions.DEC:
			r[d]--
			mc.Zero = r[d] == 0

		case instructions.LSL:
			mc.Carry = r[d]&0x80 == 0x80
			r[d] <<= 1
			mc.Zero = r[d] == 0

		case instructions.LSR:
			mc.Carry = r[d]&0x01 == 0x01
			r[d] >>= 1
			mc.Zero = r[d] == 0

		case instructions.ROR:
			c := mc.Carry
			mc.Carry = r[d]&0x01 == 0x01
			r[d] >>= 1
			if c {
				r[d] |= 0x80
			}
			mc.Zero = r[d] == 0

		case instructions.BST:
			mc.T = (r[d]>>ins.K)&0x01 == 0x01

		case instructions.LDS:
			r[d] = mc.mem.ReadSymbol(ins.Sym)

		case instructions.LDXInc:
			x := mc.X()
			r[d] = mc.mem.Read(x)
			mc.setPair(XL, x+1)

		case instructions.LDY:
			r[d] = mc.mem.Read(mc.Y())

		case instructions.LPM:
			r[d] = mc.mem.ReadProgram(mc.Z())

		case instructions.IN:
			r[d] = mc.mem.In(ins.IO, cycle)

		case instructions.OUT:
			mc.mem.Out(ins.IO, r[ins.Rr], cycle)

		case instructions.CBI:
			v := mc.mem.In(ins.IO, cycle)
			mc.mem.Out(ins.IO, v&^(1<<ins.K), cycle)

		case instructions.BRCC:
			if !mc.Carry {
				pc = ins.Target
				cost = ins.Defn.TakenCycles
			}

		case instructions.BRCS:
			if mc.Carry {
				pc = ins.Target
				cost = ins.Defn.TakenCycles
			}

		case instructions.BREQ:
			if mc.Zero {
				pc = ins.Target
				cost = ins.Defn.TakenCycles
			}

		case instructions.BRTC:
			if !mc.T {
				pc = ins.Target
				cost = ins.Defn.TakenCycles
			}

		case instructions.RJMP:
			pc = ins.Target

		case instructions.RET:
			mc.Cycles += int64(cost)
			return nil

		default:
			return curated.Errorf(UnknownInstruction, prg.Name, pc-1)
		}

		mc.Cycles += int64(cost)
	}
}
