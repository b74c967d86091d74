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
	"strings"

	"github.com/jetsetilly/tiletv/hardware/cpu/instructions"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
)

// Instruction is a single assembled instruction.
type Instruction struct {
	Defn instructions.Definition

	Rd Register
	Rr Register

	// immediate value or bit number
	K uint8

	Sym bus.Symbol
	IO  bus.IO

	// index of the branch target in the program
	Target int
	label  string
}

func (ins Instruction) String() string {
	m := ins.Defn.Mnemonic
	switch ins.Defn.Opcode {
	case instructions.NOP, instructions.RET:
		return m
	case instructions.LDI, instructions.ANDI, instructions.SUBI, instructions.CPI:
		return fmt.Sprintf("%s %s, %#02x", m, ins.Rd, ins.K)
	case instructions.MOV, instructions.ADD, instructions.AND, instructions.SUB:
		return fmt.Sprintf("%s %s, %s", m, ins.Rd, ins.Rr)
	case instructions.CLR, instructions.COM, instructions.DEC, instructions.LSL, instructions.LSR, instructions.ROR:
		return fmt.Sprintf("%s %s", m, ins.Rd)
	case instructions.BST:
		return fmt.Sprintf("%s %s, %d", m, ins.Rd, ins.K)
	case instructions.LDS:
		return fmt.Sprintf("%s %s, %s", m, ins.Rd, ins.Sym)
	case instructions.LDXInc:
		return fmt.Sprintf("%s %s, X+", m, ins.Rd)
	case instructions.LDY:
		return fmt.Sprintf("%s %s, Y", m, ins.Rd)
	case instructions.LPM:
		return fmt.Sprintf("%s %s, Z", m, ins.Rd)
	case instructions.IN:
		return fmt.Sprintf("%s %s, %s", m, ins.Rd, ins.IO)
	case instructions.OUT:
		return fmt.Sprintf("%s %s, %s", m, ins.IO, ins.Rr)
	case instructions.CBI:
		return fmt.Sprintf("%s %s, %d", m, ins.IO, ins.K)
	}
	return fmt.Sprintf("%s %s", m, ins.label)
}

// Program is an assembled list of instructions. Execution starts at the first
// instruction and ends at a RET instruction.
type Program struct {
	Name string
	ins  []Instruction

	// label names indexed by the instruction they precede
	labels map[int][]string
}

// Len returns the number of instructions in the program.
func (prg *Program) Len() int {
	return len(prg.ins)
}

// Instruction returns the instruction at index i.
func (prg *Program) Instruction(i int) Instruction {
	return prg.ins[i]
}

// String returns a listing of the program.
func (prg *Program) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("; %s\n", prg.Name))
	for i, ins := range prg.ins {
		for _, l := range prg.labels[i] {
			s.WriteString(fmt.Sprintf("%s:\n", l))
		}
		s.WriteString(fmt.Sprintf("\t%s\n", ins))
	}
	return s.String()
}
