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

// Package instructions defines the subset of the AVR instruction set used by
// the video generator. Each instruction has a fixed cycle cost; branches cost
// one cycle more when they are taken.
//
// Cycle counts are those of the classic AVR core (ATmega series). The reduced
// core of some ATtiny devices has different costs for LDS and is not
// modelled.
package instructions

import "fmt"

// Opcode identifies an instruction.
type Opcode int

// List of supported instructions.
const (
	NOP Opcode = iota

	// register and immediate
	LDI
	MOV
	CLR
	ADD
	AND
	ANDI
	SUB
	SUBI
	CPI
	COM
	DEC
	LSL
	LSR
	ROR
	BST

	// memory
	LDS
	LDXInc
	LDY
	LPM

	// I/O
	IN
	OUT
	CBI

	// flow
	BRCC
	BRCS
	BREQ
	BRTC
	RJMP
	RET

	numOpcodes
)

// Effect categorises an instruction by the effect it has.
type Effect int

// List of effect categories.
const (
	Arithmetic Effect = iota
	Load
	IO
	Branch
	Jump
	Return
)

// Definition defines each instruction.
type Definition struct {
	Opcode   Opcode
	Mnemonic string
	Cycles   int

	// branches only. the number of cycles if the branch is taken
	TakenCycles int

	Effect Effect
}

func (defn Definition) String() string {
	if defn.Effect == Branch {
		return fmt.Sprintf("%s (%d/%d cycles)", defn.Mnemonic, defn.Cycles, defn.TakenCycles)
	}
	return fmt.Sprintf("%s (%d cycles)", defn.Mnemonic, defn.Cycles)
}

// IsBranch returns true if instruction is a conditional branch.
func (defn Definition) IsBranch() bool {
	return defn.Effect == Branch
}

var definitions = [numOpcodes]Definition{
	NOP:    {NOP, "nop", 1, 0, Arithmetic},
	LDI:    {LDI, "ldi", 1, 0, Arithmetic},
	MOV:    {MOV, "mov", 1, 0, Arithmetic},
	CLR:    {CLR, "clr", 1, 0, Arithmetic},
	ADD:    {ADD, "add", 1, 0, Arithmetic},
	AND:    {AND, "and", 1, 0, Arithmetic},
	ANDI:   {ANDI, "andi", 1, 0, Arithmetic},
	SUB:    {SUB, "sub", 1, 0, Arithmetic},
	SUBI:   {SUBI, "subi", 1, 0, Arithmetic},
	CPI:    {CPI, "cpi", 1, 0, Arithmetic},
	COM:    {COM, "com", 1, 0, Arithmetic},
	DEC:    {DEC, "dec", 1, 0, Arithmetic},
	LSL:    {LSL, "lsl", 1, 0, Arithmetic},
	LSR:    {LSR, "lsr", 1, 0, Arithmetic},
	ROR:    {ROR, "ror", 1, 0, Arithmetic},
	BST:    {BST, "bst", 1, 0, Arithmetic},
	LDS:    {LDS, "lds", 2, 0, Load},
	LDXInc: {LDXInc, "ld", 2, 0, Load},
	LDY:    {LDY, "ld", 2, 0, Load},
	LPM:    {LPM, "lpm", 3, 0, Load},
	IN:     {IN, "in", 1, 0, IO},
	OUT:    {OUT, "out", 1, 0, IO},
	CBI:    {CBI, "cbi", 2, 0, IO},
	BRCC:   {BRCC, "brcc", 1, 2, Branch},
	BRCS:   {BRCS, "brcs", 1, 2, Branch},
	BREQ:   {BREQ, "breq", 1, 2, Branch},
	BRTC:   {BRTC, "brtc", 1, 2, Branch},
	RJMP:   {RJMP, "rjmp", 2, 0, Jump},
	RET:    {RET, "ret", 4, 0, Return},
}

// Lookup returns the definition for an opcode. Returns false if the opcode is
// not supported.
func Lookup(op Opcode) (Definition, bool) {
	if op < 0 || op >= numOpcodes {
		return Definition{}, false
	}
	return definitions[op], true
}
