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
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/cpu/instructions"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
)

// Sentinel errors.
const (
	UndefinedLabel = "builder: %s: undefined label (%s)"
	DuplicateLabel = "builder: %s: duplicate label (%s)"
	NoReturn       = "builder: %s: program does not end with ret"
)

// Builder assembles a Program. Errors are deferred until Build() is called so
// that instructions can be chained without checking each one.
type Builder struct {
	name   string
	ins    []Instruction
	labels map[string]int
	err    error
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		labels: make(map[string]int),
	}
}

func (b *Builder) add(op instructions.Opcode, ins Instruction) {
	ins.Defn, _ = instructions.Lookup(op)
	b.ins = append(b.ins, ins)
}

// Label marks the position of the next instruction.
func (b *Builder) Label(name string) {
	if _, ok := b.labels[name]; ok {
		if b.err == nil {
			b.err = curated.Errorf(DuplicateLabel, b.name, name)
		}
		return
	}
	b.labels[name] = len(b.ins)
}

// Build resolves branch targets and returns the finished Program.
func (b *Builder) Build() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.ins) == 0 || b.ins[len(b.ins)-1].Defn.Opcode != instructions.RET {
		return nil, curated.Errorf(NoReturn, b.name)
	}

	prg := &Program{
		Name:   b.name,
		ins:    make([]Instruction, len(b.ins)),
		labels: make(map[int][]string),
	}
	copy(prg.ins, b.ins)

	for i := range prg.ins {
		if prg.ins[i].label == "" {
			continue
		}
		t, ok := b.labels[prg.ins[i].label]
		if !ok {
			return nil, curated.Errorf(UndefinedLabel, b.name, prg.ins[i].label)
		}
		prg.ins[i].Target = t
	}

	for l, i := range b.labels {
		prg.labels[i] = append(prg.labels[i], l)
	}

	return prg, nil
}

// Nop adds a NOP instruction.
func (b *Builder) Nop() { b.add(instructions.NOP, Instruction{}) }

// Ldi adds LDI Rd, K.
func (b *Builder) Ldi(d Register, k uint8) { b.add(instructions.LDI, Instruction{Rd: d, K: k}) }

// Mov adds MOV Rd, Rr.
func (b *Builder) Mov(d, r Register) { b.add(instructions.MOV, Instruction{Rd: d, Rr: r}) }

// Clr adds CLR Rd.
func (b *Builder) Clr(d Register) { b.add(instructions.CLR, Instruction{Rd: d}) }

// Add adds ADD Rd, Rr.
func (b *Builder) Add(d, r Register) { b.add(instructions.ADD, Instruction{Rd: d, Rr: r}) }

// And adds AND Rd, Rr.
func (b *Builder) And(d, r Register) { b.add(instructions.AND, Instruction{Rd: d, Rr: r}) }

// Andi adds ANDI Rd, K.
func (b *Builder) Andi(d Register, k uint8) { b.add(instructions.ANDI, Instruction{Rd: d, K: k}) }

// Sub adds SUB Rd, Rr.
func (b *Builder) Sub(d, r Register) { b.add(instructions.SUB, Instruction{Rd: d, Rr: r}) }

// Subi adds SUBI Rd, K.
func (b *Builder) Subi(d Register, k uint8) { b.add(instructions.SUBI, Instruction{Rd: d, K: k}) }

// Cpi adds CPI Rd, K.
func (b *Builder) Cpi(d Register, k uint8) { b.add(instructions.CPI, Instruction{Rd: d, K: k}) }

// Com adds COM Rd.
func (b *Builder) Com(d Register) { b.add(instructions.COM, Instruction{Rd: d}) }

// Dec adds DEC Rd.
func (b *Builder) Dec(d Register) { b.add(instructions.DEC, Instruction{Rd: d}) }

// Lsl adds LSL Rd.
func (b *Builder) Lsl(d Register) { b.add(instructions.LSL, Instruction{Rd: d}) }

// Lsr adds LSR Rd.
func (b *Builder) Lsr(d Register) { b.add(instructions.LSR, Instruction{Rd: d}) }

// Ror adds ROR Rd.
func (b *Builder) Ror(d Register) { b.add(instructions.ROR, Instruction{Rd: d}) }

// Bst adds BST Rd, bit.
func (b *Builder) Bst(d Register, bit uint8) { b.add(instructions.BST, Instruction{Rd: d, K: bit}) }

// Lds adds LDS Rd, sym.
func (b *Builder) Lds(d Register, sym bus.Symbol) {
	b.add(instructions.LDS, Instruction{Rd: d, Sym: sym})
}

// LdXInc adds LD Rd, X+.
func (b *Builder) LdXInc(d Register) { b.add(instructions.LDXInc, Instruction{Rd: d}) }

// LdY adds LD Rd, Y.
func (b *Builder) LdY(d Register) { b.add(instructions.LDY, Instruction{Rd: d}) }

// Lpm adds LPM Rd, Z.
func (b *Builder) Lpm(d Register) { b.add(instructions.LPM, Instruction{Rd: d}) }

// In adds IN Rd, reg.
func (b *Builder) In(d Register, reg bus.IO) { b.add(instructions.IN, Instruction{Rd: d, IO: reg}) }

// Out adds OUT reg, Rr.
func (b *Builder) Out(reg bus.IO, r Register) { b.add(instructions.OUT, Instruction{IO: reg, Rr: r}) }

// Cbi adds CBI reg, bit.
func (b *Builder) Cbi(reg bus.IO, bit uint8) { b.add(instructions.CBI, Instruction{IO: reg, K: bit}) }

// Brcc adds BRCC label.
func (b *Builder) Brcc(label string) { b.add(instructions.BRCC, Instruction{label: label}) }

// Brcs adds BRCS label. BRLO is the same instruction.
func (b *Builder) Brcs(label string) { b.add(instructions.BRCS, Instruction{label: label}) }

// Breq adds BREQ label.
func (b *Builder) Breq(label string) { b.add(instructions.BREQ, Instruction{label: label}) }

// Brtc adds BRTC label.
func (b *Builder) Brtc(label string) { b.add(instructions.BRTC, Instruction{label: label}) }

// Rjmp adds RJMP label.
func (b *Builder) Rjmp(label string) { b.add(instructions.RJMP, Instruction{label: label}) }

// Ret adds RET.
func (b *Builder) Ret() { b.add(instructions.RET, Instruction{}) }
