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

// Package cpu is a cycle counting interpreter for a subset of the AVR
// instruction set. It exists so that the timing of the video kernels can be
// checked exactly: every instruction advances the cycle counter by its
// documented cost and every I/O access is reported to the bus with the cycle
// at which it happens.
//
// Programs are not decoded from flash. They are assembled with the Builder
// type into a list of instructions with resolved branch targets:
//
//	b := cpu.NewBuilder("example")
//	b.Ldi(cpu.R24, 10)
//	b.Label("loop")
//	b.Subi(cpu.R24, 3)
//	b.Brcc("loop")
//	b.Ret()
//	prg, err := b.Build()
//
// Only the C, Z and T flags of the status register are modelled.
package cpu
