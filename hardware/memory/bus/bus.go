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

// Package bus defines how the CPU sees the rest of the machine. The CPU
// package only knows about the interfaces defined here. The memory, timer and
// video packages provide the implementations.
package bus

import "fmt"

// Symbol identifies a named variable in data memory. The video kernels load
// their parameters from these variables with the LDS instruction. Addresses
// of the variables are not modelled, only their names.
type Symbol uint8

// List of valid Symbol values.
const (
	ScreenPtrLo Symbol = iota
	ScreenPtrHi
	TileLine
	RomTileHigh
	RamTileHigh
	HFineScroll
	HFineScrollMask
	OutputDelay
	NumSymbols
)

func (sym Symbol) String() string {
	switch sym {
	case ScreenPtrLo:
		return "screen_ptr_lo"
	case ScreenPtrHi:
		return "screen_ptr_hi"
	case TileLine:
		return "tile_line"
	case RomTileHigh:
		return "rom_tile_high"
	case RamTileHigh:
		return "ram_tile_high"
	case HFineScroll:
		return "h_fine_scroll"
	case HFineScrollMask:
		return "h_fine_scroll_mask"
	case OutputDelay:
		return "output_delay"
	}
	return fmt.Sprintf("sym_%d", sym)
}

// IO identifies an I/O register.
type IO uint8

// List of valid IO values.
const (
	// low byte of the Timer1 counter
	TCNT1L IO = iota

	// the port containing the video pin
	VideoPort
)

func (reg IO) String() string {
	switch reg {
	case TCNT1L:
		return "TCNT1L"
	case VideoPort:
		return "PORT_VID"
	}
	return fmt.Sprintf("io_%d", reg)
}

// DataBus is data memory as seen by the LD and ST family of instructions.
type DataBus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// ProgramBus is program memory as seen by the LPM instruction.
type ProgramBus interface {
	ReadProgram(address uint16) uint8
}

// SymbolBus resolves named variables.
type SymbolBus interface {
	ReadSymbol(sym Symbol) uint8
}

// IOBus is the I/O register space. The cycle argument is the absolute cycle
// at which the access happens so that time dependent registers can be
// modelled.
type IOBus interface {
	In(reg IO, cycle int64) uint8
	Out(reg IO, data uint8, cycle int64)
}

// CPUBus is everything the CPU can reach.
type CPUBus interface {
	DataBus
	ProgramBus
	SymbolBus
	IOBus
}
