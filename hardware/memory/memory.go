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

// Package memory implements the SRAM and flash of the microcontroller.
//
// Data addresses below SRAMOrigin are the register file and I/O space. They
// are not backed by this package and read as zero. Addresses beyond the end of
// SRAM also read as zero and writes to them are ignored.
//
// Both memories have a simple bump allocator. Buffers that the video kernels
// index with only the low byte of an address, such as RAM tiles and fonts,
// must be allocated on a 256 byte boundary.
package memory

import (
	"github.com/jetsetilly/tiletv/curated"
)

// SRAMOrigin is the data address of the first byte of SRAM.
const SRAMOrigin = 0x0100

// ProgramReserved is the number of bytes at the start of flash reserved for
// the vector table and program code.
const ProgramReserved = 0x0400

// maxFlash is the upper limit of flash reachable by the LPM instruction
const maxFlash = 0x10000

// Sentinel errors.
const (
	OutOfSRAM  = "memory: not enough SRAM for %d bytes (%d available)"
	OutOfFlash = "memory: not enough flash for %d bytes (%d available)"
	BadAlign   = "memory: alignment must be a power of two (%d)"
)

// Memory is the SRAM and flash of the microcontroller.
type Memory struct {
	sram  []uint8
	flash []uint8

	// next free address in each memory
	sramNext  int
	flashNext int
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(sramSize int, flashSize int) *Memory {
	return &Memory{
		sram:      make([]uint8, sramSize),
		flash:     make([]uint8, min(flashSize, maxFlash)),
		sramNext:  SRAMOrigin,
		flashNext: ProgramReserved,
	}
}

// Read implements the bus.DataBus interface.
func (mem *Memory) Read(address uint16) uint8 {
	i := int(address) - SRAMOrigin
	if i < 0 || i >= len(mem.sram) {
		return 0
	}
	return mem.sram[i]
}

// Write implements the bus.DataBus interface.
func (mem *Memory) Write(address uint16, data uint8) {
	i := int(address) - SRAMOrigin
	if i < 0 || i >= len(mem.sram) {
		return
	}
	mem.sram[i] = data
}

// ReadProgram implements the bus.ProgramBus interface.
func (mem *Memory) ReadProgram(address uint16) uint8 {
	if int(address) >= len(mem.flash) {
		return 0
	}
	return mem.flash[address]
}

func align(addr int, alignment int) (int, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return 0, curated.Errorf(BadAlign, alignment)
	}
	return (addr + alignment - 1) &^ (alignment - 1), nil
}

// Allocate a buffer in SRAM. Returns the data address of the buffer.
func (mem *Memory) Allocate(size int, alignment int) (uint16, error) {
	addr, err := align(mem.sramNext, alignment)
	if err != nil {
		return 0, err
	}

	end := SRAMOrigin + len(mem.sram)
	if addr+size > end {
		return 0, curated.Errorf(OutOfSRAM, size, max(0, end-addr))
	}

	mem.sramNext = addr + size
	return uint16(addr), nil
}

// Place data in flash. Returns the program address of the data.
func (mem *Memory) Place(data []uint8, alignment int) (uint16, error) {
	addr, err := align(mem.flashNext, alignment)
	if err != nil {
		return 0, err
	}

	if addr+len(data) > len(mem.flash) {
		return 0, curated.Errorf(OutOfFlash, len(data), max(0, len(mem.flash)-addr))
	}

	copy(mem.flash[addr:], data)
	mem.flashNext = addr + len(data)
	return uint16(addr), nil
}

// SRAMUsed returns the number of bytes of SRAM allocated.
func (mem *Memory) SRAMUsed() int {
	return mem.sramNext - SRAMOrigin
}

// FlashUsed returns the number of bytes of flash used, including the reserved
// program area.
func (mem *Memory) FlashUsed() int {
	return mem.flashNext
}
