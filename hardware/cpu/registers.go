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

import "fmt"

// Register is one of the 32 general purpose registers.
type Register uint8

// Named registers. R0 and R1 are the temporary and zero registers of the C
// calling convention. The pointer registers are pairs of general purpose
// registers.
const (
	R0  Register = 0
	R1  Register = 1
	R2  Register = 2
	R3  Register = 3
	R16 Register = 16
	R17 Register = 17
	R18 Register = 18
	R24 Register = 24
	R25 Register = 25
	XL  Register = 26
	XH  Register = 27
	YL  Register = 28
	YH  Register = 29
	ZL  Register = 30
	ZH  Register = 31
)

func (r Register) String() string {
	switch r {
	case XL:
		return "r26"
	case XH:
		return "r27"
	case YL:
		return "r28"
	case YH:
		return "r29"
	case ZL:
		return "r30"
	case ZH:
		return "r31"
	}
	return fmt.Sprintf("r%d", uint8(r))
}

// Registers is the register file and the modelled flags of the status
// register.
type Registers struct {
	R [32]uint8

	Carry bool
	Zero  bool
	T     bool
}

func (reg *Registers) String() string {
	f := []byte("---")
	if reg.T {
		f[0] = 'T'
	}
	if reg.Zero {
		f[1] = 'Z'
	}
	if reg.Carry {
		f[2] = 'C'
	}
	return fmt.Sprintf("X=%04x Y=%04x Z=%04x SREG=%s", reg.X(), reg.Y(), reg.Z(), f)
}

func (reg *Registers) pair(lo Register) uint16 {
	return uint16(reg.R[lo+1])<<8 | uint16(reg.R[lo])
}

func (reg *Registers) setPair(lo Register, v uint16) {
	reg.R[lo] = uint8(v)
	reg.R[lo+1] = uint8(v >> 8)
}

// X returns the value of the X pointer register.
func (reg *Registers) X() uint16 {
	return reg.pair(XL)
}

// Y returns the value of the Y pointer register.
func (reg *Registers) Y() uint16 {
	return reg.pair(YL)
}

// Z returns the value of the Z pointer register.
func (reg *Registers) Z() uint16 {
	return reg.pair(ZL)
}
