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

// Package chips lists the microcontroller variants the video generator can be
// built for. Each variant has a fixed assignment of the video, sync and sound
// pins and a fixed amount of SRAM and flash.
//
// The sync pin is always the compare output A of Timer1. The video pin is bit
// 7 of a port for big-endian pixel order, which shifts the pixel byte left,
// and bit 0 of a port for little-endian order, which shifts right.
package chips

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
)

// Pin is a single output pin.
type Pin struct {
	// board pin label (the Arduino pin number for most boards)
	Label string

	// port register name and bit number
	Port string
	Bit  uint8
}

func (p Pin) String() string {
	return fmt.Sprintf("%s%d (pin %s)", strings.TrimPrefix(p.Port, "PORT"), p.Bit, p.Label)
}

// Chip describes a single microcontroller variant.
type Chip struct {
	Name     string
	Nickname string

	// size of memories in bytes. SRAM starts at data address 0x0100 for all
	// variants. flash beyond 64K is not reachable by LPM and is ignored
	SRAM  int
	Flash int

	Video Pin
	Sync  Pin
	Sound Pin

	// pixel order. little-endian chips output bit 0 first
	LittleEndian bool
}

func (c Chip) String() string {
	order := "big-endian"
	if c.LittleEndian {
		order = "little-endian"
	}
	return fmt.Sprintf("%s: video %s, sync %s, %s", c.Name, c.Video, c.Sync, order)
}

// VideoMask is the bit in the video port that carries the pixel.
func (c Chip) VideoMask() uint8 {
	return 1 << c.Video.Bit
}

// the table is keyed by nickname. the 328 family has a little-endian
// alternative that moves the video pin to PORTC0
var table = []Chip{
	{
		Name: "ATmega1280", Nickname: "128x", SRAM: 8192, Flash: 131072,
		Video: Pin{"29", "PORTA", 7}, Sync: Pin{"11", "PORTB", 5}, Sound: Pin{"10", "PORTB", 4},
	},
	{
		Name: "ATmega2560", Nickname: "256x", SRAM: 8192, Flash: 262144,
		Video: Pin{"29", "PORTA", 7}, Sync: Pin{"11", "PORTB", 5}, Sound: Pin{"10", "PORTB", 4},
	},
	{
		Name: "ATmega644", Nickname: "644", SRAM: 4096, Flash: 65536,
		Video: Pin{"31", "PORTA", 7}, Sync: Pin{"13", "PORTD", 5}, Sound: Pin{"14", "PORTD", 6},
	},
	{
		Name: "ATmega1284", Nickname: "1284", SRAM: 16384, Flash: 131072,
		Video: Pin{"31", "PORTA", 7}, Sync: Pin{"13", "PORTD", 5}, Sound: Pin{"14", "PORTD", 6},
	},
	{
		Name: "ATmega8", Nickname: "8", SRAM: 1024, Flash: 8192,
		Video: Pin{"7", "PORTD", 7}, Sync: Pin{"9", "PORTB", 1}, Sound: Pin{"11", "PORTB", 3},
	},
	{
		Name: "ATmega88", Nickname: "88", SRAM: 1024, Flash: 8192,
		Video: Pin{"7", "PORTD", 7}, Sync: Pin{"9", "PORTB", 1}, Sound: Pin{"11", "PORTB", 3},
	},
	{
		Name: "ATmega168", Nickname: "168", SRAM: 1024, Flash: 16384,
		Video: Pin{"7", "PORTD", 7}, Sync: Pin{"9", "PORTB", 1}, Sound: Pin{"11", "PORTB", 3},
	},
	{
		Name: "ATmega328", Nickname: "328", SRAM: 2048, Flash: 32768,
		Video: Pin{"7", "PORTD", 7}, Sync: Pin{"9", "PORTB", 1}, Sound: Pin{"11", "PORTB", 3},
	},
	{
		Name: "AT90USB1286", Nickname: "90U1286", SRAM: 8192, Flash: 131072,
		Video: Pin{"45", "PORTF", 7}, Sync: Pin{"25", "PORTB", 5}, Sound: Pin{"24", "PORTB", 4},
	},
	{
		Name: "ATmega32U4", Nickname: "32U4", SRAM: 2560, Flash: 32768,
		Video: Pin{"5", "PORTD", 7}, Sync: Pin{"9", "PORTB", 5}, Sound: Pin{"5", "PORTC", 6},
	},
	{
		Name: "ATtiny45", Nickname: "45", SRAM: 256, Flash: 4096,
		Video: Pin{"0", "PORTB", 0}, Sync: Pin{"9", "PORTB", 5}, Sound: Pin{"5", "PORTC", 6},
		LittleEndian: true,
	},
}

// the ATmega8 family can be wired for little-endian output
var littleEndianFamily = map[string]bool{"8": true, "88": true, "168": true, "328": true}

// List returns the names of all supported chips.
func List() []string {
	l := make([]string, len(table))
	for i, c := range table {
		l[i] = c.Name
	}
	return l
}

// Sentinel errors.
const (
	UnknownChip       = "chips: unknown chip (%s)"
	NoLittleEndian    = "chips: %s cannot be wired for little-endian output"
	RequiresLittleEnd = "chips: %s only supports little-endian output"
)

// Lookup a chip by name or nickname. The search is case insensitive. The
// littleEndian argument selects the alternative wiring for chips that support
// it.
func Lookup(name string, littleEndian bool) (Chip, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, c := range table {
		if strings.ToUpper(c.Name) != n && strings.ToUpper(c.Nickname) != n {
			continue
		}

		if c.LittleEndian {
			if !littleEndian {
				return Chip{}, curated.Errorf(RequiresLittleEnd, c.Name)
			}
			return c, nil
		}

		if littleEndian {
			if !littleEndianFamily[c.Nickname] {
				return Chip{}, curated.Errorf(NoLittleEndian, c.Name)
			}
			c.LittleEndian = true
			c.Video = Pin{"A0", "PORTC", 0}
			c.Sound = Pin{"3", "PORTD", 3}
		}

		return c, nil
	}

	return Chip{}, curated.Errorf(UnknownChip, name)
}
