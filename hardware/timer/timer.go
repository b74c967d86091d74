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

// Package timer implements Timer1 of the microcontroller in the one mode the
// video generator uses: fast PWM with TOP in ICR1 and inverted output on
// OC1A.
//
// In this mode the counter runs from zero (BOTTOM) to TOP and wraps. The
// compare output is cleared at BOTTOM and set when the counter matches OCR1A,
// so every period begins with a low pulse of OCR1A+1 cycles. That pulse is
// the sync pulse of the scanline. The overflow interrupt is raised once per
// period.
//
// OCR1A is double buffered. A value written during a period takes effect at
// the next BOTTOM.
package timer

import (
	"fmt"
)

// Timer is Timer1 in fast PWM mode.
type Timer struct {
	// ICR1
	top uint16

	// OCR1A as written and OCR1A as used by the compare unit
	buffered uint16
	compare  uint16

	// the cycle at which period zero begins
	origin int64
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer() *Timer {
	return &Timer{}
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("ICR1=%d OCR1A=%d (buffered %d)", tmr.top, tmr.compare, tmr.buffered)
}

// Start the timer with the TOP and initial compare values. The first period
// begins at the origin cycle.
func (tmr *Timer) Start(top uint16, compare uint16, origin int64) {
	tmr.top = top
	tmr.buffered = compare
	tmr.compare = compare
	tmr.origin = origin
}

// Top returns the value of ICR1.
func (tmr *Timer) Top() uint16 {
	return tmr.top
}

// Period is the number of cycles between each overflow.
func (tmr *Timer) Period() int64 {
	return int64(tmr.top) + 1
}

// PeriodStart returns the cycle at which period n begins.
func (tmr *Timer) PeriodStart(n int64) int64 {
	return tmr.origin + n*tmr.Period()
}

// Count returns the value of TCNT1 at the specified cycle.
func (tmr *Timer) Count(cycle int64) uint16 {
	c := (cycle - tmr.origin) % tmr.Period()
	if c < 0 {
		c += tmr.Period()
	}
	return uint16(c)
}

// SetCompare writes OCR1A. The value takes effect at the next BOTTOM.
func (tmr *Timer) SetCompare(v uint16) {
	tmr.buffered = v
}

// Compare returns the value of OCR1A currently used by the compare unit.
func (tmr *Timer) Compare() uint16 {
	return tmr.compare
}

// Bottom is called as the counter wraps to zero. The buffered compare value
// is latched and the width of the low pulse on OC1A for the new period is
// returned.
func (tmr *Timer) Bottom() int64 {
	tmr.compare = tmr.buffered
	return int64(tmr.compare) + 1
}
