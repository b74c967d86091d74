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

// Package assert contains helpers for checking assumptions about the running
// program. They are used to catch programming errors early and are not a
// substitute for error handling.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for the current goroutine. The value is
// different between goroutines and consistent for a given goroutine. It should
// only be used for debugging purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// SameGoRoutine tracks the goroutine that first calls Check(). Subsequent
// calls from a different goroutine panic.
type SameGoRoutine struct {
	id uint64
}

// Check panics if called from a goroutine other than the first caller.
func (s *SameGoRoutine) Check() {
	id := GetGoRoutineID()
	if s.id == 0 {
		s.id = id
		return
	}
	if s.id != id {
		panic("assert: unexpected goroutine")
	}
}

// Reset forgets the tracked goroutine.
func (s *SameGoRoutine) Reset() {
	s.id = 0
}

// ID returns the tracked goroutine. Zero if Check() has not been called since
// the last Reset().
func (s *SameGoRoutine) ID() uint64 {
	return s.id
}
