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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/tiletv/hardware/television/signal"
)

// length of the event buffer. the first part of the buffer is reserved for
// the previous digest value
const signalBufferLength = 4096

// each event is the cycle, and the line and level packed into one byte
const eventLength = 9

// Signal is an implementation of the signal.Listener interface. It should be
// added to both the sync line and the video line. Only changes of level
// contribute to the digest.
//
// Signal is not safe for concurrent use. Hash() should be called once the
// lines are no longer being written.
type Signal struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
	events   int

	// current level of each line
	levels [2]bool
}

// NewSignal is the preferred method of initialisation for the Signal type.
// The digest is added as a listener to the lines.
func NewSignal(lines ...*signal.Line) *Signal {
	dig := &Signal{
		buffer:   make([]uint8, signalBufferLength),
		bufferCt: sha1.Size,
	}
	for _, l := range lines {
		l.AddListener(dig)
	}
	return dig
}

// Hash implements digest.Digest interface. Any buffered events are included.
func (dig *Signal) Hash() string {
	if dig.bufferCt > sha1.Size {
		dig.flush()
	}
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Signal) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.bufferCt = sha1.Size
	dig.events = 0
}

// Events returns the number of level changes included in the digest.
func (dig *Signal) Events() int {
	return dig.events
}

// Signal implements the signal.Listener interface.
func (dig *Signal) Signal(ev signal.Event) {
	id := int(ev.Line) & 1
	if dig.levels[id] == ev.Level {
		return
	}
	dig.levels[id] = ev.Level

	if dig.bufferCt+eventLength > len(dig.buffer) {
		dig.flush()
	}

	binary.BigEndian.PutUint64(dig.buffer[dig.bufferCt:], uint64(ev.Cycle))
	v := uint8(id) << 1
	if ev.Level {
		v |= 0x01
	}
	dig.buffer[dig.bufferCt+8] = v
	dig.bufferCt += eventLength
	dig.events++
}

func (dig *Signal) flush() {
	copy(dig.buffer, dig.digest[:])
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	dig.bufferCt = sha1.Size
}
