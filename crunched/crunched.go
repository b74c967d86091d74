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

// Package crunched run-length encodes byte data. Tile maps are mostly long
// runs of the same tile so the simple method works well for them.
//
// Each byte in the crunched stream is followed by a count of how many more
// times it repeats. The maximum count is 255.
package crunched

import (
	"github.com/jetsetilly/tiletv/curated"
)

// Sentinel errors.
const (
	BadStream = "crunched: %s"
)

// Data is a block of bytes that may be held in crunched form.
type Data struct {
	crunched bool
	data     []byte
	size     int
}

// NewData is the preferred method of initialisation for the Data type. The
// data is copied.
func NewData(b []byte) *Data {
	return &Data{
		data: append([]byte(nil), b...),
		size: len(b),
	}
}

// IsCrunched returns true if data is currently crunched.
func (d *Data) IsCrunched() bool {
	return d.crunched
}

// Size returns the uncrunched size and the current size of the data.
func (d *Data) Size() (int, int) {
	return d.size, len(d.data)
}

// Inspect returns the data in its current form. It will not be uncrunched.
func (d *Data) Inspect() []byte {
	return d.data
}

// Crunch the data. Data that would not get smaller is left as it is and
// the function returns false.
func (d *Data) Crunch() bool {
	if d.crunched || len(d.data) == 0 {
		return d.crunched
	}

	working := make([]byte, 0, len(d.data))
	working = append(working, d.data[0])

	var ct int
	for _, v := range d.data[1:] {
		if v == working[len(working)-1] && ct < 255 {
			ct++
			continue
		}

		// two bytes are about to be added. give up if that reaches the
		// size of the plain data
		if len(working)+2 >= len(d.data) {
			return false
		}
		working = append(working, byte(ct), v)
		ct = 0
	}
	working = append(working, byte(ct))

	if len(working) >= len(d.data) {
		return false
	}

	d.data = working
	d.crunched = true
	return true
}

// Bytes returns the uncrunched data. The data is uncrunched if necessary.
func (d *Data) Bytes() []byte {
	if d.crunched {
		b, err := uncrunch(d.data, d.size)
		if err != nil {
			// crunched data is only ever created by Crunch() or checked by
			// FromCrunched()
			panic(err)
		}
		d.data = b
		d.crunched = false
	}
	return d.data
}

// FromCrunched creates a Data instance from a stream created by Crunch(). The
// stream is checked to make sure it uncrunches to the specified size.
func FromCrunched(stream []byte, size int) (*Data, error) {
	if _, err := uncrunch(stream, size); err != nil {
		return nil, err
	}
	return &Data{
		crunched: true,
		data:     append([]byte(nil), stream...),
		size:     size,
	}, nil
}

func uncrunch(stream []byte, size int) ([]byte, error) {
	if len(stream)&0x01 == 0x01 {
		return nil, curated.Errorf(BadStream, "odd number of bytes")
	}

	b := make([]byte, 0, size)
	for i := 0; i < len(stream); i += 2 {
		n := int(stream[i+1]) + 1
		if len(b)+n > size {
			return nil, curated.Errorf(BadStream, "data is longer than expected")
		}
		for range n {
			b = append(b, stream[i])
		}
	}

	if len(b) != size {
		return nil, curated.Errorf(BadStream, "data is shorter than expected")
	}
	return b, nil
}
