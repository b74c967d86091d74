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

package crunched_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/jetsetilly/tiletv/crunched"
	"github.com/jetsetilly/tiletv/test"
)

func TestEmptyData(t *testing.T) {
	d := crunched.NewData(make([]byte, 100))
	test.ExpectFailure(t, d.IsCrunched())

	test.ExpectSuccess(t, d.Crunch())
	test.ExpectSuccess(t, d.IsCrunched())

	expected := []byte{0, 99}
	inspection := d.Inspect()
	test.DemandEquality(t, len(inspection), len(expected))
	for i, v := range inspection {
		test.ExpectEquality(t, v, expected[i])
	}

	test.ExpectSuccess(t, bytes.Equal(d.Bytes(), make([]byte, 100)))
	test.ExpectFailure(t, d.IsCrunched())
}

func TestExampleData(t *testing.T) {
	b := make([]byte, 20)
	copy(b, []byte{1, 2, 3, 3, 3, 3, 4, 4, 5, 6})

	d := crunched.NewData(b)
	test.ExpectSuccess(t, d.Crunch())

	expected := []byte{1, 0, 2, 0, 3, 3, 4, 1, 5, 0, 6, 0, 0, 9}
	inspection := d.Inspect()
	test.DemandEquality(t, len(inspection), len(expected))
	for i, v := range inspection {
		test.ExpectEquality(t, v, expected[i])
	}

	u, c := d.Size()
	test.ExpectEquality(t, u, 20)
	test.ExpectEquality(t, c, len(expected))
}

func TestLongRun(t *testing.T) {
	d := crunched.NewData(bytes.Repeat([]byte{7}, 600))
	test.ExpectSuccess(t, d.Crunch())

	expected := []byte{7, 255, 7, 255, 7, 87}
	test.ExpectSuccess(t, bytes.Equal(d.Inspect(), expected))

	e, err := crunched.FromCrunched(d.Inspect(), 600)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(e.Bytes(), bytes.Repeat([]byte{7}, 600)))
}

func TestUncrunchableData(t *testing.T) {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}

	d := crunched.NewData(b)
	test.ExpectFailure(t, d.Crunch())
	test.ExpectFailure(t, d.IsCrunched())
	test.ExpectSuccess(t, bytes.Equal(d.Bytes(), b))
}

func TestBadStream(t *testing.T) {
	_, err := crunched.FromCrunched([]byte{1, 2, 3}, 10)
	test.ExpectFailure(t, err)

	_, err = crunched.FromCrunched([]byte{1, 9}, 5)
	test.ExpectFailure(t, err)

	_, err = crunched.FromCrunched([]byte{1, 1}, 5)
	test.ExpectFailure(t, err)
}

func FuzzCrunch(f *testing.F) {
	f.Add(uint(10), int64(1))
	f.Fuzz(func(t *testing.T, size uint, seed int64) {
		size = size%4096 + 1
		rnd := rand.New(rand.NewSource(seed))

		// runs of random length
		b := make([]byte, size)
		for i := 0; i < len(b); {
			v := byte(rnd.Intn(4))
			for n := rnd.Intn(20); n >= 0 && i < len(b); n-- {
				b[i] = v
				i++
			}
		}

		d := crunched.NewData(b)
		if d.Crunch() {
			e, err := crunched.FromCrunched(d.Inspect(), len(b))
			test.DemandSuccess(t, err)
			test.ExpectSuccess(t, bytes.Equal(e.Bytes(), b))
		}
		test.ExpectSuccess(t, bytes.Equal(d.Bytes(), b))
	})
}
