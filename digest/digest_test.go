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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/demo"
	"github.com/jetsetilly/tiletv/digest"
	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/setup"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/test"
)

// run the demo for a number of frames and return the video and signal
// digests
func run(t *testing.T, prefs string, frames int) (string, string) {
	t.Helper()

	cfg, err := setup.NewConfig("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, cfg.Apply("isr.zeroseed::true; "+prefs))

	res, err := cfg.Resolve()
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(res.Chip, res.Geometry, res.Interrupts)
	test.DemandSuccess(t, err)

	d, err := demo.NewDemo(m, res.Font, res.Maps)
	test.DemandSuccess(t, err)

	tv, err := television.NewTelevision(m.Geom.Spec, 2)
	test.DemandSuccess(t, err)
	m.SyncLine.AddListener(tv)
	m.VideoLine.AddListener(tv)

	vid := digest.NewVideo(tv)
	sig := digest.NewSignal(m.SyncLine, m.VideoLine)

	l := m.Lockstep()
	for i := 0; i < frames; i++ {
		framesync.WaitEndDisplay(l, 1)
		test.DemandSuccess(t, l.Err())
		d.Update()
	}

	n, _ := vid.Frames()
	test.ExpectSuccess(t, n > 0)
	test.ExpectSuccess(t, sig.Events() > 0)

	return vid.Hash(), sig.Hash()
}

func TestDeterministic(t *testing.T) {
	v1, s1 := run(t, "", 3)
	v2, s2 := run(t, "", 3)
	test.ExpectEquality(t, v1, v2)
	test.ExpectEquality(t, s1, s2)

	// a longer run continues the chain
	v3, s3 := run(t, "", 4)
	test.ExpectInequality(t, v1, v3)
	test.ExpectInequality(t, s1, s3)

	// a different picture
	v4, s4 := run(t, "hpos.origin::-16", 3)
	test.ExpectInequality(t, v1, v4)
	test.ExpectInequality(t, s1, s4)
}

func TestSignalLevelChanges(t *testing.T) {
	line := signal.NewLine(signal.Video)
	dig := digest.NewSignal(line)
	empty := dig.Hash()

	// writes that do not change the level are ignored
	line.Write(false, 10)
	line.Write(false, 11)
	test.ExpectEquality(t, dig.Events(), 0)
	test.ExpectEquality(t, dig.Hash(), empty)

	line.Write(true, 12)
	line.Write(true, 13)
	line.Write(false, 14)
	test.ExpectEquality(t, dig.Events(), 2)
	h := dig.Hash()
	test.ExpectInequality(t, h, empty)

	// hash is stable when no more events arrive
	test.ExpectEquality(t, dig.Hash(), h)

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Events(), 0)
	test.ExpectEquality(t, dig.Hash(), empty)
}

func TestSignalBufferFlush(t *testing.T) {
	// enough events to fill the buffer several times
	a := signal.NewLine(signal.Video)
	da := digest.NewSignal(a)
	b := signal.NewLine(signal.Video)
	db := digest.NewSignal(b)

	for i := 0; i < 5000; i++ {
		a.Write(i%2 == 0, int64(i))
		b.Write(i%2 == 0, int64(i))
	}
	test.ExpectEquality(t, da.Hash(), db.Hash())

	// one differing cycle changes the digest
	a.Write(true, 6000)
	b.Write(true, 6001)
	test.ExpectInequality(t, da.Hash(), db.Hash())
}
