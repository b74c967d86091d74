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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/database"
	"github.com/jetsetilly/tiletv/demo"
	"github.com/jetsetilly/tiletv/digest"
	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/setup"
	"github.com/jetsetilly/tiletv/television"
)

const frameEntryID = "frame"

const (
	frameFieldPrefs int = iota
	frameFieldNumFrames
	frameFieldMode
	frameFieldDigest
	frameFieldNotes
	numFrameFields
)

// the number of CPU cycles in each pixel of the image used for the video
// digest
const digestScale = 2

// FrameRegression is the simplest regression type. It runs the demo screen
// with the configuration for a set number of frames before recording the
// digest.
type FrameRegression struct {
	// configuration values in the form accepted by setup.Config.Apply()
	Prefs string

	NumFrames int
	Mode      DigestMode
	Notes     string

	digest string
}

func deserialiseFrameEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numFrameFields {
		return nil, curated.Errorf(BadEntry, "wrong number of fields in frame entry")
	}

	reg := &FrameRegression{
		Prefs:  fields[frameFieldPrefs],
		Notes:  fields[frameFieldNotes],
		digest: fields[frameFieldDigest],
	}

	var err error

	reg.NumFrames, err = strconv.Atoi(fields[frameFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf(BadField, "number of frames", fields[frameFieldNumFrames])
	}

	reg.Mode, err = ParseDigestMode(fields[frameFieldMode])
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg *FrameRegression) ID() string {
	return frameEntryID
}

// String implements the database.Entry interface.
func (reg *FrameRegression) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "[%s] frames=%d", reg.Mode, reg.NumFrames)
	if reg.Prefs != "" {
		fmt.Fprintf(&s, " %s", reg.Prefs)
	}
	if reg.Notes != "" {
		fmt.Fprintf(&s, " [%s]", reg.Notes)
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *FrameRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Prefs,
		strconv.Itoa(reg.NumFrames),
		reg.Mode.String(),
		reg.digest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *FrameRegression) CleanUp() error {
	return nil
}

// Digest returns the recorded digest. Empty until the regression has been
// added to a database.
func (reg *FrameRegression) Digest() string {
	return reg.digest
}

// regress implements the regression.Regressor interface.
func (reg *FrameRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	output.Write([]byte(msg))

	if reg.NumFrames <= 0 {
		return false, "", curated.Errorf(BadField, "number of frames", reg.NumFrames)
	}
	if reg.Mode == DigestUndefined {
		return false, "", curated.Errorf(BadField, "digest mode", reg.Mode)
	}

	cfg, err := setup.NewConfig("")
	if err != nil {
		return false, "", curated.Errorf(Regression, err)
	}
	if err := cfg.Apply(reg.Prefs); err != nil {
		return false, "", curated.Errorf(Regression, err)
	}
	if err := cfg.ZeroSeed.Set(true); err != nil {
		return false, "", curated.Errorf(Regression, err)
	}

	res, err := cfg.Resolve()
	if err != nil {
		return false, "", curated.Errorf(Regression, err)
	}

	m, err := hardware.NewMachine(res.Chip, res.Geometry, res.Interrupts)
	if err != nil {
		return false, "", curated.Errorf(Regression, err)
	}

	d, err := demo.NewDemo(m, res.Font, res.Maps)
	if err != nil {
		return false, "", curated.Errorf(Regression, err)
	}

	var vid *digest.Video
	var sig *digest.Signal

	if reg.Mode == DigestVideoOnly || reg.Mode == DigestBoth {
		tv, err := television.NewTelevision(m.Geom.Spec, digestScale)
		if err != nil {
			return false, "", curated.Errorf(Regression, err)
		}
		m.SyncLine.AddListener(tv)
		m.VideoLine.AddListener(tv)
		vid = digest.NewVideo(tv)
	}

	if reg.Mode == DigestSignalOnly || reg.Mode == DigestBoth {
		sig = digest.NewSignal(m.SyncLine, m.VideoLine)
	}

	l := m.Lockstep()
	for i := 0; i < reg.NumFrames; i++ {
		framesync.WaitEndDisplay(l, 1)
		if err := l.Err(); err != nil {
			return false, "", curated.Errorf(Regression, err)
		}
		d.Update()
	}

	var hashes []string
	if vid != nil {
		hashes = append(hashes, vid.Hash())
	}
	if sig != nil {
		hashes = append(hashes, sig.Hash())
	}
	hash := strings.Join(hashes, "/")

	if newRegression {
		reg.digest = hash
		return true, "", nil
	}

	if hash != reg.digest {
		return false, "digest mismatch", nil
	}

	return true, "", nil
}
