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
	"fmt"
	"sync"

	"github.com/jetsetilly/tiletv/television"
)

// Video is an implementation of the television.FrameTrigger interface with
// an embedded television for convenience. It generates a SHA-1 value of the
// image every frame. it does not display the image anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Video struct {
	crit     sync.Mutex
	digest   [sha1.Size]byte
	pixels   []byte
	frames   int
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type. The
// digest is added to the television as a frame trigger.
func NewVideo(tv *television.Television) *Video {
	dig := &Video{}
	if tv != nil {
		tv.AddFrameTrigger(dig)
	}
	return dig
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	dig.digest = [sha1.Size]byte{}
	dig.frames = 0
}

// Frames returns the number of frames included in the digest and the number
// of the most recent frame.
func (dig *Video) Frames() (int, int) {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.frames, dig.frameNum
}

// NewFrame implements television.FrameTrigger interface.
func (dig *Video) NewFrame(f television.Frame) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	// the previous digest occupies the head of the buffer
	b := f.Image.Bounds()
	l := len(dig.digest) + b.Dx()*b.Dy()
	if cap(dig.pixels) < l {
		dig.pixels = make([]byte, l)
	}
	dig.pixels = dig.pixels[:l]

	i := copy(dig.pixels, dig.digest[:])
	for y := b.Min.Y; y < b.Max.Y; y++ {
		o := f.Image.PixOffset(b.Min.X, y)
		i += copy(dig.pixels[i:], f.Image.Pix[o:o+b.Dx()])
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++
	dig.frameNum = f.Num

	return nil
}
