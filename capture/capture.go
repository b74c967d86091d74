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

// Package capture saves frames from the television as BMP images.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/television"
	"golang.org/x/image/bmp"
)

// Sentinel errors.
const (
	CaptureError = "capture: %v"
	FileExists   = "capture: image file (%s) already exists"
	NoFrameData  = "capture: no frame to save"
)

// Capture implements the television.FrameTrigger interface. It keeps the
// most recent frame and, when armed, saves a number of consecutive frames.
type Capture struct {
	dir    string
	prefix string

	// only the pixels inside the crop are saved. an empty crop saves the
	// entire frame
	Crop image.Rectangle

	crit sync.Mutex

	// the most recent frame
	last television.Frame
	have bool

	// the number of frames still to be saved
	pending int

	// the files that have been written
	saved []string

	err error
}

// NewCapture is the preferred method of initialisation for the Capture type.
// Files are written to the directory with the prefix followed by the frame
// number.
func NewCapture(dir string, prefix string) (*Capture, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}
	return &Capture{dir: dir, prefix: prefix}, nil
}

// Arm the capture so that the next n frames are saved.
func (c *Capture) Arm(n int) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.pending = n
}

// Pending returns the number of frames still to be saved.
func (c *Capture) Pending() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.pending
}

// Saved returns the names of the files that have been written.
func (c *Capture) Saved() []string {
	c.crit.Lock()
	defer c.crit.Unlock()
	return append([]string{}, c.saved...)
}

// NewFrame implements the television.FrameTrigger interface.
func (c *Capture) NewFrame(f television.Frame) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.last = f
	c.have = true

	if c.pending == 0 {
		return nil
	}
	c.pending--

	return c.save(f)
}

// Save the most recent frame.
func (c *Capture) Save() error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if !c.have {
		return curated.Errorf(NoFrameData)
	}
	return c.save(c.last)
}

func (c *Capture) save(f television.Frame) error {
	fn := filepath.Join(c.dir, fmt.Sprintf("%s_%04d.bmp", c.prefix, f.Num))

	var img image.Image = f.Image
	if !c.Crop.Empty() {
		img = f.Image.SubImage(c.Crop.Intersect(f.Image.Bounds()))
	}

	if err := Write(fn, img); err != nil {
		return err
	}

	c.saved = append(c.saved, fn)
	logger.Logf(logger.Allow, "capture", "saved %s", fn)

	return nil
}

// Write the image to a new BMP file. An existing file is not overwritten.
func Write(filename string, img image.Image) (rerr error) {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return curated.Errorf(FileExists, filename)
		}
		return curated.Errorf(CaptureError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(CaptureError, err)
		}
	}()

	if err := bmp.Encode(f, img); err != nil {
		return curated.Errorf(CaptureError, err)
	}

	return nil
}
