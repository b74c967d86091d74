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

package television

import (
	"fmt"
	"image"
	"sync"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/television/limiter"
)

// Pixel values in the reconstructed image. The sync level and the black
// level are shown the same.
const (
	Black uint8 = 0x00
	White uint8 = 0xff
)

// Sentinel errors.
const (
	BadScale   = "television: horizontal scale must be between 1 and 16 (%d)"
	Renderer   = "television: renderer: %v"
	NoRenderer = "television: renderer not attached"
)

// Frame is a completed frame.
type Frame struct {
	Num int

	// the image is owned by the receiver of the frame. the television
	// never writes to it again
	Image *image.Gray

	// number of scanlines in the frame. a stable frame has the same number of
	// scanlines as the previous frame
	Lines  int
	Stable bool

	// extent of the non-black pixels. empty if the frame is entirely black
	Visible image.Rectangle
}

func (f Frame) String() string {
	return fmt.Sprintf("frame %d: %d lines, visible %v", f.Num, f.Lines, f.Visible)
}

// PixelRenderer implementations display, or otherwise work with, the frames
// of the television.
type PixelRenderer interface {
	// Resize is called when the renderer is added and whenever the
	// specification changes
	Resize(spec specification.Spec, width, height int) error

	// NewFrame is called at the end of every frame
	NewFrame(Frame) error

	// some renderers need to dispose of resources gently. the renderer
	// should be considered unusable after EndRendering() has been called
	EndRendering() error
}

// FrameTrigger implementations listen for NewFrame events. FrameTrigger is a
// subset of PixelRenderer.
type FrameTrigger interface {
	NewFrame(Frame) error
}

// Television implements the signal.Listener interface. It should be added
// to both the sync line and the video line.
type Television struct {
	spec specification.Spec

	// cycles per horizontal pixel
	scale int

	width  int
	height int

	// a sync pulse longer than this is a vertical sync pulse
	longPulse int64

	renderers []PixelRenderer
	triggers  []FrameTrigger

	lmtr *limiter.Limiter

	// level of the lines
	sync  bool
	video bool

	// cycle of the start of the current scanline and the earliest cycle
	// not yet painted
	lineStart int64
	painted   int64

	// the current pulse is a vertical sync pulse
	vsync bool

	// the frame being painted. frameNum is -1 until the first vertical sync
	// has been seen
	img      *image.Gray
	y        int
	frameNum int
	visible  image.Rectangle

	// lines in the previous frame
	prevLines int

	// the first error returned by a renderer. no more frames are sent once an
	// error has occurred
	crit sync.Mutex
	err  error
}

// NewTelevision is the preferred method of initialisation for the Television
// type. The scale argument is the number of CPU cycles represented by each
// pixel of the reconstructed image.
func NewTelevision(spec specification.Spec, scale int) (*Television, error) {
	if scale < 1 || scale > 16 {
		return nil, curated.Errorf(BadScale, scale)
	}

	period := int64(spec.CyclesScanline()) + 1

	tv := &Television{
		spec:      spec,
		scale:     scale,
		width:     int((period + int64(scale) - 1) / int64(scale)),
		height:    spec.LinesFrame + 1,
		longPulse: period / 2,
		lmtr:      limiter.NewLimiter(spec.FramesPerSecond),
	}
	tv.lmtr.Active.Store(false)
	tv.Reset()

	logger.Logf(logger.Allow, "television", "%s: %dx%d", spec.ID, tv.width, tv.height)

	return tv, nil
}

func (tv *Television) String() string {
	return fmt.Sprintf("%s television (%dx%d)", tv.spec.ID, tv.width, tv.height)
}

// Reset the television. The next frame starts at the next vertical sync.
func (tv *Television) Reset() {
	tv.sync = true
	tv.video = false
	tv.vsync = false
	tv.lineStart = 0
	tv.painted = 0
	tv.y = tv.height
	tv.frameNum = -1
	tv.prevLines = 0
	tv.img = image.NewGray(image.Rect(0, 0, tv.width, tv.height))
	tv.visible = image.Rectangle{}
}

// Spec returns the television specification.
func (tv *Television) Spec() specification.Spec {
	return tv.spec
}

// Size returns the dimensions of the reconstructed image.
func (tv *Television) Size() (int, int) {
	return tv.width, tv.height
}

// Scale is the number of cycles represented by each pixel.
func (tv *Television) Scale() int {
	return tv.scale
}

// AddPixelRenderer registers an (additional) implementation of PixelRenderer.
func (tv *Television) AddPixelRenderer(r PixelRenderer) error {
	if err := r.Resize(tv.spec, tv.width, tv.height); err != nil {
		return curated.Errorf(Renderer, err)
	}
	tv.renderers = append(tv.renderers, r)
	return nil
}

// RemovePixelRenderer removes a previously added PixelRenderer.
func (tv *Television) RemovePixelRenderer(r PixelRenderer) error {
	for i := range tv.renderers {
		if tv.renderers[i] == r {
			tv.renderers = append(tv.renderers[:i], tv.renderers[i+1:]...)
			return nil
		}
	}
	return curated.Errorf(NoRenderer)
}

// AddFrameTrigger registers an (additional) implementation of FrameTrigger.
func (tv *Television) AddFrameTrigger(f FrameTrigger) {
	tv.triggers = append(tv.triggers, f)
}

// RemoveFrameTrigger removes a previously added FrameTrigger.
func (tv *Television) RemoveFrameTrigger(f FrameTrigger) error {
	for i := range tv.triggers {
		if tv.triggers[i] == f {
			tv.triggers = append(tv.triggers[:i], tv.triggers[i+1:]...)
			return nil
		}
	}
	return curated.Errorf(NoRenderer)
}

// End the television. EndRendering() is called on every renderer.
func (tv *Television) End() error {
	var err error
	for _, r := range tv.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = curated.Errorf(Renderer, e)
		}
	}
	return err
}

// Err returns the first error returned by a renderer or frame trigger. Safe
// to call from any goroutine.
func (tv *Television) Err() error {
	tv.crit.Lock()
	defer tv.crit.Unlock()
	return tv.err
}

// SetFPSCap sets whether frames are paced to the refresh rate of the
// specification.
func (tv *Television) SetFPSCap(set bool) {
	tv.lmtr.Active.Store(set)
}

// SetFPS requests a frame rate other than the refresh rate of the
// specification. A value of zero or less restores the refresh rate.
func (tv *Television) SetFPS(fps float32) {
	if fps <= 0 {
		fps = tv.spec.FramesPerSecond
	}
	tv.lmtr.SetLimit(fps)
}

// GetActualFPS returns the measured number of frames per second.
func (tv *Television) GetActualFPS() float32 {
	return tv.lmtr.Measured.Load().(float32)
}

// Signal implements the signal.Listener interface.
func (tv *Television) Signal(ev signal.Event) {
	tv.paint(ev.Cycle)

	switch ev.Line {
	case signal.Video:
		tv.video = ev.Level

	case signal.Sync:
		if ev.Level == tv.sync {
			return
		}
		tv.sync = ev.Level

		if !ev.Level {
			tv.newScanline(ev.Cycle)
			return
		}

		long := ev.Cycle-tv.lineStart > tv.longPulse
		if long && !tv.vsync {
			tv.newFrame()
		}
		tv.vsync = long
	}
}

// paint the pixels between the last painted cycle and the cycle given. the
// image is black when it is created so only white pixels are painted
func (tv *Television) paint(to int64) {
	from := tv.painted
	tv.painted = to

	if !tv.sync || !tv.video || tv.y >= tv.height || to <= from {
		return
	}

	s := int64(tv.scale)
	x0 := int((from - tv.lineStart + s - 1) / s)
	x1 := min(int((to-tv.lineStart+s-1)/s), tv.width)
	if x0 >= x1 {
		return
	}

	row := tv.img.Pix[tv.y*tv.img.Stride:]
	for x := x0; x < x1; x++ {
		row[x] = White
	}

	tv.visible = tv.visible.Union(image.Rect(x0, tv.y, x1, tv.y+1))
}

func (tv *Television) newScanline(cycle int64) {
	tv.lineStart = cycle
	tv.painted = cycle
	if tv.y < tv.height {
		tv.y++
	}
}

// the current scanline becomes the first scanline of the new frame
func (tv *Television) newFrame() {
	if tv.frameNum >= 0 {
		f := Frame{
			Num:     tv.frameNum,
			Image:   tv.img,
			Lines:   tv.y,
			Stable:  tv.y == tv.prevLines,
			Visible: tv.visible,
		}
		tv.prevLines = tv.y
		tv.img = image.NewGray(image.Rect(0, 0, tv.width, tv.height))
		tv.visible = image.Rectangle{}
		tv.send(f)
	}

	tv.frameNum++
	tv.y = 0

	tv.lmtr.CheckFrame()
	tv.lmtr.MeasureActual()
}

func (tv *Television) send(f Frame) {
	tv.crit.Lock()
	defer tv.crit.Unlock()

	if tv.err != nil {
		return
	}

	for _, r := range tv.renderers {
		if err := r.NewFrame(f); err != nil {
			tv.err = curated.Errorf(Renderer, err)
			logger.Log(logger.Allow, "television", tv.err)
			return
		}
	}
	for _, t := range tv.triggers {
		if err := t.NewFrame(f); err != nil {
			tv.err = curated.Errorf(Renderer, err)
			logger.Log(logger.Allow, "television", tv.err)
			return
		}
	}
}
