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

// Package sdltv is a PixelRenderer that shows the reconstructed picture in an
// SDL window. Keyboard events from the window are forwarded as
// userinput.Event values.
//
// All SDL functions are called from Service(), which must be called from the
// main thread. NewFrame() is called from the interrupt context and only
// queues the frame.
package sdltv

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinel errors.
const (
	SDL = "sdltv: %v"
)

const windowTitle = "TileTV"

const pixelDepth = 4

// SdlTV is a simple SDL implementation of the television.PixelRenderer
// interface.
type SdlTV struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// window pixels per image pixel
	scale float32

	// the size requested by Resize(). the texture is recreated by Service()
	// when the size has changed
	sizeLock sync.Mutex
	size     image.Point
	resized  bool

	// the size of the current texture
	width  int32
	height int32

	// the pixels copied to the texture
	pixels []byte

	// frames waiting to be shown. frames are dropped if the window falls
	// behind
	frames  chan television.Frame
	dropped atomic.Int64

	// events from the window are sent on this channel. can be nil
	userinput chan<- userinput.Event

	ended atomic.Bool
}

// NewSdlTV is the preferred method of initialisation for SdlTV. Must be
// called from the main thread.
func NewSdlTV(scale float32, events chan<- userinput.Event) (*SdlTV, error) {
	runtime.LockOSThread()

	scr := &SdlTV{
		scale:     scale,
		frames:    make(chan television.Frame, 1),
		userinput: events,
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	// window size is set when the texture is created
	scr.window, err = sdl.CreateWindow(windowTitle, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, 0, 0, uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(SDL, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		scr.destroy()
		return nil, curated.Errorf(SDL, err)
	}

	return scr, nil
}

// Resize implements the television.PixelRenderer interface.
func (scr *SdlTV) Resize(spec specification.Spec, width, height int) error {
	scr.sizeLock.Lock()
	defer scr.sizeLock.Unlock()
	scr.size = image.Pt(width, height)
	scr.resized = true
	return nil
}

// NewFrame implements the television.PixelRenderer interface.
func (scr *SdlTV) NewFrame(f television.Frame) error {
	select {
	case scr.frames <- f:
	default:
		scr.dropped.Add(1)
	}
	return nil
}

// EndRendering implements the television.PixelRenderer interface. The window
// is closed by the next call to Service().
func (scr *SdlTV) EndRendering() error {
	scr.ended.Store(true)
	return nil
}

// Dropped returns the number of frames that were not shown because the
// window was still showing the previous frame.
func (scr *SdlTV) Dropped() int64 {
	return scr.dropped.Load()
}

func (scr *SdlTV) destroy() {
	if scr.texture != nil {
		_ = scr.texture.Destroy()
		scr.texture = nil
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
		scr.renderer = nil
	}
	if scr.window != nil {
		_ = scr.window.Destroy()
		scr.window = nil
	}
	sdl.Quit()
}

// recreate the texture if Resize() has been called since the last call
func (scr *SdlTV) applySize() error {
	scr.sizeLock.Lock()
	size := scr.size
	resized := scr.resized
	scr.resized = false
	scr.sizeLock.Unlock()

	if !resized {
		return nil
	}

	if scr.texture != nil {
		_ = scr.texture.Destroy()
		scr.texture = nil
	}

	scr.width = int32(size.X)
	scr.height = int32(size.Y)
	scr.pixels = make([]byte, size.X*size.Y*pixelDepth)

	var err error
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), scr.width, scr.height)
	if err != nil {
		return curated.Errorf(SDL, err)
	}

	// the picture is shown with the 4:3 aspect ratio of the television
	w := int32(float32(scr.width) * scr.scale)
	h := w * 3 / 4
	scr.window.SetSize(w, h)
	scr.window.Show()

	logger.Logf(logger.Allow, "sdltv", "texture %dx%d, window %dx%d", scr.width, scr.height, w, h)

	return nil
}

// copy the greyscale frame into the pixel buffer. the alpha channel is
// always opaque
func (scr *SdlTV) convert(f television.Frame) {
	img := f.Image
	b := img.Bounds()
	w := min(b.Dx(), int(scr.width))
	h := min(b.Dy(), int(scr.height))

	for y := range h {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		dst := scr.pixels[y*int(scr.width)*pixelDepth:]
		for x, v := range src {
			i := x * pixelDepth
			dst[i] = v
			dst[i+1] = v
			dst[i+2] = v
			dst[i+3] = 0xff
		}
	}
}

func (scr *SdlTV) draw() error {
	if scr.texture == nil {
		return nil
	}

	pixels, _, err := scr.texture.Lock(nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	copy(pixels, scr.pixels)
	scr.texture.Unlock()

	if err := scr.renderer.Clear(); err != nil {
		return curated.Errorf(SDL, err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf(SDL, err)
	}
	scr.renderer.Present()

	return nil
}
