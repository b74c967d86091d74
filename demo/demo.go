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

// Package demo is the application running in the main context. It fills the
// screen buffer, animates a RAM tile and responds to user input by changing
// the display controls.
//
// Changes to the screen buffer are made straight after the end of the active
// display so that they are never seen half drawn.
package demo

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/tiletv/capture"
	"github.com/jetsetilly/tiletv/crunch"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/govern"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/userinput"
	"github.com/jetsetilly/tiletv/video"
)

// Sentinel errors.
const (
	Demo = "demo: %v"
)

// Demo implements the userinput.HandleInput interface.
type Demo struct {
	m    *hardware.Machine
	geom *video.Geometry
	maps []*crunch.Tilemap

	// frames are saved when the capture action is received. can be nil
	Capture *capture.Capture

	// called when the fps cap action is received. can be nil
	ToggleFPSCap func()

	crit  sync.Mutex
	state govern.State
	h, v  uint8
	hpos  int8
	vpos  int8

	// number of updates
	updates int
}

// NewDemo is the preferred method of initialisation for the Demo type. The
// font is loaded into the machine. The first tile map, if there is one, is
// shown on the screen. Otherwise the screen shows information about the
// display.
func NewDemo(m *hardware.Machine, font *fonts.Font, maps []*crunch.Tilemap) (*Demo, error) {
	d := &Demo{
		m:     m,
		geom:  m.Geom,
		maps:  maps,
		state: govern.Running,
	}

	if d.geom.FontChars == 256 && len(font.Glyphs) <= 128 {
		font = font.Inverse()
	}
	data, err := font.Layout(d.geom.FontChars, d.geom.LittleEndian)
	if err != nil {
		return nil, curated.Errorf(Demo, err)
	}
	if _, err := m.LoadFont(data); err != nil {
		return nil, curated.Errorf(Demo, err)
	}

	d.Draw()

	return d, nil
}

// Draw the initial screen.
func (d *Demo) Draw() {
	d.m.Critical(func(mem *memory.Memory) {
		for i := range d.geom.ScreenBytes() {
			mem.Write(d.m.Screen+uint16(i), ' ')
		}

		if len(d.maps) > 0 {
			d.drawMap(mem, d.maps[0])
			return
		}

		d.text(mem, 0, 0, "TILETV")
		d.text(mem, 0, 1, fmt.Sprintf("%s %s", d.geom.Spec.ID, d.geom.Mode.Name()))
		d.text(mem, 0, 2, fmt.Sprintf("%dX%d", d.geom.Columns, d.geom.Rows))

		// every printable character
		for c := 0; c < 0x60; c++ {
			col := c % d.geom.Columns
			row := 4 + c/d.geom.Columns
			d.put(mem, col, row, uint8(' '+c))
		}

		// the RAM tiles on the row above the status line
		for i := range min(d.geom.RAMTiles, d.geom.Columns) {
			d.put(mem, i, d.geom.Rows-2, 0x80|uint8(i))
		}
	})
}

func (d *Demo) drawMap(mem *memory.Memory, tm *crunch.Tilemap) {
	for y := range min(tm.Height, d.geom.Rows) {
		for x := range min(tm.Width, d.geom.Columns) {
			d.put(mem, x, y, tm.Tiles[y*tm.Width+x])
		}
	}
}

func (d *Demo) put(mem *memory.Memory, col int, row int, v uint8) {
	if col < 0 || col >= d.geom.Columns || row < 0 || row >= d.geom.Rows {
		return
	}
	mem.Write(d.m.Screen+uint16(row*d.geom.Columns+col), v)
}

func (d *Demo) text(mem *memory.Memory, col int, row int, s string) {
	for i, c := range strings.ToUpper(s) {
		if c > 0x7f {
			c = '?'
		}
		d.put(mem, col+i, row, uint8(c))
	}
}

// Update the screen. Called once per frame after the end of the active
// display.
func (d *Demo) Update() {
	d.crit.Lock()
	d.updates++
	n := d.updates
	status := fmt.Sprintf("F%03d H%d V%d", d.m.FrameCount(), d.h, d.v)
	d.crit.Unlock()

	d.m.Critical(func(mem *memory.Memory) {
		if len(d.maps) == 0 {
			d.text(mem, 0, d.geom.Rows-1, status)
		}

		// a diagonal line that moves one pixel every frame
		if d.geom.RAMTiles > 0 {
			for l := range d.geom.FontHeight {
				b := uint8(0x80) >> ((l + n) & 0x07)
				if d.geom.LittleEndian {
					b = bits.Reverse8(b)
				}
				mem.Write(d.m.RAMTiles+uint16(fonts.Offset(128, 0, l)), b)
			}
		}
	})
}

// Updates returns the number of times Update() has been called.
func (d *Demo) Updates() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.updates
}

// ContinueCheck implements the govern.ContinueCheck function type.
func (d *Demo) ContinueCheck() (govern.State, error) {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.state, nil
}

// Loop updates the screen once per frame until the context is cancelled or
// the quit action is received. The source should be the machine or a
// Lockstep of the machine.
func (d *Demo) Loop(ctx context.Context, src framesync.Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		state, _ := d.ContinueCheck()
		switch state {
		case govern.Ending:
			return nil
		case govern.Paused:
			time.Sleep(20 * time.Millisecond)
			continue
		}

		framesync.WaitEndDisplay(&ending{Source: src, ctx: ctx, d: d}, 1)
		if state, _ := d.ContinueCheck(); state == govern.Ending || ctx.Err() != nil {
			return nil
		}
		d.Update()

		if l, ok := src.(*hardware.Lockstep); ok && l.Err() != nil {
			return curated.Errorf(Demo, l.Err())
		}
	}
}

// the frame counter of an ending source changes on every poll so that
// WaitEndDisplay() returns even if the machine has stopped
type ending struct {
	framesync.Source
	ctx context.Context
	d   *Demo
	n   uint8
}

func (e *ending) FrameCount() uint8 {
	if state, _ := e.d.ContinueCheck(); state == govern.Ending || e.ctx.Err() != nil {
		e.n++
		return e.n
	}
	return e.Source.FrameCount()
}

// HandleAction implements the userinput.HandleInput interface.
func (d *Demo) HandleAction(action userinput.Action) error {
	d.crit.Lock()
	defer d.crit.Unlock()

	switch action {
	case userinput.ActionScrollLeft:
		d.h = (d.h + 1) & 0x07
		d.m.Video.SetHScroll(d.h)
	case userinput.ActionScrollRight:
		d.h = (d.h - 1) & 0x07
		d.m.Video.SetHScroll(d.h)
	case userinput.ActionScrollUp:
		d.v = (d.v + 1) & 0x07
		d.m.Video.SetVScroll(d.v)
	case userinput.ActionScrollDown:
		d.v = (d.v - 1) & 0x07
		d.m.Video.SetVScroll(d.v)
	case userinput.ActionPosLeft:
		d.hpos = d.setHPos(-1)
	case userinput.ActionPosRight:
		d.hpos = d.setHPos(1)
	case userinput.ActionPosUp:
		d.vpos = step(d.vpos, -1, math.MinInt8, math.MaxInt8)
		d.m.Video.SetVPos(d.vpos)
	case userinput.ActionPosDown:
		d.vpos = step(d.vpos, 1, math.MinInt8, math.MaxInt8)
		d.m.Video.SetVPos(d.vpos)
	case userinput.ActionPause:
		switch d.state {
		case govern.Running:
			d.state = govern.Paused
		case govern.Paused:
			d.state = govern.Running
		}
	case userinput.ActionCapture:
		if d.Capture != nil {
			d.Capture.Arm(1)
		}
	case userinput.ActionToggleFPSCap:
		if d.ToggleFPSCap != nil {
			d.ToggleFPSCap()
		}
	case userinput.ActionQuit:
		d.state = govern.Ending
	default:
		return nil
	}

	logger.Logf(logger.Allow, "demo", "%s: %s", action, d.m.Video.Controls())
	return nil
}

// move the horizontal position by delta. the position stops at the ends of
// the range accepted by the video generator
func (d *Demo) setHPos(delta int8) int8 {
	lo, hi := d.m.Video.HPosRange()
	h := step(d.hpos, delta, lo, hi)
	d.m.Video.SetHPos(h)
	return h
}

// add delta to v without leaving the range lo to hi
func step(v int8, delta int8, lo int8, hi int8) int8 {
	return int8(min(max(int(v)+int(delta), int(lo)), int(hi)))
}
