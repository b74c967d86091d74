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

// Package termtv is a PixelRenderer that draws the reconstructed picture in
// a terminal using block characters. The terminal is put into cbreak mode so
// that key presses are forwarded as userinput.Event values as soon as they
// are typed.
package termtv

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/userinput"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Sentinel errors.
const (
	NotTerminal = "termtv: %s is not a terminal"
	Termios     = "termtv: %v"
)

// ansi sequences
const (
	cursorHome = "\033[H"
	clearAll   = "\033[2J"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// TermTV implements the television.PixelRenderer interface.
type TermTV struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	frames    chan television.Frame
	userinput chan<- userinput.Event

	// the area of the image that is drawn. grows to include the visible
	// area of every frame
	crit sync.Mutex
	area image.Rectangle

	endOnce sync.Once
}

// NewTermTV is the preferred method of initialisation for TermTV. The output
// must be a terminal.
func NewTermTV(input *os.File, output *os.File, events chan<- userinput.Event) (*TermTV, error) {
	if !term.IsTerminal(int(output.Fd())) {
		return nil, curated.Errorf(NotTerminal, output.Name())
	}
	if !term.IsTerminal(int(input.Fd())) {
		return nil, curated.Errorf(NotTerminal, input.Name())
	}

	tv := &TermTV{
		input:     input,
		output:    output,
		frames:    make(chan television.Frame, 1),
		userinput: events,
	}

	if err := termios.Tcgetattr(input.Fd(), &tv.canAttr); err != nil {
		return nil, curated.Errorf(Termios, err)
	}
	tv.cbreakAttr = tv.canAttr
	termios.Cfmakecbreak(&tv.cbreakAttr)

	if err := termios.Tcsetattr(input.Fd(), termios.TCSANOW, &tv.cbreakAttr); err != nil {
		return nil, curated.Errorf(Termios, err)
	}

	tv.output.WriteString(clearAll + hideCursor)

	return tv, nil
}

// Resize implements the television.PixelRenderer interface.
func (tv *TermTV) Resize(spec specification.Spec, width, height int) error {
	tv.crit.Lock()
	defer tv.crit.Unlock()
	tv.area = image.Rectangle{}
	return nil
}

// NewFrame implements the television.PixelRenderer interface. Frames are
// dropped if the terminal is still drawing the previous frame.
func (tv *TermTV) NewFrame(f television.Frame) error {
	select {
	case tv.frames <- f:
	default:
	}
	return nil
}

// EndRendering implements the television.PixelRenderer interface. The
// terminal is returned to canonical mode.
func (tv *TermTV) EndRendering() error {
	var err error
	tv.endOnce.Do(func() {
		tv.output.WriteString(showCursor + "\n")
		if e := termios.Tcsetattr(tv.input.Fd(), termios.TCSANOW, &tv.canAttr); e != nil {
			err = curated.Errorf(Termios, e)
		}
	})
	return err
}

// Run draws frames and reads keys until the context is cancelled.
func (tv *TermTV) Run(ctx context.Context) error {
	go tv.readKeys(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-tv.frames:
			if err := tv.draw(f); err != nil {
				return err
			}
		}
	}
}

func (tv *TermTV) draw(f television.Frame) error {
	cols, rows, err := term.GetSize(int(tv.output.Fd()))
	if err != nil {
		return curated.Errorf(Termios, err)
	}

	tv.crit.Lock()
	if !f.Visible.Empty() {
		tv.area = tv.area.Union(f.Visible)
	}
	area := tv.area
	tv.crit.Unlock()

	// one row for the status line
	lines := Render(f.Image, area, cols, rows-1)

	s := strings.Builder{}
	s.WriteString(cursorHome)
	for _, l := range lines {
		s.WriteString(l)
		s.WriteString("\r\n")
	}
	fmt.Fprintf(&s, "frame %d  %d lines", f.Num, f.Lines)
	if !f.Stable {
		s.WriteString("  (unstable)")
	}
	s.WriteString("\033[K")

	_, err = tv.output.WriteString(s.String())
	return err
}

func (tv *TermTV) readKeys(ctx context.Context) {
	b := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := tv.input.Read(b)
		if err != nil {
			logger.Log(logger.Allow, "termtv", err)
			return
		}
		for _, ev := range parseKeys(b[:n]) {
			select {
			case tv.userinput <- ev:
			default:
				logger.Log(logger.Allow, "termtv", "dropped input event")
			}
		}
	}
}
