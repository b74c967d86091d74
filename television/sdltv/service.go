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

package sdltv

import (
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// Service the window: handle events, apply any resize and show the most
// recent frame. Returns false once the window has been closed, after which
// Service() should not be called again.
//
// MUST ONLY be called from the main thread.
func (scr *SdlTV) Service() (bool, error) {
	if scr.ended.Load() {
		scr.destroy()
		return false, nil
	}

	if err := scr.applySize(); err != nil {
		return true, err
	}

	// wait a short time for the first event so that the loop does not spin.
	// remaining events are taken without waiting
	for ev := sdl.WaitEventTimeout(1); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.send(userinput.EventQuit{})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}

			mod := userinput.KeyModNone
			if sdl.GetModState()&sdl.KMOD_LALT == sdl.KMOD_LALT ||
				sdl.GetModState()&sdl.KMOD_RALT == sdl.KMOD_RALT {
				mod = userinput.KeyModAlt
			} else if sdl.GetModState()&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT ||
				sdl.GetModState()&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
				mod = userinput.KeyModShift
			} else if sdl.GetModState()&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL ||
				sdl.GetModState()&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
				mod = userinput.KeyModCtrl
			}

			scr.send(userinput.EventKeyboard{
				Key:  sdl.GetScancodeName(ev.Keysym.Scancode),
				Down: ev.Type == sdl.KEYDOWN,
				Mod:  mod,
			})
		}
	}

	select {
	case f := <-scr.frames:
		scr.convert(f)
		if err := scr.draw(); err != nil {
			return true, err
		}
	default:
	}

	return true, nil
}

func (scr *SdlTV) send(ev userinput.Event) {
	if scr.userinput == nil {
		return
	}
	select {
	case scr.userinput <- ev:
	default:
		logger.Log(logger.Allow, "sdltv", "dropped input event")
	}
}
