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

package termtv

import "github.com/jetsetilly/tiletv/userinput"

// list of ASCII codes for non-alphanumeric characters
const (
	keyCtrlC = 3
	keyEsc   = 27
)

// list of ASCII codes that can follow keyEsc
const (
	escCursor = '['
)

// list of ASCII codes that end a cursor sequence
const (
	cursorUp       = 'A'
	cursorDown     = 'B'
	cursorForward  = 'C'
	cursorBackward = 'D'
)

var cursorKeys = map[byte]string{
	cursorUp:       "Up",
	cursorDown:     "Down",
	cursorForward:  "Right",
	cursorBackward: "Left",
}

// parseKeys translates the bytes read from a terminal in cbreak mode into
// keyboard events. Cursor keys with the shift modifier are sent by terminals
// as ESC [ 1 ; 2 x. An escape with nothing following it is the escape key.
// Terminals do not report key releases so every event is a key press.
func parseKeys(b []byte) []userinput.EventKeyboard {
	var evs []userinput.EventKeyboard

	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == keyCtrlC:
			evs = append(evs, userinput.EventKeyboard{Key: "Escape", Down: true})

		case c == keyEsc:
			if i+2 >= len(b) || b[i+1] != escCursor {
				evs = append(evs, userinput.EventKeyboard{Key: "Escape", Down: true})
				continue
			}

			mod := userinput.KeyModNone
			j := i + 2
			if b[j] == '1' && j+3 < len(b) && b[j+1] == ';' {
				switch b[j+2] {
				case '2':
					mod = userinput.KeyModShift
				case '3':
					mod = userinput.KeyModAlt
				case '5':
					mod = userinput.KeyModCtrl
				}
				j += 3
			}

			if k, ok := cursorKeys[b[j]]; ok {
				evs = append(evs, userinput.EventKeyboard{Key: k, Down: true, Mod: mod})
			}
			i = j

		case c == ' ':
			evs = append(evs, userinput.EventKeyboard{Key: "Space", Down: true})

		case c >= 'a' && c <= 'z':
			evs = append(evs, userinput.EventKeyboard{Key: string(c - 'a' + 'A'), Down: true})

		case c >= 'A' && c <= 'Z':
			evs = append(evs, userinput.EventKeyboard{Key: string(c), Down: true, Mod: userinput.KeyModShift})
		}
	}

	return evs
}
