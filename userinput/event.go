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

package userinput

// Event represents all the different types of input event.
type Event any

// KeyMod identifies the modifier key held down during a keyboard event.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// EventKeyboard is sent for key presses and releases. Key names are those
// used by SDL for scancodes, eg. "Left", "Space", "C".
type EventKeyboard struct {
	Key  string
	Down bool
	Mod  KeyMod
}

// EventQuit is sent when the viewer is closed.
type EventQuit struct{}
