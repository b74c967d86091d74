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

// HandleInput conceptualises the receiver of user actions.
type HandleInput interface {
	HandleAction(Action) error
}

// the keys with no modifier
var plain = map[string]Action{
	"Left":   ActionScrollLeft,
	"Right":  ActionScrollRight,
	"Up":     ActionScrollUp,
	"Down":   ActionScrollDown,
	"P":      ActionPause,
	"Space":  ActionPause,
	"C":      ActionCapture,
	"F":      ActionToggleFPSCap,
	"Q":      ActionQuit,
	"Escape": ActionQuit,
}

// the keys with the shift modifier
var shifted = map[string]Action{
	"Left":  ActionPosLeft,
	"Right": ActionPosRight,
	"Up":    ActionPosUp,
	"Down":  ActionPosDown,
}

// KeyAction returns the action for a keyboard event. Key releases have no
// action.
func KeyAction(ev EventKeyboard) Action {
	if !ev.Down {
		return ActionNone
	}
	switch ev.Mod {
	case KeyModNone:
		return plain[ev.Key]
	case KeyModShift:
		return shifted[ev.Key]
	}
	return ActionNone
}

// HandleUserInput forwards the action for the event to the handler. Returns
// true if the event was a request to quit. The quit action is also
// forwarded.
func HandleUserInput(ev Event, handle HandleInput) (bool, error) {
	var a Action

	switch ev := ev.(type) {
	case EventQuit:
		a = ActionQuit
	case EventKeyboard:
		a = KeyAction(ev)
	}

	if a == ActionNone {
		return false, nil
	}

	return a == ActionQuit, handle.HandleAction(a)
}
