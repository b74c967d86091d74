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

// Action is a request from the user.
type Action int

// List of valid actions.
const (
	ActionNone Action = iota

	// fine scroll by one pixel
	ActionScrollLeft
	ActionScrollRight
	ActionScrollUp
	ActionScrollDown

	// move the picture with the position trims
	ActionPosLeft
	ActionPosRight
	ActionPosUp
	ActionPosDown

	ActionPause
	ActionCapture
	ActionToggleFPSCap
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionScrollLeft:
		return "scroll left"
	case ActionScrollRight:
		return "scroll right"
	case ActionScrollUp:
		return "scroll up"
	case ActionScrollDown:
		return "scroll down"
	case ActionPosLeft:
		return "position left"
	case ActionPosRight:
		return "position right"
	case ActionPosUp:
		return "position up"
	case ActionPosDown:
		return "position down"
	case ActionPause:
		return "pause"
	case ActionCapture:
		return "capture"
	case ActionToggleFPSCap:
		return "toggle fps cap"
	case ActionQuit:
		return "quit"
	}
	return "none"
}
