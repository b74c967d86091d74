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

// Package userinput translates events from the viewers into actions on the
// video generator. Both the SDL window and the terminal viewer produce the
// same EventKeyboard type and so share the key mapping.
//
// The HandleInput interface is implemented by whatever is driving the
// generator. Actions are forwarded by HandleUserInput().
package userinput
