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

// Package setup holds the configuration of the video generator and resolves
// it into the chip, display geometry and interrupt timing used to create a
// machine.
//
// Configuration values are preferences (see the prefs package) and can be
// stored on disk, overridden on the command line with the -prefs flag, or
// applied from a named preset.
//
// Presets are kept in a database file. Each preset entry has the form:
//
//	<key>,preset,<name>,<prefs>,<notes>
//
// where prefs is in the format accepted by Config.Apply(). For example:
//
//	000,preset,pal-wide,"spec::PAL; columns::26; rows::28",wide PAL screen
package setup
