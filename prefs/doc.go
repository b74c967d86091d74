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

// Package prefs stores user preferences on disk. Preference values are held in
// the Bool, Int, Float and String types which are safe to read from any
// goroutine. A value is associated with a key when it is added to a Disk
// instance.
//
// The file format is one preference per line:
//
//	video.mode :: ramtiles-scroll
//
// Lines for keys that are not added to a Disk instance are preserved when the
// file is saved, so different parts of the program can share one file.
//
// Values can be overridden for a single Load() with the command line stack.
// See PushCommandLineStack() for details.
package prefs
