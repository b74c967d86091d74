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

// Package regression facilitates the regression testing of the video
// generator. A test is a configuration, a number of frames and the digest of
// the output after running the demo screen for that many frames. Tests are
// stored in a database file and can be re-run at any time. A different
// digest means that the output of the generator has changed.
//
// The interrupt jitter always uses the predictable sequence so that the
// output is the same for every run.
//
// The keys of failed tests are saved in a file alongside the database so
// that they can be re-run with the special key FAILS.
package regression
