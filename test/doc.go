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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() family of functions report failure with t.Errorf() and
// allow the test to continue. The Demand*() family of functions stop the test
// immediately with t.Fatalf(). Use the Demand functions when later parts of a
// test rely on the value being correct, for example the length of a slice that
// is about to be indexed.
//
// Success and failure values are determined by type:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
package test
