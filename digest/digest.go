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

// Package digest contains implementations of the television.FrameTrigger and
// signal.Listener interfaces such that a cryptographic hash is produced. The
// hash can then be used to compare output from subsequent runs - if a new
// hash differs from a previously recorded value then something has changed.
// We use this as the basis for regression tests.
//
// Hashes are chained. Each new hash includes the previous hash so that the
// final value depends on the entire sequence of frames or events.
package digest

// Digest implementations return a cryptographic hash in response to a Hash()
// request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
