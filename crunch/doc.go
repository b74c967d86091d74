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

// Package crunch converts bitmap images into tilesets and tile maps for the
// video kernels.
//
// An image is converted to luminance, dithered to one bit per pixel and cut
// into tiles eight pixels wide. Identical tiles are stored once in the
// tileset and the tile map records which tile is used at each position.
//
// Tile zero of a tileset is always blank unless duplicate tiles are
// permitted. Several images can be added to the same tileset, each producing
// its own tile map.
//
// The result can be written as Go source or in a binary form that can be
// read back with ReadBinary().
package crunch
