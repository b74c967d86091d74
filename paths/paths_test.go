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

package paths_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/tiletv/paths"
	"github.com/jetsetilly/tiletv/test"
)

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("capture", "ntsc", "bmp")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "capture_ntsc_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".bmp"))

	fn = paths.UniqueFilename("capture", " ", ".wav")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "capture_2"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".wav"))
	test.ExpectFailure(t, strings.Contains(fn, ".."))
}
