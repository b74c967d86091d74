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

package statsview_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/tiletv/statsview"
	"github.com/jetsetilly/tiletv/test"
)

func TestURL(t *testing.T) {
	test.ExpectEquality(t, statsview.URL(statsview.Address), "http://localhost:12600/debug/statsview")
}

func TestLaunch(t *testing.T) {
	if testing.Short() {
		t.Skip("stats server not started in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const addr = "localhost:12611"

	var out strings.Builder
	statsview.Launch(ctx, &out, addr)
	test.ExpectSuccess(t, strings.Contains(out.String(), addr))
	test.ExpectSuccess(t, statsview.Poll(addr, 5*time.Second))
}
