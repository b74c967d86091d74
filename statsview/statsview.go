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

package statsview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/tiletv/logger"
)

// Address is the default address of the stats server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// the interval between samples
const interval = 2000

// URL returns the address of the statistics page for the server address.
func URL(addr string) string {
	return fmt.Sprintf("http://%s%s", addr, url)
}

// Launch the stats server in a new goroutine. The server is stopped when the
// context is cancelled. An empty address means the default Address.
func Launch(ctx context.Context, output io.Writer, addr string) {
	if addr == "" {
		addr = Address
	}

	viewer.SetConfiguration(viewer.WithAddr(addr), viewer.WithInterval(interval),
		viewer.WithTheme(viewer.ThemeWesteros))
	mgr := statsview.New()

	go func() {
		mgr.Start()
	}()

	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	logger.Logf(logger.Allow, "statsview", "listening on %s", addr)
	fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
}

// Poll the stats server until it responds or the timeout expires.
func Poll(addr string, timeout time.Duration) bool {
	if addr == "" {
		addr = Address
	}

	c := http.Client{Timeout: timeout}
	end := time.Now().Add(timeout)
	for time.Now().Before(end) {
		resp, err := c.Get(URL(addr))
		if err == nil {
			resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}
