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

package performance_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/performance"
	"github.com/jetsetilly/tiletv/setup"
	"github.com/jetsetilly/tiletv/test"
)

func TestCalcFPS(t *testing.T) {
	spec, ok := specification.SearchSpec("PAL")
	test.DemandEquality(t, ok, true)

	fps, accuracy := performance.CalcFPS(spec, 100, 2.0)
	test.ExpectEquality(t, fps, 50.0)
	test.ExpectEquality(t, accuracy, 100.0)

	fps, accuracy = performance.CalcFPS(spec, 50, 2.0)
	test.ExpectEquality(t, fps, 25.0)
	test.ExpectEquality(t, accuracy, 50.0)

	fps, _ = performance.CalcFPS(spec, 50, 0)
	test.ExpectEquality(t, fps, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfile("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)

	p, err = performance.ParseProfile("ALL")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ran, true)
}

func TestCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("performance check takes several seconds")
	}

	cfg, err := setup.NewConfig("")
	test.DemandSuccess(t, err)
	res, err := cfg.Resolve()
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(res.Chip, res.Geometry, res.Interrupts)
	test.DemandSuccess(t, err)

	var out strings.Builder
	err = performance.Check(context.Background(), &out, performance.ProfileNone, m, "100ms")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, strings.Contains(out.String(), "fps"), true)
	test.ExpectEquality(t, m.Overruns(), 0)
}
