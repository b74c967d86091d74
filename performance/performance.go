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

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/govern"
	"github.com/jetsetilly/tiletv/hardware"
)

// Sentinel errors.
const (
	Performance = "performance: %v"
)

// the number of interrupt periods between checks of the timer channel
const performanceBrake = 256

// the time allowed for the frame rate to settle before measuring begins
const leadtime = 2 * time.Second

// Check the performance of the machine. The machine should already have
// any listeners attached. It will be run for the specified duration plus a
// short leadtime. A cpu or memory profile, a trace (or a combination of
// those) is created as defined by the Profile argument.
func Check(ctx context.Context, output io.Writer, profile Profile, m *hardware.Machine, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(Performance, err)
	}

	var startFrame uint32
	var endFrame uint32

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		brake := 0

		return m.Run(ctx, func() (govern.State, error) {
			brake++
			if brake < performanceBrake {
				return govern.Running, nil
			}
			brake = 0

			select {
			case v := <-timerChan:
				if v {
					endFrame = m.Video.State().Frames
					return govern.Ending, nil
				}
				startFrame = m.Video.State().Frames
			default:
			}

			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf(Performance, err)
	}

	numFrames := int(endFrame - startFrame)
	fps, accuracy := CalcFPS(m.Geom.Spec, numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)
	fmt.Fprintf(output, "%d overruns, worst case %d cycles\n", m.Overruns(), m.WorstCase())

	return nil
}
