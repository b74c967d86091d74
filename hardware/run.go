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

package hardware

import (
	"context"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/govern"
	"github.com/jetsetilly/tiletv/logger"
)

// Step the machine by one timer period. The sync pulse for the period is
// written to the sync line and the interrupt is run.
//
// All calls to Step() must be made from the same goroutine.
func (m *Machine) Step() error {
	m.isr.Check()

	m.crit.Lock()
	defer m.crit.Unlock()

	m.isrID.Store(m.isr.ID())
	defer m.isrID.Store(0)

	p0 := m.Timer.PeriodStart(m.period)
	width := m.Timer.Bottom()
	m.SyncLine.Write(false, p0)
	m.SyncLine.Write(true, p0+width)

	// the previous interrupt is still running at the start of this period.
	// the interrupt flag stays set and the interrupt is taken as soon as the
	// previous one returns
	entry := p0
	if m.CPU.Cycles > p0 {
		entry = m.CPU.Cycles
		m.overruns++
		logger.Log(logger.Allow, "machine", "interrupt overran the scanline")
	}

	m.CPU.Cycles = entry
	jitter := 0
	if m.ints.Jitter > 0 {
		jitter = m.rnd.Intn(m.ints.Jitter + 1)
	}
	m.CPU.Stall(int64(m.ints.Latency + jitter))

	err := m.Video.Interrupt(m.CPU)
	m.CPU.Stall(int64(m.ints.Exit))
	m.worst = max(m.worst, m.CPU.Cycles-p0)

	m.period++
	m.scanline++
	m.cond.Broadcast()

	if err != nil {
		return curated.Errorf("machine: %v", err)
	}
	return nil
}

// Run the machine until the context is cancelled or the continue check
// returns govern.Ending. The goroutine calling Run() becomes the interrupt
// context. The continue check is called after every period.
func (m *Machine) Run(ctx context.Context, continueCheck govern.ContinueCheck) error {
	if continueCheck == nil {
		continueCheck = govern.AlwaysRunning
	}

	m.crit.Lock()
	m.stopped = false
	m.crit.Unlock()
	m.isr.Reset()

	defer func() {
		m.crit.Lock()
		m.stopped = true
		m.cond.Broadcast()
		m.crit.Unlock()
	}()

	var err error
	state := govern.Running

	for state != govern.Ending {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch state {
		case govern.Running:
			if err := m.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("machine: unsupported state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount steps the machine until the frame counter has been
// incremented the specified number of times.
func (m *Machine) RunForFrameCount(numFrames int) error {
	target := m.Video.State().Frames + uint32(numFrames)
	for m.Video.State().Frames < target {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// FrameCount returns the low byte of the frame counter. Safe to call from any
// goroutine.
func (m *Machine) FrameCount() uint8 {
	return m.Video.FrameCount()
}

// WaitForInterrupt blocks until the next interrupt has completed. Returns
// immediately if the machine is not being run by Run().
func (m *Machine) WaitForInterrupt() {
	m.crit.Lock()
	defer m.crit.Unlock()

	p := m.period
	for m.period == p && !m.stopped {
		m.cond.Wait()
	}
}

// Lockstep allows the main context to drive the machine. Each wait for an
// interrupt steps the machine by one period.
type Lockstep struct {
	m   *Machine
	err error
}

// Lockstep returns a Lockstep for the machine. The machine must not also be
// running with Run().
func (m *Machine) Lockstep() *Lockstep {
	return &Lockstep{m: m}
}

// FrameCount returns the low byte of the frame counter.
func (l *Lockstep) FrameCount() uint8 {
	return l.m.FrameCount()
}

// WaitForInterrupt steps the machine by one period. Once an error has
// occurred the machine is no longer stepped.
func (l *Lockstep) WaitForInterrupt() {
	if l.err != nil {
		return
	}
	l.err = l.m.Step()
}

// Err returns the first error returned by the machine.
func (l *Lockstep) Err() error {
	return l.err
}
