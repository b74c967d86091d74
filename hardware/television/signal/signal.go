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

// Package signal models the two output lines of the video generator: the sync
// line driven by the timer compare output and the video line driven by a bit
// in a general purpose port.
//
// Combined through the resistor network the two lines produce three levels:
//
//	sync low             -> 0.0V  sync tip
//	sync high, video low -> 0.3V  black
//	sync high, video hi  -> 1.0V  white
package signal

import "fmt"

// LineID identifies which output line an event belongs to.
type LineID int

// List of valid LineID values.
const (
	Sync LineID = iota
	Video
)

func (id LineID) String() string {
	switch id {
	case Sync:
		return "sync"
	case Video:
		return "video"
	}
	return "unknown"
}

// Event is a single write to an output line. Writes that don't change the
// level of the line are still events; the video kernels write the port for
// every pixel regardless of its value.
type Event struct {
	Line  LineID
	Cycle int64
	Level bool
}

func (ev Event) String() string {
	l := "lo"
	if ev.Level {
		l = "hi"
	}
	return fmt.Sprintf("%s@%d=%s", ev.Line, ev.Cycle, l)
}

// Listener implementations receive events from a Line.
type Listener interface {
	Signal(ev Event)
}

// Line is an output pin. Consumers of the signal attach with AddListener().
type Line struct {
	id        LineID
	level     bool
	listeners []Listener
}

// NewLine is the preferred method of initialisation for the Line type. The
// initial level of the line is low.
func NewLine(id LineID) *Line {
	return &Line{id: id}
}

// AddListener adds a listener to the line. Listeners are called in the order
// they are added.
func (l *Line) AddListener(lst Listener) {
	l.listeners = append(l.listeners, lst)
}

// RemoveListener removes a previously added listener.
func (l *Line) RemoveListener(lst Listener) {
	for i := range l.listeners {
		if l.listeners[i] == lst {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Write the level of the line at the specified cycle.
func (l *Line) Write(level bool, cycle int64) {
	l.level = level
	ev := Event{Line: l.id, Cycle: cycle, Level: level}
	for _, lst := range l.listeners {
		lst.Signal(ev)
	}
}

// Level returns the current level of the line.
func (l *Line) Level() bool {
	return l.level
}

// Voltage returns the composite voltage for a combination of sync and video
// levels.
func Voltage(sync bool, video bool) float64 {
	switch {
	case !sync:
		return 0.0
	case !video:
		return 0.3
	}
	return 1.0
}
