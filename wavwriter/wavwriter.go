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

// Package wavwriter records the composite video waveform as a WAV file. The
// recording can be inspected with an audio editor as though it were the
// trace of an oscilloscope.
//
// The waveform is the voltage of the composite output formed by the sync
// and video lines. It is recorded as unsigned 8-bit mono samples. Samples are
// written to disk as the recording proceeds.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/clocks"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/logger"
)

// Sentinel errors.
const (
	BadDecimation = "wavwriter: decimation must be between 1 and 256 (%d)"
	WavWriter     = "wavwriter: %v"
)

// number of samples buffered before they are written to the file
const chunkSize = 65536

// Recorder implements the signal.Listener interface. It should be added to
// both the sync line and the video line.
type Recorder struct {
	filename string
	f        *os.File
	enc      *wav.Encoder

	// cycles per sample
	decimate int64

	buf *audio.IntBuffer

	// level of the lines
	sync  bool
	video bool

	// cycle of the next sample. -1 until the first event
	next int64

	// the number of samples written to the file
	samples int

	err error
}

// New is the preferred method of initialisation for the Recorder type. The
// sample rate of the file is the CPU frequency divided by the decimation.
func New(filename string, decimate int) (*Recorder, error) {
	if decimate < 1 || decimate > 256 {
		return nil, curated.Errorf(BadDecimation, decimate)
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf(WavWriter, err)
	}

	rate := clocks.MHz * 1000000 / decimate

	rec := &Recorder{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, rate, 8, 1, 1),
		decimate: int64(decimate),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
			Data:           make([]int, 0, chunkSize),
			SourceBitDepth: 8,
		},
		sync: true,
		next: -1,
	}

	logger.Logf(logger.Allow, "wavwriter", "recording to %s at %dHz", filename, rate)

	return rec, nil
}

// Level returns the sample value for the state of the lines.
func Level(sync bool, video bool) int {
	return int(signal.Voltage(sync, video) * 255)
}

// Signal implements the signal.Listener interface.
func (rec *Recorder) Signal(ev signal.Event) {
	if rec.err != nil {
		return
	}

	if rec.next == -1 {
		rec.next = ev.Cycle
	}

	v := Level(rec.sync, rec.video)
	for ; rec.next < ev.Cycle; rec.next += rec.decimate {
		rec.buf.Data = append(rec.buf.Data, v)
		if len(rec.buf.Data) >= chunkSize {
			rec.flush()
		}
	}

	switch ev.Line {
	case signal.Sync:
		rec.sync = ev.Level
	case signal.Video:
		rec.video = ev.Level
	}
}

func (rec *Recorder) flush() {
	if len(rec.buf.Data) == 0 || rec.err != nil {
		return
	}
	if err := rec.enc.Write(rec.buf); err != nil {
		rec.err = curated.Errorf(WavWriter, err)
		logger.Log(logger.Allow, "wavwriter", rec.err)
	}
	rec.samples += len(rec.buf.Data)
	rec.buf.Data = rec.buf.Data[:0]
}

// Samples returns the number of samples recorded so far.
func (rec *Recorder) Samples() int {
	return rec.samples + len(rec.buf.Data)
}

// End the recording. The file is completed and closed. Returns the first
// error that occurred during the recording.
func (rec *Recorder) End() error {
	rec.flush()

	if err := rec.enc.Close(); err != nil && rec.err == nil {
		rec.err = curated.Errorf(WavWriter, err)
	}
	if err := rec.f.Close(); err != nil && rec.err == nil {
		rec.err = curated.Errorf(WavWriter, err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", rec.samples, rec.filename)

	return rec.err
}
