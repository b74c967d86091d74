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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/tiletv/capture"
	"github.com/jetsetilly/tiletv/crunch"
	"github.com/jetsetilly/tiletv/demo"
	"github.com/jetsetilly/tiletv/framesync"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/modalflag"
	"github.com/jetsetilly/tiletv/paths"
	"github.com/jetsetilly/tiletv/regression"
	"github.com/jetsetilly/tiletv/setup"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/timing"
	"github.com/jetsetilly/tiletv/video"
	"github.com/jetsetilly/tiletv/wavwriter"
)

// advance the machine by n frames, updating the demo screen at the end of
// each display period
func advance(l *hardware.Lockstep, d *demo.Demo, n int) error {
	for i := 0; i < n; i++ {
		framesync.WaitEndDisplay(l, 1)
		if err := l.Err(); err != nil {
			return err
		}
		d.Update()
	}
	return nil
}

func captureMode(md *modalflag.Modes) (rerr error) {
	md.NewMode()

	flgs := addConfigFlags(md)
	frames := md.AddInt("frames", 1, "number of frames to capture")
	skip := md.AddInt("skip", 2, "number of frames to run before capturing")
	hscale := md.AddInt("hscale", 2, "number of cycles in each pixel of the reconstructed picture")
	dir := md.AddString("dir", ".", "directory for captured frames")
	wavFile := md.AddString("wav", "", "record the composite signal to a WAV file")
	decimate := md.AddInt("decimate", 4, "WAV sample rate is the CPU frequency divided by this value")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *frames < 0 || *skip < 0 {
		return fmt.Errorf("frame counts cannot be negative")
	}

	cfg, err := flgs.configure(md)
	if err != nil {
		return err
	}

	m, d, err := newMachine(cfg)
	if err != nil {
		return err
	}

	tv, err := television.NewTelevision(m.Geom.Spec, *hscale)
	if err != nil {
		return err
	}
	defer tv.End()

	m.SyncLine.AddListener(tv)
	m.VideoLine.AddListener(tv)

	cpt, err := capture.NewCapture(*dir, paths.UniqueFilename("tiletv", m.Geom.Mode.Name(), ""))
	if err != nil {
		return err
	}
	tv.AddFrameTrigger(cpt)

	if *wavFile != "" {
		rec, err := wavwriter.New(*wavFile, *decimate)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.End(); err != nil && rerr == nil {
				rerr = err
			}
			fmt.Fprintf(md.Output, "%d samples written to %s\n", rec.Samples(), *wavFile)
		}()
		m.SyncLine.AddListener(rec)
		m.VideoLine.AddListener(rec)
	}

	l := m.Lockstep()
	if err := advance(l, d, *skip); err != nil {
		return err
	}

	// the television sends a frame at the vertical sync that follows the
	// display period so a few extra frames may be needed
	cpt.Arm(*frames)
	for limit := *frames + 4; cpt.Pending() > 0; limit-- {
		if limit == 0 {
			return fmt.Errorf("television did not produce %d frames", *frames)
		}
		if err := advance(l, d, 1); err != nil {
			return err
		}
	}

	if err := tv.Err(); err != nil {
		return err
	}

	for _, fn := range cpt.Saved() {
		fmt.Fprintln(md.Output, fn)
	}

	return nil
}

func timingMode(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addConfigFlags(md)
	all := md.AddBool("all", false, "check every mode with the configured specification")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := flgs.configure(md)
	if err != nil {
		return err
	}

	modes := []string{cfg.Mode.String()}
	if *all {
		modes = video.ModeList
	}

	var failed int
	for _, mode := range modes {
		if err := cfg.Mode.Set(mode); err != nil {
			return err
		}

		res, err := cfg.Resolve()
		if err != nil {
			if !*all {
				return err
			}
			fmt.Fprintf(md.Output, "%s: not possible: %v\n", mode, err)
			continue
		}

		rep, err := timing.Validate(res.Chip, res.Geometry, res.Interrupts)
		if err != nil {
			failed++
			fmt.Fprintf(md.Output, "%s: FAILED: %v\n", mode, err)
			continue
		}
		fmt.Fprintln(md.Output, rep)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d modes failed timing validation", failed, len(modes))
	}

	return nil
}

func crunchMode(md *modalflag.Modes) (rerr error) {
	md.NewMode()

	output := md.AddString("o", "", "output file. GO output is written to stdout if not specified")
	format := md.AddString("format", "GO", "output format: GO, BIN")
	pkg := md.AddString("pkg", "tiles", "package name (GO output only)")
	name := md.AddString("name", "tileset", "identifier of the font (GO output only)")
	mapping := md.AddString("mapping", crunch.Gamma.String(), "colour to luminance mapping: gamma, linear, identity")
	dither := md.AddString("dither", "fs", "dither method: fs, ordered, threshold")
	height := md.AddInt("height", crunch.TileWidth, "tile height")
	maxTiles := md.AddInt("max", 256, "maximum number of tiles")
	dupes := md.AddBool("dupes", false, "do not remove duplicate tiles")
	preview := md.AddString("preview", "", "directory for BMP images reconstructed from the tiles")

	md.AdditionalHelp("Each argument is a BMP image. The images share a single tile set.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one image is required for %s mode", md)
	}

	opts := crunch.Options{
		TileHeight:  *height,
		MaxTiles:    *maxTiles,
		PermitDupes: *dupes,
	}
	if opts.Mapping, err = crunch.ParseMapping(*mapping); err != nil {
		return err
	}
	if opts.Dither, err = crunch.ParseDither(*dither); err != nil {
		return err
	}

	ts, err := crunch.NewTileset(opts)
	if err != nil {
		return err
	}

	for _, fn := range md.RemainingArgs() {
		tm, err := ts.Load(fn)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s: %dx%d tiles, %d new, %d duplicates\n", tm.Name, tm.Width, tm.Height, tm.NewTiles, tm.Duplicates)

		if *preview != "" {
			if err := os.MkdirAll(*preview, 0o755); err != nil {
				return err
			}
			if err := capture.Write(filepath.Join(*preview, tm.Name+".bmp"), ts.Reconstruct(tm)); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(os.Stderr, "%d tiles\n", ts.Len())

	var w io.Writer = md.Output
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = err
			}
		}()
		w = f
	}

	switch strings.ToUpper(*format) {
	case "GO":
		return ts.WriteGo(w, *pkg, *name)
	case "BIN":
		if *output == "" {
			return fmt.Errorf("BIN output requires an output file")
		}
		return ts.WriteBinary(w)
	}

	return fmt.Errorf("unknown output format (%s)", *format)
}

// the structure passed to memviz by the DUMP mode
type dumpState struct {
	Chip       string
	Geometry   *video.Geometry
	Interrupts hardware.Interrupts
	State      video.State
	Overruns   int
	WorstCase  int64
}

func dump(md *modalflag.Modes) (rerr error) {
	md.NewMode()

	flgs := addConfigFlags(md)
	frames := md.AddInt("frames", 1, "number of frames to run before dumping")
	output := md.AddString("o", "", "output file (default is a unique filename)")

	md.AdditionalHelp("The output is in the DOT format of Graphviz.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := flgs.configure(md)
	if err != nil {
		return err
	}

	res, err := cfg.Resolve()
	if err != nil {
		return err
	}

	m, d, err := newMachine(cfg)
	if err != nil {
		return err
	}

	if err := advance(m.Lockstep(), d, *frames); err != nil {
		return err
	}

	fn := *output
	if fn == "" {
		fn = paths.UniqueFilename("dump", m.Geom.Mode.Name(), "dot")
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	memviz.Map(f, &dumpState{
		Chip:       m.Chip.Name,
		Geometry:   m.Geom,
		Interrupts: res.Interrupts,
		State:      m.Video.State(),
		Overruns:   m.Overruns(),
		WorstCase:  m.WorstCase(),
	})

	fmt.Fprintln(md.Output, fn)

	return nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPath, err := paths.ResourcePath(regressionDBFile)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "fail on error")

		md.AdditionalHelp("Arguments are the keys of the tests to run. FAILS selects the tests that failed the previous run.")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(md.Output, dbPath, *verbose, *failOnError, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return regression.RegressList(md.Output, dbPath)
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			var confirm io.Reader = os.Stdin
			if *answerYes {
				confirm = &yesReader{}
			}
			return regression.RegressDelete(md.Output, confirm, dbPath, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(md, dbPath)
	}

	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regressAdd(md *modalflag.Modes, dbPath string) error {
	md.NewMode()

	prefsString := md.AddString("prefs", "", "configuration values for the test (key::value; key::value)")
	preset := md.AddString("preset", "", "apply the named preset before any -prefs values")
	numFrames := md.AddInt("frames", 10, "number of frames to run")
	mode := md.AddString("mode", "both", "type of digest to create: video, signal, both")
	notes := md.AddString("notes", "", "annotation for the database")

	md.AdditionalHelp("The prefs file is not used. The test is recorded with every configuration value.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	digestMode, err := regression.ParseDigestMode(*mode)
	if err != nil {
		return err
	}

	// the test records the complete configuration so that it does not
	// depend on default values
	cfg, err := setup.NewConfig("")
	if err != nil {
		return err
	}
	if *preset != "" {
		presetsPath, err := paths.ResourcePath(presetsFile)
		if err != nil {
			return err
		}
		if err := cfg.ApplyPreset(presetsPath, *preset); err != nil {
			return err
		}
	}
	if err := cfg.Apply(*prefsString); err != nil {
		return err
	}

	return regression.RegressAdd(md.Output, dbPath, &regression.FrameRegression{
		Prefs:     cfg.String(),
		NumFrames: *numFrames,
		Mode:      digestMode,
		Notes:     *notes,
	})
}
