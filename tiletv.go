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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/tiletv/capture"
	"github.com/jetsetilly/tiletv/demo"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/modalflag"
	"github.com/jetsetilly/tiletv/paths"
	"github.com/jetsetilly/tiletv/performance"
	"github.com/jetsetilly/tiletv/prefs"
	"github.com/jetsetilly/tiletv/setup"
	"github.com/jetsetilly/tiletv/statsview"
	"github.com/jetsetilly/tiletv/television"
	"github.com/jetsetilly/tiletv/television/sdltv"
	"github.com/jetsetilly/tiletv/television/termtv"
	"github.com/jetsetilly/tiletv/userinput"
	"github.com/jetsetilly/tiletv/version"
)

// names of the files in the resource directory
const (
	prefsFile        = "prefs"
	presetsFile      = "presets"
	regressionDBFile = "regressionDB"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// stop the default interrupt signal handling. used when the mode
	// handles the interrupt signal itself.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the servicing and destruction of GUIs that need to
// be run in the main thread.
//
// There is no Create() function. Instead the creator is a channel which
// accepts a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread. Returns false
	// once the GUI has been destroyed.
	Service() (bool, error)

	// the GUI is destroyed by the next call to Service()
	EndRendering() error
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window event handling (including creation) to
// occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:])

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			if gui != nil {
				destroyGui(gui)
			}

			g, err := creator()
			if err != nil {
				gui = nil
				sync.creationError <- err
			} else {
				gui = g
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					destroyGui(gui)
					gui = nil
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Stop(intChan)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				ok, err := gui.Service()
				if err != nil {
					logger.Logf(logger.Allow, "tiletv", "%v", err)
				}
				if !ok {
					gui = nil
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// #mainthread
func destroyGui(gui GuiCreator) {
	_ = gui.EndRendering()
	for ok := true; ok; {
		ok, _ = gui.Service()
	}
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "CAPTURE", "PERFORMANCE", "TIMING", "CRUNCH", "DUMP", "CONFIG", "REGRESS")
	showVersion := md.AddBool("version", false, "show version information and exit")
	echoLog := md.AddBool("log", false, "echo log to stderr")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *showVersion {
		fmt.Println(version.String())
		sync.state <- stateRequest{req: reqQuit}
		return
	}

	if *echoLog {
		logger.SetEcho(os.Stderr, false)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "CAPTURE":
		err = captureMode(md)

	case "PERFORMANCE":
		err = perform(md, sync)

	case "TIMING":
		err = timingMode(md)

	case "CRUNCH":
		err = crunchMode(md)

	case "DUMP":
		err = dump(md)

	case "CONFIG":
		err = config(md)

	case "REGRESS":
		err = regress(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// configFlags are the flags common to every mode that creates a machine.
type configFlags struct {
	prefs  *string
	preset *string
}

func addConfigFlags(md *modalflag.Modes) configFlags {
	return configFlags{
		prefs:  md.AddString("prefs", "", "configuration values for this session (key::value; key::value)"),
		preset: md.AddString("preset", "", "apply the named preset before any -prefs values"),
	}
}

// configure the machine from the prefs file, the named preset and the prefs
// string, in that order of priority. a font file given as an argument
// replaces the font.file value.
func (flgs configFlags) configure(md *modalflag.Modes) (*setup.Config, error) {
	pth, err := paths.ResourcePath(prefsFile)
	if err != nil {
		return nil, err
	}

	cfg, err := setup.NewConfig(pth)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*flgs.prefs)
	err = cfg.Load()
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return nil, err
	}

	if *flgs.preset != "" {
		dbPath, err := paths.ResourcePath(presetsFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyPreset(dbPath, *flgs.preset); err != nil {
			return nil, err
		}

		// values from the prefs string take priority over the preset
		if err := cfg.Apply(*flgs.prefs); err != nil {
			return nil, err
		}
	} else if unused != "" {
		// values not consumed by Load() are for keys that do not exist.
		// Apply() will return a suitable error
		if err := cfg.Apply(unused); err != nil {
			return nil, err
		}
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		if err := cfg.FontFile.Set(md.GetArg(0)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	return cfg, nil
}

// create a machine with the demo screen drawn
func newMachine(cfg *setup.Config) (*hardware.Machine, *demo.Demo, error) {
	res, err := cfg.Resolve()
	if err != nil {
		return nil, nil, err
	}

	m, err := hardware.NewMachine(res.Chip, res.Geometry, res.Interrupts)
	if err != nil {
		return nil, nil, err
	}

	d, err := demo.NewDemo(m, res.Font, res.Maps)
	if err != nil {
		return nil, nil, err
	}

	return m, d, nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flgs := addConfigFlags(md)
	display := md.AddString("display", "SDL", "display type: SDL, TERM, NONE")
	scaling := md.AddFloat64("scale", 3.0, "window scaling (SDL display only)")
	hscale := md.AddInt("hscale", 2, "number of cycles in each pixel of the reconstructed picture")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to the television specification")
	captureDir := md.AddString("capture", ".", "directory for captured frames")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.URL(statsview.Address)))

	md.AdditionalHelp(`Keys: cursor keys change the fine scroll. shift and the cursor keys move the
picture. P or Space pauses, C captures a frame, F toggles the frame rate cap
and Q or Escape quits.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
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

	tv.SetFPSCap(*fpsCap)
	capped := *fpsCap
	d.ToggleFPSCap = func() {
		capped = !capped
		tv.SetFPSCap(capped)
	}

	d.Capture, err = capture.NewCapture(*captureDir, "tiletv")
	if err != nil {
		return err
	}
	tv.AddFrameTrigger(d.Capture)

	// the interrupt signal is handled by cancelling the context
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan userinput.Event, 16)
	done := make(chan error, 3)
	running := 0

	switch strings.ToUpper(*display) {
	case "SDL":
		sync.creator <- func() (GuiCreator, error) {
			return sdltv.NewSdlTV(float32(*scaling), events)
		}

		select {
		case g := <-sync.creation:
			if err := tv.AddPixelRenderer(g.(*sdltv.SdlTV)); err != nil {
				return err
			}
		case err := <-sync.creationError:
			return err
		}

	case "TERM":
		trm, err := termtv.NewTermTV(os.Stdin, os.Stdout, events)
		if err != nil {
			return err
		}
		if err := tv.AddPixelRenderer(trm); err != nil {
			return err
		}
		running++
		go func() {
			done <- trm.Run(ctx)
		}()

	case "NONE":

	default:
		return fmt.Errorf("unknown display type (%s)", *display)
	}

	if *stats {
		statsview.Launch(ctx, md.Output, statsview.Address)
	}

	running += 2
	go func() {
		done <- m.Run(ctx, d.ContinueCheck)
	}()
	go func() {
		done <- d.Loop(ctx, m)
	}()

	// the first goroutine to finish ends the others
	var runErr error
	for running > 0 {
		select {
		case ev := <-events:
			if _, err := userinput.HandleUserInput(ev, d); err != nil && runErr == nil {
				runErr = err
				cancel()
			}

		case err := <-done:
			running--
			if err != nil && !errors.Is(err, context.Canceled) && runErr == nil {
				runErr = err
			}
			cancel()
		}
	}

	if runErr != nil {
		return runErr
	}
	if err := tv.Err(); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "tiletv", "%d updates, %d overruns", d.Updates(), m.Overruns())

	return nil
}

func perform(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flgs := addConfigFlags(md)
	display := md.AddBool("display", false, "display television output")
	scaling := md.AddFloat64("scale", 3.0, "window scaling (only valid if -display=true)")
	fpsCap := md.AddBool("fpscap", false, "cap frame rate to the television specification")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "NONE", "produce profiling reports: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	cfg, err := flgs.configure(md)
	if err != nil {
		return err
	}

	m, _, err := newMachine(cfg)
	if err != nil {
		return err
	}

	tv, err := television.NewTelevision(m.Geom.Spec, 2)
	if err != nil {
		return err
	}
	defer tv.End()

	m.SyncLine.AddListener(tv)
	m.VideoLine.AddListener(tv)
	tv.SetFPSCap(*fpsCap)

	if *display {
		sync.creator <- func() (GuiCreator, error) {
			return sdltv.NewSdlTV(float32(*scaling), nil)
		}

		select {
		case g := <-sync.creation:
			if err := tv.AddPixelRenderer(g.(*sdltv.SdlTV)); err != nil {
				return err
			}
		case err := <-sync.creationError:
			return err
		}
	}

	return performance.Check(context.Background(), md.Output, prf, m, *duration)
}

func config(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addConfigFlags(md)
	save := md.AddBool("save", false, "save the configuration as the default")
	savePreset := md.AddString("savepreset", "", "save the configuration as a named preset")
	notes := md.AddString("notes", "", "notes to store with a saved preset")
	replace := md.AddBool("replace", false, "replace an existing preset of the same name")
	list := md.AddBool("list", false, "list the saved presets")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPath, err := paths.ResourcePath(presetsFile)
	if err != nil {
		return err
	}

	if *list {
		return setup.ListPresets(dbPath, md.Output)
	}

	cfg, err := flgs.configure(md)
	if err != nil {
		return err
	}

	// the configuration must be usable
	if _, err := cfg.Resolve(); err != nil {
		return err
	}

	if *save {
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	if *savePreset != "" {
		if err := cfg.SavePreset(dbPath, *savePreset, *notes, *replace); err != nil {
			return err
		}
	}

	return writeConfig(md.Output, cfg)
}

func writeConfig(w io.Writer, cfg *setup.Config) error {
	for _, s := range strings.Split(cfg.String(), ";") {
		if s = strings.TrimSpace(s); s != "" {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
	}
	return nil
}
