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

package setup

import (
	"os"

	"github.com/jetsetilly/tiletv/crunch"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/chips"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/prefs"
	"github.com/jetsetilly/tiletv/video"
)

// Sentinel errors.
const (
	UnknownSpec = "setup: unknown television specification (%s)"
	FontFile    = "setup: font file: %v"
)

// Resolved is the configuration in the form used to create a machine.
type Resolved struct {
	Chip       chips.Chip
	Geometry   *video.Geometry
	Interrupts hardware.Interrupts

	// the font to load into the machine and any tile maps that were stored
	// with it
	Font *fonts.Font
	Maps []*crunch.Tilemap
}

// Resolve the configuration. If a font file is specified its height replaces
// the font.height value.
func (cfg *Config) Resolve() (*Resolved, error) {
	res := &Resolved{}

	spec, ok := specification.SearchSpec(cfg.Spec.String())
	if !ok {
		return nil, curated.Errorf(UnknownSpec, cfg.Spec.String())
	}

	mode, err := video.ParseMode(cfg.Mode.String())
	if err != nil {
		return nil, curated.Errorf(Setup, err)
	}

	res.Chip, err = chips.Lookup(cfg.Chip.String(), cfg.LittleEndian.Get().(bool))
	if err != nil {
		return nil, curated.Errorf(Setup, err)
	}

	res.Font = fonts.Builtin()
	if fn := cfg.FontFile.String(); fn != "" {
		res.Font, res.Maps, err = loadFont(fn)
		if err != nil {
			return nil, err
		}
		_ = cfg.FontHeight.Set(res.Font.Height)
	}

	geom, err := video.NewGeometry(video.Layout{
		Spec:          spec,
		Mode:          mode,
		Columns:       intOf(&cfg.Columns),
		Rows:          intOf(&cfg.Rows),
		FontChars:     intOf(&cfg.FontChars),
		FontHeight:    intOf(&cfg.FontHeight),
		CharHeight:    intOf(&cfg.CharHeight),
		RAMTiles:      intOf(&cfg.RAMTiles),
		DoubleLines:   boolOf(&cfg.DoubleLines),
		VScroll:       boolOf(&cfg.VScroll),
		HPosOffset:    boolOf(&cfg.HPosOffset),
		VPosOffset:    boolOf(&cfg.VPosOffset),
		LittleEndian:  res.Chip.LittleEndian,
		VideoBit:      res.Chip.Video.Bit,
		HPosOrigin:    intOf(&cfg.HPosOrigin),
		VPosOrigin:    intOf(&cfg.VPosOrigin),
		LatchAtVBlank: boolOf(&cfg.LatchAtVBlank),
	})
	if err != nil {
		return nil, curated.Errorf(Setup, err)
	}
	res.Geometry = geom

	if res.Font.Height != geom.FontHeight {
		return nil, curated.Errorf(FontFile, "font height does not match the configured height")
	}
	if len(res.Font.Glyphs) > geom.FontChars {
		return nil, curated.Errorf(FontFile, "too many glyphs for the configured font size")
	}

	res.Interrupts = hardware.Interrupts{
		Latency:  intOf(&cfg.Latency),
		Jitter:   intOf(&cfg.Jitter),
		Exit:     intOf(&cfg.Exit),
		ZeroSeed: boolOf(&cfg.ZeroSeed),
	}

	logger.Logf(logger.Allow, "setup", "%s on %s", geom, res.Chip.Name)

	return res, nil
}

func loadFont(filename string) (*fonts.Font, []*crunch.Tilemap, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, curated.Errorf(FontFile, err)
	}
	defer f.Close()

	fnt, maps, err := crunch.ReadBinary(f)
	if err != nil {
		return nil, nil, curated.Errorf(FontFile, err)
	}
	return fnt, maps, nil
}

func intOf(p interface{ Get() prefs.Value }) int {
	return p.Get().(int)
}

func boolOf(p interface{ Get() prefs.Value }) bool {
	return p.Get().(bool)
}
