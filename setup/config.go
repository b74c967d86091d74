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
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/prefs"
)

// Sentinel errors.
const (
	Setup      = "setup: %v"
	UnknownKey = "setup: unknown configuration key (%s)"
)

type pref interface {
	fmt.Stringer
	Set(value prefs.Value) error
	Get() prefs.Value
	Reset() error
}

// Config is the configuration record. Values are changed with the Set()
// function of each field or with Apply().
type Config struct {
	dsk *prefs.Disk

	// keys in the order they were added
	keys  []string
	prefs map[string]pref

	Chip         prefs.String
	Spec         prefs.String
	Mode         prefs.String
	LittleEndian prefs.Bool

	Columns    prefs.Int
	Rows       prefs.Int
	FontChars  prefs.Int
	FontHeight prefs.Int
	CharHeight prefs.Int
	RAMTiles   prefs.Int

	// a tileset written by the crunch package. the builtin font is used if
	// this is empty
	FontFile prefs.String

	DoubleLines   prefs.Bool
	VScroll       prefs.Bool
	HPosOffset    prefs.Bool
	VPosOffset    prefs.Bool
	LatchAtVBlank prefs.Bool
	HPosOrigin    prefs.Int
	VPosOrigin    prefs.Int

	Latency  prefs.Int
	Jitter   prefs.Int
	Exit     prefs.Int
	ZeroSeed prefs.Bool
}

func (cfg *Config) String() string {
	s := make([]string, 0, len(cfg.keys))
	for _, k := range cfg.keys {
		s = append(s, fmt.Sprintf("%s::%s", k, cfg.prefs[k]))
	}
	return strings.Join(s, "; ")
}

// NewConfig is the preferred method of initialisation for the Config type.
// If path is empty the configuration cannot be loaded or saved.
func NewConfig(path string) (*Config, error) {
	cfg := &Config{
		prefs: make(map[string]pref),
	}

	if path != "" {
		var err error
		cfg.dsk, err = prefs.NewDisk(path)
		if err != nil {
			return nil, curated.Errorf(Setup, err)
		}
	}

	add := func(key string, p pref) error {
		cfg.keys = append(cfg.keys, key)
		cfg.prefs[key] = p
		if cfg.dsk != nil {
			return cfg.dsk.Add(key, p)
		}
		return nil
	}

	for _, e := range []struct {
		key string
		p   pref
	}{
		{"chip", &cfg.Chip},
		{"spec", &cfg.Spec},
		{"mode", &cfg.Mode},
		{"littleendian", &cfg.LittleEndian},
		{"columns", &cfg.Columns},
		{"rows", &cfg.Rows},
		{"font.chars", &cfg.FontChars},
		{"font.height", &cfg.FontHeight},
		{"font.file", &cfg.FontFile},
		{"charheight", &cfg.CharHeight},
		{"ramtiles", &cfg.RAMTiles},
		{"doublelines", &cfg.DoubleLines},
		{"vscroll", &cfg.VScroll},
		{"hpos.offset", &cfg.HPosOffset},
		{"vpos.offset", &cfg.VPosOffset},
		{"latchatvblank", &cfg.LatchAtVBlank},
		{"hpos.origin", &cfg.HPosOrigin},
		{"vpos.origin", &cfg.VPosOrigin},
		{"isr.latency", &cfg.Latency},
		{"isr.jitter", &cfg.Jitter},
		{"isr.exit", &cfg.Exit},
		{"isr.zeroseed", &cfg.ZeroSeed},
	} {
		if err := add(e.key, e.p); err != nil {
			return nil, curated.Errorf(Setup, err)
		}
	}

	if err := cfg.SetDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetDefaults reverts every value to its default.
func (cfg *Config) SetDefaults() error {
	for _, k := range cfg.keys {
		if err := cfg.prefs[k].Reset(); err != nil {
			return curated.Errorf(Setup, err)
		}
	}

	// the errors from Set() can be ignored because every value is of the
	// correct type
	_ = cfg.Chip.Set("328")
	_ = cfg.Spec.Set("NTSC")
	_ = cfg.Mode.Set("ramtiles")
	_ = cfg.Columns.Set(22)
	_ = cfg.Rows.Set(22)
	_ = cfg.FontChars.Set(128)
	_ = cfg.FontHeight.Set(8)
	_ = cfg.RAMTiles.Set(64)
	_ = cfg.VScroll.Set(true)
	_ = cfg.HPosOrigin.Set(-24)
	_ = cfg.Latency.Set(hardware.DefaultInterrupts.Latency)
	_ = cfg.Jitter.Set(hardware.DefaultInterrupts.Jitter)
	_ = cfg.Exit.Set(hardware.DefaultInterrupts.Exit)

	return nil
}

// Keys returns the list of configuration keys, sorted alphabetically.
func (cfg *Config) Keys() []string {
	k := append([]string(nil), cfg.keys...)
	sort.Strings(k)
	return k
}

// Apply a string of values in the format:
//
//	key::value; key::value
//
// Empty entries are ignored.
func (cfg *Config) Apply(s string) error {
	for _, e := range strings.Split(s, ";") {
		if strings.TrimSpace(e) == "" {
			continue
		}
		kv := strings.SplitN(e, "::", 2)
		if len(kv) != 2 {
			return curated.Errorf(Setup, fmt.Sprintf("badly formed value (%s)", strings.TrimSpace(e)))
		}

		k := strings.TrimSpace(kv[0])
		p, ok := cfg.prefs[k]
		if !ok {
			return curated.Errorf(UnknownKey, k)
		}
		if err := p.Set(strings.TrimSpace(kv[1])); err != nil {
			return curated.Errorf(Setup, err)
		}
	}
	return nil
}

// Load values from disk. Values on the prefs command line stack take
// priority.
func (cfg *Config) Load() error {
	if cfg.dsk == nil {
		return nil
	}
	if err := cfg.dsk.Load(); err != nil {
		return curated.Errorf(Setup, err)
	}
	return nil
}

// Save values to disk.
func (cfg *Config) Save() error {
	if cfg.dsk == nil {
		return curated.Errorf(Setup, "configuration has no file")
	}
	if err := cfg.dsk.Save(); err != nil {
		return curated.Errorf(Setup, err)
	}
	return nil
}
