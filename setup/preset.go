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
	"io"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/database"
)

const presetID = "preset"

const (
	presetFieldName int = iota
	presetFieldPrefs
	presetFieldNotes
	numPresetFields
)

// Sentinel errors.
const (
	PresetNotFound = "setup: preset not found (%s)"
	PresetExists   = "setup: preset already exists (%s)"
)

// Preset is a named set of configuration values.
type Preset struct {
	Name  string
	Prefs string
	Notes string
}

func deserialisePreset(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numPresetFields {
		return nil, curated.Errorf("preset: wrong number of fields in preset entry")
	}
	return &Preset{
		Name:  fields[presetFieldName],
		Prefs: fields[presetFieldPrefs],
		Notes: fields[presetFieldNotes],
	}, nil
}

// ID implements the database.Entry interface.
func (p *Preset) ID() string {
	return presetID
}

// String implements the database.Entry interface.
func (p *Preset) String() string {
	if p.Notes == "" {
		return fmt.Sprintf("%s: %s", p.Name, p.Prefs)
	}
	return fmt.Sprintf("%s: %s (%s)", p.Name, p.Prefs, p.Notes)
}

// Serialise implements the database.Entry interface.
func (p *Preset) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{p.Name, p.Prefs, p.Notes}, nil
}

// CleanUp implements the database.Entry interface.
func (p *Preset) CleanUp() error {
	return nil
}

func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(presetID, deserialisePreset)
}

func findPreset(db *database.Session, name string) (int, *Preset, error) {
	key := -1
	var preset *Preset
	err := db.SelectID(presetID, func(k int, ent database.Entry) (bool, error) {
		p := ent.(*Preset)
		if p.Name == name {
			key = k
			preset = p
			return false, nil
		}
		return true, nil
	})
	return key, preset, err
}

// ApplyPreset finds the named preset in the database file and applies it to
// the configuration.
func (cfg *Config) ApplyPreset(dbPath string, name string) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf(Setup, err)
	}
	defer db.EndSession(false)

	_, p, err := findPreset(db, name)
	if err != nil {
		return curated.Errorf(Setup, err)
	}
	if p == nil {
		return curated.Errorf(PresetNotFound, name)
	}

	return cfg.Apply(p.Prefs)
}

// SavePreset adds the current configuration to the database file as a named
// preset. The database file is created if necessary. An existing preset with
// the same name is replaced only if replace is true.
func (cfg *Config) SavePreset(dbPath string, name string, notes string, replace bool) error {
	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf(Setup, err)
	}

	key, p, err := findPreset(db, name)
	if err != nil {
		return curated.Errorf(Setup, err)
	}
	if p != nil {
		if !replace {
			return curated.Errorf(PresetExists, name)
		}
		if err := db.Delete(key); err != nil {
			return curated.Errorf(Setup, err)
		}
	}

	if _, err := db.Add(&Preset{Name: name, Prefs: cfg.String(), Notes: notes}); err != nil {
		return curated.Errorf(Setup, err)
	}

	if err := db.EndSession(true); err != nil {
		return curated.Errorf(Setup, err)
	}
	return nil
}

// ListPresets writes the presets in the database file to output.
func ListPresets(dbPath string, output io.Writer) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf(Setup, err)
	}
	defer db.EndSession(false)

	return db.List(output)
}
