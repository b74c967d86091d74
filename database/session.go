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

package database

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/jetsetilly/tiletv/curated"
)

// Activity specifies what will happen to the database during the session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Sentinel errors.
const (
	NotAvailable  = "database: file not available (%s)"
	ReadOnly      = "database: session is read only"
	DuplicateType = "database: duplicate entry type (%s)"
	UnknownType   = "database: unknown entry type (%s) for key %d"
	BadEntry      = "database: %v"
)

// Session keeps the database in memory between StartSession() and
// EndSession().
type Session struct {
	path       string
	activity   Activity
	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession reads the database file and deserialises every entry. The
// file is created only if the activity is ActivityCreating. For other
// activities a missing file results in a NotAvailable error.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && activity == ActivityCreating {
			return db, nil
		}
		return nil, curated.Errorf(NotAvailable, path)
	}
	defer f.Close()

	if err := db.read(f); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Session) read(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return curated.Errorf(BadEntry, err)
		}
		if len(rec) < numLeaderFields {
			return curated.Errorf(BadEntry, "entry is missing key or ID")
		}

		key, err := strconv.Atoi(rec[leaderFieldKey])
		if err != nil {
			return curated.Errorf(BadEntry, err)
		}
		if _, ok := db.entries[key]; ok {
			return curated.Errorf(BadEntry, "duplicate key "+rec[leaderFieldKey])
		}

		id := rec[leaderFieldID]
		des, ok := db.entryTypes[id]
		if !ok {
			return curated.Errorf(UnknownType, id, key)
		}

		ent, err := des(SerialisedEntry(rec[numLeaderFields:]))
		if err != nil {
			return curated.Errorf(BadEntry, err)
		}
		db.entries[key] = ent
	}
}

// EndSession closes the session. If commit is true and the activity allows
// it the entries are written to the database file.
func (db *Session) EndSession(commit bool) error {
	if !commit || db.activity == ActivityReading {
		return nil
	}

	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf(NotAvailable, db.path)
	}

	if err := db.write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return curated.Errorf(BadEntry, err)
	}
	return nil
}

func (db *Session) write(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(BadEntry, err)
		}
		rec := append([]string{recordKey(key), ent.ID()}, ser...)
		if err := cw.Write(rec); err != nil {
			return curated.Errorf(BadEntry, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return curated.Errorf(BadEntry, err)
	}
	return nil
}
