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

package database_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/database"
	"github.com/jetsetilly/tiletv/test"
)

type note struct {
	text    string
	cleaned *int
}

func (n *note) ID() string {
	return "note"
}

func (n *note) String() string {
	return n.text
}

func (n *note) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{n.text}, nil
}

func (n *note) CleanUp() error {
	if n.cleaned != nil {
		*n.cleaned++
	}
	return nil
}

func initSession(db *database.Session) error {
	return db.RegisterEntryType("note", func(fields database.SerialisedEntry) (database.Entry, error) {
		return &note{text: fields[0]}, nil
	})
}

func TestMissingFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "missing")

	_, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.ExpectSuccess(t, curated.Is(err, database.NotAvailable))

	db, err := database.StartSession(pth, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 0)
}

func TestRoundTrip(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(pth, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)

	key, err := db.Add(&note{text: "hello, world"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, key, 0)
	key, err = db.Add(&note{text: "second"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, key, 1)
	test.DemandSuccess(t, db.EndSession(true))

	db, err = database.StartSession(pth, database.ActivityModifying, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 2)

	ent, err := db.SelectKeys(nil, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "hello, world")

	var found []string
	err = db.SelectID("note", func(_ int, ent database.Entry) (bool, error) {
		found = append(found, ent.String())
		return true, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(found), 2)

	var list strings.Builder
	test.DemandSuccess(t, db.List(&list))
	test.ExpectSuccess(t, strings.Contains(list.String(), "001 second"))
	test.ExpectSuccess(t, strings.Contains(list.String(), "Total: 2"))
}

func TestDelete(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(pth, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)

	var cleaned int
	_, err = db.Add(&note{text: "a", cleaned: &cleaned})
	test.DemandSuccess(t, err)
	_, err = db.Add(&note{text: "b"})
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, db.Delete(0))
	test.ExpectEquality(t, cleaned, 1)
	test.ExpectSuccess(t, curated.Is(db.Delete(0), database.KeyNotFound))

	// the free key is reused
	key, err := db.Add(&note{text: "c"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, key, 0)
}

func TestReadOnly(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("000,note,text\n"), 0o600))

	db, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 1)

	_, err = db.Add(&note{text: "x"})
	test.ExpectSuccess(t, curated.Is(err, database.ReadOnly))
}

func TestUnknownType(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("000,other,text\n"), 0o600))

	_, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.ExpectSuccess(t, curated.Is(err, database.UnknownType))
}
