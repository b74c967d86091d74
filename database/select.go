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

import "github.com/jetsetilly/tiletv/curated"

// Sentinel errors.
const (
	SelectEmpty = "database: select empty"
)

// SelectAll entries in the database in key order. onSelect can be nil.
//
// Returns the last entry in the selection or an error with the entry that
// was being processed when the error occurred.
func (db Session) SelectAll(onSelect func(Entry) error) (Entry, error) {
	return db.SelectKeys(onSelect)
}

// SelectKeys matches entries with the specified key(s). If the list of keys
// is empty then all keys are matched. onSelect can be nil.
//
// Returns the last entry in the selection or an error with the entry that
// was being processed when the error occurred.
func (db Session) SelectKeys(onSelect func(Entry) error, keys ...int) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, k := range keyList {
		e, ok := db.entries[k]
		if !ok {
			return entry, curated.Errorf(KeyNotFound, k)
		}
		entry = e
		if err := onSelect(entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, curated.Errorf(SelectEmpty)
	}

	return entry, nil
}

// SelectID matches entries with the specified ID in key order. The selection
// stops early if onSelect returns false.
func (db Session) SelectID(id string, onSelect func(key int, ent Entry) (bool, error)) error {
	for _, k := range db.SortedKeyList() {
		e := db.entries[k]
		if e.ID() != id {
			continue
		}
		cont, err := onSelect(k, e)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
