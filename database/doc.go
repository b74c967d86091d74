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

// Package database is a very simple way of storing structured and arbitrary
// entry types in a flat file.
//
// Use of a database requires starting a "session" with StartSession() and
// ending it with EndSession(). For example (error handling removed for
// clarity):
//
//	db, _ := database.StartSession(dbPath, database.ActivityCreating, initSession)
//	defer db.EndSession(true)
//
// The activity argument says what will happen during the session. A database
// file is created only with ActivityCreating. Changes are written to disk by
// EndSession() only if the activity allows it and the commit argument is
// true.
//
// The initialisation function registers the entry types that may be found in
// the file:
//
//	func initSession(db *database.Session) error {
//		return db.RegisterEntryType("preset", deserialisePreset)
//	}
//
// The deserialiser is given the fields of the entry, without the key and ID
// fields, and returns a value that implements the Entry interface.
//
// Each entry is one line in the file. The first field is the entry's key and
// the second field is the entry's ID. The remaining fields are the serialised
// entry. Fields are separated by commas and are quoted when necessary.
package database
