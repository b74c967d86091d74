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

package regression

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/database"
)

// Sentinel errors.
const (
	Regression = "regression: %v"
	BadEntry   = "regression: %s"
	BadField   = "regression: invalid %s field (%v)"
	BadKey     = "regression: invalid key (%s)"
	NilOutput  = "regression: io.Writer should not be nil (use io.Discard)"
)

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is for convenience really (or "logical binding", as the structured
	// programmers would have it)
	//
	// message is the string that is to be printed during the regression.
	// the returned string is a short description of the reason for a
	// failure
	regress(newRegression bool, output io.Writer, message string) (bool, string, error)
}

// ansi sequence to clear the current line
const clearLine = "\033[2K"

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(frameEntryID, deserialiseFrameEntry)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer, dbPath string) error {
	if output == nil {
		return curated.Errorf(NilOutput)
	}

	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the database. The entry is printed and
// the deletion must be confirmed with a line beginning with 'y'.
func RegressDelete(output io.Writer, confirmation io.Reader, dbPath string, key string) (rerr error) {
	if output == nil {
		return curated.Errorf(NilOutput)
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(BadKey, key)
	}

	db, err := database.StartSession(dbPath, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}

	// the database is only written if the entry is deleted
	commit := false
	defer func() {
		if err := db.EndSession(commit); err != nil && rerr == nil {
			rerr = err
		}
	}()

	ent, err := db.SelectKeys(nil, v)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && err != io.EOF {
		return curated.Errorf(Regression, err)
	}

	if n > 0 && (confirm[0] == 'y' || confirm[0] == 'Y') {
		if err := db.Delete(v); err != nil {
			return err
		}
		commit = true
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// RegressAdd adds a new regression handler to the database. The regression
// is run to generate the digest before it is added.
func RegressAdd(output io.Writer, dbPath string, reg Regressor) (rerr error) {
	if output == nil {
		return curated.Errorf(NilOutput)
	}

	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if err := db.EndSession(commit); err != nil && rerr == nil {
			rerr = err
		}
	}()

	msg := fmt.Sprintf("adding: %s", reg)
	ok, _, err := reg.regress(true, output, msg)
	if err != nil {
		return err
	}
	if !ok {
		return curated.Errorf(Regression, "regression could not be created")
	}

	output.Write([]byte(clearLine))

	key, err := db.Add(reg)
	if err != nil {
		return err
	}
	commit = true

	fmt.Fprintf(output, "\radded #%03d: %s\n", key, reg)

	return nil
}

// RegressRun runs the tests in the regression database. The filterKeys list
// specifies which entries to test. An empty keys list means that every
// entry should be tested. The key FAILS selects the entries that failed the
// previous run.
//
// Returns an error if any test failed.
func RegressRun(output io.Writer, dbPath string, verbose bool, failOnError bool, filterKeys []string) error {
	if output == nil {
		return curated.Errorf(NilOutput)
	}

	filterKeys, err := addFailsToKeys(dbPath, filterKeys)
	if err != nil {
		return err
	}

	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	// make sure any supplied keys list is in order
	keysV := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf(BadKey, k)
		}
		keysV = append(keysV, v)
	}
	sort.Ints(keysV)

	numSucceed := 0
	numFail := 0
	numError := 0
	numSkipped := 0

	var fails []string

	keys := keysV
	if len(keys) == 0 {
		keys = db.SortedKeyList()
	} else {
		numSkipped = db.NumEntries() - len(keys)
	}

	for _, k := range keys {
		ent, err := db.SelectKeys(nil, k)
		if err != nil {
			return err
		}

		// database entry should also satisfy Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf(Regression, "database entry does not satisfy Regressor interface")
		}

		msg := fmt.Sprintf("running: %s", reg)
		ok, reason, err := reg.regress(false, output, msg)

		// once regress() has completed we clear the line ready for the
		// completion message
		output.Write([]byte(clearLine))

		switch {
		case err != nil:
			numError++
			fmt.Fprintf(output, "\r  ERROR: %s\n", reg)
			if verbose {
				fmt.Fprintf(output, "  %v\n", err)
			}
		case !ok:
			numFail++
			fmt.Fprintf(output, "\rfailure: %s\n", reg)
			if verbose && reason != "" {
				fmt.Fprintf(output, "  %s\n", reason)
			}
		default:
			numSucceed++
			fmt.Fprintf(output, "\rsucceed: %s\n", reg)
		}

		if err != nil || !ok {
			fails = append(fails, strconv.Itoa(k))
		}

		if err != nil && failOnError {
			break
		}
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, max(numSkipped, 0))
	if numError > 0 {
		fmt.Fprintf(output, " [with %d errors]", numError)
	}
	fmt.Fprintln(output)

	if err := saveFails(dbPath, fails); err != nil {
		return err
	}

	if numFail+numError > 0 {
		return curated.Errorf(Regression, fmt.Sprintf("%d of %d tests did not succeed", numFail+numError, numFail+numError+numSucceed))
	}

	return nil
}

func normaliseKeys(keys []string) []string {
	k := make([]string, 0, len(keys))
	for _, s := range keys {
		if s = strings.TrimSpace(s); s != "" {
			k = append(k, s)
		}
	}
	sort.Strings(k)
	return k
}
