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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
)

// Sentinel errors.
const (
	NoPreviousFails = "regression: no previous fails"
	Fails           = "regression: fails file: %v"
)

// the fails file lives alongside the database
func failsPath(dbPath string) string {
	return dbPath + ".fails"
}

func saveFails(dbPath string, keys []string) error {
	keys = slices.Compact(normaliseKeys(keys))

	f, err := os.Create(failsPath(dbPath))
	if err != nil {
		return curated.Errorf(Fails, err)
	}

	for _, v := range keys {
		fmt.Fprintln(f, v)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf(Fails, err)
	}

	return nil
}

func loadFails(dbPath string) ([]string, error) {
	b, err := os.ReadFile(failsPath(dbPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return []string{}, curated.Errorf(Fails, err)
	}

	return slices.Compact(normaliseKeys(strings.Split(string(b), "\n"))), nil
}

// replace the special key FAILS with the keys that failed the previous run
func addFailsToKeys(dbPath string, keys []string) ([]string, error) {
	keys = slices.Compact(normaliseKeys(keys))

	n := slices.IndexFunc(keys, func(s string) bool {
		return strings.ToUpper(s) == "FAILS"
	})
	if n < 0 {
		return keys, nil
	}
	keys = slices.Delete(keys, n, n+1)

	prevFails, err := loadFails(dbPath)
	if err != nil {
		return keys, err
	}
	if len(prevFails) == 0 {
		return keys, curated.Errorf(NoPreviousFails)
	}

	return slices.Compact(normaliseKeys(append(keys, prevFails...))), nil
}
