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

// Package paths contains functions to prepare paths for the files the program
// reads and writes: the preferences file and generated captures.
package paths

import (
	"os"
	"path/filepath"
)

// the directory name used when the configuration directory is in the user's
// configuration area
const configDir = "tiletv"

// if a directory with this name exists in the current working directory then
// it is used in preference to the user's configuration area
const localConfigDir = ".tiletv"

// ResourcePath returns the path to the named resource. The base directory is
// created if it does not exist. The resource itself is not checked.
func ResourcePath(resource ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base}, resource...)...), nil
}

func basePath() (string, error) {
	if info, err := os.Stat(localConfigDir); err == nil && info.IsDir() {
		return localConfigDir, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	pth := filepath.Join(cnf, configDir)
	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}

	return pth, nil
}
