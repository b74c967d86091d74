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

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var commandLineStack struct {
	crit   sync.Mutex
	groups []map[string]string
}

// PushCommandLineStack parses a string of preferences and adds it as a new
// group to the stack. The format of the string is:
//
//	key::value; key::value
//
// Values in the topmost group override the values stored on disk when a Disk
// instance is loaded. Each value is used only once.
func PushCommandLineStack(prefs string) {
	commandLineStack.crit.Lock()
	defer commandLineStack.crit.Unlock()

	grp := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		kv := strings.SplitN(p, "::", 2)
		if len(kv) == 2 {
			grp[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	commandLineStack.groups = append(commandLineStack.groups, grp)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the unused preferences of the group in the
// same format accepted by PushCommandLineStack().
func PopCommandLineStack() string {
	commandLineStack.crit.Lock()
	defer commandLineStack.crit.Unlock()

	n := len(commandLineStack.groups)
	if n == 0 {
		return ""
	}

	popped := commandLineStack.groups[n-1]
	commandLineStack.groups = commandLineStack.groups[:n-1]

	keys := make([]string, 0, len(popped))
	for k := range popped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%s::%s", k, popped[k])
	}
	return strings.Join(s, "; ")
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	commandLineStack.crit.Lock()
	defer commandLineStack.crit.Unlock()
	return len(commandLineStack.groups)
}

// GetCommandLinePref returns the value for key from the topmost group. The
// value is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, string) {
	commandLineStack.crit.Lock()
	defer commandLineStack.crit.Unlock()

	n := len(commandLineStack.groups)
	if n == 0 {
		return false, ""
	}

	grp := commandLineStack.groups[n-1]
	if v, ok := grp[key]; ok {
		delete(grp, key)
		return true, v
	}
	return false, ""
}
