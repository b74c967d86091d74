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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/hardware/cpu/instructions"
	"github.com/jetsetilly/tiletv/test"
)

func TestDefinitions(t *testing.T) {
	for op := instructions.NOP; op <= instructions.RET; op++ {
		defn, ok := instructions.Lookup(op)
		test.DemandSuccess(t, ok, op)
		test.ExpectEquality(t, defn.Opcode, op, op)
		test.ExpectInequality(t, defn.Mnemonic, "", op)
		test.ExpectSuccess(t, defn.Cycles > 0, op)
		if defn.IsBranch() {
			test.ExpectEquality(t, defn.TakenCycles, defn.Cycles+1, op)
		}
	}

	_, ok := instructions.Lookup(instructions.Opcode(-1))
	test.ExpectFailure(t, ok)

	lpm, _ := instructions.Lookup(instructions.LPM)
	test.ExpectEquality(t, lpm.String(), "lpm (3 cycles)")
	brcc, _ := instructions.Lookup(instructions.BRCC)
	test.ExpectEquality(t, brcc.String(), "brcc (1/2 cycles)")
}
