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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/test"
)

const (
	badDelay  = "timing: bad delay (%d)"
	wrapper   = "timing: %v"
	unrelated = "video: %v"
)

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf(badDelay, 300)
	test.ExpectEquality(t, e.Error(), "timing: bad delay (300)")

	f := curated.Errorf(wrapper, e)
	test.ExpectEquality(t, f.Error(), "timing: bad delay (300)")

	g := curated.Errorf(unrelated, f)
	test.ExpectEquality(t, g.Error(), "video: timing: bad delay (300)")
}

func TestIsAndHas(t *testing.T) {
	e := curated.Errorf(badDelay, 10)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, badDelay))
	test.ExpectFailure(t, curated.Is(e, wrapper))

	f := curated.Errorf(wrapper, e)
	test.ExpectFailure(t, curated.Is(f, badDelay))
	test.ExpectSuccess(t, curated.Has(f, badDelay))
	test.ExpectSuccess(t, curated.Has(f, wrapper))
	test.ExpectFailure(t, curated.Has(f, unrelated))

	plain := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(plain))
	test.ExpectFailure(t, curated.Has(plain, badDelay))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestUnwrap(t *testing.T) {
	plain := errors.New("plain error")
	e := curated.Errorf(wrapper, plain)
	test.ExpectSuccess(t, errors.Is(e, plain))
}
