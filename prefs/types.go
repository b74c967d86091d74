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
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hook is called after a value has been updated
type hook func(value Value) error

// value is the shared implementation of the atomic preference types
type value[T any] struct {
	v        atomic.Value
	zero     T
	hookPost hook
}

func (p *value[T]) load() T {
	if v := p.v.Load(); v != nil {
		return v.(T)
	}
	return p.zero
}

// set converts the incoming Value with the convert function before storing it
func (p *value[T]) set(v Value, convert func(Value) (T, error)) error {
	nv, err := convert(v)
	if err != nil {
		return err
	}
	p.v.Store(nv)
	if p.hookPost != nil {
		return p.hookPost(nv)
	}
	return nil
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	value[bool]
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	return p.set(v, func(v Value) (bool, error) {
		switch v := v.(type) {
		case bool:
			return v, nil
		case string:
			return strings.ToLower(strings.TrimSpace(v)) == "true", nil
		}
		return false, fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	})
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.load()
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// SetHookPost sets the callback function to be called just after the value is
// updated. The callback is called even if the value hasn't changed.
func (p *Bool) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Int implements an integer type in the prefs system.
type Int struct {
	value[int]
}

func (p *Int) String() string {
	return strconv.Itoa(p.load())
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	return p.set(v, func(v Value) (int, error) {
		switch v := v.(type) {
		case int:
			return v, nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return 0, fmt.Errorf("prefs: cannot convert %q to prefs.Int", v)
			}
			return n, nil
		}
		return 0, fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
	})
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return p.load()
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// SetHookPost sets the callback function to be called just after the value is
// updated.
func (p *Int) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Float implements a floating point type in the prefs system.
type Float struct {
	value[float64]
}

func (p *Float) String() string {
	return strconv.FormatFloat(p.load(), 'f', -1, 64)
}

// Set new value to Float type. New value can be a float32, float64 or string.
func (p *Float) Set(v Value) error {
	return p.set(v, func(v Value) (float64, error) {
		switch v := v.(type) {
		case float32:
			return float64(v), nil
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return 0, fmt.Errorf("prefs: cannot convert %q to prefs.Float", v)
			}
			return f, nil
		}
		return 0, fmt.Errorf("prefs: cannot convert %T to prefs.Float", v)
	})
}

// Get returns the raw pref value.
func (p *Float) Get() Value {
	return p.load()
}

// Reset sets the float value to zero.
func (p *Float) Reset() error {
	return p.Set(0.0)
}

// SetHookPost sets the callback function to be called just after the value is
// updated.
func (p *Float) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// String implements a string type in the prefs system.
type String struct {
	value[string]
}

func (p *String) String() string {
	return p.load()
}

// Set new value to String type. Any value is accepted and formatted with the
// %v verb.
func (p *String) Set(v Value) error {
	return p.set(v, func(v Value) (string, error) {
		return strings.TrimSpace(fmt.Sprintf("%v", v)), nil
	})
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.load()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// SetHookPost sets the callback function to be called just after the value is
// updated.
func (p *String) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}
