/*
 * errors.go, part of graddft.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package graddft

import "fmt"

//Several functions here panic instead of returning errors. Those are
//"fundamental" functions (accessors and the like) where a failure means the
//program itself is wrong and should crash.

// Error is the interface for errors that the packages in this library
// implement. The Decorate method adds information to the error as it is
// passed up, without wrapping it in another type. Each call returns the
// current decoration slice; passing an empty string only retrieves it.
type Error interface {
	error
	Decorate(string) []string
	Critical() bool
}

// Err is the concrete error used throughout the root package.
type Err struct {
	message  string
	deco     []string
	critical bool
}

func (e *Err) Error() string { return e.message }

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty dec only returns the current decorations.
func (e *Err) Decorate(dec string) []string {
	if dec != "" {
		e.deco = append(e.deco, dec)
	}
	return e.deco
}

// Critical returns whether the error invalidates the result or can be
// ignored (e.g. an SCF that stopped at MaxIterations still carries a
// usable, if unconverged, energy).
func (e *Err) Critical() bool { return e.critical }

func newErr(critical bool, format string, args ...interface{}) *Err {
	return &Err{message: fmt.Sprintf(format, args...), critical: critical}
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name. It panics when used on a foreign error, which would be a
// bug in this library.
func errDecorate(err error, caller string) error {
	e := err.(Error)
	e.Decorate(caller)
	return e
}
