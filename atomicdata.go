/*
 * atomicdata.go, part of graddft.
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

import "golang.org/x/exp/slices"

//Element symbols indexed by atomic number. "X" is the ghost atom.
//Only the first four periods are present, which covers the datasets
//this library is trained on.
var elementSymbols = []string{
	"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
}

//Ground-state electron counts per angular momentum (s, p, d, f) indexed by
//atomic number.
var shellConfiguration = [][4]int{
	{0, 0, 0, 0},
	{1, 0, 0, 0}, {2, 0, 0, 0},
	{3, 0, 0, 0}, {4, 0, 0, 0}, {4, 1, 0, 0}, {4, 2, 0, 0}, {4, 3, 0, 0},
	{4, 4, 0, 0}, {4, 5, 0, 0}, {4, 6, 0, 0},
	{5, 6, 0, 0}, {6, 6, 0, 0}, {6, 7, 0, 0}, {6, 8, 0, 0}, {6, 9, 0, 0},
	{6, 10, 0, 0}, {6, 11, 0, 0}, {6, 12, 0, 0},
	{7, 12, 0, 0}, {8, 12, 0, 0}, {8, 12, 1, 0}, {8, 12, 2, 0}, {8, 12, 3, 0},
	{7, 12, 5, 0}, {8, 12, 5, 0}, {8, 12, 6, 0}, {8, 12, 7, 0}, {8, 12, 8, 0},
	{7, 12, 10, 0}, {8, 12, 10, 0},
	{8, 13, 10, 0}, {8, 14, 10, 0}, {8, 15, 10, 0}, {8, 16, 10, 0},
	{8, 17, 10, 0}, {8, 18, 10, 0},
}

// AtomicNumber returns the atomic number for the element symbol given,
// or -1 if the symbol is not known to the library.
func AtomicNumber(symbol string) int {
	return slices.Index(elementSymbols, symbol)
}

// Symbol returns the element symbol for the atomic number z. Panics if z
// is out of the range covered by the library.
func Symbol(z int) string {
	if z < 0 || z >= len(elementSymbols) {
		panic("graddft: atomic number out of range")
	}
	return elementSymbols[z]
}

// SpinOfElement returns the number of unpaired electrons of an isolated
// atom in its electronic ground state, obtained from the shell filling.
// It returns an error for elements outside the covered range.
func SpinOfElement(symbol string) (int, error) {
	z := AtomicNumber(symbol)
	if z < 1 || z >= len(shellConfiguration) {
		return 0, newErr(true, "graddft: no shell configuration for element %q", symbol)
	}
	conf := shellConfiguration[z]
	spin := conf[0] % 2
	spin += min(conf[1]%6, 6-conf[1]%6)
	spin += min(conf[2]%10, 10-conf[2]%10)
	spin += min(conf[3]%14, 14-conf[3]%14)
	return spin, nil
}
