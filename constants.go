/*
 * constants.go, part of graddft.
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

// Unit conversion factors. Energies are kept in Hartree throughout the
// library; conversions are only applied at the edges (dataset building,
// reporting).
const (
	// Hartree2kcalmol converts Hartree to kcal/mol.
	Hartree2kcalmol = 627.509474
	// Hartree2eV converts Hartree to electronvolt.
	Hartree2eV = 27.211386245
	// Bohr2A converts Bohr radii to Angstrom.
	Bohr2A = 0.52917721092
)

// appzero is the treshold under which a float is considered zero
// for numerical comparisons within the package.
const appzero float64 = 0.000000000001
