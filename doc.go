/*
 * doc.go, part of graddft.
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

/*Package graddft provides the electronic-structure side of training
machine-learned exchange-correlation functionals for density functional
theory.


	**Capabilities**

    Holds converged mean-field data (density matrices, orbitals, quadrature
	grid, integrals) in a Molecule structure, populated from the output of an
	external quantum-chemistry package (see the pyscf subpackage).

    Evaluates the electron density, its gradient and the kinetic energy
	density on the quadrature grid.

    Computes the non-exchange-correlation part of the total energy from the
	stored integrals, and the Coulomb matrix from the packed electron
	repulsion tensor.

    Solves the symmetric generalized eigenproblem of the Kohn-Sham equations.

    Runs a self-consistent field procedure (linear mixing plus DIIS
	acceleration) against any exchange-correlation functional implementing
	the XCFunctional interface, including the learned functionals of the
	functional subpackage.

    Predicts total energies at the stored converged density, which is the
	operation the train subpackage differentiates.

Periodic systems at the gamma point are supported through the Solid type,
which wraps the same machinery. Collections of systems tied together by a
reaction energy are represented by Reaction.

All dense linear algebra goes through gonum (gonum.org/v1/gonum/mat). Within
the package it is understood that quadrature-grid arrays are indexed by grid
point first and atomic orbital second.*/
package graddft
