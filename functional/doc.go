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

/*Package functional implements exchange-correlation functionals, fixed-form
and learned, on top of the density machinery of the root package.

Every functional here is built from two parts: a set of deterministic energy
densities evaluated from the electron density and its derivatives, and a
coefficient model weighting them. The exchange-correlation energy is always
the grid quadrature of the pointwise dot product of the two, which is what
makes the learned functionals trainable: the parameter gradient of the
energy only runs through the coefficient model.

The reference fixed-form functional is LSDA (Slater exchange plus PW92
correlation). Learned functionals use a small dense network over DM21-style
density inputs as their coefficient model.*/
package functional
