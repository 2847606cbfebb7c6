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

/*Package train fits the parameters of a learned functional to reference
energies. The loss is the squared error of the predicted total energies,
with each prediction evaluated at the stored converged density of its
molecule, so the parameter gradient runs only through the
exchange-correlation term and never through the SCF loop. Optimization is
plain Adam; checkpoints are zstd-compressed JSON.*/
package train
