/*
 * density.go, part of graddft.
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

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dens collects the density-derived quantities a functional consumes,
// evaluated on the quadrature grid: the spin densities, their cartesian
// gradients, the gradient contractions sigma and the kinetic energy
// densities. The weights are carried along so a functional can be
// integrated without going back to the Molecule.
type Dens struct {
	W       []float64
	Rho     [2][]float64
	GradRho [2][3][]float64
	Sigma   [3][]float64 //contractions grad(rho_a).grad(rho_b): up-up, up-down, down-down
	Tau     [2][]float64
}

// Len returns the number of grid points.
func (d *Dens) Len() int { return len(d.W) }

// Clone returns a deep copy of d. Used by the finite-difference
// exchange-correlation potential, which perturbs the densities in place.
func (d *Dens) Clone() *Dens {
	nd := new(Dens)
	nd.W = append([]float64{}, d.W...)
	for s := 0; s < 2; s++ {
		nd.Rho[s] = append([]float64{}, d.Rho[s]...)
		nd.Tau[s] = append([]float64{}, d.Tau[s]...)
		for c := 0; c < 3; c++ {
			nd.GradRho[s][c] = append([]float64{}, d.GradRho[s][c]...)
		}
	}
	for i := 0; i < 3; i++ {
		nd.Sigma[i] = append([]float64{}, d.Sigma[i]...)
	}
	return nd
}

// RebuildSigma recomputes the gradient contractions from the stored
// gradients. Call it after modifying GradRho.
func (d *Dens) RebuildSigma() {
	n := d.Len()
	for i := 0; i < 3; i++ {
		if d.Sigma[i] == nil {
			d.Sigma[i] = make([]float64, n)
		}
	}
	for g := 0; g < n; g++ {
		var uu, ud, dd float64
		for c := 0; c < 3; c++ {
			uu += d.GradRho[0][c][g] * d.GradRho[0][c][g]
			ud += d.GradRho[0][c][g] * d.GradRho[1][c][g]
			dd += d.GradRho[1][c][g] * d.GradRho[1][c][g]
		}
		d.Sigma[0][g] = uu
		d.Sigma[1][g] = ud
		d.Sigma[2][g] = dd
	}
}

// Densities evaluates the density, its gradient and the kinetic energy
// density on the grid from the stored density matrices and AO values.
func (m *Molecule) Densities() *Dens {
	return DensitiesFrom(m.Grid, m.AO, m.GradAO, m.RDM1)
}

// DensitiesFrom is the workhorse behind Molecule.Densities. It is exported
// so the SCF solver can evaluate trial densities without mutating the
// molecule.
func DensitiesFrom(grid *Grid, ao *mat.Dense, gradAO [3]*mat.Dense, rdm1 [2]*mat.Dense) *Dens {
	ng, _ := ao.Dims()
	d := new(Dens)
	d.W = grid.Weights
	for s := 0; s < 2; s++ {
		d.Rho[s] = make([]float64, ng)
		d.Tau[s] = make([]float64, ng)
		for c := 0; c < 3; c++ {
			d.GradRho[s][c] = make([]float64, ng)
		}
		//t = AO D; rho_g = t_g . ao_g
		var t mat.Dense
		t.Mul(ao, rdm1[s])
		for g := 0; g < ng; g++ {
			tg := t.RawRowView(g)
			ag := ao.RawRowView(g)
			d.Rho[s][g] = floats.Dot(tg, ag)
			for c := 0; c < 3; c++ {
				//the factor 2 assumes a symmetric density matrix
				d.GradRho[s][c][g] = 2 * floats.Dot(tg, gradAO[c].RawRowView(g))
			}
		}
		for c := 0; c < 3; c++ {
			var u mat.Dense
			u.Mul(gradAO[c], rdm1[s])
			for g := 0; g < ng; g++ {
				d.Tau[s][g] += 0.5 * floats.Dot(u.RawRowView(g), gradAO[c].RawRowView(g))
			}
		}
	}
	d.RebuildSigma()
	return d
}

// ElectronCount integrates the spin densities over the grid. For a
// well-converged calculation on a decent grid this reproduces the electron
// count per channel, which makes it a cheap sanity check on imported data.
func (m *Molecule) ElectronCount() [2]float64 {
	d := m.Densities()
	var n [2]float64
	for s := 0; s < 2; s++ {
		for g := 0; g < d.Len(); g++ {
			n[s] += d.W[g] * d.Rho[s][g]
		}
	}
	return n
}
