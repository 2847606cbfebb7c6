/*
 * predictor.go, part of graddft.
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
	"gonum.org/v1/gonum/mat"
)

// XCFunctional is what the SCF loop and the energy predictor need from an
// exchange-correlation functional: the integrated XC energy at a given
// density, and the pointwise functional derivative with respect to the
// spin densities. The functional subpackage provides fixed-form and
// learned implementations.
type XCFunctional interface {
	Name() string

	//Exc returns the exchange-correlation energy integrated on the grid.
	Exc(d *Dens) float64

	//VRho returns d(exc)/d(rho_s) per grid point and spin channel, where
	//exc is the XC energy density entering the quadrature.
	VRho(d *Dens) [2][]float64
}

// XCMatrix contracts a pointwise potential with the AO values and grid
// weights into the matrix representation entering the Fock operator:
// V_ab = sum_g w_g v_g ao_ga ao_gb.
func (m *Molecule) XCMatrix(vrho [2][]float64) [2]*mat.Dense {
	ng, nao := m.AO.Dims()
	var out [2]*mat.Dense
	for s := 0; s < 2; s++ {
		//scale the AO rows by w*v, then contract with the unscaled AO
		scaled := mat.NewDense(ng, nao, nil)
		for g := 0; g < ng; g++ {
			wv := m.Grid.Weights[g] * vrho[s][g]
			row := m.AO.RawRowView(g)
			dst := scaled.RawRowView(g)
			for a := range row {
				dst[a] = wv * row[a]
			}
		}
		v := mat.NewDense(nao, nao, nil)
		v.Mul(m.AO.T(), scaled)
		out[s] = v
	}
	return out
}

// PredictEnergy evaluates the total energy at the stored converged
// density: the non-XC part from the stored integrals plus the functional
// integrated on the grid. This is the quantity the training loop
// differentiates with respect to the functional parameters.
func PredictEnergy(m *Molecule, xc XCFunctional) (float64, error) {
	nonxc, err := m.NonXCEnergy()
	if err != nil {
		return 0, errDecorate(err, "PredictEnergy")
	}
	return nonxc + xc.Exc(m.Densities()), nil
}

// PredictFock assembles the Fock matrix per spin at the stored density:
// F_s = H1 + J[D_tot] + Vxc_s.
func PredictFock(m *Molecule, xc XCFunctional) ([2]*mat.Dense, error) {
	vj, err := m.CoulombMatrix()
	if err != nil {
		return [2]*mat.Dense{}, errDecorate(err, "PredictFock")
	}
	vxc := m.XCMatrix(xc.VRho(m.Densities()))
	nao := m.NAO()
	var f [2]*mat.Dense
	for s := 0; s < 2; s++ {
		f[s] = mat.NewDense(nao, nao, nil)
		f[s].Add(m.H1e, vj)
		f[s].Add(f[s], vxc[s])
	}
	return f, nil
}
