/*
 * graddft_test.go, part of graddft.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//nullXC is an exchange-correlation functional that contributes nothing,
//so SCF and prediction results have closed forms.
type nullXC struct{}

func (nullXC) Name() string { return "null" }

func (nullXC) Exc(d *Dens) float64 { return 0 }

func (nullXC) VRho(d *Dens) [2][]float64 {
	var v [2][]float64
	for s := 0; s < 2; s++ {
		v[s] = make([]float64, d.Len())
	}
	return v
}

//toyMolecule builds a one-basis-function, two-electron system with
//everything exactly solvable by hand: S = 1, H1 = h, (11|11) = j0, one
//electron per spin in the single orbital. The four grid points carry unit
//AO values and weights summing to one, so each spin density integrates to
//one electron. Total energy with a null functional: 2h + 2j0 + enuc.
func toyMolecule(h, j0, enuc float64) *Molecule {
	grid, err := NewGrid([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, []float64{0.25, 0.25, 0.25, 0.25})
	if err != nil {
		panic(err.Error())
	}
	rep := NewRepTensor(1)
	rep.Put(0, 0, 0, 0, j0)
	m := &Molecule{
		Grid:        grid,
		AtomNumbers: []int{2},
		NuclearPos:  mat.NewDense(1, 3, []float64{0, 0, 0}),
		AO:          mat.NewDense(4, 1, []float64{1, 1, 1, 1}),
		H1e:         mat.NewDense(1, 1, []float64{h}),
		VJ:          mat.NewDense(1, 1, []float64{2 * j0}),
		S1e:         mat.NewDense(1, 1, []float64{1}),
		Rep:         rep,
		ENuc:        enuc,
		MFEnergy:    2*h + 2*j0 + enuc,
		Energy:      math.NaN(),
		Basis:       "toy",
		Name:        "toy",
	}
	for s := 0; s < 2; s++ {
		m.GradAO[s] = mat.NewDense(4, 1, nil)
		m.RDM1[s] = mat.NewDense(1, 1, []float64{1})
		m.Fock[s] = mat.NewDense(1, 1, []float64{h + 2*j0})
		m.MOCoeff[s] = mat.NewDense(1, 1, []float64{1})
		m.MOOcc[s] = []float64{1}
		m.MOEnergy[s] = []float64{h + 2*j0}
	}
	m.GradAO[2] = mat.NewDense(4, 1, nil)
	return m
}
