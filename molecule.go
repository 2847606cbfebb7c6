/*
 * molecule.go, part of graddft.
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

// Grid is the quadrature grid the exchange-correlation energy is
// integrated on: one cartesian coordinate triplet (Bohr) and one weight
// per point.
type Grid struct {
	Coords  *mat.Dense //npoints x 3
	Weights []float64
}

// NewGrid builds a Grid from a flat coordinate slice (x1,y1,z1,x2,...) and
// a weight slice. It returns an error if the lengths are inconsistent.
func NewGrid(coords, weights []float64) (*Grid, error) {
	if len(coords) != 3*len(weights) {
		return nil, newErr(true, "graddft: grid needs 3 coordinates per weight, got %d coordinates for %d weights", len(coords), len(weights))
	}
	return &Grid{Coords: mat.NewDense(len(weights), 3, coords), Weights: weights}, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.Weights)
}

// Molecule holds the converged output of a mean-field calculation performed
// by the external quantum-chemistry package: everything the functional and
// the SCF procedure need, and nothing that requires re-evaluating basis
// functions or integrals. A Molecule is immutable once constructed; the SCF
// solver keeps its own working state.
//
// Spin-resolved quantities always carry two channels. Restricted input is
// expanded to two identical channels with halved occupations by the pyscf
// subpackage before a Molecule is built.
type Molecule struct {
	Grid        *Grid
	AtomNumbers []int      //atomic number per atom
	NuclearPos  *mat.Dense //natoms x 3, Bohr

	AO     *mat.Dense    //AO values on the grid, npoints x nao
	GradAO [3]*mat.Dense //d/dx, d/dy, d/dz of the AO values, npoints x nao each

	RDM1     [2]*mat.Dense //one-particle reduced density matrix per spin
	H1e      *mat.Dense    //core Hamiltonian
	VJ       *mat.Dense    //Coulomb matrix of the total converged density
	S1e      *mat.Dense    //overlap matrix
	Fock     [2]*mat.Dense //converged Fock matrix per spin
	MOCoeff  [2]*mat.Dense //orbital coefficients per spin, nao x nmo
	MOOcc    [2][]float64  //occupation numbers per spin
	MOEnergy [2][]float64  //orbital energies per spin
	Rep      *RepTensor    //packed electron repulsion tensor

	ENuc     float64 //nuclear repulsion energy
	MFEnergy float64 //total energy reported by the mean-field solver
	Energy   float64 //ground-truth energy for training; NaN when absent

	Basis  string
	Name   string
	Spin   int
	Charge int
}

// HasEnergy reports whether the molecule carries a ground-truth energy.
func (m *Molecule) HasEnergy() bool {
	return !math.IsNaN(m.Energy)
}

// NAO returns the number of atomic orbitals.
func (m *Molecule) NAO() int {
	_, c := m.AO.Dims()
	return c
}

// NGrid returns the number of quadrature points.
func (m *Molecule) NGrid() int {
	return m.Grid.Len()
}

// NElectrons returns the number of electrons per spin channel, from the
// occupation numbers. The totals are rounded to the nearest integer.
func (m *Molecule) NElectrons() [2]int {
	var n [2]int
	for s := 0; s < 2; s++ {
		tot := 0.0
		for _, o := range m.MOOcc[s] {
			tot += o
		}
		n[s] = int(math.Round(tot))
	}
	return n
}

// Corrupted checks the cross-array dimensions of the molecule and returns
// an error describing the first inconsistency found, or nil.
func (m *Molecule) Corrupted() error {
	if m.Grid == nil || m.AO == nil {
		return newErr(true, "graddft: molecule lacks grid or AO data")
	}
	ng, nao := m.AO.Dims()
	if ng != m.Grid.Len() {
		return newErr(true, "graddft: AO rows (%d) do not match grid points (%d)", ng, m.Grid.Len())
	}
	for c := 0; c < 3; c++ {
		if m.GradAO[c] == nil {
			return newErr(true, "graddft: missing AO gradient component %d", c)
		}
		if r, cc := m.GradAO[c].Dims(); r != ng || cc != nao {
			return newErr(true, "graddft: AO gradient component %d is %dx%d, want %dx%d", c, r, cc, ng, nao)
		}
	}
	for s := 0; s < 2; s++ {
		if m.RDM1[s] == nil {
			return newErr(true, "graddft: missing density matrix for spin channel %d", s)
		}
		if r, c := m.RDM1[s].Dims(); r != nao || c != nao {
			return newErr(true, "graddft: density matrix for spin %d is %dx%d, want %dx%d", s, r, c, nao, nao)
		}
		if len(m.MOOcc[s]) != len(m.MOEnergy[s]) {
			return newErr(true, "graddft: %d occupations but %d orbital energies in spin %d", len(m.MOOcc[s]), len(m.MOEnergy[s]), s)
		}
	}
	for _, sq := range []*mat.Dense{m.H1e, m.S1e} {
		if sq == nil {
			return newErr(true, "graddft: molecule lacks one-electron matrices")
		}
		if r, c := sq.Dims(); r != nao || c != nao {
			return newErr(true, "graddft: one-electron matrix is %dx%d, want %dx%d", r, c, nao, nao)
		}
	}
	if m.Rep != nil && m.Rep.NBasis != nao {
		return newErr(true, "graddft: repulsion tensor built for %d basis functions, molecule has %d", m.Rep.NBasis, nao)
	}
	if len(m.AtomNumbers) > 0 && m.NuclearPos != nil {
		if r, _ := m.NuclearPos.Dims(); r != len(m.AtomNumbers) {
			return newErr(true, "graddft: %d atoms but %d nuclear positions", len(m.AtomNumbers), r)
		}
	}
	return nil
}

// TotalRDM1 returns the spin-summed density matrix as a new dense matrix.
func (m *Molecule) TotalRDM1() *mat.Dense {
	nao := m.NAO()
	d := mat.NewDense(nao, nao, nil)
	d.Add(m.RDM1[0], m.RDM1[1])
	return d
}
