/*
 * codec.go, part of graddft.
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

package dataset

import (
	"fmt"
	"math"

	graddft "github.com/Augus1999/GradDFT"
	"gonum.org/v1/gonum/mat"
)

//matrixJSON is a dense matrix with explicit dimensions, row-major.
type matrixJSON struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

func packMatrix(m *mat.Dense) *matrixJSON {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	j := &matrixJSON{Rows: r, Cols: c}
	j.Data = append(j.Data, m.RawMatrix().Data...)
	return j
}

func (j *matrixJSON) dense() (*mat.Dense, error) {
	if j == nil {
		return nil, nil
	}
	if len(j.Data) != j.Rows*j.Cols {
		return nil, fmt.Errorf("dataset: matrix carries %d values for %dx%d", len(j.Data), j.Rows, j.Cols)
	}
	return mat.NewDense(j.Rows, j.Cols, j.Data), nil
}

//moleculeJSON is the serialized form of a Molecule. The reference energy
//is a pointer so its absence survives the roundtrip (NaN is not
//representable in JSON).
type moleculeJSON struct {
	Name        string         `json:"name"`
	Basis       string         `json:"basis"`
	Spin        int            `json:"spin"`
	Charge      int            `json:"charge"`
	AtomNumbers []int          `json:"atom_numbers"`
	NuclearPos  *matrixJSON    `json:"nuclear_pos"`
	GridCoords  []float64      `json:"grid_coords"` //flat, x1 y1 z1 x2 ...
	GridWeights []float64      `json:"grid_weights"`
	AO          *matrixJSON    `json:"ao"`
	GradAO      [3]*matrixJSON `json:"grad_ao"`
	RDM1        [2]*matrixJSON `json:"rdm1"`
	H1e         *matrixJSON    `json:"h1e"`
	VJ          *matrixJSON    `json:"vj,omitempty"`
	S1e         *matrixJSON    `json:"s1e"`
	Fock        [2]*matrixJSON `json:"fock"`
	MOCoeff     [2]*matrixJSON `json:"mo_coeff"`
	MOOcc       [2][]float64   `json:"mo_occ"`
	MOEnergy    [2][]float64   `json:"mo_energy"`
	RepNBasis   int            `json:"rep_nbasis,omitempty"`
	RepIdx      []int          `json:"rep_idx,omitempty"`
	RepVal      []float64      `json:"rep_val,omitempty"`
	ENuc        float64        `json:"e_nuc"`
	MFEnergy    float64        `json:"mf_energy"`
	Energy      *float64       `json:"energy,omitempty"`
}

func encodeMolecule(m *graddft.Molecule) *moleculeJSON {
	j := &moleculeJSON{
		Name:        m.Name,
		Basis:       m.Basis,
		Spin:        m.Spin,
		Charge:      m.Charge,
		AtomNumbers: m.AtomNumbers,
		NuclearPos:  packMatrix(m.NuclearPos),
		GridCoords:  append([]float64{}, m.Grid.Coords.RawMatrix().Data...),
		GridWeights: m.Grid.Weights,
		AO:          packMatrix(m.AO),
		H1e:         packMatrix(m.H1e),
		VJ:          packMatrix(m.VJ),
		S1e:         packMatrix(m.S1e),
		MOOcc:       m.MOOcc,
		MOEnergy:    m.MOEnergy,
		ENuc:        m.ENuc,
		MFEnergy:    m.MFEnergy,
	}
	for c := 0; c < 3; c++ {
		j.GradAO[c] = packMatrix(m.GradAO[c])
	}
	for s := 0; s < 2; s++ {
		j.RDM1[s] = packMatrix(m.RDM1[s])
		j.Fock[s] = packMatrix(m.Fock[s])
		j.MOCoeff[s] = packMatrix(m.MOCoeff[s])
	}
	if m.Rep != nil {
		j.RepNBasis = m.Rep.NBasis
		j.RepIdx = m.Rep.Idx
		j.RepVal = m.Rep.Val
	}
	if m.HasEnergy() {
		e := m.Energy
		j.Energy = &e
	}
	return j
}

func decodeMolecule(j *moleculeJSON) (*graddft.Molecule, error) {
	m := &graddft.Molecule{
		Name:        j.Name,
		Basis:       j.Basis,
		Spin:        j.Spin,
		Charge:      j.Charge,
		AtomNumbers: j.AtomNumbers,
		MOOcc:       j.MOOcc,
		MOEnergy:    j.MOEnergy,
		ENuc:        j.ENuc,
		MFEnergy:    j.MFEnergy,
	}
	var err error
	if m.NuclearPos, err = j.NuclearPos.dense(); err != nil {
		return nil, err
	}
	if m.Grid, err = graddft.NewGrid(j.GridCoords, j.GridWeights); err != nil {
		return nil, err
	}
	if m.AO, err = j.AO.dense(); err != nil {
		return nil, err
	}
	for c := 0; c < 3; c++ {
		if m.GradAO[c], err = j.GradAO[c].dense(); err != nil {
			return nil, err
		}
	}
	for s := 0; s < 2; s++ {
		if m.RDM1[s], err = j.RDM1[s].dense(); err != nil {
			return nil, err
		}
		if m.Fock[s], err = j.Fock[s].dense(); err != nil {
			return nil, err
		}
		if m.MOCoeff[s], err = j.MOCoeff[s].dense(); err != nil {
			return nil, err
		}
	}
	if m.H1e, err = j.H1e.dense(); err != nil {
		return nil, err
	}
	if m.VJ, err = j.VJ.dense(); err != nil {
		return nil, err
	}
	if m.S1e, err = j.S1e.dense(); err != nil {
		return nil, err
	}
	if j.RepNBasis > 0 {
		if len(j.RepIdx) != len(j.RepVal) {
			return nil, fmt.Errorf("dataset: repulsion tensor with %d indices and %d values", len(j.RepIdx), len(j.RepVal))
		}
		m.Rep = &graddft.RepTensor{NBasis: j.RepNBasis, Idx: j.RepIdx, Val: j.RepVal}
	}
	if j.Energy != nil {
		m.Energy = *j.Energy
	} else {
		m.Energy = math.NaN()
	}
	if err := m.Corrupted(); err != nil {
		return nil, err
	}
	return m, nil
}
