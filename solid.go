/*
 * solid.go, part of graddft.
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

// KPointInfo describes the Brillouin-zone sampling of a periodic
// calculation: absolute and fractional k-point coordinates plus their
// integration weights. Symmetry-reduced sampling is not supported; the
// weights of an unreduced mesh are uniform.
type KPointInfo struct {
	KPtsAbs    *mat.Dense //nk x 3, absolute, Bohr^-1
	KPtsScaled *mat.Dense //nk x 3, fractional
	Weights    []float64
}

// GammaOnly reports whether the sampling consists of the gamma point
// alone.
func (k *KPointInfo) GammaOnly() bool {
	if k == nil {
		return true
	}
	r, _ := k.KPtsAbs.Dims()
	if r != 1 {
		return false
	}
	for c := 0; c < 3; c++ {
		if math.Abs(k.KPtsAbs.At(0, c)) > appzero {
			return false
		}
	}
	return true
}

// GammaKPoint returns the sampling of a gamma-point-only calculation.
func GammaKPoint() *KPointInfo {
	return &KPointInfo{
		KPtsAbs:    mat.NewDense(1, 3, nil),
		KPtsScaled: mat.NewDense(1, 3, nil),
		Weights:    []float64{1},
	}
}

// Solid is the periodic counterpart of Molecule. At the gamma point the
// crystalline orbitals are real and all the molecular machinery (density
// evaluation, non-XC energy, SCF, prediction) applies unchanged, so Solid
// embeds Molecule and only adds the cell information.
type Solid struct {
	Molecule
	KPts    *KPointInfo
	Lattice *mat.Dense //lattice vectors as rows, 3x3, Bohr
}

// MakeSolid wraps converged periodic mean-field data into a Solid. Only
// gamma-point sampling is supported; anything beyond it returns an error,
// as does a missing lattice.
func MakeSolid(m *Molecule, kpts *KPointInfo, lattice *mat.Dense) (*Solid, error) {
	if m == nil {
		return nil, newErr(true, "graddft: MakeSolid needs a molecule")
	}
	if lattice == nil {
		return nil, newErr(true, "graddft: a solid needs lattice vectors; for an isolated system use Molecule directly")
	}
	if r, c := lattice.Dims(); r != 3 || c != 3 {
		return nil, newErr(true, "graddft: lattice vectors must form a 3x3 matrix, got %dx%d", r, c)
	}
	if kpts == nil {
		kpts = GammaKPoint()
	}
	if !kpts.GammaOnly() {
		return nil, newErr(true, "graddft: Brillouin-zone sampling beyond the gamma point is not supported")
	}
	return &Solid{Molecule: *m, KPts: kpts, Lattice: lattice}, nil
}

// CellVolume returns the unit-cell volume in Bohr^3 (the absolute value
// of the lattice-vector determinant).
func (s *Solid) CellVolume() float64 {
	return math.Abs(mat.Det(s.Lattice))
}
