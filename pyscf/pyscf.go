/*
 * pyscf.go, part of graddft.
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

/*Package pyscf imports the converged mean-field snapshots that the
external quantum-chemistry package exports as JSON archives, optionally
zstd-compressed. The exporter runs on the Python side; this package only
consumes its output, expanding restricted calculations to the two spin
channels the rest of the library works with.*/
package pyscf

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//archive mirrors the JSON layout of the exporter. Matrices come flat,
//row-major, with dimensions recoverable from nao and the grid size.
//Spin-resolved arrays carry one entry for restricted calculations and two
//for unrestricted ones.
type archive struct {
	Name        string      `json:"name"`
	Basis       string      `json:"basis"`
	Spin        int         `json:"spin"`
	Charge      int         `json:"charge"`
	AtomNumbers []int       `json:"atom_numbers"`
	NuclearPos  []float64   `json:"nuclear_pos"`
	GridCoords  []float64   `json:"grid_coords"`
	GridWeights []float64   `json:"grid_weights"`
	NAO         int         `json:"nao"`
	AO          []float64   `json:"ao"`
	GradAO      [][]float64 `json:"grad_ao"`
	RDM1        [][]float64 `json:"rdm1"`
	H1e         []float64   `json:"h1e"`
	VJ          []float64   `json:"vj"`
	S1e         []float64   `json:"s1e"`
	Fock        [][]float64 `json:"fock"`
	MOCoeff     [][]float64 `json:"mo_coeff"`
	MOOcc       [][]float64 `json:"mo_occ"`
	MOEnergy    [][]float64 `json:"mo_energy"`
	RepTensor   []float64   `json:"rep_tensor"`
	ENuc        float64     `json:"e_nuc"`
	MFEnergy    float64     `json:"mf_energy"`
	Energy      *float64    `json:"energy"`

	//periodic systems only
	Lattice    []float64 `json:"lattice"`
	KPtsAbs    []float64 `json:"kpts_abs"`
	KPtsScaled []float64 `json:"kpts_scaled"`
	KWeights   []float64 `json:"k_weights"`
}

func readArchive(path string) (*archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	a := new(archive)
	if err := json.NewDecoder(r).Decode(a); err != nil {
		return nil, fmt.Errorf("pyscf: reading archive %s: %w", path, err)
	}
	if a.NAO <= 0 {
		return nil, fmt.Errorf("pyscf: archive %s carries no basis dimension", path)
	}
	return a, nil
}

func denseOrNil(r, c int, data []float64, what string) (*mat.Dense, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) != r*c {
		return nil, fmt.Errorf("pyscf: %s carries %d values for %dx%d", what, len(data), r, c)
	}
	return mat.NewDense(r, c, data), nil
}

//spinPair expands a 1- or 2-channel flat matrix list to the two spin
//channels of the library. The restricted single channel is the total
//quantity, split evenly.
func spinPair(ch [][]float64, r, c int, what string) ([2]*mat.Dense, error) {
	var out [2]*mat.Dense
	switch len(ch) {
	case 1:
		m, err := denseOrNil(r, c, ch[0], what)
		if err != nil {
			return out, err
		}
		half := mat.NewDense(r, c, nil)
		half.Scale(0.5, m)
		out[0] = half
		out[1] = mat.DenseCopyOf(half)
	case 2:
		for s := 0; s < 2; s++ {
			m, err := denseOrNil(r, c, ch[s], what)
			if err != nil {
				return out, err
			}
			out[s] = m
		}
	default:
		return out, fmt.Errorf("pyscf: %s carries %d spin channels", what, len(ch))
	}
	return out, nil
}

//coeffPair is spinPair for quantities that are duplicated rather than
//split on restricted input (orbital coefficients, Fock matrices).
func coeffPair(ch [][]float64, r, c int, what string) ([2]*mat.Dense, error) {
	if len(ch) == 1 {
		m, err := denseOrNil(r, c, ch[0], what)
		if err != nil {
			return [2]*mat.Dense{}, err
		}
		return [2]*mat.Dense{m, mat.DenseCopyOf(m)}, nil
	}
	return spinPair(ch, r, c, what)
}

//moleculeFrom assembles a Molecule from a parsed archive.
func moleculeFrom(a *archive, path string) (*graddft.Molecule, error) {
	nao := a.NAO
	ng := len(a.GridWeights)
	m := &graddft.Molecule{
		Name:        a.Name,
		Basis:       a.Basis,
		Spin:        a.Spin,
		Charge:      a.Charge,
		AtomNumbers: a.AtomNumbers,
		ENuc:        a.ENuc,
		MFEnergy:    a.MFEnergy,
		Energy:      math.NaN(),
	}
	if a.Energy != nil {
		m.Energy = *a.Energy
	}
	var err error
	if m.Grid, err = graddft.NewGrid(a.GridCoords, a.GridWeights); err != nil {
		return nil, err
	}
	if len(a.AtomNumbers) > 0 {
		if m.NuclearPos, err = denseOrNil(len(a.AtomNumbers), 3, a.NuclearPos, "nuclear positions"); err != nil {
			return nil, err
		}
	}
	if m.AO, err = denseOrNil(ng, nao, a.AO, "AO values"); err != nil {
		return nil, err
	}
	if len(a.GradAO) != 3 {
		return nil, fmt.Errorf("pyscf: archive %s carries %d AO gradient components", path, len(a.GradAO))
	}
	for c := 0; c < 3; c++ {
		if m.GradAO[c], err = denseOrNil(ng, nao, a.GradAO[c], "AO gradients"); err != nil {
			return nil, err
		}
	}
	if m.RDM1, err = spinPair(a.RDM1, nao, nao, "density matrix"); err != nil {
		return nil, err
	}
	if m.Fock, err = coeffPair(a.Fock, nao, nao, "Fock matrix"); err != nil {
		return nil, err
	}
	if m.H1e, err = denseOrNil(nao, nao, a.H1e, "core Hamiltonian"); err != nil {
		return nil, err
	}
	if m.VJ, err = denseOrNil(nao, nao, a.VJ, "Coulomb matrix"); err != nil {
		return nil, err
	}
	if m.S1e, err = denseOrNil(nao, nao, a.S1e, "overlap matrix"); err != nil {
		return nil, err
	}
	switch len(a.MOCoeff) {
	case 1, 2:
		nmo := len(a.MOCoeff[0]) / nao
		if m.MOCoeff, err = coeffPair(a.MOCoeff, nao, nmo, "orbital coefficients"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pyscf: archive %s carries %d orbital coefficient channels", path, len(a.MOCoeff))
	}
	switch len(a.MOOcc) {
	case 1:
		//restricted occupations are 0..2; each channel gets half
		half := make([]float64, len(a.MOOcc[0]))
		for i, o := range a.MOOcc[0] {
			half[i] = o / 2
		}
		m.MOOcc[0] = half
		m.MOOcc[1] = append([]float64{}, half...)
		m.MOEnergy[0] = a.MOEnergy[0]
		m.MOEnergy[1] = append([]float64{}, a.MOEnergy[0]...)
	case 2:
		for s := 0; s < 2; s++ {
			m.MOOcc[s] = a.MOOcc[s]
			m.MOEnergy[s] = a.MOEnergy[s]
		}
	default:
		return nil, fmt.Errorf("pyscf: archive %s carries %d occupation channels", path, len(a.MOOcc))
	}
	if a.RepTensor != nil {
		if m.Rep, err = graddft.DenseRepTensor(nao, a.RepTensor); err != nil {
			return nil, err
		}
	}
	if err := m.Corrupted(); err != nil {
		return nil, err
	}
	return m, nil
}

// MoleculeFromArchive reads an isolated-system archive. Periodic archives
// are rejected; use SolidFromArchive for those.
func MoleculeFromArchive(path string) (*graddft.Molecule, error) {
	a, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	if a.Lattice != nil {
		return nil, fmt.Errorf("pyscf: archive %s is periodic; use SolidFromArchive", path)
	}
	return moleculeFrom(a, path)
}

// SolidFromArchive reads a periodic-system archive. Only gamma-point
// sampling is supported, matching the rest of the library.
func SolidFromArchive(path string) (*graddft.Solid, error) {
	a, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	if a.Lattice == nil {
		return nil, fmt.Errorf("pyscf: archive %s is not periodic; use MoleculeFromArchive", path)
	}
	m, err := moleculeFrom(a, path)
	if err != nil {
		return nil, err
	}
	lattice, err := denseOrNil(3, 3, a.Lattice, "lattice vectors")
	if err != nil {
		return nil, err
	}
	var kpts *graddft.KPointInfo
	if a.KPtsAbs != nil {
		nk := len(a.KWeights)
		if nk == 0 {
			nk = len(a.KPtsAbs) / 3
			a.KWeights = make([]float64, nk)
			for i := range a.KWeights {
				a.KWeights[i] = 1 / float64(nk)
			}
		}
		abs, err := denseOrNil(nk, 3, a.KPtsAbs, "k-points")
		if err != nil {
			return nil, err
		}
		scaled, err := denseOrNil(nk, 3, a.KPtsScaled, "fractional k-points")
		if err != nil {
			return nil, err
		}
		if scaled == nil {
			scaled = mat.NewDense(nk, 3, nil)
		}
		kpts = &graddft.KPointInfo{KPtsAbs: abs, KPtsScaled: scaled, Weights: a.KWeights}
	}
	return graddft.MakeSolid(m, kpts, lattice)
}
