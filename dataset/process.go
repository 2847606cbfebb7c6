/*
 * process.go, part of graddft.
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
	"math/rand"
	"sort"

	graddft "github.com/Augus1999/GradDFT"
)

// LabelWith sets each molecule's reference energy to the prediction of the
// given functional. This is how distillation training sets are built: a
// known functional labels the data and training should recover it.
func LabelWith(mols []*graddft.Molecule, xc graddft.XCFunctional) error {
	for _, m := range mols {
		e, err := graddft.PredictEnergy(m, xc)
		if err != nil {
			return err
		}
		m.Energy = e
	}
	return nil
}

// AddNoise perturbs the reference energies in place with Gaussian noise of
// the given standard deviation (Hartree). Molecules without a reference
// energy are left alone.
func AddNoise(mols []*graddft.Molecule, sigma float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for _, m := range mols {
		if m.HasEnergy() {
			m.Energy += rng.NormFloat64() * sigma
		}
	}
}

// BondLength returns the internuclear distance of a diatomic molecule in
// Bohr. It errors on anything that is not a diatomic.
func BondLength(m *graddft.Molecule) (float64, error) {
	if m.NuclearPos == nil {
		return 0, fmt.Errorf("dataset: molecule %q carries no nuclear positions", m.Name)
	}
	if r, _ := m.NuclearPos.Dims(); r != 2 {
		return 0, fmt.Errorf("dataset: molecule %q has %d atoms, need a diatomic", m.Name, r)
	}
	d := 0.0
	for c := 0; c < 3; c++ {
		diff := m.NuclearPos.At(0, c) - m.NuclearPos.At(1, c)
		d += diff * diff
	}
	return math.Sqrt(d), nil
}

// DissociationCurve orders a set of diatomic frames by internuclear
// distance and returns the sorted frames together with their distances.
// The frames typically come from the external package, one converged
// calculation per geometry.
func DissociationCurve(frames []*graddft.Molecule) ([]*graddft.Molecule, []float64, error) {
	type entry struct {
		m *graddft.Molecule
		d float64
	}
	entries := make([]entry, len(frames))
	for i, m := range frames {
		d, err := BondLength(m)
		if err != nil {
			return nil, nil, err
		}
		entries[i] = entry{m: m, d: d}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].d < entries[j].d })
	mols := make([]*graddft.Molecule, len(entries))
	dists := make([]float64, len(entries))
	for i, e := range entries {
		mols[i] = e.m
		dists[i] = e.d
	}
	return mols, dists, nil
}

// AtomizationReactions builds one atomization reaction per molecule:
// isolated atoms as reactants, the molecule as the single product, with
// the reaction energy taken from the stored reference energies. The atoms
// map provides a converged isolated-atom calculation per atomic number, in
// its ground-state spin multiplicity (see graddft.SpinOfElement). Every
// molecule and every needed atom must carry a reference energy.
func AtomizationReactions(mols []*graddft.Molecule, atoms map[int]*graddft.Molecule) ([]*graddft.Reaction, error) {
	var out []*graddft.Reaction
	for _, m := range mols {
		if !m.HasEnergy() {
			return nil, fmt.Errorf("dataset: molecule %q carries no reference energy", m.Name)
		}
		counts := make(map[int]int)
		for _, z := range m.AtomNumbers {
			counts[z]++
		}
		if len(counts) == 0 {
			return nil, fmt.Errorf("dataset: molecule %q carries no atom list", m.Name)
		}
		var reactants []*graddft.Molecule
		var numbers []int
		e := m.Energy
		//deterministic order
		zs := make([]int, 0, len(counts))
		for z := range counts {
			zs = append(zs, z)
		}
		sort.Ints(zs)
		for _, z := range zs {
			a, ok := atoms[z]
			if !ok {
				return nil, fmt.Errorf("dataset: no isolated-atom data for %s", graddft.Symbol(z))
			}
			if !a.HasEnergy() {
				return nil, fmt.Errorf("dataset: isolated atom %s carries no reference energy", graddft.Symbol(z))
			}
			reactants = append(reactants, a)
			numbers = append(numbers, counts[z])
			e -= float64(counts[z]) * a.Energy
		}
		r, err := graddft.MakeReaction(reactants, []*graddft.Molecule{m}, numbers, []int{1}, e, m.Name+" atomization")
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
