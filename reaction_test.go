/*
 * reaction_test.go, part of graddft.
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
	"testing"
)

func TestMakeReactionValidation(Te *testing.T) {
	a := toyMolecule(-1, 0.5, 0)
	b := toyMolecule(-2, 0.3, 1)
	if _, err := MakeReaction([]*Molecule{a}, []*Molecule{b}, []int{2, 1}, []int{1}, 0, "bad"); err == nil {
		Te.Error("expected an error on mismatched coefficients")
	}
	if _, err := MakeReaction(nil, []*Molecule{b}, nil, []int{1}, 0, "empty"); err == nil {
		Te.Error("expected an error on an empty reactant side")
	}
}

func TestPredictReactionEnergy(Te *testing.T) {
	//2 A -> B with the null functional: the reaction energy is the plain
	//stoichiometric difference of the closed-form energies
	a := toyMolecule(-1.0, 0.5, 0.2)
	b := toyMolecule(-2.5, 0.3, 1.1)
	r, err := MakeReaction([]*Molecule{a}, []*Molecule{b}, []int{2}, []int{1}, 0, "2A->B")
	if err != nil {
		Te.Fatal(err)
	}
	e, err := PredictReactionEnergy(r, nullXC{})
	if err != nil {
		Te.Fatal(err)
	}
	ea := 2*(-1.0) + 2*0.5 + 0.2
	eb := 2*(-2.5) + 2*0.3 + 1.1
	if math.Abs(e-(eb-2*ea)) > 1e-12 {
		Te.Errorf("reaction energy: got %g want %g", e, eb-2*ea)
	}
}
