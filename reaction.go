/*
 * reaction.go, part of graddft.
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

// Reaction ties molecules together through a reaction energy: the
// ground truth is the energy of the reaction, not of any single member.
// Atomization energies are the typical case, with the molecule as the
// single product and its atoms as reactants.
type Reaction struct {
	Name            string
	Reactants       []*Molecule
	Products        []*Molecule
	ReactantNumbers []int //stoichiometric coefficients
	ProductNumbers  []int
	Energy          float64 //reference reaction energy, Hartree
}

// MakeReaction builds a Reaction after checking that every member has a
// stoichiometric coefficient.
func MakeReaction(reactants, products []*Molecule, reactantNumbers, productNumbers []int, energy float64, name string) (*Reaction, error) {
	if len(reactants) != len(reactantNumbers) {
		return nil, newErr(true, "graddft: %d reactants but %d reactant coefficients", len(reactants), len(reactantNumbers))
	}
	if len(products) != len(productNumbers) {
		return nil, newErr(true, "graddft: %d products but %d product coefficients", len(products), len(productNumbers))
	}
	if len(reactants) == 0 || len(products) == 0 {
		return nil, newErr(true, "graddft: a reaction needs at least one reactant and one product")
	}
	return &Reaction{
		Name:            name,
		Reactants:       reactants,
		Products:        products,
		ReactantNumbers: reactantNumbers,
		ProductNumbers:  productNumbers,
		Energy:          energy,
	}, nil
}

// PredictReactionEnergy evaluates the reaction energy with the given
// functional: the stoichiometric sum of product predictions minus that of
// the reactants, each at its stored density.
func PredictReactionEnergy(r *Reaction, xc XCFunctional) (float64, error) {
	e := 0.0
	for i, p := range r.Products {
		ep, err := PredictEnergy(p, xc)
		if err != nil {
			return 0, errDecorate(err, "PredictReactionEnergy")
		}
		e += float64(r.ProductNumbers[i]) * ep
	}
	for i, rc := range r.Reactants {
		er, err := PredictEnergy(rc, xc)
		if err != nil {
			return 0, errDecorate(err, "PredictReactionEnergy")
		}
		e -= float64(r.ReactantNumbers[i]) * er
	}
	return e, nil
}
