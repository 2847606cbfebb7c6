/*
 * loss.go, part of graddft.
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

package train

import (
	"fmt"

	graddft "github.com/Augus1999/GradDFT"
	"github.com/Augus1999/GradDFT/functional"
)

// EnergyLoss evaluates the squared error of the predicted total energy of
// one molecule against its reference energy, together with the gradient of
// that loss with respect to the functional parameters. The non-XC part of
// the energy does not depend on the parameters, so the chain rule reduces
// to 2 (E - E_ref) dExc/dtheta.
func EnergyLoss(m *graddft.Molecule, f *functional.Functional) (float64, *functional.Params, error) {
	if !m.HasEnergy() {
		return 0, nil, fmt.Errorf("train: molecule %q carries no reference energy", m.Name)
	}
	nonxc, err := m.NonXCEnergy()
	if err != nil {
		return 0, nil, err
	}
	exc, g, err := f.ExcAndGrad(m.Densities())
	if err != nil {
		return 0, nil, err
	}
	diff := nonxc + exc - m.Energy
	grad := g.ZerosLike()
	grad.AddScaled(2*diff, g)
	return diff * diff, grad, nil
}

// ReactionLoss is EnergyLoss for a reaction: the squared error of the
// stoichiometric energy difference against the reference reaction energy.
// Only the XC terms contribute to the gradient, with the stoichiometric
// signs of their members.
func ReactionLoss(r *graddft.Reaction, f *functional.Functional) (float64, *functional.Params, error) {
	var grad *functional.Params
	e := 0.0
	accumulate := func(m *graddft.Molecule, sign float64) error {
		nonxc, err := m.NonXCEnergy()
		if err != nil {
			return err
		}
		exc, g, err := f.ExcAndGrad(m.Densities())
		if err != nil {
			return err
		}
		e += sign * (nonxc + exc)
		if grad == nil {
			grad = g.ZerosLike()
		}
		grad.AddScaled(sign, g)
		return nil
	}
	for i, p := range r.Products {
		if err := accumulate(p, float64(r.ProductNumbers[i])); err != nil {
			return 0, nil, err
		}
	}
	for i, rc := range r.Reactants {
		if err := accumulate(rc, -float64(r.ReactantNumbers[i])); err != nil {
			return 0, nil, err
		}
	}
	diff := e - r.Energy
	out := grad.ZerosLike()
	out.AddScaled(2*diff, grad)
	return diff * diff, out, nil
}
