/*
 * scf_test.go, part of graddft.
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
	"fmt"
	"math"
	"testing"
)

//TestSCFClosedForm runs the SCF procedure on the exactly solvable
//one-basis system. With a single basis function the orbital cannot
//change, so the converged energy must match the hand computation from the
//first iteration on.
func TestSCFClosedForm(Te *testing.T) {
	h, j0, enuc := -1.3, 0.6, 0.9
	m := toyMolecule(h, j0, enuc)
	res, err := SCFDIIS(m, nullXC{}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !res.Converged {
		Te.Fatal("SCF did not converge on a one-basis system")
	}
	want := 2*h + 2*j0 + enuc
	if math.Abs(res.Energy-want) > 1e-10 {
		Te.Errorf("SCF energy: got %g want %g", res.Energy, want)
	}
	if res.DRMS > 1e-10 {
		Te.Error("residual should vanish at a fixed point, got", res.DRMS)
	}
	//the orbital energy is the Fock eigenvalue h + 2 j0
	if math.Abs(res.MOEnergy[0][0]-(h+2*j0)) > 1e-10 {
		Te.Error("orbital energy:", res.MOEnergy[0][0])
	}
	if res.MOOcc[0][0] != 1 || res.MOOcc[1][0] != 1 {
		Te.Error("aufbau occupations:", res.MOOcc)
	}
	fmt.Println("SCF converged in", res.Iterations, "iterations to", res.Energy)
}

//Starting from a wrong density must reach the same fixed point.
func TestSCFWrongStart(Te *testing.T) {
	h, j0, enuc := -1.3, 0.6, 0.9
	m := toyMolecule(h, j0, enuc)
	for s := 0; s < 2; s++ {
		m.RDM1[s].Set(0, 0, 0.2)
	}
	res, err := SCFDIIS(m, nullXC{}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	want := 2*h + 2*j0 + enuc
	if math.Abs(res.Energy-want) > 1e-8 {
		Te.Errorf("SCF energy from a perturbed start: got %g want %g", res.Energy, want)
	}
	//the converged density matrix must be back at 1
	if math.Abs(res.RDM1[0].At(0, 0)-1) > 1e-8 {
		Te.Error("converged density:", res.RDM1[0].At(0, 0))
	}
}

func TestSCFNotConverged(Te *testing.T) {
	m := toyMolecule(-1.3, 0.6, 0.9)
	for s := 0; s < 2; s++ {
		m.RDM1[s].Set(0, 0, 0.2)
	}
	opt := DefaultSCFOptions()
	opt.MaxIterations = 1
	res, err := SCFDIIS(m, nullXC{}, opt)
	if err == nil {
		Te.Fatal("expected a non-convergence error after one iteration")
	}
	gerr, ok := err.(Error)
	if !ok {
		Te.Fatal("SCF returned a foreign error type")
	}
	if gerr.Critical() {
		Te.Error("a non-converged SCF should not be a critical error")
	}
	if res == nil || res.Converged {
		Te.Error("the partial result should be returned, unconverged")
	}
	fmt.Println("as expected:", err.Error())
}

func TestSCFNeedsRepulsionTensor(Te *testing.T) {
	m := toyMolecule(-1, 0.5, 0)
	m.Rep = nil
	if _, err := SCFDIIS(m, nullXC{}, nil); err == nil {
		Te.Error("expected an error without the repulsion tensor")
	}
}

//TestSCFWithFunctional checks that a nonzero functional shifts the fixed
//point consistently: at convergence, E = E_nonXC[D] + Exc[D] evaluated at
//the converged density.
func TestSCFWithFunctional(Te *testing.T) {
	m := toyMolecule(-1.3, 0.6, 0.9)
	//a simple LDA-like functional with a closed-form energy density
	xc := testLDA{}
	res, err := SCFDIIS(m, xc, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !res.Converged {
		Te.Fatal("SCF with the test functional did not converge")
	}
	//rebuild the energy from the converged density
	check := toyMolecule(-1.3, 0.6, 0.9)
	for s := 0; s < 2; s++ {
		check.RDM1[s] = res.RDM1[s]
	}
	check.VJ = nil
	nonxc, err := check.NonXCEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	want := nonxc + xc.Exc(check.Densities())
	if math.Abs(res.Energy-want) > 1e-8 {
		Te.Errorf("SCF energy inconsistent with its density: got %g want %g", res.Energy, want)
	}
}

//testLDA is a Slater-exchange-only functional with analytic potential,
//enough to exercise the XC path of the SCF loop.
type testLDA struct{}

func (testLDA) Name() string { return "test-lda" }

func (testLDA) Exc(d *Dens) float64 {
	cx := 0.75 * math.Cbrt(3/math.Pi)
	e := 0.0
	for g := 0; g < d.Len(); g++ {
		for s := 0; s < 2; s++ {
			e -= d.W[g] * 0.5 * cx * math.Pow(2*math.Max(d.Rho[s][g], 0), 4.0/3.0)
		}
	}
	return e
}

func (testLDA) VRho(d *Dens) [2][]float64 {
	var v [2][]float64
	for s := 0; s < 2; s++ {
		v[s] = make([]float64, d.Len())
		for g := range v[s] {
			v[s][g] = -math.Cbrt(3 / math.Pi * 2 * math.Max(d.Rho[s][g], 0))
		}
	}
	return v
}
