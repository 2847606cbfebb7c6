/*
 * energy_test.go, part of graddft.
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

	"gonum.org/v1/gonum/mat"
)

//TestRepTensorCoulomb packs a small dense integral array and checks the
//symmetry-expanded contraction against the brute-force one.
func TestRepTensorCoulomb(Te *testing.T) {
	n := 3
	vals := make([]float64, n*n*n*n)
	//a made-up but fully symmetric tensor: (ab|cd) = 1/(1+a+b+c+d) + small
	//couplings that respect the 8-fold symmetry
	at := func(a, b, c, d int) float64 {
		return 1/(1+float64(a+b+c+d)) + 0.1*float64((a+1)*(b+1)+(c+1)*(d+1))
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					//symmetrize explicitly over the 8 images
					v := (at(a, b, c, d) + at(b, a, c, d) + at(a, b, d, c) + at(b, a, d, c) +
						at(c, d, a, b) + at(d, c, a, b) + at(c, d, b, a) + at(d, c, b, a)) / 8
					vals[((a*n+b)*n+c)*n+d] = v
				}
			}
		}
	}
	t, err := DenseRepTensor(n, vals)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("unique integrals stored:", t.Len(), "of", n*n*n*n)
	d := mat.NewDense(n, n, []float64{1.2, 0.3, 0.1, 0.3, 0.8, 0.2, 0.1, 0.2, 0.5})
	j := t.Coulomb(d)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			want := 0.0
			for c := 0; c < n; c++ {
				for e := 0; e < n; e++ {
					want += vals[((a*n+b)*n+c)*n+e] * d.At(c, e)
				}
			}
			if math.Abs(j.At(a, b)-want) > 1e-10 {
				Te.Errorf("J at %d,%d: got %g want %g", a, b, j.At(a, b), want)
			}
		}
	}
}

func TestRepTensorQuartet(Te *testing.T) {
	t := NewRepTensor(5)
	t.Put(4, 2, 3, 1, 1.5)
	i, j, k, l := t.Quartet(0)
	if i != 4 || j != 2 || k != 3 || l != 1 {
		Te.Error("quartet decode failed:", i, j, k, l)
	}
}

func TestNonXCEnergy(Te *testing.T) {
	h, j0, enuc := -1.3, 0.6, 0.9
	m := toyMolecule(h, j0, enuc)
	e, err := m.NonXCEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	want := 2*h + 2*j0 + enuc
	if math.Abs(e-want) > 1e-12 {
		Te.Errorf("non-XC energy: got %g want %g", e, want)
	}
	//the same without the stored Coulomb matrix, rebuilt from the tensor
	m.VJ = nil
	e2, err := m.NonXCEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e2-want) > 1e-12 {
		Te.Errorf("non-XC energy from the repulsion tensor: got %g want %g", e2, want)
	}
}

func TestCoulombMatrixMissingData(Te *testing.T) {
	m := toyMolecule(-1, 0.5, 0)
	m.VJ = nil
	m.Rep = nil
	if _, err := m.CoulombMatrix(); err == nil {
		Te.Error("expected an error with neither VJ nor the repulsion tensor")
	}
}

func TestIntegrate(Te *testing.T) {
	w := []float64{0.5, 0.5, 1}
	f := []float64{2, 4, 1}
	if r := Integrate(w, f); math.Abs(r-4) > 1e-14 {
		Te.Error("quadrature: got", r)
	}
}
