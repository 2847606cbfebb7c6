/*
 * eigen_test.go, part of graddft.
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

func TestSqrtInverse(Te *testing.T) {
	s := mat.NewDense(2, 2, []float64{1, 0.5, 0.5, 1})
	x, err := SqrtInverse(s)
	if err != nil {
		Te.Fatal(err)
	}
	//X S X should be the identity
	var p mat.Dense
	p.Mul(x, s)
	p.Mul(&p, x)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(p.At(i, j)-want) > 1e-10 {
				Te.Errorf("X S X at %d,%d: got %g want %g", i, j, p.At(i, j), want)
			}
		}
	}
}

func TestSqrtInverseSingular(Te *testing.T) {
	s := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	_, err := SqrtInverse(s)
	if err == nil {
		Te.Error("expected an error on a singular overlap matrix")
	} else {
		fmt.Println("singular overlap rejected:", err.Error())
	}
}

//TestGeneralizedEigen solves F C = S C e on a 2x2 system and checks the
//defining equation and the S-orthonormality of the eigenvectors.
func TestGeneralizedEigen(Te *testing.T) {
	f := mat.NewDense(2, 2, []float64{-1.5, -0.3, -0.3, -0.7})
	s := mat.NewDense(2, 2, []float64{1, 0.2, 0.2, 1})
	x, err := SqrtInverse(s)
	if err != nil {
		Te.Fatal(err)
	}
	vals, c, err := GeneralizedEigen(f, x)
	if err != nil {
		Te.Fatal(err)
	}
	if len(vals) != 2 {
		Te.Fatalf("got %d eigenvalues", len(vals))
	}
	if vals[0] > vals[1] {
		Te.Error("eigenvalues not in ascending order:", vals)
	}
	//F C = S C diag(vals)
	var fc, sc mat.Dense
	fc.Mul(f, c)
	sc.Mul(s, c)
	for o := 0; o < 2; o++ {
		for a := 0; a < 2; a++ {
			if math.Abs(fc.At(a, o)-vals[o]*sc.At(a, o)) > 1e-10 {
				Te.Errorf("F C != S C e for orbital %d, row %d", o, a)
			}
		}
	}
	//C^T S C = 1
	var o mat.Dense
	o.Mul(c.T(), s)
	o.Mul(&o, c)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(o.At(i, j)-want) > 1e-10 {
				Te.Errorf("orbitals not S-orthonormal at %d,%d: %g", i, j, o.At(i, j))
			}
		}
	}
	fmt.Println("generalized eigenvalues:", vals)
}

//The trivial S = 1 case must reduce to the ordinary symmetric
//eigenproblem.
func TestGeneralizedEigenIdentityOverlap(Te *testing.T) {
	f := mat.NewDense(2, 2, []float64{2, 0, 0, -1})
	s := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	x, err := SqrtInverse(s)
	if err != nil {
		Te.Fatal(err)
	}
	vals, _, err := GeneralizedEigen(f, x)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(vals[0]+1) > 1e-12 || math.Abs(vals[1]-2) > 1e-12 {
		Te.Error("wrong eigenvalues for the diagonal case:", vals)
	}
}
