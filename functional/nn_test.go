/*
 * nn_test.go, part of graddft.
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

package functional

import (
	"encoding/json"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testInputs() *mat.Dense {
	return mat.NewDense(3, NInputs, []float64{
		-2.1, -1.8, -4.0, -4.2, -3.9, -2.5, -2.6,
		-0.5, -0.7, -2.0, -2.2, -1.9, -1.1, -1.3,
		0.3, 0.1, -1.0, -1.2, -0.9, -0.2, -0.4,
	})
}

//The head squashes every coefficient into (0, SigmoidScale).
func TestMLPOutputBounds(Te *testing.T) {
	n := NewMLP(NInputs, 4, 8, 2, 3)
	c := n.Coefficients(testInputs())
	r, cols := c.Dims()
	if r != 3 || cols != 4 {
		Te.Fatal("wrong coefficient shape:", r, cols)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			v := c.At(i, j)
			if v <= 0 || v >= n.SigmoidScale {
				Te.Error("coefficient out of bounds:", v)
			}
		}
	}
}

func TestMLPDeterministicInit(Te *testing.T) {
	a := NewMLP(NInputs, 4, 8, 2, 7)
	b := NewMLP(NInputs, 4, 8, 2, 7)
	x := testInputs()
	ca := a.Coefficients(x)
	cb := b.Coefficients(x)
	if !mat.EqualApprox(ca, cb, 1e-15) {
		Te.Error("same seed gave different networks")
	}
	c := NewMLP(NInputs, 4, 8, 2, 8)
	if mat.EqualApprox(ca, c.Coefficients(x), 1e-12) {
		Te.Error("different seeds gave the same network")
	}
}

//TestMLPGradient is the full backpropagation check: dL/dtheta for
//L = sum cot .* C(x) against central finite differences, every parameter.
func TestMLPGradient(Te *testing.T) {
	n := NewMLP(NInputs, 2, 5, 2, 11)
	x := testInputs()
	cot := mat.NewDense(3, 2, []float64{0.7, -0.3, 1.1, 0.4, -0.8, 0.9})
	loss := func() float64 {
		c := n.Coefficients(x)
		l := 0.0
		for i := 0; i < 3; i++ {
			for j := 0; j < 2; j++ {
				l += cot.At(i, j) * c.At(i, j)
			}
		}
		return l
	}
	grad := n.Gradient(x, cot)
	flat := n.Params().Flat()
	gflat := grad.Flat()
	h := 1e-6
	for i := range flat {
		for j := range flat[i] {
			orig := flat[i][j]
			flat[i][j] = orig + h
			lp := loss()
			flat[i][j] = orig - h
			lm := loss()
			flat[i][j] = orig
			fd := (lp - lm) / (2 * h)
			if math.Abs(fd-gflat[i][j]) > 1e-6*(1+math.Abs(fd)) {
				Te.Fatalf("parameter %d,%d: backprop %g finite difference %g", i, j, gflat[i][j], fd)
			}
		}
	}
}

func TestParamsJSONRoundtrip(Te *testing.T) {
	n := NewMLP(3, 2, 4, 1, 5)
	data, err := json.Marshal(n.Params())
	if err != nil {
		Te.Fatal(err)
	}
	restored := new(Params)
	if err := json.Unmarshal(data, restored); err != nil {
		Te.Fatal(err)
	}
	a, b := n.Params().Flat(), restored.Flat()
	if len(a) != len(b) {
		Te.Fatal("wrong number of parameter slices after the roundtrip")
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				Te.Fatal("parameters changed in the JSON roundtrip")
			}
		}
	}
}

func TestParamsCloneIndependent(Te *testing.T) {
	n := NewMLP(3, 2, 4, 1, 5)
	c := n.Params().Clone()
	c.Dense[0].W.Set(0, 0, 1e9)
	c.Dense[0].B[0] = 1e9
	if n.Params().Dense[0].W.At(0, 0) == 1e9 || n.Params().Dense[0].B[0] == 1e9 {
		Te.Error("Clone shares storage")
	}
}

func TestLinearGradient(Te *testing.T) {
	l := NewLinear(2, []float64{0.5, -0.5})
	l.Params().Dense[0].W.Set(0, 0, 1.5)
	l.Params().Dense[0].W.Set(1, 1, -2.0)
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	cot := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	g := l.Gradient(x, cot)
	//dL/dW = x^T cot, dL/db = column sums of cot
	if g.Dense[0].W.At(0, 0) != 1 || g.Dense[0].W.At(1, 0) != 2 || g.Dense[0].W.At(0, 1) != 3 || g.Dense[0].W.At(1, 1) != 4 {
		Te.Error("linear weight gradient:", mat.Formatted(g.Dense[0].W))
	}
	if g.Dense[0].B[0] != 1 || g.Dense[0].B[1] != 1 {
		Te.Error("linear bias gradient:", g.Dense[0].B)
	}
}
