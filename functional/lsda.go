/*
 * lsda.go, part of graddft.
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
	"math"

	graddft "github.com/Augus1999/GradDFT"
	"gonum.org/v1/gonum/mat"
)

// Constant is a coefficient model with fixed, untrainable coefficients,
// broadcast to every grid point. LSDA is the Constant{1, 1} weighting of
// the LDA energy densities.
type Constant struct {
	C []float64
}

func (c Constant) NOut() int { return len(c.C) }

func (c Constant) Coefficients(x *mat.Dense) *mat.Dense {
	ng, _ := x.Dims()
	out := mat.NewDense(ng, len(c.C), nil)
	for g := 0; g < ng; g++ {
		copy(out.RawRowView(g), c.C)
	}
	return out
}

// LSDA returns the local spin density approximation, Slater exchange plus
// PW92 correlation. It is the fixed-form reference functional of the
// library and the usual starting point for learned ones.
func LSDA() *Functional {
	return New("LSDA", DM21Inputs, LDADensities, Constant{C: []float64{1, 1}})
}

// LSDAExchange returns Slater exchange alone, with its analytic potential
// installed. Mostly useful to validate the numerical machinery against
// closed-form results.
func LSDAExchange() *Functional {
	f := New("LSDA-x", DM21Inputs, ExchangeDensity, Constant{C: []float64{1}})
	f.Pot = func(d *graddft.Dens) [2][]float64 {
		var v [2][]float64
		for s := 0; s < 2; s++ {
			v[s] = make([]float64, d.Len())
			for g := range v[s] {
				v[s][g] = -math.Cbrt(3 / math.Pi * 2 * d.Rho[s][g])
			}
		}
		return v
	}
	return f
}

//slaterExchange is the spin-scaled exchange energy density of the uniform
//electron gas: -(Cx/2) sum_s (2 rho_s)^(4/3), Cx = (3/4)(3/pi)^(1/3).
func slaterExchange(ru, rd float64) float64 {
	cx := 0.75 * math.Cbrt(3/math.Pi)
	return -0.5 * cx * (math.Pow(2*math.Max(ru, 0), 4.0/3.0) + math.Pow(2*math.Max(rd, 0), 4.0/3.0))
}

//pw92G is the parametrized interpolation function of Perdew and Wang 1992.
func pw92G(rs, a, a1, b1, b2, b3, b4 float64) float64 {
	q := 2 * a * (b1*math.Sqrt(rs) + b2*rs + b3*rs*math.Sqrt(rs) + b4*rs*rs)
	return -2 * a * (1 + a1*rs) * math.Log(1+1/q)
}

//pw92Eps returns the PW92 correlation energy per electron at the given
//spin densities.
func pw92Eps(ru, rd float64) float64 {
	rho := ru + rd
	if rho <= 0 {
		return 0
	}
	rs := math.Cbrt(3 / (4 * math.Pi * rho))
	zeta := (ru - rd) / rho
	if zeta > 1 {
		zeta = 1
	} else if zeta < -1 {
		zeta = -1
	}
	e0 := pw92G(rs, 0.031091, 0.21370, 7.5957, 3.5876, 1.6382, 0.49294)
	e1 := pw92G(rs, 0.015545, 0.20548, 14.1189, 6.1977, 3.3662, 0.62517)
	alc := -pw92G(rs, 0.016887, 0.11125, 10.357, 3.6231, 0.88026, 0.49671)
	const fpp0 = 1.709921 //f''(0)
	fz := (math.Pow(1+zeta, 4.0/3.0) + math.Pow(1-zeta, 4.0/3.0) - 2) / (math.Pow(2, 4.0/3.0) - 2)
	z4 := zeta * zeta * zeta * zeta
	return e0 + alc*fz/fpp0*(1-z4) + (e1-e0)*fz*z4
}
