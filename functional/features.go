/*
 * features.go, part of graddft.
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

// LogSquashOffset regularizes the logarithmic input transform near zero
// density.
const LogSquashOffset = 1e-4

// NInputs is the number of DM21-style density inputs per grid point.
const NInputs = 7

// NEnergyDensities is the number of energy-density channels of the
// meta-GGA family built here.
const NEnergyDensities = 4

//small denominators in the dimensionless gradient and kinetic arguments
const featEps = 1e-20

//logSquash compresses the wide dynamic range of the density quantities
//into something a network can digest: log(|x| + offset).
func logSquash(x float64) float64 {
	return math.Log(math.Abs(x) + LogSquashOffset)
}

// DM21Inputs assembles the per-point model inputs from the density: the
// two spin densities, the three gradient contractions and the two kinetic
// energy densities, each log-squashed. Columns follow that order.
func DM21Inputs(d *graddft.Dens) *mat.Dense {
	ng := d.Len()
	x := mat.NewDense(ng, NInputs, nil)
	for g := 0; g < ng; g++ {
		row := x.RawRowView(g)
		row[0] = logSquash(d.Rho[0][g])
		row[1] = logSquash(d.Rho[1][g])
		row[2] = logSquash(d.Sigma[0][g])
		row[3] = logSquash(d.Sigma[1][g])
		row[4] = logSquash(d.Sigma[2][g])
		row[5] = logSquash(d.Tau[0][g])
		row[6] = logSquash(d.Tau[1][g])
	}
	return x
}

// MGGADensities evaluates the energy-density channels a learned meta-GGA
// functional weights. Columns: Slater exchange, PW92 correlation, a
// gradient-damped exchange channel and a kinetic-damped one. The last two
// vanish for the uniform electron gas, so coefficients (1, 1, *, *) recover
// LSDA in that limit.
func MGGADensities(d *graddft.Dens) *mat.Dense {
	ng := d.Len()
	e := mat.NewDense(ng, NEnergyDensities, nil)
	for g := 0; g < ng; g++ {
		ru, rd := d.Rho[0][g], d.Rho[1][g]
		rho := ru + rd
		ex := slaterExchange(ru, rd)
		ec := rho * pw92Eps(ru, rd)
		//dimensionless gradient argument, damped into [0, 1)
		sig := d.Sigma[0][g] + 2*d.Sigma[1][g] + d.Sigma[2][g]
		u := sig / (math.Pow(rho, 8.0/3.0) + featEps)
		//deviation of the kinetic energy density from its uniform-gas value
		tau := d.Tau[0][g] + d.Tau[1][g]
		tauUnif := 0.3 * math.Pow(3*math.Pi*math.Pi, 2.0/3.0) * math.Pow(rho, 5.0/3.0)
		w := tau/(tauUnif+featEps) - 1
		if w < 0 {
			w = 0
		}
		row := e.RawRowView(g)
		row[0] = ex
		row[1] = ec
		row[2] = ex * u / (1 + u)
		row[3] = ex * w / (1 + w)
	}
	return e
}

// LDADensities evaluates the two LSDA energy-density channels, Slater
// exchange and PW92 correlation. The LSDA functional weights them with
// unit coefficients.
func LDADensities(d *graddft.Dens) *mat.Dense {
	ng := d.Len()
	e := mat.NewDense(ng, 2, nil)
	for g := 0; g < ng; g++ {
		ru, rd := d.Rho[0][g], d.Rho[1][g]
		e.Set(g, 0, slaterExchange(ru, rd))
		e.Set(g, 1, (ru+rd)*pw92Eps(ru, rd))
	}
	return e
}

// ExchangeDensity is the single-channel Slater exchange energy density.
func ExchangeDensity(d *graddft.Dens) *mat.Dense {
	ng := d.Len()
	e := mat.NewDense(ng, 1, nil)
	for g := 0; g < ng; g++ {
		e.Set(g, 0, slaterExchange(d.Rho[0][g], d.Rho[1][g]))
	}
	return e
}
