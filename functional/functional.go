/*
 * functional.go, part of graddft.
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
	"fmt"

	graddft "github.com/Augus1999/GradDFT"
	"gonum.org/v1/gonum/mat"
)

// CoefficientModel maps per-point density inputs (ngrid x nin) to
// per-point coefficients (ngrid x nout) weighting the energy densities.
type CoefficientModel interface {
	Coefficients(x *mat.Dense) *mat.Dense
	NOut() int
}

// Trainable is a CoefficientModel with parameters an optimizer can adjust.
// Gradient backpropagates a cotangent through the model: it returns
// dL/dparams for L = sum_gi cot_gi * c_gi, with c the coefficients at x.
type Trainable interface {
	CoefficientModel
	Params() *Params
	SetParams(*Params)
	Gradient(x, cot *mat.Dense) *Params
}

// Functional is an exchange-correlation functional in separable form: a
// matrix of deterministic energy densities evaluated from the electron
// density, weighted pointwise by the coefficients of a model. Its XC
// energy is always
//
//	Exc = sum_g w_g sum_i c_gi e_gi
//
// which holds whether the model is a fixed coefficient vector (LSDA) or a
// neural network. Functional implements graddft.XCFunctional.
type Functional struct {
	name string

	//Inputs evaluates the model inputs from the density, ngrid x nin.
	Inputs func(d *graddft.Dens) *mat.Dense

	//EDens evaluates the energy densities, ngrid x nout.
	EDens func(d *graddft.Dens) *mat.Dense

	Model CoefficientModel

	//Pot, when set, is the analytic d(exc)/d(rho_s). When nil the
	//potential is evaluated by central finite differences on the density.
	Pot func(d *graddft.Dens) [2][]float64

	//FDStep is the finite-difference step for the numerical potential.
	FDStep float64
}

// New assembles a Functional. The inputs and energy-density evaluators and
// the model must agree on the number of coefficient channels.
func New(name string, inputs, edens func(d *graddft.Dens) *mat.Dense, model CoefficientModel) *Functional {
	return &Functional{
		name:   name,
		Inputs: inputs,
		EDens:  edens,
		Model:  model,
		FDStep: 1e-6,
	}
}

func (f *Functional) Name() string { return f.name }

//pointwise returns the XC energy density per grid point, without weights.
func (f *Functional) pointwise(d *graddft.Dens) []float64 {
	x := f.Inputs(d)
	e := f.EDens(d)
	c := f.Model.Coefficients(x)
	ng, nout := e.Dims()
	if cr, cc := c.Dims(); cr != ng || cc != nout {
		panic(fmt.Sprintf("functional: %s produced %dx%d coefficients for %dx%d energy densities", f.name, cr, cc, ng, nout))
	}
	out := make([]float64, ng)
	for g := 0; g < ng; g++ {
		eg := e.RawRowView(g)
		cg := c.RawRowView(g)
		for i := range eg {
			out[g] += cg[i] * eg[i]
		}
	}
	return out
}

// Exc integrates the XC energy density on the grid.
func (f *Functional) Exc(d *graddft.Dens) float64 {
	exc := f.pointwise(d)
	e := 0.0
	for g, w := range d.W {
		e += w * exc[g]
	}
	return e
}

// VRho returns the pointwise derivative of the XC energy density with
// respect to each spin density. With no analytic potential installed it
// perturbs rho_s at every grid point at once, which is exact for the
// separable pointwise form used here; the gradient and kinetic arguments
// are held fixed, so GGA and meta-GGA potential terms beyond the density
// derivative are neglected.
func (f *Functional) VRho(d *graddft.Dens) [2][]float64 {
	if f.Pot != nil {
		return f.Pot(d)
	}
	h := f.FDStep
	if h <= 0 {
		h = 1e-6
	}
	var v [2][]float64
	for s := 0; s < 2; s++ {
		up := d.Clone()
		down := d.Clone()
		for g := range up.Rho[s] {
			up.Rho[s][g] += h
			down.Rho[s][g] -= h
		}
		ep := f.pointwise(up)
		em := f.pointwise(down)
		v[s] = make([]float64, len(ep))
		for g := range ep {
			v[s][g] = (ep[g] - em[g]) / (2 * h)
		}
	}
	return v
}

// ExcAndGrad evaluates the XC energy together with its gradient with
// respect to the model parameters. The energy is linear in the
// coefficients, so the cotangent entering the model is w_g * e_gi. The
// model must be Trainable.
func (f *Functional) ExcAndGrad(d *graddft.Dens) (float64, *Params, error) {
	t, ok := f.Model.(Trainable)
	if !ok {
		return 0, nil, fmt.Errorf("functional: %s has no trainable parameters", f.name)
	}
	x := f.Inputs(d)
	e := f.EDens(d)
	c := t.Coefficients(x)
	ng, nout := e.Dims()
	exc := 0.0
	cot := mat.NewDense(ng, nout, nil)
	for g := 0; g < ng; g++ {
		w := d.W[g]
		eg := e.RawRowView(g)
		cg := c.RawRowView(g)
		tg := cot.RawRowView(g)
		for i := range eg {
			exc += w * cg[i] * eg[i]
			tg[i] = w * eg[i]
		}
	}
	return exc, t.Gradient(x, cot), nil
}
