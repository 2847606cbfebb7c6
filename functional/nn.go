/*
 * nn.go, part of graddft.
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
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// MLP is a small dense network used as a coefficient model: an input
// layer, tanh residual blocks of constant width, and a head whose output
// is squashed by a scaled sigmoid so the coefficients stay in
// (0, SigmoidScale). All the calculus is written out by hand; the model is
// small enough that a tensor framework would be overhead.
type MLP struct {
	nin, nout, width, depth int
	//SigmoidScale bounds the coefficients. 2 lets a trained model both
	//attenuate and amplify an energy-density channel around 1.
	SigmoidScale float64
	p            *Params
}

// NewMLP builds an MLP with the given input/output widths, hidden width
// and number of residual blocks, initialized from the given seed. Weights
// start at N(0, 1/fanin) and biases at zero, so the initial coefficients
// sit near SigmoidScale/2.
func NewMLP(nin, nout, width, depth int, seed int64) *MLP {
	rng := rand.New(rand.NewSource(seed))
	n := &MLP{nin: nin, nout: nout, width: width, depth: depth, SigmoidScale: 2}
	layer := func(in, out int) Layer {
		w := mat.NewDense(in, out, nil)
		sd := 1 / math.Sqrt(float64(in))
		for i := 0; i < in; i++ {
			for j := 0; j < out; j++ {
				w.Set(i, j, rng.NormFloat64()*sd)
			}
		}
		return Layer{W: w, B: make([]float64, out)}
	}
	n.p = &Params{}
	n.p.Dense = append(n.p.Dense, layer(nin, width))
	for b := 0; b < depth; b++ {
		n.p.Dense = append(n.p.Dense, layer(width, width))
	}
	n.p.Dense = append(n.p.Dense, layer(width, nout))
	return n
}

func (n *MLP) NOut() int { return n.nout }

// Params returns the live parameter set; optimizers update it in place.
func (n *MLP) Params() *Params { return n.p }

// SetParams replaces the parameter set, typically with one restored from a
// checkpoint. It panics on mismatched shapes.
func (n *MLP) SetParams(p *Params) {
	if len(p.Dense) != len(n.p.Dense) {
		panic("functional: SetParams with a different number of layers")
	}
	for i := range p.Dense {
		pr, pc := p.Dense[i].W.Dims()
		nr, nc := n.p.Dense[i].W.Dims()
		if pr != nr || pc != nc || len(p.Dense[i].B) != len(n.p.Dense[i].B) {
			panic("functional: SetParams with mismatched layer shapes")
		}
	}
	n.p = p
}

//mlpCache keeps the intermediates of a forward pass for backpropagation:
//the activation entering each dense layer and, for the head, the sigmoid
//values.
type mlpCache struct {
	in  []*mat.Dense //input to layer k
	act []*mat.Dense //activation output of layer k (tanh, or sigmoid values for the head)
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

//forward runs the network. Layer 0: a = tanh(x W + b). Blocks: a_k =
//tanh(a_{k-1} W + b + a_{k-1}). Head: c = s * sigmoid(z / s).
func (n *MLP) forward(x *mat.Dense) (*mat.Dense, *mlpCache) {
	nl := len(n.p.Dense)
	cache := &mlpCache{in: make([]*mat.Dense, nl), act: make([]*mat.Dense, nl)}
	a := x
	for k := 0; k < nl; k++ {
		cache.in[k] = a
		l := n.p.Dense[k]
		var z mat.Dense
		z.Mul(a, l.W)
		r, c := z.Dims()
		for i := 0; i < r; i++ {
			row := z.RawRowView(i)
			for j := 0; j < c; j++ {
				row[j] += l.B[j]
			}
		}
		out := mat.NewDense(r, c, nil)
		switch {
		case k == nl-1: //head
			s := n.SigmoidScale
			sig := mat.NewDense(r, c, nil)
			for i := 0; i < r; i++ {
				zr := z.RawRowView(i)
				sr := sig.RawRowView(i)
				or := out.RawRowView(i)
				for j := 0; j < c; j++ {
					sr[j] = sigmoid(zr[j] / s)
					or[j] = s * sr[j]
				}
			}
			cache.act[k] = sig
		case k == 0:
			for i := 0; i < r; i++ {
				zr := z.RawRowView(i)
				or := out.RawRowView(i)
				for j := 0; j < c; j++ {
					or[j] = math.Tanh(zr[j])
				}
			}
			cache.act[k] = out
		default: //residual block
			for i := 0; i < r; i++ {
				zr := z.RawRowView(i)
				ar := a.RawRowView(i)
				or := out.RawRowView(i)
				for j := 0; j < c; j++ {
					or[j] = math.Tanh(zr[j] + ar[j])
				}
			}
			cache.act[k] = out
		}
		a = out
	}
	return a, cache
}

func (n *MLP) Coefficients(x *mat.Dense) *mat.Dense {
	out, _ := n.forward(x)
	return out
}

// Gradient backpropagates the cotangent through the network and returns
// the parameter gradient. The residual connections add the upstream
// cotangent straight to the downstream one.
func (n *MLP) Gradient(x, cot *mat.Dense) *Params {
	_, cache := n.forward(x)
	g := n.p.ZerosLike()
	nl := len(n.p.Dense)
	da := cot
	for k := nl - 1; k >= 0; k-- {
		in := cache.in[k]
		act := cache.act[k]
		r, c := act.Dims()
		//dz = da elementwise d(activation)/dz
		dz := mat.NewDense(r, c, nil)
		if k == nl-1 {
			//c = s*sigmoid(z/s) so dc/dz = sig*(1-sig)
			for i := 0; i < r; i++ {
				dr := da.RawRowView(i)
				sr := act.RawRowView(i)
				zr := dz.RawRowView(i)
				for j := 0; j < c; j++ {
					zr[j] = dr[j] * sr[j] * (1 - sr[j])
				}
			}
		} else {
			for i := 0; i < r; i++ {
				dr := da.RawRowView(i)
				ar := act.RawRowView(i)
				zr := dz.RawRowView(i)
				for j := 0; j < c; j++ {
					zr[j] = dr[j] * (1 - ar[j]*ar[j])
				}
			}
		}
		g.Dense[k].W.Mul(in.T(), dz)
		for i := 0; i < r; i++ {
			zr := dz.RawRowView(i)
			for j := 0; j < c; j++ {
				g.Dense[k].B[j] += zr[j]
			}
		}
		if k == 0 {
			break
		}
		var back mat.Dense
		back.Mul(dz, n.p.Dense[k].W.T())
		if k != nl-1 {
			//residual path of a block
			back.Add(&back, dz)
		}
		da = &back
	}
	return g
}

// Linear is the simplest trainable coefficient model, a single affine
// layer with no activation. It exists mainly for tests with closed-form
// optima.
type Linear struct {
	p *Params
}

// NewLinear builds a Linear model with zero weights and the given initial
// biases (one per output channel).
func NewLinear(nin int, bias []float64) *Linear {
	return &Linear{p: &Params{Dense: []Layer{{
		W: mat.NewDense(nin, len(bias), nil),
		B: append([]float64{}, bias...),
	}}}}
}

func (l *Linear) NOut() int           { return len(l.p.Dense[0].B) }
func (l *Linear) Params() *Params     { return l.p }
func (l *Linear) SetParams(p *Params) { l.p = p }

func (l *Linear) Coefficients(x *mat.Dense) *mat.Dense {
	ng, _ := x.Dims()
	var out mat.Dense
	out.Mul(x, l.p.Dense[0].W)
	for g := 0; g < ng; g++ {
		row := out.RawRowView(g)
		for j, b := range l.p.Dense[0].B {
			row[j] += b
		}
	}
	return &out
}

func (l *Linear) Gradient(x, cot *mat.Dense) *Params {
	g := l.p.ZerosLike()
	g.Dense[0].W.Mul(x.T(), cot)
	r, c := cot.Dims()
	for i := 0; i < r; i++ {
		row := cot.RawRowView(i)
		for j := 0; j < c; j++ {
			g.Dense[0].B[j] += row[j]
		}
	}
	return g
}

// NewNeural returns a learned meta-GGA functional: DM21-style inputs into
// an MLP weighting the four meta-GGA energy-density channels. At
// initialization the coefficients sit near 1, so the starting functional
// resembles LSDA plus small gradient and kinetic corrections.
func NewNeural(width, depth int, seed int64) *Functional {
	return New("neural-mgga", DM21Inputs, MGGADensities, NewMLP(NInputs, NEnergyDensities, width, depth, seed))
}
