/*
 * params.go, part of graddft.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Layer holds the weights and biases of one dense layer.
type Layer struct {
	W *mat.Dense
	B []float64
}

//layerJSON is the serialized form of a Layer.
type layerJSON struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	W    []float64 `json:"w"`
	B    []float64 `json:"b"`
}

// MarshalJSON serializes the layer with explicit dimensions, row-major.
func (l Layer) MarshalJSON() ([]byte, error) {
	r, c := l.W.Dims()
	j := layerJSON{Rows: r, Cols: c, B: l.B}
	j.W = append(j.W, l.W.RawMatrix().Data...)
	return json.Marshal(j)
}

func (l *Layer) UnmarshalJSON(data []byte) error {
	var j layerJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if len(j.W) != j.Rows*j.Cols {
		return fmt.Errorf("functional: layer carries %d weights for a %dx%d matrix", len(j.W), j.Rows, j.Cols)
	}
	l.W = mat.NewDense(j.Rows, j.Cols, j.W)
	l.B = j.B
	return nil
}

// Params is the full parameter set of a trainable coefficient model, one
// Layer per dense layer in order of application. Optimizers treat it as a
// flat collection of float64 slices.
type Params struct {
	Dense []Layer `json:"dense"`
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	np := &Params{Dense: make([]Layer, len(p.Dense))}
	for i, l := range p.Dense {
		np.Dense[i].W = mat.DenseCopyOf(l.W)
		np.Dense[i].B = append([]float64{}, l.B...)
	}
	return np
}

// ZerosLike returns a parameter set with the same shapes as p and every
// entry zero. Gradients and optimizer moments start from it.
func (p *Params) ZerosLike() *Params {
	np := &Params{Dense: make([]Layer, len(p.Dense))}
	for i, l := range p.Dense {
		r, c := l.W.Dims()
		np.Dense[i].W = mat.NewDense(r, c, nil)
		np.Dense[i].B = make([]float64, len(l.B))
	}
	return np
}

// Flat returns the underlying storage of every weight matrix and bias
// vector, in a fixed order. The slices alias the parameters, so writing
// through them updates the model in place.
func (p *Params) Flat() [][]float64 {
	var out [][]float64
	for i := range p.Dense {
		out = append(out, p.Dense[i].W.RawMatrix().Data, p.Dense[i].B)
	}
	return out
}

// NumParams returns the total number of scalar parameters.
func (p *Params) NumParams() int {
	n := 0
	for _, s := range p.Flat() {
		n += len(s)
	}
	return n
}

// AddScaled adds a*g to p entrywise. It panics on mismatched shapes, which
// would be a bug in the caller.
func (p *Params) AddScaled(a float64, g *Params) {
	ps, gs := p.Flat(), g.Flat()
	if len(ps) != len(gs) {
		panic("functional: AddScaled on mismatched parameter sets")
	}
	for i := range ps {
		for j := range ps[i] {
			ps[i][j] += a * gs[i][j]
		}
	}
}
