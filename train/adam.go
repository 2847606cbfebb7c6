/*
 * adam.go, part of graddft.
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
	"math"

	"github.com/Augus1999/GradDFT/functional"
)

// Adam is the Adam optimizer with bias-corrected moment estimates. The
// moment buffers are allocated lazily on the first step, shaped like the
// parameters they track.
type Adam struct {
	LR    float64
	Beta1 float64
	Beta2 float64
	Eps   float64

	step int
	m, v *functional.Params
}

// NewAdam returns an Adam optimizer with the usual defaults, beta1 0.9,
// beta2 0.999, eps 1e-8.
func NewAdam(lr float64) *Adam {
	return &Adam{LR: lr, Beta1: 0.9, Beta2: 0.999, Eps: 1e-8}
}

// Step updates p in place from the gradient g.
func (a *Adam) Step(p, g *functional.Params) {
	if a.m == nil {
		a.m = p.ZerosLike()
		a.v = p.ZerosLike()
	}
	a.step++
	c1 := 1 - math.Pow(a.Beta1, float64(a.step))
	c2 := 1 - math.Pow(a.Beta2, float64(a.step))
	ps, gs, ms, vs := p.Flat(), g.Flat(), a.m.Flat(), a.v.Flat()
	for i := range ps {
		for j := range ps[i] {
			gr := gs[i][j]
			ms[i][j] = a.Beta1*ms[i][j] + (1-a.Beta1)*gr
			vs[i][j] = a.Beta2*vs[i][j] + (1-a.Beta2)*gr*gr
			mhat := ms[i][j] / c1
			vhat := vs[i][j] / c2
			ps[i][j] -= a.LR * mhat / (math.Sqrt(vhat) + a.Eps)
		}
	}
}

// AdamState is the serializable state of the optimizer, stored in
// checkpoints so training can resume exactly.
type AdamState struct {
	Step int                `json:"step"`
	M    *functional.Params `json:"m"`
	V    *functional.Params `json:"v"`
}

// State snapshots the optimizer. It returns nil before the first step.
func (a *Adam) State() *AdamState {
	if a.m == nil {
		return nil
	}
	return &AdamState{Step: a.step, M: a.m.Clone(), V: a.v.Clone()}
}

// Restore loads a snapshot taken with State. A nil state resets the
// optimizer to its initial condition.
func (a *Adam) Restore(st *AdamState) error {
	if st == nil {
		a.step = 0
		a.m, a.v = nil, nil
		return nil
	}
	if st.M == nil || st.V == nil {
		return fmt.Errorf("train: optimizer state without moment buffers")
	}
	a.step = st.Step
	a.m = st.M.Clone()
	a.v = st.V.Clone()
	return nil
}
