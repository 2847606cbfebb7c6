/*
 * energy.go, part of graddft.
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
	"gonum.org/v1/gonum/mat"
)

// RepTensor stores the electron repulsion integrals (ab|cd) in packed
// form: one entry per quartet unique under the usual 8-fold permutational
// symmetry, with the four indices encoded in a single int. The encoding
// matches idx = ((a*n+b)*n+c)*n+d.
type RepTensor struct {
	NBasis int
	Idx    []int
	Val    []float64
}

// NewRepTensor returns an empty tensor for n basis functions.
func NewRepTensor(n int) *RepTensor {
	return &RepTensor{NBasis: n}
}

// Put appends the integral (ij|kl) = v. The caller is responsible for
// feeding each symmetry-unique quartet once.
func (t *RepTensor) Put(i, j, k, l int, v float64) {
	n := t.NBasis
	t.Idx = append(t.Idx, ((i*n+j)*n+k)*n+l)
	t.Val = append(t.Val, v)
}

// Quartet decodes the four basis indices of entry p.
func (t *RepTensor) Quartet(p int) (i, j, k, l int) {
	n := t.NBasis
	idx := t.Idx[p]
	i = idx / (n * n * n)
	idx = idx % (n * n * n)
	j = idx / (n * n)
	idx = idx % (n * n)
	k = idx / n
	l = idx % n
	return i, j, k, l
}

// Len returns the number of stored integrals.
func (t *RepTensor) Len() int { return len(t.Val) }

// symImages appends to dst the distinct index images of (i,j,k,l) under
// the 8-fold permutational symmetry of a real repulsion integral.
func symImages(dst [][4]int, i, j, k, l int) [][4]int {
	cand := [8][4]int{
		{i, j, k, l}, {j, i, k, l}, {i, j, l, k}, {j, i, l, k},
		{k, l, i, j}, {l, k, i, j}, {k, l, j, i}, {l, k, j, i},
	}
	dst = dst[:0]
	for _, c := range cand {
		seen := false
		for _, d := range dst {
			if c == d {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, c)
		}
	}
	return dst
}

// Coulomb contracts the tensor with a (total) density matrix:
// J_ab = sum_cd (ab|cd) D_cd. The density matrix is assumed symmetric.
func (t *RepTensor) Coulomb(d *mat.Dense) *mat.Dense {
	n := t.NBasis
	j := mat.NewDense(n, n, nil)
	images := make([][4]int, 0, 8)
	for p := 0; p < t.Len(); p++ {
		a, b, c, e := t.Quartet(p)
		v := t.Val[p]
		images = symImages(images, a, b, c, e)
		for _, im := range images {
			j.Set(im[0], im[1], j.At(im[0], im[1])+v*d.At(im[2], im[3]))
		}
	}
	return j
}

// DenseRepTensor packs a full nao^4 integral array (row-major in a,b,c,d)
// keeping only the symmetry-unique quartets. Used when the external
// package exports the uncompressed tensor.
func DenseRepTensor(n int, vals []float64) (*RepTensor, error) {
	if len(vals) != n*n*n*n {
		return nil, newErr(true, "graddft: repulsion tensor needs %d values, got %d", n*n*n*n, len(vals))
	}
	t := NewRepTensor(n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for k := 0; k <= i; k++ {
				lmax := k
				if k == i {
					lmax = j
				}
				for l := 0; l <= lmax; l++ {
					t.Put(i, j, k, l, vals[((i*n+j)*n+k)*n+l])
				}
			}
		}
	}
	return t, nil
}

// traceProduct returns Tr(A B) for dense A and B.
func traceProduct(a, b *mat.Dense) float64 {
	r, c := a.Dims()
	res := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			res += a.At(i, j) * b.At(j, i)
		}
	}
	return res
}

// CoulombMatrix returns the Coulomb matrix of the total density. The
// stored VJ is preferred; it is rebuilt from the repulsion tensor when the
// archive did not carry one.
func (m *Molecule) CoulombMatrix() (*mat.Dense, error) {
	if m.VJ != nil {
		return m.VJ, nil
	}
	if m.Rep == nil {
		return nil, newErr(true, "graddft: molecule carries neither a Coulomb matrix nor a repulsion tensor")
	}
	return m.Rep.Coulomb(m.TotalRDM1()), nil
}

// NonXCEnergy computes every total-energy contribution that does not
// involve the exchange-correlation functional:
//
//	E = sum_s Tr(D_s H1) + 1/2 Tr(D_tot J) + E_nuc
//
// at the stored density.
func (m *Molecule) NonXCEnergy() (float64, error) {
	vj, err := m.CoulombMatrix()
	if err != nil {
		return 0, errDecorate(err, "NonXCEnergy")
	}
	e := m.ENuc
	for s := 0; s < 2; s++ {
		e += traceProduct(m.RDM1[s], m.H1e)
	}
	e += 0.5 * traceProduct(m.TotalRDM1(), vj)
	return e, nil
}

// Integrate performs the grid quadrature sum_g w_g f_g.
func Integrate(w, f []float64) float64 {
	if len(w) != len(f) {
		panic("graddft: quadrature length mismatch")
	}
	res := 0.0
	for g := range w {
		res += w[g] * f[g]
	}
	return res
}
