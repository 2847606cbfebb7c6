/*
 * eigen.go, part of graddft.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//The Kohn-Sham equations F C = S C eps form a symmetric generalized
//eigenproblem. It is solved here by Loewdin orthogonalization: with
//X = S^-1/2, the transformed problem (X F X) C' = C' eps is an ordinary
//symmetric one, and C = X C'.

// symmetrize returns (a + a^T)/2 as a SymDense. The matrices fed to the
// eigensolver are symmetric up to roundoff; averaging keeps EigenSym happy.
func symmetrize(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}

// SqrtInverse returns S^-1/2 for a symmetric positive-definite matrix S.
// It returns an error if S has an eigenvalue at or below zero, which for
// an overlap matrix signals a linearly dependent basis.
func SqrtInverse(s *mat.Dense) (*mat.Dense, error) {
	n, c := s.Dims()
	if n != c {
		return nil, newErr(true, "graddft: SqrtInverse needs a square matrix, got %dx%d", n, c)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(symmetrize(s), true); !ok {
		return nil, newErr(true, "graddft: eigendecomposition of the overlap matrix failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	d := mat.NewDense(n, n, nil)
	for i, v := range vals {
		if v <= appzero {
			return nil, newErr(true, "graddft: overlap matrix not positive definite (eigenvalue %g); basis is linearly dependent", v)
		}
		d.Set(i, i, 1/math.Sqrt(v))
	}
	res := mat.NewDense(n, n, nil)
	res.Mul(&vecs, d)
	res.Mul(res, vecs.T())
	return res, nil
}

// GeneralizedEigen solves F C = S C eps given F and X = S^-1/2, returning
// the eigenvalues in ascending order and the back-transformed eigenvectors
// as columns of C. The eigenvectors are orthonormal under the S metric.
func GeneralizedEigen(f, x *mat.Dense) ([]float64, *mat.Dense, error) {
	n, _ := f.Dims()
	ft := mat.NewDense(n, n, nil)
	ft.Mul(x, f)
	ft.Mul(ft, x)
	var eig mat.EigenSym
	if ok := eig.Factorize(symmetrize(ft), true); !ok {
		return nil, nil, newErr(true, "graddft: eigendecomposition of the transformed Fock matrix failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	c := mat.NewDense(n, n, nil)
	c.Mul(x, &vecs)
	return vals, c, nil
}
