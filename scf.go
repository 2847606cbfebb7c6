/*
 * scf.go, part of graddft.
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

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SCFOptions controls the DIIS self-consistent-field procedure. The zero
// value is not usable; start from DefaultSCFOptions.
type SCFOptions struct {
	TolE          float64 //convergence treshold on |dE|, Hartree
	TolD          float64 //convergence treshold on the DIIS residual RMS
	MaxIterations int
	DIISDepth     int     //Fock matrices kept in the extrapolation history
	Mixing        float64 //linear mixing weight for the fresh Fock matrix
	MixingSteps   int     //iterations of plain mixing before DIIS starts
	Logger        *zap.Logger
}

// DefaultSCFOptions returns the settings used throughout the tests:
// dE < 1e-6 Ha, dRMS < 1e-3, 50 iterations, DIIS over the last 8 Fock
// matrices after 2 damped iterations.
func DefaultSCFOptions() *SCFOptions {
	return &SCFOptions{
		TolE:          1e-6,
		TolD:          1e-3,
		MaxIterations: 50,
		DIISDepth:     8,
		Mixing:        0.7,
		MixingSteps:   2,
	}
}

// SCFResult is the outcome of an SCF run. When Converged is false the
// fields still hold the state of the last iteration.
type SCFResult struct {
	Energy     float64
	Iterations int
	Converged  bool
	DRMS       float64
	RDM1       [2]*mat.Dense
	Fock       [2]*mat.Dense
	MOCoeff    [2]*mat.Dense
	MOEnergy   [2][]float64
	MOOcc      [2][]float64
}

//scfState carries the mutable arrays of one SCF run so the Molecule stays
//untouched.
type scfState struct {
	d     [2]*mat.Dense //density matrices
	focks [2][]*mat.Dense
	resid [2][]*mat.Dense
	x     *mat.Dense //S^-1/2
}

// SCFDIIS runs the self-consistent-field procedure for the molecule with
// the given exchange-correlation functional: Fock assembly from the
// stored integrals, linear mixing for the first iterations, then DIIS
// extrapolation, until both the energy change and the DIIS residual fall
// under the configured tresholds.
//
// The molecule must carry the packed repulsion tensor, since the Coulomb
// matrix has to be rebuilt at every trial density. A run that exhausts
// MaxIterations returns the last state together with a non-critical
// error.
func SCFDIIS(m *Molecule, xc XCFunctional, opt *SCFOptions) (*SCFResult, error) {
	if opt == nil {
		opt = DefaultSCFOptions()
	}
	if err := m.Corrupted(); err != nil {
		return nil, errDecorate(err, "SCFDIIS")
	}
	if m.Rep == nil {
		return nil, newErr(true, "graddft: SCFDIIS needs the repulsion tensor to rebuild the Coulomb matrix")
	}
	x, err := SqrtInverse(m.S1e)
	if err != nil {
		return nil, errDecorate(err, "SCFDIIS")
	}
	nao := m.NAO()
	nelec := m.NElectrons()
	st := &scfState{x: x}
	for s := 0; s < 2; s++ {
		st.d[s] = mat.DenseCopyOf(m.RDM1[s])
	}

	res := new(SCFResult)
	ePrev := math.Inf(1)
	var fPrev [2]*mat.Dense
	for iter := 0; iter < opt.MaxIterations; iter++ {
		dtot := mat.NewDense(nao, nao, nil)
		dtot.Add(st.d[0], st.d[1])
		vj := m.Rep.Coulomb(dtot)
		dens := DensitiesFrom(m.Grid, m.AO, m.GradAO, st.d)
		exc := xc.Exc(dens)
		vxc := m.XCMatrix(xc.VRho(dens))

		var f [2]*mat.Dense
		for s := 0; s < 2; s++ {
			f[s] = mat.NewDense(nao, nao, nil)
			f[s].Add(m.H1e, vj)
			f[s].Add(f[s], vxc[s])
		}

		e := m.ENuc + exc
		for s := 0; s < 2; s++ {
			e += traceProduct(st.d[s], m.H1e)
		}
		e += 0.5 * traceProduct(dtot, vj)

		st.pushDIIS(f, m.S1e, opt.DIISDepth)
		drms := st.residualRMS()

		res.Energy = e
		res.Iterations = iter + 1
		res.DRMS = drms
		res.Fock = f
		if opt.Logger != nil {
			opt.Logger.Info("scf iteration",
				zap.Int("iteration", iter+1),
				zap.Float64("energy", e),
				zap.Float64("dE", e-ePrev),
				zap.Float64("dRMS", drms))
		}
		if math.Abs(e-ePrev) < opt.TolE && drms < opt.TolD {
			res.Converged = true
			break
		}
		ePrev = e

		if iter >= opt.MixingSteps && len(st.focks[0]) > 1 {
			f, err = st.extrapolate(f)
			if err != nil {
				//a singular DIIS system is not fatal; fall back to the
				//fresh Fock matrix for this iteration
				f = res.Fock
			}
		} else if fPrev[0] != nil && opt.Mixing < 1 {
			for s := 0; s < 2; s++ {
				mixed := mat.NewDense(nao, nao, nil)
				mixed.Scale(opt.Mixing, f[s])
				old := mat.NewDense(nao, nao, nil)
				old.Scale(1-opt.Mixing, fPrev[s])
				mixed.Add(mixed, old)
				f[s] = mixed
			}
		}
		fPrev = f

		for s := 0; s < 2; s++ {
			vals, c, err := GeneralizedEigen(f[s], st.x)
			if err != nil {
				return nil, errDecorate(err, "SCFDIIS")
			}
			res.MOCoeff[s] = c
			res.MOEnergy[s] = vals
			occ := make([]float64, len(vals))
			for o := 0; o < nelec[s] && o < len(occ); o++ {
				occ[o] = 1
			}
			res.MOOcc[s] = occ
			st.d[s] = densityFromOrbitals(c, occ)
		}
	}
	res.RDM1 = st.d
	if !res.Converged {
		return res, newErr(false, "graddft: SCF not converged after %d iterations (dRMS %g)", res.Iterations, res.DRMS)
	}
	return res, nil
}

// densityFromOrbitals builds D_ab = sum_o occ_o C_ao C_bo.
func densityFromOrbitals(c *mat.Dense, occ []float64) *mat.Dense {
	nao, nmo := c.Dims()
	d := mat.NewDense(nao, nao, nil)
	for o := 0; o < nmo; o++ {
		if occ[o] == 0 {
			continue
		}
		for a := 0; a < nao; a++ {
			ca := c.At(a, o)
			if ca == 0 {
				continue
			}
			for b := 0; b < nao; b++ {
				d.Set(a, b, d.At(a, b)+occ[o]*ca*c.At(b, o))
			}
		}
	}
	return d
}

//pushDIIS appends the current Fock matrices and their orthogonalized
//commutator residuals X(FDS - SDF)X to the history, dropping the oldest
//entries past depth.
func (st *scfState) pushDIIS(f [2]*mat.Dense, s1e *mat.Dense, depth int) {
	for s := 0; s < 2; s++ {
		n, _ := f[s].Dims()
		t1 := mat.NewDense(n, n, nil)
		t1.Mul(f[s], st.d[s])
		t1.Mul(t1, s1e)
		t2 := mat.NewDense(n, n, nil)
		t2.Mul(s1e, st.d[s])
		t2.Mul(t2, f[s])
		t1.Sub(t1, t2)
		r := mat.NewDense(n, n, nil)
		r.Mul(st.x, t1)
		r.Mul(r, st.x)
		st.focks[s] = append(st.focks[s], mat.DenseCopyOf(f[s]))
		st.resid[s] = append(st.resid[s], r)
		if len(st.focks[s]) > depth {
			st.focks[s] = st.focks[s][1:]
			st.resid[s] = st.resid[s][1:]
		}
	}
}

//residualRMS is the root mean square of the latest residuals over both
//spin channels.
func (st *scfState) residualRMS() float64 {
	var data []float64
	for s := 0; s < 2; s++ {
		last := st.resid[s][len(st.resid[s])-1]
		sq := mat.DenseCopyOf(last)
		sq.MulElem(sq, sq)
		data = append(data, sq.RawMatrix().Data...)
	}
	return math.Sqrt(stat.Mean(data, nil))
}

//extrapolate solves the DIIS linear system with the combined residual
//overlaps of both spin channels and returns the extrapolated Fock
//matrices.
func (st *scfState) extrapolate(fresh [2]*mat.Dense) ([2]*mat.Dense, error) {
	h := len(st.focks[0])
	b := mat.NewDense(h+1, h+1, nil)
	for i := 0; i < h; i++ {
		b.Set(i, h, -1)
		b.Set(h, i, -1)
	}
	for i := 0; i < h; i++ {
		for j := 0; j < h; j++ {
			sum := 0.0
			for s := 0; s < 2; s++ {
				n, _ := st.resid[s][i].Dims()
				prod := mat.NewDense(n, n, nil)
				prod.MulElem(st.resid[s][i], st.resid[s][j])
				sum += mat.Sum(prod)
			}
			b.Set(i, j, sum)
		}
	}
	rhs := mat.NewVecDense(h+1, nil)
	rhs.SetVec(h, -1)
	var lu mat.LU
	lu.Factorize(b)
	var coefs mat.VecDense
	if err := lu.SolveVecTo(&coefs, false, rhs); err != nil {
		return fresh, newErr(false, "graddft: singular DIIS system")
	}
	var out [2]*mat.Dense
	for s := 0; s < 2; s++ {
		n, _ := fresh[s].Dims()
		f := mat.NewDense(n, n, nil)
		for j := 0; j < h; j++ {
			part := mat.NewDense(n, n, nil)
			part.Scale(coefs.AtVec(j), st.focks[s][j])
			f.Add(f, part)
		}
		out[s] = f
	}
	return out, nil
}
