// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package rootfind

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve finds x such that f(x) = 0, starting from x0. m is the length of the
// residual vector (m >= len(x0)).
//
// The method is Levenberg-Marquardt with a central-difference Jacobian:
// each iteration solves (J'J + lambda*diag(J'J)) d = -J'f and accepts x+d only
// if it lowers ||f||. Trial points whose residual is NaN or Inf are treated as
// rejected steps, so f only has to be finite near the path actually taken.
//
// On failure the returned Result still holds the last accepted iterate and the
// error wraps ErrNoConvergence.
func Solve(f Func, x0 []float64, m int, settings *Settings) (*Result, error) {
	n := len(x0)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty initial guess", ErrBadInput)
	}
	if m < n {
		return nil, fmt.Errorf("%w: %d residuals for %d unknowns", ErrBadInput, m, n)
	}

	s := withDefaults(settings)

	// 1. Evaluate the starting point
	res := &Result{
		X: make([]float64, n),
		F: make([]float64, m),
	}
	copy(res.X, x0)
	f(res.F, res.X)
	res.Evaluations++

	if !allFinite(res.F) {
		return res, fmt.Errorf("%w: %v", ErrNonFinite, res.F)
	}

	cost := sumSquares(res.F)
	lambda := s.InitialDamping

	// Work storage, allocated once per call
	jac := mat.NewDense(m, n, nil)
	jtj := mat.NewDense(n, n, nil)
	lhs := mat.NewDense(n, n, nil)
	grad := mat.NewVecDense(n, nil)
	step := mat.NewVecDense(n, nil)
	trialX := make([]float64, n)
	trialF := make([]float64, m)

	jacSettings := &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    s.Step,
	}
	// fd.Jacobian calls f with its own copies of x
	counted := func(y, x []float64) {
		res.Evaluations++
		f(y, x)
	}

	for res.Iterations < s.MaxIter {
		// 2. Converged?
		if maxAbs(res.F) <= s.Tol {
			res.Status = Converged
			return res, nil
		}
		res.Iterations++

		// 3. Linearise around the current point
		fd.Jacobian(jac, counted, res.X, jacSettings)
		jtj.Mul(jac.T(), jac)
		grad.MulVec(jac.T(), mat.NewVecDense(m, res.F))

		// 4. Increase damping until a step lowers the residual
		accepted := false
		for {
			lhs.Copy(jtj)
			for i := 0; i < n; i++ {
				d := jtj.At(i, i)
				if d < math.SmallestNonzeroFloat64 {
					d = math.SmallestNonzeroFloat64
				}
				lhs.Set(i, i, d*(1+lambda))
			}

			// A Condition error still leaves a usable solution; anything
			// non-finite is rejected below.
			_ = step.SolveVec(lhs, grad)
			stepRaw := step.RawVector().Data

			stepOK := allFinite(stepRaw)
			if stepOK {
				for i := range trialX {
					trialX[i] = res.X[i] - stepRaw[i]
				}
				f(trialF, trialX)
				res.Evaluations++

				if allFinite(trialF) {
					if trialCost := sumSquares(trialF); trialCost < cost {
						copy(res.X, trialX)
						copy(res.F, trialF)
						cost = trialCost
						lambda = math.Max(lambda/10, minDamping)
						accepted = true
						break
					}
				}
			}

			lambda *= 10
			tiny := stepOK && floats.Norm(stepRaw, 2) <= s.StepTol*(floats.Norm(res.X, 2)+s.StepTol)
			if tiny || lambda > maxDamping {
				break
			}
		}

		// 5. No step helps: we are at the numerical floor (or stuck)
		if !accepted {
			if maxAbs(res.F) <= s.StallTol {
				res.Status = StalledConverged
				return res, nil
			}
			res.Status = Stalled
			return res, fmt.Errorf("%w: stalled after %d iterations, max residual %g",
				ErrNoConvergence, res.Iterations, maxAbs(res.F))
		}
	}

	if maxAbs(res.F) <= s.Tol {
		res.Status = Converged
		return res, nil
	}
	res.Status = IterationLimit
	return res, fmt.Errorf("%w: %d iterations, max residual %g",
		ErrNoConvergence, s.MaxIter, maxAbs(res.F))
}

// Scalar solves the single equation f(x) = 0 from x0 with the same method as Solve.
func Scalar(f func(float64) float64, x0 float64, settings *Settings) (float64, *Result, error) {
	res, err := Solve(func(dst, x []float64) {
		dst[0] = f(x[0])
	}, []float64{x0}, 1, settings)
	if res == nil {
		return math.NaN(), nil, err
	}
	return res.X[0], res, err
}

// withDefaults copies settings and fills in zero fields.
func withDefaults(settings *Settings) Settings {
	var s Settings
	if settings != nil {
		s = *settings
	}
	if s.Tol <= 0 {
		s.Tol = DefaultTol
	}
	if s.StallTol <= 0 {
		s.StallTol = DefaultStallTol
	}
	if s.StallTol < s.Tol {
		s.StallTol = s.Tol
	}
	if s.StepTol <= 0 {
		s.StepTol = DefaultStepTol
	}
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultMaxIter
	}
	if s.InitialDamping <= 0 {
		s.InitialDamping = DefaultInitialDamping
	}
	return s
}

func sumSquares(v []float64) float64 {
	return floats.Dot(v, v)
}

func maxAbs(v []float64) float64 {
	return floats.Norm(v, math.Inf(1))
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
