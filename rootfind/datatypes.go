// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

// Package rootfind solves square or overdetermined systems of nonlinear
// equations f(x) = 0 with a damped Gauss-Newton (Levenberg-Marquardt) method.
package rootfind

import "errors"

// Func evaluates the residual vector at x and writes it into dst.
// It follows the gonum diff/fd convention and must not modify x.
type Func func(dst, x []float64)

// Default solver settings
const (
	DefaultTol            = 1e-14
	DefaultStallTol       = 1e-10
	DefaultStepTol        = 1e-15
	DefaultMaxIter        = 400
	DefaultInitialDamping = 1e-3

	// damping is never allowed outside this range
	minDamping = 1e-12
	maxDamping = 1e16
)

// Settings controls a single call to Solve. The zero value of each field
// means "use the default".
type Settings struct {
	// Converged once max |f_i| <= Tol
	Tol float64
	// When no step can reduce the residual any more, the point is still
	// accepted if max |f_i| <= StallTol
	StallTol float64
	// Relative step size below which the iteration is considered stalled
	StepTol float64
	// Iteration cap (Jacobian evaluations)
	MaxIter int
	// Starting Levenberg-Marquardt damping
	InitialDamping float64
	// Finite-difference step for the Jacobian (0 = gonum default)
	Step float64
}

// Status says how the iteration ended.
type Status int

const (
	// Residual reached Tol
	Converged Status = iota
	// No further progress possible, residual within StallTol
	StalledConverged
	// No further progress possible, residual above StallTol
	Stalled
	// MaxIter reached
	IterationLimit
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case StalledConverged:
		return "converged (stalled at machine precision)"
	case Stalled:
		return "stalled"
	case IterationLimit:
		return "iteration limit"
	default:
		return "unknown"
	}
}

// Result holds the final iterate of a solve, whether or not it converged.
type Result struct {
	X           []float64 // final iterate
	F           []float64 // residual at X
	Iterations  int       // number of outer iterations
	Evaluations int       // number of calls to the residual function
	Status      Status
}

// Converged reports whether the result is an accepted root.
func (r *Result) Converged() bool {
	return r != nil && (r.Status == Converged || r.Status == StalledConverged)
}

var (
	// ErrNoConvergence is returned when the iteration cap is hit or the
	// iteration stalls away from a root.
	ErrNoConvergence = errors.New("rootfind: no convergence")

	// ErrNonFinite is returned when the residual at the initial guess is NaN or Inf.
	ErrNonFinite = errors.New("rootfind: non-finite residual at initial guess")

	// ErrBadInput is returned for empty guesses or a residual length smaller than the guess.
	ErrBadInput = errors.New("rootfind: invalid input")
)
