// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package rootfind

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLinearSystem(t *testing.T) {
	// 2x + y = 3, x - y = 0  ->  x = y = 1
	f := func(dst, x []float64) {
		dst[0] = 2*x[0] + x[1] - 3
		dst[1] = x[0] - x[1]
	}
	res, err := Solve(f, []float64{5, -4}, 2, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, 1.0, res.X[0], 1e-12)
	assert.InDelta(t, 1.0, res.X[1], 1e-12)
	assert.LessOrEqual(t, maxAbs(res.F), DefaultStallTol)
}

func TestSolveRosenbrockSystem(t *testing.T) {
	f := func(dst, x []float64) {
		dst[0] = 10 * (x[1] - x[0]*x[0])
		dst[1] = 1 - x[0]
	}
	res, err := Solve(f, []float64{-1.2, 1}, 2, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X[0], 1e-10)
	assert.InDelta(t, 1.0, res.X[1], 1e-10)
	assert.Greater(t, res.Evaluations, res.Iterations)
}

func TestScalarSquareRoot(t *testing.T) {
	x, res, err := Scalar(func(x float64) float64 { return x*x - 2 }, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDelta(t, math.Sqrt2, x, 1e-14)
}

func TestSolveRejectsNonFiniteTrialPoints(t *testing.T) {
	// A full Newton step from x=2 lands at a negative x where sqrt is NaN.
	f := func(x float64) float64 { return math.Sqrt(x) - 0.5 }
	x, res, err := Scalar(f, 2, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, 0.25, x, 1e-12)
}

func TestSolveNonFiniteStart(t *testing.T) {
	f := func(x float64) float64 { return math.Log(x) }
	_, _, err := Scalar(f, -1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonFinite))
}

func TestSolveNoRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, res, err := Scalar(f, 3, &Settings{MaxIter: 50})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	require.NotNil(t, res)
	assert.False(t, res.Converged())
	assert.Contains(t, []Status{Stalled, IterationLimit}, res.Status)
}

func TestSolveBadInput(t *testing.T) {
	f := func(dst, x []float64) {}
	_, err := Solve(f, nil, 1, nil)
	assert.True(t, errors.Is(err, ErrBadInput))

	_, err = Solve(f, []float64{1, 2}, 1, nil)
	assert.True(t, errors.Is(err, ErrBadInput))
}

func TestWithDefaults(t *testing.T) {
	s := withDefaults(nil)
	assert.Equal(t, DefaultTol, s.Tol)
	assert.Equal(t, DefaultStallTol, s.StallTol)
	assert.Equal(t, DefaultMaxIter, s.MaxIter)

	// StallTol is never tighter than Tol
	s = withDefaults(&Settings{Tol: 1e-6, StallTol: 1e-9})
	assert.Equal(t, 1e-6, s.StallTol)
}

func TestSolveDoesNotModifyGuess(t *testing.T) {
	x0 := []float64{3}
	_, err := Solve(func(dst, x []float64) { dst[0] = x[0] - 1 }, x0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, x0[0])
}
