// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

// Package equilibrium closes the household problem with the firm: it finds
// the general-equilibrium steady state and solves every cohort alive at the
// start of a transition path.
package equilibrium

import (
	"errors"
	"log/slog"

	"OG_Household_Project/household"
)

const (
	// DefaultRateTol is the width of the final interest rate bracket.
	DefaultRateTol = 1e-12
	// DefaultMaxBisections bounds the number of bisection steps.
	DefaultMaxBisections = 200
)

var (
	// ErrNoBracket: r - r(K,L) does not change sign over [RLow, RHigh].
	ErrNoBracket = errors.New("equilibrium: interest rate bracket does not contain a steady state")

	// ErrNonPositiveCapital: households hold no capital at the equilibrium rate.
	ErrNonPositiveCapital = errors.New("equilibrium: aggregate capital is not positive")
)

// Settings control the general-equilibrium search.
type Settings struct {
	// Interest rate bracket. RLow must exceed -delta so the wage is defined.
	RLow  float64
	RHigh float64

	// Tol is the bracket width at which bisection stops.
	Tol float64
	// MaxIter caps the number of bisection steps.
	MaxIter int

	// Household options applied to every steady-state household solve.
	// Warm starts are added on top of these.
	Household []household.Option

	// Logger receives one record per bisection step. nil discards.
	Logger *slog.Logger
}

// SteadyState is a general-equilibrium steady state.
type SteadyState struct {
	R, W float64
	K, L float64
	Y, C float64

	// Y - C - delta*K, zero when goods markets clear.
	ResourceError float64

	Household  *household.Solution
	Iterations int
}

// cohortResult carries one cohort's solve back from a worker.
type cohortResult struct {
	age int
	sol *household.Solution
	err error
	// skipped is set when the solve never ran because the sweep was cancelled.
	skipped bool
}
