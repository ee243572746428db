// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package equilibrium

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"OG_Household_Project/firm"
	"OG_Household_Project/household"
)

// SolveSteadyState finds the interest rate at which the capital and labor
// supplied by households in the steady state, priced by the firm, return
// that same rate. e is the productivity profile (length S).
//
// The search bisects r - f.Rate(K(r), L(r)) over [s.RLow, s.RHigh]. The
// bracket ends are solved from the default seed; each bisection step is
// seeded with the previous step's solution.
func SolveSteadyState(hh household.Params, f firm.Firm, e []float64, s Settings) (*SteadyState, error) {
	if err := hh.Validate(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(e) != hh.Periods() {
		return nil, fmt.Errorf("%w: productivity has %d ages, S=%d", household.ErrDimension, len(e), hh.Periods())
	}
	if !(s.RLow > -f.Delta) || !(s.RHigh > s.RLow) {
		return nil, fmt.Errorf("%w: need -delta < RLow < RHigh, got [%g, %g] with delta=%g",
			ErrNoBracket, s.RLow, s.RHigh, f.Delta)
	}

	// Default options if not set
	if s.Tol <= 0 {
		s.Tol = DefaultRateTol
	}
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultMaxBisections
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &market{hh: hh, f: f, e: e, opts: s.Household, logger: logger}

	// 1. Check the bracket
	lo, err := m.evaluate(s.RLow, false)
	if err != nil {
		return nil, err
	}
	hi, err := m.evaluate(s.RHigh, false)
	if err != nil {
		return nil, err
	}
	logger.Debug("bracket", "r_low", s.RLow, "excess_low", lo.excess, "r_high", s.RHigh, "excess_high", hi.excess)
	if !(lo.excess < 0 && hi.excess > 0) {
		return nil, fmt.Errorf("%w: r-r(K,L) is %g at r=%g and %g at r=%g",
			ErrNoBracket, lo.excess, s.RLow, hi.excess, s.RHigh)
	}

	// 2. Bisect
	rLow, rHigh := s.RLow, s.RHigh
	iter := 0
	for iter < s.MaxIter && rHigh-rLow > s.Tol {
		iter++
		mid := 0.5 * (rLow + rHigh)
		pt, err := m.evaluate(mid, true)
		if err != nil {
			return nil, fmt.Errorf("bisection step %d: %w", iter, err)
		}
		logger.Debug("bisection", "iter", iter, "r", mid, "excess", pt.excess, "K", pt.K, "L", pt.L)
		if pt.excess < 0 {
			rLow = mid
		} else {
			rHigh = mid
		}
	}

	// 3. Solve once more at the midpoint of the final bracket
	r := 0.5 * (rLow + rHigh)
	pt, err := m.evaluate(r, true)
	if err != nil {
		return nil, err
	}
	if !(pt.K > 0) {
		return nil, fmt.Errorf("%w: K=%g at r=%g", ErrNonPositiveCapital, pt.K, r)
	}

	Y := f.Output(pt.K, pt.L)
	C := floats.Sum(pt.sol.C)
	ss := &SteadyState{
		R:             r,
		W:             pt.w,
		K:             pt.K,
		L:             pt.L,
		Y:             Y,
		C:             C,
		ResourceError: Y - C - f.Delta*pt.K,
		Household:     pt.sol,
		Iterations:    iter,
	}
	logger.Info("steady state", "r", ss.R, "w", ss.W, "K", ss.K, "L", ss.L, "Y", ss.Y,
		"resource_error", ss.ResourceError, "iterations", iter)
	return ss, nil
}

// market evaluates household supply at a trial interest rate. Inside the
// bisection each solve starts from the last solution; a warm start that
// fails is retried once from the default seed.
type market struct {
	hh     household.Params
	f      firm.Firm
	e      []float64
	opts   []household.Option
	warm   household.Option
	logger *slog.Logger
}

type marketPoint struct {
	w      float64
	K, L   float64
	excess float64
	sol    *household.Solution
}

// evaluate solves the household at r. With useWarm unset the solve starts
// from the default seed and the stored warm start is left untouched.
func (m *market) evaluate(r float64, useWarm bool) (marketPoint, error) {
	w := m.f.WageFromRate(r)
	prices := household.Prices{R: r, W: w}
	opts := append([]household.Option{household.WithProductivity(m.e)}, m.opts...)

	var (
		sol *household.Solution
		err error
	)
	if useWarm && m.warm != nil {
		sol, err = household.SolveSteadyState(m.hh, prices, append(opts, m.warm)...)
		if err != nil {
			m.logger.Debug("warm start failed, retrying from default seed", "r", r, "err", err)
		}
	}
	if sol == nil {
		sol, err = household.SolveSteadyState(m.hh, prices, opts...)
	}
	if err != nil {
		return marketPoint{}, fmt.Errorf("household at r=%g: %w", r, err)
	}
	if useWarm && sol.Method == household.Direct {
		m.warm = household.WithInitialGuess(sol.N, sol.B[1:])
	}

	pt := marketPoint{
		w:   w,
		K:   firm.AggregateCapital(sol.B),
		L:   firm.AggregateLabor(sol.N, m.e),
		sol: sol,
	}
	// Households that borrow in aggregate want a higher rate.
	if pt.K > 0 {
		pt.excess = r - m.f.Rate(pt.K, pt.L)
	} else {
		pt.excess = math.Inf(-1)
	}
	return pt, nil
}
