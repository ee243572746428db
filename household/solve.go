// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import (
	"errors"
	"fmt"
	"math"

	"OG_Household_Project/rootfind"
)

// SolveSteadyState solves the full S-period lifetime of a household born with
// no wealth, facing the constant prices in prices.
//
// The default (Direct) formulation solves the 2S-1 labor and savings
// conditions jointly, starting from labor at 90% of the time endowment and
// savings of 0.05 at every age. WithMethod(Shooting) instead solves for
// first-period consumption by forward simulation.
func SolveSteadyState(p Params, prices Prices, opts ...Option) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	S := p.Periods()

	e := cfg.productivity
	if e == nil {
		e = constant(S, 1)
	}
	if len(e) != S {
		return nil, fmt.Errorf("%w: productivity has %d ages, S=%d", ErrDimension, len(e), S)
	}

	lt := Lifetime{
		R:             constant(S, prices.R),
		W:             constant(S, prices.W),
		E:             e,
		InitialWealth: 0,
	}

	var (
		sol *Solution
		err error
	)
	if cfg.method == Shooting {
		sol, err = solveShooting(lt, p, cfg)
	} else {
		sol, err = solveDirect(lt, p, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("steady state (S=%d, r=%g, w=%g, %s): %w", S, prices.R, prices.W, cfg.method, err)
	}
	return sol, nil
}

// SolveCohortTransition solves the remaining lifetime of a cohort that enters
// the first period of a transition path with wealth b1 and `remaining` ages
// left to live (1 <= remaining <= S). path and e hold prices and productivity
// for those ages.
//
// Cohorts with two or more ages left are solved by shooting on first-period
// consumption; a cohort in its last age only chooses labor.
func SolveCohortTransition(b1 float64, remaining int, path PricePath, e []float64, p Params, opts ...Option) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if remaining < 1 || remaining > p.Periods() {
		return nil, fmt.Errorf("%w: remaining=%d outside [1,%d]", ErrDimension, remaining, p.Periods())
	}
	lt := Lifetime{R: path.R, W: path.W, E: e, InitialWealth: b1}
	if err := lt.validate(p); err != nil {
		return nil, err
	}
	if lt.Periods() != remaining {
		return nil, fmt.Errorf("%w: price path has %d ages, remaining=%d", ErrDimension, lt.Periods(), remaining)
	}

	cfg := newConfig(opts)
	var (
		sol *Solution
		err error
	)
	if remaining == 1 {
		sol, err = solveLastPeriod(lt, p, cfg)
	} else {
		sol, err = solveShooting(lt, p, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cohort with %d periods left (b1=%g): %w", remaining, b1, err)
	}
	return sol, nil
}

func solveDirect(lt Lifetime, p Params, cfg config) (*Solution, error) {
	q := lt.Periods()
	chi := p.cohortChi(q)

	// 1. Starting point
	x0 := make([]float64, 2*q-1)
	if cfg.nGuess != nil {
		if len(cfg.nGuess) != q {
			return nil, fmt.Errorf("%w: initial guess has %d ages, need %d", ErrDimension, len(cfg.nGuess), q)
		}
		copy(x0, cfg.nGuess)
		copy(x0[q:], cfg.bGuess)
	} else {
		for s := 0; s < q; s++ {
			x0[s] = 0.9 * p.LTilde
		}
		for s := q; s < 2*q-1; s++ {
			x0[s] = 0.05
		}
	}

	// 2. Solve all conditions jointly
	res, err := rootfind.Solve(func(dst, x []float64) {
		lifetimeResiduals(dst, x, lt, chi, p)
	}, x0, 2*q-1, &cfg.outer)
	if err != nil {
		return nil, err
	}

	// 3. Rebuild the lifetime from the solution
	n, b, bNext := splitGuess(res.X, q, lt.InitialWealth)
	c := make([]float64, q)
	for s := range c {
		c[s] = consumption(lt.R[s], lt.W[s], b[s], bNext[s], n[s], lt.E[s])
	}

	return &Solution{
		Method:          Direct,
		C:               c,
		N:               append([]float64(nil), n...),
		B:               b,
		TerminalSavings: bNext[q-1],
		LaborErrors:     append([]float64(nil), res.F[:q]...),
		SavingsErrors:   append([]float64(nil), res.F[q:]...),
		Iterations:      res.Iterations,
	}, nil
}

func solveShooting(lt Lifetime, p Params, cfg config) (*Solution, error) {
	chi := p.cohortChi(lt.Periods())

	c1 := cfg.c1Guess
	if !cfg.hasC1Guess {
		c1 = consumptionGuess(lt, p)
	}

	// A failed labor solve is NaN to the root finder, a rejected step.
	closure := func(c1 float64) float64 {
		path, err := simulateLifetime(c1, lt, chi, p, cfg.inner)
		if err != nil {
			return math.NaN()
		}
		return path.TerminalSavings
	}

	c1, res, err := rootfind.Scalar(closure, c1, &cfg.outer)
	if err != nil {
		// report the labor failure at the point the search stopped, if any
		if res != nil {
			if _, simErr := simulateLifetime(c1, lt, chi, p, cfg.inner); simErr != nil {
				err = errors.Join(err, simErr)
			}
		}
		return nil, err
	}

	path, err := simulateLifetime(c1, lt, chi, p, cfg.inner)
	if err != nil {
		return nil, err
	}
	if math.Abs(path.TerminalSavings) > cfg.terminalTol {
		return nil, fmt.Errorf("%w: b_{p+1}=%g at c1=%g (tolerance %g)",
			ErrTerminalCondition, path.TerminalSavings, c1, cfg.terminalTol)
	}

	return &Solution{
		Method:          Shooting,
		C:               path.C,
		N:               path.N,
		B:               path.B,
		TerminalSavings: path.TerminalSavings,
		LaborErrors:     path.LaborErrors,
		SavingsErrors:   path.SavingsErrors,
		Iterations:      res.Iterations,
	}, nil
}

// solveLastPeriod handles a household in its final age: it saves nothing, so
// consumption follows from labor through the budget constraint.
func solveLastPeriod(lt Lifetime, p Params, cfg config) (*Solution, error) {
	in := LaborInputs{
		W:    lt.W,
		E:    lt.E,
		ChiN: p.cohortChi(1),
		Source: DerivedConsumption{
			R:     lt.R,
			B:     []float64{lt.InitialWealth},
			BNext: []float64{0},
		},
	}

	n, res, err := rootfind.Scalar(func(n float64) float64 {
		r, _ := LaborResiduals([]float64{n}, in, p)
		return r[0]
	}, p.LTilde/2, &cfg.inner)
	if err != nil {
		return nil, err
	}

	c := consumption(lt.R[0], lt.W[0], lt.InitialWealth, 0, n, lt.E[0])
	return &Solution{
		Method:          Direct,
		C:               []float64{c},
		N:               []float64{n},
		B:               []float64{lt.InitialWealth},
		TerminalSavings: 0,
		LaborErrors:     []float64{res.F[0]},
		SavingsErrors:   []float64{},
		Iterations:      res.Iterations,
	}, nil
}

// consumptionGuess is half of first-period labor income at full time
// endowment plus an even share of the initial wealth.
func consumptionGuess(lt Lifetime, p Params) float64 {
	q := float64(lt.Periods())
	g := 0.5*lt.W[0]*lt.E[0]*p.LTilde + (1+lt.R[0])*lt.InitialWealth/q
	return math.Max(g, 10*ConsumptionFloor)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
