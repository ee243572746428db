// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import (
	"fmt"
	"math"

	"OG_Household_Project/rootfind"
)

// SimulateLifetime builds the whole remaining-lifetime path implied by
// consumption c1 at the first remaining age. Consumption follows the savings
// Euler equation forward, wealth follows the budget constraint, and labor at
// each age solves the labor supply condition given that age's consumption.
//
// Path.TerminalSavings is the wealth left after the last age; c1 is optimal
// when it is zero. A failed labor solve at any age is returned as an error
// naming the age.
func SimulateLifetime(c1 float64, lt Lifetime, p Params, opts ...Option) (*Path, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := lt.validate(p); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	return simulateLifetime(c1, lt, p.cohortChi(lt.Periods()), p, cfg.inner)
}

func simulateLifetime(c1 float64, lt Lifetime, chi []float64, p Params, inner rootfind.Settings) (*Path, error) {
	q := lt.Periods()
	path := &Path{
		C: make([]float64, q),
		N: make([]float64, q),
		B: make([]float64, q),
	}

	// Each age only reads the finished values of the age before it
	state := AgeState{Wealth: lt.InitialWealth, Consumption: c1}
	for s := 0; s < q; s++ {
		if s > 0 {
			state = NextAge(state, path.N[s-1], lt, s, p)
		}
		n, err := SolveLabor(state.Consumption, lt.W[s], lt.E[s], chi[s], p, &inner)
		if err != nil {
			return nil, fmt.Errorf("labor supply at age %d of %d (c=%g): %w", s+1, q, state.Consumption, err)
		}
		path.B[s] = state.Wealth
		path.C[s] = state.Consumption
		path.N[s] = n
	}

	last := q - 1
	path.TerminalSavings = nextWealth(lt.R[last], lt.W[last], path.B[last], path.C[last], path.N[last], lt.E[last])

	path.LaborErrors = make([]float64, q)
	for s := range path.LaborErrors {
		path.LaborErrors[s] = laborResidual(path.N[s], path.C[s], lt.W[s], lt.E[s], chi[s], p)
	}
	path.SavingsErrors = savingsResiduals(path.C, lt.R[1:], p)
	return path, nil
}

// NextAge moves the household from age s-1 (prev, with labor prevLabor) to
// age s (0-based index into lt):
//
//	b_s = (1+r_{s-1})*b_{s-1} + w_{s-1}*e_{s-1}*n_{s-1} - c_{s-1}
//	c_s = c_{s-1} * (beta*(1+r_s))^(1/sigma)
func NextAge(prev AgeState, prevLabor float64, lt Lifetime, s int, p Params) AgeState {
	return AgeState{
		Wealth: nextWealth(lt.R[s-1], lt.W[s-1], prev.Wealth, prev.Consumption, prevLabor, lt.E[s-1]),
		Consumption: prev.Consumption *
			math.Pow(p.Beta*(1+lt.R[s]), 1/p.Sigma),
	}
}

// SolveLabor returns the labor supply that satisfies the labor supply
// condition at consumption c, starting the search at half the time endowment.
// settings may be nil; a fresh solver is used on every call.
func SolveLabor(c, w, e, chi float64, p Params, settings *rootfind.Settings) (float64, error) {
	n, _, err := rootfind.Scalar(func(n float64) float64 {
		return laborResidual(n, c, w, e, chi, p)
	}, p.LTilde/2, settings)
	if err != nil {
		return math.NaN(), err
	}
	return n, nil
}
