// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import (
	"fmt"
	"math"
)

// DenominatorFloor is the smallest magnitude allowed for the denominator of a
// percent Euler error. The stitched marginal disutility crosses zero just
// below the lower labor breakpoint.
const DenominatorFloor = 1e-12

func (g GivenConsumption) consumption(_ []float64, _ LaborInputs) []float64 {
	return g.C
}

func (g GivenConsumption) lengths() []int { return []int{len(g.C)} }

func (d DerivedConsumption) consumption(n []float64, in LaborInputs) []float64 {
	return Consumption(d.R, in.W, d.B, d.BNext, n, in.E)
}

func (d DerivedConsumption) lengths() []int {
	return []int{len(d.R), len(d.B), len(d.BNext)}
}

// LaborResiduals evaluates the labor supply condition at every age of n:
//
//	absolute: w*e*u'(c) - chi*v'(n)
//	percent:  w*e*u'(c) / (chi*v'(n)) - 1
//
// Consumption is taken from in.Source. The result has len(n) entries.
func LaborResiduals(n []float64, in LaborInputs, p Params) ([]float64, error) {
	if len(n) == 0 {
		return nil, fmt.Errorf("%w: empty labor path", ErrDimension)
	}
	if in.Source == nil {
		return nil, fmt.Errorf("%w: no consumption source", ErrDimension)
	}
	for _, l := range append([]int{len(in.W), len(in.E), len(in.ChiN)}, in.Source.lengths()...) {
		if l != 1 && l != len(n) {
			return nil, fmt.Errorf("%w: labor path has %d ages, input has %d", ErrDimension, len(n), l)
		}
	}

	c := in.Source.consumption(n, in)
	out := make([]float64, len(n))
	for i := range n {
		out[i] = laborResidual(n[i], at(c, i), at(in.W, i), at(in.E, i), at(in.ChiN, i), p)
	}
	return out, nil
}

func laborResidual(n, c, w, e, chi float64, p Params) float64 {
	benefit := w * e * marginalUtility(c, p.Sigma)
	cost := chi * marginalDisutility(n, p)
	if p.Mode == PercentError {
		return benefit/guardDenominator(cost) - 1
	}
	return benefit - cost
}

// SavingsResiduals evaluates the intertemporal condition between each pair
// of adjacent ages of c:
//
//	absolute: beta*(1+r_{s+1})*u'(c_{s+1}) - u'(c_s)
//	percent:  beta*(1+r_{s+1})*u'(c_{s+1}) / u'(c_s) - 1
//
// rNext holds r_{s+1} for s = 1..p-1 (or a single constant rate). The result
// has len(c)-1 entries; it is empty for a one-period lifetime.
func SavingsResiduals(c, rNext []float64, p Params) ([]float64, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: empty consumption path", ErrDimension)
	}
	if len(c) == 1 {
		return []float64{}, nil
	}
	if len(rNext) != 1 && len(rNext) != len(c)-1 {
		return nil, fmt.Errorf("%w: %d consumption ages need %d next-period rates, got %d",
			ErrDimension, len(c), len(c)-1, len(rNext))
	}
	return savingsResiduals(c, rNext, p), nil
}

func savingsResiduals(c, rNext []float64, p Params) []float64 {
	out := make([]float64, len(c)-1)
	for s := range out {
		mu := marginalUtility(c[s], p.Sigma)
		muNext := p.Beta * (1 + at(rNext, s)) * marginalUtility(c[s+1], p.Sigma)
		if p.Mode == PercentError {
			out[s] = muNext/guardDenominator(mu) - 1
		} else {
			out[s] = muNext - mu
		}
	}
	return out
}

// guardDenominator keeps |d| >= DenominatorFloor, preserving the sign (zero
// is treated as positive).
func guardDenominator(d float64) float64 {
	if math.Abs(d) >= DenominatorFloor {
		return d
	}
	if d < 0 {
		return -DenominatorFloor
	}
	return DenominatorFloor
}
