// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

// Package firm is the production side of the model: a single competitive
// firm with Cobb-Douglas technology Y = A*K^alpha*L^(1-alpha) that rents
// capital and hires effective labor from households.
package firm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidFirm is returned for out-of-range technology parameters.
var ErrInvalidFirm = errors.New("firm: invalid parameters")

// Firm holds the technology of the representative firm. Delta is the
// depreciation rate per model period.
type Firm struct {
	A     float64
	Alpha float64
	Delta float64
}

// Validate checks A > 0, alpha in (0,1) and delta in [0,1].
func (f Firm) Validate() error {
	if !(f.A > 0) {
		return fmt.Errorf("%w: TFP A=%g must be > 0", ErrInvalidFirm, f.A)
	}
	if !(f.Alpha > 0 && f.Alpha < 1) {
		return fmt.Errorf("%w: capital share alpha=%g must be in (0,1)", ErrInvalidFirm, f.Alpha)
	}
	if !(f.Delta >= 0 && f.Delta <= 1) {
		return fmt.Errorf("%w: depreciation delta=%g must be in [0,1]", ErrInvalidFirm, f.Delta)
	}
	return nil
}

// Rate is the interest rate net of depreciation implied by the capital and
// labor aggregates: r = alpha*A*(L/K)^(1-alpha) - delta.
func (f Firm) Rate(K, L float64) float64 {
	return f.Alpha*f.A*math.Pow(L/K, 1-f.Alpha) - f.Delta
}

// WageFromRate is the wage consistent with interest rate r through the
// firm's two first-order conditions.
func (f Firm) WageFromRate(r float64) float64 {
	return (1 - f.Alpha) * f.A * math.Pow(f.Alpha*f.A/(r+f.Delta), f.Alpha/(1-f.Alpha))
}

// Wage is the marginal product of labor at (K, L).
func (f Firm) Wage(K, L float64) float64 {
	return (1 - f.Alpha) * f.A * math.Pow(K/L, f.Alpha)
}

// CapitalLaborRatio is the K/L ratio at which the firm pays interest rate r.
func (f Firm) CapitalLaborRatio(r float64) float64 {
	return math.Pow(f.Alpha*f.A/(r+f.Delta), 1/(1-f.Alpha))
}

// Output is Y = A*K^alpha*L^(1-alpha).
func (f Firm) Output(K, L float64) float64 {
	return f.A * math.Pow(K, f.Alpha) * math.Pow(L, 1-f.Alpha)
}

// AggregateCapital sums the wealth held by every age (one household per age).
func AggregateCapital(b []float64) float64 {
	return floats.Sum(b)
}

// AggregateLabor is effective labor, the sum of n_s*e_s.
func AggregateLabor(n, e []float64) float64 {
	if len(n) != len(e) {
		panic(fmt.Sprintf("firm: AggregateLabor: %d labor values, %d productivities", len(n), len(e)))
	}
	return floats.Dot(n, e)
}

// PeriodDiscount converts an annual discount factor to a model period of
// round(econLife/S) years.
func PeriodDiscount(annual float64, econLife, S int) float64 {
	return math.Pow(annual, yearsPerPeriod(econLife, S))
}

// PeriodDepreciation converts an annual depreciation rate to a model period
// of round(econLife/S) years.
func PeriodDepreciation(annual float64, econLife, S int) float64 {
	return 1 - math.Pow(1-annual, yearsPerPeriod(econLife, S))
}

func yearsPerPeriod(econLife, S int) float64 {
	return math.Round(float64(econLife) / float64(S))
}
