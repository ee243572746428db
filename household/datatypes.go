// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

// Package household solves the lifetime consumption, labor supply and savings
// problem of an S-period-lived household in an overlapping-generations model,
// given a path of interest rates and wages.
package household

import (
	"errors"
	"fmt"

	"OG_Household_Project/rootfind"
)

// How Euler errors are measured
type ErrorMode int

const (
	// lhs - rhs
	AbsoluteError ErrorMode = iota
	// lhs/rhs - 1
	PercentError
)

func (m ErrorMode) String() string {
	if m == PercentError {
		return "percent"
	}
	return "absolute"
}

// Params is the household parameter bundle. It is passed by value into every
// entry point and is never modified; ChiN must not be mutated while a solve
// is running.
type Params struct {
	// Discount factor per model period, in (0,1)
	Beta float64
	// Coefficient of relative risk aversion, >= 1
	Sigma float64
	// Time endowment per period
	LTilde float64
	// Scale of the elliptical disutility of labor
	BEllip float64
	// Shape of the elliptical disutility of labor, > 1
	Upsilon float64
	// Disutility weight for each age s = 1..S; len(ChiN) is S
	ChiN []float64
	// Absolute or percent Euler errors
	Mode ErrorMode
}

// Periods returns S, the number of periods in a full lifetime.
func (p Params) Periods() int { return len(p.ChiN) }

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if !(p.Beta > 0 && p.Beta < 1) {
		return fmt.Errorf("%w: beta=%g must be in (0,1)", ErrInvalidParams, p.Beta)
	}
	if !(p.Sigma >= 1) {
		return fmt.Errorf("%w: sigma=%g must be >= 1", ErrInvalidParams, p.Sigma)
	}
	if !(p.LTilde > 0) {
		return fmt.Errorf("%w: time endowment %g must be > 0", ErrInvalidParams, p.LTilde)
	}
	if !(p.BEllip > 0) {
		return fmt.Errorf("%w: elliptical scale %g must be > 0", ErrInvalidParams, p.BEllip)
	}
	if !(p.Upsilon > 1) {
		return fmt.Errorf("%w: elliptical shape %g must be > 1", ErrInvalidParams, p.Upsilon)
	}
	if len(p.ChiN) == 0 {
		return fmt.Errorf("%w: no disutility weights (S=0)", ErrInvalidParams)
	}
	for s, chi := range p.ChiN {
		if !(chi > 0) {
			return fmt.Errorf("%w: chi_n[%d]=%g must be > 0", ErrInvalidParams, s, chi)
		}
	}
	return nil
}

// cohortChi returns the disutility weights for the last remaining ages of life.
func (p Params) cohortChi(remaining int) []float64 {
	return p.ChiN[len(p.ChiN)-remaining:]
}

// Prices is a constant (steady-state) interest rate and wage.
type Prices struct {
	R float64
	W float64
}

// PricePath holds the interest rate and wage for each remaining age, aligned
// one-to-one with the ages of the household.
type PricePath struct {
	R []float64
	W []float64
}

// Lifetime is everything about a household's remaining life that is not a
// choice: prices, productivity and wealth at the first remaining age.
// R[s] is both the return on wealth brought into age s and the rate that
// links consumption at ages s-1 and s.
type Lifetime struct {
	R             []float64
	W             []float64
	E             []float64
	InitialWealth float64
}

// Periods returns the number of remaining ages p.
func (lt Lifetime) Periods() int { return len(lt.R) }

func (lt Lifetime) validate(p Params) error {
	q := len(lt.R)
	if q == 0 {
		return fmt.Errorf("%w: empty lifetime", ErrDimension)
	}
	if len(lt.W) != q || len(lt.E) != q {
		return fmt.Errorf("%w: lifetime has %d rates, %d wages, %d productivities",
			ErrDimension, q, len(lt.W), len(lt.E))
	}
	if q > p.Periods() {
		return fmt.Errorf("%w: %d remaining periods but S=%d", ErrDimension, q, p.Periods())
	}
	return nil
}

// ConsumptionSource tells the labor residual where consumption comes from.
// It is implemented by GivenConsumption and DerivedConsumption only.
type ConsumptionSource interface {
	consumption(n []float64, in LaborInputs) []float64
	lengths() []int
}

// GivenConsumption supplies a consumption path computed elsewhere.
type GivenConsumption struct {
	C []float64
}

// DerivedConsumption derives consumption from the budget constraint:
// rates, wealth entering each age and savings carried out of it.
type DerivedConsumption struct {
	R     []float64
	B     []float64
	BNext []float64
}

// LaborInputs is the context needed to evaluate the labor supply condition.
// Entries of length 1 apply to every age.
type LaborInputs struct {
	W      []float64
	E      []float64
	ChiN   []float64
	Source ConsumptionSource
}

// AgeState is what carries over from one age to the next in the forward
// simulation: wealth brought into the age and consumption chosen in it.
type AgeState struct {
	Wealth      float64
	Consumption float64
}

// Path is the output of a forward simulation from a given initial consumption.
type Path struct {
	C []float64 // consumption at each remaining age
	N []float64 // labor supply at each remaining age
	B []float64 // wealth entering each remaining age, B[0] = initial wealth
	// Savings implied after the last age; zero at a solution
	TerminalSavings float64
	LaborErrors     []float64
	SavingsErrors   []float64
}

// Method selects the outer formulation.
type Method int

const (
	// Solve for labor and savings jointly
	Direct Method = iota
	// Solve for first-period consumption by forward simulation
	Shooting
)

func (m Method) String() string {
	switch m {
	case Direct:
		return "direct"
	case Shooting:
		return "shooting"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Solution is a solved remaining-lifetime profile with the Euler errors
// evaluated at the solution.
type Solution struct {
	Method Method
	C      []float64
	N      []float64
	// Wealth entering each age; B[0] is the given initial wealth
	B               []float64
	TerminalSavings float64
	LaborErrors     []float64
	SavingsErrors   []float64
	// Outer solver iterations
	Iterations int
}

// Savings returns b_{s+1} for each age, including the terminal value.
func (s *Solution) Savings() []float64 {
	out := make([]float64, len(s.B))
	copy(out, s.B[1:])
	out[len(out)-1] = s.TerminalSavings
	return out
}

// MaxLaborError returns the largest absolute labor Euler error.
func (s *Solution) MaxLaborError() float64 { return maxAbs(s.LaborErrors) }

// MaxSavingsError returns the largest absolute savings Euler error.
func (s *Solution) MaxSavingsError() float64 { return maxAbs(s.SavingsErrors) }

var (
	// ErrNoConvergence is the root finder's non-convergence error.
	ErrNoConvergence = rootfind.ErrNoConvergence

	// ErrTerminalCondition: the solve converged but savings after the last
	// age are not zero.
	ErrTerminalCondition = errors.New("household: terminal savings condition violated")

	// ErrInvalidParams is returned for out-of-range parameters.
	ErrInvalidParams = errors.New("household: invalid parameters")

	// ErrDimension is returned when path lengths do not line up.
	ErrDimension = errors.New("household: dimension mismatch")
)
