// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stitching breakpoints. Below ConsumptionFloor, and within LaborMargin of
// 0 or the time endowment, the true functions are replaced by quadratics that
// match their value and slope at the breakpoint.
const (
	ConsumptionFloor = 1e-4
	LaborMargin      = 1e-6
)

// MarginalUtility returns u'(c) for each element of c with CRRA utility
//
//	u'(c) = c^(-sigma)      if c >= ConsumptionFloor
//	      = 2*b2*c + b1     otherwise
//
// where the linear piece matches u' and u'' at ConsumptionFloor. It is
// finite for every real c, including zero and negative consumption.
func MarginalUtility(c []float64, sigma float64) []float64 {
	out := make([]float64, len(c))
	for i, ci := range c {
		out[i] = marginalUtility(ci, sigma)
	}
	return out
}

func marginalUtility(c, sigma float64) float64 {
	if c >= ConsumptionFloor {
		return math.Pow(c, -sigma)
	}
	b1, b2 := consumptionStitch(sigma)
	return 2*b2*c + b1
}

// consumptionStitch returns the coefficients of g(c) = b2*c^2 + b1*c + b0
// below the consumption breakpoint.
func consumptionStitch(sigma float64) (b1, b2 float64) {
	eps := ConsumptionFloor
	b2 = -sigma * math.Pow(eps, -sigma-1) / 2
	b1 = math.Pow(eps, -sigma) - 2*b2*eps
	return b1, b2
}

// MarginalDisutility returns v'(n) for each element of n with the elliptical
// disutility of labor
//
//	v'(n) = (b/l) * (n/l)^(u-1) * (1 - (n/l)^u)^((1-u)/u)
//
// on [LaborMargin, l-LaborMargin], continued linearly below and above so the
// result is finite and continuously differentiable on the whole real line.
func MarginalDisutility(n []float64, p Params) []float64 {
	out := make([]float64, len(n))
	for i, ni := range n {
		out[i] = marginalDisutility(ni, p)
	}
	return out
}

func marginalDisutility(n float64, p Params) float64 {
	low, high := laborBreakpoints(p)
	switch {
	case n < low:
		b1, b2 := laborStitch(low, p)
		return 2*b2*n + b1
	case n > high:
		d1, d2 := laborStitch(high, p)
		return 2*d2*n + d1
	default:
		return ellipticalMDU(n, p)
	}
}

func laborBreakpoints(p Params) (low, high float64) {
	return LaborMargin, p.LTilde - LaborMargin
}

// laborStitch solves for the linear marginal disutility 2*b2*n + b1 that has
// the same value and slope as the elliptical one at eps.
func laborStitch(eps float64, p Params) (b1, b2 float64) {
	b2 = 0.5 * ellipticalMDUSlope(eps, p)
	b1 = ellipticalMDU(eps, p) - 2*b2*eps
	return b1, b2
}

func ellipticalMDU(n float64, p Params) float64 {
	x := n / p.LTilde
	u := p.Upsilon
	return (p.BEllip / p.LTilde) * math.Pow(x, u-1) * math.Pow(1-math.Pow(x, u), (1-u)/u)
}

// v''(n)
func ellipticalMDUSlope(n float64, p Params) float64 {
	x := n / p.LTilde
	u := p.Upsilon
	return (p.BEllip / (p.LTilde * p.LTilde)) * (u - 1) * math.Pow(x, u-2) *
		math.Pow(1-math.Pow(x, u), (1-2*u)/u)
}

// Utility returns the stitched CRRA utility level, log(c) when sigma is 1.
// Its derivative is MarginalUtility.
func Utility(c []float64, sigma float64) []float64 {
	out := make([]float64, len(c))
	for i, ci := range c {
		out[i] = utility(ci, sigma)
	}
	return out
}

func utility(c, sigma float64) float64 {
	if c >= ConsumptionFloor {
		return crra(c, sigma)
	}
	eps := ConsumptionFloor
	b1, b2 := consumptionStitch(sigma)
	b0 := crra(eps, sigma) - b2*eps*eps - b1*eps
	return b2*c*c + b1*c + b0
}

func crra(c, sigma float64) float64 {
	if sigma == 1 {
		return math.Log(c)
	}
	return (math.Pow(c, 1-sigma) - 1) / (1 - sigma)
}

// Disutility returns the stitched elliptical disutility level
// v(n) = -b*(1 - (n/l)^u)^(1/u). Its derivative is MarginalDisutility.
func Disutility(n []float64, p Params) []float64 {
	out := make([]float64, len(n))
	for i, ni := range n {
		out[i] = disutility(ni, p)
	}
	return out
}

func disutility(n float64, p Params) float64 {
	low, high := laborBreakpoints(p)
	eps := n
	switch {
	case n < low:
		eps = low
	case n > high:
		eps = high
	default:
		return ellipticalDU(n, p)
	}
	b1, b2 := laborStitch(eps, p)
	b0 := ellipticalDU(eps, p) - b2*eps*eps - b1*eps
	return b2*n*n + b1*n + b0
}

func ellipticalDU(n float64, p Params) float64 {
	x := n / p.LTilde
	return -p.BEllip * math.Pow(1-math.Pow(x, p.Upsilon), 1/p.Upsilon)
}

// LifetimeUtility discounts period utility u(c_s) - chi_s*v(n_s) back to the
// first remaining age. chi holds the weights for those ages.
func LifetimeUtility(c, n, chi []float64, p Params) float64 {
	u := Utility(c, p.Sigma)
	v := Disutility(n, p)
	total, disc := 0.0, 1.0
	for s := range u {
		total += disc * (u[s] - chi[s]*v[s])
		disc *= p.Beta
	}
	return total
}

func maxAbs(v []float64) float64 {
	return floats.Norm(v, math.Inf(1))
}
