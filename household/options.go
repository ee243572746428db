// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import "OG_Household_Project/rootfind"

// DefaultTerminalTol is the largest |b_{p+1}| accepted from a shooting solve.
const DefaultTerminalTol = 1e-10

// Option customizes a solve. Option constructors panic on meaningless input.
type Option func(*config)

type config struct {
	outer rootfind.Settings
	inner rootfind.Settings

	// direct formulation starting point
	nGuess []float64
	bGuess []float64

	// shooting starting point
	c1Guess    float64
	hasC1Guess bool

	productivity []float64
	method       Method
	terminalTol  float64
}

func newConfig(opts []Option) config {
	cfg := config{
		outer:       rootfind.Settings{Tol: 1e-14},
		inner:       rootfind.Settings{Tol: 1e-14, MaxIter: 500},
		method:      Direct,
		terminalTol: DefaultTerminalTol,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSolverSettings sets the outer root finder settings.
func WithSolverSettings(s rootfind.Settings) Option {
	return func(c *config) { c.outer = s }
}

// WithInnerSettings sets the per-age labor solve settings used by the
// forward simulation.
func WithInnerSettings(s rootfind.Settings) Option {
	return func(c *config) { c.inner = s }
}

// WithInitialGuess seeds the direct formulation with labor n (length p) and
// savings b_2..b_p (length p-1).
func WithInitialGuess(n, b []float64) Option {
	if len(n) == 0 || len(b) != len(n)-1 {
		panic("household: WithInitialGuess: need len(n) >= 1 and len(b) == len(n)-1")
	}
	return func(c *config) {
		c.nGuess = append([]float64(nil), n...)
		c.bGuess = append([]float64(nil), b...)
	}
}

// WithConsumptionGuess seeds the shooting formulation with c1.
func WithConsumptionGuess(c1 float64) Option {
	return func(c *config) {
		c.c1Guess = c1
		c.hasC1Guess = true
	}
}

// WithProductivity sets the steady-state productivity profile (length S).
// The default is 1 at every age.
func WithProductivity(e []float64) Option {
	if len(e) == 0 {
		panic("household: WithProductivity(empty)")
	}
	return func(c *config) { c.productivity = append([]float64(nil), e...) }
}

// WithMethod selects the steady-state formulation.
func WithMethod(m Method) Option {
	if m != Direct && m != Shooting {
		panic("household: WithMethod: unknown method")
	}
	return func(c *config) { c.method = m }
}

// WithTerminalTolerance sets the largest |b_{p+1}| accepted from a shooting solve.
func WithTerminalTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("household: WithTerminalTolerance(tol<=0)")
	}
	return func(c *config) { c.terminalTol = tol }
}
