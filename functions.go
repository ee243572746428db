// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"OG_Household_Project/equilibrium"
	"OG_Household_Project/firm"
	"OG_Household_Project/household"
)

// DefaultConfig is the benchmark calibration: a 50-year economic life in
// annual periods.
func DefaultConfig() Config {
	return Config{
		S:           50,
		EconLife:    50,
		BetaAnnual:  0.96,
		DeltaAnnual: 0.05,
		Alpha:       0.3,
		A:           1.0,
		Sigma:       2.0,
		LTilde:      1.0,
		BEllip:      0.629,
		Upsilon:     1.753,
		Chi:         1.0,
		RBar:        0.10,
		RLow:        0.0,
		RHigh:       1.0,
		ErrorMode:   "absolute",
		Method:      "direct",
	}
}

// Validate checks the parts of the config that the solvers do not check
// themselves.
func (c Config) Validate() error {
	if c.S < 1 {
		return fmt.Errorf("config: S=%d must be >= 1", c.S)
	}
	if c.EconLife < 1 {
		return fmt.Errorf("config: econ_life=%d must be >= 1", c.EconLife)
	}
	if len(c.ChiN) != 0 && len(c.ChiN) != c.S {
		return fmt.Errorf("config: chi_n_profile has %d ages, S=%d", len(c.ChiN), c.S)
	}
	if len(c.Productivity) != 0 && len(c.Productivity) != c.S {
		return fmt.Errorf("config: productivity has %d ages, S=%d", len(c.Productivity), c.S)
	}
	if _, err := c.errorMode(); err != nil {
		return err
	}
	if _, err := c.method(); err != nil {
		return err
	}
	if err := c.Firm().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.HouseholdParams(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// WithPeriods returns a copy of c with S model periods. Profiles that were
// set for the old S are dropped.
func (c Config) WithPeriods(S int) Config {
	if S != c.S {
		c.ChiN = nil
		c.Productivity = nil
	}
	c.S = S
	return c
}

// HouseholdParams converts the calibration to per-period household parameters.
func (c Config) HouseholdParams() (household.Params, error) {
	mode, err := c.errorMode()
	if err != nil {
		return household.Params{}, err
	}

	chi := c.ChiN
	if len(chi) == 0 {
		chi = make([]float64, c.S)
		for s := range chi {
			chi[s] = c.Chi
		}
	}

	p := household.Params{
		Beta:    firm.PeriodDiscount(c.BetaAnnual, c.EconLife, c.S),
		Sigma:   c.Sigma,
		LTilde:  c.LTilde,
		BEllip:  c.BEllip,
		Upsilon: c.Upsilon,
		ChiN:    append([]float64(nil), chi...),
		Mode:    mode,
	}
	return p, p.Validate()
}

// Firm converts the calibration to per-period technology.
func (c Config) Firm() firm.Firm {
	return firm.Firm{
		A:     c.A,
		Alpha: c.Alpha,
		Delta: firm.PeriodDepreciation(c.DeltaAnnual, c.EconLife, c.S),
	}
}

// ProductivityProfile returns the productivity of every age, 1 if unset.
func (c Config) ProductivityProfile() []float64 {
	if len(c.Productivity) != 0 {
		return append([]float64(nil), c.Productivity...)
	}
	e := make([]float64, c.S)
	for s := range e {
		e[s] = 1
	}
	return e
}

func (c Config) errorMode() (household.ErrorMode, error) {
	switch strings.ToLower(c.ErrorMode) {
	case "", "absolute":
		return household.AbsoluteError, nil
	case "percent":
		return household.PercentError, nil
	}
	return 0, fmt.Errorf("config: unknown error_mode %q (absolute, percent)", c.ErrorMode)
}

func (c Config) method() (household.Method, error) {
	switch strings.ToLower(c.Method) {
	case "", "direct":
		return household.Direct, nil
	case "shooting":
		return household.Shooting, nil
	}
	return 0, fmt.Errorf("config: unknown method %q (direct, shooting)", c.Method)
}

// RunSteadyState solves the household steady state at the partial-equilibrium
// interest rate RBar and the wage the firm pays at that rate.
func RunSteadyState(cfg Config) (*household.Solution, household.Prices, error) {
	if err := cfg.Validate(); err != nil {
		return nil, household.Prices{}, err
	}
	p, _ := cfg.HouseholdParams()
	method, _ := cfg.method()

	prices := household.Prices{R: cfg.RBar, W: cfg.Firm().WageFromRate(cfg.RBar)}
	sol, err := household.SolveSteadyState(p, prices,
		household.WithProductivity(cfg.ProductivityProfile()),
		household.WithMethod(method),
	)
	if err != nil {
		return nil, prices, err
	}
	return sol, prices, nil
}

// RunGeneralEquilibrium solves for the steady-state interest rate in
// [RLow, RHigh].
func RunGeneralEquilibrium(cfg Config, logger *slog.Logger) (*equilibrium.SteadyState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, _ := cfg.HouseholdParams()

	return equilibrium.SolveSteadyState(p, cfg.Firm(), cfg.ProductivityProfile(), equilibrium.Settings{
		RLow:   cfg.RLow,
		RHigh:  cfg.RHigh,
		Logger: logger,
	})
}

// RunCohort solves one cohort with `remaining` periods left that enters the
// price path with wealth b1. Prices are the first `remaining` rows of series.
func RunCohort(cfg Config, series *PriceSeries, b1 float64, remaining int) (*household.Solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if remaining < 1 || remaining > cfg.S {
		return nil, fmt.Errorf("remaining=%d outside [1,%d]", remaining, cfg.S)
	}
	path, err := series.Path()
	if err != nil {
		return nil, err
	}
	if len(path.R) < remaining {
		return nil, fmt.Errorf("price path has %d periods, cohort needs %d", len(path.R), remaining)
	}
	p, _ := cfg.HouseholdParams()
	e := cfg.ProductivityProfile()[cfg.S-remaining:]

	return household.SolveCohortTransition(b1, remaining,
		household.PricePath{R: path.R[:remaining], W: path.W[:remaining]}, e, p)
}

// RunAllCohorts solves every cohort alive in the first period of the path.
// Initial wealth is the steady-state distribution at RBar.
func RunAllCohorts(ctx context.Context, cfg Config, series *PriceSeries, workers int) ([]*household.Solution, error) {
	ss, _, err := RunSteadyState(cfg)
	if err != nil {
		return nil, fmt.Errorf("initial wealth distribution: %w", err)
	}
	path, err := series.Path()
	if err != nil {
		return nil, err
	}
	p, _ := cfg.HouseholdParams()

	return equilibrium.SolveCohorts(ctx, p, ss.B[1:], path, cfg.ProductivityProfile(), workers)
}

// RunSweep solves the partial-equilibrium steady state for every lifetime
// length in periods concurrently, at most `limit` at a time. Profiles in cfg
// only carry over to the S they were set for.
func RunSweep(ctx context.Context, cfg Config, periods []int, limit int, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]SweepResult, len(periods))

	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, S := range periods {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sol, prices, err := RunSteadyState(cfg.WithPeriods(S))
			if err != nil {
				return fmt.Errorf("S=%d: %w", S, err)
			}
			logger.Info("steady state", "S", S, "r", prices.R, "w", prices.W,
				"labor_error", sol.MaxLaborError(), "savings_error", sol.MaxSavingsError())
			results[i] = SweepResult{S: S, Prices: prices, Solution: sol}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].S < results[j].S })
	return results, nil
}
