// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package main

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OG_Household_Project/equilibrium"
	"OG_Household_Project/household"
)

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

// almostEqual compares floats with tolerance
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// smallConfig is a three-period lifetime of one-year periods where
// beta*(1+rbar) = 1 and the firm pays w = 0.7 at rbar.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.S = 3
	cfg.EconLife = 3
	cfg.BetaAnnual = 0.8
	cfg.RBar = 0.25
	return cfg
}

// ============================================================================
// CONFIG
// ============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	p, err := cfg.HouseholdParams()
	require.NoError(t, err)
	assert.Equal(t, 50, p.Periods())
	assert.Equal(t, 0.96, p.Beta, "one-year periods keep the annual discount factor")
	assert.Equal(t, 2.0, p.Sigma)
	assert.Equal(t, household.AbsoluteError, p.Mode)
	for _, chi := range p.ChiN {
		assert.Equal(t, 1.0, chi)
	}

	f := cfg.Firm()
	assert.InDelta(t, 0.05, f.Delta, 1e-15)
	assert.Equal(t, 0.3, f.Alpha)

	assert.Len(t, cfg.ProductivityProfile(), 50)
}

func TestConfigPeriodConversion(t *testing.T) {
	cfg := DefaultConfig().WithPeriods(5)

	p, err := cfg.HouseholdParams()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(0.96, 10), p.Beta, 1e-15)
	assert.InDelta(t, 1-math.Pow(0.95, 10), cfg.Firm().Delta, 1e-15)
	assert.Len(t, p.ChiN, 5)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no periods", func(c *Config) { c.S = 0 }},
		{"no economic life", func(c *Config) { c.EconLife = 0 }},
		{"short chi profile", func(c *Config) { c.ChiN = []float64{1, 1} }},
		{"short productivity", func(c *Config) { c.Productivity = []float64{1} }},
		{"unknown error mode", func(c *Config) { c.ErrorMode = "relative" }},
		{"unknown method", func(c *Config) { c.Method = "newton" }},
		{"bad capital share", func(c *Config) { c.Alpha = 1.5 }},
		{"bad preferences", func(c *Config) { c.Upsilon = 0.5 }},
	}

	for _, test := range tests {
		cfg := smallConfig()
		test.modify(&cfg)
		assert.Error(t, cfg.Validate(), test.name)
	}

	cfg := smallConfig()
	cfg.ErrorMode = "Percent"
	cfg.Method = "SHOOTING"
	assert.NoError(t, cfg.Validate(), "modes are case insensitive")
}

func TestWithPeriodsDropsProfiles(t *testing.T) {
	cfg := smallConfig()
	cfg.Productivity = []float64{1, 1.2, 0.9}

	same := cfg.WithPeriods(3)
	assert.Equal(t, cfg.Productivity, same.Productivity)

	other := cfg.WithPeriods(4)
	assert.Nil(t, other.Productivity)
	assert.NoError(t, other.Validate())
}

// ============================================================================
// RUNNERS
// ============================================================================

func TestRunSteadyState(t *testing.T) {
	sol, prices, err := RunSteadyState(smallConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.25, prices.R)
	assert.InDelta(t, 0.7, prices.W, 1e-12)
	require.Len(t, sol.N, 3)

	// flat consumption, no saving
	for s := range sol.N {
		assert.InDelta(t, 0.94133970005974, sol.N[s], 1e-9)
		assert.InDelta(t, sol.C[0], sol.C[s], 1e-9)
		assert.InDelta(t, 0, sol.B[s], 1e-9)
	}
	assert.LessOrEqual(t, sol.MaxLaborError(), 1e-10)
}

func TestRunSteadyStateMethods(t *testing.T) {
	cfg := smallConfig()
	cfg.Productivity = []float64{1, 1.2, 0.9}

	direct, _, err := RunSteadyState(cfg)
	require.NoError(t, err)

	cfg.Method = "shooting"
	shooting, _, err := RunSteadyState(cfg)
	require.NoError(t, err)

	assert.Equal(t, household.Shooting, shooting.Method)
	for s := range direct.N {
		if !almostEqual(direct.N[s], shooting.N[s], 1e-8) {
			t.Errorf("age %d: direct n=%g, shooting n=%g", s+1, direct.N[s], shooting.N[s])
		}
	}
}

func TestRunGeneralEquilibrium(t *testing.T) {
	tests := []struct {
		S     int
		wantR float64
	}{
		{10, 0.4254753033333145},
		{25, 0.14119884293586438},
	}
	for _, test := range tests {
		cfg := DefaultConfig().WithPeriods(test.S)

		ss, err := RunGeneralEquilibrium(cfg, nil)
		require.NoError(t, err, "S=%d", test.S)

		assert.InDelta(t, test.wantR, ss.R, 1e-8, "S=%d", test.S)
		assert.InDelta(t, 0, ss.ResourceError, 1e-10, "S=%d", test.S)
		assert.InDelta(t, ss.R, cfg.Firm().Rate(ss.K, ss.L), 1e-9, "S=%d", test.S)
		assert.Len(t, ss.Household.N, test.S)
	}
}

func TestRunGeneralEquilibriumNoBracket(t *testing.T) {
	// households borrow at r=0 and the firm pays more than r=1 for the
	// little capital they supply there
	_, err := RunGeneralEquilibrium(smallConfig(), nil)
	assert.ErrorIs(t, err, equilibrium.ErrNoBracket)
}

func TestRunCohort(t *testing.T) {
	cfg := smallConfig()
	cfg.Productivity = []float64{1, 1.2, 0.9}

	series, err := LoadCSVToPriceSeries("Tests/LoadCSVToPriceSeries/valid.csv")
	require.NoError(t, err)

	sol, err := RunCohort(cfg, series, 0.1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.1017882971380313, sol.C[0], 1e-8)

	// the oldest cohort faces only the first period's prices
	last, err := RunCohort(cfg, series, 0.3, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.15*0.3+1.1*0.9*last.N[0], last.C[0], 1e-14)

	_, err = RunCohort(cfg, series, 0, 4)
	assert.Error(t, err)
}

func TestRunAllCohorts(t *testing.T) {
	cfg := smallConfig()
	cfg.Productivity = []float64{1, 1.2, 0.9}

	series, err := LoadCSVToPriceSeries("Tests/LoadCSVToPriceSeries/valid.csv")
	require.NoError(t, err)

	sols, err := RunAllCohorts(context.Background(), cfg, series, 2)
	require.NoError(t, err)
	require.Len(t, sols, 3)
	for age, sol := range sols {
		assert.Len(t, sol.C, 3-age)
	}

	// cohorts start from the steady-state wealth distribution
	ss, _, err := RunSteadyState(cfg)
	require.NoError(t, err)
	assert.Equal(t, ss.B[1], sols[1].B[0])
	assert.Equal(t, ss.B[2], sols[2].B[0])
}

func TestRunSweep(t *testing.T) {
	cfg := DefaultConfig()

	results, err := RunSweep(context.Background(), cfg, []int{10, 3, 5}, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, S := range []int{3, 5, 10} {
		assert.Equal(t, S, results[i].S)
		assert.Len(t, results[i].Solution.N, S)
		assert.LessOrEqual(t, results[i].Solution.MaxLaborError(), 1e-10)
		assert.Equal(t, cfg.RBar, results[i].Prices.R)
	}
	// longer periods depreciate more capital, so wages rise with S
	assert.Less(t, results[0].Prices.W, results[2].Prices.W)
}

func TestRunSweepFailure(t *testing.T) {
	_, err := RunSweep(context.Background(), DefaultConfig(), []int{3, 0}, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S=0")
}
