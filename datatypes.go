// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package main

import (
	"gonum.org/v1/gonum/mat"

	"OG_Household_Project/household"
)

// Config is the model calibration, read from a YAML parameter file.
// Annual rates are converted to model periods of round(EconLife/S) years.
type Config struct {
	// Number of model periods in a lifetime
	S int `yaml:"S"`
	// Economic life in years
	EconLife int `yaml:"econ_life"`

	BetaAnnual  float64 `yaml:"beta_annual"`
	DeltaAnnual float64 `yaml:"delta_annual"`

	// Firm
	Alpha float64 `yaml:"alpha"`
	A     float64 `yaml:"A"`

	// Household preferences
	Sigma   float64   `yaml:"sigma"`
	LTilde  float64   `yaml:"l_tilde"`
	BEllip  float64   `yaml:"b_ellip"`
	Upsilon float64   `yaml:"upsilon"`
	Chi     float64   `yaml:"chi_n"`
	ChiN    []float64 `yaml:"chi_n_profile"`

	// Productivity by age, length S. Empty means 1 at every age.
	Productivity []float64 `yaml:"productivity"`

	// Partial-equilibrium interest rate
	RBar float64 `yaml:"rbar"`

	// General-equilibrium bracket for r
	RLow  float64 `yaml:"r_low"`
	RHigh float64 `yaml:"r_high"`

	// "absolute" or "percent"
	ErrorMode string `yaml:"error_mode"`
	// "direct" or "shooting"
	Method string `yaml:"method"`
}

// PriceSeries is a price path file: one row per period, one column per
// header name.
type PriceSeries struct {
	Y        *mat.Dense
	VarNames []string
}

// SweepResult is one steady state of a sweep over lifetime lengths.
type SweepResult struct {
	S        int
	Prices   household.Prices
	Solution *household.Solution
}
