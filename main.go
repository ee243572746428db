// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ogsolve solves the household problem of an overlapping-generations model.
//
//	ogsolve ss                       steady state at rbar
//	ogsolve ss --ge                  general-equilibrium steady state
//	ogsolve cohort prices.csv        one cohort on a transition price path
//	ogsolve cohort --all prices.csv  every cohort alive at the start of the path
//	ogsolve sweep --periods 5,10,50  steady states for several lifetime lengths
//
// The calibration comes from --config (YAML) on top of the defaults. With
// --out, results are also written as CSV files into that directory.

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand
type app struct {
	configPath string
	outDir     string
	verbose    bool

	cfg    Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ogsolve",
		Short:         "Household lifecycle solver for an overlapping-generations model",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)

			a.cfg = DefaultConfig()
			if a.configPath != "" {
				cfg, err := LoadConfig(a.configPath)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			if a.outDir != "" {
				if err := os.MkdirAll(a.outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			a.logger.Debug("calibration", "S", a.cfg.S, "econ_life", a.cfg.EconLife,
				"sigma", a.cfg.Sigma, "rbar", a.cfg.RBar, "method", a.cfg.Method)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML calibration file")
	root.PersistentFlags().StringVarP(&a.outDir, "out", "o", "", "directory for CSV output")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.steadyStateCmd(), a.cohortCmd(), a.sweepCmd())
	return root
}

// =============================================================================
// SS COMMAND
// =============================================================================

func (a *app) steadyStateCmd() *cobra.Command {
	var ge bool

	cmd := &cobra.Command{
		Use:   "ss",
		Short: "Solve the steady-state household lifetime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if ge {
				ss, err := RunGeneralEquilibrium(a.cfg, a.logger)
				if err != nil {
					return err
				}
				PrintSteadyState(out, ss)
				PrintSolution(out, "Household lifetime", ss.Household)
				return a.writeCSV("steady_state.csv", func(path string) error {
					return OutputSolutionToCSV(path, ss.Household)
				})
			}

			sol, prices, err := RunSteadyState(a.cfg)
			if err != nil {
				return err
			}
			a.logger.Info("steady state solved", "r", prices.R, "w", prices.W, "iterations", sol.Iterations)
			PrintSolution(out, fmt.Sprintf("Household lifetime at r=%g, w=%g", prices.R, prices.W), sol)
			return a.writeCSV("steady_state.csv", func(path string) error {
				return OutputSolutionToCSV(path, sol)
			})
		},
	}
	cmd.Flags().BoolVar(&ge, "ge", false, "solve for the general-equilibrium interest rate")
	return cmd
}

// =============================================================================
// COHORT COMMAND
// =============================================================================

func (a *app) cohortCmd() *cobra.Command {
	var (
		b1        float64
		remaining int
		all       bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "cohort <prices.csv>",
		Short: "Solve cohorts on a transition price path (CSV with r and w columns)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := LoadCSVToPriceSeries(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("loaded price path", "file", args[0], "periods", series.Periods())

			if all {
				sols, err := RunAllCohorts(cmd.Context(), a.cfg, series, workers)
				if err != nil {
					return err
				}
				for age, sol := range sols {
					a.logger.Info("cohort solved", "age", age+1, "remaining", len(sol.C),
						"terminal_savings", sol.TerminalSavings)
				}
				return a.writeCSV("cohorts.csv", func(path string) error {
					return OutputCohortsToCSV(path, sols)
				})
			}

			if remaining == 0 {
				remaining = a.cfg.S
			}
			sol, err := RunCohort(a.cfg, series, b1, remaining)
			if err != nil {
				return err
			}
			PrintSolution(cmd.OutOrStdout(), fmt.Sprintf("Cohort with %d periods left, b1=%g", remaining, b1), sol)
			return a.writeCSV("cohort.csv", func(path string) error {
				return OutputSolutionToCSV(path, sol)
			})
		},
	}
	cmd.Flags().Float64Var(&b1, "b1", 0, "wealth entering the first period of the path")
	cmd.Flags().IntVar(&remaining, "remaining", 0, "periods of life left (default S)")
	cmd.Flags().BoolVar(&all, "all", false, "solve every cohort alive at the start of the path")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel cohort solves (default one per CPU)")
	return cmd
}

// =============================================================================
// SWEEP COMMAND
// =============================================================================

func (a *app) sweepCmd() *cobra.Command {
	var (
		periods []int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve the steady state for several lifetime lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := RunSweep(cmd.Context(), a.cfg, periods, limit, a.logger)
			if err != nil {
				return err
			}
			PrintSweep(cmd.OutOrStdout(), results)
			return a.writeCSV("sweep.csv", func(path string) error {
				return OutputSweepToCSV(path, results)
			})
		},
	}
	cmd.Flags().IntSliceVar(&periods, "periods", []int{5, 10, 25, 50}, "lifetime lengths S to solve")
	cmd.Flags().IntVar(&limit, "limit", 0, "steady states solved at once (default unlimited)")
	return cmd
}

// writeCSV runs write on <out>/name when an output directory is set.
func (a *app) writeCSV(name string, write func(path string) error) error {
	if a.outDir == "" {
		return nil
	}
	path := filepath.Join(a.outDir, name)
	if err := write(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("results written", "file", path)
	return nil
}
