// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"OG_Household_Project/equilibrium"
	"OG_Household_Project/firm"
	"OG_Household_Project/household"
)

// LoadConfig reads a YAML parameter file on top of DefaultConfig. Unknown
// keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadCSVToPriceSeries loads a price path CSV with a header row. The columns
// named r and w (any case) hold the interest rate and wage of each period;
// other columns are kept but unused.
func LoadCSVToPriceSeries(path string) (*PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	// row widths are checked against the header below
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	cols := len(header)

	var data []float64
	periods := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		if len(record) != cols {
			return nil, fmt.Errorf("%s line %d: %d columns, header has %d", path, line, len(record), cols)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d, column %s: %w", path, line, header[j], err)
			}
			data = append(data, v)
		}
		periods++
	}
	if periods == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	ps := &PriceSeries{Y: mat.NewDense(periods, cols, data), VarNames: header}
	if _, err := ps.Path(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Periods is the number of rows in the price path.
func (ps *PriceSeries) Periods() int {
	rows, _ := ps.Y.Dims()
	return rows
}

// Path extracts the interest rate and wage columns.
func (ps *PriceSeries) Path() (household.PricePath, error) {
	rCol, wCol := -1, -1
	for j, name := range ps.VarNames {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "r":
			rCol = j
		case "w":
			wCol = j
		}
	}
	if rCol < 0 || wCol < 0 {
		return household.PricePath{}, fmt.Errorf("price path needs columns r and w, have %v", ps.VarNames)
	}
	return household.PricePath{
		R: mat.Col(nil, rCol, ps.Y),
		W: mat.Col(nil, wCol, ps.Y),
	}, nil
}

// Helper function to print a household lifetime
func PrintSolution(w io.Writer, title string, sol *household.Solution) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	fmt.Fprintf(w, "Method: %s, iterations: %d\n\n", sol.Method, sol.Iterations)

	fmt.Fprintf(w, "%4s%14s%14s%14s\n", "age", "c", "n", "b")
	for s := range sol.C {
		fmt.Fprintf(w, "%4d%14.6f%14.6f%14.6f\n", s+1, sol.C[s], sol.N[s], sol.B[s])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Terminal savings:        %.3e\n", sol.TerminalSavings)
	fmt.Fprintf(w, "Max labor Euler error:   %.3e\n", sol.MaxLaborError())
	fmt.Fprintf(w, "Max savings Euler error: %.3e\n", sol.MaxSavingsError())
}

// Produces a summary table of a general-equilibrium steady state
func PrintSteadyState(w io.Writer, ss *equilibrium.SteadyState) {
	if ss == nil {
		fmt.Fprintln(w, "steady state is nil")
		return
	}
	fmt.Fprintln(w, "         General Equilibrium Steady State      ")
	fmt.Fprintf(w, "Interest rate (r):  %.10f\n", ss.R)
	fmt.Fprintf(w, "Wage (w):           %.10f\n", ss.W)
	fmt.Fprintf(w, "Capital (K):        %.10f\n", ss.K)
	fmt.Fprintf(w, "Labor (L):          %.10f\n", ss.L)
	fmt.Fprintf(w, "Output (Y):         %.10f\n", ss.Y)
	fmt.Fprintf(w, "Consumption (C):    %.10f\n", ss.C)
	fmt.Fprintf(w, "Resource error:     %.3e\n", ss.ResourceError)
	fmt.Fprintf(w, "Bisection steps:    %d\n", ss.Iterations)
	fmt.Fprintln(w, "=======================================")
}

// PrintSweep prints one line per steady state of a sweep
func PrintSweep(w io.Writer, results []SweepResult) {
	fmt.Fprintf(w, "%6s%12s%12s%14s%14s%14s\n", "S", "r", "w", "mean n", "labor err", "savings err")
	for _, res := range results {
		sol := res.Solution
		fmt.Fprintf(w, "%6d%12.6f%12.6f%14.6f%14.3e%14.3e\n",
			res.S, res.Prices.R, res.Prices.W, stat.Mean(sol.N, nil), sol.MaxLaborError(), sol.MaxSavingsError())
	}
}

// OutputSolutionToCSV writes a lifetime in long format.
// Columns: Age, C, N, B, BNext, LaborError, SavingsError
func OutputSolutionToCSV(path string, sol *household.Solution) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Initialize a new CSV writer
	writer := csv.NewWriter(file)

	header := []string{"Age", "C", "N", "B", "BNext", "LaborError", "SavingsError"}
	if err := writer.Write(header); err != nil {
		return err
	}

	bNext := sol.Savings()
	for s := range sol.C {
		// the last age has no savings condition
		savingsErr := ""
		if s < len(sol.SavingsErrors) {
			savingsErr = formatFloat(sol.SavingsErrors[s])
		}
		record := []string{
			strconv.Itoa(s + 1),
			formatFloat(sol.C[s]),
			formatFloat(sol.N[s]),
			formatFloat(sol.B[s]),
			formatFloat(bNext[s]),
			formatFloat(sol.LaborErrors[s]),
			savingsErr,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// OutputCohortsToCSV writes every cohort of a transition sweep.
// Columns: Cohort, Age, Period, C, N, B
// Cohort is the age at the start of the path; Period counts from 1.
func OutputCohortsToCSV(path string, sols []*household.Solution) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"Cohort", "Age", "Period", "C", "N", "B"}); err != nil {
		return err
	}
	for startAge, sol := range sols {
		for t := range sol.C {
			record := []string{
				strconv.Itoa(startAge + 1),
				strconv.Itoa(startAge + t + 1),
				strconv.Itoa(t + 1),
				formatFloat(sol.C[t]),
				formatFloat(sol.N[t]),
				formatFloat(sol.B[t]),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// OutputSweepToCSV writes the summary of a sweep, one row per S.
// Columns: S, R, W, K, LaborError, SavingsError
func OutputSweepToCSV(path string, results []SweepResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"S", "R", "W", "K", "LaborError", "SavingsError"}); err != nil {
		return err
	}
	for _, res := range results {
		K := firm.AggregateCapital(res.Solution.B)
		record := []string{
			strconv.Itoa(res.S),
			formatFloat(res.Prices.R),
			formatFloat(res.Prices.W),
			formatFloat(K),
			formatFloat(res.Solution.MaxLaborError()),
			formatFloat(res.Solution.MaxSavingsError()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}
