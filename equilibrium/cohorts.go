// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package equilibrium

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"OG_Household_Project/household"
)

// SolveCohorts solves the remaining lifetime of every cohort alive in the
// first period of a transition path, in parallel.
//
// initialWealth[i] is the wealth the cohort aged i+2 brings into the path
// (length S-1); newborns hold nothing. path must cover at least S periods and
// e is the full productivity profile (length S). The result is indexed by
// age at t=1: result[0] is the newborn cohort with S periods left, result[S-1]
// the oldest with one.
//
// workers <= 0 uses one worker per CPU. The first failing cohort cancels the
// solves that have not started yet.
func SolveCohorts(ctx context.Context, hh household.Params, initialWealth []float64,
	path household.PricePath, e []float64, workers int, opts ...household.Option) ([]*household.Solution, error) {

	if err := hh.Validate(); err != nil {
		return nil, err
	}
	S := hh.Periods()
	if len(initialWealth) != S-1 {
		return nil, fmt.Errorf("%w: %d initial wealth values for S=%d", household.ErrDimension, len(initialWealth), S)
	}
	if len(path.R) < S || len(path.W) < S {
		return nil, fmt.Errorf("%w: price path covers %d rates and %d wages, need %d",
			household.ErrDimension, len(path.R), len(path.W), S)
	}
	if len(e) != S {
		return nil, fmt.Errorf("%w: productivity has %d ages, S=%d", household.ErrDimension, len(e), S)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Set up worker pool
	numWorkers := workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > S {
		numWorkers = S
	}

	jobs := make(chan int)
	resultsCh := make(chan cohortResult, S)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	// Worker function
	worker := func() {
		defer wg.Done()

		for age := range jobs {
			if ctx.Err() != nil {
				resultsCh <- cohortResult{age: age, err: ctx.Err(), skipped: true}
				continue
			}

			remaining := S - age
			b1 := 0.0
			if age > 0 {
				b1 = initialWealth[age-1]
			}
			cohortPath := household.PricePath{R: path.R[:remaining], W: path.W[:remaining]}

			sol, err := household.SolveCohortTransition(b1, remaining, cohortPath, e[age:], hh, opts...)
			if err != nil {
				err = fmt.Errorf("cohort aged %d at t=1: %w", age+1, err)
				cancel()
			}
			resultsCh <- cohortResult{age: age, sol: sol, err: err}
		}
	}

	// Start workers
	for w := 0; w < numWorkers; w++ {
		go worker()
	}

	// Feed jobs
	go func() {
		for age := 0; age < S; age++ {
			jobs <- age
		}
		close(jobs)
	}()

	// 2. Aggregator: collect one result per cohort
	solutions := make([]*household.Solution, S)
	var firstErr, skipErr error
	for i := 0; i < S; i++ {
		res := <-resultsCh
		switch {
		case res.skipped:
			skipErr = res.err
		case res.err != nil:
			if firstErr == nil {
				firstErr = res.err
			}
		default:
			solutions[res.age] = res.sol
		}
	}

	// All results collected; workers can be joined now
	wg.Wait()
	close(resultsCh)

	if firstErr != nil {
		return nil, firstErr
	}
	if skipErr != nil {
		return nil, fmt.Errorf("cohort sweep cancelled: %w", skipErr)
	}
	return solutions, nil
}
