// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import "fmt"

// LifetimeResiduals evaluates every first-order condition of a remaining
// lifetime of p ages at the combined guess
//
//	nb = [n_1 ... n_p, b_2 ... b_p]
//
// Savings out of the last age are fixed at zero. The result is
// [labor residuals (p), savings residuals (p-1)].
func LifetimeResiduals(nb []float64, lt Lifetime, p Params) ([]float64, error) {
	if err := lt.validate(p); err != nil {
		return nil, err
	}
	q := lt.Periods()
	if len(nb) != 2*q-1 {
		return nil, fmt.Errorf("%w: %d remaining ages need %d unknowns, got %d",
			ErrDimension, q, 2*q-1, len(nb))
	}
	out := make([]float64, 2*q-1)
	lifetimeResiduals(out, nb, lt, p.cohortChi(q), p)
	return out, nil
}

// lifetimeResiduals is LifetimeResiduals without the checks, in the form the
// root finder calls it.
func lifetimeResiduals(dst, nb []float64, lt Lifetime, chi []float64, p Params) {
	q := lt.Periods()
	n, b, bNext := splitGuess(nb, q, lt.InitialWealth)

	c := make([]float64, q)
	for s := range c {
		c[s] = consumption(lt.R[s], lt.W[s], b[s], bNext[s], n[s], lt.E[s])
	}
	for s := 0; s < q; s++ {
		dst[s] = laborResidual(n[s], c[s], lt.W[s], lt.E[s], chi[s], p)
	}
	copy(dst[q:], savingsResiduals(c, lt.R[1:], p))
}

// splitGuess unpacks [n_1..n_p, b_2..b_p] into labor, wealth entering each
// age (starting from b1) and savings out of each age (ending at zero).
func splitGuess(nb []float64, q int, b1 float64) (n, b, bNext []float64) {
	n = nb[:q]
	bNext = make([]float64, q)
	copy(bNext, nb[q:])
	b = make([]float64, q)
	b[0] = b1
	copy(b[1:], bNext[:q-1])
	return n, b, bNext
}
