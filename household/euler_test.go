// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import (
	"errors"
	"math"
	"testing"
)

// twoPeriodOptimum builds a two-period log-utility lifetime whose optimum is
// known in closed form. Labor is fixed first and chi_n is backed out so the
// labor conditions hold exactly.
func twoPeriodOptimum() (Params, Lifetime, []float64, []float64) {
	const (
		beta = 0.9
		r    = 0.1
		w    = 1.5
	)
	n := []float64{0.6, 0.4}

	wealth := w*n[0] + w*n[1]/(1+r)
	c1 := wealth / (1 + beta)
	c2 := beta * (1 + r) * c1
	b2 := w*n[0] - c1

	p := testParams(2)
	p.Sigma = 1
	p.Beta = beta
	mdu := MarginalDisutility(n, p)
	p.ChiN = []float64{w / c1 / mdu[0], w / c2 / mdu[1]}

	lt := Lifetime{
		R: []float64{r, r},
		W: []float64{w, w},
		E: []float64{1, 1},
	}
	return p, lt, []float64{c1, c2}, []float64{n[0], n[1], b2}
}

func TestTwoPeriodClosedForm(t *testing.T) {
	p, lt, c, nb := twoPeriodOptimum()

	res, err := LifetimeResiduals(nb, lt, p)
	if err != nil {
		t.Fatalf("LifetimeResiduals: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("got %d residuals, want 3", len(res))
	}
	for i, v := range res {
		if !almostEqual(v, 0, 1e-12) {
			t.Errorf("residual %d = %g, want 0", i, v)
		}
	}

	labor, err := LaborResiduals(nb[:2], LaborInputs{W: lt.W, E: lt.E, ChiN: p.ChiN, Source: GivenConsumption{C: c}}, p)
	if err != nil {
		t.Fatalf("LaborResiduals: %v", err)
	}
	savings, err := SavingsResiduals(c, lt.R[1:], p)
	if err != nil {
		t.Fatalf("SavingsResiduals: %v", err)
	}
	for _, v := range append(labor, savings...) {
		if !almostEqual(v, 0, 1e-12) {
			t.Errorf("Euler residual %g, want 0", v)
		}
	}
}

func TestDerivedConsumptionMatchesGiven(t *testing.T) {
	p, lt, c, nb := twoPeriodOptimum()

	derived := DerivedConsumption{R: lt.R, B: []float64{0, nb[2]}, BNext: []float64{nb[2], 0}}
	given := GivenConsumption{C: c}

	a, err := LaborResiduals([]float64{0.3, 0.8}, LaborInputs{W: lt.W, E: lt.E, ChiN: p.ChiN, Source: derived}, p)
	if err != nil {
		t.Fatal(err)
	}
	// consumption moves with labor under the derived source
	cAlt := Consumption(lt.R, lt.W, derived.B, derived.BNext, []float64{0.3, 0.8}, lt.E)
	b, err := LaborResiduals([]float64{0.3, 0.8}, LaborInputs{W: lt.W, E: lt.E, ChiN: p.ChiN, Source: GivenConsumption{C: cAlt}}, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if !almostEqual(a[i], b[i], 1e-14) {
			t.Errorf("age %d: derived %g, given %g", i, a[i], b[i])
		}
	}

	// at the optimum both sources agree with zero
	z, _ := LaborResiduals(nb[:2], LaborInputs{W: lt.W, E: lt.E, ChiN: p.ChiN, Source: given}, p)
	for i := range z {
		if !almostEqual(z[i], 0, 1e-12) {
			t.Errorf("age %d: residual %g at the optimum", i, z[i])
		}
	}
}

func TestPercentErrors(t *testing.T) {
	p, lt, c, _ := twoPeriodOptimum()
	p.Mode = PercentError

	// consumption 1% too high in the second period
	c[1] *= 1.01
	got, err := SavingsResiduals(c, lt.R[1:], p)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got[0], 1/1.01-1, 1e-12) {
		t.Errorf("percent savings error = %g, want %g", got[0], 1/1.01-1)
	}

	abs := p
	abs.Mode = AbsoluteError
	absGot, _ := SavingsResiduals(c, lt.R[1:], abs)
	if math.Signbit(absGot[0]) != math.Signbit(got[0]) {
		t.Errorf("absolute (%g) and percent (%g) errors disagree in sign", absGot[0], got[0])
	}
}

func TestPercentErrorDenominatorGuard(t *testing.T) {
	p := testParams(1)
	p.Mode = PercentError

	// find labor where chi*v'(n) is essentially zero: the lower stitch
	// crosses zero just below the breakpoint
	b1, b2 := laborStitch(LaborMargin, p)
	root := -b1 / (2 * b2)
	got, err := LaborResiduals([]float64{root}, LaborInputs{
		W: []float64{1}, E: []float64{1}, ChiN: []float64{1},
		Source: GivenConsumption{C: []float64{1}},
	}, p)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got[0]) || math.IsInf(got[0], 0) {
		t.Fatalf("percent error not finite at the MDU root: %g", got[0])
	}

	if guardDenominator(0) != DenominatorFloor || guardDenominator(-1e-20) != -DenominatorFloor {
		t.Errorf("guardDenominator does not keep the sign")
	}
	if guardDenominator(0.5) != 0.5 {
		t.Errorf("guardDenominator changed a healthy value")
	}
}

func TestSavingsResidualsOnePeriod(t *testing.T) {
	got, err := SavingsResiduals([]float64{1}, nil, testParams(1))
	if err != nil || len(got) != 0 {
		t.Errorf("one-period savings residuals = %v, %v; want empty", got, err)
	}
}

func TestResidualDimensionErrors(t *testing.T) {
	p := testParams(3)
	lt := Lifetime{R: []float64{0.1, 0.1, 0.1}, W: []float64{1, 1, 1}, E: []float64{1, 1, 1}}

	if _, err := LifetimeResiduals([]float64{0.5, 0.5, 0.5, 0}, lt, p); !errors.Is(err, ErrDimension) {
		t.Errorf("short guess: got %v, want ErrDimension", err)
	}
	bad := lt
	bad.W = []float64{1, 1}
	if _, err := LifetimeResiduals([]float64{0.5, 0.5, 0.5, 0, 0}, bad, p); !errors.Is(err, ErrDimension) {
		t.Errorf("ragged lifetime: got %v, want ErrDimension", err)
	}
	long := Lifetime{R: make([]float64, 4), W: make([]float64, 4), E: make([]float64, 4)}
	if _, err := LifetimeResiduals(make([]float64, 7), long, p); !errors.Is(err, ErrDimension) {
		t.Errorf("lifetime longer than S: got %v, want ErrDimension", err)
	}
	if _, err := SavingsResiduals([]float64{1, 1, 1}, []float64{0.1, 0.1, 0.1}, p); !errors.Is(err, ErrDimension) {
		t.Errorf("too many rates: got %v, want ErrDimension", err)
	}
	if _, err := LaborResiduals([]float64{0.5, 0.5}, LaborInputs{W: []float64{1}, E: []float64{1}, ChiN: []float64{1}}, p); !errors.Is(err, ErrDimension) {
		t.Errorf("missing source: got %v, want ErrDimension", err)
	}
}

func TestLifetimeResidualsCohortWeights(t *testing.T) {
	// a two-age remainder of an S=3 lifetime uses the last two weights
	p := testParams(3)
	p.ChiN = []float64{5, 1, 2}
	lt := Lifetime{R: []float64{0.1, 0.1}, W: []float64{1, 1}, E: []float64{1, 1}, InitialWealth: 0.2}
	nb := []float64{0.5, 0.6, 0.1}

	got, err := LifetimeResiduals(nb, lt, p)
	if err != nil {
		t.Fatal(err)
	}
	c1 := consumption(0.1, 1, 0.2, 0.1, 0.5, 1)
	want := laborResidual(0.5, c1, 1, 1, 1, p)
	if !almostEqual(got[0], want, 1e-15) {
		t.Errorf("first labor residual = %g, want %g", got[0], want)
	}
}
