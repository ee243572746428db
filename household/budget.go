// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: Household Lifecycle Solver for an Overlapping-Generations Model
// Class: 02-613 at Caregie Mellon University

package household

import "fmt"

// Consumption returns c = (1+r)*b + w*n*e - bNext element by element.
// Any argument of length 1 is applied to every element; all others must have
// the same length. No sign restrictions are imposed, negative consumption is a
// legal intermediate value during root search.
func Consumption(r, w, b, bNext, n, e []float64) []float64 {
	p := broadcastLen("Consumption", r, w, b, bNext, n, e)
	out := make([]float64, p)
	for i := range out {
		out[i] = consumption(at(r, i), at(w, i), at(b, i), at(bNext, i), at(n, i), at(e, i))
	}
	return out
}

func consumption(r, w, b, bNext, n, e float64) float64 {
	return (1+r)*b + w*n*e - bNext
}

// NextWealth inverts Consumption: bNext = (1+r)*b + w*n*e - c.
func NextWealth(r, w, b, c, n, e []float64) []float64 {
	p := broadcastLen("NextWealth", r, w, b, c, n, e)
	out := make([]float64, p)
	for i := range out {
		out[i] = nextWealth(at(r, i), at(w, i), at(b, i), at(c, i), at(n, i), at(e, i))
	}
	return out
}

func nextWealth(r, w, b, c, n, e float64) float64 {
	return (1+r)*b + w*n*e - c
}

// at indexes v, treating a length-1 slice as a constant.
func at(v []float64, i int) float64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[i]
}

// commonLen returns the common length of vs, where length-1 slices broadcast.
// ok is false if two lengths other than 1 disagree or any slice is empty.
func commonLen(vs ...[]float64) (p int, ok bool) {
	p = 1
	for _, v := range vs {
		switch {
		case len(v) == 0:
			return 0, false
		case len(v) == 1:
		case p == 1:
			p = len(v)
		case len(v) != p:
			return 0, false
		}
	}
	return p, true
}

// broadcastLen is commonLen for the total budget functions: a mismatch is a
// programming error, not a numerical one.
func broadcastLen(name string, vs ...[]float64) int {
	p, ok := commonLen(vs...)
	if !ok {
		lens := make([]int, len(vs))
		for i, v := range vs {
			lens[i] = len(v)
		}
		panic(fmt.Sprintf("household: %s: incompatible lengths %v", name, lens))
	}
	return p
}
