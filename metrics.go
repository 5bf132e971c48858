package scpdsi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// LinearTrend returns the per-cell ordinary least-squares slope of f along
// the time axis, in units per year given the step length in years (1/12 for
// monthly fields). Cells with fewer than two finite samples return NaN.
func LinearTrend(f *Field, yearsPerStep float64) *Grid {
	nn := f.Ny * f.Nx
	g := NewGrid(f.Ny, f.Nx)
	ts, vs := make([]float64, 0, f.Nt), make([]float64, 0, f.Nt)
	for c := 0; c < nn; c++ {
		ts, vs = ts[:0], vs[:0]
		for k := 0; k < f.Nt; k++ {
			if v := f.Vals[k*nn+c]; !math.IsNaN(v) {
				ts = append(ts, float64(k)*yearsPerStep)
				vs = append(vs, v)
			}
		}
		if len(vs) < 2 {
			g.Vals[c] = math.NaN()
			continue
		}
		_, slope := stat.LinearRegression(ts, vs, nil, false)
		g.Vals[c] = slope
	}
	return g
}

// TemporalCorr returns the per-cell Pearson correlation of a and b along the
// time axis, over jointly finite samples.
func TemporalCorr(a, b *Field) (*Grid, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("scpdsi: field shape mismatch: (%d,%d,%d), (%d,%d,%d)", a.Nt, a.Ny, a.Nx, b.Nt, b.Ny, b.Nx)
	}
	nn := a.Ny * a.Nx
	g := NewGrid(a.Ny, a.Nx)
	xs, ys := make([]float64, 0, a.Nt), make([]float64, 0, a.Nt)
	for c := 0; c < nn; c++ {
		xs, ys = xs[:0], ys[:0]
		for k := 0; k < a.Nt; k++ {
			av, bv := a.Vals[k*nn+c], b.Vals[k*nn+c]
			if math.IsNaN(av) || math.IsNaN(bv) {
				continue
			}
			xs = append(xs, av)
			ys = append(ys, bv)
		}
		if len(xs) < 2 {
			g.Vals[c] = math.NaN()
			continue
		}
		g.Vals[c] = stat.Correlation(xs, ys, nil)
	}
	return g, nil
}
