package scpdsi

import "math"

const epsK = 1e-6 // guards the log against zero-magnitude months

// monthlyCoeffK derives the seasonal coefficient that rescales the moisture
// departure into severity units comparable across seasons and cells. Each
// calendar month is treated separately: the per-cell log of summed departure
// magnitudes is adjusted by how anomalous the cell's typical magnitude is
// relative to the grid-wide mean for that month, then the whole coefficient
// is moderated by its own per-cell mean magnitude. month0 is the calendar
// month (0-11) of the first time step. Months with no coverage keep K = 0;
// non-finite results resolve to 1.
func monthlyCoeffK(d *Field, month0 int) *Field {
	nn := d.Ny * d.Nx
	k := NewField(d.Nt, d.Ny, d.Nx)
	scale, ki := make([]float64, nn), make([]float64, nn)

	for m := range 12 {
		var sel []int
		for t := 0; t < d.Nt; t++ {
			if (t+month0)%12 == m {
				sel = append(sel, t)
			}
		}
		if len(sel) == 0 {
			continue
		}

		for c := 0; c < nn; c++ {
			s, n := 0., 0
			for _, t := range sel {
				if v := d.Vals[t*nn+c]; !math.IsNaN(v) {
					s += math.Abs(v)
					n++
				}
			}
			ki[c] = 1.5 * math.Log10(s+epsK)
			if n == 0 || s == 0. { // zero-magnitude month, normalization undefined
				scale[c] = math.NaN()
			} else {
				scale[c] = s / float64(n)
			}
		}

		// grid-wide mean magnitude for this month
		ms, mn := 0., 0
		for c := 0; c < nn; c++ {
			if !math.IsNaN(scale[c]) {
				ms += scale[c]
				mn++
			}
		}
		mbar := math.NaN()
		if mn > 0 {
			mbar = ms / float64(mn)
		}

		for c := 0; c < nn; c++ {
			v := ki[c] / (scale[c] / mbar)
			for _, t := range sel {
				k.Vals[t*nn+c] = v
			}
		}
	}

	// moderate the overall magnitude, cell by cell
	for c := 0; c < nn; c++ {
		s, n := 0., 0
		for t := 0; t < d.Nt; t++ {
			if v := k.Vals[t*nn+c]; !math.IsNaN(v) {
				s += math.Abs(v)
				n++
			}
		}
		mbar := math.NaN()
		if n > 0 {
			mbar = s / float64(n)
		}
		for t := 0; t < d.Nt; t++ {
			v := k.Vals[t*nn+c] / mbar
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 1.
			}
			k.Vals[t*nn+c] = v
		}
	}
	return k
}
