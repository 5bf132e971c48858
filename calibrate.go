package scpdsi

import (
	"math"

	"github.com/maseology/objfunc"
)

// calibrated duration-coefficient bounds: slow decay, bounded gain
const (
	pMin, pMax = .6, .99
	qMin, qMax = .05, .6
)

// normEq accumulates the 2×2 normal-equation cross products for one cell.
// Each sum skips its own non-finite products, so a gap in one series does
// not zero the others.
type normEq struct {
	a11, a12, a22, b1, b2 float64
}

func (n *normEq) add(x1, z1, y float64) {
	if v := x1 * x1; !math.IsNaN(v) {
		n.a11 += v
	}
	if v := x1 * z1; !math.IsNaN(v) {
		n.a12 += v
	}
	if v := z1 * z1; !math.IsNaN(v) {
		n.a22 += v
	}
	if v := x1 * y; !math.IsNaN(v) {
		n.b1 += v
	}
	if v := z1 * y; !math.IsNaN(v) {
		n.b2 += v
	}
}

// solve returns the least-squares (p,q); ok is false when the system is
// degenerate (no variance in either regressor).
func (n *normEq) solve() (p, q float64, ok bool) {
	det := n.a11*n.a22 - n.a12*n.a12
	if det == 0. {
		return 0., 0., false
	}
	return (n.a22*n.b1 - n.a12*n.b2) / det, (n.a11*n.b2 - n.a12*n.b1) / det, true
}

// Calibration holds per-cell duration coefficients fitted against a
// first-pass index, with fit diagnostics.
type Calibration struct {
	P, Q      *Grid
	NSE       *Grid // Nash-Sutcliffe skill of the fitted recurrence, per cell
	Fallbacks int   // cells retaining a default coefficient
}

// selfCalibrate re-estimates (p,q) cell by cell by ordinary least squares on
// index[k] ≈ p·index[k-1] + q·Z[k], using the first-pass index pdsi0. A
// degenerate or non-finite solve silently retains the engine default for
// that cell; the count of such cells is reported rather than raised.
func (e *Engine) selfCalibrate(z, pdsi0 *Field) *Calibration {
	nn := z.Ny * z.Nx
	cal := &Calibration{
		P:   NewGridOf(z.Ny, z.Nx, e.P0),
		Q:   NewGridOf(z.Ny, z.Nx, e.Q0),
		NSE: NewGrid(z.Ny, z.Nx),
	}
	for c := 0; c < nn; c++ {
		var ne normEq
		for k := 1; k < z.Nt; k++ {
			ne.add(pdsi0.Vals[(k-1)*nn+c], z.Vals[k*nn+c], pdsi0.Vals[k*nn+c])
		}
		p, q, ok := ne.solve()
		fell := !ok
		if ok {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				p, fell = e.P0, true
			}
			if math.IsNaN(q) || math.IsInf(q, 0) {
				q, fell = e.Q0, true
			}
		} else {
			p, q = e.P0, e.Q0
		}
		if fell {
			cal.Fallbacks++
		}
		cal.P.Vals[c] = clip(p, pMin, pMax)
		cal.Q.Vals[c] = clip(q, qMin, qMax)
		cal.NSE.Vals[c] = fitSkill(z, pdsi0, c, cal.P.Vals[c], cal.Q.Vals[c])
	}
	return cal
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fitSkill scores the fitted recurrence against the first-pass index over
// the cell's jointly finite steps.
func fitSkill(z, pdsi0 *Field, c int, p, q float64) float64 {
	nn := z.Ny * z.Nx
	obs, sim := make([]float64, 0, z.Nt-1), make([]float64, 0, z.Nt-1)
	for k := 1; k < z.Nt; k++ {
		x1, zk, y := pdsi0.Vals[(k-1)*nn+c], z.Vals[k*nn+c], pdsi0.Vals[k*nn+c]
		if math.IsNaN(x1) || math.IsNaN(zk) || math.IsNaN(y) {
			continue
		}
		obs = append(obs, y)
		sim = append(sim, p*x1+q*zk)
	}
	if len(obs) < 2 {
		return math.NaN()
	}
	return objfunc.NSE(obs, sim)
}

// fieldNSE scores sim against obs over all jointly finite entries.
func fieldNSE(obs, sim *Field) float64 {
	o, s := make([]float64, 0, len(obs.Vals)), make([]float64, 0, len(obs.Vals))
	for x := range obs.Vals {
		if math.IsNaN(obs.Vals[x]) || math.IsNaN(sim.Vals[x]) {
			continue
		}
		o = append(o, obs.Vals[x])
		s = append(s, sim.Vals[x])
	}
	if len(o) < 2 {
		return math.NaN()
	}
	return objfunc.NSE(o, s)
}
