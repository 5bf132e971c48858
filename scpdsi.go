package scpdsi

import "fmt"

// Palmer-convention defaults: a slow decay, a one-third gain on the current
// anomaly, and a ±10 severity bound.
const (
	DefaultP   = .897
	DefaultQ   = 1. / 3.
	DefaultCap = 10.
)

// Engine computes a self-calibrating drought severity index from monthly
// precipitation and potential evapotranspiration fields.
type Engine struct {
	P0, Q0 float64 // default duration coefficients (persistence, gain)
	Cap    float64 // severity bound
	Month0 int     // calendar month (0-11) of the first time step
}

func DefaultEngine() *Engine {
	return &Engine{P0: DefaultP, Q0: DefaultQ, Cap: DefaultCap}
}

// Compute derives the Z-index and the severity index from precipitation p
// and potential evapotranspiration ep [mm/month], both shaped
// (time, row, col). The water-balance components hc are optional but must be
// complete when given. With selfCalibrate, the duration coefficients are
// refitted per cell against a first-pass index and the recurrence is run a
// second time; cal reports the fitted grids (nil otherwise). The computation
// is deterministic and holds no state between calls.
func (e *Engine) Compute(p, ep *Field, hc *Components, selfCalibrate bool) (z, pdsi *Field, cal *Calibration, err error) {
	if err = e.validate(p, ep, hc); err != nil {
		return nil, nil, nil, err
	}
	_, d := cafecDeparture(p, ep, hc)
	k := monthlyCoeffK(d, e.Month0)
	z = zIndex(k, d)
	pdsi = e.recurse(z, nil, nil)
	if !selfCalibrate {
		return z, pdsi, nil, nil
	}
	cal = e.selfCalibrate(z, pdsi)
	pdsi = e.recurse(z, cal.P, cal.Q)
	return z, pdsi, cal, nil
}

// Departure returns the CAFEC expected precipitation and the moisture
// departure D = P - P̂.
func (e *Engine) Departure(p, ep *Field, hc *Components) (phat, d *Field, err error) {
	if err = e.validate(p, ep, hc); err != nil {
		return nil, nil, err
	}
	phat, d = cafecDeparture(p, ep, hc)
	return phat, d, nil
}

func (e *Engine) validate(p, ep *Field, hc *Components) error {
	if p == nil || ep == nil {
		return fmt.Errorf("scpdsi: precipitation and potential evapotranspiration fields are required")
	}
	if p.Nt == 0 || p.Ny == 0 || p.Nx == 0 {
		return fmt.Errorf("scpdsi: empty field (%d,%d,%d)", p.Nt, p.Ny, p.Nx)
	}
	if !p.SameShape(ep) {
		return fmt.Errorf("scpdsi: field shape mismatch: P (%d,%d,%d), EP (%d,%d,%d)", p.Nt, p.Ny, p.Nx, ep.Nt, ep.Ny, ep.Nx)
	}
	if e.Month0 < 0 || e.Month0 > 11 {
		return fmt.Errorf("scpdsi: month0 %d out of range [0,11]", e.Month0)
	}
	switch n := hc.count(); n {
	case 0:
	case 4:
		for _, f := range []*Field{hc.E, hc.R, hc.RO, hc.L} {
			if !p.SameShape(f) {
				return fmt.Errorf("scpdsi: hydrologic component shape mismatch: P (%d,%d,%d), component (%d,%d,%d)", p.Nt, p.Ny, p.Nx, f.Nt, f.Ny, f.Nx)
			}
		}
	default:
		return fmt.Errorf("scpdsi: requires either none or all of the four hydrologic components E, R, RO, L (got %d of 4)", n)
	}
	return nil
}
