package scpdsi

// Components carries the optional water-balance fields [mm/month]. They are
// supplied as a complete set or not at all.
type Components struct {
	E  *Field // actual evaporation
	R  *Field // recharge
	RO *Field // runoff
	L  *Field // loss
}

func (hc *Components) count() int {
	if hc == nil {
		return 0
	}
	n := 0
	for _, f := range []*Field{hc.E, hc.R, hc.RO, hc.L} {
		if f != nil {
			n++
		}
	}
	return n
}

// cafecDeparture computes the CAFEC (climatically appropriate for existing
// conditions) expected precipitation and the moisture departure D = P - P̂.
// Without the hydrologic components, P̂ falls back to a proportional
// adjustment on the EP anomaly; with them, P̂ tracks the climatological water
// balance plus each component's current deviation. Inputs are assumed
// validated (see Engine.validate).
func cafecDeparture(p, ep *Field, hc *Components) (phat, d *Field) {
	nn := p.Ny * p.Nx
	phat, d = NewField(p.Nt, p.Ny, p.Nx), NewField(p.Nt, p.Ny, p.Nx)
	climP := p.Climatology()

	if hc.count() == 0 {
		climEP := ep.Climatology()
		for k := 0; k < p.Nt; k++ {
			for c := 0; c < nn; c++ {
				phat.Vals[k*nn+c] = climP.Vals[c] + (ep.Vals[k*nn+c]-climEP.Vals[c])*.5
			}
		}
	} else {
		climE, climR, climRO, climL := hc.E.Climatology(), hc.R.Climatology(), hc.RO.Climatology(), hc.L.Climatology()
		for k := 0; k < p.Nt; k++ {
			for c := 0; c < nn; c++ {
				de := hc.E.Vals[k*nn+c] - climE.Vals[c]
				dr := hc.R.Vals[k*nn+c] - climR.Vals[c]
				dro := hc.RO.Vals[k*nn+c] - climRO.Vals[c]
				dl := hc.L.Vals[k*nn+c] - climL.Vals[c]
				phat.Vals[k*nn+c] = climP.Vals[c] + (climE.Vals[c] + de) + (climR.Vals[c] + dr) + (climRO.Vals[c] + dro) - (climL.Vals[c] + dl)
			}
		}
	}

	for x := range d.Vals {
		d.Vals[x] = p.Vals[x] - phat.Vals[x]
	}
	return phat, d
}
