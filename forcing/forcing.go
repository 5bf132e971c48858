package forcing

import (
	"time"

	"github.com/maseology/scpdsi"
)

// Forcing carries monthly drought-model inputs on a (time, row, col) grid.
// The water-balance components are optional; when present they form a
// complete set.
type Forcing struct {
	T           []time.Time   // month starts
	P, EP       *scpdsi.Field // precipitation, potential evapotranspiration [mm/month]
	E, R, RO, L *scpdsi.Field // evaporation, recharge, runoff, loss [mm/month]
}

// Components returns the water-balance component set, nil when none were
// supplied.
func (f *Forcing) Components() *scpdsi.Components {
	if f.E == nil && f.R == nil && f.RO == nil && f.L == nil {
		return nil
	}
	return &scpdsi.Components{E: f.E, R: f.R, RO: f.RO, L: f.L}
}
