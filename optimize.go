package scpdsi

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// OptimizeDefaults searches (SCE) for the global duration-coefficient pair
// whose uncalibrated index best reproduces the self-calibrated one, within
// the calibration clip ranges. A zero seed draws from the wall clock.
func OptimizeDefaults(p, ep *Field, hc *Components, seed int64) (p0, q0, nse float64, err error) {
	eng := DefaultEngine()
	_, ref, _, err := eng.Compute(p, ep, hc, true)
	if err != nil {
		return 0., 0., 0., err
	}

	rng := rand.New(mrg63k3a.New())
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng.Seed(seed)

	gen := func(u []float64) float64 {
		ev := Engine{
			P0:     mmaths.LinearTransform(pMin, pMax, u[0]),
			Q0:     mmaths.LinearTransform(qMin, qMax, u[1]),
			Cap:    eng.Cap,
			Month0: eng.Month0,
		}
		_, sim, _, _ := ev.Compute(p, ep, hc, false)
		return 1. - fieldNSE(ref, sim) // minimize
	}

	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), 2, rng, gen, true)
	p0 = mmaths.LinearTransform(pMin, pMax, uFinal[0])
	q0 = mmaths.LinearTransform(qMin, qMax, uFinal[1])
	ev := Engine{P0: p0, Q0: q0, Cap: eng.Cap, Month0: eng.Month0}
	_, sim, _, _ := ev.Compute(p, ep, hc, false)
	return p0, q0, fieldNSE(ref, sim), nil
}
