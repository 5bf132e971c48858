package scpdsi

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Sample is one duration-coefficient draw scored against the self-calibrated
// index.
type Sample struct {
	P0, Q0, Cap float64
	NSE         float64
}

// SampleDurations sweeps n Latin hypercube draws of the default duration
// coefficients and severity cap, scoring each uncalibrated run against the
// self-calibrated index. The sample space and scores are written to outcsv
// when given.
func SampleDurations(p, ep *Field, hc *Components, n int, seed int64, outcsv string) ([]Sample, error) {
	eng := DefaultEngine()
	_, ref, _, err := eng.Compute(p, ep, hc, true)
	if err != nil {
		return nil, err
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	sp := smpln.NewLHC(rng, n, 3, false)

	smpls := make([]Sample, n)
	uiprogress.Start()
	bar := uiprogress.AddBar(n).AppendCompleted().PrependElapsed()
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			ev := Engine{
				P0:     mmaths.LinearTransform(pMin, pMax, sp.U[0][k]),
				Q0:     mmaths.LinearTransform(qMin, qMax, sp.U[1][k]),
				Cap:    mmaths.LinearTransform(5., 15., sp.U[2][k]),
				Month0: eng.Month0,
			}
			_, sim, _, _ := ev.Compute(p, ep, hc, false)
			smpls[k] = Sample{ev.P0, ev.Q0, ev.Cap, fieldNSE(ref, sim)}
			bar.Incr()
		}(k)
	}
	wg.Wait()
	uiprogress.Stop()

	if len(outcsv) > 0 {
		lns := make([]string, 0, n+1)
		lns = append(lns, "sample,p0,q0,cap,nse")
		for k, s := range smpls {
			lns = append(lns, fmt.Sprintf("%d,%f,%f,%f,%f", k, s.P0, s.Q0, s.Cap, s.NSE))
		}
		mmio.WriteLines(outcsv, lns)
	}
	return smpls, nil
}
