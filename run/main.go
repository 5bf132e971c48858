package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/maseology/mmio"
	"github.com/maseology/scpdsi"
	"github.com/maseology/scpdsi/forcing"
)

func main() {

	const (
		nt, ny, nx = 360, 4, 5
		lat        = 43.6
		seed       = 2025
		outdir     = "out/"
		nsmpl      = 50
	)

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	frc := forcing.Synthetic(nt, ny, nx, lat, seed)
	tt.Print("synthetic forcing build complete\n")

	eng := scpdsi.DefaultEngine()
	z, pdsi, cal, err := eng.Compute(frc.P, frc.EP, frc.Components(), true)
	if err != nil {
		log.Fatalf(" scpdsi.Compute error: %v", err)
	}
	fmt.Printf(" calibration fallbacks: %d of %d cells\n", cal.Fallbacks, ny*nx)
	tt.Print("index computation complete\n")

	trend := scpdsi.LinearTrend(pdsi, 1./12.)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			fmt.Printf("%8.4f", trend.At(i, j))
		}
		fmt.Println()
	}

	mmio.MakeDir(outdir)
	if err := scpdsi.SaveToBins(outdir+"scpdsi.", z, pdsi, cal); err != nil {
		log.Fatalf(" scpdsi.SaveToBins error: %v", err)
	}
	tt.Print("results save complete\n")

	if _, err := scpdsi.SampleDurations(frc.P, frc.EP, frc.Components(), nsmpl, seed, outdir+"samplespace.csv"); err != nil {
		log.Fatalf(" scpdsi.SampleDurations error: %v", err)
	}
	tt.Print("duration-coefficient sweep complete\n")

	p0, q0, nse, err := scpdsi.OptimizeDefaults(frc.P, frc.EP, frc.Components(), seed)
	if err != nil {
		log.Fatalf(" scpdsi.OptimizeDefaults error: %v", err)
	}
	fmt.Printf("\n grid-best defaults: p0 = %.3f  q0 = %.3f  (NSE %.3f)\n", p0, q0, nse)
}
