package forcing

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"
	"github.com/maseology/scpdsi"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prescott-type coefficients scaling extraterrestrial to global radiation
// (Novák, 2012, pg.232), assuming half-sunny months.
const (
	prescottA, prescottB = .27, .52
	sunshineFrac         = .5
)

// Synthetic generates nt months of gamma-distributed precipitation with a
// Makkink potential evapotranspiration at latitude latDeg, plus a consistent
// derived set of water-balance components. Monthly EP is the daily rate
// scaled by days in month.
func Synthetic(nt, ny, nx int, latDeg float64, seed uint64) *Forcing {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	gP := distuv.Gamma{Alpha: 2., Beta: 1. / 40., Src: src} // mean 80 mm/month
	gT := distuv.Normal{Mu: 0., Sigma: 2., Src: src}
	gL := distuv.Uniform{Min: 0., Max: 2., Src: src}

	si := solirrad.New(latDeg, 0., 0.)

	f := &Forcing{
		T:  make([]time.Time, nt),
		P:  scpdsi.NewField(nt, ny, nx),
		EP: scpdsi.NewField(nt, ny, nx),
		E:  scpdsi.NewField(nt, ny, nx),
		R:  scpdsi.NewField(nt, ny, nx),
		RO: scpdsi.NewField(nt, ny, nx),
		L:  scpdsi.NewField(nt, ny, nx),
	}
	t0 := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for k := 0; k < nt; k++ {
		dt := t0.AddDate(0, k, 0)
		f.T[k] = dt
		ndays := float64(daysIn(dt))
		doy := dt.AddDate(0, 0, 14).YearDay() // mid-month
		Kg := etRadToGlobal(si.PSIdaily(doy), sunshineFrac)
		tmean := 15. - 11.*math.Cos(2.*math.Pi*float64(doy)/365.24) // seasonal cycle
		for i := 0; i < ny; i++ {
			for j := 0; j < nx; j++ {
				tm := tmean + gT.Rand()
				epd := pet.Makkink(Kg, tm, 101300., .61, -1.2e-4) * 86400. * 1000. // [mm/d]
				if epd < 0. {
					epd = 0.
				}
				ep := epd * ndays
				pv := gP.Rand()
				ev := math.Min(ep, .7*pv)
				ro := math.Max(pv-ev-10., 0.)
				rc := math.Max(pv-ev-ro, 0.)

				f.P.Set(k, i, j, pv)
				f.EP.Set(k, i, j, ep)
				f.E.Set(k, i, j, ev)
				f.R.Set(k, i, j, rc)
				f.RO.Set(k, i, j, ro)
				f.L.Set(k, i, j, gL.Rand())
			}
		}
	}
	return f
}

func etRadToGlobal(Ke, nN float64) float64 {
	return Ke * (prescottA + prescottB*nN)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
