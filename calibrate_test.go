package scpdsi

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormEqSkipsNonFinite(t *testing.T) {
	var ne normEq
	ne.add(2., 3., 4.)
	ne.add(math.NaN(), 3., 4.) // x1 terms skipped, z1² still counts
	require.Equal(t, 4., ne.a11)
	require.Equal(t, 18., ne.a22)
	require.Equal(t, 6., ne.a12)
	require.Equal(t, 8., ne.b1)
	require.Equal(t, 24., ne.b2)
}

func TestNormEqDegenerate(t *testing.T) {
	var ne normEq
	for k := 0; k < 10; k++ {
		ne.add(0., 0., 0.)
	}
	_, _, ok := ne.solve()
	require.False(t, ok)
}

// An index series generated exactly by a known (p,q) pair must be recovered
// exactly by the least-squares fit.
func TestSelfCalibrateRecoversCoefficients(t *testing.T) {
	const (
		nt    = 120
		pTrue = .8
		qTrue = .2
	)
	rng := rand.New(rand.NewPCG(17, 23))
	z := NewField(nt, 1, 1)
	for k := 0; k < nt; k++ {
		z.Vals[k] = 4. * (rng.Float64() - .5)
	}
	pdsi0 := NewField(nt, 1, 1)
	x := 0.
	for k := 1; k < nt; k++ {
		x = pTrue*x + qTrue*z.Vals[k]
		pdsi0.Vals[k] = x
	}

	eng := DefaultEngine()
	cal := eng.selfCalibrate(z, pdsi0)
	assert.InDelta(t, pTrue, cal.P.At(0, 0), 1e-9)
	assert.InDelta(t, qTrue, cal.Q.At(0, 0), 1e-9)
	assert.Equal(t, 0, cal.Fallbacks)
	assert.InDelta(t, 1., cal.NSE.At(0, 0), 1e-9)
}

// A cell with zero anomaly for all time has a singular normal-equation
// system; it must silently retain the defaults and be counted.
func TestSelfCalibrateDegenerateFallback(t *testing.T) {
	const nt = 60
	z := NewField(nt, 1, 2)
	pdsi0 := NewField(nt, 1, 2)
	rng := rand.New(rand.NewPCG(2, 9))
	x := 0.
	for k := 1; k < nt; k++ { // cell 1 active, cell 0 all-zero
		z.Set(k, 0, 1, 6.*(rng.Float64()-.5))
		x = .75*x + .3*z.At(k, 0, 1)
		pdsi0.Set(k, 0, 1, x)
	}

	eng := DefaultEngine()
	cal := eng.selfCalibrate(z, pdsi0)
	assert.Equal(t, 1, cal.Fallbacks)
	assert.Equal(t, DefaultP, cal.P.At(0, 0))
	assert.Equal(t, DefaultQ, cal.Q.At(0, 0))
	assert.InDelta(t, .75, cal.P.At(0, 1), 1e-9)
	assert.InDelta(t, .3, cal.Q.At(0, 1), 1e-9)
}

// Solutions outside the physical ranges are clipped, not rejected.
func TestSelfCalibrateClipsToRanges(t *testing.T) {
	const nt = 120
	rng := rand.New(rand.NewPCG(5, 13))
	z := NewField(nt, 1, 1)
	for k := 0; k < nt; k++ {
		z.Vals[k] = 4. * (rng.Float64() - .5)
	}
	pdsi0 := NewField(nt, 1, 1)
	x := 0.
	for k := 1; k < nt; k++ { // persistence and gain both beyond their caps
		x = .3*x + .9*z.Vals[k]
		pdsi0.Vals[k] = x
	}

	eng := DefaultEngine()
	cal := eng.selfCalibrate(z, pdsi0)
	assert.Equal(t, pMin, cal.P.At(0, 0))
	assert.Equal(t, qMax, cal.Q.At(0, 0))
}
