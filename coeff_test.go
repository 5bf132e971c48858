package scpdsi

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomDeparture(nt, ny, nx int, seed uint64) *Field {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	d := NewField(nt, ny, nx)
	for x := range d.Vals {
		d.Vals[x] = 60. * (rng.Float64() - .5)
	}
	return d
}

// Every time step of the same calendar month carries the same coefficient.
func TestMonthlyCoeffGroupsByMonth(t *testing.T) {
	d := randomDeparture(36, 1, 2, 31)
	k := monthlyCoeffK(d, 0)
	for tt := 0; tt+12 < d.Nt; tt++ {
		for c := 0; c < 2; c++ {
			require.Equal(t, k.Vals[tt*2+c], k.Vals[(tt+12)*2+c], "step %d cell %d", tt, c)
		}
	}
}

// Shifting the calendar origin regroups the months and changes the result.
func TestMonthlyCoeffCalendarAlignment(t *testing.T) {
	d := randomDeparture(36, 1, 2, 31)
	k0 := monthlyCoeffK(d, 0)
	k1 := monthlyCoeffK(d, 1)
	assert.NotEqual(t, k0.Vals, k1.Vals)

	// dropping one leading month and advancing month0 by one must agree on
	// the overlap grouping: step t of the clipped series is calendar month
	// (t+1)%12 either way
	dc := NewField(35, 1, 2)
	copy(dc.Vals, d.Vals[2:])
	kc := monthlyCoeffK(dc, 1)
	for tt := 0; tt < 24; tt++ {
		for c := 0; c < 2; c++ {
			require.Equal(t, kc.Vals[tt*2+c], kc.Vals[(tt+12)*2+c])
		}
	}
}

// A zero departure everywhere degenerates every normalization; the sanitized
// coefficient is one.
func TestMonthlyCoeffZeroDeparture(t *testing.T) {
	d := NewField(24, 2, 2)
	k := monthlyCoeffK(d, 0)
	for x := range k.Vals {
		assert.Equal(t, 1., k.Vals[x])
	}
}

// Masked (all-NaN) cells sanitize to one; live cells stay finite.
func TestMonthlyCoeffMaskedCell(t *testing.T) {
	d := randomDeparture(24, 1, 2, 7)
	for tt := 0; tt < d.Nt; tt++ {
		d.Set(tt, 0, 1, math.NaN())
	}
	k := monthlyCoeffK(d, 0)
	for tt := 0; tt < d.Nt; tt++ {
		assert.Equal(t, 1., k.At(tt, 0, 1))
		v := k.At(tt, 0, 0)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

// The per-cell mean coefficient magnitude is moderated to one.
func TestMonthlyCoeffModeration(t *testing.T) {
	d := randomDeparture(48, 2, 3, 101)
	k := monthlyCoeffK(d, 0)
	nn := 6
	for c := 0; c < nn; c++ {
		s := 0.
		for tt := 0; tt < d.Nt; tt++ {
			s += math.Abs(k.Vals[tt*nn+c])
		}
		assert.InDelta(t, 1., s/float64(d.Nt), 1e-9, "cell %d", c)
	}
}
