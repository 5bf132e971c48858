package scpdsi

import "math"

// Field is a time-stacked grid of monthly values stored row-major:
// Vals[(k*Ny+i)*Nx+j] for time step k, row i, column j. Missing cells are
// NaN and propagate through arithmetic.
type Field struct {
	Nt, Ny, Nx int
	Vals       []float64
}

// NewField allocates a zeroed field of shape (nt, ny, nx).
func NewField(nt, ny, nx int) *Field {
	return &Field{Nt: nt, Ny: ny, Nx: nx, Vals: make([]float64, nt*ny*nx)}
}

func (f *Field) At(k, i, j int) float64     { return f.Vals[(k*f.Ny+i)*f.Nx+j] }
func (f *Field) Set(k, i, j int, v float64) { f.Vals[(k*f.Ny+i)*f.Nx+j] = v }

func (f *Field) SameShape(o *Field) bool {
	return o != nil && f.Nt == o.Nt && f.Ny == o.Ny && f.Nx == o.Nx
}

func (f *Field) Copy() *Field {
	o := NewField(f.Nt, f.Ny, f.Nx)
	copy(o.Vals, f.Vals)
	return o
}

// Grid holds one value per cell (Ny rows by Nx columns).
type Grid struct {
	Ny, Nx int
	Vals   []float64
}

func NewGrid(ny, nx int) *Grid {
	return &Grid{Ny: ny, Nx: nx, Vals: make([]float64, ny*nx)}
}

// NewGridOf allocates a grid with every cell set to v.
func NewGridOf(ny, nx int, v float64) *Grid {
	g := NewGrid(ny, nx)
	for c := range g.Vals {
		g.Vals[c] = v
	}
	return g
}

func (g *Grid) At(i, j int) float64 { return g.Vals[i*g.Nx+j] }

// Climatology returns the per-cell time mean, skipping NaN entries. Cells
// with no valid samples return NaN.
func (f *Field) Climatology() *Grid {
	nn := f.Ny * f.Nx
	g := NewGrid(f.Ny, f.Nx)
	for c := 0; c < nn; c++ {
		s, n := 0., 0
		for k := 0; k < f.Nt; k++ {
			if v := f.Vals[k*nn+c]; !math.IsNaN(v) {
				s += v
				n++
			}
		}
		if n == 0 {
			g.Vals[c] = math.NaN()
		} else {
			g.Vals[c] = s / float64(n)
		}
	}
	return g
}
