package scpdsi

import "sync"

// cellState is the running severity of a single cell.
type cellState struct {
	x float64
}

// step advances the first-order recurrence x' = p·x + q·z and returns the
// new state.
func (s *cellState) step(p, q, z float64) float64 {
	s.x = p*s.x + q*z
	return s.x
}

// recurse propagates the Z-index through the severity recurrence, one
// independent state machine per cell, starting from zero at time step 0.
// With nil grids the engine defaults (P0,Q0) apply everywhere. Rows are
// fanned out to goroutines; no cell reads another cell's state. The stored
// index is clipped to ±Cap, the running state is not.
func (e *Engine) recurse(z *Field, p, q *Grid) *Field {
	nn := z.Ny * z.Nx
	out := NewField(z.Nt, z.Ny, z.Nx)
	var wg sync.WaitGroup
	wg.Add(z.Ny)
	for i := 0; i < z.Ny; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < z.Nx; j++ {
				c := i*z.Nx + j
				pc, qc := e.P0, e.Q0
				if p != nil {
					pc, qc = p.Vals[c], q.Vals[c]
				}
				var s cellState
				for k := 1; k < z.Nt; k++ {
					v := s.step(pc, qc, z.Vals[k*nn+c])
					if v > e.Cap {
						v = e.Cap
					} else if v < -e.Cap {
						v = -e.Cap
					}
					out.Vals[k*nn+c] = v
				}
			}
		}(i)
	}
	wg.Wait()
	return out
}
