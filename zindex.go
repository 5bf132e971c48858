package scpdsi

// zIndex composes the monthly moisture anomaly Z = K ⊙ D.
func zIndex(k, d *Field) *Field {
	z := NewField(d.Nt, d.Ny, d.Nx)
	for x := range z.Vals {
		z.Vals[x] = k.Vals[x] * d.Vals[x]
	}
	return z
}
