// Package gamma implements gamma transfer tables and the curve computation
// used to derive adjusted tables from a display's baseline.
package gamma

// MinBrightness is the lowest brightness the engine will ever apply. A fully
// black multiplicative table cannot be recovered from by looking at the
// screen, so the floor keeps the display usable.
const MinBrightness = 0.05

// Table is a gamma transfer table: one normalized intensity sample per input
// level per channel, values in [0, 1]. All three channels have the same
// length.
type Table struct {
	R, G, B []float32
}

// NewTable allocates a zeroed table with size samples per channel.
func NewTable(size int) *Table {
	return &Table{
		R: make([]float32, size),
		G: make([]float32, size),
		B: make([]float32, size),
	}
}

// Identity returns a linear table mapping each input level to itself.
func Identity(size int) *Table {
	t := NewTable(size)
	for i := 0; i < size; i++ {
		v := float32(i) / float32(size-1)
		t.R[i], t.G[i], t.B[i] = v, v, v
	}
	return t
}

// Size returns the number of samples per channel.
func (t *Table) Size() int {
	return len(t.R)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.Size())
	copy(c.R, t.R)
	copy(c.G, t.G)
	copy(c.B, t.B)
	return c
}

// Equal reports whether two tables are bit-identical.
func (t *Table) Equal(o *Table) bool {
	if t.Size() != o.Size() {
		return false
	}
	for i := range t.R {
		if t.R[i] != o.R[i] || t.G[i] != o.G[i] || t.B[i] != o.B[i] {
			return false
		}
	}
	return true
}

// Curve derives a new table from baseline by scaling every sample by
// brightness and then applying the filter's channel weights at the given
// intensity. Brightness is clamped to [MinBrightness, 1] before use; the
// intensity is expected to already be within [0, 1] (the request boundary
// clamps it). Every output sample is clamped to [0, 1]. The function is
// deterministic and has no state, so identical inputs always produce an
// identical table.
func Curve(baseline *Table, brightness float32, filter Filter, intensity float32) *Table {
	brightness = Clamp(brightness, MinBrightness, 1)
	wr, wg, wb := filter.weights(intensity)
	t := NewTable(baseline.Size())
	for i := range baseline.R {
		t.R[i] = Clamp(baseline.R[i]*brightness*wr, 0, 1)
		t.G[i] = Clamp(baseline.G[i]*brightness*wg, 0, 1)
		t.B[i] = Clamp(baseline.B[i]*brightness*wb, 0, 1)
	}
	return t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
