package simplex

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// floatRowStore is the Float regime's backing store for a Dictionary's C
// matrix. It is the teacher's own CanonicalForm matrix plumbing (simplex.go
// builds every submatrix of its canonical form on *mat.Dense and drives the
// row-level arithmetic of Update/FindY/SolveBd through it) adapted into a
// single dense row store that a pivot can scale and axpy in place, the way
// Vanderbei's dictionary pivot operates row by row rather than through a
// basis inverse.
type floatRowStore struct {
	m *mat.Dense
}

func newFloatRowStore(rows, cols int) *floatRowStore {
	return &floatRowStore{m: mat.NewDense(rows, cols, nil)}
}

func (s *floatRowStore) dims() (int, int) { return s.m.Dims() }

func (s *floatRowStore) at(i, j int) float64 { return s.m.At(i, j) }

func (s *floatRowStore) set(i, j int, v float64) { s.m.Set(i, j, v) }

func (s *floatRowStore) row(i int) []float64 { return s.m.RawRowView(i) }

// scaleRow multiplies every entry of row i by c, via gonum/floats rather
// than a hand-rolled loop.
func (s *floatRowStore) scaleRow(i int, c float64) {
	floats.Scale(c, s.row(i))
}

// addScaledRow adds alpha*row(src) into row(dst) in place, the float
// counterpart of the Rational/Integer regimes' Scalar-based row op.
func (s *floatRowStore) addScaledRow(dst, src int, alpha float64) {
	floats.AddScaled(s.row(dst), alpha, s.row(src))
}

