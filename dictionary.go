package simplex

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Dictionary is the (m+1)x(n+1) Vanderbei-style tableau: row 0 is the
// objective, column 0 is the constant column, and for i,j>=1 the stored
// entry C[i,j] is the already-negated coefficient of nonbasic variable j
// in basic row i: x_B[i-1] = C[i,0] + sum_j C[i,j]*x_N[j-1].
//
// A Dictionary exclusively owns its matrix and index arrays; pivot rules
// borrow it read-only and the driver is the only mutator.
type Dictionary struct {
	regime Regime

	m int // number of basic variables / constraint rows
	n int // number of nonbasic variables

	// rows backs the Rational/Integer regimes: a dense [][]Scalar of
	// math/big values. nil when regime == RegimeFloat.
	rows [][]Scalar
	// float backs the Float regime via gonum/mat + gonum/floats. nil
	// otherwise.
	float *floatRowStore

	B []int
	N []int

	names []string

	// lastPivot holds the common denominator of C in the Integer regime
	// (I4): every stored entry equals the true rational value times
	// lastPivot. Held at 1 in the other regimes, so code that scales a
	// value by lastPivot to satisfy I4 works uniformly across regimes.
	lastPivot Scalar
}

// NewDictionary builds the standard-form dictionary for
// maximize c.x subject to Ax <= b, x >= 0.
func NewDictionary(c []float64, A [][]float64, b []float64, regime Regime) (*Dictionary, error) {
	if err := validateShapes(c, A, b); err != nil {
		return nil, err
	}
	return newStandardDictionary(c, A, b, regime), nil
}

// validateShapes checks the standard-form input boundary (spec.md §4.4):
// malformed shapes are a recoverable error here, not yet a Dictionary
// invariant violation.
func validateShapes(c []float64, A [][]float64, b []float64) error {
	if len(A) == 0 {
		return errors.New("simplex: A must have at least one row")
	}
	m := len(A)
	n := len(A[0])
	if n == 0 {
		return errors.New("simplex: A must have at least one column")
	}
	if len(c) != n {
		return errors.Errorf("simplex: len(c)=%d does not match A's column count %d", len(c), n)
	}
	if len(b) != m {
		return errors.Errorf("simplex: len(b)=%d does not match A's row count %d", len(b), m)
	}
	for i, row := range A {
		if len(row) != n {
			return errors.Errorf("simplex: row %d of A has %d columns, want %d", i, len(row), n)
		}
	}
	return nil
}

// newAuxiliaryDictionary builds the phase-one auxiliary dictionary for
// max -x0 s.t. Ax - x0*1 <= b, x,x0 >= 0 (shapes are assumed already
// validated by the caller, lpsolve.go's phaseOne).
func newAuxiliaryDictionary(A [][]float64, b []float64, regime Regime) *Dictionary {
	m := len(A)
	n := len(A[0])

	d := &Dictionary{regime: regime, m: m, n: n + 1}
	d.allocate(m, n+1)

	zero := zeroScalar(regime)
	d.set(0, 0, zero)
	for j := 1; j <= n; j++ {
		d.set(0, j, zero)
	}
	d.set(0, n+1, zero.Sub(oneScalar(regime)))
	for i := 0; i < m; i++ {
		d.set(i+1, 0, scalarFromFloat64(regime, b[i]))
		for j := 0; j < n; j++ {
			d.set(i+1, j+1, scalarFromFloat64(regime, -A[i][j]))
		}
		d.set(i+1, n+1, oneScalar(regime))
	}

	d.N = make([]int, n+1)
	for j := 0; j <= n; j++ {
		d.N[j] = j + 1
	}
	d.B = make([]int, m)
	for i := 0; i < m; i++ {
		d.B[i] = n + 2 + i
	}

	d.names = make([]string, n+m+2)
	d.names[0] = "z"
	for i := 1; i <= n; i++ {
		d.names[i] = varName(i)
	}
	d.names[n+1] = "x0"
	for i := 1; i <= m; i++ {
		d.names[n+1+i] = varName(n + i)
	}

	// lastPivot is kept at 1 outside the Integer regime so every regime can
	// uniformly scale a freshly-computed term by it (phaseTwo) without a
	// regime switch; only integerPivot ever changes it away from 1.
	d.lastPivot = oneScalar(regime)
	return d
}

func newStandardDictionary(c []float64, A [][]float64, b []float64, regime Regime) *Dictionary {
	m := len(A)
	n := len(c)

	d := &Dictionary{regime: regime, m: m, n: n}
	d.allocate(m, n)

	d.set(0, 0, zeroScalar(regime))
	for j := 0; j < n; j++ {
		d.set(0, j+1, scalarFromFloat64(regime, c[j]))
	}
	for i := 0; i < m; i++ {
		d.set(i+1, 0, scalarFromFloat64(regime, b[i]))
		for j := 0; j < n; j++ {
			d.set(i+1, j+1, scalarFromFloat64(regime, -A[i][j]))
		}
	}

	d.N = make([]int, n)
	for j := 0; j < n; j++ {
		d.N[j] = j + 1
	}
	d.B = make([]int, m)
	for i := 0; i < m; i++ {
		d.B[i] = n + 1 + i
	}

	d.names = make([]string, n+m+1)
	d.names[0] = "z"
	for i := 1; i <= n+m; i++ {
		d.names[i] = varName(i)
	}

	// lastPivot is kept at 1 outside the Integer regime so every regime can
	// uniformly scale a freshly-computed term by it (phaseTwo) without a
	// regime switch; only integerPivot ever changes it away from 1.
	d.lastPivot = oneScalar(regime)
	return d
}

func varName(i int) string {
	return "x" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b strings.Builder
	if i < 0 {
		b.WriteByte('-')
		i = -i
	}
	digits := []byte{}
	for i > 0 {
		digits = append(digits, byte('0'+i%10))
		i /= 10
	}
	for k := len(digits) - 1; k >= 0; k-- {
		b.WriteByte(digits[k])
	}
	return b.String()
}

func oneScalar(r Regime) Scalar {
	z := zeroScalar(r)
	switch r {
	case RegimeRational:
		return ratScalar{big.NewRat(1, 1)}
	case RegimeInteger:
		return intScalar{big.NewInt(1)}
	case RegimeFloat:
		return floatScalar(1)
	default:
		return z
	}
}

func (d *Dictionary) allocate(m, n int) {
	if d.regime == RegimeFloat {
		d.float = newFloatRowStore(m+1, n+1)
		return
	}
	rows := make([][]Scalar, m+1)
	for i := range rows {
		rows[i] = make([]Scalar, n+1)
	}
	d.rows = rows
}

func (d *Dictionary) at(i, j int) Scalar {
	if d.regime == RegimeFloat {
		return floatScalar(d.float.at(i, j))
	}
	return d.rows[i][j]
}

func (d *Dictionary) set(i, j int, v Scalar) {
	if d.regime == RegimeFloat {
		d.float.set(i, j, v.Float64())
		return
	}
	d.rows[i][j] = v
}

func (d *Dictionary) numRows() int {
	if d.regime == RegimeFloat {
		r, _ := d.float.dims()
		return r
	}
	return len(d.rows)
}

func (d *Dictionary) numCols() int {
	if d.regime == RegimeFloat {
		_, c := d.float.dims()
		return c
	}
	return len(d.rows[0])
}

// scaleRow multiplies every entry of row i by factor.
func (d *Dictionary) scaleRow(i int, factor Scalar) {
	if d.regime == RegimeFloat {
		d.float.scaleRow(i, factor.Float64())
		return
	}
	row := d.rows[i]
	for j := range row {
		row[j] = row[j].Mul(factor)
	}
}

// addScaledRow performs row(dst) += alpha * row(src).
func (d *Dictionary) addScaledRow(dst, src int, alpha Scalar) {
	if d.regime == RegimeFloat {
		d.float.addScaledRow(dst, src, alpha.Float64())
		return
	}
	dstRow, srcRow := d.rows[dst], d.rows[src]
	for j := range dstRow {
		dstRow[j] = dstRow[j].Add(srcRow[j].Mul(alpha))
	}
}

// divRow divides every entry of row i by divisor (only meaningful for the
// exact regimes; Integer regime relies on this being an exact floor
// division, see integerPivot).
func (d *Dictionary) divRow(i int, divisor Scalar) {
	if d.regime == RegimeFloat {
		d.float.scaleRow(i, 1/divisor.Float64())
		return
	}
	row := d.rows[i]
	for j := range row {
		row[j] = row[j].Div(divisor)
	}
}

// Pivot swaps N[entering] with B[leaving] and rewrites the dictionary to
// maintain its meaning, dispatching to the regime-appropriate algorithm
// (Bareiss for Integer, the shared elimination step for Rational/Float).
func (d *Dictionary) Pivot(entering, leaving int) {
	if d.regime == RegimeInteger {
		d.integerPivot(entering, leaving)
		return
	}
	d.floatOrRationalPivot(entering, leaving)
}

// floatOrRationalPivot implements spec.md §4.1's Float/Rational pivot.
func (d *Dictionary) floatOrRationalPivot(entering, leaving int) {
	a := d.at(leaving+1, entering+1)

	d.N[entering], d.B[leaving] = d.B[leaving], d.N[entering]

	negA := a.Neg()
	one := oneScalar(d.regime)
	recip := one.Div(negA)
	d.scaleRow(leaving+1, recip)
	d.set(leaving+1, entering+1, one.Div(a))

	rows := d.numRows()
	for i := 0; i < rows; i++ {
		if i == leaving+1 {
			continue
		}
		c := d.at(i, entering+1)
		d.addScaledRow(i, leaving+1, c)
		d.set(i, entering+1, c.Mul(d.at(leaving+1, entering+1)))
	}
}

// integerPivot implements spec.md §4.1's Bareiss integer-preserving pivot.
func (d *Dictionary) integerPivot(entering, leaving int) {
	a := d.at(leaving+1, entering+1)
	p := d.lastPivot

	d.N[entering], d.B[leaving] = d.B[leaving], d.N[entering]

	negA := a.Neg()
	rows := d.numRows()
	for i := 0; i < rows; i++ {
		if i != leaving+1 {
			d.scaleRow(i, negA)
		}
	}

	d.set(leaving+1, entering+1, p.Neg())

	for i := 0; i < rows; i++ {
		if i == leaving+1 {
			continue
		}
		c := d.at(i, entering+1)
		q := c.Div(negA)
		d.set(i, entering+1, zeroScalar(d.regime))
		d.addScaledRow(i, leaving+1, q)
	}

	for i := 0; i < rows; i++ {
		if i != leaving+1 {
			d.divRow(i, p)
		}
	}

	d.lastPivot = negA

	// A pivot on a positive coefficient (phase one's pivots on x0) leaves
	// lastPivot negative. Negating every row together with lastPivot keeps
	// I4 and lastPivot > 0, so the signs of stored entries stay the signs
	// of the true values that Feasible and the pivot rules test.
	if d.lastPivot.Sign() < 0 {
		minusOne := oneScalar(d.regime).Neg()
		for i := 0; i < rows; i++ {
			d.scaleRow(i, minusOne)
		}
		d.lastPivot = d.lastPivot.Neg()
	}
}

// Feasible reports whether C[i,0] >= 0 for every constraint row (I5),
// under eps.
func (d *Dictionary) Feasible(eps float64) bool {
	for i := 1; i < d.numRows(); i++ {
		v := d.at(i, 0)
		if v.IsZero(eps) {
			continue
		}
		if v.Sign() < 0 {
			return false
		}
	}
	return true
}

// Degenerate reports whether any basic variable is exactly zero under eps
// (the dictionary produced by the most recent pivot).
func (d *Dictionary) Degenerate(eps float64) bool {
	for i := 1; i < d.numRows(); i++ {
		if d.at(i, 0).IsZero(eps) {
			return true
		}
	}
	return false
}

// BasicSolution returns the current basic feasible solution as a length-n
// exact rational vector over the original variables.
func (d *Dictionary) BasicSolution() []*big.Rat {
	x := make([]*big.Rat, d.n)
	for i := range x {
		x[i] = big.NewRat(0, 1)
	}
	for i, bi := range d.B {
		if bi <= d.n {
			x[bi-1] = d.reportedValue(i + 1)
		}
	}
	return x
}

// Value returns the current objective value as an exact rational.
func (d *Dictionary) Value() *big.Rat {
	return d.reportedValue(0)
}

// reportedValue converts C[row,0] to an exact rational, dividing out
// lastPivot in the Integer regime (I4).
func (d *Dictionary) reportedValue(row int) *big.Rat {
	raw := d.at(row, 0).Rat()
	if d.regime == RegimeInteger {
		return new(big.Rat).Quo(raw, d.lastPivot.Rat())
	}
	return raw
}

func absScalar(v Scalar) Scalar {
	if v.Sign() < 0 {
		return v.Neg()
	}
	return v
}

// Format renders the dictionary in Vanderbei's equation form, matching the
// source's __str__ byte for byte (column widths right-padded to the widest
// value, Integer regime's lastPivot*-prefix on every row when != 1).
func (d *Dictionary) Format() string {
	varlen := 0
	for _, name := range d.names {
		if len(name) > varlen {
			varlen = len(name)
		}
	}

	coeflen := 0
	rows := d.numRows()
	cols := d.numCols()
	for i := 0; i < rows; i++ {
		if l := len(d.at(i, 0).String()); l > coeflen {
			coeflen = l
		}
		for j := 1; j < cols; j++ {
			if l := len(absScalar(d.at(i, j)).String()); l > coeflen {
				coeflen = l
			}
		}
	}

	prefixed := d.regime == RegimeInteger && d.lastPivot.Rat().Cmp(big.NewRat(1, 1)) != 0

	var b strings.Builder
	d.formatRow(&b, varlen, coeflen, 0, d.names[0], prefixed)
	for i := 0; i < d.m; i++ {
		b.WriteByte('\n')
		d.formatRow(&b, varlen, coeflen, i+1, d.names[d.B[i]], prefixed)
	}
	return b.String()
}

func (d *Dictionary) formatRow(b *strings.Builder, varlen, coeflen, row int, basicName string, prefixed bool) {
	if prefixed {
		b.WriteString(d.lastPivot.String())
		b.WriteByte('*')
	}
	b.WriteString(rjust(basicName+" = ", varlen+3))
	b.WriteString(rjust(d.at(row, 0).String(), coeflen))
	for j := 0; j < d.n; j++ {
		coef := d.at(row, j+1)
		if coef.Sign() > 0 {
			b.WriteString(" + ")
		} else {
			b.WriteString(" - ")
		}
		b.WriteString(rjust(absScalar(coef).String(), coeflen))
		b.WriteByte('*')
		b.WriteString(rjust(d.names[d.N[j]], varlen))
	}
}

func rjust(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
