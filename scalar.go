package simplex

import (
	"fmt"
	"math"
	"math/big"
)

// Regime selects the numeric representation a Dictionary computes in.
type Regime int

const (
	// RegimeRational stores every entry as an exact big.Rat.
	RegimeRational Regime = iota
	// RegimeInteger stores every entry as a big.Int scaled by lastPivot
	// (Bareiss-style deferred division, see Dictionary.integerPivot).
	RegimeInteger
	// RegimeFloat stores every entry as an IEEE-754 float64.
	RegimeFloat
)

func (r Regime) String() string {
	switch r {
	case RegimeRational:
		return "rational"
	case RegimeInteger:
		return "integer"
	case RegimeFloat:
		return "float"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// Scalar is the tagged-variant numeric type the dictionary engine computes
// over. Exactly one concrete implementation is in play for a given
// Dictionary; pivot rules and the driver never inspect the concrete type,
// only Dictionary's own pivot bodies do (the Integer pivot is algebraically
// distinct and must not be merged with the Rational/Float one).
type Scalar interface {
	Add(other Scalar) Scalar
	Sub(other Scalar) Scalar
	Mul(other Scalar) Scalar
	Neg() Scalar
	// Div is exact for Rational, Euclidean division (big.Int.Div) for
	// Integer, and IEEE division for Float.
	Div(other Scalar) Scalar
	// Sign returns -1, 0 or +1 with no ε-tolerance applied.
	Sign() int
	// IsZero reports whether the value should be treated as zero. For
	// Float it is true when |v| <= eps; for Rational/Integer eps is
	// ignored and the test is exact.
	IsZero(eps float64) bool
	// Zero returns the additive identity in the same concrete regime.
	Zero() Scalar
	// Rat returns the exact rational value, used by reporting.
	Rat() *big.Rat
	Float64() float64
	String() string
}

func zeroScalar(r Regime) Scalar {
	switch r {
	case RegimeRational:
		return ratScalar{big.NewRat(0, 1)}
	case RegimeInteger:
		return intScalar{big.NewInt(0)}
	case RegimeFloat:
		return floatScalar(0)
	default:
		panic(fmt.Sprintf("simplex: unknown regime %v", r))
	}
}

// scalarFromFloat64 converts a single LP input entry (c, A or b element)
// into the dictionary's regime, mirroring the source's per-entry dtype
// conversion (dictionary.py __init__).
func scalarFromFloat64(r Regime, v float64) Scalar {
	switch r {
	case RegimeRational:
		rat := new(big.Rat).SetFloat64(v)
		if rat == nil {
			panic(fmt.Sprintf("simplex: %v is not representable as a rational", v))
		}
		return ratScalar{rat}
	case RegimeInteger:
		bf := new(big.Float).SetFloat64(v)
		bi, acc := bf.Int(nil)
		if acc != big.Exact {
			panic(fmt.Sprintf("simplex: integer regime requires integral input, got %v", v))
		}
		return intScalar{bi}
	case RegimeFloat:
		return floatScalar(v)
	default:
		panic(fmt.Sprintf("simplex: unknown regime %v", r))
	}
}

// ratScalar is the Rational regime: exact arithmetic over math/big.Rat,
// always kept in lowest terms (big.Rat's own invariant).
type ratScalar struct{ v *big.Rat }

func (a ratScalar) other(s Scalar) *big.Rat { return s.(ratScalar).v }

func (a ratScalar) Add(b Scalar) Scalar { return ratScalar{new(big.Rat).Add(a.v, a.other(b))} }
func (a ratScalar) Sub(b Scalar) Scalar { return ratScalar{new(big.Rat).Sub(a.v, a.other(b))} }
func (a ratScalar) Mul(b Scalar) Scalar { return ratScalar{new(big.Rat).Mul(a.v, a.other(b))} }
func (a ratScalar) Neg() Scalar         { return ratScalar{new(big.Rat).Neg(a.v)} }
func (a ratScalar) Div(b Scalar) Scalar {
	divisor := a.other(b)
	if divisor.Sign() == 0 {
		panic("simplex: division by zero in rational regime")
	}
	return ratScalar{new(big.Rat).Quo(a.v, divisor)}
}
func (a ratScalar) Sign() int             { return a.v.Sign() }
func (a ratScalar) IsZero(eps float64) bool { return a.v.Sign() == 0 }
func (a ratScalar) Zero() Scalar          { return ratScalar{big.NewRat(0, 1)} }
func (a ratScalar) Rat() *big.Rat         { return new(big.Rat).Set(a.v) }
func (a ratScalar) Float64() float64      { f, _ := a.v.Float64(); return f }
func (a ratScalar) String() string        { return a.v.RatString() }

// intScalar is the Integer regime: arbitrary-precision integers, combined
// with Dictionary.lastPivot to represent the true rational value as
// v/lastPivot (the Bareiss deferred-division scheme).
type intScalar struct{ v *big.Int }

func (a intScalar) other(s Scalar) *big.Int { return s.(intScalar).v }

func (a intScalar) Add(b Scalar) Scalar { return intScalar{new(big.Int).Add(a.v, a.other(b))} }
func (a intScalar) Sub(b Scalar) Scalar { return intScalar{new(big.Int).Sub(a.v, a.other(b))} }
func (a intScalar) Mul(b Scalar) Scalar { return intScalar{new(big.Int).Mul(a.v, a.other(b))} }
func (a intScalar) Neg() Scalar         { return intScalar{new(big.Int).Neg(a.v)} }

// Div performs Euclidean division (big.Int.Div), which agrees with floor
// division for a positive divisor and on exact quotients. It is only ever
// used where the algorithm guarantees exact divisibility (the Bareiss pivot); a nonzero remainder
// is a fatal programmer error, checked when built with the debugdiv tag.
func (a intScalar) Div(b Scalar) Scalar {
	divisor := a.other(b)
	if divisor.Sign() == 0 {
		panic("simplex: division by zero in integer regime")
	}
	checkExactDivision(a.v, divisor)
	q := new(big.Int).Div(a.v, divisor)
	return intScalar{q}
}
func (a intScalar) Sign() int             { return a.v.Sign() }
func (a intScalar) IsZero(eps float64) bool { return a.v.Sign() == 0 }
func (a intScalar) Zero() Scalar          { return intScalar{big.NewInt(0)} }
func (a intScalar) Rat() *big.Rat         { return new(big.Rat).SetInt(a.v) }
func (a intScalar) Float64() float64      { f := new(big.Float).SetInt(a.v); v, _ := f.Float64(); return v }
func (a intScalar) String() string        { return a.v.String() }

// floatScalar is the Float regime: plain IEEE-754 float64.
type floatScalar float64

func (a floatScalar) other(s Scalar) float64 { return float64(s.(floatScalar)) }

func (a floatScalar) Add(b Scalar) Scalar   { return floatScalar(float64(a) + a.other(b)) }
func (a floatScalar) Sub(b Scalar) Scalar   { return floatScalar(float64(a) - a.other(b)) }
func (a floatScalar) Mul(b Scalar) Scalar   { return floatScalar(float64(a) * a.other(b)) }
func (a floatScalar) Neg() Scalar           { return floatScalar(-float64(a)) }
func (a floatScalar) Div(b Scalar) Scalar   { return floatScalar(float64(a) / a.other(b)) }
func (a floatScalar) Sign() int {
	switch {
	case float64(a) > 0:
		return 1
	case float64(a) < 0:
		return -1
	default:
		return 0
	}
}
func (a floatScalar) IsZero(eps float64) bool { return math.Abs(float64(a)) <= eps }
func (a floatScalar) Zero() Scalar            { return floatScalar(0) }
func (a floatScalar) Rat() *big.Rat           { return new(big.Rat).SetFloat64(float64(a)) }
func (a floatScalar) Float64() float64        { return float64(a) }
func (a floatScalar) String() string          { return fmt.Sprintf("%g", float64(a)) }

// checkExactDivision panics if a is not exactly divisible by b. Compiled
// out (no-op) unless built with -tags debugdiv, since it doubles the cost
// of every integer pivot step.
func checkExactDivision(a, b *big.Int) {
	if !debugCheckIntegerDivision {
		return
	}
	_, rem := new(big.Int).QuoRem(a, b, new(big.Int))
	if rem.Sign() != 0 {
		panic(fmt.Sprintf("simplex: non-exact integer division %v / %v (remainder %v)", a, b, rem))
	}
}
