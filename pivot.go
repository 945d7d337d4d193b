package simplex

import "math/big"

// PivotRule picks the (entering, leaving) pair for one simplex step, or
// signals optimal / unbounded via nil, mirroring pivotrules.py's
// (entering, leaving) contract:
//
//	(nil, nil)      -> dictionary is optimal
//	(k, nil)        -> dictionary is unbounded
//	(k, l)          -> pivot with N[k] entering, B[l] leaving
type PivotRule func(d *Dictionary, eps float64) (entering, leaving *int)

func ptr(i int) *int { return &i }

// Bland chooses the leftmost objective-row column with a strictly
// positive (eps-corrected) coefficient as entering, and the min-ratio row
// as leaving. It alone guarantees termination (spec.md §9); the driver
// falls back to it once cycling risk is detected.
func Bland(d *Dictionary, eps float64) (entering, leaving *int) {
	for col := 1; col < d.n+1; col++ {
		value := epsCorrect(d.at(0, col), eps)
		if value.Sign() <= 0 {
			continue
		}
		entering = ptr(col - 1)
		break
	}
	if entering == nil {
		return nil, nil
	}
	leaving, _ = leavingVariable(d, eps, *entering)
	return entering, leaving
}

// LargestCoefficient chooses the column with the greatest strictly
// positive (eps-corrected) objective coefficient as entering (last column
// wins ties), and the min-ratio row as leaving.
func LargestCoefficient(d *Dictionary, eps float64) (entering, leaving *int) {
	best := zeroScalar(d.regime)
	for col := 1; col < d.n+1; col++ {
		value := epsCorrect(d.at(0, col), eps)
		if value.Sign() > 0 && compare(value, best) >= 0 {
			best = value
			entering = ptr(col - 1)
		}
	}
	if entering == nil {
		return nil, nil
	}
	leaving, _ = leavingVariable(d, eps, *entering)
	return entering, leaving
}

// LargestIncrease chooses the (entering, leaving) pair that maximizes the
// true objective-value increase C[0,col]*ratio, across every column with a
// positive objective coefficient. A column with no constraining row
// signals UNBOUNDED immediately (entering present, leaving nil).
func LargestIncrease(d *Dictionary, eps float64) (entering, leaving *int) {
	var bestIncrease *big.Rat
	for col := 1; col < d.n+1; col++ {
		rawCoefficient := d.at(0, col)
		if epsCorrect(rawCoefficient, eps).Sign() <= 0 {
			continue
		}
		l, ratio := leavingVariable(d, eps, col-1)
		if l == nil {
			return ptr(col - 1), nil
		}
		// The increase uses the raw (not eps-corrected) coefficient,
		// matching pivotrules.py:127's `d.C[0, col] * ratio`.
		increase := new(big.Rat).Mul(rawCoefficient.Rat(), ratio)
		if bestIncrease == nil || increase.Cmp(bestIncrease) > 0 {
			bestIncrease = increase
			entering = ptr(col - 1)
			leaving = l
		}
	}
	return entering, leaving
}

// leavingVariable is the shared min-ratio subroutine of spec.md §4.2: for
// entering column k, find the row that most constrains its growth. Returns
// (nil, unbounded-sentinel) if no row constrains it. Ratios are exact
// rationals in every regime, so the Integer regime compares true ratios
// rather than rounded integer quotients.
func leavingVariable(d *Dictionary, eps float64, entering int) (leaving *int, ratio *big.Rat) {
	rows := d.numRows()
	var best *big.Rat
	for row := 1; row < rows; row++ {
		a := epsCorrect(d.at(row, entering+1), eps)
		if a.Sign() >= 0 {
			continue
		}
		b := epsCorrect(d.at(row, 0), eps)
		r := new(big.Rat).Quo(b.Rat(), a.Neg().Rat())
		if best == nil || r.Cmp(best) < 0 {
			best = r
			leaving = ptr(row - 1)
		}
	}
	if leaving == nil {
		// No row constrains the entering variable: unbounded. The ratio
		// is meaningless here and every caller checks leaving == nil
		// before touching it.
		return nil, nil
	}
	return leaving, best
}

// epsCorrect returns the regime's zero value when v.IsZero(eps), v
// otherwise; a no-op for the exact regimes (eps is ignored there).
func epsCorrect(v Scalar, eps float64) Scalar {
	if v.IsZero(eps) {
		return v.Zero()
	}
	return v
}

// compare returns -1, 0, +1 as a<b, a==b, a>b, via the difference's sign
// (exact for Rational/Integer, a plain float64 subtraction for Float).
func compare(a, b Scalar) int {
	return a.Sub(b).Sign()
}

