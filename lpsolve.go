package simplex

import (
	"github.com/pkg/errors"
)

// Result is the terminal outcome of a solve: there are no recoverable
// errors at this level, only these three values (spec.md §7).
type Result int

const (
	Optimal Result = iota
	Infeasible
	Unbounded
)

func (r Result) String() string {
	switch r {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	default:
		return "UNKNOWN"
	}
}

// degenerateStepsBeforeAntiCycle is the number of consecutive degenerate
// pivots the driver tolerates under the configured rule before switching
// to Bland's rule for the remainder of the solve (spec.md §4.3, §9).
const degenerateStepsBeforeAntiCycle = 10

// Options configures a Solve call. The zero value is not valid; use
// DefaultOptions as a starting point.
type Options struct {
	Regime Regime
	Eps    float64
	Rule   PivotRule
	// Trace, if non-nil, receives a line of text for every pivot decision
	// and pivot applied -- the Go-native form of the source's
	// verbose=True trace (see SPEC_FULL.md §4.5). Silent by default.
	Trace func(format string, args ...any)
}

// DefaultOptions mirrors lp_solve's keyword defaults
// (dtype=Fraction, eps=0, pivotrule=bland, lpsolve.py:13).
func DefaultOptions() Options {
	return Options{
		Regime: RegimeRational,
		Eps:    0,
		Rule:   Bland,
	}
}

func (o Options) trace(format string, args ...any) {
	if o.Trace != nil {
		o.Trace(format, args...)
	}
}

// Solve runs the two-phase simplex algorithm on the standard-form LP
// maximize c.x subject to Ax <= b, x >= 0, returning the terminal Result
// and, when OPTIMAL, the optimal Dictionary.
func Solve(c []float64, A [][]float64, b []float64, opts Options) (Result, *Dictionary, error) {
	if opts.Rule == nil {
		return 0, nil, errors.New("simplex: Options.Rule must not be nil")
	}
	if err := validateShapes(c, A, b); err != nil {
		return 0, nil, err
	}

	if allNonNegative(b) {
		opts.trace("all constants are >= 0, running single-phase simplex")
		d := newStandardDictionary(c, A, b, opts.Regime)
		result, d := simplexLoop(d, opts)
		return result, d, nil
	}

	result, auxDict := phaseOne(A, b, opts)
	opts.trace("phase one result: %v", result)
	if result != Optimal {
		return Infeasible, nil, nil
	}
	if epsCorrect(auxDict.at(0, 0), opts.Eps).Sign() < 0 {
		return Infeasible, nil, nil
	}

	final := phaseTwo(auxDict, c, opts)
	result, final = simplexLoop(final, opts)
	return result, final, nil
}

func allNonNegative(b []float64) bool {
	for _, v := range b {
		if v < 0 {
			return false
		}
	}
	return true
}

// simplexLoop is the single-phase driver inner loop (lpsolve.py's
// simplex()): precondition-check feasibility, then repeatedly pivot with
// the configured rule, switching permanently to Bland once more than
// degenerateStepsBeforeAntiCycle consecutive pivots have been degenerate.
func simplexLoop(d *Dictionary, opts Options) (Result, *Dictionary) {
	if !d.Feasible(opts.Eps) {
		opts.trace("dictionary is infeasible before any pivot")
		return Infeasible, nil
	}

	rule := opts.Rule
	degenerateCount := 0

	entering, leaving := rule(d, opts.Eps)
	for entering != nil && leaving != nil {
		opts.trace("pivot entering=%s leaving=%s", d.names[d.N[*entering]], d.names[d.B[*leaving]])
		d.Pivot(*entering, *leaving)

		if d.Degenerate(opts.Eps) {
			degenerateCount++
			if degenerateCount > degenerateStepsBeforeAntiCycle {
				rule = Bland
			}
		} else {
			degenerateCount = 0
		}

		entering, leaving = rule(d, opts.Eps)
	}

	if entering != nil && leaving == nil {
		opts.trace("unbounded")
		return Unbounded, nil
	}
	return Optimal, d
}

// phaseOne builds the auxiliary dictionary, pivots the most-infeasible row
// in immediately to reach feasibility, and runs the driver on it
// (lpsolve.py:128-148).
func phaseOne(A [][]float64, b []float64, opts Options) (Result, *Dictionary) {
	aux := newAuxiliaryDictionary(A, b, opts.Regime)

	entering := len(aux.N) - 1
	leaving := mostInfeasibleRow(aux)
	opts.trace("auxiliary pivot-in entering=%d leaving=%d", entering, leaving)
	aux.Pivot(entering, leaving)

	result, aux := simplexLoop(aux, opts)
	if result != Optimal {
		return result, aux
	}

	if pos, ok := positionOfAuxiliaryVariable(aux); ok {
		// x0 is still basic at value 0 (degenerate): pivot it out using
		// the first nonbasic column, by convention
		// (lpsolve.py:144-148, phase_one's d.pivot(0, position_in_basis)).
		aux.Pivot(0, pos)
	}
	return result, aux
}

// mostInfeasibleRow returns the index (0-based, into B) of the most
// negative constant column entry, first occurrence winning ties
// (lpsolve.py:214-225, lowest_constraint_const).
func mostInfeasibleRow(d *Dictionary) int {
	lowest := zeroScalar(d.regime)
	row := 0
	for i := 0; i < d.m; i++ {
		v := d.at(i+1, 0)
		if compare(v, lowest) < 0 {
			lowest = v
			row = i
		}
	}
	return row
}

// positionOfAuxiliaryVariable reports whether x0 (the auxiliary variable,
// whose dictionary index is the last entry phase one's N started with) is
// currently basic, and if so at which position.
func positionOfAuxiliaryVariable(d *Dictionary) (int, bool) {
	auxIndex := d.numCols() - 1
	for i, bi := range d.B {
		if bi == auxIndex {
			return i, true
		}
	}
	return 0, false
}

// phaseTwo deletes the auxiliary variable's column, rewrites the objective
// row for the original problem, and substitutes every basic original
// variable's row into it (lpsolve.py:195-211), rederiving the
// accumulator from the dictionary invariant rather than the source's
// flagged-buggy accumulator (spec.md §9, DESIGN.md).
func phaseTwo(aux *Dictionary, c []float64, opts Options) *Dictionary {
	auxIndex := aux.numCols() - 1
	auxPos := -1
	for j, ni := range aux.N {
		if ni == auxIndex {
			auxPos = j
			break
		}
	}

	d := deleteColumn(aux, auxPos)

	regime := d.regime
	n := d.n
	cScalars := make([]Scalar, n)
	for j := 0; j < n; j++ {
		cScalars[j] = scalarFromFloat64(regime, c[j])
	}

	aggregate := make([]Scalar, n+1)
	for j := range aggregate {
		aggregate[j] = zeroScalar(regime)
	}

	for i, bi := range d.B {
		if bi <= n {
			coef := cScalars[bi-1]
			for j := 0; j <= n; j++ {
				aggregate[j] = aggregate[j].Add(d.at(i+1, j).Mul(coef))
			}
		}
	}

	// Direct objective coefficient of whatever variable currently sits at
	// column j+1 (d.N[j]): c[N[j]-1] for an original variable, 0 for a
	// slack. Indexed by the variable actually at that column, not by raw
	// column position -- the column/variable mapping is permuted by
	// every prior pivot, so position-based assignment (as in
	// lpsolve.py:201, flagged buggy by spec.md §9) would silently use
	// the wrong coefficient whenever a pivot has reordered N.
	//
	// Scaled by d.lastPivot to match I4 (dictionary.go: every stored
	// entry equals the true value times lastPivot) -- a no-op in the
	// Rational/Float regimes, where lastPivot == 1.
	d.set(0, 0, zeroScalar(regime))
	for j, ni := range d.N {
		if ni <= n {
			d.set(0, j+1, cScalars[ni-1].Mul(d.lastPivot))
		} else {
			d.set(0, j+1, zeroScalar(regime))
		}
	}
	for j := 0; j <= n; j++ {
		d.set(0, j, d.at(0, j).Add(aggregate[j]))
	}

	opts.trace("phase two dictionary:\n%s", d.Format())
	return d
}

// deleteColumn removes nonbasic position pos (and its matrix column) from
// d, returning a fresh Dictionary over one fewer nonbasic variable. This
// mirrors np.delete(d.N, pos), np.delete(d.C, pos+1, axis=1)
// (lpsolve.py:198-199).
func deleteColumn(d *Dictionary, pos int) *Dictionary {
	out := &Dictionary{regime: d.regime, m: d.m, n: d.n - 1, names: d.names, lastPivot: d.lastPivot}
	out.allocate(d.m, d.n-1)

	rows := d.numRows()
	for i := 0; i < rows; i++ {
		col := 0
		for j := 0; j < d.numCols(); j++ {
			if j == pos+1 {
				continue
			}
			out.set(i, col, d.at(i, j))
			col++
		}
	}

	out.N = make([]int, 0, len(d.N)-1)
	for j, ni := range d.N {
		if j == pos {
			continue
		}
		out.N = append(out.N, ni)
	}
	out.B = append([]int(nil), d.B...)

	return out
}
