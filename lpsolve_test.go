package simplex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionsWith(regime Regime, rule PivotRule) Options {
	opts := DefaultOptions()
	opts.Regime = regime
	opts.Rule = rule
	if regime == RegimeFloat {
		opts.Eps = 1e-9
	}
	return opts
}

// TestSolveBoundedOptimum is spec.md §8 scenario 1.
func TestSolveBoundedOptimum(t *testing.T) {
	c := []float64{5, 4, 3}
	A := [][]float64{{2, 3, 1}, {4, 1, 2}, {3, 4, 2}}
	b := []float64{5, 11, 8}

	result, d, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(13, 1), d.Value())

	sol := d.BasicSolution()
	require.Len(t, sol, 3)
	assert.Equal(t, big.NewRat(2, 1), sol[0])
	assert.Equal(t, big.NewRat(0, 1), sol[1])
	assert.Equal(t, big.NewRat(1, 1), sol[2])
}

// TestSolveTwoVariableLP is spec.md §8 scenario 2, checked in both the
// Rational and Integer regimes: the Integer dictionary must render with
// the 13* lastPivot prefix once solved.
func TestSolveTwoVariableLP(t *testing.T) {
	c := []float64{5, 2}
	A := [][]float64{{3, 1}, {2, 5}}
	b := []float64{7, 5}

	result, d, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(152, 13), d.Value())

	result, dInt, err := Solve(c, A, b, optionsWith(RegimeInteger, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(152, 13), dInt.Value())
	assert.Contains(t, dInt.Format(), "13*")
}

// TestSolveInfeasibleLP is spec.md §8 scenario 3.
func TestSolveInfeasibleLP(t *testing.T) {
	c := []float64{1, 3}
	A := [][]float64{{-1, -1}, {-1, 1}, {1, 2}}
	b := []float64{-3, -1, 2}

	result, d, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	assert.Equal(t, Infeasible, result)
	assert.Nil(t, d)
}

// TestSolveUnboundedLP is spec.md §8 scenario 4.
func TestSolveUnboundedLP(t *testing.T) {
	c := []float64{1, 3}
	A := [][]float64{{-1, -1}, {-1, 1}, {-1, 2}}
	b := []float64{-3, -1, 2}

	result, d, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	assert.Equal(t, Unbounded, result)
	assert.Nil(t, d)
}

// TestSolveNegativeBTwoPhase is spec.md §8 scenario 5: b has negative
// entries, forcing the phase-one auxiliary problem. Exercised in all three
// regimes, since phaseTwo's objective-row reconstruction must scale its
// direct term by lastPivot in the Integer regime (I4), and phaseOne's
// auxiliary-infeasibility check must apply ε-tolerance in the Float regime.
func TestSolveNegativeBTwoPhase(t *testing.T) {
	c := []float64{1, -1, 1}
	A := [][]float64{{2, -3, 1}, {2, -1, 2}, {-1, 1, -2}}
	b := []float64{-5, 4, -1}

	result, d, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(3, 5), d.Value())

	result, dInt, err := Solve(c, A, b, optionsWith(RegimeInteger, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(3, 5), dInt.Value())

	result, dFloat, err := Solve(c, A, b, optionsWith(RegimeFloat, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	want, _ := big.NewRat(3, 5).Float64()
	got, _ := dFloat.Value().Float64()
	assert.InDelta(t, want, got, 1e-7)
}

// TestSolveTriviallyUnboundedUnderAllRules is spec.md §8 scenario 6.
func TestSolveTriviallyUnboundedUnderAllRules(t *testing.T) {
	c := []float64{1}
	A := [][]float64{{-13}}
	b := []float64{2}

	for _, rule := range []PivotRule{Bland, LargestCoefficient, LargestIncrease} {
		result, d, err := Solve(c, A, b, optionsWith(RegimeRational, rule))
		require.NoError(t, err)
		assert.Equal(t, Unbounded, result)
		assert.Nil(t, d)
	}
}

// TestSolvePivotRuleEquivalence checks that Bland, Largest-Coefficient and
// Largest-Increase all reach the same optimal value on a bounded feasible
// LP, though they may visit different dictionaries along the way.
func TestSolvePivotRuleEquivalence(t *testing.T) {
	c := []float64{5, 4, 3}
	A := [][]float64{{2, 3, 1}, {4, 1, 2}, {3, 4, 2}}
	b := []float64{5, 11, 8}

	var values []*big.Rat
	for _, rule := range []PivotRule{Bland, LargestCoefficient, LargestIncrease} {
		result, d, err := Solve(c, A, b, optionsWith(RegimeRational, rule))
		require.NoError(t, err)
		require.Equal(t, Optimal, result)
		values = append(values, d.Value())
	}
	for _, v := range values[1:] {
		assert.Equal(t, 0, v.Cmp(values[0]))
	}
}

// TestSolveRegimeEquivalence checks that Rational, Integer and Float agree
// on the optimal value of the same bounded LP (Float within tolerance).
func TestSolveRegimeEquivalence(t *testing.T) {
	c := []float64{5, 4, 3}
	A := [][]float64{{2, 3, 1}, {4, 1, 2}, {3, 4, 2}}
	b := []float64{5, 11, 8}

	result, dRat, err := Solve(c, A, b, optionsWith(RegimeRational, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)

	result, dInt, err := Solve(c, A, b, optionsWith(RegimeInteger, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, 0, dRat.Value().Cmp(dInt.Value()))

	result, dFloat, err := Solve(c, A, b, optionsWith(RegimeFloat, Bland))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)

	want, _ := dRat.Value().Float64()
	got, _ := dFloat.Value().Float64()
	assert.InDelta(t, want, got, 1e-7*want)
}

func TestSolveRejectsNilRule(t *testing.T) {
	_, _, err := Solve([]float64{1}, [][]float64{{1}}, []float64{1}, Options{Regime: RegimeRational})
	assert.Error(t, err)
}

func TestSolveValidatesShapesBeforeDispatch(t *testing.T) {
	_, _, err := Solve([]float64{1, 2}, [][]float64{{1}}, []float64{1}, DefaultOptions())
	assert.Error(t, err)
}

func TestSolveTraceHookReceivesPivotLines(t *testing.T) {
	var lines []string
	opts := optionsWith(RegimeRational, Bland)
	opts.Trace = func(format string, args ...any) {
		lines = append(lines, format)
	}

	c := []float64{5, 4, 3}
	A := [][]float64{{2, 3, 1}, {4, 1, 2}, {3, 4, 2}}
	b := []float64{5, 11, 8}

	result, _, err := Solve(c, A, b, opts)
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.NotEmpty(t, lines)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, RegimeRational, opts.Regime)
	assert.Equal(t, 0.0, opts.Eps)
	require.NotNil(t, opts.Rule)
}

// TestSolveMaximallyDegenerateLPStillTerminates exercises the
// degenerate-pivot counting path of simplexLoop: a chain of tight
// constraints on a single variable keeps every basic variable at 0, and
// the driver must still reach OPTIMAL rather than loop forever.
func TestSolveMaximallyDegenerateLPStillTerminates(t *testing.T) {
	n := degenerateStepsBeforeAntiCycle + 2
	A := make([][]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		A[i] = []float64{1}
		b[i] = 0
	}
	result, d, err := Solve([]float64{1}, A, b, optionsWith(RegimeRational, LargestCoefficient))
	require.NoError(t, err)
	require.Equal(t, Optimal, result)
	assert.Equal(t, big.NewRat(0, 1), d.Value())
}
