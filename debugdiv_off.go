//go:build !debugdiv

package simplex

// debugCheckIntegerDivision is false in ordinary builds: the Bareiss pivot
// relies on exact divisibility by construction (see dictionary.go,
// integerPivot) and re-verifying it on every pivot step would double the
// cost of the Integer regime. Build with -tags debugdiv to enable the
// check, per spec.md §9's "must verify the remainder is zero in debug
// builds".
const debugCheckIntegerDivision = false
