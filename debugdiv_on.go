//go:build debugdiv

package simplex

// debugCheckIntegerDivision is true when built with -tags debugdiv: every
// integer floor-division in the Bareiss pivot is re-verified to be exact,
// panicking otherwise.
const debugCheckIntegerDivision = true
