package path

import "math"

// Polynomial root solving for curve extrema.
//
// Based on the quadratic solver in kurbo (https://github.com/linebender/kurbo)
// with adaptations for Go idioms.

// solveQuadratic finds real roots of a*t^2 + b*t + c = 0 in ascending order.
// A vanishing a falls back to the linear equation.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		// Overflow in the discriminant: one root from sc1*t + t^2 = 0.
		return sortedPair(-sc1, sc0/-sc1)
	}
	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}
	// Numerically stable form avoiding cancellation.
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return sortedPair(root1, sc0/root1)
}

func solveLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}
	return nil
}

func sortedPair(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		return []float64{r2, r1}
	}
	return []float64{r1, r2}
}

// rootsInOpenUnit returns the roots of a*t^2 + b*t + c strictly inside (0, 1).
// Coefficients under 1e-12 in magnitude are treated as zero.
func rootsInOpenUnit(a, b, c float64) []float64 {
	const eps = 1e-12
	var roots []float64
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		roots = []float64{-c / b}
	} else {
		roots = solveQuadratic(a, b, c)
	}
	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
