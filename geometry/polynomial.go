package geometry

import (
	"math"
	"sort"
)

const (
	// polynomialEpsilon treats smaller leading coefficients and discriminants as zero.
	polynomialEpsilon = 1e-12

	// newtonIterations polishes every root found in closed form.
	newtonIterations = 4
)

// SolveQuadratic returns the real roots of a*x² + b*x + c = 0 in ascending order.
func SolveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < polynomialEpsilon {
		if math.Abs(b) < polynomialEpsilon {
			return nil
		}
		return []float64{-c / b}
	}

	discriminant := b*b - 4*a*c
	scale := math.Max(b*b, math.Abs(4*a*c))
	if discriminant < 0 {
		if discriminant < -polynomialEpsilon*scale {
			return nil
		}
		discriminant = 0
	}

	if discriminant == 0 {
		return []float64{-b / (2 * a)}
	}

	// Numerically stable form, avoids cancellation between -b and the root
	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = -0.5 * (b - sqrtD)
	} else {
		q = -0.5 * (b + sqrtD)
	}

	x1 := q / a
	var x2 float64
	if q != 0 {
		x2 = c / q
	} else {
		x2 = -x1
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}

	return []float64{x1, x2}
}

// SolveCubic returns the real roots of a*x³ + b*x² + c*x + d = 0 in ascending order.
func SolveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < polynomialEpsilon {
		return SolveQuadratic(b, c, d)
	}

	// Normalize then depress with x = t - B/3: t³ + p*t + q = 0
	B, C, D := b/a, c/a, d/a
	shift := B / 3
	p := C - B*B/3
	q := 2*B*B*B/27 - B*C/3 + D

	var roots []float64
	switch {
	case math.Abs(p) < polynomialEpsilon && math.Abs(q) < polynomialEpsilon:
		roots = []float64{0}
	case math.Abs(p) < polynomialEpsilon:
		roots = []float64{math.Cbrt(-q)}
	default:
		discriminant := q*q/4 + p*p*p/27
		switch {
		case discriminant > polynomialEpsilon:
			sqrtD := math.Sqrt(discriminant)
			roots = []float64{math.Cbrt(-q/2+sqrtD) + math.Cbrt(-q/2-sqrtD)}
		case discriminant < -polynomialEpsilon:
			// Three distinct real roots, trigonometric form
			m := 2 * math.Sqrt(-p/3)
			theta := math.Acos(clamp(3*q/(p*m), -1, 1)) / 3
			roots = []float64{
				m * math.Cos(theta),
				m * math.Cos(theta-2*math.Pi/3),
				m * math.Cos(theta-4*math.Pi/3),
			}
		default:
			// Double root
			u := math.Cbrt(-q / 2)
			roots = []float64{2 * u, -u}
		}
	}

	coefficients := []float64{1, B, C, D}
	for i := range roots {
		roots[i] = polish(coefficients, roots[i]-shift)
	}

	return uniqueSorted(roots)
}

// SolveQuartic returns the real roots of a*x⁴ + b*x³ + c*x² + d*x + e = 0 in
// ascending order, using Ferrari's method on the depressed quartic.
//
// Algorithm:
//  1. Normalize and substitute x = y - B/4: y⁴ + p*y² + q*y + r = 0
//  2. If q ≈ 0 the quartic is biquadratic, solve for y² directly
//  3. Otherwise find a positive root m of the resolvent cubic
//     m³ + p*m² + (p²/4 - r)*m - q²/8 = 0
//  4. Factor into two quadratics y² ∓ √(2m)*y + (p/2 + m ± q/(2√(2m))) = 0
//  5. Shift back and polish every root with Newton's method on the original polynomial
//
// References:
//   - https://en.wikipedia.org/wiki/Quartic_function#Ferrari's_solution
func SolveQuartic(a, b, c, d, e float64) []float64 {
	if math.Abs(a) < polynomialEpsilon {
		return SolveCubic(b, c, d, e)
	}

	B, C, D, E := b/a, c/a, d/a, e/a
	shift := B / 4
	B2 := B * B
	p := C - 3*B2/8
	q := D - B*C/2 + B2*B/8
	r := E - B*D/4 + B2*C/16 - 3*B2*B2/256

	var roots []float64
	if math.Abs(q) < polynomialEpsilon {
		for _, z := range SolveQuadratic(1, p, r) {
			if z < 0 {
				if z > -polynomialEpsilon {
					roots = append(roots, 0)
				}
				continue
			}
			sqrtZ := math.Sqrt(z)
			roots = append(roots, sqrtZ, -sqrtZ)
		}
	} else {
		m := 0.0
		for _, candidate := range SolveCubic(1, p, p*p/4-r, -q*q/8) {
			m = math.Max(m, candidate)
		}
		if m <= 0 {
			// Cannot happen analytically when q != 0, only through rounding
			return nil
		}

		s := math.Sqrt(2 * m)
		roots = append(roots, SolveQuadratic(1, -s, p/2+m+q/(2*s))...)
		roots = append(roots, SolveQuadratic(1, s, p/2+m-q/(2*s))...)
	}

	coefficients := []float64{1, B, C, D, E}
	for i := range roots {
		roots[i] = polish(coefficients, roots[i]-shift)
	}

	return uniqueSorted(roots)
}

// polish refines root with Newton steps on the polynomial given highest degree first.
// The refinement is dropped if it moves away from a root.
func polish(coefficients []float64, root float64) float64 {
	for range newtonIterations {
		value, derivative := evaluate(coefficients, root)
		if derivative == 0 {
			break
		}
		next := root - value/derivative
		nextValue, _ := evaluate(coefficients, next)
		if math.Abs(nextValue) > math.Abs(value) || math.IsNaN(next) {
			break
		}
		root = next
	}

	return root
}

// evaluate computes the polynomial and its derivative with Horner's scheme.
func evaluate(coefficients []float64, x float64) (value, derivative float64) {
	for _, c := range coefficients {
		derivative = derivative*x + value
		value = value*x + c
	}

	return value, derivative
}

func uniqueSorted(roots []float64) []float64 {
	sort.Float64s(roots)

	n := 0
	for i, root := range roots {
		if i > 0 && math.Abs(root-roots[n-1]) < 1e-9 {
			continue
		}
		roots[n] = root
		n++
	}

	return roots[:n]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
