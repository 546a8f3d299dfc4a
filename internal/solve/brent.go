// package solve implements the scalar root-finders shared by the fluid
// mixing-temperature balance, the pressure-control policies and the train
// speed/rate solvers: all of them are 1-D Brent searches or bisections.
// gosl/num carries a bracketed root-finder, but its API could not be
// confirmed against any usage in the reference pack (no pack repo calls
// it), so Brent's method is reimplemented directly here rather than guessed
// at against an unverified signature; every other ambient numerical concern
// (parameters, errors, printing) still goes through gosl.
package solve

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Func is a scalar function that may itself fail (e.g. an EOS call that hits
// CubicNoGasRoot); Brent propagates the error instead of panicking.
type Func func(x float64) (float64, error)

// Brent finds a root of f in [a,b] to absolute tolerance tol, using Brent's
// method (bisection, secant and inverse-quadratic interpolation), bounded
// by maxIter iterations. Returns an error if f(a) and f(b) do not bracket a
// sign change, if f fails at any evaluated point, or if maxIter is
// exhausted without reaching tol.
func Brent(f Func, a, b, tol float64, maxIter int) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if sameSign(fa, fb) {
		return 0, chk.Err("brent: root not bracketed in [%g,%g] (f(a)=%g, f(b)=%g)", a, b, fa, fb)
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}
		var s float64
		if fa != fc && fb != fc {
			// inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// secant
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		cond1 := s < lo || s > hi
		cond2 := mflag && math.Abs(s-b) >= math.Abs(b-c)/2
		cond3 := !mflag && math.Abs(s-b) >= math.Abs(c-d)/2
		cond4 := mflag && math.Abs(b-c) < tol
		cond5 := !mflag && math.Abs(c-d) < tol
		if cond1 || cond2 || cond3 || cond4 || cond5 {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs, err := f(s)
		if err != nil {
			return 0, err
		}
		d = c
		c, fc = b, fb
		if sameSign(fa, fs) {
			a, fa = s, fs
		} else {
			b, fb = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return 0, chk.Err("brent: did not converge within %d iterations", maxIter)
}

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}

// Bisect performs plain bisection for monotone feasibility predicates
//: returns the largest x in [lo,hi] for
// which ok(x) is true, to relative tolerance relTol, assuming ok is true on
// [lo, x*] and false on (x*, hi].
func Bisect(ok func(x float64) bool, lo, hi, relTol float64, maxIter int) (float64, error) {
	if !ok(lo) {
		return 0, chk.Err("bisect: lower bound %g is already infeasible", lo)
	}
	if ok(hi) {
		return hi, nil
	}
	for i := 0; i < maxIter; i++ {
		mid := (lo + hi) / 2
		if ok(mid) {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < relTol*math.Max(1, hi) {
			break
		}
	}
	return lo, nil
}
