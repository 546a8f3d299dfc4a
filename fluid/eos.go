package fluid

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// EOS names the supported cubic equation-of-state family. GERG variants
// apply GERG-2008-flavoured binary interaction adjustments over the same
// cubic skeleton; see gergAdjust.
type EOS string

const (
	SRK     EOS = "SRK"
	PR      EOS = "PR"
	GergSRK EOS = "GERG_SRK"
	GergPR  EOS = "GERG_PR"
)

// cubicParams are the σ,ε,Ω,Ψ constants of the generalized cubic EOS,
// following the Params shape of the two-parameter cubic family (the
// structure mirrors github.com/rickykimani/zfactor's cubic.Params, adapted
// here to a mixture of up to 11 components rather than a pure substance).
type cubicParams struct {
	sigma, epsilon, omega, psi float64
}

func cubicParamsFor(eos EOS) cubicParams {
	switch baseEOS(eos) {
	case PR:
		return cubicParams{epsilon: 1 - math.Sqrt2, sigma: 1 + math.Sqrt2, omega: 0.07780, psi: 0.45724}
	default: // SRK
		return cubicParams{epsilon: 0, sigma: 1, omega: 0.08664, psi: 0.42748}
	}
}

// baseEOS strips the GERG_ prefix, leaving the underlying cubic skeleton.
func baseEOS(eos EOS) EOS {
	switch eos {
	case GergSRK:
		return SRK
	case GergPR:
		return PR
	}
	return eos
}

func isGERG(eos EOS) bool { return eos == GergSRK || eos == GergPR }

// Model is an immutable fluid model: an EOS tag plus the GERG-fallback flag
// from (a faithful GERG-2008 implementation is out of scope; the
// flag documents the allowed simplification rather than hiding it).
type Model struct {
	EOS         EOS
	GERGFallback bool
}

// NewModel constructs a fluid model for the given EOS tag. GERG variants
// set GERGFallback=true: they run the plain SRK/PR cubic with a
// GERG-2008-derived interaction-coefficient nudge (gergAdjust) rather than
// a full multi-fluid GERG-2008 mixture model.
func NewModel(eos EOS) *Model {
	return &Model{EOS: eos, GERGFallback: isGERG(eos)}
}

// alphaOf is the Soave α(T) function, shared by SRK and PR (only the m(ω)
// correlation differs between the two families in their classic forms; a
// single correlation is used here for both, which is the common
// simplification also made by the zfactor reference package for its
// EOSType.Alpha method).
func alphaOf(omega, tr float64) float64 {
	m := 0.480 + 1.574*omega - 0.176*omega*omega
	s := 1 + m*(1-math.Sqrt(tr))
	return s * s
}

func gergAdjust(k float64, eos EOS) float64 {
	if !isGERG(eos) {
		return k
	}
	// GERG-2008 departs from classical quadratic mixing mainly through the
	// binary-specific correction term; absent a full GERG parameter table,
	// a uniform 10% damping of the classical kij is applied as a documented
	// approximation.
	return k * 0.9
}

// mixtureAB computes the mixture a(T) and b cubic-EOS parameters [SI units:
// a in Pa.m^6/mol^2, b in m^3/mol] for composition x at temperature t [K].
func mixtureAB(m *Model, x Composition, t float64) (a, b float64) {
	a, b, _ = mixtureADerivs(m, x, t)
	return
}

// mixtureADerivs computes a(T), b and da/dT together. da/dT follows the
// classical quadratic mixing-rule derivative: for a_ij = sqrt(a_i a_j)(1-k_ij),
// d(a_ij)/dT = (1-k_ij)/2 * (sqrt(a_j/a_i) da_i/dT + sqrt(a_i/a_j) da_j/dT).
func mixtureADerivs(m *Model, x Composition, t float64) (a, b, dadT float64) {
	cp := cubicParamsFor(m.EOS)
	type term struct {
		c        Component
		aAlph    float64
		daAlphdT float64
		b        float64
		frac     float64
	}
	terms := make([]term, 0, len(components))
	x.Each(func(c Component, frac float64) {
		if frac <= 0 {
			return
		}
		pr := table[c]
		tc := pr.Tc
		pcPa := pr.Pc * 1e5
		tr := t / tc
		mAcc := 0.480 + 1.574*pr.Omega - 0.176*pr.Omega*pr.Omega
		sqrtAlpha := 1 + mAcc*(1-math.Sqrt(tr))
		al := sqrtAlpha * sqrtAlpha
		dAlphadT := -mAcc * sqrtAlpha / (tc * math.Sqrt(tr))
		aCoef := cp.psi * R * R * tc * tc / pcPa
		ai := aCoef * al
		dai := aCoef * dAlphadT
		bi := cp.omega * R * tc / pcPa
		terms = append(terms, term{c: c, aAlph: ai, daAlphdT: dai, b: bi, frac: frac})
		b += frac * bi
	})
	for i := range terms {
		for j := range terms {
			k := gergAdjust(kijOf(terms[i].c, terms[j].c), m.EOS)
			sq := math.Sqrt(terms[i].aAlph * terms[j].aAlph)
			a += terms[i].frac * terms[j].frac * sq * (1 - k)
			if sq > 0 {
				dsq := 0.5 / sq * (terms[j].aAlph*terms[i].daAlphdT + terms[i].aAlph*terms[j].daAlphdT)
				dadT += terms[i].frac * terms[j].frac * dsq * (1 - k)
			}
		}
	}
	return a, b, dadT
}

// solveZ solves the generalized cubic EOS for the gas-phase compressibility
// factor Z = Pv/RT, given mixture a [Pa.m^6/mol^2], b [m^3/mol], P [Pa], T [K].
//
//	Z^3 + c2*Z^2 + c1*Z + c0 = 0
//
// coefficients follow the standard (σ,ε) generalized cubic reduction, the
// same reduction SRK (σ=1,ε=0) and PR (σ=1+√2,ε=1-√2) specialize from.
func solveZ(cp cubicParams, a, b, p, t float64) (z float64, err error) {
	bigA := a * p / (R * R * t * t)
	bigB := b * p / (R * t)

	c2 := (cp.epsilon+cp.sigma)*bigB - 1 - bigB
	c1 := bigA + cp.epsilon*cp.sigma*bigB*bigB - (cp.epsilon+cp.sigma)*bigB*(1+bigB)
	c0 := -(bigA*bigB + cp.epsilon*cp.sigma*bigB*bigB*(1+bigB))

	roots := cubicRoots(c2, c1, c0)
	real := realRoots(roots)
	gas := -1.0
	for _, r := range real {
		if r <= bigB {
			continue // unphysical: v <= b
		}
		if r < 0 || r > 10 {
			continue
		}
		if r > gas {
			gas = r
		}
	}
	if gas < 0 {
		return 0, chk.Err("cubic EOS has no gas-phase root in [0,10] for P=%g T=%g", p, t)
	}
	return gas, nil
}

// cubicRoots returns the three roots (possibly complex) of
// x^3 + c2 x^2 + c1 x + c0 = 0 via the trigonometric/Cardano method.
func cubicRoots(c2, c1, c0 float64) [3]complex128 {
	// depressed cubic t^3 + p t + q = 0 via x = t - c2/3
	shift := c2 / 3
	p := c1 - c2*c2/3
	q := 2*c2*c2*c2/27 - c2*c1/3 + c0

	disc := (q*q)/4 + (p*p*p)/27
	var roots [3]complex128
	switch {
	case disc > 0:
		sqrtDisc := math.Sqrt(disc)
		u := cbrt(-q/2 + sqrtDisc)
		v := cbrt(-q/2 - sqrtDisc)
		roots[0] = complex(u+v-shift, 0)
		re := -(u+v)/2 - shift
		im := math.Sqrt(3) / 2 * (u - v)
		roots[1] = complex(re, im)
		roots[2] = complex(re, -im)
	case disc == 0:
		if p == 0 {
			roots[0], roots[1], roots[2] = complex(-shift, 0), complex(-shift, 0), complex(-shift, 0)
		} else {
			u := cbrt(-q / 2)
			roots[0] = complex(2*u-shift, 0)
			roots[1] = complex(-u-shift, 0)
			roots[2] = roots[1]
		}
	default:
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		for k := 0; k < 3; k++ {
			t := m*math.Cos((phi+2*math.Pi*float64(k))/3) - shift
			roots[k] = complex(t, 0)
		}
	}
	return roots
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// realRoots extracts the (near-)real roots of a cubicRoots result, matching
// the Clean() idiom of the zfactor reference package.
func realRoots(roots [3]complex128) []float64 {
	out := make([]float64, 0, 3)
	for _, r := range roots {
		if math.Abs(cmplx.Imag(r)) < 1e-9 {
			out = append(out, cmplx.Real(r))
		}
	}
	sort.Float64s(out)
	return out
}
