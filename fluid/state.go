package fluid

import "math"

// reference state : h=0, s=0 at Tref, Pref.
const (
	tRef = 288.15 // [K]
	pRef = 1.01325 // [bar]
)

// State is the thermodynamic state of a fluid at (P,T,composition). It is
// immutable and fully derived by Model.State; nothing mutates a State after
// construction.
type State struct {
	P, T float64    // [bar], [K]
	X    Composition

	M   float64 // molar mass [kg/kmol]
	Rho float64 // density [kg/m^3]
	H   float64 // specific enthalpy [J/kg]
	S   float64 // specific entropy [J/(kg.K)]
	Z   float64 // compressibility factor [-]
	K   float64 // ratio of specific heats cp/cv [-]
}

// State evaluates the EOS at (p [bar], t [K], x) and returns the cached
// derived properties. Fails with CubicNoGasRoot if the cubic has no
// physical gas-phase root.
func (m *Model) State(p, t float64, x Composition) (State, error) {
	cp := cubicParamsFor(m.EOS)
	pPa := p * 1e5
	a, b, dadT := mixtureADerivs(m, x, t)
	z, err := solveZ(cp, a, b, pPa, t)
	if err != nil {
		return State{}, err
	}

	molarMass := x.MolarMass()
	rho := pPa * (molarMass / 1000) / (z * R * t)

	h, s := departure(cp, a, b, dadT, z, t, pPa)
	hIdeal, sIdeal := idealEnthalpyEntropy(x, t, p)
	massKg := molarMass / 1000
	hSpec := hIdeal + h/massKg
	sSpec := sIdeal + s/massKg

	kappa := kappaOf(x, t)

	return State{
		P: p, T: t, X: x,
		M: molarMass, Rho: rho,
		H: hSpec, S: sSpec, Z: z, K: kappa,
	}, nil
}

// departure returns the molar enthalpy and entropy departures [J/mol],
// [J/(mol.K)] for the generalized cubic EOS, following the standard
// Soave/Peng-Robinson departure-function derivation.
func departure(cp cubicParams, a, b, dadT, z, t, pPa float64) (hDep, sDep float64) {
	bigB := b * pPa / (R * t)
	if cp.sigma == cp.epsilon {
		// degenerate (Van der Waals-like) case; not reached by SRK/PR
		return 0, 0
	}
	logTerm := math.Log((z + cp.sigma*bigB) / (z + cp.epsilon*bigB))
	denom := b * (cp.sigma - cp.epsilon)
	hDep = R*t*(z-1) + (t*dadT-a)/denom*logTerm
	sDep = R*math.Log(z-bigB) + dadT/denom*logTerm
	return
}

// idealEnthalpyEntropy integrates the mole-fraction-weighted ideal-gas cp
// polynomial from the reference state to (T,P); returns specific (per-mass)
// values in [J/kg], [J/(kg.K)].
func idealEnthalpyEntropy(x Composition, t, p float64) (h, s float64) {
	hMolar, sMolar := 0.0, 0.0
	x.Each(func(c Component, frac float64) {
		if frac <= 0 {
			return
		}
		pr := table[c]
		dt := t - tRef
		hMolar += frac * (pr.cp0*dt + pr.cp1/2*(t*t-tRef*tRef) + pr.cp2/3*(t*t*t-tRef*tRef*tRef) + pr.cp3/4*(t*t*t*t-tRef*tRef*tRef*tRef))
		sMolar += frac * (pr.cp0*math.Log(t/tRef) + pr.cp1*dt + pr.cp2/2*(t*t-tRef*tRef) + pr.cp3/3*(t*t*t-tRef*tRef*tRef))
	})
	sMolar -= R * math.Log(p/pRef)
	massKg := x.MolarMass() / 1000
	return hMolar / massKg, sMolar / massKg
}

// kappaOf approximates κ=cp/cv at (x,T) from the ideal-gas cp polynomial;
// a documented simplification (DESIGN.md) of the full real-gas cp, whose
// departure needs second derivatives of the EOS w.r.t. T that are not
// needed elsewhere in this solver.
func kappaOf(x Composition, t float64) float64 {
	cpMolar := 0.0
	x.Each(func(c Component, frac float64) {
		if frac > 0 {
			cpMolar += frac * idealCp(c, t)
		}
	})
	cvMolar := cpMolar - R
	if cvMolar <= 0 {
		return 1.0
	}
	return cpMolar / cvMolar
}
