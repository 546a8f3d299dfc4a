package chart

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// NormalizedPoint is one (q*, h*, eta*) sample of a generic "universal"
// compressor-chart shape, dimensionless: q* in [0,1.5], h* in [0,1.3]
//.
type NormalizedPoint struct {
	Q, H, Eta float64
}

// Generic is a dimensionless chart shape shared by GENERIC_FROM_INPUT and
// GENERIC_FROM_DESIGN_POINT. It is realized into a concrete VariableSpeed
// chart once a design point (Q_d, H_d) is known, by Freeze.
type Generic struct {
	Shape []NormalizedPoint
	Margin Margin

	frozen bool
	realized *VariableSpeed
}

// NewGeneric validates the dimensionless shape points.
func NewGeneric(shape []NormalizedPoint, margin Margin) (*Generic, error) {
	if len(shape) < 2 {
		return nil, chk.Err("generic chart invalid: at least 2 shape points required")
	}
	for i := 1; i < len(shape); i++ {
		if shape[i].Q <= shape[i-1].Q {
			return nil, chk.Err("generic chart invalid: q* must be strictly increasing")
		}
	}
	return &Generic{Shape: shape, Margin: margin}, nil
}

// relativeSpeeds is the dense set of affinity-law speed ratios used to
// realize the generic shape as a VariableSpeed chart.
var relativeSpeeds = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1}

// Freeze fixes the design point (Qd [Am3/h], Hd [J/kg]) and realizes the
// generic shape as a concrete VariableSpeed chart via the affinity laws:
//
//	Q = q*·Qd·(n/n_design), H = (h*/h*₁)·Hd·(n/n_design)^2
//
// for each n = n_design·rel over the relative speeds, where h*₁ is the
// shape's own h* at q* = 1.
//
// Calling Freeze twice with the same (Qd,Hd) is idempotent; calling it with
// different values re-realizes the chart. The caller only ever freezes a
// chart once per design point, before the chart is queried.
func (g *Generic) Freeze(qd, hd float64) error {
	if qd <= 0 || hd <= 0 {
		return chk.Err("generic chart freeze invalid: design point must be positive (Qd=%g, Hd=%g)", qd, hd)
	}
	hAtQ1, err := interpolateH(g.Shape, 1.0)
	if err != nil {
		return err
	}
	const nDesign = 10000.0 // arbitrary reference speed; only ratios matter
	curves := make([]Curve, 0, len(relativeSpeeds))
	for _, rel := range relativeSpeeds {
		n := nDesign * rel
		q := make([]float64, len(g.Shape))
		h := make([]float64, len(g.Shape))
		eta := make([]float64, len(g.Shape))
		for i, p := range g.Shape {
			q[i] = p.Q * qd * rel
			h[i] = (p.H / hAtQ1) * hd * rel * rel
			eta[i] = p.Eta
		}
		curves = append(curves, Curve{Speed: n, Q: q, H: h, Eta: eta})
	}
	realized, err := NewVariableSpeed(curves, g.Margin)
	if err != nil {
		return err
	}
	g.realized = realized
	g.frozen = true
	return nil
}

// interpolateH returns the shape's own h* value at q* = q, linearly
// interpolating between the two bracketing shape points (or returning the
// exact sample if q matches one). Freeze uses this at q*=1 to normalize its
// affinity-law scaling, so that a query at the design point reproduces hd
// exactly regardless of the shape's own h* value at q*=1.
func interpolateH(shape []NormalizedPoint, q float64) (float64, error) {
	if q <= shape[0].Q {
		return shape[0].H, nil
	}
	last := shape[len(shape)-1]
	if q >= last.Q {
		return last.H, nil
	}
	for i := 1; i < len(shape); i++ {
		if shape[i].Q >= q {
			lo, hi := shape[i-1], shape[i]
			lam := (q - lo.Q) / (hi.Q - lo.Q)
			return lo.H + lam*(hi.H-lo.H), nil
		}
	}
	return 0, chk.Err("generic chart freeze invalid: could not bracket q*=%g in shape", q)
}

// interpolateEta returns the shape's own eta* value at q* = q, by the same
// bracketing rule as interpolateH.
func interpolateEta(shape []NormalizedPoint, q float64) (float64, error) {
	if q <= shape[0].Q {
		return shape[0].Eta, nil
	}
	last := shape[len(shape)-1]
	if q >= last.Q {
		return last.Eta, nil
	}
	for i := 1; i < len(shape); i++ {
		if shape[i].Q >= q {
			lo, hi := shape[i-1], shape[i]
			lam := (q - lo.Q) / (hi.Q - lo.Q)
			return lo.Eta + lam*(hi.Eta-lo.Eta), nil
		}
	}
	return 0, chk.Err("generic chart invalid: could not bracket q*=%g in shape", q)
}

// DesignEfficiencyGuess returns the shape's own efficiency at its nominal
// design point (q*=1), used by GENERIC_FROM_INPUT to estimate a design head
// before the design point itself is known. FirstFeasiblePoint confirms that
// nominal point actually falls inside the shape's normalized envelope
// before the guess is trusted.
func (g *Generic) DesignEfficiencyGuess() (float64, error) {
	nominal := NormalizedPoint{Q: 1, H: 1}
	if _, ok := FirstFeasiblePoint([]NormalizedPoint{nominal}); !ok {
		return 0, chk.Err("generic chart invalid: nominal design point (q*=1,h*=1) outside shape envelope")
	}
	return interpolateEta(g.Shape, 1.0)
}

func (g *Generic) Frozen() bool { return g.frozen }

func (g *Generic) requireFrozen() {
	if !g.frozen {
		panic("chart: generic chart queried before Freeze")
	}
}

func (g *Generic) Query(q, n float64) (Point, Classification, error) {
	g.requireFrozen()
	return g.realized.Query(q, n)
}

func (g *Generic) Envelope(n float64) (qMin, qMax float64, err error) {
	g.requireFrozen()
	return g.realized.Envelope(n)
}

func (g *Generic) SpeedRange() (nMin, nMax float64) {
	g.requireFrozen()
	return g.realized.SpeedRange()
}

// FirstFeasiblePoint picks the first (Q,H) pair from a candidate sequence
// that lies within the shape's normalized envelope [0,1.5]x[0,1.3], used by
// GENERIC_FROM_INPUT to freeze a design point from a stage's first
// evaluated operating point.
func FirstFeasiblePoint(candidates []NormalizedPoint) (NormalizedPoint, bool) {
	for _, c := range candidates {
		if c.Q >= 0 && c.Q <= 1.5 && c.H >= 0 && c.H <= 1.3 {
			return c, true
		}
	}
	return NormalizedPoint{}, false
}

// affinitySpeedSet is exposed for tests that want a denser speed grid than
// the default relativeSpeeds (e.g. to check idempotence under rescaling,
// law 8).
func affinitySpeedSet(n int) []float64 {
	return utl.LinSpace(0.5, 1.1, n)
}
