// package chart implements compressor-chart models: single-speed,
// variable-speed and generic (universal) charts, their surge-control
// margins, and the (speed, flow) -> (head, efficiency) queries the stage
// solver needs.
package chart

import (
	"github.com/cpmech/gosl/chk"
)

// HeadUnit names the declared unit of a chart's head array; internal
// computation always uses J/kg.
type HeadUnit string

const (
	HeadMeter  HeadUnit = "M"
	HeadKJPerKg HeadUnit = "kJ/kg"
	HeadJPerKg HeadUnit = "J/kg"
)

// ToJPerKg converts a head value in unit u to J/kg. Meter-head is specific
// energy per unit mass (gH), so the conversion is density-free.
func ToJPerKg(h float64, u HeadUnit) float64 {
	const g = 9.80665
	switch u {
	case HeadMeter:
		return h * g
	case HeadKJPerKg:
		return h * 1000
	default:
		return h
	}
}

// Curve is a single rotational-speed slice of a compressor chart: equal
// length, strictly-monotone-in-flow arrays of volumetric actual flow Q
// [m^3/h], polytropic head H [J/kg] and polytropic efficiency eta
// (fraction). Invariants: Q strictly increasing; H monotone
// non-increasing along Q; eta in (0,1].
type Curve struct {
	Speed float64 // [rpm]
	Q     []float64
	H     []float64
	Eta   []float64
}

// Validate checks the Curve invariants.
func (c Curve) Validate() error {
	n := len(c.Q)
	if n < 2 || len(c.H) != n || len(c.Eta) != n {
		return chk.Err("chart curve invalid: Q, H, Eta must be equal length >= 2")
	}
	for i := 1; i < n; i++ {
		if c.Q[i] <= c.Q[i-1] {
			return chk.Err("chart curve invalid: Q must be strictly increasing (index %d)", i)
		}
		if c.H[i] > c.H[i-1] {
			return chk.Err("chart curve invalid: H must be monotone non-increasing (index %d)", i)
		}
	}
	for i, e := range c.Eta {
		if e <= 0 || e > 1 {
			return chk.Err("chart curve invalid: Eta[%d]=%g out of (0,1]", i, e)
		}
	}
	return nil
}

// QMin and QMax are the raw (unshifted) flow envelope of the curve.
func (c Curve) QMin() float64 { return c.Q[0] }
func (c Curve) QMax() float64 { return c.Q[len(c.Q)-1] }

// interpAt linearly interpolates H and eta at flow q, clamped to [qMin,qMax]
// by the caller; q outside [Q[0],Q[n-1]] is an error.
func (c Curve) interpAt(q float64) (h, eta float64, err error) {
	n := len(c.Q)
	if q < c.Q[0] || q > c.Q[n-1] {
		return 0, 0, chk.Err("flow %g outside curve range [%g,%g]", q, c.Q[0], c.Q[n-1])
	}
	if q == c.Q[0] {
		return c.H[0], c.Eta[0], nil
	}
	for i := 1; i < n; i++ {
		if q <= c.Q[i] {
			lam := (q - c.Q[i-1]) / (c.Q[i] - c.Q[i-1])
			h = c.H[i-1] + lam*(c.H[i]-c.H[i-1])
			eta = c.Eta[i-1] + lam*(c.Eta[i]-c.Eta[i-1])
			return h, eta, nil
		}
	}
	return c.H[n-1], c.Eta[n-1], nil
}
