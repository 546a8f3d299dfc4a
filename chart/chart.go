package chart

import "github.com/cpmech/gosl/chk"

// Classification is how a queried operating point relates to a chart's
// envelope.
type Classification string

const (
	Internal      Classification = "INTERNAL"
	BelowSurge    Classification = "BELOW_SURGE"
	AboveStonewall Classification = "ABOVE_STONEWALL"
	BelowMinSpeed Classification = "BELOW_MIN_SPEED"
	AboveMaxSpeed Classification = "ABOVE_MAX_SPEED"
)

// Point is a chart query result: polytropic head [J/kg] and polytropic
// efficiency (fraction).
type Point struct {
	Head       float64
	Efficiency float64
}

// Chart is implemented by SingleSpeed, VariableSpeed and the two generic
// chart constructors (which realize themselves as a VariableSpeed once
// frozen; see generic.go).
type Chart interface {
	// Query returns the chart point at (q [Am3/h], n [rpm]) together with
	// its classification. BELOW_SURGE/ABOVE_STONEWALL still return the
	// nearest-boundary Point so callers (ASV recycling) can act on it;
	// BELOW_MIN_SPEED/ABOVE_MAX_SPEED return a zero Point. A non-nil error
	// means the point could not be interpolated, or that a SingleSpeed chart
	// was queried at a speed other than its own.
	Query(q, n float64) (Point, Classification, error)
	// Envelope returns the effective (margin-shifted) minimum and maximum
	// flow at a given speed n. For SingleSpeed, n is ignored.
	Envelope(n float64) (qMin, qMax float64, err error)
	// SpeedRange returns [nMin,nMax]; for SingleSpeed both equal the one
	// speed.
	SpeedRange() (nMin, nMax float64)
}

// validateCurves checks that there is at least one curve, that speeds are
// strictly increasing and that each curve is internally valid. The >=2
// curve minimum of a VariableSpeed chart is checked by NewVariableSpeed.
func validateCurves(curves []Curve) error {
	if len(curves) < 1 {
		return chk.Err("chart invalid: at least one speed curve required")
	}
	for i, c := range curves {
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && c.Speed <= curves[i-1].Speed {
			return chk.Err("chart invalid: speeds must be strictly increasing (curve %d)", i)
		}
	}
	return nil
}
