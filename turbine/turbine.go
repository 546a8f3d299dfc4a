// package turbine implements the piecewise-linear load->efficiency curve
// that converts shaft power into fuel consumption, plus the
// deprecated POWER_ADJUSTMENT_CONSTANT handling.
package turbine

import "github.com/cpmech/gosl/chk"

// Turbine is a strictly-increasing load vector [MW] starting at 0, paired
// with an efficiency vector (fraction) and a fuel lower heating value
// [MJ/Sm3].
type Turbine struct {
	Load       []float64 // [MW], strictly increasing, Load[0] == 0
	Efficiency []float64 // fraction, same length as Load
	LHV        float64   // [MJ/Sm3]

	// PowerAdjustmentConstant is the deprecated flat MW offset
	// (POWER_ADJUSTMENT_CONSTANT, ): added to shaft power before
	// the load/efficiency lookup whenever shaft power is already > 0. It is
	// not physically meaningful and is kept only for input compatibility.
	PowerAdjustmentConstant float64
}

// Validate checks the Turbine invariants: first pair is (0,0), loads
// strictly increasing, efficiencies in [0,1].
func (t Turbine) Validate() error {
	n := len(t.Load)
	if n < 2 || len(t.Efficiency) != n {
		return chk.Err("turbine invalid: load and efficiency must be equal length >= 2")
	}
	if t.Load[0] != 0 || t.Efficiency[0] != 0 {
		return chk.Err("turbine invalid: first (load,efficiency) pair must be (0,0)")
	}
	for i := 1; i < n; i++ {
		if t.Load[i] <= t.Load[i-1] {
			return chk.Err("turbine invalid: load must be strictly increasing (index %d)", i)
		}
	}
	for i, e := range t.Efficiency {
		if e < 0 || e > 1 {
			return chk.Err("turbine invalid: efficiency[%d]=%g out of [0,1]", i, e)
		}
	}
	if t.LHV <= 0 {
		return chk.Err("turbine invalid: LHV must be > 0")
	}
	return nil
}

// ErrLoadOutOfRange is returned by FuelRate when shaft power is negative or
// exceeds the turbine's maximum declared load.
var ErrLoadOutOfRange = chk.Err("turbine load out of range")

// rhoStdFuelGas is the standard density assumed for the fuel gas [kg/Sm3]
// used to convert the energy-balance fuel rate into Sm3/day: power/(eta*LHV)
// yields an energy-based mass rate, converted to a standard volume rate
// through a fixed fuel density. Declared here rather than taken from a
// fluid.Model because the turbine's own fuel stream composition is outside
// core scope.
const rhoStdFuelGas = 0.82 // kg/Sm3, typical sales-gas fuel density

// FuelRate computes the fuel consumption [Sm3/day] for a given shaft power
// [MW]: locate the bracketing load interval, linearly interpolate
// efficiency, then
//
//	fuel = P_shaft * 86400 / (eta * LHV * 1e6 / rho_std_fuel_gas)
//
// Exact zero load returns zero fuel without a lookup.
func (t Turbine) FuelRate(shaftPowerMW float64) (float64, error) {
	p := shaftPowerMW + adjustmentIfPositive(shaftPowerMW, t.PowerAdjustmentConstant)
	if p == 0 {
		return 0, nil
	}
	if p < 0 || p > t.Load[len(t.Load)-1] {
		return 0, ErrLoadOutOfRange
	}
	eta := t.efficiencyAt(p)
	const secondsPerDay = 86400.0
	return p * secondsPerDay / (eta * t.LHV * 1e6 / rhoStdFuelGas), nil
}

func adjustmentIfPositive(shaftPowerMW, constant float64) float64 {
	if shaftPowerMW > 0 {
		return constant
	}
	return 0
}

// ApplyPowerAdjustment returns an option that sets the deprecated
// POWER_ADJUSTMENT_CONSTANT on a Turbine; the constant acts at fuel-rate
// time rather than at the shaft-power conversion. The deprecated
// POWER_ADJUSTMENT_FACTOR is not handled here: shaft.FromDeprecatedFactor
// turns it into a mechanical efficiency.
func ApplyPowerAdjustment(constant float64) func(t *Turbine) {
	return func(t *Turbine) { t.PowerAdjustmentConstant = constant }
}

func (t Turbine) efficiencyAt(p float64) float64 {
	for i := 1; i < len(t.Load); i++ {
		if p <= t.Load[i] {
			lam := (p - t.Load[i-1]) / (t.Load[i] - t.Load[i-1])
			return t.Efficiency[i-1] + lam*(t.Efficiency[i]-t.Efficiency[i-1])
		}
	}
	return t.Efficiency[len(t.Efficiency)-1]
}
