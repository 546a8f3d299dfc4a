// package shaft implements the mechanical-efficiency wrapper: shaft power
// is gas power divided by mechanical efficiency.
package shaft

import "github.com/cpmech/gosl/chk"

// Efficiency is a mechanical efficiency eta_mech in (0,1], validated at
// model-load time.
type Efficiency float64

// Validate checks eta_mech is in (0,1].
func (e Efficiency) Validate() error {
	if e <= 0 || e > 1 {
		return chk.Err("mechanical efficiency invalid: %g not in (0,1]", float64(e))
	}
	return nil
}

// PowerW converts gas power [W] to shaft power [W].
func (e Efficiency) PowerW(gasPowerW float64) float64 {
	return gasPowerW / float64(e)
}

// FromDeprecatedFactor folds the deprecated POWER_ADJUSTMENT_FACTOR into an
// effective mechanical efficiency, : eta_mech = 1/FACTOR.
func FromDeprecatedFactor(factor float64) Efficiency {
	if factor <= 0 {
		return 1
	}
	return Efficiency(1 / factor)
}
