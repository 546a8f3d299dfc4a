package fluid

// StandardPressure and StandardTemperature define Sm³ // glossary: 1.01325 bar, 288.15 K (15 degC).
const (
	StandardPressure = pRef
	StandardTemperature = tRef
)

// StandardDensity returns the density [kg/m^3] of composition x at standard
// conditions, using the same EOS the model carries (so Z_std reflects the
// declared EOS tag rather than an ideal-gas assumption).
func (m *Model) StandardDensity(x Composition) (float64, error) {
	st, err := m.State(StandardPressure, StandardTemperature, x)
	if err != nil {
		return 0, err
	}
	return st.Rho, nil
}

// MassRateFromStandardRate converts a standard volumetric rate [Sm³/day]
// into a mass flow rate [kg/s] using the standard density of x.
func (m *Model) MassRateFromStandardRate(stdRateSm3PerDay float64, x Composition) (float64, error) {
	rhoStd, err := m.StandardDensity(x)
	if err != nil {
		return 0, err
	}
	const secondsPerDay = 86400.0
	return stdRateSm3PerDay * rhoStd / secondsPerDay, nil
}

// StandardRateFromMassRate is the inverse of MassRateFromStandardRate.
func (m *Model) StandardRateFromMassRate(massRateKgPerS float64, x Composition) (float64, error) {
	rhoStd, err := m.StandardDensity(x)
	if err != nil {
		return 0, err
	}
	const secondsPerDay = 86400.0
	return massRateKgPerS * secondsPerDay / rhoStd, nil
}
