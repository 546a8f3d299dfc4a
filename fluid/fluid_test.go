package fluid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pureMethane(t *testing.T) Composition {
	x, err := NewComposition(map[Component]float64{Methane: 1.0})
	require.NoError(t, err)
	return x
}

func gasMix(t *testing.T) Composition {
	x, err := NewComposition(map[Component]float64{
		Methane: 0.85, Ethane: 0.08, Propane: 0.04, Nitrogen: 0.02, CO2: 0.01,
	})
	require.NoError(t, err)
	return x
}

func TestCompositionRequiresMethane(t *testing.T) {
	_, err := NewComposition(map[Component]float64{Ethane: 1.0})
	require.Error(t, err)
}

func TestCompositionRejectsNegativeFraction(t *testing.T) {
	_, err := NewComposition(map[Component]float64{Methane: 1.0, Ethane: -0.1})
	require.Error(t, err)
}

func TestCompositionNormalizes(t *testing.T) {
	x, err := NewComposition(map[Component]float64{Methane: 2.0, Ethane: 2.0})
	require.NoError(t, err)
	require.InDelta(t, 0.5, x.Fraction(Methane), 1e-12)
	require.InDelta(t, 0.5, x.Fraction(Ethane), 1e-12)
}

// For dry gas at valid (P,T,x), the compressibility factor and density
// should stay in their physical ranges: 0.2<=Z<=1.5, rho>0.
func TestEOSInvariants(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	cases := []struct{ p, t float64 }{
		{20, 303.15}, {80, 353.15}, {150, 400}, {1.01325, 288.15},
	}
	for _, c := range cases {
		st, err := m.State(c.p, c.t, x)
		require.NoError(t, err)
		require.GreaterOrEqual(t, st.Z, 0.2, "P=%v T=%v", c.p, c.t)
		require.LessOrEqual(t, st.Z, 1.5, "P=%v T=%v", c.p, c.t)
		require.Greater(t, st.Rho, 0.0)
		require.Greater(t, st.K, 1.0)
	}
}

func TestEOSBothFamilies(t *testing.T) {
	x := pureMethane(t)
	for _, eos := range []EOS{SRK, PR, GergSRK, GergPR} {
		m := NewModel(eos)
		st, err := m.State(50, 310, x)
		require.NoError(t, err)
		require.Greater(t, st.Rho, 0.0)
	}
}

// Mixing two identical streams should yield the identical state.
func TestMixIdenticalStreamsIsIdentity(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	st, err := m.State(40, 320, x)
	require.NoError(t, err)
	mixed, err := MixStreams(m, []Stream{
		{MassRate: 10, State: st},
		{MassRate: 10, State: st},
	})
	require.NoError(t, err)
	require.InDelta(t, st.Rho, mixed.Rho, 1e-6)
	require.InDelta(t, st.H, mixed.H, 1e-3)
	require.InDelta(t, st.T, mixed.T, 1e-4)
}

func TestMixDifferentTemperaturesBalancesEnthalpy(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	hot, err := m.State(40, 360, x)
	require.NoError(t, err)
	cold, err := m.State(40, 300, x)
	require.NoError(t, err)
	mixed, err := MixStreams(m, []Stream{
		{MassRate: 5, State: hot},
		{MassRate: 15, State: cold},
	})
	require.NoError(t, err)
	require.Greater(t, mixed.T, cold.T)
	require.Less(t, mixed.T, hot.T)
}

func TestMixMismatchedPressureFails(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	a, err := m.State(40, 300, x)
	require.NoError(t, err)
	b, err := m.State(41, 300, x)
	require.NoError(t, err)
	_, err = MixStreams(m, []Stream{{MassRate: 5, State: a}, {MassRate: 5, State: b}})
	require.ErrorIs(t, err, ErrMismatchedMixingPressure)
}

func TestStandardDensityPositive(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	rho, err := m.StandardDensity(x)
	require.NoError(t, err)
	require.Greater(t, rho, 0.0)
	require.Less(t, rho, 2.0) // dry gas at standard conditions is a few hundred g/m3 to low kg/m3
}

func TestMassStandardRateRoundTrip(t *testing.T) {
	m := NewModel(SRK)
	x := gasMix(t)
	massRate, err := m.MassRateFromStandardRate(2e6, x)
	require.NoError(t, err)
	stdRate, err := m.StandardRateFromMassRate(massRate, x)
	require.NoError(t, err)
	require.InDelta(t, 2e6, stdRate, 1e-6)
}
