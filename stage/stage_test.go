package stage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/fluid"
)

func s1Chart(t *testing.T) *chart.SingleSpeed {
	c := chart.Curve{
		Speed: 7500,
		Q:     []float64{3000, 4000, 5000},
		H: []float64{ // heads given in meters
			chart.ToJPerKg(8500, chart.HeadMeter),
			chart.ToJPerKg(7500, chart.HeadMeter),
			chart.ToJPerKg(6500, chart.HeadMeter),
		},
		Eta: []float64{0.72, 0.74, 0.70},
	}
	sc, err := chart.NewSingleSpeed(c, chart.FromPercentage(0))
	require.NoError(t, err)
	return sc
}

func methaneModel(t *testing.T) (*fluid.Model, fluid.Composition) {
	m := fluid.NewModel(fluid.SRK)
	x, err := fluid.NewComposition(map[fluid.Component]float64{fluid.Methane: 1.0})
	require.NoError(t, err)
	return m, x
}

// A single stage evaluated directly against a known chart operating point.
func TestScenarioS1SingleStageDirectSolve(t *testing.T) {
	fm, x := methaneModel(t)
	in, err := fm.State(20, 303.15, x)
	require.NoError(t, err)

	s := Stage{InletTemperature: 303.15, Chart: s1Chart(t)}
	stdRatePerDay := 2e6
	massFlow, err := fm.MassRateFromStandardRate(stdRatePerDay, x)
	require.NoError(t, err)

	res, err := s.Evaluate(in, fm, massFlow, 7500)
	require.NoError(t, err)
	require.Equal(t, OK, res.Classification)
	powerMW := res.GasPowerW / 1e6
	require.GreaterOrEqual(t, powerMW, 0.5)
	require.LessOrEqual(t, powerMW, 6.0)
	tOutC := res.Outlet.T - 273.15
	require.Greater(t, tOutC, 30.0)
	require.Less(t, tOutC, 250.0)
}

// Stage evaluation preserves mass (ASV is internal recycle, not a boundary
// flow): the through-flow into the next stage equals the flow handed to
// Evaluate, regardless of recycling.
func TestStagePreservesMassAcrossRecycle(t *testing.T) {
	fm, x := methaneModel(t)
	in, err := fm.State(20, 303.15, x)
	require.NoError(t, err)
	s := Stage{InletTemperature: 303.15, Chart: s1Chart(t)}

	lowMassFlow, err := fm.MassRateFromStandardRate(3e5, x)
	require.NoError(t, err)
	res, err := s.Evaluate(in, fm, lowMassFlow, 7500)
	require.NoError(t, err)
	require.Equal(t, SurgeRecycle, res.Classification)
	require.Greater(t, res.RecycleFraction, 0.0)
	// the stage's contract is that the caller still only propagates
	// lowMassFlow downstream; Evaluate does not mutate or return a
	// different through-flow value.
}

func TestStageRejectsNonPositiveInletTemperature(t *testing.T) {
	s := Stage{InletTemperature: 0, Chart: s1Chart(t)}
	require.Error(t, s.Validate())
}
