package maxrate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/stage"
	"github.com/equinor/ecalc-sub000/train"
)

func s1Chart(t *testing.T) *chart.SingleSpeed {
	c := chart.Curve{
		Speed: 7500,
		Q:     []float64{3000, 4000, 5000},
		H:     []float64{8500, 7500, 6500},
		Eta:   []float64{0.72, 0.74, 0.70},
	}
	sc, err := chart.NewSingleSpeed(c, chart.FromPercentage(0))
	require.NoError(t, err)
	return sc
}

// Searching for the largest feasible standard rate at a fixed (Ps,Pd)
// boundary; a rate 0.1% above it must fail.
func TestScenarioS6MaxRate(t *testing.T) {
	fm := fluid.NewModel(fluid.SRK)
	x, err := fluid.NewComposition(map[fluid.Component]float64{fluid.Methane: 1.0})
	require.NoError(t, err)

	c := s1Chart(t)
	s := stage.Stage{InletTemperature: 303.15, Chart: c}
	tr := train.SingleSpeedTrain{Base: train.Base{
		Stages:     []stage.Stage{s},
		FluidModel: fm,
		Policy:     control.DownstreamChoke,
	}}

	rateMax, err := Solve(tr, c, 20, 80, x, fm)
	require.NoError(t, err)
	require.Greater(t, rateMax, 0.0)

	massFlowOver, err := fm.MassRateFromStandardRate(rateMax*1.001, x)
	require.NoError(t, err)
	res, err := tr.Solve(train.Request{
		MassFlowRate:      massFlowOver,
		SuctionPressure:   20,
		DischargePressure: 80,
		InletComposition:  x,
	})
	infeasible := err != nil || res.Status != train.StatusOK
	require.True(t, infeasible)
}
