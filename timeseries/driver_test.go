package timeseries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/stage"
	"github.com/equinor/ecalc-sub000/train"
)

func testTrain(t *testing.T) (train.Train, *fluid.Model, fluid.Composition) {
	c := chart.Curve{
		Speed: 7500,
		Q:     []float64{3000, 4000, 5000},
		H:     []float64{8500, 7500, 6500},
		Eta:   []float64{0.72, 0.74, 0.70},
	}
	sc, err := chart.NewSingleSpeed(c, chart.FromPercentage(0))
	require.NoError(t, err)

	fm := fluid.NewModel(fluid.SRK)
	x, err := fluid.NewComposition(map[fluid.Component]float64{fluid.Methane: 1.0})
	require.NoError(t, err)

	tr := train.SingleSpeedTrain{Base: train.Base{
		Stages:     []stage.Stage{{InletTemperature: 303.15, Chart: sc}},
		FluidModel: fm,
		Policy:     control.DownstreamChoke,
	}}
	return tr, fm, x
}

// A condition mask zeroes out a period without invoking the train solver;
// a true condition evaluates normally.
func TestScenarioS5ConditionMasksPeriod(t *testing.T) {
	tr, fm, x := testTrain(t)
	d := Driver{Train: tr, FluidModel: fm}

	periods := []Period{
		{StandardRate: 2e6, SuctionPressure: 20, DischargePressure: 20.5, Condition: 0, Composition: x},
		{StandardRate: 2e6, SuctionPressure: 20, DischargePressure: 20.5, Condition: 1, Composition: x},
	}

	res, err := d.Run(context.Background(), periods, nil)
	require.NoError(t, err)
	require.Len(t, res.Periods, 2)

	require.Equal(t, StatusConditionFalse, res.Periods[0].Status)
	require.Equal(t, 0.0, res.Periods[0].PowerMW)
	require.Nil(t, res.Periods[0].TrainResult)

	require.Equal(t, StatusOK, res.Periods[1].Status)
	require.Greater(t, res.Periods[1].PowerMW, 0.0)
	require.NotNil(t, res.Periods[1].TrainResult)

	require.Equal(t, 1, res.Summary.Counts[StatusConditionFalse])
}

func TestDriverRunsSequentiallyByDefault(t *testing.T) {
	tr, fm, x := testTrain(t)
	d := Driver{Train: tr, FluidModel: fm}

	periods := make([]Period, 5)
	for i := range periods {
		periods[i] = Period{StandardRate: 2e6, SuctionPressure: 20, DischargePressure: 20.5, Condition: 1, Composition: x}
	}
	var progressCalls []int
	res, err := d.Run(context.Background(), periods, func(done, total int) {
		progressCalls = append(progressCalls, done)
	})
	require.NoError(t, err)
	require.Len(t, res.Periods, 5)
	require.Len(t, progressCalls, 5)
	for _, r := range res.Periods {
		require.Equal(t, StatusOK, r.Status)
	}
}
