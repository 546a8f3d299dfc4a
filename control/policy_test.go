package control

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// linearForward models a train whose achievable discharge pressure rises
// linearly with the control variable, just enough to exercise the root
// finders without needing a real train.
func linearForward(slope, intercept float64) ForwardFunc {
	return func(x float64) (float64, error) { return intercept + slope*x, nil }
}

func TestReconcileRootFindConverges(t *testing.T) {
	fwd := linearForward(2.0, 20.0) // pd = 20 + 2x
	out, err := ReconcileRootFind(fwd, 0, 100, 80.0)
	require.NoError(t, err)
	require.Equal(t, OK, out.Status)
	require.InDelta(t, 30.0, out.ControlValue, 1e-4)
	require.InDelta(t, 80.0, out.AchievedDischargePressure, PressureTol)
}

func TestReconcileRootFindOutOfBracketIsNotConverged(t *testing.T) {
	fwd := linearForward(1.0, 20.0) // pd in [20,120] over x in [0,100]
	out, err := ReconcileRootFind(fwd, 0, 100, 500.0)
	require.NoError(t, err)
	require.Equal(t, DidNotConverge, out.Status)
}

// : DOWNSTREAM_CHOKE requires pdAtFloor >= target, chokes the
// excess.
func TestDownstreamChokeDropsExcess(t *testing.T) {
	fwd := func(n float64) (float64, error) { return 95.0, nil }
	out, err := ReconcileDownstreamChoke(fwd, 9000, 80.0, 0, nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, OK, out.Status)
	require.InDelta(t, 80.0, out.AchievedDischargePressure, 1e-9)
	require.InDelta(t, 15.0, out.ChokeDropBar, 1e-9)
}

func TestDownstreamChokeInfeasibleBelowTarget(t *testing.T) {
	fwd := func(n float64) (float64, error) { return 60.0, nil }
	out, err := ReconcileDownstreamChoke(fwd, 9000, 80.0, 0, nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, Infeasible, out.Status)
}

// When MAXIMUM_DISCHARGE_PRESSURE is exceeded, an upstream choke first
// brings the train down to that ceiling, then the downstream choke drops
// the remainder to target.
func TestDownstreamChokeAppliesUpstreamChokeWhenCeilingExceeded(t *testing.T) {
	fwdAtFloor := func(n float64) (float64, error) { return 150.0, nil }
	upstream := linearForward(1.0, 50.0) // pd = 50 + ps
	out, err := ReconcileDownstreamChoke(fwdAtFloor, 9000, 80.0, 100.0, upstream, 0, 100)
	require.NoError(t, err)
	require.Equal(t, OK, out.Status)
	require.InDelta(t, 80.0, out.AchievedDischargePressure, 1e-9)
	require.InDelta(t, 20.0, out.ChokeDropBar, 1e-9) // 100 - 80
	require.InDelta(t, 50.0, out.ControlValue, PressureTol)
}
