package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCurve(speed float64) Curve {
	return Curve{
		Speed: speed,
		Q:     []float64{3000, 4000, 5000},
		H:     []float64{8500, 7500, 6500},
		Eta:   []float64{0.72, 0.74, 0.70},
	}
}

func TestCurveValidate(t *testing.T) {
	require.NoError(t, sampleCurve(7500).Validate())

	bad := sampleCurve(7500)
	bad.Q[1] = bad.Q[0]
	require.Error(t, bad.Validate())

	bad2 := sampleCurve(7500)
	bad2.H[1] = bad2.H[0] + 1
	require.Error(t, bad2.Validate())
}

// Invariant/boundary law 10: at Q=Q_min_eff exactly, classification is OK
// (Internal), not BELOW_SURGE.
func TestSingleSpeedAtExactSurgeBoundaryIsInternal(t *testing.T) {
	sc, err := NewSingleSpeed(sampleCurve(7500), FromPercentage(10))
	require.NoError(t, err)
	qMinEff, _, err := sc.Envelope(7500)
	require.NoError(t, err)
	_, class, err := sc.Query(qMinEff, 7500)
	require.NoError(t, err)
	require.Equal(t, Internal, class)
}

func TestSingleSpeedBelowSurgeAndAboveStonewall(t *testing.T) {
	sc, err := NewSingleSpeed(sampleCurve(7500), FromPercentage(10))
	require.NoError(t, err)
	_, class, err := sc.Query(100, 7500)
	require.NoError(t, err)
	require.Equal(t, BelowSurge, class)

	_, class, err = sc.Query(100000, 7500)
	require.NoError(t, err)
	require.Equal(t, AboveStonewall, class)
}

func TestVariableSpeedInterpolatesBetweenCurves(t *testing.T) {
	vs, err := NewVariableSpeed([]Curve{sampleCurve(6000), sampleCurve(8000)}, Margin(0))
	require.NoError(t, err)
	pt, class, err := vs.Query(4000, 7000)
	require.NoError(t, err)
	require.Equal(t, Internal, class)
	require.InDelta(t, 7500, pt.Head, 1e-9)
}

func TestVariableSpeedOutsideSpeedRange(t *testing.T) {
	vs, err := NewVariableSpeed([]Curve{sampleCurve(6000), sampleCurve(8000)}, Margin(0))
	require.NoError(t, err)
	_, class, err := vs.Query(4000, 5000)
	require.NoError(t, err)
	require.Equal(t, BelowMinSpeed, class)

	_, class, err = vs.Query(4000, 9000)
	require.NoError(t, err)
	require.Equal(t, AboveMaxSpeed, class)
}

// Round-trip law 8: a variable-speed chart built from a generic chart with
// design point (Qd,Hd) and queried at (Qd, n_design) returns Hd.
func TestGenericChartRoundTripsDesignPoint(t *testing.T) {
	shape := []NormalizedPoint{
		{Q: 0.5, H: 1.2, Eta: 0.78},
		{Q: 0.8, H: 1.05, Eta: 0.80},
		{Q: 1.0, H: 0.9, Eta: 0.78},
		{Q: 1.3, H: 0.6, Eta: 0.70},
	}
	g, err := NewGeneric(shape, Margin(0))
	require.NoError(t, err)
	const qd, hd = 10000.0, 80000.0
	require.NoError(t, g.Freeze(qd, hd))

	nMin, nMax := g.SpeedRange()
	lam := (1.0 - relativeSpeeds[0]) / (relativeSpeeds[len(relativeSpeeds)-1] - relativeSpeeds[0])
	nDesign := nMin + lam*(nMax-nMin)
	pt, class, err := g.Query(qd*1.0, nDesign)
	require.NoError(t, err)
	require.Equal(t, Internal, class)
	require.InDelta(t, hd, pt.Head, hd*1e-6)
}

func TestAffinitySpeedSetIsDense(t *testing.T) {
	speeds := affinitySpeedSet(7)
	require.Len(t, speeds, 7)
	require.InDelta(t, 0.5, speeds[0], 1e-9)
	require.InDelta(t, 1.1, speeds[len(speeds)-1], 1e-9)
}

func TestMarginFromPercentage(t *testing.T) {
	m := FromPercentage(10)
	require.InDelta(t, 0.1, float64(m), 1e-12)
	require.InDelta(t, 100+0.1*(200-100), m.Effective(100, 200), 1e-9)
}
