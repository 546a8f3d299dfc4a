package turbine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTurbine() Turbine {
	return Turbine{
		Load:       []float64{0, 10, 20},
		Efficiency: []float64{0, 0.30, 0.36},
		LHV:        38,
	}
}

func TestTurbineValidate(t *testing.T) {
	require.NoError(t, sampleTurbine().Validate())

	bad := sampleTurbine()
	bad.Load[0] = 1
	require.Error(t, bad.Validate())

	bad2 := sampleTurbine()
	bad2.Load[1] = bad2.Load[0]
	require.Error(t, bad2.Validate())
}

// Shaft power feeds fuel rate through the turbine's load/efficiency table.
func TestScenarioS4TurbineCoupling(t *testing.T) {
	tb := sampleTurbine()
	rate, err := tb.FuelRate(15)
	require.NoError(t, err)
	expectedEta := 0.33
	expected := 15 * 86400 / (expectedEta * 38 * 1e6 / rhoStdFuelGas)
	require.InDelta(t, expected, rate, expected*1e-9)
}

// Exact zero load should yield zero fuel.
func TestTurbineZeroLoadIsZeroFuel(t *testing.T) {
	tb := sampleTurbine()
	rate, err := tb.FuelRate(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, rate)
}

func TestTurbineOutOfRangeFails(t *testing.T) {
	tb := sampleTurbine()
	_, err := tb.FuelRate(-1)
	require.ErrorIs(t, err, ErrLoadOutOfRange)
	_, err = tb.FuelRate(25)
	require.ErrorIs(t, err, ErrLoadOutOfRange)
}

func TestPowerAdjustmentConstantAddsOnlyWhenPositive(t *testing.T) {
	tb := sampleTurbine()
	tb.PowerAdjustmentConstant = 2
	rateWithAdj, err := tb.FuelRate(8)
	require.NoError(t, err)
	rateNoAdj, err := (Turbine{Load: tb.Load, Efficiency: tb.Efficiency, LHV: tb.LHV}).FuelRate(10)
	require.NoError(t, err)
	require.InDelta(t, rateNoAdj, rateWithAdj, 1e-9)

	zero, err := tb.FuelRate(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, zero)
}
