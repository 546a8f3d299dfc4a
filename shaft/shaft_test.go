package shaft

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEfficiencyValidate(t *testing.T) {
	require.NoError(t, Efficiency(1).Validate())
	require.NoError(t, Efficiency(0.9).Validate())
	require.Error(t, Efficiency(0).Validate())
	require.Error(t, Efficiency(1.01).Validate())
	require.Error(t, Efficiency(-0.5).Validate())
}

func TestPowerWDividesByEfficiency(t *testing.T) {
	e := Efficiency(0.95)
	require.InDelta(t, 1e6/0.95, e.PowerW(1e6), 1e-6)
}

func TestFromDeprecatedFactor(t *testing.T) {
	require.InDelta(t, 0.8, float64(FromDeprecatedFactor(1.25)), 1e-9)
	require.Equal(t, Efficiency(1), FromDeprecatedFactor(0))
	require.Equal(t, Efficiency(1), FromDeprecatedFactor(-2))
}
