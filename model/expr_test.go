package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExprNumber(t *testing.T) {
	e, err := ParseExpr("42.5")
	require.NoError(t, err)
	v, err := e.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, 42.5, v)
}

func TestParseExprSeriesRef(t *testing.T) {
	e, err := ParseExpr("SIM;WATER_PROD")
	require.NoError(t, err)
	v, err := e.Eval(map[string]float64{"SIM;WATER_PROD": 2000})
	require.NoError(t, err)
	require.Equal(t, 2000.0, v)
}

func TestParseExprVarRef(t *testing.T) {
	e, err := ParseExpr("$var.RATE")
	require.NoError(t, err)
	v, err := e.Eval(map[string]float64{"$var.RATE": 7})
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
}

func TestParseExprArithmetic(t *testing.T) {
	e, err := ParseExpr("$var.A {+} $var.B {*} 2")
	require.NoError(t, err)
	v, err := e.Eval(map[string]float64{"$var.A": 1, "$var.B": 3})
	require.NoError(t, err)
	require.Equal(t, 7.0, v) // A + (B*2), since {*} binds tighter than {+}
}

// A condition expression that compares a series value against a threshold.
func TestParseExprComparison(t *testing.T) {
	e, err := ParseExpr("SIM;WATER_PROD > 1500")
	require.NoError(t, err)

	below, err := e.Eval(map[string]float64{"SIM;WATER_PROD": 1000})
	require.NoError(t, err)
	require.Equal(t, 0.0, below)

	above, err := e.Eval(map[string]float64{"SIM;WATER_PROD": 2000})
	require.NoError(t, err)
	require.Equal(t, 1.0, above)
}

func TestParseExprDivisionByZero(t *testing.T) {
	e, err := ParseExpr("1 {/} 0")
	require.NoError(t, err)
	_, err = e.Eval(nil)
	require.Error(t, err)
}
