package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
MODELS:
  FLUIDS:
    - NAME: rich_gas
      EOS: SRK
  CHARTS:
    - NAME: stage1_chart
      TYPE: SINGLE_SPEED
      CURVES:
        - SPEED: 7500
          Q: [3000, 4000, 5000]
          HEAD: [8500, 7500, 6500]
          EFFICIENCY: [0.72, 0.74, 0.70]
  TRAINS:
    - NAME: export_train
      TYPE: SINGLE_SPEED
      FLUID_MODEL: rich_gas
      PRESSURE_CONTROL: DOWNSTREAM_CHOKE
      STAGES:
        - INLET_TEMPERATURE: 30
          CHART: stage1_chart
  TURBINES:
    - NAME: main_turbine
      LOAD: [0, 10, 20]
      EFFICIENCY: [0, 0.30, 0.36]
      LHV: 38
`

func writeSample(t *testing.T) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoaderBuildsGraph(t *testing.T) {
	path := writeSample(t)
	g, err := Loader{}.Load(path)
	require.NoError(t, err)

	fm, err := g.Fluid("rich_gas")
	require.NoError(t, err)
	require.NotNil(t, fm)

	c, err := g.Chart("stage1_chart")
	require.NoError(t, err)
	require.NotNil(t, c)

	tr, err := g.Train("export_train")
	require.NoError(t, err)
	require.NotNil(t, tr)

	tb, err := g.Turbine("main_turbine")
	require.NoError(t, err)
	require.Equal(t, 38.0, tb.LHV)
}

func TestLoaderRejectsUnknownChartReference(t *testing.T) {
	bad := `
MODELS:
  FLUIDS:
    - NAME: rich_gas
      EOS: SRK
  TRAINS:
    - NAME: export_train
      TYPE: SINGLE_SPEED
      FLUID_MODEL: rich_gas
      STAGES:
        - INLET_TEMPERATURE: 30
          CHART: missing_chart
`
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := Loader{}.Load(path)
	require.Error(t, err)
}

func TestLoaderRejectsUnknownEOS(t *testing.T) {
	bad := `
MODELS:
  FLUIDS:
    - NAME: rich_gas
      EOS: NOT_A_REAL_EOS
`
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := Loader{}.Load(path)
	require.Error(t, err)
}
