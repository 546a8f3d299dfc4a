package model

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/shaft"
	"github.com/equinor/ecalc-sub000/stage"
	"github.com/equinor/ecalc-sub000/train"
	"github.com/equinor/ecalc-sub000/turbine"
)

// rawCurve is one YAML CHARTS[i].CURVES[j] entry.
type rawCurve struct {
	Speed float64   `yaml:"SPEED"`
	Q     []float64 `yaml:"Q"`
	H     []float64 `yaml:"HEAD"`
	Eta   []float64 `yaml:"EFFICIENCY"`
}

// rawChart is one YAML MODELS.CHARTS entry. TYPE selects which chart
// constructor to invoke; the remaining fields are interpreted accordingly.
type rawChart struct {
	Name         string     `yaml:"NAME"`
	Type         string     `yaml:"TYPE"` // SINGLE_SPEED | VARIABLE_SPEED | GENERIC_FROM_DESIGN_POINT | GENERIC_FROM_INPUT
	Curves       []rawCurve `yaml:"CURVES"`
	DesignFlow   float64    `yaml:"DESIGN_FLOW"`
	DesignHead   float64    `yaml:"DESIGN_HEAD"`
	DesignEta    float64    `yaml:"DESIGN_EFFICIENCY"`
	SurgeControlMarginPercent float64 `yaml:"SURGE_CONTROL_MARGIN"`
}

// rawFluid is one YAML MODELS.FLUIDS entry.
type rawFluid struct {
	Name string `yaml:"NAME"`
	EOS  string `yaml:"EOS"`
}

// rawStage is one YAML TRAINS[i].STAGES entry.
type rawStage struct {
	InletTemperatureC float64 `yaml:"INLET_TEMPERATURE"` // degC on input
	Chart             string  `yaml:"CHART"`
	PressureDropAhead float64 `yaml:"PRESSURE_DROP_AHEAD"`
}

// rawTrain is one YAML MODELS.TRAINS entry.
type rawTrain struct {
	Name                     string     `yaml:"NAME"`
	Type                     string     `yaml:"TYPE"` // SINGLE_SPEED | VARIABLE_SPEED | SIMPLIFIED_VARIABLE_SPEED
	FluidModel               string     `yaml:"FLUID_MODEL"`
	Stages                   []rawStage `yaml:"STAGES"`
	Policy                   string     `yaml:"PRESSURE_CONTROL"`
	MaximumPowerMW           float64    `yaml:"MAXIMUM_POWER"`
	MaximumDischargePressure float64    `yaml:"MAXIMUM_DISCHARGE_PRESSURE"`
	MechanicalEfficiency     float64    `yaml:"MECHANICAL_EFFICIENCY"`
	MaxPressureRatioPerStage float64    `yaml:"MAXIMUM_PRESSURE_RATIO_PER_STAGE"`
}

// rawTurbine is one YAML MODELS.TURBINES entry.
type rawTurbine struct {
	Name       string    `yaml:"NAME"`
	Load       []float64 `yaml:"LOAD"`
	Efficiency []float64 `yaml:"EFFICIENCY"`
	LHV        float64   `yaml:"LHV"`
}

// rawModel is the top-level MODELS section.
type rawModel struct {
	Fluids   []rawFluid   `yaml:"FLUIDS"`
	Charts   []rawChart   `yaml:"CHARTS"`
	Trains   []rawTrain   `yaml:"TRAINS"`
	Turbines []rawTurbine `yaml:"TURBINES"`
}

type rawFile struct {
	Models rawModel `yaml:"MODELS"`
}

// Loader decodes a YAML model file into a validated Graph. This is the one
// place ModelInvalid failures are raised: every sub-object's
// own Validate()/New* constructor runs during Load, so a Graph that comes
// back from Load is guaranteed internally consistent.
type Loader struct{}

// Load reads and decodes the YAML file at path, builds every fluid model,
// chart, stage, train and turbine it declares, and returns the resulting
// Graph. Charts are built before the trains that reference them;
// GENERIC_FROM_DESIGN_POINT charts are frozen here against their declared
// design point, while GENERIC_FROM_INPUT charts are left unfrozen and are
// frozen by the owning train's first Solve.
func (Loader) Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("model load: %v", err)
	}
	var rf rawFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, chk.Err("model load: invalid YAML: %v", err)
	}
	return buildGraph(rf.Models)
}

func buildGraph(m rawModel) (*Graph, error) {
	g := NewGraph()

	for _, rf := range m.Fluids {
		eos := fluid.EOS(rf.EOS)
		switch eos {
		case fluid.SRK, fluid.PR, fluid.GergSRK, fluid.GergPR:
		default:
			return nil, chk.Err("model invalid: fluid %q has unknown EOS %q", rf.Name, rf.EOS)
		}
		g.Fluids[rf.Name] = fluid.NewModel(eos)
	}

	for _, rc := range m.Charts {
		c, err := buildChart(rc)
		if err != nil {
			return nil, chk.Err("model invalid: chart %q: %v", rc.Name, err)
		}
		g.Charts[rc.Name] = c
	}

	for _, rt := range m.Trains {
		tr, err := buildTrain(g, rt)
		if err != nil {
			return nil, chk.Err("model invalid: train %q: %v", rt.Name, err)
		}
		g.Trains[rt.Name] = tr
	}

	for _, rtb := range m.Turbines {
		tb := turbine.Turbine{Load: rtb.Load, Efficiency: rtb.Efficiency, LHV: rtb.LHV}
		if err := tb.Validate(); err != nil {
			return nil, chk.Err("model invalid: turbine %q: %v", rtb.Name, err)
		}
		g.Turbines[rtb.Name] = tb
	}

	return g, nil
}

func buildChart(rc rawChart) (chart.Chart, error) {
	margin := chart.FromPercentage(rc.SurgeControlMarginPercent)
	curves := make([]chart.Curve, len(rc.Curves))
	for i, rcv := range rc.Curves {
		curves[i] = chart.Curve{Speed: rcv.Speed, Q: rcv.Q, H: rcv.H, Eta: rcv.Eta}
	}

	switch rc.Type {
	case "SINGLE_SPEED":
		if len(curves) != 1 {
			return nil, chk.Err("single-speed chart requires exactly one curve")
		}
		return chart.NewSingleSpeed(curves[0], margin)
	case "VARIABLE_SPEED":
		return chart.NewVariableSpeed(curves, margin)
	case "GENERIC_FROM_DESIGN_POINT":
		shape := make([]chart.NormalizedPoint, len(rc.Curves))
		for i, rcv := range rc.Curves {
			if len(rcv.Q) != 1 || len(rcv.H) != 1 || len(rcv.Eta) != 1 {
				return nil, chk.Err("generic chart shape points must have exactly one (Q,H,EFFICIENCY) each")
			}
			shape[i] = chart.NormalizedPoint{Q: rcv.Q[0], H: rcv.H[0], Eta: rcv.Eta[0]}
		}
		g, err := chart.NewGeneric(shape, margin)
		if err != nil {
			return nil, err
		}
		if err := g.Freeze(rc.DesignFlow, rc.DesignHead); err != nil {
			return nil, err
		}
		return g, nil
	case "GENERIC_FROM_INPUT":
		shape := make([]chart.NormalizedPoint, len(rc.Curves))
		for i, rcv := range rc.Curves {
			if len(rcv.Q) != 1 || len(rcv.H) != 1 || len(rcv.Eta) != 1 {
				return nil, chk.Err("generic chart shape points must have exactly one (Q,H,EFFICIENCY) each")
			}
			shape[i] = chart.NormalizedPoint{Q: rcv.Q[0], H: rcv.H[0], Eta: rcv.Eta[0]}
		}
		// no declared design point: left unfrozen here, and realized by the
		// owning train from its first requested operating point.
		return chart.NewGeneric(shape, margin)
	default:
		return nil, chk.Err("unknown chart type %q", rc.Type)
	}
}

func buildTrain(g *Graph, rt rawTrain) (train.Train, error) {
	fm, err := g.Fluid(rt.FluidModel)
	if err != nil {
		return nil, err
	}
	stages := make([]stage.Stage, len(rt.Stages))
	for i, rs := range rt.Stages {
		c, err := g.Chart(rs.Chart)
		if err != nil {
			return nil, err
		}
		stages[i] = stage.Stage{
			InletTemperature:  rs.InletTemperatureC + 273.15,
			Chart:             c,
			PressureDropAhead: rs.PressureDropAhead,
		}
	}

	eta := shaft.Efficiency(rt.MechanicalEfficiency)
	if eta == 0 {
		eta = 1
	}

	base := train.Base{
		Stages:                   stages,
		FluidModel:               fm,
		Policy:                   control.Policy(rt.Policy),
		MaximumPowerMW:           rt.MaximumPowerMW,
		MaximumDischargePressure: rt.MaximumDischargePressure,
		MechanicalEfficiency:     eta,
	}

	switch rt.Type {
	case "SINGLE_SPEED", "":
		tr := train.SingleSpeedTrain{Base: base}
		return tr, tr.Validate()
	case "VARIABLE_SPEED":
		tr := train.VariableSpeedTrain{Base: base}
		return tr, tr.Validate()
	case "SIMPLIFIED_VARIABLE_SPEED":
		tr := train.SimplifiedVariableSpeedTrain{Base: base, MaxPressureRatioPerStage: rt.MaxPressureRatioPerStage}
		return tr, tr.Validate()
	default:
		return nil, chk.Err("unknown train type %q", rt.Type)
	}
}
