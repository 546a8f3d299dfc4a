// package train implements sequential stage composition and the outer
// root-finders that reconcile a requested pressure boundary with a chain
// of compressor stages: SingleSpeedTrain, VariableSpeedTrain,
// SimplifiedVariableSpeedTrain and MultiStreamTrain.
package train

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/shaft"
	"github.com/equinor/ecalc-sub000/stage"
)

// Status is the train-level evaluation outcome.
type Status string

const (
	StatusOK             Status = "OK"
	StatusInfeasible     Status = "INFEASIBLE"
	StatusDidNotConverge Status = "DID_NOT_CONVERGE"
	StatusPowerLimit     Status = "POWER_LIMIT_EXCEEDED"
)

// Request is the Operating Request.
type Request struct {
	MassFlowRate            float64 // [kg/s]
	SuctionPressure         float64 // [bar]
	DischargePressure       float64 // [bar] target
	InterstagePressure      float64 // [bar]; 0 if unused
	StreamRates             map[string]float64 // [kg/s], multi-stream trains only
	InletComposition        fluid.Composition
}

// Result is the Operating Result: per-stage results plus the
// train-level totals.
type Result struct {
	Stages            []stage.Result
	TotalShaftPowerMW float64
	Speed             float64 // common speed [rpm], 0 for simplified trains
	Status            Status
	FailureReason     string
}

// Base holds the fields shared by every train subtype.
type Base struct {
	Stages               []stage.Stage
	FluidModel           *fluid.Model
	Policy               control.Policy
	MaximumPowerMW       float64 // 0 = unset
	MaximumDischargePressure float64 // [bar]; 0 = unset; only meaningful with DownstreamChoke
	MechanicalEfficiency shaft.Efficiency
}

// Validate checks the ModelInvalid invariants shared by every train
// subtype: at least one stage, eta_mech in (0,1], and
// MAXIMUM_DISCHARGE_PRESSURE set only under DOWNSTREAM_CHOKE.
func (b Base) Validate() error {
	if len(b.Stages) == 0 {
		return chk.Err("train invalid: at least one stage required")
	}
	for i, s := range b.Stages {
		if err := s.Validate(); err != nil {
			return chk.Err("train invalid: stage %d: %v", i, err)
		}
	}
	if b.MechanicalEfficiency == 0 {
		b.MechanicalEfficiency = 1
	}
	if err := b.MechanicalEfficiency.Validate(); err != nil {
		return err
	}
	if b.MaximumDischargePressure > 0 && b.Policy != control.DownstreamChoke {
		return chk.Err("train invalid: MAXIMUM_DISCHARGE_PRESSURE requires DOWNSTREAM_CHOKE policy")
	}
	return nil
}

// Train is implemented by every train subtype.
type Train interface {
	Solve(req Request) (Result, error)
}

// forwardChain runs the sequential stage-composition loop, starting from
// (ps, massFlow, x). speedFor(i) gives the speed each stage is queried at (a
// common n for variable-speed trains, or each stage's own fixed chart speed
// for single-speed trains). It does not apply any pressure-control policy;
// callers close over it for their outer root-find. recycleFrac, when > 0,
// is an additional common-ASV recycle fraction folded into every stage's
// through-flow before the chart query; 0 for policies that do not use a
// common recycle loop.
func forwardChain(b Base, ps, massFlow float64, speedFor func(i int) float64, recycleFrac float64, x fluid.Composition) (pOut float64, results []stage.Result, err error) {
	fm := b.FluidModel
	inState, err := fm.State(ps, b.Stages[0].InletTemperature, x)
	if err != nil {
		return 0, nil, err
	}
	effMassFlow := massFlow * (1 + recycleFrac)
	results = make([]stage.Result, len(b.Stages))
	cur := inState
	for i, s := range b.Stages {
		res, err := s.Evaluate(cur, fm, effMassFlow, speedFor(i))
		if err != nil {
			return 0, nil, err
		}
		results[i] = res
		cur = res.Outlet
	}
	return cur.P, results, nil
}

// freezeGenericInputCharts realizes every still-unfrozen GENERIC_FROM_INPUT
// chart in the train from the requested operating point: the overall
// pressure ratio is split evenly across stages (pre-stage chokes aside) to
// get each stage's target ratio, and the shape's own efficiency at its
// nominal design point stands in for the chart efficiency that isn't known
// until the chart itself exists. Charts already frozen (GENERIC_FROM_INPUT
// charts reused on later periods, or any other chart type) are untouched.
func freezeGenericInputCharts(b Base, req Request) error {
	n := len(b.Stages)
	if n == 0 {
		return nil
	}
	overallRatio := req.DischargePressure / req.SuctionPressure
	if overallRatio <= 0 {
		return chk.Err("train invalid: cannot freeze a generic chart from a non-positive pressure ratio")
	}
	rPerStage := math.Pow(overallRatio, 1.0/float64(n))

	fm := b.FluidModel
	pIn := req.SuctionPressure
	for _, s := range b.Stages {
		gc, ok := s.Chart.(*chart.Generic)
		if ok && !gc.Frozen() {
			in, err := fm.State(pIn, s.InletTemperature, req.InletComposition)
			if err != nil {
				return err
			}
			q1 := req.MassFlowRate / in.Rho * 3600
			eta, err := gc.DesignEfficiencyGuess()
			if err != nil {
				return err
			}
			hd, err := stage.EstimateHead(in, rPerStage, eta)
			if err != nil {
				return err
			}
			if err := gc.Freeze(q1, hd); err != nil {
				return err
			}
		}
		pIn *= rPerStage
	}
	return nil
}

// commonSpeed returns a speedFor closure that queries every stage at the
// same speed n (VariableSpeedTrain).
func commonSpeed(n float64) func(i int) float64 {
	return func(i int) float64 { return n }
}

// ownChartSpeed returns a speedFor closure that queries each stage at its
// own chart's fixed speed (SingleSpeedTrain).
func ownChartSpeed(b Base) func(i int) float64 {
	return func(i int) float64 {
		nMin, _ := b.Stages[i].Chart.SpeedRange()
		return nMin
	}
}

// totalShaftPowerMW sums per-stage gas power and converts to shaft power via
// eta_mech; the total is reported directly, never recomputed a second way.
func totalShaftPowerMW(b Base, results []stage.Result) float64 {
	gasPowerW := 0.0
	for _, r := range results {
		gasPowerW += r.GasPowerW
	}
	eta := b.MechanicalEfficiency
	if eta == 0 {
		eta = 1
	}
	return eta.PowerW(gasPowerW) / 1e6
}

// checkPowerLimit applies MAXIMUM_POWER check.
func checkPowerLimit(b Base, res Result) Result {
	if b.MaximumPowerMW > 0 && res.TotalShaftPowerMW > b.MaximumPowerMW {
		res.Status = StatusPowerLimit
		res.FailureReason = "shaft power exceeds MAXIMUM_POWER"
	}
	return res
}
