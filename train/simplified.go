package train

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/stage"
)

// SimplifiedVariableSpeedTrain solves each stage independently against a
// fixed pressure ratio r = (P_d/P_s)^(1/N); every stage then root-finds its
// own speed to reach its assigned outlet pressure. There is no inter-stage
// speed coupling beyond sequential composition and cooling.
//
// When StageTemplate is set (the model declared one stage config to be
// replicated, relying on MAXIMUM_PRESSURE_RATIO_PER_STAGE rather than an
// explicit STAGES list), N is undetermined until the first period is
// evaluated: ⌈log(P_d/P_s)/log(MAX_RATIO)⌉. FreezeStageCount computes N once
// and returns a concrete train with Stages populated; Solve returns an
// error for a train that has not been frozen. timeseries.Driver does not
// call FreezeStageCount, so a Driver given an unfrozen train reports every
// evaluated period as DID_NOT_CONVERGE.
type SimplifiedVariableSpeedTrain struct {
	Base
	StageTemplate            *stage.Stage
	MaxPressureRatioPerStage float64
}

func (t SimplifiedVariableSpeedTrain) Validate() error {
	if len(t.Stages) == 0 && t.StageTemplate == nil {
		return chk.Err("simplified variable-speed train invalid: STAGES or a stage template with MAXIMUM_PRESSURE_RATIO_PER_STAGE is required")
	}
	if len(t.Stages) == 0 {
		if t.MaxPressureRatioPerStage <= 1 {
			return chk.Err("simplified variable-speed train invalid: MAXIMUM_PRESSURE_RATIO_PER_STAGE must be > 1")
		}
		return nil
	}
	return t.Base.Validate()
}

// FreezeStageCount fixes N for a train whose stage count depends on the
// requested (Ps,Pd) split, returning a concrete train with Stages populated
// by replicating StageTemplate. If Stages is already set, it is returned
// unchanged (already frozen).
func (t SimplifiedVariableSpeedTrain) FreezeStageCount(ps, pd float64) (SimplifiedVariableSpeedTrain, error) {
	if len(t.Stages) > 0 {
		return t, nil
	}
	if ps <= 0 || pd <= ps {
		return SimplifiedVariableSpeedTrain{}, chk.Err("cannot freeze stage count: invalid pressure boundary Ps=%g Pd=%g", ps, pd)
	}
	n := int(math.Ceil(math.Log(pd/ps) / math.Log(t.MaxPressureRatioPerStage)))
	if n < 1 {
		n = 1
	}
	frozen := t
	frozen.Stages = make([]stage.Stage, n)
	for i := range frozen.Stages {
		frozen.Stages[i] = *t.StageTemplate
	}
	return frozen, nil
}

func (t SimplifiedVariableSpeedTrain) Solve(req Request) (Result, error) {
	if len(t.Stages) == 0 {
		return Result{}, chk.Err("simplified variable-speed train must be frozen via FreezeStageCount before Solve")
	}
	if err := t.Base.Validate(); err != nil {
		return Result{}, err
	}
	if err := freezeGenericInputCharts(t.Base, req); err != nil {
		return Result{}, err
	}

	n := len(t.Stages)
	ratio := math.Pow(req.DischargePressure/req.SuctionPressure, 1.0/float64(n))

	fm := t.FluidModel
	inState, err := fm.State(req.SuctionPressure, t.Stages[0].InletTemperature, req.InletComposition)
	if err != nil {
		return Result{}, err
	}

	results := make([]stage.Result, n)
	cur := inState
	for i, s := range t.Stages {
		targetPd := cur.P * ratio
		nMin, nMax := s.Chart.SpeedRange()
		speedAt := func(speed float64) (float64, error) {
			r, err := s.Evaluate(cur, fm, req.MassFlowRate, speed)
			if err != nil {
				return 0, err
			}
			return r.Outlet.P, nil
		}
		outcome, err := control.ReconcileRootFind(speedAt, nMin, nMax, targetPd)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		res, err := s.Evaluate(cur, fm, req.MassFlowRate, outcome.ControlValue)
		if err != nil {
			return Result{}, err
		}
		results[i] = res
		cur = res.Outlet
	}

	return assemble(t.Base, results, StatusOK, ""), nil
}
