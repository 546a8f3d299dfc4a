package train

import (
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/stage"
)

// SingleSpeedTrain is a train whose stages each run at their own chart's
// one fixed speed. Pressure control has no speed knob to turn,
// so DOWNSTREAM_CHOKE/UPSTREAM_CHOKE act on suction pressure and the ASV
// policies act on a common recycle fraction.
type SingleSpeedTrain struct {
	Base
}

func (t SingleSpeedTrain) Validate() error { return t.Base.Validate() }

func (t SingleSpeedTrain) Solve(req Request) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	if err := freezeGenericInputCharts(t.Base, req); err != nil {
		return Result{}, err
	}
	speedFor := ownChartSpeed(t.Base)

	detailedAtSuction := func(ps float64) (float64, []stage.Result, error) {
		return forwardChain(t.Base, ps, req.MassFlowRate, speedFor, 0, req.InletComposition)
	}
	detailedAtRecycle := func(recycleFrac float64) (float64, []stage.Result, error) {
		return forwardChain(t.Base, req.SuctionPressure, req.MassFlowRate, speedFor, recycleFrac, req.InletComposition)
	}
	scalarAtSuction := func(ps float64) (float64, error) {
		pd, _, err := detailedAtSuction(ps)
		return pd, err
	}
	scalarAtRecycle := func(r float64) (float64, error) {
		pd, _, err := detailedAtRecycle(r)
		return pd, err
	}

	pdNominal, nominalResults, err := detailedAtSuction(req.SuctionPressure)
	if err != nil {
		return Result{}, err
	}

	switch t.Policy {
	case control.UpstreamChoke:
		outcome, err := control.ReconcileRootFind(scalarAtSuction, 1, req.SuctionPressure, req.DischargePressure)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		_, results, err := detailedAtSuction(outcome.ControlValue)
		if err != nil {
			return Result{}, err
		}
		return assemble(t.Base, results, StatusOK, ""), nil

	case control.CommonASV, control.IndividualASVRate, control.IndividualASVPressure:
		if pdNominal < req.DischargePressure {
			return Result{Status: StatusInfeasible, FailureReason: "discharge pressure target unreachable"}, nil
		}
		outcome, err := control.ReconcileRootFind(scalarAtRecycle, 0, 50, req.DischargePressure)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		_, results, err := detailedAtRecycle(outcome.ControlValue)
		if err != nil {
			return Result{}, err
		}
		return assemble(t.Base, results, StatusOK, ""), nil

	default: // DOWNSTREAM_CHOKE
		outcome, err := control.ReconcileDownstreamChoke(scalarAtSuction, req.SuctionPressure, req.DischargePressure, t.MaximumDischargePressure, scalarAtSuction, 1, req.SuctionPressure)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		_, results, err := detailedAtSuction(outcome.ControlValue)
		if err != nil {
			return Result{}, err
		}
		return assemble(t.Base, results, StatusOK, ""), nil
	}
}

func statusResult(outcome control.Outcome) Result {
	switch outcome.Status {
	case control.Infeasible:
		return Result{Status: StatusInfeasible, FailureReason: "discharge pressure target unreachable"}
	default:
		return Result{Status: StatusDidNotConverge, FailureReason: "root-find did not converge"}
	}
}

// assemble sums shaft power from stage results and applies the
// MAXIMUM_POWER check.
func assemble(b Base, results []stage.Result, status Status, reason string) Result {
	res := Result{Stages: results, Status: status, FailureReason: reason}
	res.TotalShaftPowerMW = totalShaftPowerMW(b, results)
	return checkPowerLimit(b, res)
}
