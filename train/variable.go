package train

import (
	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/stage"
)

// VariableSpeedTrain runs every stage at one common speed n, solved by an
// outer Brent root-find against the discharge-pressure target. If the train cannot deliver less pressure even at n_min (or
// cannot reach the target even at n_max), the configured pressure-control
// policy is applied instead.
type VariableSpeedTrain struct {
	Base
}

func (t VariableSpeedTrain) Validate() error { return t.Base.Validate() }

// speedBounds returns the common [n_min,n_max] shared by every stage's
// chart: the intersection of the stages' speed ranges. Nothing checks at
// load time that the stages share one speed range.
func (t VariableSpeedTrain) speedBounds() (nMin, nMax float64) {
	nMin, nMax = t.Stages[0].Chart.SpeedRange()
	for _, s := range t.Stages[1:] {
		lo, hi := s.Chart.SpeedRange()
		if lo > nMin {
			nMin = lo
		}
		if hi < nMax {
			nMax = hi
		}
	}
	return
}

func (t VariableSpeedTrain) Solve(req Request) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	if err := freezeGenericInputCharts(t.Base, req); err != nil {
		return Result{}, err
	}
	nMin, nMax := t.speedBounds()

	detailedAtSpeed := func(n float64) (float64, []stage.Result, error) {
		return forwardChain(t.Base, req.SuctionPressure, req.MassFlowRate, commonSpeed(n), 0, req.InletComposition)
	}
	scalarAtSpeed := func(n float64) (float64, error) {
		pd, _, err := detailedAtSpeed(n)
		return pd, err
	}
	detailedAtSuction := func(ps float64) (float64, []stage.Result, error) {
		return forwardChain(t.Base, ps, req.MassFlowRate, commonSpeed(nMin), 0, req.InletComposition)
	}
	scalarAtSuction := func(ps float64) (float64, error) {
		pd, _, err := detailedAtSuction(ps)
		return pd, err
	}

	pdAtMin, err := scalarAtSpeed(nMin)
	if err != nil {
		return Result{}, err
	}
	pdAtMax, err := scalarAtSpeed(nMax)
	if err != nil {
		return Result{}, err
	}

	switch {
	case pdAtMin > req.DischargePressure:
		// cannot deliver less pressure than this even at minimum speed:
		// apply the configured policy (typically DOWNSTREAM_CHOKE).
		return t.applyPolicyAtFloor(req, nMin, pdAtMin, detailedAtSuction, scalarAtSuction, detailedAtSpeed)

	case pdAtMax < req.DischargePressure:
		if t.Policy == control.UpstreamChoke {
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
			res := assemble(t.Base, results, StatusOK, "")
			res.Speed = nMin
			return res, nil
		}
		return Result{Status: StatusInfeasible, FailureReason: "discharge pressure target unreachable even at maximum speed"}, nil

	default:
		outcome, err := control.ReconcileRootFind(scalarAtSpeed, nMin, nMax, req.DischargePressure)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		_, results, err := detailedAtSpeed(outcome.ControlValue)
		if err != nil {
			return Result{}, err
		}
		res := assemble(t.Base, results, StatusOK, "")
		res.Speed = outcome.ControlValue
		return res, nil
	}
}

func (t VariableSpeedTrain) applyPolicyAtFloor(
	req Request, nMin, pdAtMin float64,
	detailedAtSuction func(float64) (float64, []stage.Result, error),
	scalarAtSuction func(float64) (float64, error),
	detailedAtSpeed func(float64) (float64, []stage.Result, error),
) (Result, error) {
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
		res := assemble(t.Base, results, StatusOK, "")
		res.Speed = nMin
		return res, nil

	case control.CommonASV, control.IndividualASVRate, control.IndividualASVPressure:
		detailedAtRecycle := func(recycleFrac float64) (float64, []stage.Result, error) {
			return forwardChain(t.Base, req.SuctionPressure, req.MassFlowRate, commonSpeed(nMin), recycleFrac, req.InletComposition)
		}
		scalarAtRecycle := func(r float64) (float64, error) {
			pd, _, err := detailedAtRecycle(r)
			return pd, err
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
		res := assemble(t.Base, results, StatusOK, "")
		res.Speed = nMin
		return res, nil

	default: // DOWNSTREAM_CHOKE chokes the floor excess
		scalarAtFloor := func(n float64) (float64, error) { return pdAtMin, nil }
		outcome, err := control.ReconcileDownstreamChoke(scalarAtFloor, nMin, req.DischargePressure, t.MaximumDischargePressure, scalarAtSuction, 1, req.SuctionPressure)
		if err != nil {
			return Result{}, err
		}
		if outcome.Status != control.OK {
			return statusResult(outcome), nil
		}
		var results []stage.Result
		if t.MaximumDischargePressure > 0 && pdAtMin > t.MaximumDischargePressure {
			_, results, err = detailedAtSuction(outcome.ControlValue)
		} else {
			_, results, err = detailedAtSpeed(nMin)
		}
		if err != nil {
			return Result{}, err
		}
		res := assemble(t.Base, results, StatusOK, "")
		res.Speed = nMin
		return res, nil
	}
}
