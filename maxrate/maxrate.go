// package maxrate implements the optional maximum-standard-rate search: for
// a fixed pressure boundary (P_s,P_d), find the largest standard rate for
// which the train solver converges. Only invoked when the
// model sets CALCULATE_MAX_RATE.
package maxrate

import (
	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/internal/solve"
	"github.com/equinor/ecalc-sub000/train"
)

// RelTol is the relative tolerance on the reported maximum rate.
const RelTol = 1e-3

const maxIterations = 100

// Solve searches ṁ_std in [0, ṁ_upper_bound] for the largest value at which
// t.Solve converges (train.StatusOK), where ṁ_upper_bound is derived from
// stage 1's Q_max at its chart's maximum speed. Feasibility is assumed
// monotone: larger rates eventually fail at the stonewall boundary.
func Solve(t train.Train, stage1Chart stage1Envelope, ps, pd float64, x fluid.Composition, fm *fluid.Model) (float64, error) {
	nMin, nMax := stage1Chart.SpeedRange()
	_, qMax, err := stage1Chart.Envelope(nMax)
	if err != nil {
		return 0, err
	}
	inState, err := fm.State(ps, 288.15, x)
	if err != nil {
		return 0, err
	}
	upperBound := qMax * inState.Rho / 3600 // m3/h * kg/m3 / (3600 s/h) -> kg/s

	feasible := func(massFlow float64) bool {
		res, err := t.Solve(train.Request{
			MassFlowRate:      massFlow,
			SuctionPressure:   ps,
			DischargePressure: pd,
			InletComposition:  x,
		})
		return err == nil && res.Status == train.StatusOK
	}

	if nMin <= 0 {
		return 0, chk.Err("maxrate: stage 1 chart speed range invalid")
	}
	if !feasible(1e-6) {
		return 0, chk.Err("maxrate: infeasible even at a negligible rate")
	}

	maxFlow, err := solve.Bisect(feasible, 1e-6, upperBound, RelTol, maxIterations)
	if err != nil {
		return 0, err
	}
	return fm.StandardRateFromMassRate(maxFlow, x)
}

// stage1Envelope is the minimal surface Solve needs from stage 1's chart;
// satisfied by chart.Chart.
type stage1Envelope interface {
	SpeedRange() (nMin, nMax float64)
	Envelope(n float64) (qMin, qMax float64, err error)
}
