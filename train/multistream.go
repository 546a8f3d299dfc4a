package train

import (
	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/control"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/stage"
)

// StreamDirection is the direction of a side stream attached to a
// multi-stream train.
type StreamDirection string

const (
	Ingoing  StreamDirection = "INGOING"
	Outgoing StreamDirection = "OUTGOING"
)

// Stream is a side stream that mixes into (INGOING) or is extracted from
// (OUTGOING) the train between two stages. An ingoing stream carries its
// own fixed fluid model, temperature and composition; only its mass rate
// varies per period (via Request.StreamRates, keyed by Name). Pressure is
// not read: an ingoing stream is evaluated at the train's pressure at the
// stage it joins.
type Stream struct {
	Name        string
	Direction   StreamDirection
	FluidModel  *fluid.Model      // ingoing only
	Pressure    float64           // [bar], ingoing only
	Temperature float64           // [K], ingoing only
	Composition fluid.Composition // ingoing only
}

// MultiStreamTrain is a VariableSpeedTrain with side streams and exactly
// one interstage pressure-control point splitting it into a front subtrain
// (stages[0..InterstageStageIndex], P_s -> P_i) and a back subtrain
// (stages[InterstageStageIndex+1:], P_i -> P_d). Each subtrain root-finds
// its own common speed independently; the only coupling across the split
// is the composition carried forward.
type MultiStreamTrain struct {
	Base
	Streams              []Stream
	StageStreams         map[int]string // stage index -> attached stream name
	InterstageStageIndex int            // index of the stage declaring INTERSTAGE_CONTROL_PRESSURE
	UpstreamPolicy       control.Policy
	DownstreamPolicy     control.Policy
}

func (t MultiStreamTrain) Validate() error {
	if err := t.Base.Validate(); err != nil {
		return err
	}
	if t.InterstageStageIndex < 0 || t.InterstageStageIndex >= len(t.Stages)-1 {
		return chk.Err("multi-stream train invalid: InterstageStageIndex must designate a stage strictly before the last")
	}
	byName := map[string]Stream{}
	for _, s := range t.Streams {
		byName[s.Name] = s
	}
	for _, name := range t.StageStreams {
		s, ok := byName[name]
		if !ok {
			return chk.Err("multi-stream train invalid: stage references unknown stream %q", name)
		}
		if s.Direction == Ingoing && s.FluidModel == nil {
			return chk.Err("multi-stream train invalid: ingoing stream %q missing a fluid model", name)
		}
	}
	return nil
}

func (t MultiStreamTrain) streamRate(req Request, name string) float64 {
	if r, ok := req.StreamRates[name]; ok {
		return r
	}
	return 0
}

// forwardStreamChain runs stages lo..hi (inclusive) at common speed n,
// applying any attached stream at each stage's inlet before the chart
// query: an ingoing stream's mass is mixed in via fluid.MixStreams (the
// ingoing stream's state is evaluated at the carried-forward stage
// pressure, so both streams share the pressure MixStreams checks); an outgoing
// stream's mass is subtracted from the through-flow.
func (t MultiStreamTrain) forwardStreamChain(req Request, lo, hi int, ps, massFlow, n float64, x fluid.Composition) (float64, []stage.Result, error) {
	fm := t.FluidModel
	cur, err := fm.State(ps, t.Stages[lo].InletTemperature, x)
	if err != nil {
		return 0, nil, err
	}
	results := make([]stage.Result, 0, hi-lo+1)
	flow := massFlow
	for i := lo; i <= hi; i++ {
		s := t.Stages[i]
		if name, ok := t.StageStreams[i]; ok {
			strm := t.streamByName(name)
			rate := t.streamRate(req, name)
			if strm.Direction == Outgoing {
				flow -= rate
			} else if rate > 0 {
				ingState, err := strm.FluidModel.State(cur.P, strm.Temperature, strm.Composition)
				if err != nil {
					return 0, nil, err
				}
				mixed, err := fluid.MixStreams(fm, []fluid.Stream{
					{MassRate: flow, State: cur},
					{MassRate: rate, State: ingState},
				})
				if err != nil {
					return 0, nil, err
				}
				cur = mixed
				flow += rate
			}
		}
		res, err := s.Evaluate(cur, fm, flow, n)
		if err != nil {
			return 0, nil, err
		}
		results = append(results, res)
		cur = res.Outlet
	}
	return cur.P, results, nil
}

func (t MultiStreamTrain) streamByName(name string) Stream {
	for _, s := range t.Streams {
		if s.Name == name {
			return s
		}
	}
	return Stream{}
}

func (t MultiStreamTrain) subtrainSpeedBounds(lo, hi int) (nMin, nMax float64) {
	nMin, nMax = t.Stages[lo].Chart.SpeedRange()
	for i := lo + 1; i <= hi; i++ {
		lo2, hi2 := t.Stages[i].Chart.SpeedRange()
		if lo2 > nMin {
			nMin = lo2
		}
		if hi2 < nMax {
			nMax = hi2
		}
	}
	return
}

func (t MultiStreamTrain) solveSubtrain(req Request, lo, hi int, ps, pTarget float64, policy control.Policy, x fluid.Composition) (float64, []stage.Result, Result, bool) {
	nMin, nMax := t.subtrainSpeedBounds(lo, hi)
	forwardAt := func(n float64) (float64, error) {
		p, _, err := t.forwardStreamChain(req, lo, hi, ps, req.MassFlowRate, n, x)
		return p, err
	}
	scalarAtSuction := func(newPs float64) (float64, error) {
		p, _, err := t.forwardStreamChain(req, lo, hi, newPs, req.MassFlowRate, nMin, x)
		return p, err
	}

	pdAtMin, err := forwardAt(nMin)
	if err != nil {
		return 0, nil, Result{}, false
	}
	pdAtMax, err := forwardAt(nMax)
	if err != nil {
		return 0, nil, Result{}, false
	}

	var outcome control.Outcome
	switch {
	case pdAtMin > pTarget:
		outcome, err = control.ReconcileDownstreamChoke(func(float64) (float64, error) { return pdAtMin, nil }, nMin, pTarget, 0, scalarAtSuction, 1, ps)
	case pdAtMax < pTarget:
		if policy == control.UpstreamChoke {
			outcome, err = control.ReconcileRootFind(scalarAtSuction, 1, ps, pTarget)
		} else {
			return 0, nil, Result{Status: StatusInfeasible, FailureReason: "interstage subtrain cannot reach target pressure"}, true
		}
	default:
		outcome, err = control.ReconcileRootFind(forwardAt, nMin, nMax, pTarget)
	}
	if err != nil {
		return 0, nil, Result{}, false
	}
	if outcome.Status != control.OK {
		return 0, nil, statusResult(outcome), true
	}
	_, results, ferr := t.forwardStreamChain(req, lo, hi, ps, req.MassFlowRate, outcome.ControlValue, x)
	if ferr != nil {
		return 0, nil, Result{}, false
	}
	return outcome.AchievedDischargePressure, results, Result{}, false
}

func (t MultiStreamTrain) Solve(req Request) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	if err := freezeGenericInputCharts(t.Base, req); err != nil {
		return Result{}, err
	}
	j := t.InterstageStageIndex

	pi, frontResults, early, stop := t.solveSubtrain(req, 0, j, req.SuctionPressure, req.InterstagePressure, t.UpstreamPolicy, req.InletComposition)
	if stop {
		return early, nil
	}
	xAfterFront := req.InletComposition
	if len(frontResults) > 0 {
		xAfterFront = frontResults[len(frontResults)-1].Outlet.X
	}

	_, backResults, early, stop := t.solveSubtrain(req, j+1, len(t.Stages)-1, pi, req.DischargePressure, t.DownstreamPolicy, xAfterFront)
	if stop {
		return early, nil
	}

	all := append(append([]stage.Result{}, frontResults...), backResults...)
	return assemble(t.Base, all, StatusOK, ""), nil
}
