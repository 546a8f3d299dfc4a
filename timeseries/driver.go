// package timeseries implements the per-period driver: evaluate the train
// solver once per period, mask periods whose condition is false, and carry
// each period's status through to the caller without aborting the series on
// a single period's failure. Regularity is not applied: a period's power is
// the train's shaft power as solved.
package timeseries

import (
	"context"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/train"
)

// Status is a period's outcome, combining the ConditionFalse case with the
// train-level evaluation-failure family.
type Status string

const (
	StatusOK             Status = "OK"
	StatusConditionFalse Status = "CONDITION_FALSE"
	StatusInfeasible     Status = Status(train.StatusInfeasible)
	StatusDidNotConverge Status = Status(train.StatusDidNotConverge)
	StatusPowerLimit     Status = Status(train.StatusPowerLimit)
	StatusCancelled      Status = "CANCELLED"
)

// Period is one row of fully-resolved numeric inputs: the expression
// evaluator (external collaborator, ) is responsible for turning
// SERIES/variable references into these values ahead of time; Driver is a
// pure function of them.
type Period struct {
	StandardRate       float64 // [Sm3/day]
	SuctionPressure    float64 // [bar]
	DischargePressure  float64 // [bar]
	InterstagePressure float64 // [bar]; 0 if unused
	Condition          float64 // 0/1; non-zero is true
	Composition        fluid.Composition
}

// PeriodResult is the per-period {power, status} record. TrainResult is nil
// when Status is CONDITION_FALSE or CANCELLED.
type PeriodResult struct {
	PowerMW     float64
	Status      Status
	TrainResult *train.Result
}

// FailureSummary aggregates non-OK period outcomes by Status.
type FailureSummary struct {
	Counts map[Status]int
}

func (f *FailureSummary) record(s Status) {
	if s == StatusOK {
		return
	}
	if f.Counts == nil {
		f.Counts = map[Status]int{}
	}
	f.Counts[s]++
}

// Result is the full series output: one PeriodResult per input period
// (ordered, regardless of evaluation order), plus the failure summary.
type Result struct {
	Periods []PeriodResult
	Summary FailureSummary
}

// Driver evaluates a fixed Train over a series of Periods.
type Driver struct {
	Train            train.Train
	FluidModel       *fluid.Model
	MaxConcurrency   int // <=0 defaults to 1 (sequential)
}

// Run evaluates every period, applying the pipeline to each:
// condition mask -> standard-rate conversion -> train solve. Periods may be
// evaluated concurrently (bounded by MaxConcurrency); results are
// reassembled in period order regardless of completion order. The
// cancellation token is consulted once per period boundary: once ctx is
// done, no further periods are dispatched and the prefix of periods already
// completed (in order) is returned with the remainder reported as
// CANCELLED. progress, if non-nil, is called after each period completes;
// it must not mutate the model.
func (d Driver) Run(ctx context.Context, periods []Period, progress func(done, total int)) (Result, error) {
	if d.Train == nil || d.FluidModel == nil {
		return Result{}, chk.Err("timeseries: driver requires a Train and a FluidModel")
	}
	n := len(periods)
	results := make([]PeriodResult, n)
	concurrency := d.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var doneMu sync.Mutex
	done := 0
	cancelled := false
	solvedOne := false

	for i, p := range periods {
		doneMu.Lock()
		if ctx.Err() != nil {
			cancelled = true
		}
		doneMu.Unlock()
		if cancelled {
			results[i] = PeriodResult{Status: StatusCancelled}
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, p Period) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.evaluatePeriod(p)
			if progress != nil {
				doneMu.Lock()
				done++
				progress(done, n)
				doneMu.Unlock()
			}
		}(i, p)
		if !solvedOne && p.Condition != 0 {
			// the first period that reaches Train.Solve runs alone, so any
			// chart its Solve freezes is frozen before periods overlap
			wg.Wait()
			solvedOne = true
		}
	}
	wg.Wait()

	var summary FailureSummary
	for _, r := range results {
		summary.record(r.Status)
	}
	return Result{Periods: results, Summary: summary}, nil
}

func (d Driver) evaluatePeriod(p Period) PeriodResult {
	if p.Condition == 0 {
		return PeriodResult{Status: StatusConditionFalse}
	}

	massFlow, err := d.FluidModel.MassRateFromStandardRate(p.StandardRate, p.Composition)
	if err != nil {
		return PeriodResult{Status: StatusDidNotConverge}
	}

	res, err := d.Train.Solve(train.Request{
		MassFlowRate:       massFlow,
		SuctionPressure:    p.SuctionPressure,
		DischargePressure:  p.DischargePressure,
		InterstagePressure: p.InterstagePressure,
		InletComposition:   p.Composition,
	})
	if err != nil {
		return PeriodResult{Status: StatusDidNotConverge}
	}

	status := Status(res.Status)
	power := 0.0
	if status == StatusOK {
		power = res.TotalShaftPowerMW
	}
	r := res
	return PeriodResult{PowerMW: power, Status: status, TrainResult: &r}
}
