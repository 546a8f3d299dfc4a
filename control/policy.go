// package control implements the pressure-control policies that reconcile
// a train's requested boundary pressures with what its chart envelopes
// permit at a given speed: DOWNSTREAM_CHOKE, UPSTREAM_CHOKE,
// INDIVIDUAL_ASV_PRESSURE, INDIVIDUAL_ASV_RATE and COMMON_ASV. Every policy
// but DOWNSTREAM_CHOKE reduces to a single scalar
// Brent root-find over the train's forward-evaluation closure; control has
// no dependency on package train (the dependency points the other way, per
// component order).
package control

import (
	"github.com/equinor/ecalc-sub000/internal/solve"
)

// Policy names one of the five pressure-control strategies a train can use.
type Policy string

const (
	DownstreamChoke       Policy = "DOWNSTREAM_CHOKE"
	UpstreamChoke         Policy = "UPSTREAM_CHOKE"
	IndividualASVPressure Policy = "INDIVIDUAL_ASV_PRESSURE"
	IndividualASVRate     Policy = "INDIVIDUAL_ASV_RATE"
	CommonASV             Policy = "COMMON_ASV"
)

// Status is the outcome of reconciling a policy against its target.
type Status string

const (
	OK             Status = "OK"
	Infeasible     Status = "INFEASIBLE"
	DidNotConverge Status = "DID_NOT_CONVERGE"
)

// Outcome is the result of a policy reconciliation.
type Outcome struct {
	ControlValue              float64 // the solved scalar: Ps, common recycle fraction, etc.
	AchievedDischargePressure float64 // [bar]
	ChokeDropBar              float64 // pressure dropped across a downstream choke, if any
	Status                    Status
}

// PressureTol and MaxIterations are the convergence parameters shared by
// every root-find in this solver: absolute tolerance 1e-4 bar, at most 100
// iterations.
const (
	PressureTol   = 1e-4
	MaxIterations = 100
)

// ForwardFunc evaluates the train's discharge pressure [bar] as a function
// of one scalar control variable x, whose meaning depends on the policy
// (suction pressure for UPSTREAM_CHOKE, common speed for a variable-speed
// train's outer search). The trains pass one common recycle fraction for
// COMMON_ASV, INDIVIDUAL_ASV_RATE and INDIVIDUAL_ASV_PRESSURE alike; no
// per-stage recycle or per-stage pressure ratio is distributed.
type ForwardFunc func(x float64) (pd float64, err error)

// ReconcileRootFind is shared by UPSTREAM_CHOKE, INDIVIDUAL_ASV_PRESSURE,
// INDIVIDUAL_ASV_RATE and COMMON_ASV: each is a single Brent root-find of
// forward(x) = target over [lo,hi].
func ReconcileRootFind(forward ForwardFunc, lo, hi, target float64) (Outcome, error) {
	x, err := solve.Brent(func(x float64) (float64, error) {
		pd, err := forward(x)
		if err != nil {
			return 0, err
		}
		return pd - target, nil
	}, lo, hi, PressureTol, MaxIterations)
	if err != nil {
		return Outcome{Status: DidNotConverge}, nil
	}
	pd, err := forward(x)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{ControlValue: x, AchievedDischargePressure: pd, Status: OK}, nil
}

// ReconcileDownstreamChoke implements DOWNSTREAM_CHOKE:
// the train runs at the speed/ratio that produces the smallest feasible
// excess over pdTarget (forwardAtFloor, typically evaluated at n_min), and
// a downstream choke absorbs the difference. If that floor point still
// falls short of pdTarget, the request is infeasible. If
// maxDischargePressure is set and exceeded, an upstream choke (reducing
// suction pressure via upstreamForward) first brings the train down to
// maxDischargePressure, and the downstream choke then drops the remainder.
func ReconcileDownstreamChoke(forwardAtFloor ForwardFunc, floor, pdTarget, maxDischargePressure float64, upstreamForward ForwardFunc, psLo, psHi float64) (Outcome, error) {
	pdAtFloor, err := forwardAtFloor(floor)
	if err != nil {
		return Outcome{}, err
	}
	if pdAtFloor < pdTarget {
		return Outcome{Status: Infeasible}, nil
	}
	if maxDischargePressure > 0 && pdAtFloor > maxDischargePressure {
		if upstreamForward == nil {
			return Outcome{Status: Infeasible}, nil
		}
		out, err := ReconcileRootFind(upstreamForward, psLo, psHi, maxDischargePressure)
		if err != nil {
			return Outcome{}, err
		}
		if out.Status != OK {
			return out, nil
		}
		return Outcome{
			ControlValue:              out.ControlValue,
			AchievedDischargePressure: pdTarget,
			ChokeDropBar:              maxDischargePressure - pdTarget,
			Status:                    OK,
		}, nil
	}
	return Outcome{
		ControlValue:              floor,
		AchievedDischargePressure: pdTarget,
		ChokeDropBar:              pdAtFloor - pdTarget,
		Status:                    OK,
	}, nil
}
