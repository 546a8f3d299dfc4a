package fluid

import (
	"math"

	"github.com/equinor/ecalc-sub000/internal/solve"
)

// Stream is one inlet flow into a mixing point: mass rate [kg/s], state
// (P,T,composition).
type Stream struct {
	MassRate float64
	State    State
}

// MixStreams mixes one or more inlet streams at a common pressure into a
// single outlet state: mole-average the composition (mass/M weighted), then
// solve the enthalpy balance
//
//	Σ ṁᵢ h(Pᵢ,Tᵢ,xᵢ) = ṁ_total·h(P_mix,T_mix,x_mix)
//
// for T_mix by Brent's method, bracketed on [min(Tᵢ)-20, max(Tᵢ)+20] K to
// 1e-6 K.
func MixStreams(m *Model, streams []Stream) (State, error) {
	if len(streams) == 0 {
		return State{}, ErrMismatchedMixingPressure
	}
	p := streams[0].State.P
	tMin, tMax := streams[0].State.T, streams[0].State.T
	molarFlows := make([]float64, len(streams))
	xs := make([]Composition, len(streams))
	totalMass := 0.0
	totalEnthalpy := 0.0
	for i, s := range streams {
		if math.Abs(s.State.P-p) > 1e-9 {
			return State{}, ErrMismatchedMixingPressure
		}
		xs[i] = s.State.X
		molarFlows[i] = s.MassRate / s.State.M * 1000 // kg/s / (kg/kmol) -> kmol/s ... *1000 to mol/s
		totalMass += s.MassRate
		totalEnthalpy += s.MassRate * s.State.H
		if s.State.T < tMin {
			tMin = s.State.T
		}
		if s.State.T > tMax {
			tMax = s.State.T
		}
	}
	if len(streams) == 1 {
		return streams[0].State, nil
	}

	xMix, err := mixMoles(xs, molarFlows)
	if err != nil {
		return State{}, err
	}
	targetHSpec := totalEnthalpy / totalMass

	f := func(t float64) (float64, error) {
		st, err := m.State(p, t, xMix)
		if err != nil {
			return 0, err
		}
		return st.H - targetHSpec, nil
	}

	lo, hi := tMin-20, tMax+20
	tMixed, err := solve.Brent(f, lo, hi, 1e-6, 100)
	if err != nil {
		return State{}, ErrMixingNoBracket
	}
	return m.State(p, tMixed, xMix)
}
