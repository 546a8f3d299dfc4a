// package stage implements the single-stage polytropic compression model:
// given inlet state, mass flow and speed, compute the chart-derived head
// and efficiency, the discharge pressure ratio, outlet temperature and
// shaft power.
package stage

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/fluid"
)

// Classification is the stage's operating-point status.
type Classification string

const (
	OK             Classification = "OK"
	SurgeRecycle   Classification = "SURGE_RECYCLE"
	Stonewall      Classification = "STONEWALL"
	BelowMinSpeed  Classification = "BELOW_MIN_SPEED"
	AboveMaxSpeed  Classification = "ABOVE_MAX_SPEED"
	InfeasibleHead Classification = "INFEASIBLE_HEAD"
)

// Stage is one compressor stage: a configured inlet (aftercooler)
// temperature, a chart, and an optional pre-stage choke. Side streams are
// not part of Stage; MultiStreamTrain attaches them by stage index.
type Stage struct {
	InletTemperature    float64 // T_in [K]; invariant T_in > 0
	Chart               chart.Chart
	PressureDropAhead   float64 // [bar], applied to inlet P before chart query; 0 if absent
}

// Validate checks the Stage invariant.
func (s Stage) Validate() error {
	if s.InletTemperature <= 0 {
		return chk.Err("stage invalid: inlet temperature must be > 0 K, got %g", s.InletTemperature)
	}
	return nil
}

// Result is the per-stage outcome of Evaluate.
type Result struct {
	Inlet, Outlet  fluid.State
	GasPowerW      float64
	Speed          float64
	Classification Classification
	RecycleFraction float64 // ASV recycle as a fraction of ṁ (0 if none)
	Choked         bool
}

// EstimateHead inverts Evaluate's step-3 polytropic relation to get the
// head [J/kg] needed to reach pressure ratio r from inlet state in at
// efficiency eta. Used by GENERIC_FROM_INPUT to seed a chart's design
// point from a requested operating point before any chart exists to query.
func EstimateHead(in fluid.State, r, eta float64) (float64, error) {
	if eta <= 0 {
		return 0, chk.Err("stage invalid: efficiency must be > 0, got %g", eta)
	}
	expExponent := (in.K - 1) / (in.K * eta)
	if expExponent <= 0 {
		return 0, chk.Err("stage infeasible: non-physical polytropic exponent")
	}
	zrtOverM := in.Z * fluid.R * in.T / (in.M / 1000)
	if zrtOverM <= 0 || r <= 0 {
		return 0, chk.Err("stage infeasible: non-physical inlet state or pressure ratio")
	}
	return (math.Pow(r, expExponent) - 1) * zrtOverM / expExponent, nil
}

// Evaluate implements the seven numbered steps of inlet is the
// upstream state arriving at this stage (before aftercooling); fm is the
// fluid model used to re-evaluate state at the new (P,T); massFlow [kg/s]
// is the through-flow (ASV recycle is added only for the chart query, not
// the mass balance); n is the commanded speed [rpm].
func (s Stage) Evaluate(inlet fluid.State, fm *fluid.Model, massFlow, n float64) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	// step 6: inlet choke ahead of the stage
	pIn := inlet.P - s.PressureDropAhead
	choked := s.PressureDropAhead > 0

	// step 7: aftercooler — inlet temperature is always the configured T_in
	in, err := fm.State(pIn, s.InletTemperature, inlet.X)
	if err != nil {
		return Result{}, err
	}

	// actual volumetric flow at the (possibly recycled) operating point
	q1 := massFlow / in.Rho * 3600 // kg/s / (kg/m3) * 3600 s/h -> m3/h

	qMinEff, qMax, envErr := s.Chart.Envelope(n)
	recycleFrac := 0.0
	qForChart := q1
	class := OK
	if envErr == nil {
		if q1 < qMinEff {
			qRec := qMinEff - q1
			recycleFrac = qRec / q1
			qForChart = qMinEff
			class = SurgeRecycle
		} else if q1 > qMax {
			class = Stonewall
		}
	}

	pt, chartClass, err := s.Chart.Query(qForChart, n)
	if err != nil {
		return Result{}, err
	}
	switch chartClass {
	case chart.BelowMinSpeed:
		class = BelowMinSpeed
	case chart.AboveMaxSpeed:
		class = AboveMaxSpeed
	}

	// step 2: polytropic exponent from kappa and chart efficiency
	// (np-1)/np = (kappa-1)/(kappa*eta_p)
	if pt.Efficiency <= 0 {
		return Result{}, chk.Err("stage infeasible: chart efficiency %g <= 0", pt.Efficiency)
	}
	expExponent := (in.K - 1) / (in.K * pt.Efficiency)

	// step 3: discharge pressure ratio from Hp = np/(np-1) * Z1*R*T1/M * (r^((np-1)/np) - 1)
	zrtOverM := in.Z * fluid.R * in.T / (in.M / 1000)
	if expExponent <= 0 || zrtOverM <= 0 {
		return Result{}, chk.Err("stage infeasible: non-physical polytropic exponent")
	}
	base := 1 + pt.Head*expExponent/zrtOverM
	if base <= 0 {
		class = InfeasibleHead
		return Result{Inlet: in, Classification: class}, chk.Err("stage infeasible: head %g not achievable at this inlet state", pt.Head)
	}
	r := math.Pow(base, 1/expExponent)

	// step 4: outlet temperature
	tOut := in.T * math.Pow(r, expExponent)
	pOut := in.P * r

	out, err := fm.State(pOut, tOut, in.X)
	if err != nil {
		return Result{}, err
	}

	// step 5: gas power, evaluated at the (possibly recycle-elevated) flow
	massFlowForPower := massFlow
	if recycleFrac > 0 {
		massFlowForPower = massFlow * (1 + recycleFrac)
	}
	gasPowerW := massFlowForPower * pt.Head / pt.Efficiency

	return Result{
		Inlet: in, Outlet: out,
		GasPowerW: gasPowerW, Speed: n,
		Classification: class, RecycleFraction: recycleFrac, Choked: choked,
	}, nil
}
