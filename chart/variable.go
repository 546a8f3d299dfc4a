package chart

import "github.com/cpmech/gosl/chk"

// VariableSpeed is a chart with >=2 speed curves, speeds strictly
// increasing. The 2-D operating envelope is bounded by the surge boundary,
// the stonewall boundary, and the min/max speed curves.
type VariableSpeed struct {
	Curves []Curve
	Margin Margin
}

// NewVariableSpeed validates and constructs a variable-speed chart.
func NewVariableSpeed(curves []Curve, margin Margin) (*VariableSpeed, error) {
	if len(curves) < 2 {
		return nil, chk.Err("variable-speed chart invalid: at least 2 speed curves required")
	}
	if err := validateCurves(curves); err != nil {
		return nil, err
	}
	return &VariableSpeed{Curves: curves, Margin: margin}, nil
}

func (v *VariableSpeed) SpeedRange() (nMin, nMax float64) {
	return v.Curves[0].Speed, v.Curves[len(v.Curves)-1].Speed
}

// bracket locates the two adjacent curves k, k+1 such that n_k <= n <= n_k+1.
func (v *VariableSpeed) bracket(n float64) (lo, hi int, err error) {
	nMin, nMax := v.SpeedRange()
	if n < nMin || n > nMax {
		return 0, 0, chk.Err("speed %g outside chart range [%g,%g]", n, nMin, nMax)
	}
	for i := 1; i < len(v.Curves); i++ {
		if n <= v.Curves[i].Speed {
			return i - 1, i, nil
		}
	}
	return len(v.Curves) - 2, len(v.Curves) - 1, nil
}

// Envelope interpolates the margin-shifted Q_min and the raw Q_max between
// the two bracketing curves.
func (v *VariableSpeed) Envelope(n float64) (qMin, qMax float64, err error) {
	lo, hi, err := v.bracket(n)
	if err != nil {
		return 0, 0, err
	}
	cLo, cHi := v.Curves[lo], v.Curves[hi]
	lam := speedWeight(n, cLo.Speed, cHi.Speed)
	qMinLo := v.Margin.Effective(cLo.QMin(), cLo.QMax())
	qMinHi := v.Margin.Effective(cHi.QMin(), cHi.QMax())
	qMin = qMinLo + lam*(qMinHi-qMinLo)
	qMax = cLo.QMax() + lam*(cHi.QMax()-cLo.QMax())
	return qMin, qMax, nil
}

func speedWeight(n, nLo, nHi float64) float64 {
	if nHi == nLo {
		return 0
	}
	return (n - nLo) / (nHi - nLo)
}

// Query implements variable-speed chart query: interpolate H
// and eta on each bracketing curve (applying its margin-shifted surge
// boundary), then interpolate between curves by speed.
func (v *VariableSpeed) Query(q, n float64) (Point, Classification, error) {
	lo, hi, err := v.bracket(n)
	if err != nil {
		nMin, nMax := v.SpeedRange()
		if n < nMin {
			return Point{}, BelowMinSpeed, nil
		}
		return Point{}, AboveMaxSpeed, nil
	}
	cLo, cHi := v.Curves[lo], v.Curves[hi]
	lam := speedWeight(n, cLo.Speed, cHi.Speed)

	qMinEff, qMax, err := v.Envelope(n)
	if err != nil {
		return Point{}, "", err
	}

	class := Internal
	qq := q
	switch {
	case q < qMinEff:
		class = BelowSurge
		qq = qMinEff
	case q > qMax:
		class = AboveStonewall
		qq = qMax
	}

	hLo, etaLo, err := curvePointAt(cLo, qq, v.Margin)
	if err != nil {
		return Point{}, "", err
	}
	hHi, etaHi, err := curvePointAt(cHi, qq, v.Margin)
	if err != nil {
		return Point{}, "", err
	}
	h := hLo + lam*(hHi-hLo)
	eta := etaLo + lam*(etaHi-etaLo)
	return Point{Head: h, Efficiency: eta}, class, nil
}

// curvePointAt interpolates H/eta on a single curve at flow q, clamping to
// that curve's own margin-shifted envelope: each curve's surge boundary
// individually shifts before the cross-speed interpolation runs.
func curvePointAt(c Curve, q float64, m Margin) (h, eta float64, err error) {
	qMinEff := m.Effective(c.QMin(), c.QMax())
	qq := q
	if qq < qMinEff {
		qq = qMinEff
	}
	if qq > c.QMax() {
		qq = c.QMax()
	}
	return c.interpAt(qq)
}
