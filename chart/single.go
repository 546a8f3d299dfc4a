package chart

import "github.com/cpmech/gosl/chk"

// SingleSpeed is a chart with exactly one speed curve.
type SingleSpeed struct {
	Curve  Curve
	Margin Margin
}

// NewSingleSpeed validates and constructs a single-speed chart.
func NewSingleSpeed(curve Curve, margin Margin) (*SingleSpeed, error) {
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	return &SingleSpeed{Curve: curve, Margin: margin}, nil
}

func (s *SingleSpeed) SpeedRange() (nMin, nMax float64) { return s.Curve.Speed, s.Curve.Speed }

func (s *SingleSpeed) Envelope(n float64) (qMin, qMax float64, err error) {
	qMin = s.Margin.Effective(s.Curve.QMin(), s.Curve.QMax())
	qMax = s.Curve.QMax()
	return
}

// Query implements single-speed chart query.
func (s *SingleSpeed) Query(q, n float64) (Point, Classification, error) {
	if n != s.Curve.Speed {
		return Point{}, "", chk.Err("single-speed chart queried at n=%g, only %g available", n, s.Curve.Speed)
	}
	qMinEff, qMax, _ := s.Envelope(n)
	switch {
	case q < qMinEff:
		h, eta, err := s.Curve.interpAt(qMinEff)
		if err != nil {
			return Point{}, "", err
		}
		return Point{Head: h, Efficiency: eta}, BelowSurge, nil
	case q > qMax:
		h, eta, err := s.Curve.interpAt(qMax)
		if err != nil {
			return Point{}, "", err
		}
		return Point{Head: h, Efficiency: eta}, AboveStonewall, nil
	default:
		h, eta, err := s.Curve.interpAt(q)
		if err != nil {
			return Point{}, "", err
		}
		return Point{Head: h, Efficiency: eta}, Internal, nil
	}
}
