package chart

// Margin is a surge-control margin as a fraction in [0,1), shrinking the
// surge (minimum-flow) boundary toward higher flow :
//
//	Q_min_effective = Q_min + margin*(Q_max - Q_min)
type Margin float64

// Effective returns Q_min_effective for a curve with raw bounds [qMin,qMax].
func (m Margin) Effective(qMin, qMax float64) float64 {
	return qMin + float64(m)*(qMax-qMin)
}

// FromPercentage builds a Margin from a percentage value (e.g. 10 -> 0.10),
// 's "given as fraction or percentage".
func FromPercentage(pct float64) Margin { return Margin(pct / 100) }
