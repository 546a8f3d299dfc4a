// package fluid implements composition-based PVT models for dry-gas mixtures:
// cubic equations of state (SRK, PR and their GERG-flavoured variants),
// enthalpy/entropy departure functions, stream mixing and standard-condition
// conversions. It is the leaf layer of the compressor-train solver: every
// other package consumes a fluid.State rather than touching an EOS directly.
package fluid

import (
	"github.com/cpmech/gosl/chk"
)

// Component names the closed set of species a Composition may carry.
type Component string

// the closed component set; methane is required, all others default to 0
const (
	Water    Component = "water"
	Nitrogen Component = "nitrogen"
	CO2      Component = "CO2"
	Methane  Component = "methane"
	Ethane   Component = "ethane"
	Propane  Component = "propane"
	IButane  Component = "i_butane"
	NButane  Component = "n_butane"
	IPentane Component = "i_pentane"
	NPentane Component = "n_pentane"
	NHexane  Component = "n_hexane"
)

// components lists the closed set in a fixed, stable order; used for
// deterministic iteration (mixing rules, table lookups) independent of map
// iteration order.
var components = []Component{
	Water, Nitrogen, CO2, Methane, Ethane, Propane,
	IButane, NButane, IPentane, NPentane, NHexane,
}

// Composition is a normalized mole-fraction mapping over the closed
// component set. It is immutable after NewComposition returns.
type Composition struct {
	frac map[Component]float64
}

// NewComposition validates and normalizes fractions to sum to 1.0.
// Methane must be present with a positive fraction; no fraction may be
// negative; the sum must be strictly positive. Unknown component names
// are rejected.
func NewComposition(fractions map[Component]float64) (Composition, error) {
	if xm, ok := fractions[Methane]; !ok || xm <= 0 {
		return Composition{}, chk.Err("composition invalid: methane is required")
	}
	sum := 0.0
	for c, x := range fractions {
		if !isKnownComponent(c) {
			return Composition{}, chk.Err("composition invalid: unknown component %q", c)
		}
		if x < 0 {
			return Composition{}, chk.Err("composition invalid: negative fraction for %q", c)
		}
		sum += x
	}
	if sum <= 0 {
		return Composition{}, chk.Err("composition invalid: fractions sum to zero")
	}
	frac := make(map[Component]float64, len(components))
	for _, c := range components {
		frac[c] = fractions[c] / sum
	}
	return Composition{frac: frac}, nil
}

func isKnownComponent(c Component) bool {
	for _, k := range components {
		if k == c {
			return true
		}
	}
	return false
}

// Fraction returns the normalized mole fraction of c (0 if absent).
func (x Composition) Fraction(c Component) float64 { return x.frac[c] }

// Each calls f once per component in the closed set, in stable order,
// including components with a zero fraction.
func (x Composition) Each(f func(c Component, frac float64)) {
	for _, c := range components {
		f(c, x.frac[c])
	}
}

// MolarMass returns the mixture molar mass [kg/kmol].
func (x Composition) MolarMass() float64 {
	m := 0.0
	x.Each(func(c Component, frac float64) { m += frac * table[c].M })
	return m
}

// mixMoles mole-averages two compositions weighted by molar flow (mass/M).
func mixMoles(xs []Composition, molarFlows []float64) (Composition, error) {
	total := 0.0
	for _, n := range molarFlows {
		total += n
	}
	if total <= 0 {
		return Composition{}, chk.Err("mixing invalid: total molar flow is zero")
	}
	frac := make(map[Component]float64, len(components))
	for i, x := range xs {
		w := molarFlows[i] / total
		x.Each(func(c Component, xi float64) { frac[c] += w * xi })
	}
	return NewComposition(frac)
}

// R is the universal gas constant [J/(mol.K)]; used throughout in SI units
// after converting the table's kg/kmol molar masses.
const R = 8.314462618
