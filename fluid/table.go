package fluid

// props holds the static per-component constants needed by the cubic EOS
// and the ideal-gas heat-capacity polynomial. Values are standard GPA 2145
// / DIPPR order-of-magnitude constants; precise enough for engineering
// process calculations, not for custody-transfer metrology.
type props struct {
	M      float64 // molar mass [kg/kmol]
	Tc     float64 // critical temperature [K]
	Pc     float64 // critical pressure [bar]
	Omega  float64 // acentric factor [-]
	cp0, cp1, cp2, cp3 float64 // ideal-gas cp [J/(mol.K)] = cp0 + cp1*T + cp2*T^2 + cp3*T^3, T in K
}

var table = map[Component]props{
	Water:    {M: 18.015, Tc: 647.10, Pc: 220.64, Omega: 0.3449, cp0: 32.24, cp1: 0.1923e-2, cp2: 1.055e-5, cp3: -3.595e-9},
	Nitrogen: {M: 28.014, Tc: 126.20, Pc: 34.00, Omega: 0.0372, cp0: 28.90, cp1: -0.1571e-2, cp2: 0.8081e-5, cp3: -2.873e-9},
	CO2:      {M: 44.010, Tc: 304.19, Pc: 73.82, Omega: 0.2250, cp0: 22.26, cp1: 5.981e-2, cp2: -3.501e-5, cp3: 7.469e-9},
	Methane:  {M: 16.043, Tc: 190.56, Pc: 45.99, Omega: 0.0115, cp0: 19.25, cp1: 5.213e-2, cp2: 1.197e-5, cp3: -11.32e-9},
	Ethane:   {M: 30.070, Tc: 305.32, Pc: 48.72, Omega: 0.0995, cp0: 5.409, cp1: 17.81e-2, cp2: -6.938e-5, cp3: 8.713e-9},
	Propane:  {M: 44.097, Tc: 369.83, Pc: 42.48, Omega: 0.1523, cp0: -4.224, cp1: 30.63e-2, cp2: -15.86e-5, cp3: 32.16e-9},
	IButane:  {M: 58.123, Tc: 408.14, Pc: 36.48, Omega: 0.1844, cp0: -1.390, cp1: 38.47e-2, cp2: -18.50e-5, cp3: 34.80e-9},
	NButane:  {M: 58.123, Tc: 425.12, Pc: 37.96, Omega: 0.2002, cp0: 9.487, cp1: 33.12e-2, cp2: -11.28e-5, cp3: 2.834e-9},
	IPentane: {M: 72.150, Tc: 460.43, Pc: 33.81, Omega: 0.2275, cp0: -9.525, cp1: 50.38e-2, cp2: -23.24e-5, cp3: 41.51e-9},
	NPentane: {M: 72.150, Tc: 469.70, Pc: 33.70, Omega: 0.2515, cp0: -3.626, cp1: 48.72e-2, cp2: -25.04e-5, cp3: 51.59e-9},
	NHexane:  {M: 86.177, Tc: 507.60, Pc: 30.25, Omega: 0.3013, cp0: -4.413, cp1: 58.26e-2, cp2: -29.83e-5, cp3: 57.43e-9},
}

// kij holds declared nonzero binary interaction coefficients; hydrocarbon
// pairs default to 0 and are never looked up here. Indexed both ways by
// callers (see kijOf) so it only needs one entry per pair.
var kij = map[[2]Component]float64{
	{CO2, Nitrogen}: -0.0170,
	{CO2, Methane}:  0.0919,
	{CO2, Ethane}:   0.1322,
	{CO2, Propane}:  0.1241,
	{CO2, Water}:    0.2000,
	{Nitrogen, Methane}: 0.0311,
	{Nitrogen, Ethane}:  0.0515,
	{Nitrogen, Propane}: 0.0852,
	{Nitrogen, Water}:   0.4000,
	{Water, Methane}:    0.4850,
	{Water, Ethane}:     0.4000,
	{Water, Propane}:    0.3500,
}

func kijOf(a, b Component) float64 {
	if a == b {
		return 0
	}
	if v, ok := kij[[2]Component{a, b}]; ok {
		return v
	}
	if v, ok := kij[[2]Component{b, a}]; ok {
		return v
	}
	return 0
}

// idealCp returns the ideal-gas molar heat capacity [J/(mol.K)] at T [K].
func idealCp(c Component, t float64) float64 {
	p := table[c]
	return p.cp0 + p.cp1*t + p.cp2*t*t + p.cp3*t*t*t
}
