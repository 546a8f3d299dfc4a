package fluid

import "github.com/cpmech/gosl/chk"

// ErrMismatchedMixingPressure is returned by MixStreams when the inlet
// streams do not share a common pressure.
var ErrMismatchedMixingPressure = chk.Err("mixing invalid: inlet streams do not share a common pressure")

// ErrMixingNoBracket is returned by MixStreams when the enthalpy-balance
// root cannot be bracketed within the search window.
var ErrMixingNoBracket = chk.Err("mixing energy balance: no bracket found for mixed temperature")
