package acoustics

import (
	"fmt"
	"math"
)

// Attenuate computes the cumulative amplitude attenuation of a virtual
// source for one band: the product of sqrt(1-alpha) over its reflection
// sequence. A proportion alpha of the incident energy is absorbed per
// bounce and amplitude scales with the square root of the reflected energy
// fraction. The empty product is 1 (direct path).
//
// Coefficients outside [0,1] fail with ErrInvalidAbsorption rather than
// clamping, so configuration mistakes surface instead of producing
// silently wrong physics.
func Attenuate(vs VirtualSource, coeffs []float64) (float64, error) {
	att := 1.0
	for _, wall := range vs.Walls {
		if wall < 0 || wall >= len(coeffs) {
			return 0, fmt.Errorf("%w: wall index %d out of range", ErrInvalidAbsorption, wall)
		}
		alpha := coeffs[wall]
		if alpha < 0 || alpha > 1 {
			return 0, fmt.Errorf("%w: wall %d: %g", ErrInvalidAbsorption, wall, alpha)
		}
		att *= math.Sqrt(1 - alpha)
	}
	return att, nil
}

// attenuateAll computes attenuation for every virtual source against one
// band's coefficients. Coefficients are assumed validated.
func attenuateAll(sources []VirtualSource, coeffs []float64) []float64 {
	out := make([]float64, len(sources))
	for i, vs := range sources {
		att := 1.0
		for _, wall := range vs.Walls {
			att *= math.Sqrt(1 - coeffs[wall])
		}
		out[i] = att
	}
	return out
}
