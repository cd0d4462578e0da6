// Package metrics derives reverberation figures from room configurations and
// simulated impulse responses: the closed-form Sabine RT60 estimate and
// measured decay metrics from Schroeder backward integration.
package metrics

import (
	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/geometry"
)

// sabineConstant relates volume over total absorption to RT60 in seconds.
const sabineConstant = 0.161

// SabineRT60 computes the per-band reverberation time
//
//	RT60 = 0.161 * V / sum(area_i * alpha_i)
//
// using the canonical wall order shared with the simulation engine. A band
// with zero total absorption yields 0 (no meaningful estimate for a
// lossless room).
func SabineRT60(room *geometry.Room, abs acoustics.Absorption) map[acoustics.Band]float64 {
	volume := room.Volume()
	areas := room.SurfaceAreas()

	out := make(map[acoustics.Band]float64, len(abs))
	for band, coeffs := range abs {
		total := 0.0
		for i, area := range areas {
			if i < len(coeffs) {
				total += area * coeffs[i]
			}
		}
		if total > 0 {
			out[band] = sabineConstant * volume / total
		} else {
			out[band] = 0
		}
	}
	return out
}
