package acoustics

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/san-kum/roomsim/internal/geometry"
)

// distanceEpsilon guards the spherical spreading division when a virtual
// source sits on top of the receiver (1 mm floor).
const distanceEpsilon = 1e-3

// pulseWidth is the tap count of the band-limited kernel in enhanced mode.
const pulseWidth = 11

// PulseShape adds one contribution of amplitude amp into buf around the
// sample index idx. Implementations must sum, never overwrite: multiple
// virtual sources can land on the same sample.
type PulseShape func(buf []float64, idx int, amp float64)

// DiracPulse places each contribution as a single-sample impulse.
func DiracPulse() PulseShape {
	return func(buf []float64, idx int, amp float64) {
		if idx >= 0 && idx < len(buf) {
			buf[idx] += amp
		}
	}
}

// BandlimitedPulse spreads each contribution over a Hann-windowed sinc
// kernel of the given odd width centered on the sample index, smoothing the
// aliasing that integer index rounding introduces. Taps outside the buffer
// are discarded. The returned shape reuses a scratch slice and must not be
// shared across goroutines.
func BandlimitedPulse(width int) PulseShape {
	if width < 3 {
		width = 3
	}
	if width%2 == 0 {
		width++
	}
	kernel := sincKernel(width)
	scratch := make([]float64, width)
	half := width / 2

	return func(buf []float64, idx int, amp float64) {
		lo := idx - half
		hi := idx + half
		if lo >= 0 && hi < len(buf) {
			vecmath.ScaleBlock(scratch, kernel, amp)
			vecmath.AddBlockInPlace(buf[lo:hi+1], scratch)
			return
		}
		for j, k := range kernel {
			if i := lo + j; i >= 0 && i < len(buf) {
				buf[i] += amp * k
			}
		}
	}
}

// sincKernel builds a unit-peak Hann-windowed sinc of odd width.
func sincKernel(width int) []float64 {
	k := make([]float64, width)
	half := width / 2
	for n := range k {
		x := float64(n - half)
		s := 1.0
		if x != 0 {
			s = math.Sin(math.Pi*x) / (math.Pi * x)
		}
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(width-1)))
		k[n] = s * w
	}
	return k
}

// Synthesize accumulates the attenuated virtual sources into an impulse
// response buffer for one receiver: each source contributes amplitude
// attenuation/distance at the sample index of its propagation delay.
// Contributions falling past the buffer end are dropped.
func Synthesize(buf []float64, sources []VirtualSource, atten []float64, receiver geometry.Point, opts Options, pulse PulseShape) {
	for i, vs := range sources {
		d := distance(vs.Pos, receiver)
		delay := d / opts.SpeedOfSound
		idx := int(math.Round(delay * opts.SampleRate))
		amp := atten[i] / math.Max(d, distanceEpsilon)
		pulse(buf, idx, amp)
	}
}

func distance(a, b geometry.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
