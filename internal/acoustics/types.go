package acoustics

import (
	"fmt"
	"runtime"

	"github.com/san-kum/roomsim/internal/geometry"
)

// Band identifies one of the three absorption frequency bands.
type Band string

const (
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Bands returns the frequency bands in canonical order.
func Bands() []Band { return []Band{BandLow, BandMid, BandHigh} }

// Absorption maps each band to six per-wall absorption coefficients in
// the canonical wall order of the geometry package.
type Absorption map[Band][]float64

// Validate checks that every band is present with exactly six coefficients,
// each within [0,1].
func (a Absorption) Validate() error {
	for _, band := range Bands() {
		coeffs, ok := a[band]
		if !ok {
			return fmt.Errorf("%w: band %q missing", ErrInvalidAbsorption, band)
		}
		if len(coeffs) != geometry.NumWalls {
			return fmt.Errorf("%w: band %q has %d coefficients, want %d",
				ErrInvalidAbsorption, band, len(coeffs), geometry.NumWalls)
		}
		for i, alpha := range coeffs {
			if alpha < 0 || alpha > 1 {
				return fmt.Errorf("%w: band %q wall %d: %g", ErrInvalidAbsorption, band, i, alpha)
			}
		}
	}
	return nil
}

// VirtualSource is a mirrored source position tagged with the ordered wall
// indices it reflected off. Order zero is the real source with no walls.
type VirtualSource struct {
	Pos   geometry.Point
	Walls []int
}

// Order returns the reflection order of the virtual source.
func (vs VirtualSource) Order() int { return len(vs.Walls) }

// ImpulseResponse is a fixed-length sequence of amplitude samples for one
// (receiver, band) pair, indexed by discrete time.
type ImpulseResponse []float64

// Config describes one simulation: the room, the transducer positions, the
// per-band wall absorption, and the reflection order bound. It is read-only
// to the engine for the lifetime of one Simulate call.
type Config struct {
	RoomDims   [3]float64
	Sources    []geometry.Point
	Receivers  []geometry.Point
	Absorption Absorption
	MaxOrder   int
}

// Options hold the discretization settings of the synthesizer.
type Options struct {
	SampleRate   float64 // time resolution in Hz
	BufferLength int     // total samples; must exceed the longest expected decay
	SpeedOfSound float64 // propagation constant in m/s
	Enhanced     bool    // spread contributions over a band-limited pulse
	Workers      int     // concurrent (receiver, band) workers; 0 means NumCPU
}

// DefaultOptions returns the standard discretization: 44.1 kHz, a one second
// buffer, and sound speed in air at 20 degrees C.
func DefaultOptions() Options {
	return Options{
		SampleRate:   44100,
		BufferLength: 44100,
		SpeedOfSound: 343,
		Workers:      runtime.NumCPU(),
	}
}

func (o Options) validate() error {
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidOptions, o.SampleRate)
	}
	if o.BufferLength <= 0 {
		return fmt.Errorf("%w: buffer length %d", ErrInvalidOptions, o.BufferLength)
	}
	if o.SpeedOfSound <= 0 {
		return fmt.Errorf("%w: speed of sound %g", ErrInvalidOptions, o.SpeedOfSound)
	}
	return nil
}
