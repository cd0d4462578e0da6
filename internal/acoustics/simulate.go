package acoustics

import (
	"context"
	"fmt"

	"github.com/san-kum/roomsim/internal/geometry"
)

// Simulate runs the image source method for every (source, receiver, band)
// triple and returns the impulse responses keyed first by band, then by
// receiver in input order. Contributions from all sources sum linearly into
// each receiver's buffer.
//
// The call is a pure function of its inputs: all validation happens up
// front and no state survives the call. The (receiver, band) pairs are
// independent, so they fan out over opts.Workers goroutines, each writing
// only its own buffer.
func Simulate(ctx context.Context, cfg Config, opts Options) (map[Band][]ImpulseResponse, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	room, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// One enumeration per source; every (receiver, band) pair reuses it.
	perSource := make([][]VirtualSource, len(cfg.Sources))
	for i, src := range cfg.Sources {
		perSource[i] = Enumerate(room, src, cfg.MaxOrder)
	}

	bands := Bands()

	// Attenuation depends only on (source, band), not on the receiver.
	atten := make(map[Band][][]float64, len(bands))
	for _, band := range bands {
		coeffs := cfg.Absorption[band]
		perBand := make([][]float64, len(perSource))
		for i, vss := range perSource {
			perBand[i] = attenuateAll(vss, coeffs)
		}
		atten[band] = perBand
	}

	out := make(map[Band][]ImpulseResponse, len(bands))
	for _, band := range bands {
		out[band] = make([]ImpulseResponse, len(cfg.Receivers))
	}

	type pair struct {
		band     Band
		receiver int
	}
	pairs := make([]pair, 0, len(bands)*len(cfg.Receivers))
	for _, band := range bands {
		for r := range cfg.Receivers {
			pairs = append(pairs, pair{band, r})
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}

	parallelFor(len(pairs), workers, func(start, end int) {
		for pi := start; pi < end; pi++ {
			p := pairs[pi]

			var pulse PulseShape
			if opts.Enhanced {
				pulse = BandlimitedPulse(pulseWidth)
			} else {
				pulse = DiracPulse()
			}

			buf := make(ImpulseResponse, opts.BufferLength)
			for si := range perSource {
				Synthesize(buf, perSource[si], atten[p.band][si], cfg.Receivers[p.receiver], opts, pulse)
			}
			out[p.band][p.receiver] = buf
		}
	})

	return out, nil
}

// validateConfig checks every configuration invariant before any simulation
// work starts: positive room dimensions, at least one source and receiver,
// all positions inside the room, a complete absorption spec, and a
// non-negative order bound.
func validateConfig(cfg Config) (*geometry.Room, error) {
	room, err := geometry.NewRoom(cfg.RoomDims[0], cfg.RoomDims[1], cfg.RoomDims[2])
	if err != nil {
		return nil, &ConfigError{Field: "room_dims", Wrapped: err}
	}

	if len(cfg.Sources) == 0 {
		return nil, &ConfigError{Field: "source_positions", Wrapped: ErrEmptyConfiguration}
	}
	if len(cfg.Receivers) == 0 {
		return nil, &ConfigError{Field: "receiver_positions", Wrapped: ErrEmptyConfiguration}
	}

	for i, p := range cfg.Sources {
		if !room.Contains(p) {
			return nil, &ConfigError{
				Field:   fmt.Sprintf("source_positions[%d]", i),
				Wrapped: fmt.Errorf("%w: (%g, %g, %g)", ErrOutOfBounds, p.X, p.Y, p.Z),
			}
		}
	}
	for i, p := range cfg.Receivers {
		if !room.Contains(p) {
			return nil, &ConfigError{
				Field:   fmt.Sprintf("receiver_positions[%d]", i),
				Wrapped: fmt.Errorf("%w: (%g, %g, %g)", ErrOutOfBounds, p.X, p.Y, p.Z),
			}
		}
	}

	if err := cfg.Absorption.Validate(); err != nil {
		return nil, &ConfigError{Field: "abs_coeff", Wrapped: err}
	}

	if cfg.MaxOrder < 0 {
		return nil, &ConfigError{Field: "max_order", Wrapped: ErrNegativeOrder}
	}

	return room, nil
}
