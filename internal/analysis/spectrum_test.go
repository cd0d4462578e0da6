package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestPowerSpectrumEmpty(t *testing.T) {
	if _, err := PowerSpectrum(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestPowerSpectrumSine(t *testing.T) {
	const n = 1024
	const bin = 32

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * bin * float64(i) / n)
	}

	ps, err := PowerSpectrum(data)
	if err != nil {
		t.Fatalf("PowerSpectrum failed: %v", err)
	}
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}

	idx, _ := DominantBin(ps)
	if idx != bin {
		t.Errorf("expected dominant bin %d, got %d", bin, idx)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	data := make([]float64, 100)
	data[0] = 1

	ps, err := PowerSpectrum(data)
	if err != nil {
		t.Fatalf("PowerSpectrum failed: %v", err)
	}
	// 100 pads to 128, half-spectrum is 64 bins.
	if len(ps) != 64 {
		t.Errorf("expected 64 bins, got %d", len(ps))
	}

	// A unit impulse has a flat spectrum.
	for i, v := range ps {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("bin %d: expected flat spectrum, got %f", i, v)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 1}, {2, 2}, {3, 4}, {100, 128}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
