// Package analysis provides frequency-domain views of simulated impulse
// responses.
package analysis

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyData indicates an empty input signal.
var ErrEmptyData = errors.New("analysis: empty input")

// PowerSpectrum returns the magnitude spectrum of the first half of the
// FFT of data, zero-padded to the next power of two.
func PowerSpectrum(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	fftSize := nextPowerOf2(len(data))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range data {
		in[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return nil, fmt.Errorf("analysis: forward fft: %w", err)
	}

	half := fftSize / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(freq[i])
		im[i] = imag(freq[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// DominantBin returns the index and magnitude of the strongest non-DC bin.
func DominantBin(spectrum []float64) (int, float64) {
	maxIdx, maxVal := 0, 0.0
	for i := 1; i < len(spectrum); i++ {
		if spectrum[i] > maxVal {
			maxVal = spectrum[i]
			maxIdx = i
		}
	}
	return maxIdx, maxVal
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
