package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// Downsample reduces data to at most maxPoints samples, keeping the value
// with the largest magnitude in each bucket so peaks survive.
func Downsample(data []float64, maxPoints int) []float64 {
	if maxPoints <= 0 || len(data) <= maxPoints {
		return data
	}

	out := make([]float64, maxPoints)
	bucket := float64(len(data)) / float64(maxPoints)
	for i := range out {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(data) {
			end = len(data)
		}

		peak := data[start]
		for _, v := range data[start:end] {
			if math.Abs(v) > math.Abs(peak) {
				peak = v
			}
		}
		out[i] = peak
	}
	return out
}

// PlotWaveform renders an impulse response as an ASCII chart.
func PlotWaveform(ir []float64, sampleRate float64, width, height int, caption string) string {
	data := Downsample(ir, width)
	duration := float64(len(ir)) / sampleRate
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s (%.2fs)", caption, duration)),
	)
}

// PlotDecay renders a decay curve in dB.
func PlotDecay(curve []float64, sampleRate float64, width, height int, caption string) string {
	data := Downsample(curve, width)
	duration := float64(len(curve)) / sampleRate
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s decay, dB (%.2fs)", caption, duration)),
	)
}

// PlotSpectrum renders a power spectrum on a log magnitude scale.
func PlotSpectrum(spectrum []float64, width, height int, caption string) string {
	db := make([]float64, len(spectrum))
	for i, v := range spectrum {
		if v <= 0 {
			db[i] = -120
			continue
		}
		d := 10 * math.Log10(v)
		if d < -120 {
			d = -120
		}
		db[i] = d
	}
	data := Downsample(db, width)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
