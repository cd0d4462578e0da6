package metrics

import (
	"errors"
	"math"
)

// Errors returned by decay analysis.
var (
	ErrEmptyResponse     = errors.New("metrics: impulse response is empty")
	ErrInvalidSampleRate = errors.New("metrics: sample rate must be positive")
)

// dbFloor caps the decay curve where the tail energy underflows.
const dbFloor = -200

// DecayMetrics holds reverberation figures measured from a simulated
// impulse response, as opposed to the closed-form Sabine estimate.
type DecayMetrics struct {
	RT60 float64 // extrapolated from T30, falling back to T20
	EDT  float64 // early decay time, 0 to -10 dB
	T20  float64 // -5 to -25 dB slope
	T30  float64 // -5 to -35 dB slope
}

// DecayAnalyzer measures energy decay of impulse responses.
type DecayAnalyzer struct {
	SampleRate float64
}

// NewDecayAnalyzer creates an analyzer for responses sampled at sampleRate.
func NewDecayAnalyzer(sampleRate float64) *DecayAnalyzer {
	return &DecayAnalyzer{SampleRate: sampleRate}
}

// Curve computes the Schroeder backward integration of the squared
// response, normalized and expressed in dB:
//
//	S(t) = 10*log10( sum_{i>=t} h[i]^2 / sum_i h[i]^2 )
//
// The cumulative-sum-from-the-end turns the spiky response into a smooth
// decay curve suitable for plotting and slope regression.
func (a *DecayAnalyzer) Curve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}

	curve := make([]float64, len(ir))
	cum := 0.0
	for i := len(ir) - 1; i >= 0; i-- {
		cum += ir[i] * ir[i]
		curve[i] = cum
	}

	total := curve[0]
	if total <= 0 {
		for i := range curve {
			curve[i] = dbFloor
		}
		return curve, nil
	}

	for i := range curve {
		ratio := curve[i] / total
		if ratio <= 0 {
			curve[i] = dbFloor
		} else {
			curve[i] = 10 * math.Log10(ratio)
		}
	}
	return curve, nil
}

// Analyze measures decay metrics by linear regression on the Schroeder
// curve, extrapolated to -60 dB.
func (a *DecayAnalyzer) Analyze(ir []float64) (DecayMetrics, error) {
	if a.SampleRate <= 0 {
		return DecayMetrics{}, ErrInvalidSampleRate
	}

	curve, err := a.Curve(ir)
	if err != nil {
		return DecayMetrics{}, err
	}

	m := DecayMetrics{
		EDT: a.reverbTime(curve, 0, -10),
		T20: a.reverbTime(curve, -5, -25),
		T30: a.reverbTime(curve, -5, -35),
	}
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}
	return m, nil
}

// reverbTime fits a line to the curve between startDB and endDB and
// extrapolates the slope to a full -60 dB decay. Returns 0 when the curve
// never reaches the range or does not decay.
func (a *DecayAnalyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1
	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}
		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	n := float64(endIdx - startIdx + 1)
	var sumX, sumY, sumXX, sumXY float64
	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	rt := -60.0 / (slope * a.SampleRate)
	if rt < 0 || math.IsInf(rt, 0) || math.IsNaN(rt) {
		return 0
	}
	return rt
}
