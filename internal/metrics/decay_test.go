package metrics

import (
	"errors"
	"math"
	"testing"
)

// exponentialIR builds a synthetic response whose energy decays by decayDB
// over n samples, giving a known reverberation time.
func exponentialIR(n int, decayDB float64) []float64 {
	ir := make([]float64, n)
	for i := range ir {
		db := decayDB * float64(i) / float64(n-1)
		ir[i] = math.Pow(10, db/20)
	}
	return ir
}

func TestCurveEmpty(t *testing.T) {
	a := NewDecayAnalyzer(44100)
	if _, err := a.Curve(nil); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCurveShape(t *testing.T) {
	a := NewDecayAnalyzer(44100)

	curve, err := a.Curve(exponentialIR(1000, -60))
	if err != nil {
		t.Fatalf("Curve failed: %v", err)
	}

	if curve[0] != 0 {
		t.Errorf("expected curve to start at 0 dB, got %f", curve[0])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1]+1e-9 {
			t.Fatalf("curve not monotone at %d: %f -> %f", i, curve[i-1], curve[i])
		}
	}
	if curve[len(curve)-1] > -40 {
		t.Errorf("expected deep decay at tail, got %f dB", curve[len(curve)-1])
	}
}

func TestCurveSilence(t *testing.T) {
	a := NewDecayAnalyzer(44100)

	curve, err := a.Curve(make([]float64, 64))
	if err != nil {
		t.Fatalf("Curve failed: %v", err)
	}
	for i, v := range curve {
		if v != dbFloor {
			t.Fatalf("expected floor at %d, got %f", i, v)
		}
	}
}

func TestAnalyzeKnownDecay(t *testing.T) {
	fs := 1000.0
	a := NewDecayAnalyzer(fs)

	// One second of response decaying 60 dB: every reverberation metric
	// should come out near 1 s.
	m, err := a.Analyze(exponentialIR(1001, -60))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for name, got := range map[string]float64{
		"RT60": m.RT60,
		"EDT":  m.EDT,
		"T20":  m.T20,
		"T30":  m.T30,
	} {
		if math.Abs(got-1.0) > 0.1 {
			t.Errorf("%s: expected ~1.0 s, got %f", name, got)
		}
	}
}

func TestAnalyzeInvalidSampleRate(t *testing.T) {
	a := NewDecayAnalyzer(0)
	if _, err := a.Analyze([]float64{1, 0.5}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
}

func TestAnalyzeNoDecay(t *testing.T) {
	a := NewDecayAnalyzer(44100)

	// A constant response has no usable decay slope.
	flat := make([]float64, 256)
	for i := range flat {
		flat[i] = 1
	}

	m, err := a.Analyze(flat)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if m.T30 != 0 || m.T20 != 0 {
		t.Errorf("expected zero reverb time for flat response, got %+v", m)
	}
}
