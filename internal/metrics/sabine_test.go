package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/geometry"
)

func TestSabineRT60Uniform(t *testing.T) {
	room, err := geometry.NewRoom(4, 3, 2.5)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}

	abs := acoustics.Absorption{}
	for _, band := range acoustics.Bands() {
		abs[band] = []float64{0.3, 0.3, 0.3, 0.3, 0.3, 0.3}
	}

	rt := SabineRT60(room, abs)

	// V = 30, total surface = 59, A = 17.7, RT60 = 0.161*30/17.7.
	want := 0.161 * 30 / 17.7
	for _, band := range acoustics.Bands() {
		if math.Abs(rt[band]-want) > 1e-9 {
			t.Errorf("band %q: expected %f, got %f", band, want, rt[band])
		}
	}
}

func TestSabineRT60PerBand(t *testing.T) {
	room, err := geometry.NewRoom(2, 2, 2)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}

	abs := acoustics.Absorption{
		acoustics.BandLow:  {0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
		acoustics.BandMid:  {0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		acoustics.BandHigh: {1, 1, 1, 1, 1, 1},
	}

	rt := SabineRT60(room, abs)

	if rt[acoustics.BandLow] <= rt[acoustics.BandMid] {
		t.Error("less absorption must give longer reverberation")
	}
	if rt[acoustics.BandMid] <= rt[acoustics.BandHigh] {
		t.Error("less absorption must give longer reverberation")
	}

	// V = 8, area = 24: fully absorbing room gives 0.161*8/24.
	want := 0.161 * 8 / 24
	if math.Abs(rt[acoustics.BandHigh]-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, rt[acoustics.BandHigh])
	}
}

func TestSabineRT60ZeroAbsorption(t *testing.T) {
	room, err := geometry.NewRoom(4, 3, 2.5)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}

	abs := acoustics.Absorption{
		acoustics.BandLow: {0, 0, 0, 0, 0, 0},
	}

	rt := SabineRT60(room, abs)
	if rt[acoustics.BandLow] != 0 {
		t.Errorf("lossless room: expected 0, got %f", rt[acoustics.BandLow])
	}
}
