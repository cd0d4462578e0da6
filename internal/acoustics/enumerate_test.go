package acoustics

import (
	"testing"

	"github.com/san-kum/roomsim/internal/geometry"
)

func mustRoom(t *testing.T, l, w, h float64) *geometry.Room {
	t.Helper()
	room, err := geometry.NewRoom(l, w, h)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	return room
}

func TestEnumerateOrderZero(t *testing.T) {
	room := mustRoom(t, 4, 3, 2.5)
	src := geometry.Point{X: 1, Y: 1, Z: 1}

	vss := Enumerate(room, src, 0)
	if len(vss) != 1 {
		t.Fatalf("expected 1 virtual source, got %d", len(vss))
	}
	if vss[0].Pos != src {
		t.Errorf("expected real source position, got %+v", vss[0].Pos)
	}
	if vss[0].Order() != 0 {
		t.Errorf("expected order 0, got %d", vss[0].Order())
	}
}

func TestEnumerateCounts(t *testing.T) {
	room := mustRoom(t, 1, 1, 1)
	src := geometry.Point{X: 0.5, Y: 0.5, Z: 0.5}

	tests := []struct {
		maxOrder int
		want     int
	}{
		{0, 1},
		{1, 7},
		{2, 37},
		{3, 187},
	}

	for _, tt := range tests {
		vss := Enumerate(room, src, tt.maxOrder)
		if len(vss) != tt.want {
			t.Errorf("maxOrder %d: expected %d sources, got %d", tt.maxOrder, tt.want, len(vss))
		}
		if got := Count(tt.maxOrder); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.maxOrder, got, tt.want)
		}
	}
}

func TestEnumerateNoImmediateBackReflection(t *testing.T) {
	room := mustRoom(t, 4, 3, 2.5)
	vss := Enumerate(room, geometry.Point{X: 1, Y: 1, Z: 1}, 3)

	for _, vs := range vss {
		for i := 1; i < len(vs.Walls); i++ {
			if vs.Walls[i] == vs.Walls[i-1] {
				t.Fatalf("immediate back-reflection in sequence %v", vs.Walls)
			}
		}
	}
}

func TestEnumerateOrdering(t *testing.T) {
	room := mustRoom(t, 4, 3, 2.5)
	vss := Enumerate(room, geometry.Point{X: 1, Y: 1, Z: 1}, 3)

	// Flat slice is ordered by reflection order.
	prev := 0
	for i, vs := range vss {
		if vs.Order() < prev {
			t.Fatalf("source %d: order %d after order %d", i, vs.Order(), prev)
		}
		prev = vs.Order()
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	room := mustRoom(t, 4, 3, 2.5)
	src := geometry.Point{X: 1.2, Y: 0.7, Z: 1.9}

	a := Enumerate(room, src, 3)
	b := Enumerate(room, src, 3)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Pos != b[i].Pos {
			t.Fatalf("source %d: position mismatch %+v vs %+v", i, a[i].Pos, b[i].Pos)
		}
		if len(a[i].Walls) != len(b[i].Walls) {
			t.Fatalf("source %d: reflection list mismatch", i)
		}
		for j := range a[i].Walls {
			if a[i].Walls[j] != b[i].Walls[j] {
				t.Fatalf("source %d: reflection list mismatch at %d", i, j)
			}
		}
	}
}

func TestEnumerateFirstOrderPositions(t *testing.T) {
	room := mustRoom(t, 4, 3, 2.5)
	src := geometry.Point{X: 1, Y: 1, Z: 1}

	vss := Enumerate(room, src, 1)

	// One mirror per wall in canonical order: floor, ceiling, front, back,
	// left, right.
	want := []geometry.Point{
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: 4},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 5, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: 7, Y: 1, Z: 1},
	}

	if len(vss) != 7 {
		t.Fatalf("expected 7 sources, got %d", len(vss))
	}
	for i, p := range want {
		vs := vss[i+1]
		if vs.Pos != p {
			t.Errorf("first-order source %d: expected %+v, got %+v", i, p, vs.Pos)
		}
		if len(vs.Walls) != 1 || vs.Walls[0] != i {
			t.Errorf("first-order source %d: expected wall [%d], got %v", i, i, vs.Walls)
		}
	}
}
