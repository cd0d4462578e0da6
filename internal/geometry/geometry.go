// Package geometry models a rectangular room as an axis-aligned box and
// provides the mirror reflections used by the image source method.
//
// Walls are enumerated in a fixed order shared by absorption coefficient
// arrays and the Sabine RT60 calculation:
//
//	0 floor   (z = 0)      1 ceiling (z = height)
//	2 front   (y = 0)      3 back    (y = width)
//	4 left    (x = 0)      5 right   (x = length)
package geometry

import (
	"errors"
	"fmt"
)

// NumWalls is the number of boundary surfaces of a rectangular room.
const NumWalls = 6

// ErrInvalidGeometry indicates a room dimension that is zero or negative.
var ErrInvalidGeometry = errors.New("geometry: room dimension must be positive")

// Axis identifies a coordinate axis of the room box.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Point is a position in room coordinates (meters).
type Point struct {
	X, Y, Z float64
}

// Wall is one boundary plane of the room.
type Wall struct {
	Index    int     // position in the canonical wall order
	Axis     Axis    // axis the wall is perpendicular to
	Boundary float64 // coordinate of the wall plane along Axis
	Area     float64 // surface area in square meters
}

// Room is an axis-aligned rectangular box with one corner at the origin.
type Room struct {
	Length float64 // x extent
	Width  float64 // y extent
	Height float64 // z extent

	walls [NumWalls]Wall
}

// NewRoom builds a room from its dimensions. All three must be positive.
func NewRoom(length, width, height float64) (*Room, error) {
	for _, d := range []float64{length, width, height} {
		if d <= 0 {
			return nil, fmt.Errorf("%w: got %gx%gx%g", ErrInvalidGeometry, length, width, height)
		}
	}

	r := &Room{Length: length, Width: width, Height: height}
	r.walls = [NumWalls]Wall{
		{Index: 0, Axis: AxisZ, Boundary: 0, Area: length * width},
		{Index: 1, Axis: AxisZ, Boundary: height, Area: length * width},
		{Index: 2, Axis: AxisY, Boundary: 0, Area: length * height},
		{Index: 3, Axis: AxisY, Boundary: width, Area: length * height},
		{Index: 4, Axis: AxisX, Boundary: 0, Area: width * height},
		{Index: 5, Axis: AxisX, Boundary: length, Area: width * height},
	}
	return r, nil
}

// Walls returns the six boundary planes in canonical order.
func (r *Room) Walls() [NumWalls]Wall { return r.walls }

// Volume returns the room volume in cubic meters.
func (r *Room) Volume() float64 { return r.Length * r.Width * r.Height }

// SurfaceAreas returns the six wall areas in canonical order.
func (r *Room) SurfaceAreas() [NumWalls]float64 {
	var areas [NumWalls]float64
	for i, w := range r.walls {
		areas[i] = w.Area
	}
	return areas
}

// Reflect mirrors p across the wall plane: the coordinate along the wall's
// axis maps to 2*boundary - coordinate, the others are unchanged.
func (r *Room) Reflect(p Point, w Wall) Point {
	switch w.Axis {
	case AxisX:
		p.X = 2*w.Boundary - p.X
	case AxisY:
		p.Y = 2*w.Boundary - p.Y
	default:
		p.Z = 2*w.Boundary - p.Z
	}
	return p
}

// Contains reports whether p lies inside the room or on its boundary.
func (r *Room) Contains(p Point) bool {
	return p.X >= 0 && p.X <= r.Length &&
		p.Y >= 0 && p.Y <= r.Width &&
		p.Z >= 0 && p.Z <= r.Height
}
