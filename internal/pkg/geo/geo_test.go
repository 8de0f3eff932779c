package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters_Symmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Coordinate
	}{
		{"sao paulo downtown", Coordinate{-23.550520, -46.633308}, Coordinate{-23.551000, -46.634000}},
		{"across equator", Coordinate{0.5, 10}, Coordinate{-0.5, 10}},
		{"across antimeridian", Coordinate{10, 179.9}, Coordinate{10, -179.9}},
	}
	for _, c := range cases {
		ab := DistanceMeters(c.a, c.b)
		ba := DistanceMeters(c.b, c.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("%s: DistanceMeters not symmetric: %v vs %v", c.name, ab, ba)
		}
	}
}

func TestDistanceMeters_SamePoint(t *testing.T) {
	p := Coordinate{-23.550520, -46.633308}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("DistanceMeters(p, p) = %v, want 0", d)
	}
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// One degree of latitude is EarthRadius * pi / 180 meters.
	a := Coordinate{0, 0}
	b := Coordinate{1, 0}
	want := EarthRadiusMeters * math.Pi / 180.0
	got := DistanceMeters(a, b)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("DistanceMeters(1 deg lat) = %v, want %v", got, want)
	}
}

func TestWithinRadius(t *testing.T) {
	center := Coordinate{-23.550520, -46.633308}

	// ~95 m north of center (0.000853 degrees of latitude).
	near := Coordinate{-23.550520 + 0.000853, -46.633308}
	// ~150 m north of center.
	far := Coordinate{-23.550520 + 0.001349, -46.633308}

	if !WithinRadius(near, center, 100) {
		t.Errorf("point ~95m away should be inside a 100m radius (got distance %v)", RoundedDistanceMeters(near, center))
	}
	if WithinRadius(far, center, 100) {
		t.Errorf("point ~150m away should be outside a 100m radius (got distance %v)", RoundedDistanceMeters(far, center))
	}
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	center := Coordinate{-23.550520, -46.633308}
	point := Coordinate{-23.550520 + 0.000853, -46.633308}

	// The comparison happens on the rounded distance, so a radius exactly
	// equal to the rounded distance is inside, one meter less is outside.
	d := RoundedDistanceMeters(point, center)
	if !WithinRadius(point, center, d) {
		t.Errorf("distance == radius should be inside")
	}
	if WithinRadius(point, center, d-1) {
		t.Errorf("distance == radius+1 should be outside")
	}
	if !WithinRadius(point, center, d+1) {
		t.Errorf("distance == radius-1 should be inside")
	}
}
