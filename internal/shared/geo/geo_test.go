package geo

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	// Playa Blanca to Mercado Publico de Lorica, ~15.8 km
	d := DistanceKm(9.3747, -75.7556, 9.2361, -75.8139)
	if d < 15.3 || d > 16.3 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := DistanceKm(9.3747, -75.7556, -6.9175, 107.6191)
	b := DistanceKm(-6.9175, 107.6191, 9.3747, -75.7556)
	if math.Abs(a-b) > 1e-6 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestDistanceKmSamePoint(t *testing.T) {
	d := DistanceKm(9.3747, -75.7556, 9.3747, -75.7556)
	if d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestDistanceKmAntipodalNoNaN(t *testing.T) {
	d := DistanceKm(45, 90, -45, -90)
	if math.IsNaN(d) {
		t.Fatalf("antipodal distance is NaN")
	}
	if math.Abs(d-math.Pi*EarthRadiusKm) > 1 {
		t.Fatalf("unexpected antipodal distance: %v", d)
	}
}

func TestNearbyRadiusFilterAndOrder(t *testing.T) {
	origin := Candidate{ID: "d1", Lat: ptr(9.3747), Lng: ptr(-75.7556)}
	candidates := []Candidate{
		{ID: "d2", Name: "Mercado Publico de Lorica", Lat: ptr(9.2361), Lng: ptr(-75.8139)},
		{ID: "d3", Name: "Close by", Lat: ptr(9.38), Lng: ptr(-75.76)},
		{ID: "d4", Name: "Far away", Lat: ptr(4.711), Lng: ptr(-74.0721)},
		{ID: "d1", Name: "Origin itself", Lat: ptr(9.3747), Lng: ptr(-75.7556)},
		{ID: "d5", Name: "No coordinates"},
	}

	matches := Nearby(Query{Origin: origin, RadiusKm: 20, Limit: 10}, candidates)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.DistanceKm < 0 || m.DistanceKm > 20+1e-6 {
			t.Fatalf("match outside radius: %v", m.DistanceKm)
		}
		if i > 0 && matches[i-1].DistanceKm > m.DistanceKm {
			t.Fatalf("matches not sorted by distance")
		}
	}
	if matches[0].Candidate.ID != "d3" || matches[1].Candidate.ID != "d2" {
		t.Fatalf("unexpected ordering: %v %v", matches[0].Candidate.ID, matches[1].Candidate.ID)
	}

	matches = Nearby(Query{Origin: origin, RadiusKm: 10, Limit: 10}, candidates)
	if len(matches) != 1 || matches[0].Candidate.ID != "d3" {
		t.Fatalf("radius=10 should exclude Lorica, got %d matches", len(matches))
	}
}

func TestNearbySearchTerm(t *testing.T) {
	origin := Candidate{ID: "d1", Lat: ptr(9.37), Lng: ptr(-75.75)}
	candidates := []Candidate{
		{ID: "d2", Name: "Playa Blanca", Description: "beach", Lat: ptr(9.38), Lng: ptr(-75.76)},
		{ID: "d3", Name: "Mercado", Description: "playa vendors", Lat: ptr(9.39), Lng: ptr(-75.76)},
	}

	matches := Nearby(Query{Origin: origin, RadiusKm: 50, SearchTerm: "PLAYA", Limit: 10}, candidates)
	if len(matches) != 1 || matches[0].Candidate.ID != "d2" {
		t.Fatalf("name-only search: expected d2, got %d matches", len(matches))
	}

	matches = Nearby(Query{Origin: origin, RadiusKm: 50, SearchTerm: "PLAYA", MatchDescription: true, Limit: 10}, candidates)
	if len(matches) != 2 {
		t.Fatalf("name-or-description search: expected 2 matches, got %d", len(matches))
	}
}

func TestNearbyLimitAndMissingOrigin(t *testing.T) {
	origin := Candidate{ID: "d1", Lat: ptr(9.37), Lng: ptr(-75.75)}
	var candidates []Candidate
	for i := 0; i < 5; i++ {
		lat := 9.371 + float64(i)*0.001
		candidates = append(candidates, Candidate{ID: string(rune('a' + i)), Lat: ptr(lat), Lng: ptr(-75.75)})
	}

	matches := Nearby(Query{Origin: origin, RadiusKm: 100, Limit: 3}, candidates)
	if len(matches) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(matches))
	}

	if got := Nearby(Query{Origin: Candidate{ID: "d1"}, RadiusKm: 100, Limit: 3}, candidates); got != nil {
		t.Fatalf("origin without coordinates should yield no matches")
	}
}
