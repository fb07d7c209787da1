// Package geo computes great-circle distances and radius-filtered
// neighbor lookups for entities carrying a latitude/longitude pair.
package geo

import (
	"math"
	"sort"
	"strings"
)

// EarthRadiusKm is the spherical Earth approximation used everywhere.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// points given in degrees. The acos argument is clamped to [-1,1] so that
// coincident or antipodal points cannot produce NaN from floating-point
// overshoot.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)

	arg := math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(radians(lng2)-radians(lng1)) +
		math.Sin(rlat1)*math.Sin(rlat2)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return EarthRadiusKm * math.Acos(arg)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Candidate is anything eligible for a proximity query. Lat and Lng are
// pointers because entities may be stored without coordinates; those are
// skipped rather than treated as (0,0).
type Candidate struct {
	ID          string
	Name        string
	Description string
	Lat         *float64
	Lng         *float64
}

// Match pairs a candidate with its computed distance from the origin.
type Match struct {
	Candidate  Candidate
	DistanceKm float64
}

// Query describes a nearby search around an origin candidate.
type Query struct {
	Origin     Candidate
	RadiusKm   float64
	SearchTerm string
	// MatchDescription extends the search-term filter to the description
	// field (destinations match name OR description, events title only).
	MatchDescription bool
	Limit            int
}

// Nearby filters candidates to those within Query.RadiusKm of the origin,
// ordered ascending by distance and truncated to Query.Limit. Candidates
// missing coordinates or sharing the origin's id are skipped; an origin
// without coordinates yields an empty result.
func Nearby(q Query, candidates []Candidate) []Match {
	if q.Origin.Lat == nil || q.Origin.Lng == nil {
		return nil
	}

	term := strings.ToLower(q.SearchTerm)
	var matches []Match
	for _, c := range candidates {
		if c.ID == q.Origin.ID || c.Lat == nil || c.Lng == nil {
			continue
		}
		if term != "" && !matchesTerm(c, term, q.MatchDescription) {
			continue
		}
		d := DistanceKm(*q.Origin.Lat, *q.Origin.Lng, *c.Lat, *c.Lng)
		if d <= q.RadiusKm {
			matches = append(matches, Match{Candidate: c, DistanceKm: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches
}

func matchesTerm(c Candidate, term string, withDescription bool) bool {
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	return withDescription && strings.Contains(strings.ToLower(c.Description), term)
}
