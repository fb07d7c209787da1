package route

import "time"

type Route struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	DistanceKm     float64   `json:"distance_km"`
	EstimatedHours float64   `json:"estimated_hours"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	DestinationIDs []string  `json:"destination_ids,omitempty"`
}

type PopularRoute struct {
	Route
	FavoritesCount int64 `json:"favorites_count"`
	CompletedCount int64 `json:"completed_count"`
	Score          int64 `json:"popularity_score"`
}

type DestinationSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FavoritesCount int64  `json:"favorites_count"`
}

type Statistics struct {
	TotalTravelers        int64                `json:"total_travelers"`
	CompletedCount        int64                `json:"completed_count"`
	CompletionRate        float64              `json:"completion_rate"`
	AverageCompletionTime float64              `json:"average_completion_time_minutes"`
	PopularDestinations   []DestinationSummary `json:"popular_destinations"`
}
