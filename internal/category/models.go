package category

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

type PopularCategory struct {
	Category
	DestinationsCount int64 `json:"destinations_count"`
	EventsCount       int64 `json:"events_count"`
	CommunitiesCount  int64 `json:"communities_count"`
}

type DestinationSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FavoritesCount int64  `json:"favorites_count"`
}

type Statistics struct {
	TotalDestinations   int64                `json:"total_destinations"`
	TotalEvents         int64                `json:"total_events"`
	TotalCommunities    int64                `json:"total_communities"`
	ActiveEvents        int64                `json:"active_events"`
	PopularDestinations []DestinationSummary `json:"popular_destinations"`
	UserEngagement      float64              `json:"user_engagement"`
	GrowthRate          float64              `json:"growth_rate"`
}
