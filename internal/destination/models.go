package destination

import "time"

type Destination struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	CategoryID  string     `json:"category_id"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

type ListFilter struct {
	Name       string
	CategoryID string
	Page       int
}

type Page struct {
	Items   []Destination `json:"items"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

type NearbyParams struct {
	DestinationID string
	RadiusKm      float64
	SearchTerm    string
	Limit         int
}

type NearbyOrigin struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type NearbyDestination struct {
	Destination
	DistanceKm float64 `json:"distance"`
}

type NearbyResult struct {
	Origin   NearbyOrigin        `json:"origin"`
	RadiusKm float64             `json:"radius_km"`
	Results  []NearbyDestination `json:"results"`
	Count    int                 `json:"count"`
}

type PopularDestination struct {
	Destination
	ReviewsCount int64 `json:"reviews_count"`
	EventsCount  int64 `json:"events_count"`
}

type Statistics struct {
	TotalReviews        int64   `json:"total_reviews"`
	AverageRating       float64 `json:"average_rating"`
	TotalEvents         int64   `json:"total_events"`
	UpcomingEventsCount int64   `json:"upcoming_events_count"`
	TotalRoutes         int64   `json:"total_routes"`
	TotalVisitors       int64   `json:"total_visitors"`
}
