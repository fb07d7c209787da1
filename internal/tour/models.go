package tour

import "time"

type Tour struct {
	ID              string    `json:"id"`
	RouteID         string    `json:"route_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants *int64    `json:"max_participants"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type Reservation struct {
	TourID       string    `json:"tour_id"`
	UserID       string    `json:"user_id"`
	Participants int64     `json:"participants"`
	Status       string    `json:"status"`
	ReservedAt   time.Time `json:"reserved_at"`
}
