package event

import "time"

type Event struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Location      string     `json:"location"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	MaxAttendees  *int64     `json:"max_attendees"`
	CategoryID    string     `json:"category_id"`
	DestinationID string     `json:"destination_id"`
	UserID        string     `json:"user_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListFilter struct {
	Title         string
	CategoryID    string
	DestinationID string
	Page          int
}

type Page struct {
	Items   []Event `json:"items"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

type NearbyParams struct {
	EventID    string
	RadiusKm   float64
	SearchTerm string
}

type NearbyOrigin struct {
	EventID   string   `json:"event_id"`
	Title     string   `json:"title"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type NearbyEvent struct {
	Event
	DistanceKm float64 `json:"distance"`
}

type NearbyResult struct {
	Origin   NearbyOrigin  `json:"origin"`
	RadiusKm float64       `json:"radius_km"`
	Results  []NearbyEvent `json:"results"`
	Count    int           `json:"count"`
}

type PopularEvent struct {
	Event
	AttendeesCount int64 `json:"attendees_count"`
}

type Statistics struct {
	TotalAttendees int64   `json:"total_attendees"`
	AttendanceRate float64 `json:"attendance_rate"`
	DaysUntilEvent int     `json:"days_until_event"`
	IsFull         bool    `json:"is_full"`
	RemainingSpots *int64  `json:"remaining_spots"`
}

type AttendanceUpdate struct {
	EventID   string `json:"event_id"`
	Attendees int64  `json:"attendees"`
}

type CalendarDay struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}
