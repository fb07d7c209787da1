package user

type Statistics struct {
	EventsAttended       int64 `json:"events_attended"`
	RoutesCompleted      int64 `json:"routes_completed"`
	CommunitiesJoined    int64 `json:"communities_joined"`
	ReviewsWritten       int64 `json:"reviews_written"`
	FavoriteRoutes       int64 `json:"favorite_routes"`
	FavoriteDestinations int64 `json:"favorite_destinations"`
	UpcomingEvents       int64 `json:"upcoming_events"`
}

type FavoriteResult struct {
	Favorited bool `json:"favorited"`
}

type RouteStatus string

const (
	RouteStarted   RouteStatus = "started"
	RouteCompleted RouteStatus = "completed"
)
