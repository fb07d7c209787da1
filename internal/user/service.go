package user

import (
	"context"
	"errors"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"
)

var ErrInvalidStatus = errors.New("status must be started or completed")

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) Statistics(ctx context.Context, userID string) (Statistics, error) {
	var st Statistics
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM event_user eu WHERE eu.user_id=$1),
			(SELECT COUNT(*) FROM route_user ru WHERE ru.user_id=$1 AND ru.status='completed'),
			(SELECT COUNT(*) FROM community_user cu WHERE cu.user_id=$1),
			(SELECT COUNT(*) FROM reviews r WHERE r.user_id=$1),
			(SELECT COUNT(*) FROM route_user ru WHERE ru.user_id=$1 AND ru.is_favorite),
			(SELECT COUNT(*) FROM destination_user du WHERE du.user_id=$1 AND du.is_favorite),
			(SELECT COUNT(*) FROM event_user eu JOIN events e ON e.id=eu.event_id
			 WHERE eu.user_id=$1 AND e.start_datetime > now() AND e.deleted_at IS NULL)
	`, userID).Scan(&st.EventsAttended, &st.RoutesCompleted, &st.CommunitiesJoined,
		&st.ReviewsWritten, &st.FavoriteRoutes, &st.FavoriteDestinations, &st.UpcomingEvents)
	if err != nil {
		return Statistics{}, err
	}
	return st, nil
}

// ToggleFavoriteDestination flips the favorite flag and reports the new
// state. The first toggle creates the pivot row.
func (s *Service) ToggleFavoriteDestination(ctx context.Context, userID, destinationID string) (FavoriteResult, error) {
	var favorited bool
	err := s.db.QueryRow(ctx, `
		INSERT INTO destination_user (destination_id, user_id, is_favorite)
		VALUES ($1,$2,true)
		ON CONFLICT (destination_id, user_id) DO UPDATE SET is_favorite = NOT destination_user.is_favorite
		RETURNING is_favorite
	`, destinationID, userID).Scan(&favorited)
	if err != nil {
		return FavoriteResult{}, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupDestinations, cache.GroupRecommendations)
	return FavoriteResult{Favorited: favorited}, nil
}

func (s *Service) ToggleFavoriteRoute(ctx context.Context, userID, routeID string) (FavoriteResult, error) {
	var favorited bool
	err := s.db.QueryRow(ctx, `
		INSERT INTO route_user (route_id, user_id, is_favorite)
		VALUES ($1,$2,true)
		ON CONFLICT (route_id, user_id) DO UPDATE SET is_favorite = NOT route_user.is_favorite
		RETURNING is_favorite
	`, routeID, userID).Scan(&favorited)
	if err != nil {
		return FavoriteResult{}, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupRoutes, cache.GroupRecommendations)
	return FavoriteResult{Favorited: favorited}, nil
}

// UpdateRouteStatus marks a route started or completed for the user.
// Completing stamps completed_at.
func (s *Service) UpdateRouteStatus(ctx context.Context, userID, routeID string, status RouteStatus) error {
	switch status {
	case RouteStarted:
		_, err := s.db.Exec(ctx, `
			INSERT INTO route_user (route_id, user_id, status)
			VALUES ($1,$2,'started')
			ON CONFLICT (route_id, user_id) DO UPDATE SET status='started', completed_at=NULL
		`, routeID, userID)
		if err != nil {
			return err
		}
	case RouteCompleted:
		_, err := s.db.Exec(ctx, `
			INSERT INTO route_user (route_id, user_id, status, completed_at)
			VALUES ($1,$2,'completed',now())
			ON CONFLICT (route_id, user_id) DO UPDATE SET status='completed', completed_at=now()
		`, routeID, userID)
		if err != nil {
			return err
		}
	default:
		return ErrInvalidStatus
	}
	s.cache.InvalidateGroups(ctx, cache.GroupRoutes, cache.GroupRecommendations)
	return nil
}
