package route

import (
	"context"
	"fmt"
	"time"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/stats"

	"github.com/google/uuid"
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) Create(ctx context.Context, input Route) (Route, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, description, difficulty, distance_km, estimated_hours, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Difficulty, input.DistanceKm, input.EstimatedHours, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Route{}, err
	}

	for i, destinationID := range input.DestinationIDs {
		_, err := s.db.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (route_id, destination_id, position)
			VALUES ($1,$2,$3)
		`, db.RouteDestinationTable), input.ID, destinationID, i+1)
		if err != nil {
			return Route{}, err
		}
	}

	s.cache.InvalidateGroups(ctx, cache.GroupRoutes, cache.GroupRecommendations)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, difficulty, distance_km, estimated_hours, user_id, created_at
		FROM routes WHERE id=$1
	`, id)
	var r Route
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Difficulty, &r.DistanceKm, &r.EstimatedHours, &r.UserID, &r.CreatedAt)
	if err != nil {
		return Route{}, err
	}

	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT destination_id FROM %s WHERE route_id=$1 ORDER BY position ASC
	`, db.RouteDestinationTable), id)
	if err != nil {
		return Route{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var destinationID string
		if err := rows.Scan(&destinationID); err != nil {
			return Route{}, err
		}
		r.DestinationIDs = append(r.DestinationIDs, destinationID)
	}
	return r, rows.Err()
}

// Popular ranks routes by favorites plus completions. Routes with equal
// scores come back in id order so the ranking is stable between calls.
func (s *Service) Popular(ctx context.Context, limit int) ([]PopularRoute, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("popular_routes_%d", limit)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupRoutes}, func(ctx context.Context) ([]PopularRoute, error) {
		rows, err := s.db.Query(ctx, `
			SELECT r.id, r.name, r.description, r.difficulty, r.distance_km, r.estimated_hours, r.user_id, r.created_at,
			       (SELECT COUNT(*) FROM route_user ru WHERE ru.route_id=r.id AND ru.is_favorite) AS favorites_count,
			       (SELECT COUNT(*) FROM route_user ru WHERE ru.route_id=r.id AND ru.status='completed') AS completed_count
			FROM routes r
			ORDER BY favorites_count + completed_count DESC, r.id ASC
			LIMIT $1
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var popular []PopularRoute
		for rows.Next() {
			var p PopularRoute
			err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Difficulty, &p.DistanceKm, &p.EstimatedHours,
				&p.UserID, &p.CreatedAt, &p.FavoritesCount, &p.CompletedCount)
			if err != nil {
				return nil, err
			}
			p.Score = p.FavoritesCount + p.CompletedCount
			popular = append(popular, p)
		}
		return popular, rows.Err()
	})
}

func (s *Service) Statistics(ctx context.Context, id string) (Statistics, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return Statistics{}, err
	}

	var st Statistics
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status='completed')
		FROM route_user WHERE route_id=$1
	`, id).Scan(&st.TotalTravelers, &st.CompletedCount)
	if err != nil {
		return Statistics{}, err
	}
	st.CompletionRate = stats.Percent(st.CompletedCount, st.TotalTravelers)

	rows, err := s.db.Query(ctx, `
		SELECT created_at, completed_at
		FROM route_user
		WHERE route_id=$1 AND status='completed' AND completed_at IS NOT NULL
	`, id)
	if err != nil {
		return Statistics{}, err
	}
	var durations []time.Duration
	for rows.Next() {
		var started, completed time.Time
		if err := rows.Scan(&started, &completed); err != nil {
			rows.Close()
			return Statistics{}, err
		}
		durations = append(durations, completed.Sub(started))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Statistics{}, err
	}
	st.AverageCompletionTime = stats.MeanMinutes(durations)

	destRows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT d.id, d.name,
		       (SELECT COUNT(*) FROM destination_user du WHERE du.destination_id=d.id AND du.is_favorite) AS favorites_count
		FROM destinations d
		JOIN %s rd ON rd.destination_id = d.id
		WHERE rd.route_id=$1 AND d.deleted_at IS NULL
		ORDER BY favorites_count DESC
		LIMIT 3
	`, db.RouteDestinationTable), id)
	if err != nil {
		return Statistics{}, err
	}
	defer destRows.Close()
	for destRows.Next() {
		var summary DestinationSummary
		if err := destRows.Scan(&summary.ID, &summary.Name, &summary.FavoritesCount); err != nil {
			return Statistics{}, err
		}
		st.PopularDestinations = append(st.PopularDestinations, summary)
	}
	return st, destRows.Err()
}
