package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"

	"github.com/google/uuid"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) Create(ctx context.Context, input Review) (Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	column, err := input.Target.Column()
	if err != nil {
		return Review{}, err
	}

	input.ID = uuid.NewString()
	query := fmt.Sprintf(`
		INSERT INTO reviews (id, %s, user_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, column)
	row := s.db.QueryRow(ctx, query, input.ID, input.TargetID, input.UserID, input.Rating, input.Comment)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Review{}, err
	}

	s.cache.InvalidateGroup(ctx, groupFor(input.Target))
	return input, nil
}

func (s *Service) ListFor(ctx context.Context, target Target, targetID string) ([]Review, error) {
	column, err := target.Column()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, user_id, rating, comment, created_at
		FROM reviews WHERE %s=$1
		ORDER BY created_at DESC
	`, column, column)
	rows, err := s.db.Query(ctx, query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		r := Review{Target: target}
		if err := rows.Scan(&r.ID, &r.TargetID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func groupFor(target Target) string {
	switch target {
	case TargetRoute:
		return cache.GroupRoutes
	case TargetEvent:
		return cache.GroupEvents
	default:
		return cache.GroupDestinations
	}
}
