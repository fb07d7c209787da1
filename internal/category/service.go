package category

import (
	"context"
	"fmt"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/stats"
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return cache.Remember(ctx, s.cache, "categories_all", cache.ListingTTL, []string{cache.GroupCategories}, func(ctx context.Context) ([]Category, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, name, description, icon, created_at
			FROM categories ORDER BY name ASC
		`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var categories []Category
		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt); err != nil {
				return nil, err
			}
			categories = append(categories, c)
		}
		return categories, rows.Err()
	})
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, icon, created_at
		FROM categories WHERE id=$1
	`, id)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// Popular ranks categories by how much content they hold across
// destinations, events and communities.
func (s *Service) Popular(ctx context.Context, limit int) ([]PopularCategory, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("popular_categories_%d", limit)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupCategories}, func(ctx context.Context) ([]PopularCategory, error) {
		rows, err := s.db.Query(ctx, `
			SELECT c.id, c.name, c.description, c.icon, c.created_at,
			       (SELECT COUNT(*) FROM destinations d WHERE d.category_id=c.id AND d.deleted_at IS NULL) AS destinations_count,
			       (SELECT COUNT(*) FROM events e WHERE e.category_id=c.id AND e.deleted_at IS NULL) AS events_count,
			       (SELECT COUNT(*) FROM communities co WHERE co.category_id=c.id) AS communities_count
			FROM categories c
			ORDER BY destinations_count + events_count + communities_count DESC
			LIMIT $1
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var popular []PopularCategory
		for rows.Next() {
			var p PopularCategory
			err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Icon, &p.CreatedAt,
				&p.DestinationsCount, &p.EventsCount, &p.CommunitiesCount)
			if err != nil {
				return nil, err
			}
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
		SELECT
			(SELECT COUNT(*) FROM destinations d WHERE d.category_id=$1 AND d.deleted_at IS NULL),
			(SELECT COUNT(*) FROM events e WHERE e.category_id=$1 AND e.deleted_at IS NULL),
			(SELECT COUNT(*) FROM communities co WHERE co.category_id=$1),
			(SELECT COUNT(*) FROM events e WHERE e.category_id=$1 AND e.deleted_at IS NULL AND e.start_datetime > now())
	`, id).Scan(&st.TotalDestinations, &st.TotalEvents, &st.TotalCommunities, &st.ActiveEvents)
	if err != nil {
		return Statistics{}, err
	}

	destRows, err := s.db.Query(ctx, `
		SELECT d.id, d.name,
		       (SELECT COUNT(*) FROM destination_user du WHERE du.destination_id=d.id AND du.is_favorite) AS favorites_count
		FROM destinations d
		WHERE d.category_id=$1 AND d.deleted_at IS NULL
		ORDER BY favorites_count DESC
		LIMIT 3
	`, id)
	if err != nil {
		return Statistics{}, err
	}
	for destRows.Next() {
		var summary DestinationSummary
		if err := destRows.Scan(&summary.ID, &summary.Name, &summary.FavoritesCount); err != nil {
			destRows.Close()
			return Statistics{}, err
		}
		st.PopularDestinations = append(st.PopularDestinations, summary)
	}
	destRows.Close()
	if err := destRows.Err(); err != nil {
		return Statistics{}, err
	}

	// Engagement is the share of this category's community members seen
	// in the last 30 days. Growth compares total content rows now versus
	// one month ago.
	var activeMembers, totalMembers int64
	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE cu.last_active_at > now() - interval '30 days'),
		       COUNT(*)
		FROM community_user cu
		JOIN communities co ON co.id = cu.community_id
		WHERE co.category_id=$1
	`, id).Scan(&activeMembers, &totalMembers)
	if err != nil {
		return Statistics{}, err
	}
	st.UserEngagement = stats.Percent(activeMembers, totalMembers)

	var lastMonth int64
	err = s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM destinations d WHERE d.category_id=$1 AND d.deleted_at IS NULL AND d.created_at < now() - interval '1 month') +
			(SELECT COUNT(*) FROM events e WHERE e.category_id=$1 AND e.deleted_at IS NULL AND e.created_at < now() - interval '1 month') +
			(SELECT COUNT(*) FROM communities co WHERE co.category_id=$1 AND co.created_at < now() - interval '1 month')
	`, id).Scan(&lastMonth)
	if err != nil {
		return Statistics{}, err
	}
	current := st.TotalDestinations + st.TotalEvents + st.TotalCommunities
	st.GrowthRate = stats.Growth(current, lastMonth)

	return st, nil
}
