package community

import (
	"context"
	"fmt"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) Create(ctx context.Context, input Community) (Community, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO communities (id, name, description, is_public, category_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.IsPublic, input.CategoryID, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Community{}, err
	}

	// The creator joins as admin of their own community.
	_, err := s.db.Exec(ctx, `
		INSERT INTO community_user (community_id, user_id, role, last_active_at)
		VALUES ($1,$2,'admin',now())
	`, input.ID, input.UserID)
	if err != nil {
		return Community{}, err
	}

	s.cache.InvalidateGroups(ctx, cache.GroupCommunities, cache.GroupRecommendations)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Community, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, is_public, category_id, user_id, created_at
		FROM communities WHERE id=$1
	`, id)
	var c Community
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsPublic, &c.CategoryID, &c.UserID, &c.CreatedAt)
	if err != nil {
		return Community{}, err
	}
	return c, nil
}

// Join adds the user as a member; rejoining refreshes last_active_at.
func (s *Service) Join(ctx context.Context, communityID, userID string) error {
	if _, err := s.Get(ctx, communityID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO community_user (community_id, user_id, role, last_active_at)
		VALUES ($1,$2,'member',now())
		ON CONFLICT (community_id, user_id) DO UPDATE SET last_active_at=now()
	`, communityID, userID)
	if err != nil {
		return err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupCommunities, cache.GroupRecommendations)
	return nil
}

func (s *Service) Leave(ctx context.Context, communityID, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM community_user WHERE community_id=$1 AND user_id=$2`, communityID, userID)
	if err != nil {
		return err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupCommunities, cache.GroupRecommendations)
	return nil
}

func (s *Service) Members(ctx context.Context, communityID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, role, last_active_at, created_at
		FROM community_user WHERE community_id=$1
		ORDER BY created_at ASC
	`, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Role, &m.LastActiveAt, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Popular ranks communities by member count. Unlike Recommendations it
// does not filter on visibility; private communities rank too.
func (s *Service) Popular(ctx context.Context, limit int) ([]PopularCommunity, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("popular_communities_%d", limit)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupCommunities}, func(ctx context.Context) ([]PopularCommunity, error) {
		rows, err := s.db.Query(ctx, `
			SELECT c.id, c.name, c.description, c.is_public, c.category_id, c.user_id, c.created_at,
			       (SELECT COUNT(*) FROM community_user cu WHERE cu.community_id=c.id) AS members_count
			FROM communities c
			ORDER BY members_count DESC
			LIMIT $1
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var popular []PopularCommunity
		for rows.Next() {
			var p PopularCommunity
			err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsPublic, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.MembersCount)
			if err != nil {
				return nil, err
			}
			popular = append(popular, p)
		}
		return popular, rows.Err()
	})
}

// Recommendations suggests public communities in the categories of the
// user's current memberships, skipping ones already joined. No
// memberships means no recommendations.
func (s *Service) Recommendations(ctx context.Context, userID string, limit int) ([]PopularCommunity, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("community_recommendations_%s_%d", userID, limit)
	groups := []string{cache.GroupCommunities, cache.GroupRecommendations}
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, groups, func(ctx context.Context) ([]PopularCommunity, error) {
		rows, err := s.db.Query(ctx, `
			SELECT c.id, c.name, c.description, c.is_public, c.category_id, c.user_id, c.created_at,
			       (SELECT COUNT(*) FROM community_user cu WHERE cu.community_id=c.id) AS members_count
			FROM communities c
			WHERE c.is_public = true
			  AND c.category_id IN (
				SELECT DISTINCT co.category_id FROM communities co
				JOIN community_user cu ON cu.community_id = co.id
				WHERE cu.user_id = $1 AND co.category_id IS NOT NULL
			  )
			  AND c.id NOT IN (SELECT community_id FROM community_user WHERE user_id = $1)
			ORDER BY members_count DESC
			LIMIT $2
		`, userID, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var recs []PopularCommunity
		for rows.Next() {
			var p PopularCommunity
			err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsPublic, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.MembersCount)
			if err != nil {
				return nil, err
			}
			recs = append(recs, p)
		}
		return recs, rows.Err()
	})
}
