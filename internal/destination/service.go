package destination

import (
	"context"
	"errors"
	"fmt"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"
	"github.com/fer-gc05/AventuraLocalApi/internal/review"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/geo"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/stats"

	"github.com/google/uuid"
)

const perPage = 6

// reviewColumn comes from the review package so both sides query the
// reviews table through the same foreign key.
var reviewColumn, _ = review.TargetDestination.Column()

var (
	ErrInvalidRadius = errors.New("radius must be between 0.1 and 1000 km")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 50")
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(querier db.Querier, c *cache.Cache) *Service {
	return &Service{db: querier, cache: c}
}

func (s *Service) Create(ctx context.Context, input Destination) (Destination, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO destinations (id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Address, input.City, input.Latitude, input.Longitude, input.Price, input.Currency, input.CategoryID, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Destination{}, err
	}
	s.cache.InvalidateGroup(ctx, cache.GroupDestinations)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Destination, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id, created_at
		FROM destinations WHERE id=$1 AND deleted_at IS NULL
	`, id)
	return scanDestination(row)
}

func (s *Service) Update(ctx context.Context, id string, patch Destination) (Destination, error) {
	dest, err := s.Get(ctx, id)
	if err != nil {
		return Destination{}, err
	}
	if patch.Name != "" {
		dest.Name = patch.Name
	}
	if patch.Description != "" {
		dest.Description = patch.Description
	}
	if patch.Address != "" {
		dest.Address = patch.Address
	}
	if patch.City != "" {
		dest.City = patch.City
	}
	if patch.Latitude != nil {
		dest.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		dest.Longitude = patch.Longitude
	}
	if patch.Price != 0 {
		dest.Price = patch.Price
	}
	if patch.Currency != "" {
		dest.Currency = patch.Currency
	}
	if patch.CategoryID != "" {
		dest.CategoryID = patch.CategoryID
	}

	_, err = s.db.Exec(ctx, `
		UPDATE destinations
		SET name=$2, description=$3, address=$4, city=$5, latitude=$6, longitude=$7,
		    price=$8, currency=$9, category_id=$10, updated_at=now()
		WHERE id=$1
	`, dest.ID, dest.Name, dest.Description, dest.Address, dest.City, dest.Latitude, dest.Longitude, dest.Price, dest.Currency, dest.CategoryID)
	if err != nil {
		return Destination{}, err
	}
	s.cache.InvalidateGroup(ctx, cache.GroupDestinations)
	return dest, nil
}

// Delete soft-deletes; the row stays restorable.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE destinations SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	s.cache.InvalidateGroup(ctx, cache.GroupDestinations)
	return nil
}

func (s *Service) Restore(ctx context.Context, id string) (Destination, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE destinations SET deleted_at=NULL WHERE id=$1 AND deleted_at IS NOT NULL
		RETURNING id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id, created_at
	`, id)
	dest, err := scanDestination(row)
	if err != nil {
		return Destination{}, err
	}
	s.cache.InvalidateGroup(ctx, cache.GroupDestinations)
	return dest, nil
}

func (s *Service) Trashed(ctx context.Context) ([]Destination, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id, created_at
		FROM destinations WHERE deleted_at IS NOT NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDestinations(rows)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	key := fmt.Sprintf("destinations_%s_%s_%d", filter.Name, filter.CategoryID, filter.Page)
	return cache.Remember(ctx, s.cache, key, cache.ListingTTL, []string{cache.GroupDestinations}, func(ctx context.Context) (Page, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id, created_at
			FROM destinations
			WHERE deleted_at IS NULL
			  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
			  AND ($2 = '' OR category_id = $2)
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4
		`, filter.Name, filter.CategoryID, perPage, (filter.Page-1)*perPage)
		if err != nil {
			return Page{}, err
		}
		defer rows.Close()
		items, err := collectDestinations(rows)
		if err != nil {
			return Page{}, err
		}
		return Page{Items: items, Page: filter.Page, PerPage: perPage}, nil
	})
}

// Nearby finds destinations within params.RadiusKm of the origin
// destination, ordered by distance. The result is cached by the full
// parameter set; nearby keys are TTL-only and survive entity-group
// invalidation.
func (s *Service) Nearby(ctx context.Context, params NearbyParams) (NearbyResult, error) {
	if params.RadiusKm == 0 {
		params.RadiusKm = 10
	}
	if params.RadiusKm < 0.1 || params.RadiusKm > 1000 {
		return NearbyResult{}, ErrInvalidRadius
	}
	if params.Limit == 0 {
		params.Limit = 10
	}
	if params.Limit < 1 || params.Limit > 50 {
		return NearbyResult{}, ErrInvalidLimit
	}

	origin, err := s.Get(ctx, params.DestinationID)
	if err != nil {
		return NearbyResult{}, err
	}

	key := fmt.Sprintf("nearby_destinations_%s_%g_%s_%d", params.DestinationID, params.RadiusKm, params.SearchTerm, params.Limit)
	return cache.Remember(ctx, s.cache, key, cache.NearbyTTL, nil, func(ctx context.Context) (NearbyResult, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, name, description, address, city, latitude, longitude, price, currency, category_id, user_id, created_at
			FROM destinations
			WHERE id != $1 AND latitude IS NOT NULL AND longitude IS NOT NULL AND deleted_at IS NULL
		`, origin.ID)
		if err != nil {
			return NearbyResult{}, err
		}
		defer rows.Close()
		candidates, err := collectDestinations(rows)
		if err != nil {
			return NearbyResult{}, err
		}

		byID := make(map[string]Destination, len(candidates))
		geoCandidates := make([]geo.Candidate, 0, len(candidates))
		for _, d := range candidates {
			byID[d.ID] = d
			geoCandidates = append(geoCandidates, geo.Candidate{
				ID:          d.ID,
				Name:        d.Name,
				Description: d.Description,
				Lat:         d.Latitude,
				Lng:         d.Longitude,
			})
		}

		matches := geo.Nearby(geo.Query{
			Origin:           geo.Candidate{ID: origin.ID, Lat: origin.Latitude, Lng: origin.Longitude},
			RadiusKm:         params.RadiusKm,
			SearchTerm:       params.SearchTerm,
			MatchDescription: true,
			Limit:            params.Limit,
		}, geoCandidates)

		results := make([]NearbyDestination, 0, len(matches))
		for _, m := range matches {
			results = append(results, NearbyDestination{
				Destination: byID[m.Candidate.ID],
				DistanceKm:  stats.Round2(m.DistanceKm),
			})
		}

		return NearbyResult{
			Origin: NearbyOrigin{
				ID:        origin.ID,
				Name:      origin.Name,
				Latitude:  origin.Latitude,
				Longitude: origin.Longitude,
			},
			RadiusKm: params.RadiusKm,
			Results:  results,
			Count:    len(results),
		}, nil
	})
}

// Popular ranks destinations by review count, then event count.
func (s *Service) Popular(ctx context.Context, limit int) ([]PopularDestination, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("popular_destinations_%d", limit)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupDestinations}, func(ctx context.Context) ([]PopularDestination, error) {
		query := fmt.Sprintf(`
			SELECT d.id, d.name, d.description, d.address, d.city, d.latitude, d.longitude,
			       d.price, d.currency, d.category_id, d.user_id, d.created_at,
			       (SELECT COUNT(*) FROM reviews r WHERE r.%s=d.id) AS reviews_count,
			       (SELECT COUNT(*) FROM events e WHERE e.destination_id=d.id AND e.deleted_at IS NULL) AS events_count
			FROM destinations d
			WHERE d.deleted_at IS NULL
			ORDER BY reviews_count DESC, events_count DESC
			LIMIT $1
		`, reviewColumn)
		rows, err := s.db.Query(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var popular []PopularDestination
		for rows.Next() {
			var p PopularDestination
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Address, &p.City, &p.Latitude, &p.Longitude,
				&p.Price, &p.Currency, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.ReviewsCount, &p.EventsCount); err != nil {
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
	var avgRating float64
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM reviews r WHERE r.%s=$1),
			(SELECT COALESCE(AVG(rating),0) FROM reviews r WHERE r.%s=$1),
			(SELECT COUNT(*) FROM events e WHERE e.destination_id=$1 AND e.deleted_at IS NULL),
			(SELECT COUNT(*) FROM events e WHERE e.destination_id=$1 AND e.deleted_at IS NULL AND e.start_datetime >= now()),
			(SELECT COUNT(*) FROM %s rd WHERE rd.destination_id=$1),
			(SELECT COUNT(DISTINCT eu.user_id) FROM event_user eu JOIN events e ON e.id=eu.event_id WHERE e.destination_id=$1)
	`, reviewColumn, reviewColumn, db.RouteDestinationTable)
	err := s.db.QueryRow(ctx, query, id).Scan(&st.TotalReviews, &avgRating, &st.TotalEvents, &st.UpcomingEventsCount, &st.TotalRoutes, &st.TotalVisitors)
	if err != nil {
		return Statistics{}, err
	}
	st.AverageRating = stats.Round2(avgRating)
	return st, nil
}

func scanDestination(row interface{ Scan(...any) error }) (Destination, error) {
	var d Destination
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Address, &d.City, &d.Latitude, &d.Longitude,
		&d.Price, &d.Currency, &d.CategoryID, &d.UserID, &d.CreatedAt)
	if err != nil {
		return Destination{}, err
	}
	return d, nil
}

func collectDestinations(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]Destination, error) {
	var items []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Address, &d.City, &d.Latitude, &d.Longitude,
			&d.Price, &d.Currency, &d.CategoryID, &d.UserID, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
