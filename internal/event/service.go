package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/db"
	"github.com/fer-gc05/AventuraLocalApi/internal/live"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/geo"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/stats"

	"github.com/google/uuid"
)

const (
	perPage     = 6
	nearbyLimit = 10
)

var (
	ErrInvalidRadius = errors.New("radius must be between 1 and 100 km")
	ErrEventFull     = errors.New("event has reached maximum attendees")
)

type Service struct {
	db    db.Querier
	cache *cache.Cache
	hub   *live.Hub
}

func NewService(querier db.Querier, c *cache.Cache, hub *live.Hub) *Service {
	return &Service{db: querier, cache: c, hub: hub}
}

func (s *Service) Create(ctx context.Context, input Event) (Event, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO events (id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at
	`, input.ID, input.Title, input.Description, input.StartDatetime, input.EndDatetime, input.Location,
		input.Latitude, input.Longitude, input.Price, input.Currency, input.MaxAttendees, input.CategoryID, input.DestinationID, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Event{}, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
		FROM events WHERE id=$1 AND deleted_at IS NULL
	`, id)
	return scanEvent(row)
}

func (s *Service) Update(ctx context.Context, id string, patch Event) (Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if patch.Title != "" {
		ev.Title = patch.Title
	}
	if patch.Description != "" {
		ev.Description = patch.Description
	}
	if !patch.StartDatetime.IsZero() {
		ev.StartDatetime = patch.StartDatetime
	}
	if patch.EndDatetime != nil {
		ev.EndDatetime = patch.EndDatetime
	}
	if patch.Location != "" {
		ev.Location = patch.Location
	}
	if patch.Latitude != nil {
		ev.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		ev.Longitude = patch.Longitude
	}
	if patch.Price != 0 {
		ev.Price = patch.Price
	}
	if patch.Currency != "" {
		ev.Currency = patch.Currency
	}
	if patch.MaxAttendees != nil {
		ev.MaxAttendees = patch.MaxAttendees
	}
	if patch.CategoryID != "" {
		ev.CategoryID = patch.CategoryID
	}
	if patch.DestinationID != "" {
		ev.DestinationID = patch.DestinationID
	}

	_, err = s.db.Exec(ctx, `
		UPDATE events
		SET title=$2, description=$3, start_datetime=$4, end_datetime=$5, location=$6, latitude=$7, longitude=$8,
		    price=$9, currency=$10, max_attendees=$11, category_id=$12, destination_id=$13, updated_at=now()
		WHERE id=$1
	`, ev.ID, ev.Title, ev.Description, ev.StartDatetime, ev.EndDatetime, ev.Location, ev.Latitude, ev.Longitude,
		ev.Price, ev.Currency, ev.MaxAttendees, ev.CategoryID, ev.DestinationID)
	if err != nil {
		return Event{}, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return ev, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	key := fmt.Sprintf("events_%s_%s_%s_%d", filter.Title, filter.CategoryID, filter.DestinationID, filter.Page)
	return cache.Remember(ctx, s.cache, key, cache.ListingTTL, []string{cache.GroupEvents}, func(ctx context.Context) (Page, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
			FROM events
			WHERE deleted_at IS NULL
			  AND ($1 = '' OR title ILIKE '%' || $1 || '%')
			  AND ($2 = '' OR category_id = $2)
			  AND ($3 = '' OR destination_id = $3)
			ORDER BY start_datetime ASC
			LIMIT $4 OFFSET $5
		`, filter.Title, filter.CategoryID, filter.DestinationID, perPage, (filter.Page-1)*perPage)
		if err != nil {
			return Page{}, err
		}
		defer rows.Close()
		items, err := collectEvents(rows)
		if err != nil {
			return Page{}, err
		}
		return Page{Items: items, Page: filter.Page, PerPage: perPage}, nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE events SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return nil
}

func (s *Service) Restore(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE events SET deleted_at=NULL WHERE id=$1 AND deleted_at IS NOT NULL
		RETURNING id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
	`, id)
	ev, err := scanEvent(row)
	if err != nil {
		return Event{}, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return ev, nil
}

func (s *Service) Trashed(ctx context.Context) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
		FROM events WHERE deleted_at IS NOT NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Nearby finds events within params.RadiusKm of the origin event. The
// search term matches titles only and the result size is fixed at 10.
func (s *Service) Nearby(ctx context.Context, params NearbyParams) (NearbyResult, error) {
	if params.RadiusKm == 0 {
		params.RadiusKm = 10
	}
	if params.RadiusKm < 1 || params.RadiusKm > 100 {
		return NearbyResult{}, ErrInvalidRadius
	}

	origin, err := s.Get(ctx, params.EventID)
	if err != nil {
		return NearbyResult{}, err
	}

	key := fmt.Sprintf("nearby_events_%s_%g_%s", params.EventID, params.RadiusKm, params.SearchTerm)
	return cache.Remember(ctx, s.cache, key, cache.NearbyTTL, nil, func(ctx context.Context) (NearbyResult, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
			FROM events
			WHERE id != $1 AND latitude IS NOT NULL AND longitude IS NOT NULL AND deleted_at IS NULL
		`, origin.ID)
		if err != nil {
			return NearbyResult{}, err
		}
		defer rows.Close()
		candidates, err := collectEvents(rows)
		if err != nil {
			return NearbyResult{}, err
		}

		byID := make(map[string]Event, len(candidates))
		geoCandidates := make([]geo.Candidate, 0, len(candidates))
		for _, e := range candidates {
			byID[e.ID] = e
			geoCandidates = append(geoCandidates, geo.Candidate{
				ID:   e.ID,
				Name: e.Title,
				Lat:  e.Latitude,
				Lng:  e.Longitude,
			})
		}

		matches := geo.Nearby(geo.Query{
			Origin:     geo.Candidate{ID: origin.ID, Lat: origin.Latitude, Lng: origin.Longitude},
			RadiusKm:   params.RadiusKm,
			SearchTerm: params.SearchTerm,
			Limit:      nearbyLimit,
		}, geoCandidates)

		results := make([]NearbyEvent, 0, len(matches))
		for _, m := range matches {
			results = append(results, NearbyEvent{
				Event:      byID[m.Candidate.ID],
				DistanceKm: stats.Round2(m.DistanceKm),
			})
		}

		return NearbyResult{
			Origin: NearbyOrigin{
				EventID:   origin.ID,
				Title:     origin.Title,
				Latitude:  origin.Latitude,
				Longitude: origin.Longitude,
			},
			RadiusKm: params.RadiusKm,
			Results:  results,
			Count:    len(results),
		}, nil
	})
}

// Attend registers a user on an event, refusing once max_attendees is
// reached. Re-attending is idempotent.
func (s *Service) Attend(ctx context.Context, eventID, userID string) (int64, error) {
	var maxAttendees *int64
	var current int64
	err := s.db.QueryRow(ctx, `
		SELECT e.max_attendees, (SELECT COUNT(*) FROM event_user eu WHERE eu.event_id=e.id)
		FROM events e WHERE e.id=$1 AND e.deleted_at IS NULL
	`, eventID).Scan(&maxAttendees, &current)
	if err != nil {
		return 0, err
	}
	if maxAttendees != nil && current >= *maxAttendees {
		return current, ErrEventFull
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO event_user (event_id, user_id, status)
		VALUES ($1,$2,'registered')
		ON CONFLICT (event_id, user_id) DO UPDATE SET status='registered'
	`, eventID, userID)
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return s.broadcastAttendance(ctx, eventID)
}

func (s *Service) CancelAttendance(ctx context.Context, eventID, userID string) (int64, error) {
	_, err := s.db.Exec(ctx, `DELETE FROM event_user WHERE event_id=$1 AND user_id=$2`, eventID, userID)
	if err != nil {
		return 0, err
	}
	s.cache.InvalidateGroups(ctx, cache.GroupEvents, cache.GroupRecommendations)
	return s.broadcastAttendance(ctx, eventID)
}

func (s *Service) broadcastAttendance(ctx context.Context, eventID string) (int64, error) {
	var attendees int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_user WHERE event_id=$1`, eventID).Scan(&attendees)
	if err != nil {
		return 0, err
	}
	if s.hub != nil {
		payload, _ := json.Marshal(AttendanceUpdate{EventID: eventID, Attendees: attendees})
		s.hub.Broadcast(eventID, payload)
	}
	return attendees, nil
}

// Popular ranks future events by attendee count.
func (s *Service) Popular(ctx context.Context, limit int) ([]PopularEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("popular_events_%d", limit)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupEvents}, func(ctx context.Context) ([]PopularEvent, error) {
		rows, err := s.db.Query(ctx, `
			SELECT e.id, e.title, e.description, e.start_datetime, e.end_datetime, e.location, e.latitude, e.longitude,
			       e.price, e.currency, e.max_attendees, e.category_id, e.destination_id, e.user_id, e.created_at,
			       (SELECT COUNT(*) FROM event_user eu WHERE eu.event_id=e.id) AS attendees_count
			FROM events e
			WHERE e.deleted_at IS NULL AND e.start_datetime > now()
			ORDER BY attendees_count DESC
			LIMIT $1
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var popular []PopularEvent
		for rows.Next() {
			var p PopularEvent
			if err := scanEventFields(rows, &p.Event, &p.AttendeesCount); err != nil {
				return nil, err
			}
			popular = append(popular, p)
		}
		return popular, rows.Err()
	})
}

func (s *Service) Upcoming(ctx context.Context, days int) ([]Event, error) {
	if days <= 0 {
		days = 7
	}
	key := fmt.Sprintf("upcoming_events_%d", days)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupEvents}, func(ctx context.Context) ([]Event, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
			FROM events
			WHERE deleted_at IS NULL AND start_datetime BETWEEN now() AND now() + make_interval(days => $1)
			ORDER BY start_datetime ASC
		`, days)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return collectEvents(rows)
	})
}

// Recommendations suggests future events from the categories of events
// the user already attended, excluding anything already on their list.
// A user with no attendance history gets an empty list.
func (s *Service) Recommendations(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("event_recommendations_%s_%d", userID, limit)
	groups := []string{cache.GroupEvents, cache.GroupRecommendations}
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, groups, func(ctx context.Context) ([]Event, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
			FROM events
			WHERE deleted_at IS NULL
			  AND start_datetime > now()
			  AND category_id IN (
				SELECT DISTINCT e.category_id FROM events e
				JOIN event_user eu ON eu.event_id = e.id
				WHERE eu.user_id = $1 AND e.category_id IS NOT NULL
			  )
			  AND id NOT IN (SELECT event_id FROM event_user WHERE user_id = $1)
			ORDER BY start_datetime ASC
			LIMIT $2
		`, userID, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return collectEvents(rows)
	})
}

func (s *Service) Statistics(ctx context.Context, id string) (Statistics, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return Statistics{}, err
	}

	var attendees int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_user WHERE event_id=$1`, id).Scan(&attendees); err != nil {
		return Statistics{}, err
	}

	st := Statistics{
		TotalAttendees: attendees,
		DaysUntilEvent: int(time.Until(ev.StartDatetime).Hours() / 24),
	}
	if ev.MaxAttendees != nil && *ev.MaxAttendees > 0 {
		capacity := *ev.MaxAttendees
		st.AttendanceRate = stats.Percent(attendees, capacity)
		st.IsFull = attendees >= capacity
		remaining := capacity - attendees
		if remaining < 0 {
			remaining = 0
		}
		st.RemainingSpots = &remaining
	}
	return st, nil
}

// Calendar groups a month's events by day.
func (s *Service) Calendar(ctx context.Context, year, month int) ([]CalendarDay, error) {
	key := fmt.Sprintf("events_calendar_%d_%d", year, month)
	return cache.Remember(ctx, s.cache, key, cache.RankingTTL, []string{cache.GroupEvents}, func(ctx context.Context) ([]CalendarDay, error) {
		rows, err := s.db.Query(ctx, `
			SELECT id, title, description, start_datetime, end_datetime, location, latitude, longitude, price, currency, max_attendees, category_id, destination_id, user_id, created_at
			FROM events
			WHERE deleted_at IS NULL
			  AND EXTRACT(YEAR FROM start_datetime) = $1
			  AND EXTRACT(MONTH FROM start_datetime) = $2
			ORDER BY start_datetime ASC
		`, year, month)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		events, err := collectEvents(rows)
		if err != nil {
			return nil, err
		}

		var days []CalendarDay
		for _, ev := range events {
			date := ev.StartDatetime.Format("2006-01-02")
			if len(days) == 0 || days[len(days)-1].Date != date {
				days = append(days, CalendarDay{Date: date})
			}
			days[len(days)-1].Events = append(days[len(days)-1].Events, ev)
		}
		return days, nil
	})
}

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDatetime, &e.EndDatetime, &e.Location,
		&e.Latitude, &e.Longitude, &e.Price, &e.Currency, &e.MaxAttendees, &e.CategoryID, &e.DestinationID, &e.UserID, &e.CreatedAt)
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

func scanEventFields(row interface{ Scan(...any) error }, e *Event, extra ...any) error {
	dest := []any{&e.ID, &e.Title, &e.Description, &e.StartDatetime, &e.EndDatetime, &e.Location,
		&e.Latitude, &e.Longitude, &e.Price, &e.Currency, &e.MaxAttendees, &e.CategoryID, &e.DestinationID, &e.UserID, &e.CreatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func collectEvents(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]Event, error) {
	var items []Event
	for rows.Next() {
		var e Event
		if err := scanEventFields(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
