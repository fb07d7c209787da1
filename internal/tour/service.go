package tour

import (
	"context"
	"errors"
	"time"

	"github.com/fer-gc05/AventuraLocalApi/internal/db"

	"github.com/google/uuid"
)

var ErrNoSeats = errors.New("tour has no seats remaining")

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) Create(ctx context.Context, input Tour) (Tour, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO tours (id, route_id, name, description, price, currency, start_date, end_date, max_participants, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, input.ID, input.RouteID, input.Name, input.Description, input.Price, input.Currency,
		timePtr(input.StartDate), timePtr(input.EndDate), input.MaxParticipants, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Tour{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Tour, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, name, description, price, currency, start_date, end_date, max_participants, user_id, created_at
		FROM tours WHERE id=$1
	`, id)
	var t Tour
	err := row.Scan(&t.ID, &t.RouteID, &t.Name, &t.Description, &t.Price, &t.Currency,
		&t.StartDate, &t.EndDate, &t.MaxParticipants, &t.UserID, &t.CreatedAt)
	if err != nil {
		return Tour{}, err
	}
	return t, nil
}

func (s *Service) ListByRoute(ctx context.Context, routeID string) ([]Tour, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, route_id, name, description, price, currency, start_date, end_date, max_participants, user_id, created_at
		FROM tours WHERE route_id=$1
		ORDER BY start_date ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []Tour
	for rows.Next() {
		var t Tour
		err := rows.Scan(&t.ID, &t.RouteID, &t.Name, &t.Description, &t.Price, &t.Currency,
			&t.StartDate, &t.EndDate, &t.MaxParticipants, &t.UserID, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

// Reserve books seats on a tour, refusing when the confirmed
// participants would exceed max_participants. Re-reserving updates the
// existing booking.
func (s *Service) Reserve(ctx context.Context, tourID, userID string, participants int64) (Reservation, error) {
	if participants < 1 {
		participants = 1
	}

	var maxParticipants *int64
	var booked int64
	err := s.db.QueryRow(ctx, `
		SELECT t.max_participants,
		       COALESCE((SELECT SUM(r.participants) FROM tour_reservations r
		                 WHERE r.tour_id=t.id AND r.status='confirmed' AND r.user_id != $2), 0)
		FROM tours t WHERE t.id=$1
	`, tourID, userID).Scan(&maxParticipants, &booked)
	if err != nil {
		return Reservation{}, err
	}
	if maxParticipants != nil && booked+participants > *maxParticipants {
		return Reservation{}, ErrNoSeats
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO tour_reservations (tour_id, user_id, participants, status)
		VALUES ($1,$2,$3,'confirmed')
		ON CONFLICT (tour_id, user_id) DO UPDATE SET participants=EXCLUDED.participants, status='confirmed'
		RETURNING created_at
	`, tourID, userID, participants)
	reservation := Reservation{TourID: tourID, UserID: userID, Participants: participants, Status: "confirmed"}
	if err := row.Scan(&reservation.ReservedAt); err != nil {
		return Reservation{}, err
	}
	return reservation, nil
}

func (s *Service) CancelReservation(ctx context.Context, tourID, userID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE tour_reservations SET status='cancelled' WHERE tour_id=$1 AND user_id=$2
	`, tourID, userID)
	return err
}

func (s *Service) Reservations(ctx context.Context, tourID string) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT tour_id, user_id, participants, status, created_at
		FROM tour_reservations WHERE tour_id=$1
		ORDER BY created_at
	`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.TourID, &r.UserID, &r.Participants, &r.Status, &r.ReservedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
