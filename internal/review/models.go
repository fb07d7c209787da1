package review

import (
	"errors"
	"time"
)

// Target identifies what a review is attached to.
type Target string

const (
	TargetDestination Target = "destination"
	TargetRoute       Target = "route"
	TargetEvent       Target = "event"
)

var ErrUnknownTarget = errors.New("unknown review target")

// Column returns the foreign-key column a target maps to in the reviews
// table. Other packages counting reviews build their SQL from it so every
// query agrees on the schema.
func (t Target) Column() (string, error) {
	switch t {
	case TargetDestination:
		return "destination_id", nil
	case TargetRoute:
		return "route_id", nil
	case TargetEvent:
		return "event_id", nil
	default:
		return "", ErrUnknownTarget
	}
}

type Review struct {
	ID        string    `json:"id"`
	Target    Target    `json:"target"`
	TargetID  string    `json:"target_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
