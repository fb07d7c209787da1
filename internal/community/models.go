package community

import "time"

type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type PopularCommunity struct {
	Community
	MembersCount int64 `json:"members_count"`
}

type Member struct {
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	LastActiveAt time.Time `json:"last_active_at"`
	JoinedAt     time.Time `json:"joined_at"`
}
