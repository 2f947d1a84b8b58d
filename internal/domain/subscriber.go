package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is the read-mostly directory record for an active member.
// Streak fields back the login bonus; best finish and total winnings
// accumulate across tournament periods.
type Subscriber struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	Active        bool       `json:"active"`
	CurrentStreak int        `json:"current_streak"`
	LastLoginDay  *time.Time `json:"last_login_day,omitempty"`
	BestFinish    *int       `json:"best_finish,omitempty"`
	TotalWinnings int64      `json:"total_winnings"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
