package domain

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus tracks the linear lifecycle of a competition period.
// Transitions only move forward: upcoming -> active -> completed.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament represents one recurring competition period.
// Immutable once completed except for payout bookkeeping.
type Tournament struct {
	ID               uuid.UUID        `json:"id"`
	StartAt          time.Time        `json:"start_at"`
	EndAt            time.Time        `json:"end_at"`
	Status           TournamentStatus `json:"status"`
	ParticipantCount int              `json:"participant_count"`
	TotalPrizePool   int64            `json:"total_prize_pool"`
	PayoutTiers      []PayoutTier     `json:"payout_tiers,omitempty"`
	FinalizedAt      *time.Time       `json:"finalized_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// PayoutTier assigns a share of the prize pool to one standing.
// Percentages are stored in basis points so tier math stays exact;
// the sum across a tournament's tiers never exceeds 10000.
type PayoutTier struct {
	Rank       int `json:"rank"`
	PercentBps int `json:"percent_bps"`
}

// TotalBps returns the summed share of a tier list in basis points.
func TotalBps(tiers []PayoutTier) int {
	total := 0
	for _, t := range tiers {
		total += t.PercentBps
	}
	return total
}
