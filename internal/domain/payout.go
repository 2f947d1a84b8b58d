package domain

import (
	"time"

	"github.com/google/uuid"
)

// PayoutStatus tracks whether an external disbursement consumed the record.
type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

// Payout is one payable wallet's share of a finished tournament's
// prize pool. Exactly one record per payable wallet per tournament;
// disbursement happens outside this service.
type Payout struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	TournamentID uuid.UUID    `json:"tournament_id"`
	Amount       int64        `json:"amount"`
	Rank         int          `json:"rank"`
	Status       PayoutStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}
