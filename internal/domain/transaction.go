package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionType enumerates all wallet transaction types.
type TransactionType string

const (
	TxWagerPlaced    TransactionType = "wager_placed"
	TxWagerCancelled TransactionType = "wager_cancelled"
	TxWagerWon       TransactionType = "wager_won"
	TxWagerLost      TransactionType = "wager_lost"
	TxStakeRefunded  TransactionType = "stake_refunded"
	TxLoginBonus     TransactionType = "login_bonus"
)

// Transaction represents a coin_transactions row: an append-only
// journal entry with the post-update wallet snapshot.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	WalletID       uuid.UUID       `json:"wallet_id"`
	Type           TransactionType `json:"type"`
	Amount         int64           `json:"amount"`
	RemainingAfter int64           `json:"remaining_after"`
	BetAfter       int64           `json:"bet_after"`
	WonAfter       int64           `json:"won_after"`
	WagerID        *uuid.UUID      `json:"wager_id,omitempty"`
	Metadata       json.RawMessage `json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
}
