package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wallet is a per-user, per-tournament-period coin balance record.
// Invariants: CoinsRemaining >= 0 at all times; CoinsBet equals the
// summed amount of every non-cancelled wager the wallet ever placed.
type Wallet struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	TournamentID   uuid.UUID `json:"tournament_id"`
	CoinsRemaining int64     `json:"coins_remaining"`
	CoinsBet       int64     `json:"coins_bet"`
	CoinsWon       int64     `json:"coins_won"`
	WagersPlaced   int       `json:"wagers_placed"`
	WagersWon      int       `json:"wagers_won"`
	Rank           *int      `json:"rank,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TotalScore is the ranking score: coins left plus coins won.
func (w *Wallet) TotalScore() int64 {
	return w.CoinsRemaining + w.CoinsWon
}

// WalletUpdate describes which wallet columns to update and by how much.
// Applied with server-side arithmetic so concurrent mutations never
// lose updates.
type WalletUpdate struct {
	CoinsRemaining int64
	CoinsBet       int64
	CoinsWon       int64
	WagersPlaced   int
	WagersWon      int
}

// PostEntryParams is the input to the atomic PostEntry operation.
type PostEntryParams struct {
	WalletID uuid.UUID
	Type     TransactionType
	Amount   int64
	Update   WalletUpdate
	WagerID  *uuid.UUID
	Metadata json.RawMessage
}

// CommandResult is the return value from all ledger commands.
type CommandResult struct {
	Wager  *Wager
	Wallet *Wallet
	Entry  *Transaction
	Events []OutboxDraft
}

// PlaceWagerParams holds the input for ExecutePlaceWager.
type PlaceWagerParams struct {
	WalletID uuid.UUID
	UserID   uuid.UUID
	Draft    WagerDraft
}

// CancelWagerParams holds the input for ExecuteCancelWager.
type CancelWagerParams struct {
	WalletID uuid.UUID
	WagerID  uuid.UUID
}

// CreditWinParams holds the input for ExecuteCreditWin.
type CreditWinParams struct {
	WalletID uuid.UUID
	WagerID  uuid.UUID
	Amount   int64
}

// RefundStakeParams holds the input for ExecuteRefundStake (push refunds).
type RefundStakeParams struct {
	WalletID uuid.UUID
	WagerID  uuid.UUID
	Amount   int64
}

// MarkLossParams holds the input for ExecuteMarkLoss (journal-only entries).
type MarkLossParams struct {
	WalletID uuid.UUID
	WagerID  uuid.UUID
	Amount   int64
}

// BonusCreditParams holds the input for ExecuteBonusCredit.
type BonusCreditParams struct {
	WalletID  uuid.UUID
	Amount    int64
	StreakDay int
}
