package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewTransactionPostedEvent creates the standard wallet event for a journal entry.
func NewTransactionPostedEvent(tx *Transaction) OutboxDraft {
	payload, _ := json.Marshal(tx)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   tx.WalletID.String(),
		EventType:     EventTransactionPosted,
		PartitionKey:  tx.WalletID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewWagerLifecycleEvent records a wager placement or cancellation.
func NewWagerLifecycleEvent(evtType EventType, w *Wager) OutboxDraft {
	payload, _ := json.Marshal(w)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWager,
		AggregateID:   w.ID.String(),
		EventType:     evtType,
		PartitionKey:  w.GameID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewLoginBonusEvent records a streak bonus credit.
func NewLoginBonusEvent(entry *Transaction, streakDay int) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"wallet_id":  entry.WalletID.String(),
		"amount":     entry.Amount,
		"streak_day": streakDay,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   entry.WalletID.String(),
		EventType:     EventLoginBonusCredited,
		PartitionKey:  entry.WalletID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewWagerSettledEvent records a pending->won/lost transition.
func NewWagerSettledEvent(w *Wager, marginTenths int) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"wager_id":      w.ID.String(),
		"user_id":       w.UserID.String(),
		"game_id":       w.GameID.String(),
		"status":        w.Status,
		"amount":        w.Amount,
		"margin_tenths": marginTenths,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWager,
		AggregateID:   w.ID.String(),
		EventType:     EventWagerSettled,
		PartitionKey:  w.GameID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewTournamentEvent records an opened/completed/finalized lifecycle step.
func NewTournamentEvent(evtType EventType, t *Tournament) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"tournament_id":     t.ID.String(),
		"status":            t.Status,
		"participant_count": t.ParticipantCount,
		"total_prize_pool":  t.TotalPrizePool,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateTournament,
		AggregateID:   t.ID.String(),
		EventType:     evtType,
		PartitionKey:  t.ID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewPayoutCreatedEvent records a pending payout for external disbursement.
func NewPayoutCreatedEvent(p *Payout) OutboxDraft {
	payload, _ := json.Marshal(p)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePayout,
		AggregateID:   p.ID.String(),
		EventType:     EventPayoutCreated,
		PartitionKey:  p.TournamentID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
