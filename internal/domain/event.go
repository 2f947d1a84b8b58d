package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventTransactionPosted   EventType = "tourney.wallet.transaction.posted"
	EventWagerPlaced         EventType = "tourney.wager.placed"
	EventWagerCancelled      EventType = "tourney.wager.cancelled"
	EventWagerSettled        EventType = "tourney.wager.settled"
	EventTournamentOpened    EventType = "tourney.tournament.opened"
	EventTournamentCompleted EventType = "tourney.tournament.completed"
	EventTournamentFinalized EventType = "tourney.tournament.finalized"
	EventPayoutCreated       EventType = "tourney.payout.created"
	EventLoginBonusCredited  EventType = "tourney.bonus.credited"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateWallet     AggregateType = "wallet"
	AggregateWager      AggregateType = "wager"
	AggregateTournament AggregateType = "tournament"
	AggregatePayout     AggregateType = "payout"
)

// OutboxDraft is the payload written to the coin_outbox table.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
