package domain

import (
	"time"

	"github.com/google/uuid"
)

// WagerStatus tracks the lifecycle of a wager. pending is the only
// non-terminal state: settlement moves it to won/lost, explicit
// cancellation to cancelled. Terminal states are immutable.
type WagerStatus string

const (
	WagerPending   WagerStatus = "pending"
	WagerWon       WagerStatus = "won"
	WagerLost      WagerStatus = "lost"
	WagerCancelled WagerStatus = "cancelled"
)

// Side identifies which team a wager backs.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Wager is a single staked prediction tied to one game's outcome.
// Spread is stored in tenths of a point (65 = 6.5) so half-point
// handicaps never push margin math through floating point.
type Wager struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	GameID       uuid.UUID   `json:"game_id"`
	TournamentID uuid.UUID   `json:"tournament_id"`
	Amount       int64       `json:"amount"`
	SpreadTenths int         `json:"spread_tenths"`
	BackedSide   Side        `json:"backed_side"`
	Status       WagerStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// WagerDraft is the caller-supplied part of a new wager.
type WagerDraft struct {
	GameID       uuid.UUID `json:"game_id"`
	Amount       int64     `json:"amount"`
	SpreadTenths int       `json:"spread_tenths"`
	BackedSide   Side      `json:"backed_side"`
}

// Game is the event a wager is staked on. CutoffAt is the betting
// deadline; Final marks that a settled score is available.
type Game struct {
	ID        uuid.UUID `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartsAt  time.Time `json:"starts_at"`
	CutoffAt  time.Time `json:"cutoff_at"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	Final     bool      `json:"final"`
	CreatedAt time.Time `json:"created_at"`
}

// Locked reports whether the betting cutoff has passed.
func (g *Game) Locked(now time.Time) bool {
	return !now.Before(g.CutoffAt)
}
