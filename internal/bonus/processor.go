package bonus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/ledger"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// Processor credits the daily login streak bonus. The streak advance
// commits in its own transaction before the coin credit is attempted,
// so a login during a gap between tournament periods still extends the
// streak even though there is no wallet to pay into. The credit itself
// runs once per calendar day at most: only the first login of the day
// advances the streak, and only an advanced streak triggers a credit.
type Processor struct {
	db          repository.DB
	ledger      *ledger.Engine
	subscribers repository.SubscriberRepository
	tournaments repository.TournamentRepository
	wallets     repository.WalletRepository
	logger      *slog.Logger
}

// NewProcessor creates a login bonus processor.
func NewProcessor(
	db repository.DB,
	ledgerEngine *ledger.Engine,
	subscribers repository.SubscriberRepository,
	tournaments repository.TournamentRepository,
	wallets repository.WalletRepository,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		db:          db,
		ledger:      ledgerEngine,
		subscribers: subscribers,
		tournaments: tournaments,
		wallets:     wallets,
		logger:      logger,
	}
}

// LoginResult reports what a login did to the streak and the wallet.
type LoginResult struct {
	Streak     int   `json:"streak"`
	Bonus      int64 `json:"bonus"`
	FirstToday bool  `json:"first_today"`
}

// OnLogin records a login and credits the streak bonus when this is the
// subscriber's first login of the calendar day. Later logins the same
// day return the current streak untouched.
//
// When the credit cannot land (no active tournament, or no wallet for
// the subscriber in it) the already-committed streak is returned
// alongside the error, so callers can keep the streak visible while
// reporting the skipped bonus.
func (p *Processor) OnLogin(ctx context.Context, userID uuid.UUID, now time.Time) (*LoginResult, error) {
	streak, first, err := p.advanceStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if !first {
		sub, err := p.subscribers.FindByID(ctx, p.db, userID)
		if err != nil {
			return nil, fmt.Errorf("login bonus lookup: %w", err)
		}
		if sub == nil {
			return nil, domain.ErrNotFound("subscriber", userID.String())
		}
		return &LoginResult{Streak: sub.CurrentStreak}, nil
	}

	result := &LoginResult{Streak: streak, FirstToday: true}
	amount := BonusForStreak(streak)
	if amount <= 0 {
		return result, nil
	}

	if err := p.creditBonus(ctx, userID, streak, amount); err != nil {
		return result, err
	}
	result.Bonus = amount

	p.logger.Info("login bonus credited",
		"user_id", userID, "streak", streak, "bonus", amount)
	return result, nil
}

// advanceStreak applies the first-login-of-the-day update in its own
// transaction. Committing here, before any wallet work, keeps the
// streak alive across periods where no credit is possible.
func (p *Processor) advanceStreak(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("begin streak tx: %w", err)
	}
	defer tx.Rollback(ctx)

	streak, first, err := p.subscribers.AdvanceStreak(ctx, tx, userID, now)
	if err != nil {
		return 0, false, fmt.Errorf("advance streak: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("commit streak tx: %w", err)
	}
	return streak, first, nil
}

func (p *Processor) creditBonus(ctx context.Context, userID uuid.UUID, streak int, amount int64) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bonus tx: %w", err)
	}
	defer tx.Rollback(ctx)

	active, err := p.tournaments.FindActive(ctx, tx)
	if err != nil {
		return fmt.Errorf("login bonus: %w", err)
	}
	if active == nil {
		return domain.ErrOperationNotSupported("no active tournament to credit the login bonus into")
	}
	wallet, err := p.wallets.FindByUserAndTournament(ctx, tx, userID, active.ID)
	if err != nil {
		return fmt.Errorf("login bonus: %w", err)
	}
	if wallet == nil {
		return domain.ErrWalletNotFound(userID.String())
	}

	if _, err := p.ledger.ExecuteBonusCredit(ctx, tx, domain.BonusCreditParams{
		WalletID:  wallet.ID,
		Amount:    amount,
		StreakDay: streak,
	}); err != nil {
		return fmt.Errorf("login bonus credit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bonus tx: %w", err)
	}
	return nil
}
