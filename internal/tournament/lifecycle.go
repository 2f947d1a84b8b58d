package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

const (
	resetBatchSize    = 500
	resetBatchRetries = 3
)

// Manager runs the period rollover: close the active tournament, open
// the next one sized to the current subscriber base, and reset every
// active subscriber's wallet to the starting grant.
type Manager struct {
	pool        *pgxpool.Pool
	tournaments repository.TournamentRepository
	subscribers repository.SubscriberRepository
	wallets     repository.WalletRepository
	outbox      repository.OutboxRepository

	startingGrant int64
	contribution  int64
	periodDays    int
	logger        *slog.Logger
}

// NewManager creates a lifecycle manager.
func NewManager(
	pool *pgxpool.Pool,
	tournaments repository.TournamentRepository,
	subscribers repository.SubscriberRepository,
	wallets repository.WalletRepository,
	outbox repository.OutboxRepository,
	startingGrant, perSubscriberContribution int64,
	periodDays int,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		pool:          pool,
		tournaments:   tournaments,
		subscribers:   subscribers,
		wallets:       wallets,
		outbox:        outbox,
		startingGrant: startingGrant,
		contribution:  perSubscriberContribution,
		periodDays:    periodDays,
		logger:        logger,
	}
}

// RolloverResult summarizes one rollover run.
type RolloverResult struct {
	ClosedIDs    []uuid.UUID        `json:"closed_ids"`
	Tournament   *domain.Tournament `json:"tournament"`
	WalletsReset int                `json:"wallets_reset"`
}

// Rollover closes the active period and opens the next one. The close
// and open commit atomically; wallet resets follow in idempotent
// batches, so a crash mid-reset only needs a re-run, never a repair.
func (m *Manager) Rollover(ctx context.Context, now time.Time) (*RolloverResult, error) {
	next, closedIDs, err := m.switchPeriods(ctx, now)
	if err != nil {
		return nil, err
	}

	reset, err := m.resetWallets(ctx, next.ID)
	if err != nil {
		return nil, fmt.Errorf("rollover wallet resets: %w", err)
	}

	// Subscribers can churn between the open commit and the reset walk;
	// the reset count is the authoritative participant number.
	if reset != next.ParticipantCount {
		if err := m.tournaments.SetParticipantCount(ctx, m.pool, next.ID, reset); err != nil {
			return nil, fmt.Errorf("record participant count: %w", err)
		}
		next.ParticipantCount = reset
	}

	m.logger.Info("tournament rollover complete",
		"tournament_id", next.ID,
		"closed", len(closedIDs),
		"participants", next.ParticipantCount,
		"prize_pool", next.TotalPrizePool,
		"wallets_reset", reset)

	return &RolloverResult{ClosedIDs: closedIDs, Tournament: next, WalletsReset: reset}, nil
}

func (m *Manager) switchPeriods(ctx context.Context, now time.Time) (*domain.Tournament, []uuid.UUID, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin rollover tx: %w", err)
	}
	defer tx.Rollback(ctx)

	closedIDs, err := m.tournaments.CompleteActive(ctx, tx, now)
	if err != nil {
		return nil, nil, fmt.Errorf("close active period: %w", err)
	}
	for _, id := range closedIDs {
		closed, err := m.tournaments.FindByID(ctx, tx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("load closed tournament: %w", err)
		}
		if err := m.outbox.Insert(ctx, tx, domain.NewTournamentEvent(domain.EventTournamentCompleted, closed)); err != nil {
			return nil, nil, fmt.Errorf("insert completed event: %w", err)
		}
	}

	count, err := m.subscribers.CountActive(ctx, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("count subscribers: %w", err)
	}

	next := &domain.Tournament{
		ID:               uuid.New(),
		StartAt:          now,
		EndAt:            now.AddDate(0, 0, m.periodDays),
		Status:           domain.TournamentActive,
		ParticipantCount: count,
		TotalPrizePool:   PrizePool(count, m.contribution),
		PayoutTiers:      BuildPayoutTiers(count),
	}
	if err := domain.ValidatePayoutTiers(next.PayoutTiers); err != nil {
		return nil, nil, fmt.Errorf("payout tiers for %d participants: %w", count, err)
	}
	if err := m.tournaments.Insert(ctx, tx, next); err != nil {
		return nil, nil, fmt.Errorf("open next period: %w", err)
	}
	if err := m.outbox.Insert(ctx, tx, domain.NewTournamentEvent(domain.EventTournamentOpened, next)); err != nil {
		return nil, nil, fmt.Errorf("insert opened event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit rollover tx: %w", err)
	}
	return next, closedIDs, nil
}

// resetWallets walks active subscribers with a keyset cursor and upserts
// each wallet into the new period. Batches retry a bounded number of
// times; every upsert is idempotent so overlap with a prior attempt is
// harmless.
func (m *Manager) resetWallets(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	var cursor uuid.UUID
	total := 0

	for {
		ids, err := m.subscribers.ListActiveIDs(ctx, m.pool, cursor, resetBatchSize)
		if err != nil {
			return total, fmt.Errorf("list subscriber batch: %w", err)
		}
		if len(ids) == 0 {
			return total, nil
		}

		if err := m.resetBatch(ctx, ids, tournamentID); err != nil {
			return total, err
		}
		total += len(ids)
		cursor = ids[len(ids)-1]
	}
}

func (m *Manager) resetBatch(ctx context.Context, ids []uuid.UUID, tournamentID uuid.UUID) error {
	var lastErr error
	for attempt := 1; attempt <= resetBatchRetries; attempt++ {
		lastErr = nil
		for _, userID := range ids {
			if err := m.wallets.ResetForTournament(ctx, m.pool, userID, tournamentID, m.startingGrant); err != nil {
				lastErr = err
				break
			}
		}
		if lastErr == nil {
			return nil
		}
		m.logger.Error("wallet reset batch failed",
			"tournament_id", tournamentID, "attempt", attempt, "error", lastErr)
	}
	return fmt.Errorf("reset batch after %d attempts: %w", resetBatchRetries, lastErr)
}
