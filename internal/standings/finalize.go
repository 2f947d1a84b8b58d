package standings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// Finalizer turns a completed tournament into final standings, payout
// records, and lifetime subscriber stats.
type Finalizer struct {
	pool        *pgxpool.Pool
	tournaments repository.TournamentRepository
	wallets     repository.WalletRepository
	payouts     repository.PayoutRepository
	subscribers repository.SubscriberRepository
	outbox      repository.OutboxRepository
	logger      *slog.Logger
}

// NewFinalizer creates a standings finalizer.
func NewFinalizer(
	pool *pgxpool.Pool,
	tournaments repository.TournamentRepository,
	wallets repository.WalletRepository,
	payouts repository.PayoutRepository,
	subscribers repository.SubscriberRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *Finalizer {
	return &Finalizer{
		pool:        pool,
		tournaments: tournaments,
		wallets:     wallets,
		payouts:     payouts,
		subscribers: subscribers,
		outbox:      outbox,
		logger:      logger,
	}
}

// FinalizeResult summarizes one finalization run.
type FinalizeResult struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Ranked       int       `json:"ranked"`
	SkippedRows  int       `json:"skipped_rows"`
	Payouts      int       `json:"payouts"`
	Distributed  int64     `json:"distributed"`
	AlreadyDone  bool      `json:"already_done"`
}

// Finalize ranks a completed tournament's wallets, distributes the prize
// pool, and stamps the tournament finalized. The finalized_at guard
// makes concurrent runs converge: one writer wins, the rest roll back.
func (f *Finalizer) Finalize(ctx context.Context, t *domain.Tournament) (*FinalizeResult, error) {
	if t.Status != domain.TournamentCompleted {
		return nil, domain.ErrValidation(fmt.Sprintf("tournament %s is %s, not completed", t.ID, t.Status))
	}

	all, err := f.wallets.ListByTournament(ctx, f.pool, t.ID)
	if err != nil {
		return nil, fmt.Errorf("finalize %s: %w", t.ID, err)
	}

	// Malformed rows are excluded rather than ranked with defaulted
	// zeroes, which would silently push honest wallets down.
	valid := make([]domain.Wallet, 0, len(all))
	skipped := 0
	for i := range all {
		if err := domain.ValidateStandingsRow(&all[i]); err != nil {
			f.logger.Warn("excluding wallet from standings",
				"tournament_id", t.ID, "wallet_id", all[i].ID, "error", err)
			skipped++
			continue
		}
		valid = append(valid, all[i])
	}

	ranked := Rank(valid)
	awards := Distribute(t.TotalPrizePool, t.PayoutTiers, ranked)

	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin finalize tx: %w", err)
	}
	defer tx.Rollback(ctx)

	claimed, err := f.tournaments.MarkFinalized(ctx, tx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("claim finalization: %w", err)
	}
	if !claimed {
		return &FinalizeResult{TournamentID: t.ID, AlreadyDone: true}, nil
	}

	for _, s := range ranked {
		if err := f.wallets.SetRank(ctx, tx, s.WalletID, s.Rank); err != nil {
			return nil, fmt.Errorf("set rank: %w", err)
		}
	}

	var distributed int64
	for _, a := range awards {
		payout := &domain.Payout{
			ID:           uuid.New(),
			UserID:       a.UserID,
			TournamentID: t.ID,
			Amount:       a.Amount,
			Rank:         a.Rank,
			Status:       domain.PayoutPending,
		}
		if err := f.payouts.Insert(ctx, tx, payout); err != nil {
			return nil, fmt.Errorf("insert payout: %w", err)
		}
		if err := f.outbox.Insert(ctx, tx, domain.NewPayoutCreatedEvent(payout)); err != nil {
			return nil, fmt.Errorf("insert payout event: %w", err)
		}
		distributed += a.Amount
	}

	awarded := make(map[uuid.UUID]int64, len(awards))
	for _, a := range awards {
		awarded[a.UserID] = a.Amount
	}
	for _, s := range ranked {
		if err := f.subscribers.RecordFinish(ctx, tx, s.UserID, s.Rank, awarded[s.UserID]); err != nil {
			return nil, fmt.Errorf("record finish: %w", err)
		}
	}

	if err := f.outbox.Insert(ctx, tx, domain.NewTournamentEvent(domain.EventTournamentFinalized, t)); err != nil {
		return nil, fmt.Errorf("insert finalized event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit finalize tx: %w", err)
	}

	f.logger.Info("tournament finalized",
		"tournament_id", t.ID,
		"ranked", len(ranked), "skipped", skipped,
		"payouts", len(awards), "distributed", distributed,
		"prize_pool", t.TotalPrizePool)

	return &FinalizeResult{
		TournamentID: t.ID,
		Ranked:       len(ranked),
		SkippedRows:  skipped,
		Payouts:      len(awards),
		Distributed:  distributed,
	}, nil
}

// Sweep finalizes every completed tournament that has not been
// finalized yet. Called by the scheduler after each rollover.
func (f *Finalizer) Sweep(ctx context.Context) ([]FinalizeResult, error) {
	pendingFinalize, err := f.tournaments.ListUnfinalizedCompleted(ctx, f.pool)
	if err != nil {
		return nil, fmt.Errorf("list unfinalized: %w", err)
	}

	var results []FinalizeResult
	for i := range pendingFinalize {
		res, err := f.Finalize(ctx, &pendingFinalize[i])
		if err != nil {
			f.logger.Error("finalization failed",
				"tournament_id", pendingFinalize[i].ID, "error", err)
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}
