package settlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/ledger"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// Engine settles every pending wager on a final game. Each wager settles
// in its own transaction behind the pending-status guard, so re-running
// settlement after a crash or a duplicate outcome message credits
// nothing twice.
type Engine struct {
	pool    repository.DB
	ledger  *ledger.Engine
	games   repository.GameRepository
	wagers  repository.WagerRepository
	wallets repository.WalletRepository
	outbox  repository.OutboxRepository
	policy  PushPolicy
	logger  *slog.Logger
}

// NewEngine creates a settlement engine.
func NewEngine(
	pool repository.DB,
	ledgerEngine *ledger.Engine,
	games repository.GameRepository,
	wagers repository.WagerRepository,
	wallets repository.WalletRepository,
	outbox repository.OutboxRepository,
	policy PushPolicy,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		pool:    pool,
		ledger:  ledgerEngine,
		games:   games,
		wagers:  wagers,
		wallets: wallets,
		outbox:  outbox,
		policy:  policy,
		logger:  logger,
	}
}

// Result summarizes one settlement run.
type Result struct {
	Won      int `json:"won"`
	Lost     int `json:"lost"`
	Refunded int `json:"refunded"`
	Skipped  int `json:"skipped"`
	Settled  int `json:"settled"`
}

// SettleGame records the final score and settles all pending wagers on
// the game. Safe to call repeatedly with the same outcome.
func (e *Engine) SettleGame(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int) (*Result, error) {
	game, err := e.games.FindByID(ctx, e.pool, gameID)
	if err != nil {
		return nil, fmt.Errorf("settle game %s: %w", gameID, err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", gameID.String())
	}

	if err := e.games.RecordFinalScore(ctx, e.pool, gameID, homeScore, awayScore); err != nil {
		return nil, fmt.Errorf("settle game %s: %w", gameID, err)
	}

	pending, err := e.wagers.ListPendingByGame(ctx, e.pool, gameID)
	if err != nil {
		return nil, fmt.Errorf("settle game %s: %w", gameID, err)
	}

	result := &Result{}
	for i := range pending {
		w := &pending[i]
		if err := e.settleWager(ctx, w, homeScore, awayScore, result); err != nil {
			// One bad wager must not block the rest of the game.
			e.logger.Error("wager settlement failed",
				"wager_id", w.ID, "game_id", gameID, "error", err)
			result.Skipped++
		}
	}

	e.logger.Info("game settled",
		"game_id", gameID,
		"home_score", homeScore, "away_score", awayScore,
		"won", result.Won, "lost", result.Lost,
		"refunded", result.Refunded, "skipped", result.Skipped)
	return result, nil
}

func (e *Engine) settleWager(ctx context.Context, w *domain.Wager, homeScore, awayScore int, result *Result) error {
	margin := AdjustedMargin(homeScore, awayScore, w.BackedSide, w.SpreadTenths)
	outcome := Resolve(margin, e.policy)

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin settle tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := e.wallets.FindByUserAndTournament(ctx, tx, w.UserID, w.TournamentID)
	if err != nil {
		return fmt.Errorf("find wallet: %w", err)
	}
	if wallet == nil {
		return domain.ErrWalletNotFound(w.UserID.String())
	}

	target := domain.WagerWon
	switch outcome {
	case OutcomeLost:
		target = domain.WagerLost
	case OutcomePush:
		target = domain.WagerCancelled
	}

	flipped, err := e.wagers.TransitionFromPending(ctx, tx, w.ID, target)
	if err != nil {
		return fmt.Errorf("transition wager: %w", err)
	}
	if !flipped {
		// Cancelled or already settled by an earlier run.
		result.Skipped++
		return nil
	}
	w.Status = target

	switch outcome {
	case OutcomeWon:
		_, err = e.ledger.ExecuteCreditWin(ctx, tx, domain.CreditWinParams{
			WalletID: wallet.ID,
			WagerID:  w.ID,
			Amount:   w.Amount,
		})
	case OutcomeLost:
		_, err = e.ledger.ExecuteMarkLoss(ctx, tx, domain.MarkLossParams{
			WalletID: wallet.ID,
			WagerID:  w.ID,
			Amount:   w.Amount,
		})
	case OutcomePush:
		_, err = e.ledger.ExecuteRefundStake(ctx, tx, domain.RefundStakeParams{
			WalletID: wallet.ID,
			WagerID:  w.ID,
			Amount:   w.Amount,
		})
	}
	if err != nil {
		return fmt.Errorf("settle %s wager: %w", outcome, err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewWagerSettledEvent(w, margin)); err != nil {
		return fmt.Errorf("insert settled event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit settle tx: %w", err)
	}

	switch outcome {
	case OutcomeWon:
		result.Won++
	case OutcomeLost:
		result.Lost++
	case OutcomePush:
		result.Refunded++
	}
	result.Settled++
	return nil
}
