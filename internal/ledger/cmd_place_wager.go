package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecutePlaceWager deducts the stake from coins_remaining and records
// the wager. Validation order is fixed: amount shape first, then funds
// under the wallet lock, then the betting cutoff.
func (e *Engine) ExecutePlaceWager(ctx context.Context, tx pgx.Tx, params domain.PlaceWagerParams, game *domain.Game, now time.Time) (*domain.CommandResult, error) {
	if err := domain.ValidateWagerDraft(params.Draft); err != nil {
		return nil, err
	}

	wallet, err := e.LockWalletForUpdate(ctx, tx, params.WalletID)
	if err != nil {
		return nil, fmt.Errorf("place wager: %w", err)
	}

	if wallet.CoinsRemaining < params.Draft.Amount {
		return nil, domain.ErrInsufficientFunds(wallet.CoinsRemaining, params.Draft.Amount)
	}

	if game == nil {
		return nil, domain.ErrNotFound("game", params.Draft.GameID.String())
	}
	if game.Locked(now) {
		return nil, domain.ErrGameLocked(game.ID.String())
	}

	wager := &domain.Wager{
		ID:           uuid.New(),
		UserID:       params.UserID,
		GameID:       params.Draft.GameID,
		TournamentID: wallet.TournamentID,
		Amount:       params.Draft.Amount,
		SpreadTenths: params.Draft.SpreadTenths,
		BackedSide:   params.Draft.BackedSide,
		Status:       domain.WagerPending,
	}
	if err := e.wagers.Insert(ctx, tx, wager); err != nil {
		return nil, fmt.Errorf("place wager insert: %w", err)
	}

	meta := mergeMeta(nil, map[string]interface{}{
		"gameId":       wager.GameID.String(),
		"backedSide":   wager.BackedSide,
		"spreadTenths": wager.SpreadTenths,
	})

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxWagerPlaced,
		Amount:   wager.Amount,
		Update: domain.WalletUpdate{
			CoinsRemaining: -wager.Amount,
			CoinsBet:       wager.Amount,
			WagersPlaced:   1,
		},
		WagerID:  &wager.ID,
		Metadata: meta,
	})
	if err != nil {
		return nil, fmt.Errorf("place wager post: %w", err)
	}

	placed := domain.NewWagerLifecycleEvent(domain.EventWagerPlaced, wager)
	if err := e.outbox.Insert(ctx, tx, placed); err != nil {
		return nil, fmt.Errorf("place wager event: %w", err)
	}

	return &domain.CommandResult{
		Wager:  wager,
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry), placed},
	}, nil
}
