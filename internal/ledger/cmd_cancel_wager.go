package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecuteCancelWager returns a pending wager's stake to the wallet. The
// pending-status guard on the wager row decides races against settlement:
// if the guard misses, the wager already settled and nothing is refunded.
func (e *Engine) ExecuteCancelWager(ctx context.Context, tx pgx.Tx, params domain.CancelWagerParams) (*domain.CommandResult, error) {
	wallet, err := e.LockWalletForUpdate(ctx, tx, params.WalletID)
	if err != nil {
		return nil, fmt.Errorf("cancel wager: %w", err)
	}

	wager, err := e.wagers.FindByID(ctx, tx, params.WagerID)
	if err != nil {
		return nil, fmt.Errorf("cancel wager lookup: %w", err)
	}
	if wager == nil {
		return nil, domain.ErrNotFound("wager", params.WagerID.String())
	}
	// The wager must belong to this wallet's owner AND this wallet's
	// period. A pending wager left over from a rolled-over tournament
	// must not refund into the fresh wallet.
	if wager.UserID != wallet.UserID || wager.TournamentID != wallet.TournamentID {
		return nil, domain.ErrNotFound("wager", params.WagerID.String())
	}

	flipped, err := e.wagers.TransitionFromPending(ctx, tx, wager.ID, domain.WagerCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel wager transition: %w", err)
	}
	if !flipped {
		return nil, domain.ErrCannotCancel(wager.ID.String())
	}
	wager.Status = domain.WagerCancelled

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxWagerCancelled,
		Amount:   wager.Amount,
		Update: domain.WalletUpdate{
			CoinsRemaining: wager.Amount,
			CoinsBet:       -wager.Amount,
			WagersPlaced:   -1,
		},
		WagerID:  &wager.ID,
		Metadata: mergeMeta(nil, map[string]interface{}{"gameId": wager.GameID.String()}),
	})
	if err != nil {
		return nil, fmt.Errorf("cancel wager post: %w", err)
	}

	cancelled := domain.NewWagerLifecycleEvent(domain.EventWagerCancelled, wager)
	if err := e.outbox.Insert(ctx, tx, cancelled); err != nil {
		return nil, fmt.Errorf("cancel wager event: %w", err)
	}

	return &domain.CommandResult{
		Wager:  wager,
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry), cancelled},
	}, nil
}
