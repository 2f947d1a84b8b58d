package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecuteCreditWin pays out a won wager at even money: the stake comes
// back plus an equal amount of winnings, so coins_remaining grows by
// twice the stake while coins_won records only the profit.
func (e *Engine) ExecuteCreditWin(ctx context.Context, tx pgx.Tx, params domain.CreditWinParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, err
	}

	if _, err := e.LockWalletForUpdate(ctx, tx, params.WalletID); err != nil {
		return nil, fmt.Errorf("credit win: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxWagerWon,
		Amount:   params.Amount,
		Update: domain.WalletUpdate{
			CoinsRemaining: 2 * params.Amount,
			CoinsWon:       params.Amount,
			WagersWon:      1,
		},
		WagerID:  &params.WagerID,
		Metadata: mergeMeta(nil, map[string]interface{}{"stake": params.Amount, "winnings": params.Amount}),
	})
	if err != nil {
		return nil, fmt.Errorf("credit win post: %w", err)
	}

	return &domain.CommandResult{
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry)},
	}, nil
}
