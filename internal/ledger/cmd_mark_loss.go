package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecuteMarkLoss records a losing wager in the journal. No coins move,
// the stake was already deducted at placement.
func (e *Engine) ExecuteMarkLoss(ctx context.Context, tx pgx.Tx, params domain.MarkLossParams) (*domain.CommandResult, error) {
	if _, err := e.LockWalletForUpdate(ctx, tx, params.WalletID); err != nil {
		return nil, fmt.Errorf("mark loss: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxWagerLost,
		Amount:   params.Amount,
		Update:   domain.WalletUpdate{},
		WagerID:  &params.WagerID,
		Metadata: mergeMeta(nil, map[string]interface{}{"stake": params.Amount}),
	})
	if err != nil {
		return nil, fmt.Errorf("mark loss post: %w", err)
	}

	return &domain.CommandResult{
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry)},
	}, nil
}
