package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecuteRefundStake returns a stake without any winnings. Used for
// pushes when the refund policy is in effect.
func (e *Engine) ExecuteRefundStake(ctx context.Context, tx pgx.Tx, params domain.RefundStakeParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, err
	}

	if _, err := e.LockWalletForUpdate(ctx, tx, params.WalletID); err != nil {
		return nil, fmt.Errorf("refund stake: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxStakeRefunded,
		Amount:   params.Amount,
		Update: domain.WalletUpdate{
			CoinsRemaining: params.Amount,
			CoinsBet:       -params.Amount,
		},
		WagerID:  &params.WagerID,
		Metadata: mergeMeta(nil, map[string]interface{}{"reason": "push"}),
	})
	if err != nil {
		return nil, fmt.Errorf("refund stake post: %w", err)
	}

	return &domain.CommandResult{
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry)},
	}, nil
}
