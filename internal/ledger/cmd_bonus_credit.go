package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// ExecuteBonusCredit adds a login streak bonus to coins_remaining.
// Bonus coins are indistinguishable from the starting grant once
// credited, so only coins_remaining moves.
func (e *Engine) ExecuteBonusCredit(ctx context.Context, tx pgx.Tx, params domain.BonusCreditParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, err
	}

	if _, err := e.LockWalletForUpdate(ctx, tx, params.WalletID); err != nil {
		return nil, fmt.Errorf("bonus credit: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		WalletID: params.WalletID,
		Type:     domain.TxLoginBonus,
		Amount:   params.Amount,
		Update:   domain.WalletUpdate{CoinsRemaining: params.Amount},
		Metadata: mergeMeta(nil, map[string]interface{}{"streakDay": params.StreakDay}),
	})
	if err != nil {
		return nil, fmt.Errorf("bonus credit post: %w", err)
	}

	credited := domain.NewLoginBonusEvent(entry, params.StreakDay)
	if err := e.outbox.Insert(ctx, tx, credited); err != nil {
		return nil, fmt.Errorf("bonus credit event: %w", err)
	}

	return &domain.CommandResult{
		Wallet: updated,
		Entry:  entry,
		Events: []domain.OutboxDraft{domain.NewTransactionPostedEvent(entry), credited},
	}, nil
}
