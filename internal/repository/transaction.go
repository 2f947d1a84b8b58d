package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

type transactionRepo struct{}

// NewTransactionRepository returns a pgx-backed TransactionRepository.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepo{}
}

const transactionColumns = `id, wallet_id, type, amount, remaining_after, bet_after, won_after, wager_id, metadata, created_at`

func (r *transactionRepo) Insert(ctx context.Context, db DBTX, params domain.PostEntryParams, after *domain.Wallet) (*domain.Transaction, error) {
	entry := &domain.Transaction{
		ID:             uuid.New(),
		WalletID:       params.WalletID,
		Type:           params.Type,
		Amount:         params.Amount,
		RemainingAfter: after.CoinsRemaining,
		BetAfter:       after.CoinsBet,
		WonAfter:       after.CoinsWon,
		WagerID:        params.WagerID,
		Metadata:       params.Metadata,
	}

	row := db.QueryRow(ctx, `
		INSERT INTO coin_transactions (id, wallet_id, type, amount, remaining_after, bet_after, won_after, wager_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		entry.ID, entry.WalletID, entry.Type, infra.Int64ToNumeric(entry.Amount),
		infra.Int64ToNumeric(entry.RemainingAfter), infra.Int64ToNumeric(entry.BetAfter),
		infra.Int64ToNumeric(entry.WonAfter), entry.WagerID, entry.Metadata)
	if err := row.Scan(&entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return entry, nil
}

func (r *transactionRepo) ListByWallet(ctx context.Context, db DBTX, walletID uuid.UUID, limit int) ([]domain.Transaction, error) {
	rows, err := db.Query(ctx, `
		SELECT `+transactionColumns+` FROM coin_transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2`, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *t)
	}
	return entries, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amountNum, remainingNum, betNum, wonNum pgtype.Numeric
	err := row.Scan(&t.ID, &t.WalletID, &t.Type, &amountNum,
		&remainingNum, &betNum, &wonNum, &t.WagerID, &t.Metadata, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	for _, conv := range []struct {
		src pgtype.Numeric
		dst *int64
	}{
		{amountNum, &t.Amount},
		{remainingNum, &t.RemainingAfter},
		{betNum, &t.BetAfter},
		{wonNum, &t.WonAfter},
	} {
		v, err := infra.NumericToInt64(conv.src)
		if err != nil {
			return nil, fmt.Errorf("convert transaction amount: %w", err)
		}
		*conv.dst = v
	}
	return &t, nil
}
