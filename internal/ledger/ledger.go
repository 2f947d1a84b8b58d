package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// Engine provides the 2 foundational wallet operations:
//  1. LockWalletForUpdate — row-level pessimistic lock
//  2. PostEntry — atomic balance update + append-only journal insert + outbox event
//
// Every command file in this package delegates to these.
type Engine struct {
	wallets      repository.WalletRepository
	wagers       repository.WagerRepository
	transactions repository.TransactionRepository
	outbox       repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	wallets repository.WalletRepository,
	wagers repository.WagerRepository,
	transactions repository.TransactionRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		wallets:      wallets,
		wagers:       wagers,
		transactions: transactions,
		outbox:       outbox,
	}
}

// LockWalletForUpdate acquires a row-level lock and returns the wallet.
// Must be called within a transaction.
func (e *Engine) LockWalletForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := e.wallets.LockForUpdate(ctx, tx, walletID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	if wallet == nil {
		return nil, domain.ErrNotFound("wallet", walletID.String())
	}
	return wallet, nil
}

// PostEntry atomically updates wallet columns and appends a journal entry.
//
// Steps:
//  1. Update the wallet using server-side arithmetic (dynamic SET clauses)
//  2. Insert the journal entry with the post-update wallet snapshot
//  3. Insert the outbox event
//
// All 3 steps run within the caller's transaction, so a rollback leaves
// no partial trace.
func (e *Engine) PostEntry(ctx context.Context, tx pgx.Tx, params domain.PostEntryParams) (*domain.Transaction, *domain.Wallet, error) {
	updated, err := e.wallets.ApplyDelta(ctx, tx, params.WalletID, params.Update)
	if err != nil {
		return nil, nil, fmt.Errorf("apply wallet delta: %w", err)
	}

	entry, err := e.transactions.Insert(ctx, tx, params, updated)
	if err != nil {
		return nil, nil, fmt.Errorf("insert journal entry: %w", err)
	}

	event := domain.NewTransactionPostedEvent(entry)
	if err := e.outbox.Insert(ctx, tx, event); err != nil {
		return nil, nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return entry, updated, nil
}
