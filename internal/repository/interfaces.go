package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// DB is a DBTX that can also open transactions. *pgxpool.Pool satisfies
// it; components that own their transaction boundaries depend on this
// instead of the concrete pool.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WalletRepository provides access to wallets.
type WalletRepository interface {
	// FindByID returns a wallet by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Wallet, error)

	// FindByUserAndTournament returns the wallet keyed (userID, tournamentID).
	FindByUserAndTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) (*domain.Wallet, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the wallet.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)

	// ApplyDelta atomically updates wallet columns using server-side arithmetic.
	// The coins_remaining CHECK constraint backstops the never-negative invariant.
	ApplyDelta(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, delta domain.WalletUpdate) (*domain.Wallet, error)

	// ListByTournament returns every wallet in a tournament ordered by user_id,
	// for standings computation.
	ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Wallet, error)

	// ResetForTournament creates-or-resets the wallet for one user in one
	// tournament: coins back to the starting grant, counters zeroed.
	// Idempotent, so interrupted rollover batches are safe to re-run.
	ResetForTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID, startingGrant int64) error

	// SetRank records the final rank computed at tournament close.
	SetRank(ctx context.Context, db DBTX, walletID uuid.UUID, rank int) error
}

// WagerRepository provides access to wagers.
type WagerRepository interface {
	// Insert creates a new wager row.
	Insert(ctx context.Context, db DBTX, w *domain.Wager) error

	// FindByID returns a wager by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Wager, error)

	// ListPendingByGame returns every pending wager staked on a game.
	ListPendingByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Wager, error)

	// ListByUserAndTournament returns a user's wagers in one period, newest first.
	ListByUserAndTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) ([]domain.Wager, error)

	// TransitionFromPending flips a wager to a terminal status, guarded by
	// WHERE status = 'pending'. Returns false if the guard matched no row,
	// meaning a concurrent cancel/settle won the race.
	TransitionFromPending(ctx context.Context, tx pgx.Tx, wagerID uuid.UUID, to domain.WagerStatus) (bool, error)

	// SumNonCancelledByWallet returns the summed amount of all non-cancelled
	// wagers for a wallet, used by reconciliation checks.
	SumNonCancelledByWallet(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) (int64, error)
}

// TournamentRepository provides access to tournaments and payout_tiers.
type TournamentRepository interface {
	// Insert creates a tournament and its tiers in the caller's transaction.
	Insert(ctx context.Context, tx pgx.Tx, t *domain.Tournament) error

	// FindByID returns a tournament with its tiers loaded.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Tournament, error)

	// FindActive returns the currently active tournament, or nil.
	FindActive(ctx context.Context, db DBTX) (*domain.Tournament, error)

	// CompleteActive marks all active tournaments completed and returns their IDs.
	CompleteActive(ctx context.Context, tx pgx.Tx, now time.Time) ([]uuid.UUID, error)

	// SetParticipantCount records how many wallets were reset into the period.
	SetParticipantCount(ctx context.Context, db DBTX, id uuid.UUID, count int) error

	// MarkFinalized stamps finalized_at, guarded by finalized_at IS NULL.
	// Returns false when another finalization already claimed the tournament.
	MarkFinalized(ctx context.Context, db DBTX, id uuid.UUID) (bool, error)

	// ListUnfinalizedCompleted returns completed tournaments that still need
	// ranking and payout distribution, oldest first.
	ListUnfinalizedCompleted(ctx context.Context, db DBTX) ([]domain.Tournament, error)
}

// PayoutRepository provides access to payouts.
type PayoutRepository interface {
	// Insert creates a payout record. The (user_id, tournament_id) unique key
	// makes re-runs of finalization no-ops.
	Insert(ctx context.Context, db DBTX, p *domain.Payout) error

	// ListByTournament returns all payouts for a tournament ordered by rank.
	ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Payout, error)
}

// SubscriberRepository provides read access to the subscriber directory
// plus the streak bookkeeping owned by the login bonus processor.
type SubscriberRepository interface {
	// Create inserts a new subscriber.
	Create(ctx context.Context, db DBTX, s *domain.Subscriber, passwordHash string) error

	// FindByID returns a subscriber by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Subscriber, error)

	// FindByEmail returns a subscriber and password hash by email.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Subscriber, string, error)

	// CountActive returns the active subscriber count used for prize pool sizing.
	CountActive(ctx context.Context, db DBTX) (int, error)

	// ListActiveIDs pages active subscriber IDs with a keyset cursor, for
	// resumable wallet-reset batches.
	ListActiveIDs(ctx context.Context, db DBTX, afterID uuid.UUID, limit int) ([]uuid.UUID, error)

	// AdvanceStreak applies the first-login-of-the-day streak update, guarded
	// so a repeated login on the same calendar day matches no row. Returns
	// the new streak and true when this call was the first login today.
	AdvanceStreak(ctx context.Context, tx pgx.Tx, userID uuid.UUID, today time.Time) (int, bool, error)

	// RecordFinish folds a finalized rank and winnings into the lifetime
	// best-finish and cumulative-winnings stats.
	RecordFinish(ctx context.Context, db DBTX, userID uuid.UUID, rank int, winnings int64) error
}

// GameRepository provides access to games.
type GameRepository interface {
	// Insert creates a game row.
	Insert(ctx context.Context, db DBTX, g *domain.Game) error

	// FindByID returns a game by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error)

	// RecordFinalScore stores the final score and marks the game final.
	// Safe to call repeatedly with the same outcome.
	RecordFinalScore(ctx context.Context, db DBTX, gameID uuid.UUID, homeScore, awayScore int) error

	// ListUpcoming returns games whose betting cutoff is still ahead.
	ListUpcoming(ctx context.Context, db DBTX, now time.Time) ([]domain.Game, error)
}

// TransactionRepository provides access to the coin_transactions journal.
type TransactionRepository interface {
	// Insert appends a journal entry with the post-update wallet snapshot.
	Insert(ctx context.Context, db DBTX, params domain.PostEntryParams, after *domain.Wallet) (*domain.Transaction, error)

	// ListByWallet returns entries for a wallet, newest first.
	ListByWallet(ctx context.Context, db DBTX, walletID uuid.UUID, limit int) ([]domain.Transaction, error)
}

// OutboxRow is a fetched coin_outbox row including its sequence ID.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the coin_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the journal entry).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the publisher.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
