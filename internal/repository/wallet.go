package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

type walletRepo struct{}

// NewWalletRepository returns a pgx-backed WalletRepository.
func NewWalletRepository() WalletRepository {
	return &walletRepo{}
}

const walletColumns = `id, user_id, tournament_id, coins_remaining, coins_bet, coins_won, wagers_placed, wagers_won, rank, created_at, updated_at`

func (r *walletRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Wallet, error) {
	row := db.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
	return scanWallet(row)
}

func (r *walletRepo) FindByUserAndTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) (*domain.Wallet, error) {
	row := db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND tournament_id = $2`,
		userID, tournamentID)
	return scanWallet(row)
}

func (r *walletRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	row := tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1 FOR UPDATE`, id)
	return scanWallet(row)
}

// ApplyDelta uses server-side arithmetic with dynamic SET clauses so
// concurrent mutations serialize on the row instead of overwriting
// each other.
func (r *walletRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, delta domain.WalletUpdate) (*domain.Wallet, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{}
	argIdx := 1

	addNumeric := func(col string, v int64) {
		if v == 0 {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = %s + $%d", col, col, argIdx))
		args = append(args, infra.Int64ToNumeric(v))
		argIdx++
	}
	addInt := func(col string, v int) {
		if v == 0 {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = %s + $%d", col, col, argIdx))
		args = append(args, v)
		argIdx++
	}

	addNumeric("coins_remaining", delta.CoinsRemaining)
	addNumeric("coins_bet", delta.CoinsBet)
	addNumeric("coins_won", delta.CoinsWon)
	addInt("wagers_placed", delta.WagersPlaced)
	addInt("wagers_won", delta.WagersWon)

	args = append(args, walletID)
	query := fmt.Sprintf(`
		UPDATE wallets SET %s
		WHERE id = $%d
		RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, walletColumns)

	row := tx.QueryRow(ctx, query, args...)
	return scanWallet(row)
}

func (r *walletRepo) ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Wallet, error) {
	rows, err := db.Query(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE tournament_id = $1 ORDER BY user_id`,
		tournamentID)
	if err != nil {
		return nil, fmt.Errorf("query wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

func (r *walletRepo) ResetForTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID, startingGrant int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO wallets (id, user_id, tournament_id, coins_remaining, coins_bet, coins_won, wagers_placed, wagers_won)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0)
		ON CONFLICT (user_id, tournament_id) DO UPDATE SET
			coins_remaining = EXCLUDED.coins_remaining,
			coins_bet = 0,
			coins_won = 0,
			wagers_placed = 0,
			wagers_won = 0,
			rank = NULL,
			updated_at = now()`,
		uuid.New(), userID, tournamentID, infra.Int64ToNumeric(startingGrant))
	if err != nil {
		return fmt.Errorf("reset wallet: %w", err)
	}
	return nil
}

func (r *walletRepo) SetRank(ctx context.Context, db DBTX, walletID uuid.UUID, rank int) error {
	_, err := db.Exec(ctx,
		`UPDATE wallets SET rank = $2, updated_at = now() WHERE id = $1`, walletID, rank)
	if err != nil {
		return fmt.Errorf("set wallet rank: %w", err)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	var remNum, betNum, wonNum pgtype.Numeric
	err := row.Scan(&w.ID, &w.UserID, &w.TournamentID, &remNum, &betNum, &wonNum,
		&w.WagersPlaced, &w.WagersWon, &w.Rank, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}

	var convErr error
	w.CoinsRemaining, convErr = infra.NumericToInt64(remNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert coins_remaining: %w", convErr)
	}
	w.CoinsBet, convErr = infra.NumericToInt64(betNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert coins_bet: %w", convErr)
	}
	w.CoinsWon, convErr = infra.NumericToInt64(wonNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert coins_won: %w", convErr)
	}

	return &w, nil
}
