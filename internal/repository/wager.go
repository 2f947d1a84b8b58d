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

type wagerRepo struct{}

// NewWagerRepository returns a pgx-backed WagerRepository.
func NewWagerRepository() WagerRepository {
	return &wagerRepo{}
}

const wagerColumns = `id, user_id, game_id, tournament_id, amount, spread_tenths, backed_side, status, created_at, updated_at`

func (r *wagerRepo) Insert(ctx context.Context, db DBTX, w *domain.Wager) error {
	_, err := db.Exec(ctx, `
		INSERT INTO wagers (id, user_id, game_id, tournament_id, amount, spread_tenths, backed_side, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.UserID, w.GameID, w.TournamentID,
		infra.Int64ToNumeric(w.Amount), w.SpreadTenths, w.BackedSide, w.Status)
	if err != nil {
		return fmt.Errorf("insert wager: %w", err)
	}
	return nil
}

func (r *wagerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Wager, error) {
	row := db.QueryRow(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id = $1`, id)
	return scanWager(row)
}

func (r *wagerRepo) ListPendingByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Wager, error) {
	rows, err := db.Query(ctx,
		`SELECT `+wagerColumns+` FROM wagers WHERE game_id = $1 AND status = 'pending' ORDER BY created_at`,
		gameID)
	if err != nil {
		return nil, fmt.Errorf("query pending wagers: %w", err)
	}
	defer rows.Close()
	return collectWagers(rows)
}

func (r *wagerRepo) ListByUserAndTournament(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) ([]domain.Wager, error) {
	rows, err := db.Query(ctx,
		`SELECT `+wagerColumns+` FROM wagers
		 WHERE user_id = $1 AND tournament_id = $2
		 ORDER BY created_at DESC`, userID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("query user wagers: %w", err)
	}
	defer rows.Close()
	return collectWagers(rows)
}

// TransitionFromPending is the concurrency guard for the whole wager
// lifecycle: whichever of cancel/settle commits the flip first wins, the
// loser matches zero rows and must abort instead of overwriting.
func (r *wagerRepo) TransitionFromPending(ctx context.Context, tx pgx.Tx, wagerID uuid.UUID, to domain.WagerStatus) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE wagers SET status = $2, updated_at = now() WHERE id = $1 AND status = 'pending'`,
		wagerID, to)
	if err != nil {
		return false, fmt.Errorf("transition wager: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *wagerRepo) SumNonCancelledByWallet(ctx context.Context, db DBTX, userID, tournamentID uuid.UUID) (int64, error) {
	var sum pgtype.Numeric
	err := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM wagers
		WHERE user_id = $1 AND tournament_id = $2 AND status <> 'cancelled'`,
		userID, tournamentID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum wagers: %w", err)
	}
	return infra.NumericToInt64(sum)
}

func scanWager(row pgx.Row) (*domain.Wager, error) {
	var w domain.Wager
	var amountNum pgtype.Numeric
	err := row.Scan(&w.ID, &w.UserID, &w.GameID, &w.TournamentID, &amountNum,
		&w.SpreadTenths, &w.BackedSide, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wager: %w", err)
	}

	w.Amount, err = infra.NumericToInt64(amountNum)
	if err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}
	return &w, nil
}

func collectWagers(rows pgx.Rows) ([]domain.Wager, error) {
	var wagers []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, err
		}
		wagers = append(wagers, *w)
	}
	return wagers, rows.Err()
}
