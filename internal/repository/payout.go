package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

type payoutRepo struct{}

// NewPayoutRepository returns a pgx-backed PayoutRepository.
func NewPayoutRepository() PayoutRepository {
	return &payoutRepo{}
}

func (r *payoutRepo) Insert(ctx context.Context, db DBTX, p *domain.Payout) error {
	// The unique (user_id, tournament_id) key absorbs finalization re-runs.
	_, err := db.Exec(ctx, `
		INSERT INTO payouts (id, user_id, tournament_id, amount, rank, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, tournament_id) DO NOTHING`,
		p.ID, p.UserID, p.TournamentID, infra.Int64ToNumeric(p.Amount), p.Rank, p.Status)
	if err != nil {
		return fmt.Errorf("insert payout: %w", err)
	}
	return nil
}

func (r *payoutRepo) ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Payout, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, tournament_id, amount, rank, status, created_at
		FROM payouts WHERE tournament_id = $1 ORDER BY rank`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("query payouts: %w", err)
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		var p domain.Payout
		var amountNum pgtype.Numeric
		if err := rows.Scan(&p.ID, &p.UserID, &p.TournamentID, &amountNum, &p.Rank, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		p.Amount, err = infra.NumericToInt64(amountNum)
		if err != nil {
			return nil, fmt.Errorf("convert payout amount: %w", err)
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}
