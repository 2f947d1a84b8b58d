package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

type tournamentRepo struct{}

// NewTournamentRepository returns a pgx-backed TournamentRepository.
func NewTournamentRepository() TournamentRepository {
	return &tournamentRepo{}
}

const tournamentColumns = `id, start_at, end_at, status, participant_count, total_prize_pool, finalized_at, created_at`

func (r *tournamentRepo) Insert(ctx context.Context, tx pgx.Tx, t *domain.Tournament) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO tournaments (id, start_at, end_at, status, participant_count, total_prize_pool)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.StartAt, t.EndAt, t.Status, t.ParticipantCount,
		infra.Int64ToNumeric(t.TotalPrizePool))
	if err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}

	for _, tier := range t.PayoutTiers {
		_, err := tx.Exec(ctx, `
			INSERT INTO payout_tiers (tournament_id, rank, percent_bps)
			VALUES ($1, $2, $3)`, t.ID, tier.Rank, tier.PercentBps)
		if err != nil {
			return fmt.Errorf("insert payout tier %d: %w", tier.Rank, err)
		}
	}
	return nil
}

func (r *tournamentRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Tournament, error) {
	row := db.QueryRow(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	t, err := scanTournament(row)
	if err != nil || t == nil {
		return t, err
	}
	if err := r.loadTiers(ctx, db, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tournamentRepo) FindActive(ctx context.Context, db DBTX) (*domain.Tournament, error) {
	row := db.QueryRow(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE status = 'active' ORDER BY start_at DESC LIMIT 1`)
	t, err := scanTournament(row)
	if err != nil || t == nil {
		return t, err
	}
	if err := r.loadTiers(ctx, db, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tournamentRepo) CompleteActive(ctx context.Context, tx pgx.Tx, now time.Time) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `
		UPDATE tournaments SET status = 'completed', end_at = LEAST(end_at, $1)
		WHERE status = 'active'
		RETURNING id`, now)
	if err != nil {
		return nil, fmt.Errorf("complete active tournaments: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan completed id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *tournamentRepo) SetParticipantCount(ctx context.Context, db DBTX, id uuid.UUID, count int) error {
	_, err := db.Exec(ctx,
		`UPDATE tournaments SET participant_count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("set participant count: %w", err)
	}
	return nil
}

func (r *tournamentRepo) MarkFinalized(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE tournaments SET finalized_at = now() WHERE id = $1 AND finalized_at IS NULL`, id)
	if err != nil {
		return false, fmt.Errorf("mark finalized: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *tournamentRepo) ListUnfinalizedCompleted(ctx context.Context, db DBTX) ([]domain.Tournament, error) {
	rows, err := db.Query(ctx, `
		SELECT `+tournamentColumns+` FROM tournaments
		WHERE status = 'completed' AND finalized_at IS NULL
		ORDER BY end_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query unfinalized tournaments: %w", err)
	}
	defer rows.Close()

	var out []domain.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadTiers(ctx, db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *tournamentRepo) loadTiers(ctx context.Context, db DBTX, t *domain.Tournament) error {
	rows, err := db.Query(ctx,
		`SELECT rank, percent_bps FROM payout_tiers WHERE tournament_id = $1 ORDER BY rank`, t.ID)
	if err != nil {
		return fmt.Errorf("query payout tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier domain.PayoutTier
		if err := rows.Scan(&tier.Rank, &tier.PercentBps); err != nil {
			return fmt.Errorf("scan payout tier: %w", err)
		}
		t.PayoutTiers = append(t.PayoutTiers, tier)
	}
	return rows.Err()
}

func scanTournament(row pgx.Row) (*domain.Tournament, error) {
	var t domain.Tournament
	var poolNum pgtype.Numeric
	err := row.Scan(&t.ID, &t.StartAt, &t.EndAt, &t.Status, &t.ParticipantCount,
		&poolNum, &t.FinalizedAt, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan tournament: %w", err)
	}

	t.TotalPrizePool, err = infra.NumericToInt64(poolNum)
	if err != nil {
		return nil, fmt.Errorf("convert total_prize_pool: %w", err)
	}
	return &t, nil
}
