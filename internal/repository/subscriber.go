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

type subscriberRepo struct{}

// NewSubscriberRepository returns a pgx-backed SubscriberRepository.
func NewSubscriberRepository() SubscriberRepository {
	return &subscriberRepo{}
}

const subscriberColumns = `id, email, display_name, active, current_streak, last_login_day, best_finish, total_winnings, created_at, updated_at`

func (r *subscriberRepo) Create(ctx context.Context, db DBTX, s *domain.Subscriber, passwordHash string) error {
	_, err := db.Exec(ctx, `
		INSERT INTO subscribers (id, email, password_hash, display_name, active)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Email, passwordHash, s.DisplayName, s.Active)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *subscriberRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Subscriber, error) {
	row := db.QueryRow(ctx, `SELECT `+subscriberColumns+` FROM subscribers WHERE id = $1`, id)
	return scanSubscriber(row)
}

func (r *subscriberRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Subscriber, string, error) {
	row := db.QueryRow(ctx,
		`SELECT `+subscriberColumns+`, password_hash FROM subscribers WHERE email = $1`, email)

	var s domain.Subscriber
	var winningsNum pgtype.Numeric
	var hash string
	err := row.Scan(&s.ID, &s.Email, &s.DisplayName, &s.Active, &s.CurrentStreak,
		&s.LastLoginDay, &s.BestFinish, &winningsNum, &s.CreatedAt, &s.UpdatedAt, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("scan subscriber: %w", err)
	}
	s.TotalWinnings, err = infra.NumericToInt64(winningsNum)
	if err != nil {
		return nil, "", fmt.Errorf("convert total_winnings: %w", err)
	}
	return &s, hash, nil
}

func (r *subscriberRepo) CountActive(ctx context.Context, db DBTX) (int, error) {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers WHERE active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active subscribers: %w", err)
	}
	return count, nil
}

func (r *subscriberRepo) ListActiveIDs(ctx context.Context, db DBTX, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, `
		SELECT id FROM subscribers
		WHERE active = true AND id > $1
		ORDER BY id
		LIMIT $2`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscriber id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AdvanceStreak is guarded by last_login_day so a repeated login within
// the same calendar day matches no row and credits nothing. The streak
// continues only when yesterday was the last login day.
func (r *subscriberRepo) AdvanceStreak(ctx context.Context, tx pgx.Tx, userID uuid.UUID, today time.Time) (int, bool, error) {
	day := today.Format("2006-01-02")
	var streak int
	err := tx.QueryRow(ctx, `
		UPDATE subscribers SET
			current_streak = CASE
				WHEN last_login_day = $2::date - 1 THEN current_streak + 1
				ELSE 1
			END,
			last_login_day = $2::date,
			updated_at = now()
		WHERE id = $1 AND (last_login_day IS NULL OR last_login_day < $2::date)
		RETURNING current_streak`, userID, day).Scan(&streak)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("advance streak: %w", err)
	}
	return streak, true, nil
}

func (r *subscriberRepo) RecordFinish(ctx context.Context, db DBTX, userID uuid.UUID, rank int, winnings int64) error {
	_, err := db.Exec(ctx, `
		UPDATE subscribers SET
			best_finish = LEAST(COALESCE(best_finish, $2), $2),
			total_winnings = total_winnings + $3,
			updated_at = now()
		WHERE id = $1`, userID, rank, infra.Int64ToNumeric(winnings))
	if err != nil {
		return fmt.Errorf("record finish: %w", err)
	}
	return nil
}

func scanSubscriber(row pgx.Row) (*domain.Subscriber, error) {
	var s domain.Subscriber
	var winningsNum pgtype.Numeric
	err := row.Scan(&s.ID, &s.Email, &s.DisplayName, &s.Active, &s.CurrentStreak,
		&s.LastLoginDay, &s.BestFinish, &winningsNum, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subscriber: %w", err)
	}

	s.TotalWinnings, err = infra.NumericToInt64(winningsNum)
	if err != nil {
		return nil, fmt.Errorf("convert total_winnings: %w", err)
	}
	return &s, nil
}
