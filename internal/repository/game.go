package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

const gameColumns = `id, home_team, away_team, starts_at, cutoff_at, home_score, away_score, final, created_at`

func (r *gameRepo) Insert(ctx context.Context, db DBTX, g *domain.Game) error {
	_, err := db.Exec(ctx, `
		INSERT INTO games (id, home_team, away_team, starts_at, cutoff_at)
		VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.HomeTeam, g.AwayTeam, g.StartsAt, g.CutoffAt)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error) {
	row := db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *gameRepo) RecordFinalScore(ctx context.Context, db DBTX, gameID uuid.UUID, homeScore, awayScore int) error {
	_, err := db.Exec(ctx, `
		UPDATE games SET home_score = $2, away_score = $3, final = true WHERE id = $1`,
		gameID, homeScore, awayScore)
	if err != nil {
		return fmt.Errorf("record final score: %w", err)
	}
	return nil
}

func (r *gameRepo) ListUpcoming(ctx context.Context, db DBTX, now time.Time) ([]domain.Game, error) {
	rows, err := db.Query(ctx,
		`SELECT `+gameColumns+` FROM games WHERE cutoff_at > $1 ORDER BY starts_at`, now)
	if err != nil {
		return nil, fmt.Errorf("query upcoming games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.HomeTeam, &g.AwayTeam, &g.StartsAt, &g.CutoffAt,
		&g.HomeScore, &g.AwayScore, &g.Final, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}
