package handler

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// GameHandler exposes the upcoming game board.
type GameHandler struct {
	pool  *pgxpool.Pool
	games repository.GameRepository
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(pool *pgxpool.Pool, games repository.GameRepository) *GameHandler {
	return &GameHandler{pool: pool, games: games}
}

// Upcoming handles GET /games.
func (h *GameHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListUpcoming(r.Context(), h.pool, time.Now())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}
