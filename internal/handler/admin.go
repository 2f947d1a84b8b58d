package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/settlement"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/standings"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/tournament"
)

// AdminHandler exposes the operator surface: game management, result
// entry, and manual lifecycle triggers. The scheduler drives the same
// code paths on cron.
type AdminHandler struct {
	pool      *pgxpool.Pool
	games     repository.GameRepository
	wallets   repository.WalletRepository
	wagers    repository.WagerRepository
	settler   *settlement.Engine
	lifecycle *tournament.Manager
	finalizer *standings.Finalizer
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	wallets repository.WalletRepository,
	wagers repository.WagerRepository,
	settler *settlement.Engine,
	lifecycle *tournament.Manager,
	finalizer *standings.Finalizer,
) *AdminHandler {
	return &AdminHandler{
		pool:      pool,
		games:     games,
		wallets:   wallets,
		wagers:    wagers,
		settler:   settler,
		lifecycle: lifecycle,
		finalizer: finalizer,
	}
}

type createGameInput struct {
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	StartsAt time.Time `json:"starts_at"`
	CutoffAt time.Time `json:"cutoff_at"`
}

// CreateGame handles POST /admin/games.
func (h *AdminHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input createGameInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if input.HomeTeam == "" || input.AwayTeam == "" {
		RespondError(w, domain.ErrValidation("home and away teams are required"))
		return
	}
	if input.CutoffAt.IsZero() {
		input.CutoffAt = input.StartsAt
	}

	game := &domain.Game{
		ID:       uuid.New(),
		HomeTeam: input.HomeTeam,
		AwayTeam: input.AwayTeam,
		StartsAt: input.StartsAt,
		CutoffAt: input.CutoffAt,
	}
	if err := h.games.Insert(r.Context(), h.pool, game); err != nil {
		RespondError(w, domain.ErrInternal("create game", err))
		return
	}
	RespondJSON(w, http.StatusCreated, game)
}

type gameResultInput struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

// RecordResult handles POST /admin/games/{id}/result: stores the final
// score and settles every pending wager on the game.
func (h *AdminHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game id"))
		return
	}

	var input gameResultInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		RespondError(w, domain.ErrValidation("scores must be non-negative"))
		return
	}

	result, err := h.settler.SettleGame(r.Context(), gameID, input.HomeScore, input.AwayScore)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

type reconcileResponse struct {
	WalletID   uuid.UUID `json:"wallet_id"`
	CoinsBet   int64     `json:"coins_bet"`
	WagersSum  int64     `json:"wagers_sum"`
	Consistent bool      `json:"consistent"`
}

// ReconcileWallet handles GET /admin/wallets/{id}/reconcile: compares the
// wallet's coins_bet column against the summed amount of its non-cancelled
// wagers. A mismatch means the ledger and the wager table disagree.
func (h *AdminHandler) ReconcileWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid wallet id"))
		return
	}

	wallet, err := h.wallets.FindByID(r.Context(), h.pool, walletID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find wallet", err))
		return
	}
	if wallet == nil {
		RespondError(w, domain.ErrNotFound("wallet", walletID.String()))
		return
	}

	sum, err := h.wagers.SumNonCancelledByWallet(r.Context(), h.pool, wallet.UserID, wallet.TournamentID)
	if err != nil {
		RespondError(w, domain.ErrInternal("sum wagers", err))
		return
	}

	RespondJSON(w, http.StatusOK, reconcileResponse{
		WalletID:   wallet.ID,
		CoinsBet:   wallet.CoinsBet,
		WagersSum:  sum,
		Consistent: wallet.CoinsBet == sum,
	})
}

// TriggerRollover handles POST /admin/tournaments/rollover.
func (h *AdminHandler) TriggerRollover(w http.ResponseWriter, r *http.Request) {
	result, err := h.lifecycle.Rollover(r.Context(), time.Now())
	if err != nil {
		RespondError(w, domain.ErrInternal("rollover", err))
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// TriggerFinalize handles POST /admin/tournaments/finalize.
func (h *AdminHandler) TriggerFinalize(w http.ResponseWriter, r *http.Request) {
	results, err := h.finalizer.Sweep(r.Context())
	if err != nil {
		RespondError(w, domain.ErrInternal("finalize sweep", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"finalized": results})
}
