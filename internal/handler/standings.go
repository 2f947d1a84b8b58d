package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/service"
)

// StandingsHandler exposes tournament state and standings.
type StandingsHandler struct {
	svc *service.TourneyService
}

// NewStandingsHandler creates a StandingsHandler.
func NewStandingsHandler(svc *service.TourneyService) *StandingsHandler {
	return &StandingsHandler{svc: svc}
}

// Current handles GET /tournaments/current.
func (h *StandingsHandler) Current(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.ActiveTournament(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, t)
}

// Live handles GET /tournaments/current/standings.
func (h *StandingsHandler) Live(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.svc.LiveStandings(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"standings": ranked})
}

// Results handles GET /tournaments/{id}/results.
func (h *StandingsHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid tournament id"))
		return
	}

	t, payouts, err := h.svc.TournamentResults(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tournament": t,
		"payouts":    payouts,
	})
}
