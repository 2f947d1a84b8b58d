package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/auth"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/service"
)

// WagerHandler exposes wager placement, cancellation, and listing.
type WagerHandler struct {
	svc *service.WagerService
}

// NewWagerHandler creates a WagerHandler.
func NewWagerHandler(svc *service.WagerService) *WagerHandler {
	return &WagerHandler{svc: svc}
}

// callerID resolves the authenticated subscriber from the JWT subject.
func callerID(r *http.Request) (uuid.UUID, error) {
	sub := auth.SubjectFromContext(r.Context())
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("invalid token subject")
	}
	return id, nil
}

// Place handles POST /wagers.
func (h *WagerHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var draft domain.WagerDraft
	if err := DecodeJSON(r, &draft); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.svc.PlaceWager(r.Context(), userID, draft)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"wager":  result.Wager,
		"wallet": result.Wallet,
	})
}

// Cancel handles DELETE /wagers/{id}.
func (h *WagerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	wagerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid wager id"))
		return
	}

	result, err := h.svc.CancelWager(r.Context(), userID, wagerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"wager":  result.Wager,
		"wallet": result.Wallet,
	})
}

// Mine handles GET /wagers/me.
func (h *WagerHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	wagers, err := h.svc.ListMyWagers(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"wagers": wagers})
}
