package handler

import (
	"net/http"
	"strconv"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/service"
)

// WalletHandler exposes the caller's wallet and journal.
type WalletHandler struct {
	svc *service.TourneyService
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(svc *service.TourneyService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Balance handles GET /wallet/balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	wallet, err := h.svc.MyWallet(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"wallet":      wallet,
		"total_score": wallet.TotalScore(),
	})
}

// Transactions handles GET /wallet/transactions.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.MyTransactions(r.Context(), userID, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"transactions": entries})
}

// Profile handles GET /subscribers/me.
func (h *WalletHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	sub, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, sub)
}
