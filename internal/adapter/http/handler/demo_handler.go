package handler

import (
	"encoding/json"
	"net/http"

	"github.com/demobank/demobank/internal/adapter/http/dto"
	"github.com/demobank/demobank/internal/ledger"
)

// DemoHandler exposes the demo-state reset operations.
type DemoHandler struct {
	store *ledger.Store
}

// NewDemoHandler creates a new DemoHandler.
func NewDemoHandler(store *ledger.Store) *DemoHandler {
	return &DemoHandler{store: store}
}

// Reset clears every user's data and reseeds the default demo user.
func (h *DemoHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.ResetAllData(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ResetUser regenerates the current user's default accounts and clears its
// history.
func (h *DemoHandler) ResetUser(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetUserRequest
	if r.Body != nil {
		// Body is optional; decode errors fall back to the defaults.
		json.NewDecoder(r.Body).Decode(&req)
	}

	checking := ledger.DefaultCheckingBalance
	savings := ledger.DefaultSavingsBalance
	if req.CheckingBalance != nil {
		checking = *req.CheckingBalance
	}
	if req.SavingsBalance != nil {
		savings = *req.SavingsBalance
	}

	if err := h.store.ResetCurrentUserData(r.Context(), checking, savings); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(h.store.CurrentAccounts()))
}
