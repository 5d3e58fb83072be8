package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/demobank/demobank/internal/adapter/http/dto"
	"github.com/demobank/demobank/internal/ledger"
)

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transfers *ledger.TransferService
	store     *ledger.Store
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transfers *ledger.TransferService, store *ledger.Store) *TransactionHandler {
	return &TransactionHandler{transfers: transfers, store: store}
}

// Emit creates a new transaction for the current user.
func (h *TransactionHandler) Emit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.transfers.CreateTransaction(r.Context(), req.ToServiceInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Get retrieves one of the current user's transactions by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.store.TransactionByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}
