package handler

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/demobank/demobank/internal/adapter/http/dto"
	"github.com/demobank/demobank/internal/ledger"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	store *ledger.Store
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(store *ledger.Store) *AccountHandler {
	return &AccountHandler{store: store}
}

// List returns the current user's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts := h.store.CurrentAccounts()
	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Get returns one of the current user's accounts by internal id.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.store.AccountByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListTransactions returns the transaction history of an account, newest
// first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	transactions := h.store.TransactionsByAccount(id)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}
