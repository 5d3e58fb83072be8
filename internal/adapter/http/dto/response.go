package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	UserID        string          `json:"userId"`
	AccountNumber string          `json:"accountNumber"`
	Type          string          `json:"type"`
	Currency      string          `json:"currency"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Label:         a.Label,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		UserID:        a.UserID,
		AccountNumber: a.AccountNumber,
		Type:          string(a.Type),
		Currency:      a.Currency,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = AccountFromDomain(&accounts[i])
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	EmitterAccountID  string          `json:"emitterAccountId"`
	ReceiverAccountID string          `json:"receiverAccountId"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Status            string          `json:"status"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		Amount:            t.Amount,
		Description:       t.Description,
		EmitterAccountID:  t.EmitterAccountID,
		ReceiverAccountID: t.ReceiverAccountID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Status:            string(t.Status),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i := range transactions {
		result[i] = TransactionFromDomain(&transactions[i])
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ClientCode string `json:"clientCode"`
	Name       string `json:"name"`
}

// LoginResponse represents a successful login or registration.
type LoginResponse struct {
	JWT  string       `json:"jwt"`
	User UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
