// Package dto holds the wire shapes of the HTTP API. Field names are
// camelCase to stay compatible with the single-page app's backend contract.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/ledger"
)

// CreateTransactionRequest represents a request to emit a transaction.
// ReceiverAccountID may be an internal account id, a public account number
// or an external counterparty token.
type CreateTransactionRequest struct {
	EmitterAccountID  string          `json:"emitterAccountId"`
	ReceiverAccountID string          `json:"receiverAccountId"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

// ToServiceInput converts to transfer service input.
func (r *CreateTransactionRequest) ToServiceInput() ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		EmitterAccountID:  r.EmitterAccountID,
		ReceiverAccountID: r.ReceiverAccountID,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	ClientCode string `json:"clientCode"`
	Password   string `json:"password"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ResetUserRequest represents a request to reset the current user's data.
// Balances apply to the canonical demo user only; other users always get the
// default new-user balances.
type ResetUserRequest struct {
	CheckingBalance *decimal.Decimal `json:"checkingBalance,omitempty"`
	SavingsBalance  *decimal.Decimal `json:"savingsBalance,omitempty"`
}
