package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction. Demo mode never
// persists pending or failed transactions.
type TransactionStatus string

const TransactionStatusCompleted TransactionStatus = "COMPLETED"

// Transaction is a single funds movement between an emitter account and a
// receiver account (or external counterparty). Append-only: immutable once
// created.
type Transaction struct {
	ID                string            `json:"id"`
	Amount            decimal.Decimal   `json:"amount"`
	Description       string            `json:"description"`
	EmitterAccountID  string            `json:"emitterAccountId"`
	ReceiverAccountID string            `json:"receiverAccountId"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	Status            TransactionStatus `json:"status"`
}

// Validate validates the transaction invariants that do not need store state.
func (t *Transaction) Validate() error {
	if t.EmitterAccountID == t.ReceiverAccountID {
		return ErrSelfTransfer
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
