package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/domain"
	"github.com/demobank/demobank/internal/infrastructure/metrics"
)

// TransferService turns a transfer request into a validated, persisted
// transaction plus balance update. The unit of work is logical, not
// physically atomic: a failure strictly between the balance update and the
// history append leaves a balance change without its transaction. Validation
// happens entirely before any mutation, so rejected requests change nothing.
type TransferService struct {
	store  *Store
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewTransferService creates a new TransferService.
func NewTransferService(store *Store, idGen IDGenerator, logger zerolog.Logger) *TransferService {
	return &TransferService{
		store:  store,
		idGen:  idGen,
		logger: logger.With().Str("component", "transfer").Logger(),
	}
}

// CreateTransactionInput represents a transfer request. ReceiverAccountID
// may be an internal account id, an IBAN-like account number, or an external
// counterparty token.
type CreateTransactionInput struct {
	EmitterAccountID  string
	ReceiverAccountID string
	Amount            decimal.Decimal
	Description       string
}

// CreateTransaction resolves, validates, applies and records a transfer for
// the current user, then notifies observers. Balances are updated before the
// transaction is appended, so a reader of the history never sees a
// transaction whose effect is not yet on the balances.
func (s *TransferService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	receiver := domain.ParseCounterparty(input.ReceiverAccountID)
	receiverID := receiver.Ref()

	// Resolve an internal receiver: internal id first, then the public
	// account-number form, normalized back to the internal id.
	var resolved *domain.Account
	if !receiver.External() {
		acc, err := s.store.AccountByID(receiverID)
		if err != nil {
			if errors.Is(err, domain.ErrNoCurrentUser) {
				return nil, err
			}
			acc, err = s.store.AccountByNumber(receiverID)
			if err == nil {
				receiverID = acc.ID
			}
		}
		if err == nil {
			resolved = acc
		}
	}

	tx, err := s.buildTransaction(input, receiver, receiverID, resolved)
	if err != nil {
		metrics.RecordTransferError(errorReason(err))
		s.logger.Warn().Err(err).
			Str("emitter_account_id", input.EmitterAccountID).
			Str("receiver_account_id", input.ReceiverAccountID).
			Msg("transfer rejected")
		return nil, err
	}

	// Two store calls, in this order. Concurrent requests can both pass the
	// funds check before either applies; the shared blob store offers no
	// cross-process exclusion either. Documented demo limitation.
	if err := s.store.UpdateAccountBalances(ctx, *tx); err != nil {
		metrics.RecordTransferError(errorReason(err))
		return nil, err
	}
	if err := s.store.AddTransaction(ctx, *tx); err != nil {
		metrics.RecordTransferError(errorReason(err))
		return nil, err
	}

	changes := s.store.Bus()
	changes.NotifyAccountsUpdated()
	changes.NotifyTransactionsUpdated(tx.EmitterAccountID)
	if !receiver.External() && tx.ReceiverAccountID != tx.EmitterAccountID {
		changes.NotifyTransactionsUpdated(tx.ReceiverAccountID)
	}

	metrics.RecordTransfer(tx.Amount)
	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("emitter_account_id", tx.EmitterAccountID).
		Str("receiver_account_id", tx.ReceiverAccountID).
		Str("amount", tx.Amount.StringFixed(2)).
		Msg("transfer completed")

	return tx, nil
}

// buildTransaction runs the validation chain and constructs the transaction
// record. Fails fast on the first violation; no state is touched here.
func (s *TransferService) buildTransaction(
	input CreateTransactionInput,
	receiver domain.Counterparty,
	receiverID string,
	resolved *domain.Account,
) (*domain.Transaction, error) {
	emitter, err := s.store.AccountByID(input.EmitterAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNoCurrentUser) {
			return nil, err
		}
		return nil, domain.ErrEmitterNotFound
	}

	if !receiver.External() && resolved == nil {
		return nil, domain.ErrReceiverNotFound
	}

	if receiverID == emitter.ID {
		return nil, domain.ErrSelfTransfer
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if err := emitter.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.Transaction{
		ID:                "tx-" + s.idGen.Generate(),
		Amount:            input.Amount.Round(2),
		Description:       input.Description,
		EmitterAccountID:  emitter.ID,
		ReceiverAccountID: receiverID,
		CreatedAt:         now,
		UpdatedAt:         now,
		Status:            domain.TransactionStatusCompleted,
	}, nil
}

// errorReason labels a transfer error for metrics.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmitterNotFound):
		return "emitter_not_found"
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "receiver_not_found"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrNoCurrentUser):
		return "no_current_user"
	default:
		return "internal"
	}
}
