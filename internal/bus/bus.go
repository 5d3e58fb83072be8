// Package bus provides the change-notification channel between the ledger
// store and its observers. Delivery is synchronous fan-out to currently
// subscribed listeners; there is no buffering and no replay, so late
// subscribers miss past notifications.
package bus

import (
	"sync"

	"log/slog"
)

// AccountsListener is called when the current user's account list changed.
// Interested consumers re-fetch the list; no payload is carried.
type AccountsListener func()

// TransactionsListener is called when the transaction history of the given
// account changed.
type TransactionsListener func(accountID string)

// Bus fans out ledger change notifications.
type Bus struct {
	mu           sync.RWMutex
	nextID       int
	accountsSubs map[int]AccountsListener
	txSubs       map[int]TransactionsListener
	logger       *slog.Logger
}

// New creates a Bus. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		accountsSubs: make(map[int]AccountsListener),
		txSubs:       make(map[int]TransactionsListener),
		logger:       logger,
	}
}

// SubscribeAccounts registers a listener for account-list changes and
// returns its unsubscribe function.
func (b *Bus) SubscribeAccounts(fn AccountsListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.accountsSubs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.accountsSubs, id)
	}
}

// SubscribeTransactions registers a listener for per-account transaction
// history changes and returns its unsubscribe function.
func (b *Bus) SubscribeTransactions(fn TransactionsListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.txSubs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.txSubs, id)
	}
}

// NotifyAccountsUpdated delivers an accounts-changed notification to all
// current subscribers.
func (b *Bus) NotifyAccountsUpdated() {
	b.mu.RLock()
	listeners := make([]AccountsListener, 0, len(b.accountsSubs))
	for _, fn := range b.accountsSubs {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	b.logger.Debug("notifying accounts updated", "subscribers", len(listeners))

	for _, fn := range listeners {
		fn()
	}
}

// NotifyTransactionsUpdated delivers a transactions-changed notification for
// the given account to all current subscribers.
func (b *Bus) NotifyTransactionsUpdated(accountID string) {
	b.mu.RLock()
	listeners := make([]TransactionsListener, 0, len(b.txSubs))
	for _, fn := range b.txSubs {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	b.logger.Debug("notifying transactions updated",
		"account_id", accountID,
		"subscribers", len(listeners))

	for _, fn := range listeners {
		fn(accountID)
	}
}
