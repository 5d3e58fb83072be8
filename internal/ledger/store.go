// Package ledger implements the demo ledger engine: an in-memory, per-user
// ledger of accounts and transactions mirrored to a named-blob store after
// every mutation. It is the single source of truth while the process is
// alive; the blob store only serializes state, it never mutates it.
package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/bus"
	"github.com/demobank/demobank/internal/domain"
	"github.com/demobank/demobank/internal/infrastructure/metrics"
	"github.com/demobank/demobank/internal/storage"
)

// Storage keys. Three independent blobs; a crash between two saves can leave
// them mutually inconsistent. Accepted limitation of the demo store.
const (
	StorageKeyAccounts     = "demo_user_accounts"
	StorageKeyTransactions = "demo_user_transactions"
	StorageKeyCurrentUser  = "demo_current_user"
)

// Store owns every user's accounts and transaction history plus the
// active-user pointer. All exported methods are safe for concurrent use
// within one process; two processes sharing the same blob store still race
// (last writer wins, no cross-process locking).
type Store struct {
	mu      sync.Mutex
	blobs   storage.Store
	retrier *storage.Retrier
	changes *bus.Bus
	logger  zerolog.Logger

	accounts     map[string][]domain.Account
	transactions map[string][]domain.Transaction
	currentUser  *domain.User
}

// NewStore creates an empty store bound to a blob store and a notification
// bus. Call LoadFromStorage before serving requests.
func NewStore(blobs storage.Store, changes *bus.Bus, logger zerolog.Logger) *Store {
	return &Store{
		blobs:        blobs,
		retrier:      storage.NewRetrier(),
		changes:      changes,
		logger:       logger.With().Str("component", "ledger").Logger(),
		accounts:     make(map[string][]domain.Account),
		transactions: make(map[string][]domain.Transaction),
	}
}

// Bus returns the change-notification bus observers subscribe to.
func (s *Store) Bus() *bus.Bus { return s.changes }

// pendingNotify collects bus notifications while the store lock is held so
// they fire after release. Listeners may call back into the store.
type pendingNotify struct {
	accounts   bool
	txAccounts []string
}

func (n pendingNotify) merge(other pendingNotify) pendingNotify {
	n.accounts = n.accounts || other.accounts
	n.txAccounts = append(n.txAccounts, other.txAccounts...)
	return n
}

func (n pendingNotify) fire(b *bus.Bus) {
	if b == nil {
		return
	}
	if n.accounts {
		b.NotifyAccountsUpdated()
	}
	for _, id := range n.txAccounts {
		b.NotifyTransactionsUpdated(id)
	}
}

// LoadFromStorage populates the in-memory maps from the persisted blobs.
// Called once at startup. If no user has any data after loading, the
// canonical demo user is seeded with a funded checking/savings pair.
func (s *Store) LoadFromStorage(ctx context.Context) error {
	s.mu.Lock()
	notify := s.loadLocked(ctx)

	if len(s.accounts) == 0 {
		notify = notify.merge(s.seedDefaultUserLocked(ctx))
	}
	s.mu.Unlock()

	notify.fire(s.changes)
	return nil
}

// loadLocked replaces in-memory state with whatever the blob store holds.
// Missing or corrupt blobs degrade to empty state: reads never fail hard.
func (s *Store) loadLocked(ctx context.Context) pendingNotify {
	s.accounts = make(map[string][]domain.Account)
	s.transactions = make(map[string][]domain.Transaction)
	s.currentUser = nil

	var notify pendingNotify

	if data, ok := s.loadBlob(ctx, StorageKeyAccounts); ok {
		if err := json.Unmarshal(data, &s.accounts); err != nil {
			s.logger.Warn().Err(err).Msg("corrupt accounts blob, starting empty")
			s.accounts = make(map[string][]domain.Account)
		}
	}

	if data, ok := s.loadBlob(ctx, StorageKeyTransactions); ok {
		if err := json.Unmarshal(data, &s.transactions); err != nil {
			s.logger.Warn().Err(err).Msg("corrupt transactions blob, starting empty")
			s.transactions = make(map[string][]domain.Transaction)
		}
	}

	if data, ok := s.loadBlob(ctx, StorageKeyCurrentUser); ok {
		var user domain.User
		if err := json.Unmarshal(data, &user); err != nil {
			s.logger.Warn().Err(err).Msg("corrupt current-user blob, no user bound")
		} else {
			// Do not persist here: the state was just read back.
			notify = notify.merge(s.setCurrentUserLocked(ctx, user, false))
		}
	}

	return notify
}

func (s *Store) loadBlob(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.blobs.Load(ctx, key)
	metrics.RecordPersistence("load", err)
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.Warn().Err(err).Str("key", key).Msg("blob store read failed")
		}
		return nil, false
	}
	return data, true
}

// seedDefaultUserLocked creates the canonical demo user with two pre-funded
// accounts and an empty history, and binds it as current user.
func (s *Store) seedDefaultUserLocked(ctx context.Context) pendingNotify {
	user := domain.CanonicalDemoUser()
	now := time.Now().UTC()

	s.accounts[user.ClientCode] = defaultAccounts(user, DefaultCheckingBalance, DefaultSavingsBalance, now)
	s.transactions[user.ClientCode] = []domain.Transaction{}

	s.logger.Info().Str("client_code", user.ClientCode).Msg("seeded default demo user")

	return s.setCurrentUserLocked(ctx, user, true)
}

// SetCurrentUser switches the active-user pointer, creating empty ledger
// entries for a user seen for the first time, and persists unless told not
// to (the persist=false path exists only for loads from storage).
func (s *Store) SetCurrentUser(ctx context.Context, user domain.User, persist bool) {
	s.mu.Lock()
	notify := s.setCurrentUserLocked(ctx, user, persist)
	s.mu.Unlock()

	notify.fire(s.changes)
}

func (s *Store) setCurrentUserLocked(ctx context.Context, user domain.User, persist bool) pendingNotify {
	s.currentUser = &user

	// Get-or-create is confined to this one mutation path; query paths stay
	// pure and never insert entries.
	if _, ok := s.accounts[user.ClientCode]; !ok {
		s.accounts[user.ClientCode] = []domain.Account{}
	}
	if _, ok := s.transactions[user.ClientCode]; !ok {
		s.transactions[user.ClientCode] = []domain.Transaction{}
	}

	if persist {
		s.persistLocked(ctx)
	}

	notify := pendingNotify{accounts: true}
	for _, acc := range s.accounts[user.ClientCode] {
		notify.txAccounts = append(notify.txAccounts, acc.ID)
	}
	return notify
}

// CurrentUser returns the active user, or nil if none is bound.
func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

// CurrentAccounts returns a snapshot of the current user's accounts; empty
// when no user is bound.
func (s *Store) CurrentAccounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return []domain.Account{}
	}
	return cloneAccounts(s.accounts[s.currentUser.ClientCode])
}

// CurrentTransactions returns a snapshot of the current user's transaction
// history, newest first; empty when no user is bound.
func (s *Store) CurrentTransactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return []domain.Transaction{}
	}
	return cloneTransactions(s.transactions[s.currentUser.ClientCode])
}

// AccountByID looks up one of the current user's accounts by internal id.
func (s *Store) AccountByID(id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil, domain.ErrNoCurrentUser
	}

	for _, acc := range s.accounts[s.currentUser.ClientCode] {
		if acc.ID == id {
			out := acc
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// AccountByNumber looks up one of the current user's accounts by IBAN-like
// account number. Both sides are compared with whitespace stripped, since
// the display format contains spaces.
func (s *Store) AccountByNumber(number string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil, domain.ErrNoCurrentUser
	}

	want := domain.NormalizeAccountNumber(number)
	for _, acc := range s.accounts[s.currentUser.ClientCode] {
		if domain.NormalizeAccountNumber(acc.AccountNumber) == want {
			out := acc
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// TransactionsByAccount returns the current user's transactions where the
// account is emitter or receiver. No order is imposed here; callers sort.
func (s *Store) TransactionsByAccount(accountID string) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return []domain.Transaction{}
	}

	var filtered []domain.Transaction
	for _, tx := range s.transactions[s.currentUser.ClientCode] {
		if tx.EmitterAccountID == accountID || tx.ReceiverAccountID == accountID {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// TransactionByID looks up one of the current user's transactions.
func (s *Store) TransactionByID(id string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil, domain.ErrNoCurrentUser
	}

	for _, tx := range s.transactions[s.currentUser.ClientCode] {
		if tx.ID == id {
			out := tx
			return &out, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// AddTransaction prepends tx to the current user's history (newest first)
// and persists.
func (s *Store) AddTransaction(ctx context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		s.logger.Error().Msg("cannot add transaction, no current user")
		return domain.ErrNoCurrentUser
	}

	code := s.currentUser.ClientCode
	s.transactions[code] = append([]domain.Transaction{tx}, s.transactions[code]...)

	s.logger.Debug().
		Str("transaction_id", tx.ID).
		Int("count", len(s.transactions[code])).
		Msg("transaction added")

	s.persistLocked(ctx)
	return nil
}

// UpdateAccountBalances applies the two-sided balance effect of tx to the
// current user's accounts and persists. The emitter must be one of the
// current user's accounts; a receiver that is not (external, or owned by
// another user) leaves only the emitter side debited.
func (s *Store) UpdateAccountBalances(ctx context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		s.logger.Error().Msg("cannot update balances, no current user")
		return domain.ErrNoCurrentUser
	}

	accounts := s.accounts[s.currentUser.ClientCode]

	emitterIdx := -1
	receiverIdx := -1
	for i := range accounts {
		switch accounts[i].ID {
		case tx.EmitterAccountID:
			emitterIdx = i
		case tx.ReceiverAccountID:
			receiverIdx = i
		}
	}

	if emitterIdx == -1 {
		s.logger.Error().
			Str("emitter_account_id", tx.EmitterAccountID).
			Msg("emitter account not found")
		return domain.ErrEmitterNotFound
	}

	now := time.Now().UTC()
	accounts[emitterIdx].ApplyDebit(tx.Amount, now)

	if receiverIdx != -1 {
		accounts[receiverIdx].ApplyCredit(tx.Amount, now)
	} else {
		s.logger.Debug().
			Str("receiver_account_id", tx.ReceiverAccountID).
			Msg("receiver is external or belongs to another user, no credit applied")
	}

	s.persistLocked(ctx)
	return nil
}

// CreateNewUser registers a user with the default checking/savings pair,
// each funded with initialBalance, and binds it as current user. Any
// pre-existing data for the clientCode is overwritten.
func (s *Store) CreateNewUser(ctx context.Context, user domain.User, initialBalance decimal.Decimal) {
	s.mu.Lock()

	if _, ok := s.accounts[user.ClientCode]; ok {
		s.logger.Warn().
			Str("client_code", user.ClientCode).
			Msg("user already exists, overwriting data")
	}

	now := time.Now().UTC()
	s.accounts[user.ClientCode] = defaultAccounts(user, initialBalance, initialBalance, now)
	s.transactions[user.ClientCode] = []domain.Transaction{}

	s.logger.Info().
		Str("client_code", user.ClientCode).
		Str("initial_balance", initialBalance.StringFixed(2)).
		Msg("new user created")

	notify := s.setCurrentUserLocked(ctx, user, true)
	s.mu.Unlock()

	notify.fire(s.changes)
}

// ResetCurrentUserData regenerates the current user's two default accounts
// and clears its history. Users other than the canonical demo user always
// get the lower new-user balances regardless of the arguments.
func (s *Store) ResetCurrentUserData(ctx context.Context, checking, savings decimal.Decimal) error {
	s.mu.Lock()

	if s.currentUser == nil {
		s.mu.Unlock()
		return domain.ErrNoCurrentUser
	}

	user := *s.currentUser
	if user.ClientCode != domain.CanonicalDemoClientCode {
		checking = NewUserInitialBalance
		savings = NewUserInitialBalance
	}

	now := time.Now().UTC()
	s.accounts[user.ClientCode] = defaultAccounts(user, checking, savings, now)
	s.transactions[user.ClientCode] = []domain.Transaction{}

	s.logger.Info().Str("client_code", user.ClientCode).Msg("user data reset")

	s.persistLocked(ctx)

	notify := pendingNotify{accounts: true}
	for _, acc := range s.accounts[user.ClientCode] {
		notify.txAccounts = append(notify.txAccounts, acc.ID)
	}
	s.mu.Unlock()

	notify.fire(s.changes)
	return nil
}

// ResetAllData clears every user's data and the persisted blobs, then
// reseeds the default user.
func (s *Store) ResetAllData(ctx context.Context) {
	s.mu.Lock()

	s.accounts = make(map[string][]domain.Account)
	s.transactions = make(map[string][]domain.Transaction)
	s.currentUser = nil

	for _, key := range []string{StorageKeyAccounts, StorageKeyTransactions, StorageKeyCurrentUser} {
		err := s.blobs.Remove(ctx, key)
		metrics.RecordPersistence("remove", err)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("blob store remove failed")
		}
	}

	s.logger.Info().Msg("all data reset")

	notify := s.seedDefaultUserLocked(ctx)
	s.mu.Unlock()

	notify.fire(s.changes)
}

// SwitchUser forces a reload from the blob store before re-selecting the
// given user, picking up state written by another process sharing the store.
func (s *Store) SwitchUser(ctx context.Context, user domain.User) {
	s.mu.Lock()
	notify := s.loadLocked(ctx)
	notify = notify.merge(s.setCurrentUserLocked(ctx, user, true))
	s.mu.Unlock()

	notify.fire(s.changes)
}

// persistLocked mirrors the full in-memory state to the blob store. Write
// failures are logged and swallowed: the in-memory mutation stands and the
// session stays usable, at the cost of losing unpersisted changes on reload.
func (s *Store) persistLocked(ctx context.Context) {
	s.saveBlob(ctx, StorageKeyAccounts, s.accounts)
	s.saveBlob(ctx, StorageKeyTransactions, s.transactions)

	if s.currentUser != nil {
		s.saveBlob(ctx, StorageKeyCurrentUser, s.currentUser)
	}
}

func (s *Store) saveBlob(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to marshal blob")
		return
	}

	err = s.retrier.Retry(ctx, func() error {
		return s.blobs.Save(ctx, key, data)
	})
	metrics.RecordPersistence("save", err)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("blob store write failed, state kept in memory only")
	}
}

func cloneAccounts(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	copy(out, accounts)
	return out
}

func cloneTransactions(transactions []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(transactions))
	copy(out, transactions)
	return out
}
