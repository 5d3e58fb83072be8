package ledger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/bus"
	"github.com/demobank/demobank/internal/domain"
	"github.com/demobank/demobank/internal/storage"
)

func newTestStore(t *testing.T, blobs storage.Store) *Store {
	t.Helper()

	store := NewStore(blobs, bus.New(nil), zerolog.Nop())
	if err := store.LoadFromStorage(context.Background()); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

func TestLoadFromStorageSeedsDefaultUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())

	user := store.CurrentUser()
	if user == nil {
		t.Fatal("expected the default user to be bound")
	}
	if user.ClientCode != domain.CanonicalDemoClientCode {
		t.Errorf("expected client code %s, got %s", domain.CanonicalDemoClientCode, user.ClientCode)
	}
	if user.Name != "Utilisateur Démo" {
		t.Errorf("unexpected user name %q", user.Name)
	}

	accounts := store.CurrentAccounts()
	if len(accounts) != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", len(accounts))
	}

	checking, savings := accounts[0], accounts[1]
	if checking.Type != domain.AccountTypeChecking {
		t.Errorf("expected first account CHECKING, got %s", checking.Type)
	}
	if !checking.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected checking balance 1000, got %s", checking.Balance)
	}
	if checking.ID != "acc-checking-12345678" {
		t.Errorf("unexpected checking id %s", checking.ID)
	}
	if checking.AccountNumber != "FR76 1234 5678 0000 0000 0000 000" {
		t.Errorf("unexpected checking account number %q", checking.AccountNumber)
	}

	if savings.Type != domain.AccountTypeSavings {
		t.Errorf("expected second account SAVINGS, got %s", savings.Type)
	}
	if !savings.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected savings balance 2000, got %s", savings.Balance)
	}

	if len(store.CurrentTransactions()) != 0 {
		t.Error("expected empty transaction history after seeding")
	}
}

func TestLoadFromStorageReadsPersistedState(t *testing.T) {
	t.Parallel()

	blobs := storage.NewMemoryStore()
	ctx := context.Background()

	first := newTestStore(t, blobs)
	if err := first.AddTransaction(ctx, domain.Transaction{
		ID:                "tx-test",
		Amount:            decimal.NewFromInt(10),
		EmitterAccountID:  "acc-checking-12345678",
		ReceiverAccountID: "acc-savings-12345678",
		Status:            domain.TransactionStatusCompleted,
	}); err != nil {
		t.Fatalf("add transaction failed: %v", err)
	}

	// A second store over the same blobs sees the first one's state.
	second := newTestStore(t, blobs)

	user := second.CurrentUser()
	if user == nil || user.ClientCode != domain.CanonicalDemoClientCode {
		t.Fatalf("expected persisted current user, got %+v", user)
	}

	txs := second.CurrentTransactions()
	if len(txs) != 1 || txs[0].ID != "tx-test" {
		t.Fatalf("expected persisted transaction, got %+v", txs)
	}
}

func TestLoadFromStorageToleratesCorruptBlobs(t *testing.T) {
	t.Parallel()

	blobs := storage.NewMemoryStore()
	ctx := context.Background()

	if err := blobs.Save(ctx, StorageKeyAccounts, []byte("{not json")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := blobs.Save(ctx, StorageKeyTransactions, []byte("also not json")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	store := newTestStore(t, blobs)

	// Corrupt state degrades to empty and the default user is reseeded.
	user := store.CurrentUser()
	if user == nil || user.ClientCode != domain.CanonicalDemoClientCode {
		t.Fatalf("expected reseeded default user, got %+v", user)
	}
	if len(store.CurrentAccounts()) != 2 {
		t.Errorf("expected 2 reseeded accounts, got %d", len(store.CurrentAccounts()))
	}
}

func TestAccountByID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())

	acc, err := store.AccountByID("acc-savings-12345678")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if acc.Type != domain.AccountTypeSavings {
		t.Errorf("expected SAVINGS, got %s", acc.Type)
	}

	if _, err := store.AccountByID("acc-missing"); err != domain.ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountByNumberIgnoresWhitespace(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())

	tests := []struct {
		name   string
		number string
	}{
		{name: "display form", number: "FR76 1234 5678 0000 0000 0000 000"},
		{name: "compact form", number: "FR7612345678000000000000000"},
		{name: "odd spacing", number: " FR76  1234 5678 0000 0000 0000 000 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := store.AccountByNumber(tt.number)
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			if acc.ID != "acc-checking-12345678" {
				t.Errorf("expected checking account, got %s", acc.ID)
			}
		})
	}

	if _, err := store.AccountByNumber("FR76 9999 9999 0000 0000 0000 000"); err != domain.ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAddTransactionPrepends(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	for _, id := range []string{"tx-1", "tx-2", "tx-3"} {
		if err := store.AddTransaction(ctx, domain.Transaction{
			ID:                id,
			Amount:            decimal.NewFromInt(1),
			EmitterAccountID:  "acc-checking-12345678",
			ReceiverAccountID: "acc-savings-12345678",
		}); err != nil {
			t.Fatalf("add transaction failed: %v", err)
		}
	}

	txs := store.CurrentTransactions()
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	// Newest first.
	if txs[0].ID != "tx-3" || txs[1].ID != "tx-2" || txs[2].ID != "tx-1" {
		t.Errorf("unexpected order: %s, %s, %s", txs[0].ID, txs[1].ID, txs[2].ID)
	}
}

func TestAddTransactionWithoutCurrentUser(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(), bus.New(nil), zerolog.Nop())

	err := store.AddTransaction(context.Background(), domain.Transaction{ID: "tx-1"})
	if err != domain.ErrNoCurrentUser {
		t.Errorf("expected ErrNoCurrentUser, got %v", err)
	}
}

func TestUpdateAccountBalances(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	err := store.UpdateAccountBalances(ctx, domain.Transaction{
		EmitterAccountID:  "acc-checking-12345678",
		ReceiverAccountID: "acc-savings-12345678",
		Amount:            decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	checking, _ := store.AccountByID("acc-checking-12345678")
	savings, _ := store.AccountByID("acc-savings-12345678")

	if !checking.Balance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected checking 800, got %s", checking.Balance)
	}
	if !savings.Balance.Equal(decimal.NewFromInt(2200)) {
		t.Errorf("expected savings 2200, got %s", savings.Balance)
	}
}

func TestUpdateAccountBalancesExternalReceiver(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())

	err := store.UpdateAccountBalances(context.Background(), domain.Transaction{
		EmitterAccountID:  "acc-checking-12345678",
		ReceiverAccountID: "ext-FR7630006000011234567890189",
		Amount:            decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	checking, _ := store.AccountByID("acc-checking-12345678")
	savings, _ := store.AccountByID("acc-savings-12345678")

	if !checking.Balance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected checking 700, got %s", checking.Balance)
	}
	// Only the emitter side moves.
	if !savings.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected savings untouched at 2000, got %s", savings.Balance)
	}
}

func TestUpdateAccountBalancesEmitterNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())

	err := store.UpdateAccountBalances(context.Background(), domain.Transaction{
		EmitterAccountID:  "acc-missing",
		ReceiverAccountID: "acc-savings-12345678",
		Amount:            decimal.NewFromInt(10),
	})
	if err != domain.ErrEmitterNotFound {
		t.Errorf("expected ErrEmitterNotFound, got %v", err)
	}

	savings, _ := store.AccountByID("acc-savings-12345678")
	if !savings.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected savings unchanged at 2000, got %s", savings.Balance)
	}
}

func TestCreateNewUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	user := domain.User{ClientCode: "87654321", Name: "Nouvel Utilisateur"}
	store.CreateNewUser(ctx, user, NewUserInitialBalance)

	current := store.CurrentUser()
	if current == nil || current.ClientCode != "87654321" {
		t.Fatalf("expected new user bound, got %+v", current)
	}

	accounts := store.CurrentAccounts()
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	for _, acc := range accounts {
		if !acc.Balance.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected balance 250 for %s, got %s", acc.ID, acc.Balance)
		}
		if acc.UserID != "87654321" {
			t.Errorf("expected owner 87654321 for %s, got %s", acc.ID, acc.UserID)
		}
	}

	if accounts[0].ID != "acc-checking-87654321" {
		t.Errorf("unexpected checking id %s", accounts[0].ID)
	}
	if accounts[1].AccountNumber != "FR76 8765 4321 1111 1111 1111 111" {
		t.Errorf("unexpected savings account number %q", accounts[1].AccountNumber)
	}
}

func TestResetCurrentUserData(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	if err := store.UpdateAccountBalances(ctx, domain.Transaction{
		EmitterAccountID:  "acc-checking-12345678",
		ReceiverAccountID: "acc-savings-12345678",
		Amount:            decimal.NewFromInt(500),
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := store.ResetCurrentUserData(ctx, DefaultCheckingBalance, DefaultSavingsBalance); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	checking, _ := store.AccountByID("acc-checking-12345678")
	savings, _ := store.AccountByID("acc-savings-12345678")
	if !checking.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected checking back to 1000, got %s", checking.Balance)
	}
	if !savings.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected savings back to 2000, got %s", savings.Balance)
	}
	if len(store.CurrentTransactions()) != 0 {
		t.Error("expected cleared history")
	}
}

func TestResetCurrentUserDataNonCanonicalUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	store.CreateNewUser(ctx, domain.User{ClientCode: "87654321", Name: "Autre"}, NewUserInitialBalance)

	// The requested balances are ignored for non-canonical users.
	if err := store.ResetCurrentUserData(ctx, DefaultCheckingBalance, DefaultSavingsBalance); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	for _, acc := range store.CurrentAccounts() {
		if !acc.Balance.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected balance 250 for %s, got %s", acc.ID, acc.Balance)
		}
	}
}

func TestResetAllData(t *testing.T) {
	t.Parallel()

	blobs := storage.NewMemoryStore()
	store := newTestStore(t, blobs)
	ctx := context.Background()

	store.CreateNewUser(ctx, domain.User{ClientCode: "87654321", Name: "Autre"}, NewUserInitialBalance)

	store.ResetAllData(ctx)

	// Back to the canonical user and seed balances.
	user := store.CurrentUser()
	if user == nil || user.ClientCode != domain.CanonicalDemoClientCode {
		t.Fatalf("expected canonical user after reset, got %+v", user)
	}

	accounts := store.CurrentAccounts()
	if len(accounts) != 2 || !accounts[0].Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected reseeded accounts, got %+v", accounts)
	}

	// The other user's data is gone even across a reload.
	fresh := newTestStore(t, blobs)
	fresh.SwitchUser(ctx, domain.User{ClientCode: "87654321", Name: "Autre"})
	if len(fresh.CurrentAccounts()) != 0 {
		t.Error("expected the other user's accounts to be gone after reset")
	}
}

func TestSwitchUserReloadsFromStorage(t *testing.T) {
	t.Parallel()

	blobs := storage.NewMemoryStore()
	ctx := context.Background()

	writer := newTestStore(t, blobs)
	writer.CreateNewUser(ctx, domain.User{ClientCode: "87654321", Name: "Autre"}, NewUserInitialBalance)

	// A second store seeded before the write picks the new user up on switch.
	reader := NewStore(blobs, bus.New(nil), zerolog.Nop())
	reader.SwitchUser(ctx, domain.User{ClientCode: "87654321", Name: "Autre"})

	accounts := reader.CurrentAccounts()
	if len(accounts) != 2 {
		t.Fatalf("expected the other process's accounts after switch, got %d", len(accounts))
	}
	if accounts[0].ID != "acc-checking-87654321" {
		t.Errorf("unexpected account %s", accounts[0].ID)
	}
}

func TestQueriesWithoutCurrentUser(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(), bus.New(nil), zerolog.Nop())

	if user := store.CurrentUser(); user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
	if accounts := store.CurrentAccounts(); len(accounts) != 0 {
		t.Errorf("expected no accounts, got %d", len(accounts))
	}
	if txs := store.CurrentTransactions(); len(txs) != 0 {
		t.Errorf("expected no transactions, got %d", len(txs))
	}
	if _, err := store.AccountByID("acc-x"); err != domain.ErrNoCurrentUser {
		t.Errorf("expected ErrNoCurrentUser, got %v", err)
	}
	if _, err := store.TransactionByID("tx-x"); err != domain.ErrNoCurrentUser {
		t.Errorf("expected ErrNoCurrentUser, got %v", err)
	}
}

func TestTransactionsByAccount(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	transactions := []domain.Transaction{
		{ID: "tx-1", EmitterAccountID: "acc-checking-12345678", ReceiverAccountID: "acc-savings-12345678"},
		{ID: "tx-2", EmitterAccountID: "acc-savings-12345678", ReceiverAccountID: "ext-somewhere"},
		{ID: "tx-3", EmitterAccountID: "acc-checking-12345678", ReceiverAccountID: "ext-somewhere"},
	}
	for _, tx := range transactions {
		if err := store.AddTransaction(ctx, tx); err != nil {
			t.Fatalf("add transaction failed: %v", err)
		}
	}

	checking := store.TransactionsByAccount("acc-checking-12345678")
	if len(checking) != 2 {
		t.Errorf("expected 2 checking transactions, got %d", len(checking))
	}

	// Receiver side counts too.
	savings := store.TransactionsByAccount("acc-savings-12345678")
	if len(savings) != 2 {
		t.Errorf("expected 2 savings transactions, got %d", len(savings))
	}

	if none := store.TransactionsByAccount("acc-none"); len(none) != 0 {
		t.Errorf("expected no transactions, got %d", len(none))
	}
}

func TestStorePersistsThroughWriteFailures(t *testing.T) {
	t.Parallel()

	store := NewStore(failingStore{}, bus.New(nil), zerolog.Nop())
	ctx := context.Background()

	if err := store.LoadFromStorage(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// The in-memory mutation stands even though every save fails.
	err := store.UpdateAccountBalances(ctx, domain.Transaction{
		EmitterAccountID:  "acc-checking-12345678",
		ReceiverAccountID: "ext-somewhere",
		Amount:            decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	checking, err := store.AccountByID("acc-checking-12345678")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !checking.Balance.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected in-memory balance 900, got %s", checking.Balance)
	}
}

// failingStore rejects every operation except removal.
type failingStore struct{}

func (failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (failingStore) Save(ctx context.Context, key string, value []byte) error {
	return context.DeadlineExceeded
}

func (failingStore) Remove(ctx context.Context, key string) error { return nil }

func (failingStore) Ping(ctx context.Context) error { return context.DeadlineExceeded }
