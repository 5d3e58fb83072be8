package bus

import (
	"sync"
	"testing"
)

func TestBusAccountsFanOut(t *testing.T) {
	t.Parallel()

	b := New(nil)

	var calls1, calls2 int
	b.SubscribeAccounts(func() { calls1++ })
	b.SubscribeAccounts(func() { calls2++ })

	b.NotifyAccountsUpdated()
	b.NotifyAccountsUpdated()

	if calls1 != 2 || calls2 != 2 {
		t.Errorf("expected both listeners called twice, got %d and %d", calls1, calls2)
	}
}

func TestBusTransactionsCarryAccountID(t *testing.T) {
	t.Parallel()

	b := New(nil)

	var got []string
	b.SubscribeTransactions(func(accountID string) {
		got = append(got, accountID)
	})

	b.NotifyTransactionsUpdated("acc-checking-12345678")
	b.NotifyTransactionsUpdated("acc-savings-12345678")

	if len(got) != 2 || got[0] != "acc-checking-12345678" || got[1] != "acc-savings-12345678" {
		t.Errorf("unexpected notifications: %v", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	t.Parallel()

	b := New(nil)

	calls := 0
	unsubscribe := b.SubscribeAccounts(func() { calls++ })

	b.NotifyAccountsUpdated()
	unsubscribe()
	b.NotifyAccountsUpdated()

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestBusNotifyWithoutSubscribers(t *testing.T) {
	t.Parallel()

	b := New(nil)

	// Must not panic or block.
	b.NotifyAccountsUpdated()
	b.NotifyTransactionsUpdated("acc-checking-12345678")
}

func TestBusLateSubscriberMissesPastNotifications(t *testing.T) {
	t.Parallel()

	b := New(nil)

	b.NotifyAccountsUpdated()

	calls := 0
	b.SubscribeAccounts(func() { calls++ })

	if calls != 0 {
		t.Errorf("late subscriber must not see past notifications, got %d calls", calls)
	}
}

func TestBusConcurrentSubscribeAndNotify(t *testing.T) {
	t.Parallel()

	b := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsubscribe := b.SubscribeAccounts(func() {})
			unsubscribe()
		}()
		go func() {
			defer wg.Done()
			b.NotifyAccountsUpdated()
		}()
	}
	wg.Wait()
}
