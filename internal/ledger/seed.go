package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demobank/demobank/internal/domain"
)

// Seeding balances. The canonical demo user starts with a funded checking
// and savings pair; every other user gets the lower new-user balance on both.
var (
	DefaultCheckingBalance = decimal.NewFromInt(1000)
	DefaultSavingsBalance  = decimal.NewFromInt(2000)
	NewUserInitialBalance  = decimal.NewFromInt(250)
)

const (
	checkingIBANSuffix = "0000 0000 0000 000"
	savingsIBANSuffix  = "1111 1111 1111 111"
)

// generateIBAN derives the IBAN-like display number from the clientCode, so
// account numbers are deterministic per user.
func generateIBAN(clientCode, suffix string) string {
	if len(clientCode) < 8 {
		return fmt.Sprintf("FR76 %s %s", clientCode, suffix)
	}
	return fmt.Sprintf("FR76 %s %s %s", clientCode[:4], clientCode[4:8], suffix)
}

// defaultAccounts builds the checking/savings pair every user starts with.
func defaultAccounts(user domain.User, checking, savings decimal.Decimal, now time.Time) []domain.Account {
	return []domain.Account{
		{
			ID:            "acc-checking-" + user.ClientCode,
			Label:         "Compte Courant",
			Balance:       checking.Round(2),
			CreatedAt:     now,
			UpdatedAt:     now,
			UserID:        user.ClientCode,
			AccountNumber: generateIBAN(user.ClientCode, checkingIBANSuffix),
			Type:          domain.AccountTypeChecking,
			Currency:      "EUR",
		},
		{
			ID:            "acc-savings-" + user.ClientCode,
			Label:         "Livret Épargne",
			Balance:       savings.Round(2),
			CreatedAt:     now,
			UpdatedAt:     now,
			UserID:        user.ClientCode,
			AccountNumber: generateIBAN(user.ClientCode, savingsIBANSuffix),
			Type:          domain.AccountTypeSavings,
			Currency:      "EUR",
		},
	}
}
