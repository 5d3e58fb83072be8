package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking    AccountType = "CHECKING"
	AccountTypeSavings     AccountType = "SAVINGS"
	AccountTypeTermDeposit AccountType = "TERM_DEPOSIT"
)

// Account holds a balance for a user. ID is the internal identifier;
// AccountNumber is the IBAN-like external identifier. Both are valid
// alternate lookup keys, each owned by exactly one account at a time.
type Account struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	UserID        string          `json:"userId"`
	AccountNumber string          `json:"accountNumber"`
	Type          AccountType     `json:"type"`
	Currency      string          `json:"currency"`
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit subtracts amount from the balance, rounded to 2 decimal places.
func (a *Account) ApplyDebit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Sub(amount).Round(2)
	a.UpdatedAt = now
}

// ApplyCredit adds amount to the balance, rounded to 2 decimal places.
func (a *Account) ApplyCredit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Add(amount).Round(2)
	a.UpdatedAt = now
}

// NormalizeAccountNumber strips whitespace so IBANs in display format
// ("FR76 1234 ...") compare equal to their stored form.
func NormalizeAccountNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}
