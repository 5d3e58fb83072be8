package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name     string
		emitter  string
		receiver string
		amount   decimal.Decimal
		wantErr  error
	}{
		{
			name:     "valid transaction",
			emitter:  "acc-checking-12345678",
			receiver: "acc-savings-12345678",
			amount:   decimal.NewFromInt(100),
			wantErr:  nil,
		},
		{
			name:     "same emitter and receiver",
			emitter:  "acc-checking-12345678",
			receiver: "acc-checking-12345678",
			amount:   decimal.NewFromInt(100),
			wantErr:  ErrSelfTransfer,
		},
		{
			name:     "zero amount",
			emitter:  "acc-checking-12345678",
			receiver: "acc-savings-12345678",
			amount:   decimal.Zero,
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			emitter:  "acc-checking-12345678",
			receiver: "acc-savings-12345678",
			amount:   decimal.NewFromInt(-50),
			wantErr:  ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{
				EmitterAccountID:  tt.emitter,
				ReceiverAccountID: tt.receiver,
				Amount:            tt.amount,
			}

			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
