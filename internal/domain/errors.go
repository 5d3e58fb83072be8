package domain

import "errors"

var (
	// Transfer validation errors
	ErrEmitterNotFound   = errors.New("emitter account not found")
	ErrReceiverNotFound  = errors.New("receiver account not found")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Store errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoCurrentUser       = errors.New("no current user")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidName        = errors.New("name must be at least 3 characters")
	ErrInvalidPassword    = errors.New("password must be exactly 6 digits")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
