// Package session binds "a user is now authenticated" events to the ledger
// store's active-user pointer. Credential rules here are the demo ones: no
// user database, no password hashing, one canonical login pair.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/demobank/demobank/internal/domain"
	"github.com/demobank/demobank/internal/infrastructure/auth"
	"github.com/demobank/demobank/internal/infrastructure/metrics"
	"github.com/demobank/demobank/internal/ledger"
)

// canonicalDemoPassword is the only accepted login password, paired with the
// canonical demo clientCode.
const canonicalDemoPassword = "123456"

// Service reacts to login/registration by pointing the ledger store at the
// authenticated user's data.
type Service struct {
	store  *ledger.Store
	tokens *auth.JWTManager
	logger zerolog.Logger
}

// NewService creates a new session Service.
func NewService(store *ledger.Store, tokens *auth.JWTManager, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// LoginResult is returned on successful login or registration.
type LoginResult struct {
	Token string
	User  domain.User
}

// Login authenticates the canonical demo user. Any other pair is rejected;
// the demo has no credential store to check against.
func (s *Service) Login(ctx context.Context, clientCode, password string) (*LoginResult, error) {
	if clientCode != domain.CanonicalDemoClientCode || password != canonicalDemoPassword {
		s.logger.Warn().Str("client_code", clientCode).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	user := domain.CanonicalDemoUser()

	// Reload before binding so state written by another session is seen.
	s.store.SwitchUser(ctx, user)

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_code", user.ClientCode).Msg("user logged in")
	return &LoginResult{Token: token, User: user}, nil
}

// Register creates a demo user with a random 8-digit clientCode and the
// default pair of new-user accounts, binds it as current user and returns a
// session token.
func (s *Service) Register(ctx context.Context, name, password string) (*LoginResult, error) {
	if utf8.RuneCountInString(name) < 3 {
		return nil, domain.ErrInvalidName
	}
	if !isSixDigits(password) {
		return nil, domain.ErrInvalidPassword
	}

	user := domain.User{
		ClientCode: generateClientCode(),
		Name:       name,
	}

	s.store.CreateNewUser(ctx, user, ledger.NewUserInitialBalance)
	metrics.RecordUserCreated()

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_code", user.ClientCode).Msg("user registered")
	return &LoginResult{Token: token, User: user}, nil
}

func isSixDigits(password string) bool {
	if len(password) != 6 {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// generateClientCode returns a random 8-digit code. Collisions overwrite the
// older user's data, same as the original demo.
func generateClientCode() string {
	return fmt.Sprintf("%08d", 10000000+rand.IntN(90000000))
}
