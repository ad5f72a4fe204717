package service

import (
	"context"
	"errors"
	"fmt"

	"smartcommute/internal/account"
	"smartcommute/internal/platform/metrics"
	dErrors "smartcommute/pkg/domain-errors"
	"smartcommute/pkg/platform/sentinel"
)

// UserStore is the slice of the user directory the service needs.
type UserStore interface {
	FindByID(ctx context.Context, id int) (*account.User, error)
	FindByCredential(ctx context.Context, username, password string) (*account.User, error)
	Insert(ctx context.Context, candidate account.UserCandidate) (*account.User, error)
}

// CardStore is the slice of the card ledger the service needs.
type CardStore interface {
	GetBalance(ctx context.Context, cardNumber string) (int, error)
	Recharge(ctx context.Context, cardNumber string, amount int) (int, error)
}

// Service validates inbound requests and orchestrates the two stores. It is
// the only component transport handlers call; stores stay behind it. Every
// operation returns a value or a coded domain error, never a panic for
// expected conditions.
type Service struct {
	users   UserStore
	cards   CardStore
	metrics *metrics.Metrics
}

// New creates the account service. metrics may be nil in tests.
func New(users UserStore, cards CardStore, m *metrics.Metrics) *Service {
	return &Service{users: users, cards: cards, metrics: m}
}

// GetBalance returns the balance of the given card.
func (s *Service) GetBalance(ctx context.Context, cardNumber string) (int, error) {
	if cardNumber == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "card number must not be empty")
	}
	balance, err := s.cards.GetBalance(ctx, cardNumber)
	if err != nil {
		return 0, translateCardError(cardNumber, err)
	}
	return balance, nil
}

// Recharge sets the card balance to amount (the historical replacement
// semantics, see the ledger) and returns the new balance.
func (s *Service) Recharge(ctx context.Context, cardNumber string, amount int) (int, error) {
	if cardNumber == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "card number must not be empty")
	}
	if amount <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("recharge amount must be positive, got %d", amount))
	}
	balance, err := s.cards.Recharge(ctx, cardNumber, amount)
	if err != nil {
		return 0, translateCardError(cardNumber, err)
	}
	if s.metrics != nil {
		s.metrics.IncrementRecharges()
	}
	return balance, nil
}

// Authenticate returns the record matching the credential pair. A mismatch
// is CodeUnauthorized, not CodeNotFound: at this layer a wrong password and
// a missing account are deliberately indistinguishable facts with distinct
// observability from bad input.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*account.User, error) {
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "username and password must not be empty")
	}
	record, err := s.users.FindByCredential(ctx, username, password)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			if s.metrics != nil {
				s.metrics.IncrementLoginsRejected()
			}
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.New(dErrors.CodeInternal, "credential lookup failed")
	}
	if s.metrics != nil {
		s.metrics.IncrementLoginsSucceeded()
	}
	return record, nil
}

// GetUser returns the record with the given id.
func (s *Service) GetUser(ctx context.Context, id int) (*account.User, error) {
	if id < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("user id must not be negative, got %d", id))
	}
	record, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("user %d not found", id))
		}
		return nil, dErrors.New(dErrors.CodeInternal, "user lookup failed")
	}
	return record, nil
}

// CreateUser registers a new user. The directory assigns the id and
// persists the record set as a write-behind side effect.
func (s *Service) CreateUser(ctx context.Context, candidate account.UserCandidate) (*account.User, error) {
	if candidate.Username == "" || candidate.Password == "" || candidate.CardNumber == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "username, password and card number must not be empty")
	}
	record, err := s.users.Insert(ctx, candidate)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "user creation failed")
	}
	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	return record, nil
}

func translateCardError(cardNumber string, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("card %q not found", cardNumber))
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidInput, err.Error())
	default:
		return dErrors.New(dErrors.CodeInternal, "card ledger operation failed")
	}
}
