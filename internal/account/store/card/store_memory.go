package card

import (
	"context"
	"fmt"
	"sync"

	"smartcommute/internal/account"
	"smartcommute/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this pattern:
// - Return ErrNotFound (wrapped) when the card does not exist
// - Return ErrInvalidState (wrapped) for non-positive recharge amounts
// - Return nil for successful operations
//
// InMemoryCardStore is the card ledger: card number -> balance. The mutex
// linearizes every mutation of a given card against any other read or
// mutation of it, so readers never observe a torn balance and two
// concurrent recharges resolve to one of the two amounts, never a mix.
type InMemoryCardStore struct {
	mu       sync.RWMutex
	balances map[string]int
}

// New constructs an empty in-memory card ledger.
func New() *InMemoryCardStore {
	return &InMemoryCardStore{balances: make(map[string]int)}
}

// Seed bulk-loads card accounts at startup. Cards have no runtime creation
// path; this is the only way entries enter the ledger.
func (s *InMemoryCardStore) Seed(accounts []account.CardAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range accounts {
		if _, exists := s.balances[acc.CardNumber]; exists {
			return fmt.Errorf("duplicate card number %q in seed data: %w", acc.CardNumber, sentinel.ErrConflict)
		}
		if acc.Amount < 0 {
			return fmt.Errorf("negative amount for card %q in seed data: %w", acc.CardNumber, sentinel.ErrInvalidState)
		}
		s.balances[acc.CardNumber] = acc.Amount
	}
	return nil
}

// GetBalance returns the current balance of the card.
func (s *InMemoryCardStore) GetBalance(_ context.Context, cardNumber string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[cardNumber]
	if !ok {
		return 0, fmt.Errorf("card %q not found: %w", cardNumber, sentinel.ErrNotFound)
	}
	return balance, nil
}

// Recharge sets the card balance to amount and returns the new balance.
// Historical semantics: a recharge replaces the balance rather than adding
// to it. The service validates amount > 0; the ledger rejects non-positive
// amounts anyway so no path can produce a negative balance.
func (s *InMemoryCardStore) Recharge(_ context.Context, cardNumber string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("recharge amount must be positive, got %d: %w", amount, sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[cardNumber]; !ok {
		return 0, fmt.Errorf("card %q not found: %w", cardNumber, sentinel.ErrNotFound)
	}
	s.balances[cardNumber] = amount
	return amount, nil
}
