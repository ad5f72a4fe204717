package card

import (
	"context"
	"sync"
	"testing"

	"smartcommute/internal/account"
	"smartcommute/pkg/platform/sentinel"

	"github.com/stretchr/testify/suite"
)

type InMemoryCardStoreSuite struct {
	suite.Suite
	store *InMemoryCardStore
}

func (s *InMemoryCardStoreSuite) SetupTest() {
	s.store = New()
	s.Require().NoError(s.store.Seed([]account.CardAccount{
		{CardNumber: "4111", Amount: 100},
		{CardNumber: "4222", Amount: 0},
	}))
}

func TestInMemoryCardStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCardStoreSuite))
}

func (s *InMemoryCardStoreSuite) TestSeed() {
	s.Run("rejects duplicate card numbers", func() {
		store := New()
		err := store.Seed([]account.CardAccount{
			{CardNumber: "4111", Amount: 10},
			{CardNumber: "4111", Amount: 20},
		})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects negative amounts", func() {
		store := New()
		err := store.Seed([]account.CardAccount{{CardNumber: "4111", Amount: -1}})
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})
}

func (s *InMemoryCardStoreSuite) TestGetBalance() {
	s.Run("returns seeded balance", func() {
		balance, err := s.store.GetBalance(context.Background(), "4111")
		s.Require().NoError(err)
		s.Equal(100, balance)
	})

	s.Run("zero balance is a valid account", func() {
		balance, err := s.store.GetBalance(context.Background(), "4222")
		s.Require().NoError(err)
		s.Equal(0, balance)
	})

	s.Run("returns ErrNotFound for unknown card", func() {
		_, err := s.store.GetBalance(context.Background(), "9999")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryCardStoreSuite) TestRecharge() {
	s.Run("replaces the balance rather than adding", func() {
		newBalance, err := s.store.Recharge(context.Background(), "4111", 50)
		s.Require().NoError(err)
		s.Equal(50, newBalance)

		balance, err := s.store.GetBalance(context.Background(), "4111")
		s.Require().NoError(err)
		s.Equal(50, balance)
	})

	s.Run("returns ErrNotFound for unknown card", func() {
		_, err := s.store.Recharge(context.Background(), "9999", 50)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects zero amount", func() {
		_, err := s.store.Recharge(context.Background(), "4111", 0)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("rejects negative amount", func() {
		_, err := s.store.Recharge(context.Background(), "4111", -5)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})
}

// TestConcurrentRecharges drives parallel recharges and reads to catch torn
// values under -race. The final balance must be one of the written amounts.
func (s *InMemoryCardStoreSuite) TestConcurrentRecharges() {
	ctx := context.Background()
	amounts := []int{10, 20, 30, 40, 50}

	var wg sync.WaitGroup
	for _, amount := range amounts {
		wg.Add(1)
		go func(amount int) {
			defer wg.Done()
			_, err := s.store.Recharge(ctx, "4111", amount)
			s.NoError(err)
		}(amount)
		wg.Add(1)
		go func() {
			defer wg.Done()
			balance, err := s.store.GetBalance(ctx, "4111")
			s.NoError(err)
			s.True(balance == 100 || containsInt(amounts, balance), "read a balance nobody wrote: %d", balance)
		}()
	}
	wg.Wait()

	final, err := s.store.GetBalance(ctx, "4111")
	s.Require().NoError(err)
	s.True(containsInt(amounts, final), "final balance %d is not one of the recharged amounts", final)
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
