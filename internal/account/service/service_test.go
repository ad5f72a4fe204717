package service

import (
	"context"
	"testing"

	"smartcommute/internal/account"
	cardstore "smartcommute/internal/account/store/card"
	userstore "smartcommute/internal/account/store/user"
	dErrors "smartcommute/pkg/domain-errors"

	"github.com/stretchr/testify/suite"
)

// The service is exercised against the real in-memory stores: the contract
// under test is the validate-then-delegate behavior, and the stores are
// cheap enough that mocking them would only blur it.
type ServiceSuite struct {
	suite.Suite
	users   *userstore.InMemoryUserStore
	cards   *cardstore.InMemoryCardStore
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.users = userstore.New(nil)
	s.cards = cardstore.New()
	s.Require().NoError(s.cards.Seed([]account.CardAccount{{CardNumber: "4111", Amount: 100}}))
	s.service = New(s.users, s.cards, nil)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestGetBalance() {
	s.Run("returns the balance of a known card", func() {
		balance, err := s.service.GetBalance(context.Background(), "4111")
		s.Require().NoError(err)
		s.Equal(100, balance)
	})

	s.Run("empty card number is invalid input", func() {
		_, err := s.service.GetBalance(context.Background(), "")
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown card is not found", func() {
		_, err := s.service.GetBalance(context.Background(), "9999")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestRecharge() {
	s.Run("sets the balance and reports it", func() {
		balance, err := s.service.Recharge(context.Background(), "4111", 50)
		s.Require().NoError(err)
		s.Equal(50, balance)

		balance, err = s.service.GetBalance(context.Background(), "4111")
		s.Require().NoError(err)
		s.Equal(50, balance, "recharge replaces the balance, it does not add")
	})

	s.Run("unknown card is not found", func() {
		_, err := s.service.Recharge(context.Background(), "9999", 50)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("zero amount is invalid input", func() {
		_, err := s.service.Recharge(context.Background(), "4111", 0)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("negative amount is invalid input", func() {
		_, err := s.service.Recharge(context.Background(), "4111", -5)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("empty card number is invalid input regardless of amount", func() {
		_, err := s.service.Recharge(context.Background(), "", 50)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestAuthenticate() {
	s.Run("returns the record for an exact credential match", func() {
		created, err := s.service.CreateUser(context.Background(), account.UserCandidate{
			Username: "alice", Password: "pw1", CardNumber: "4111",
		})
		s.Require().NoError(err)

		record, err := s.service.Authenticate(context.Background(), "alice", "pw1")
		s.Require().NoError(err)
		s.Equal(created.ID, record.ID)
		s.Equal("alice", record.Username)
	})

	s.Run("wrong password is unauthorized, not not-found", func() {
		_, err := s.service.CreateUser(context.Background(), account.UserCandidate{
			Username: "alice", Password: "pw1", CardNumber: "4111",
		})
		s.Require().NoError(err)

		_, err = s.service.Authenticate(context.Background(), "alice", "wrong")
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown username is unauthorized", func() {
		_, err := s.service.Authenticate(context.Background(), "nobody", "pw")
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	s.Run("empty fields are invalid input", func() {
		_, err := s.service.Authenticate(context.Background(), "", "pw")
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))

		_, err = s.service.Authenticate(context.Background(), "alice", "")
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestGetUser() {
	s.Run("negative id is invalid input, distinct from not found", func() {
		_, err := s.service.GetUser(context.Background(), -1)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("absent id is not found", func() {
		_, err := s.service.GetUser(context.Background(), 7)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

// TestRegistrationFlow walks the documented example: alice gets id 0, bob
// id 1, lookups and logins behave accordingly.
func (s *ServiceSuite) TestRegistrationFlow() {
	ctx := context.Background()

	alice, err := s.service.CreateUser(ctx, account.UserCandidate{Username: "alice", Password: "pw1", CardNumber: "4111"})
	s.Require().NoError(err)
	s.Equal(0, alice.ID)

	bob, err := s.service.CreateUser(ctx, account.UserCandidate{Username: "bob", Password: "pw2", CardNumber: "4222"})
	s.Require().NoError(err)
	s.Equal(1, bob.ID)

	found, err := s.service.GetUser(ctx, 0)
	s.Require().NoError(err)
	s.Equal("alice", found.Username)

	_, err = s.service.Authenticate(ctx, "alice", "wrong")
	s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestCreateUserValidation() {
	ctx := context.Background()
	for _, candidate := range []account.UserCandidate{
		{Username: "", Password: "pw", CardNumber: "4111"},
		{Username: "alice", Password: "", CardNumber: "4111"},
		{Username: "alice", Password: "pw", CardNumber: ""},
	} {
		_, err := s.service.CreateUser(ctx, candidate)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput), "candidate %+v should be rejected", candidate)
	}
}
