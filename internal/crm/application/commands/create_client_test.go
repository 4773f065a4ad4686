package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockClientRepo is a mock implementation of domain.ClientRepository.
type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Save(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) FindByHoldedContactID(ctx context.Context, contactID string) (*domain.Client, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context, status *domain.ClientStatus) ([]*domain.Client, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

// mockCommRepo is a mock implementation of domain.CommunicationRepository.
type mockCommRepo struct {
	mock.Mock
}

func (m *mockCommRepo) Save(ctx context.Context, comm *domain.Communication) error {
	args := m.Called(ctx, comm)
	return args.Error(0)
}

func (m *mockCommRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Communication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Communication), args.Error(1)
}

func (m *mockCommRepo) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.Communication, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Communication), args.Error(1)
}

func (m *mockCommRepo) FindOverdueFollowups(ctx context.Context, now time.Time) ([]*domain.Communication, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Communication), args.Error(1)
}

func TestCreateClientHandler(t *testing.T) {
	repo := new(mockClientRepo)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Client")).Return(nil)

	handler := NewCreateClientHandler(repo)
	budget := 1200.0
	result, err := handler.Handle(context.Background(), CreateClientCommand{
		Name:          "Acme GmbH",
		Email:         "ops@acme.test",
		ContractType:  "monthly",
		Currency:      "usd",
		MonthlyBudget: &budget,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ClientID)

	saved := repo.Calls[0].Arguments.Get(1).(*domain.Client)
	assert.Equal(t, "Acme GmbH", saved.Name())
	assert.Equal(t, "USD", saved.Currency())
	amount, set := saved.MonthlyBudget()
	assert.True(t, set)
	assert.Equal(t, 1200.0, amount)
	repo.AssertExpectations(t)
}

func TestCreateClientHandler_InvalidInput(t *testing.T) {
	repo := new(mockClientRepo)
	handler := NewCreateClientHandler(repo)

	_, err := handler.Handle(context.Background(), CreateClientCommand{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrClientEmptyName)

	negative := -5.0
	_, err = handler.Handle(context.Background(), CreateClientCommand{Name: "Acme", MonthlyBudget: &negative})
	assert.ErrorIs(t, err, domain.ErrClientNegativeBudget)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateClientHandler_SaveFails(t *testing.T) {
	repo := new(mockClientRepo)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	handler := NewCreateClientHandler(repo)
	_, err := handler.Handle(context.Background(), CreateClientCommand{Name: "Acme"})
	assert.EqualError(t, err, "connection reset")
}
