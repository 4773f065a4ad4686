package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateClientBudgetHandler_Set(t *testing.T) {
	client, _ := domain.NewClient("Acme", "", "", domain.ContractMonthly)

	repo := new(mockClientRepo)
	repo.On("FindByID", mock.Anything, client.ID()).Return(client, nil)
	repo.On("Save", mock.Anything, client).Return(nil)

	handler := NewUpdateClientBudgetHandler(repo)
	budget := 800.0
	err := handler.Handle(context.Background(), UpdateClientBudgetCommand{
		ClientID: client.ID(),
		Budget:   &budget,
	})

	require.NoError(t, err)
	amount, set := client.MonthlyBudget()
	assert.True(t, set)
	assert.Equal(t, 800.0, amount)
}

func TestUpdateClientBudgetHandler_Clear(t *testing.T) {
	client, _ := domain.NewClient("Acme", "", "", domain.ContractMonthly)
	require.NoError(t, client.SetMonthlyBudget(500))

	repo := new(mockClientRepo)
	repo.On("FindByID", mock.Anything, client.ID()).Return(client, nil)
	repo.On("Save", mock.Anything, client).Return(nil)

	handler := NewUpdateClientBudgetHandler(repo)
	err := handler.Handle(context.Background(), UpdateClientBudgetCommand{ClientID: client.ID()})

	require.NoError(t, err)
	_, set := client.MonthlyBudget()
	assert.False(t, set)
}

func TestUpdateClientBudgetHandler_Negative(t *testing.T) {
	client, _ := domain.NewClient("Acme", "", "", domain.ContractMonthly)

	repo := new(mockClientRepo)
	repo.On("FindByID", mock.Anything, client.ID()).Return(client, nil)

	handler := NewUpdateClientBudgetHandler(repo)
	negative := -10.0
	err := handler.Handle(context.Background(), UpdateClientBudgetCommand{
		ClientID: client.ID(),
		Budget:   &negative,
	})

	assert.ErrorIs(t, err, domain.ErrClientNegativeBudget)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
