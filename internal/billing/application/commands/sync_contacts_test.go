package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	crmDomain "github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ListContacts(ctx context.Context) ([]domain.HoldedContact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HoldedContact), args.Error(1)
}

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Save(ctx context.Context, client *crmDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*crmDomain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmDomain.Client), args.Error(1)
}

func (m *mockClientRepo) FindByHoldedContactID(ctx context.Context, contactID string) (*crmDomain.Client, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmDomain.Client), args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context, status *crmDomain.ClientStatus) ([]*crmDomain.Client, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crmDomain.Client), args.Error(1)
}

func newTestClient(t *testing.T, name, email string) *crmDomain.Client {
	t.Helper()
	client, err := crmDomain.NewClient(name, email, "", crmDomain.ContractMonthly)
	require.NoError(t, err)
	return client
}

func TestSyncContactsHandler_Handle(t *testing.T) {
	directory := new(mockDirectory)
	clientRepo := new(mockClientRepo)
	handler := NewSyncContactsHandler(directory, clientRepo, nil)

	byName := newTestClient(t, "Acme Corp", "")
	byEmail := newTestClient(t, "Beta Agency", "hello@beta.test")
	linked := newTestClient(t, "Gamma Studio", "")
	linked.LinkHoldedContact("h-3")
	stranger := newTestClient(t, "Delta Labs", "")

	directory.On("ListContacts", mock.Anything).Return([]domain.HoldedContact{
		{ID: "h-1", Name: "ACME CORP"},
		{ID: "h-2", Name: "Beta GmbH", Email: "Hello@Beta.test"},
		{ID: "h-3", Name: "Gamma Studio"},
		{ID: "h-4", Name: "Unknown Ltd"},
		{Name: "no id, ignored"},
	}, nil)
	clientRepo.On("List", mock.Anything, (*crmDomain.ClientStatus)(nil)).
		Return([]*crmDomain.Client{byName, byEmail, linked, stranger}, nil)
	clientRepo.On("FindByHoldedContactID", mock.Anything, "h-3").Return(linked, nil)
	clientRepo.On("FindByHoldedContactID", mock.Anything, mock.Anything).
		Return(nil, crmDomain.ErrClientNotFound)
	clientRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Client")).Return(nil)

	result, err := handler.Handle(context.Background(), SyncContactsCommand{})

	require.NoError(t, err)
	assert.False(t, result.Disabled)
	assert.Equal(t, 4, result.Contacts)
	assert.Equal(t, 2, result.Linked)
	assert.Equal(t, 1, result.AlreadyLinked)
	assert.Equal(t, 1, result.Unmatched)

	// Name matches are case-insensitive; email matches cover renamed
	// contacts.
	assert.Equal(t, "h-1", byName.HoldedContactID())
	assert.Equal(t, "h-2", byEmail.HoldedContactID())
	assert.Equal(t, "", stranger.HoldedContactID())
	clientRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestSyncContactsHandler_Handle_Disabled(t *testing.T) {
	clientRepo := new(mockClientRepo)
	handler := NewSyncContactsHandler(nil, clientRepo, nil)

	result, err := handler.Handle(context.Background(), SyncContactsCommand{})

	require.NoError(t, err)
	assert.True(t, result.Disabled)
	clientRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSyncContactsHandler_Handle_DirectoryError(t *testing.T) {
	directory := new(mockDirectory)
	clientRepo := new(mockClientRepo)
	handler := NewSyncContactsHandler(directory, clientRepo, nil)

	directory.On("ListContacts", mock.Anything).Return(nil, assert.AnError)

	_, err := handler.Handle(context.Background(), SyncContactsCommand{})

	assert.ErrorIs(t, err, assert.AnError)
	clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
