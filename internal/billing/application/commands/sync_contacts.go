package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	crmDomain "github.com/felixgeelhaar/pulso/internal/crm/domain"
)

// SyncContactsCommand links local clients to their Holded contacts.
type SyncContactsCommand struct{}

// SyncContactsResult summarizes a contact sync run.
type SyncContactsResult struct {
	// Disabled is set when no Holded integration is configured. The
	// sync is then a no-op, not an error.
	Disabled      bool
	Contacts      int
	Linked        int
	AlreadyLinked int
	Unmatched     int
}

// SyncContactsHandler handles the SyncContactsCommand. It only links
// existing clients to Holded contact ids; clients are never created
// from Holded data.
type SyncContactsHandler struct {
	directory  domain.ContactDirectory
	clientRepo crmDomain.ClientRepository
	logger     *slog.Logger
}

// NewSyncContactsHandler creates a new SyncContactsHandler. A nil
// directory means the integration is disabled.
func NewSyncContactsHandler(directory domain.ContactDirectory, clientRepo crmDomain.ClientRepository, logger *slog.Logger) *SyncContactsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncContactsHandler{
		directory:  directory,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Handle executes the SyncContactsCommand.
func (h *SyncContactsHandler) Handle(ctx context.Context, _ SyncContactsCommand) (*SyncContactsResult, error) {
	if h.directory == nil {
		return &SyncContactsResult{Disabled: true}, nil
	}

	contacts, err := h.directory.ListContacts(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := h.clientRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	result := &SyncContactsResult{}
	for _, contact := range contacts {
		if contact.ID == "" {
			continue
		}
		result.Contacts++

		if _, err := h.clientRepo.FindByHoldedContactID(ctx, contact.ID); err == nil {
			result.AlreadyLinked++
			continue
		} else if !errors.Is(err, crmDomain.ErrClientNotFound) {
			return nil, err
		}

		match := matchClient(clients, contact)
		if match == nil {
			result.Unmatched++
			continue
		}

		match.LinkHoldedContact(contact.ID)
		if err := h.clientRepo.Save(ctx, match); err != nil {
			return nil, err
		}
		result.Linked++

		h.logger.Info("client linked to holded contact",
			"client_id", match.ID(),
			"client_name", match.Name(),
			"holded_contact_id", contact.ID,
		)
	}

	return result, nil
}

// matchClient finds the first unlinked client whose name, or non-empty
// email, equals the contact's after normalization.
func matchClient(clients []*crmDomain.Client, contact domain.HoldedContact) *crmDomain.Client {
	name := normalize(contact.Name)
	email := normalize(contact.Email)

	for _, client := range clients {
		if client.HoldedContactID() != "" {
			continue
		}
		if name != "" && normalize(client.Name()) == name {
			return client
		}
		if email != "" && normalize(client.Email()) == email {
			return client
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
