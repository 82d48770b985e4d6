package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// AddClientInput carries the fields of the add-client form.
type AddClientInput struct {
	Name     string
	Email    string
	Password string
}

// ClientService manages client accounts on behalf of lawyers and admins.
type ClientService interface {
	ListClients(ctx context.Context) ([]*domain.Account, error)
	AddClient(ctx context.Context, in AddClientInput) (*domain.Account, error)
	EditClient(ctx context.Context, id string, update ClientUpdate) (*domain.Account, error)
	DeleteClient(ctx context.Context, id string) error
	HoldClient(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error)
}

// SettingsService handles self-service credential changes.
type SettingsService interface {
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	ChangeEmail(ctx context.Context, accountID, newEmail string) error
}

// ClientRemovalQueue receives ids of deleted clients so their event
// references can be cleaned up off the request path.
type ClientRemovalQueue interface {
	Enqueue(clientID string)
}
