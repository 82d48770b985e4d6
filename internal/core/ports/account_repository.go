package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// ClientUpdate carries the editable client fields. Empty fields are left as stored.
type ClientUpdate struct {
	Name   string
	Email  string
	Status domain.AccountStatus
}

// AccountRepository defines persistence for the users collection.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByEmailOrUsername matches either field; an empty username only matches by email.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Account, error)
	// FindClientsByIDs returns the client-role accounts among ids. Ids that are
	// malformed or belong to other roles are silently absent from the result.
	FindClientsByIDs(ctx context.Context, ids []string) ([]*domain.Account, error)

	// Client-scoped writes return domain.ErrClientNotFound when id is not a client.
	UpdateClient(ctx context.Context, id string, update ClientUpdate) (*domain.Account, error)
	UpdateClientStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error)
	DeleteClient(ctx context.Context, id string) error

	// Account-scoped writes return domain.ErrAccountNotFound when id is unknown.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateEmail(ctx context.Context, id, email string) error
}
