package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// EventFields are the replaceable fields of an event.
type EventFields struct {
	Title       string
	Date        string
	Description string
	ClientIDs   []string
}

// EventRepository persists events. Every read and write is scoped by owner;
// reads return events with Clients expanded.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error)
	// Update and Delete return domain.ErrEventNotFound when no event with id
	// is owned by ownerID.
	Update(ctx context.Context, id, ownerID string, fields EventFields) (*domain.Event, error)
	Delete(ctx context.Context, id, ownerID string) error
	// RemoveClientRefs pulls clientID from every event and returns the number
	// of events modified.
	RemoveClientRefs(ctx context.Context, clientID string) (int64, error)
}
