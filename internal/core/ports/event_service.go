package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// EventInput is the DTO passed from the transport layer to EventService.
type EventInput struct {
	Title       string
	Date        string
	Description string
	ClientIDs   []string
}

// EventService manages calendar events owned by the calling principal.
type EventService interface {
	CreateEvent(ctx context.Context, ownerID string, in EventInput) (*domain.Event, error)
	ListEvents(ctx context.Context, ownerID string) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, id, ownerID string, in EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id, ownerID string) error
}
