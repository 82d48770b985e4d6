package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

type eventService struct {
	events   ports.EventRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, accounts ports.AccountRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, accounts: accounts, log: log, now: time.Now}
}

// CreateEvent validates the input, resolves every client reference and stores
// the event owned by ownerID. Nothing is written when any reference fails.
func (s *eventService) CreateEvent(ctx context.Context, ownerID string, in ports.EventInput) (*domain.Event, error) {
	fields, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event, err := s.events.Create(ctx, &domain.Event{
		Title:       fields.Title,
		Date:        fields.Date,
		Description: fields.Description,
		ClientIDs:   fields.ClientIDs,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", event.ID).Str("owner_id", ownerID).Int("clients", len(event.ClientIDs)).Msg("event created")
	return event, nil
}

// ListEvents returns the owner's events sorted by date ascending.
func (s *eventService) ListEvents(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := s.events.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces title, date, description and clients of an owned event.
func (s *eventService) UpdateEvent(ctx context.Context, id, ownerID string, in ports.EventInput) (*domain.Event, error) {
	fields, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	event, err := s.events.Update(ctx, id, ownerID, fields)
	if err != nil {
		return nil, wrapUnlessDomain("update event", err)
	}

	s.log.Info().Str("event_id", id).Str("owner_id", ownerID).Msg("event updated")
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, ownerID string) error {
	if err := s.events.Delete(ctx, id, ownerID); err != nil {
		return wrapUnlessDomain("delete event", err)
	}
	s.log.Info().Str("event_id", id).Str("owner_id", ownerID).Msg("event deleted")
	return nil
}

// resolve checks the required fields and the client references. Every
// requested id must name a distinct client account; a repeated id counts as
// unresolved, as does any id that is unknown or not a client.
func (s *eventService) resolve(ctx context.Context, in ports.EventInput) (ports.EventFields, error) {
	title := strings.TrimSpace(in.Title)
	date := strings.TrimSpace(in.Date)
	if title == "" || date == "" {
		return ports.EventFields{}, domain.ErrMissingEventFields
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return ports.EventFields{}, domain.ErrInvalidEventDate
	}

	requested := trimIDs(in.ClientIDs)
	ids := uniqueIDs(requested)
	if len(requested) > 0 {
		clients, err := s.accounts.FindClientsByIDs(ctx, ids)
		if err != nil {
			return ports.EventFields{}, fmt.Errorf("resolve clients: %w", err)
		}
		if len(clients) != len(requested) {
			return ports.EventFields{}, domain.ErrClientsNotFound
		}
	}

	return ports.EventFields{
		Title:       title,
		Date:        date,
		Description: in.Description,
		ClientIDs:   ids,
	}, nil
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
