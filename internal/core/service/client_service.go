package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// ClientService manages client accounts. Any lawyer or admin sees and edits
// every client; clients are not partitioned by lawyer.
type ClientService struct {
	repo     ports.AccountRepository
	removals ports.ClientRemovalQueue
	log      zerolog.Logger
	now      func() time.Time
}

// NewClientService wires the service. removals may be nil, in which case
// events keep references to deleted clients.
func NewClientService(repo ports.AccountRepository, removals ports.ClientRemovalQueue, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, removals: removals, log: log, now: time.Now}
}

func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Account, error) {
	clients, err := s.repo.ListByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// AddClient creates a client account. The email must not belong to any
// account, whatever its role.
func (s *ClientService) AddClient(ctx context.Context, in ports.AddClientInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingClientFields
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrClientExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("add client: %w", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("add client: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		Name:         name,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent insert of the same email loses on the unique index.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("add client: %w", err)
	}

	s.log.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

// EditClient replaces the name, email and status of a client. Empty fields
// keep their stored value. Ids that are not clients fail NotFound before any
// email check.
func (s *ClientService) EditClient(ctx context.Context, id string, update ports.ClientUpdate) (*domain.Account, error) {
	if update.Status != "" && !update.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	update.Name = strings.TrimSpace(update.Name)
	update.Email = normalizeEmail(update.Email)

	target, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrClientNotFound
	case err != nil:
		return nil, fmt.Errorf("edit client: %w", err)
	case !target.IsClient():
		return nil, domain.ErrClientNotFound
	}

	if update.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, update.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("edit client: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailInUse
		}
	}

	client, err := s.repo.UpdateClient(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmailInUse
		}
		return nil, wrapUnlessDomain("edit client", err)
	}
	return client, nil
}

// DeleteClient removes a client permanently and queues removal of its event
// references.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return wrapUnlessDomain("delete client", err)
	}

	s.log.Info().Str("client_id", id).Msg("client deleted")
	if s.removals != nil {
		s.removals.Enqueue(id)
	}
	return nil
}

// HoldClient sets the status of a client. The status is checked before the
// store is touched.
func (s *ClientService) HoldClient(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	client, err := s.repo.UpdateClientStatus(ctx, id, status)
	if err != nil {
		return nil, wrapUnlessDomain("hold client", err)
	}

	s.log.Info().Str("client_id", id).Str("status", string(status)).Msg("client status changed")
	return client, nil
}

// wrapUnlessDomain keeps domain errors intact for the HTTP layer and adds
// context to store failures.
func wrapUnlessDomain(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
