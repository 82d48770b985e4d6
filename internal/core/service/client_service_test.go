package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

func newClientSvc(repo *stubAccountRepo, q *recordingQueue) *ClientService {
	if q == nil {
		return NewClientService(repo, nil, zerolog.Nop())
	}
	return NewClientService(repo, q, zerolog.Nop())
}

func TestClientService_AddClient_ThenDuplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newClientSvc(repo, nil)

	client, err := svc.AddClient(context.Background(), ports.AddClientInput{Name: "Jane", Email: "jane@x.com", Password: "pw1234"})
	if err != nil {
		t.Fatalf("AddClient returned error: %v", err)
	}
	if client.Name != "Jane" || client.Email != "jane@x.com" {
		t.Fatalf("unexpected client: %+v", client)
	}
	if client.Role != domain.RoleClient || client.Status != domain.StatusActive {
		t.Fatalf("expected active client, got role=%s status=%s", client.Role, client.Status)
	}

	_, err = svc.AddClient(context.Background(), ports.AddClientInput{Name: "Jane 2", Email: "jane@x.com", Password: "other"})
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
	if err.Error() != "Client already exists" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	clients, _ := svc.ListClients(context.Background())
	if len(clients) != 1 {
		t.Fatalf("expected exactly one client, got %d", len(clients))
	}
}

func TestClientService_AddClient_EmailOfAnyRole(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(domain.RoleLawyer, "Lawyer", "lawyer@x.com")
	svc := newClientSvc(repo, nil)

	if _, err := svc.AddClient(context.Background(), ports.AddClientInput{Name: "C", Email: "lawyer@x.com", Password: "pw"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict with lawyer email, got %v", err)
	}
}

func TestClientService_AddClient_MissingFields(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newClientSvc(repo, nil)

	inputs := []ports.AddClientInput{
		{Email: "a@x.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@x.com"},
		{Name: "   ", Email: "a@x.com", Password: "pw"},
	}
	for _, in := range inputs {
		if _, err := svc.AddClient(context.Background(), in); !errors.Is(err, domain.ErrMissingClientFields) {
			t.Fatalf("input %+v: expected ErrMissingClientFields, got %v", in, err)
		}
	}
	if repo.writes != 0 {
		t.Fatalf("expected no writes, got %d", repo.writes)
	}
}

func TestClientService_NonClientIDsAreNotFound(t *testing.T) {
	repo := newStubAccountRepo()
	lawyer := repo.seed(domain.RoleLawyer, "Lawyer", "lawyer@x.com")
	admin := repo.seed(domain.RoleAdmin, "Admin", "admin@x.com")
	svc := newClientSvc(repo, nil)
	ctx := context.Background()

	for _, id := range []string{lawyer.ID, admin.ID, "missing"} {
		if _, err := svc.EditClient(ctx, id, ports.ClientUpdate{Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("edit %s: expected ErrNotFound, got %v", id, err)
		}
		if _, err := svc.HoldClient(ctx, id, domain.StatusHold); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("hold %s: expected ErrNotFound, got %v", id, err)
		}
		if err := svc.DeleteClient(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("delete %s: expected ErrNotFound, got %v", id, err)
		}
	}

	if _, err := repo.FindByID(ctx, lawyer.ID); err != nil {
		t.Fatalf("lawyer account should survive: %v", err)
	}
}

func TestClientService_EditNonClientWithTakenEmailIsNotFound(t *testing.T) {
	repo := newStubAccountRepo()
	admin := repo.seed(domain.RoleAdmin, "Admin", "admin@x.com")
	repo.seed(domain.RoleClient, "John", "john@x.com")
	svc := newClientSvc(repo, nil)
	ctx := context.Background()

	for _, id := range []string{admin.ID, "000000000000000000000000"} {
		_, err := svc.EditClient(ctx, id, ports.ClientUpdate{Email: "john@x.com"})
		if !errors.Is(err, domain.ErrClientNotFound) {
			t.Fatalf("edit %s: expected ErrClientNotFound, got %v", id, err)
		}
	}

	stored, _ := repo.FindByID(ctx, admin.ID)
	if stored.Email != "admin@x.com" {
		t.Fatalf("admin email must not change, got %s", stored.Email)
	}
}

func TestClientService_EditClient(t *testing.T) {
	repo := newStubAccountRepo()
	client := repo.seed(domain.RoleClient, "Jane", "jane@x.com")
	repo.seed(domain.RoleClient, "John", "john@x.com")
	svc := newClientSvc(repo, nil)
	ctx := context.Background()

	updated, err := svc.EditClient(ctx, client.ID, ports.ClientUpdate{Name: "Jane Doe", Email: "jane.doe@x.com", Status: domain.StatusHold})
	if err != nil {
		t.Fatalf("EditClient returned error: %v", err)
	}
	if updated.Name != "Jane Doe" || updated.Email != "jane.doe@x.com" || updated.Status != domain.StatusHold {
		t.Fatalf("unexpected client: %+v", updated)
	}

	if _, err := svc.EditClient(ctx, client.ID, ports.ClientUpdate{Email: "john@x.com"}); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
	if _, err := svc.EditClient(ctx, client.ID, ports.ClientUpdate{Status: "archived"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestClientService_HoldClient(t *testing.T) {
	repo := newStubAccountRepo()
	client := repo.seed(domain.RoleClient, "Jane", "jane@x.com")
	svc := newClientSvc(repo, nil)
	ctx := context.Background()

	writes := repo.writes
	for _, status := range []domain.AccountStatus{"", "blocked", "HOLD"} {
		if _, err := svc.HoldClient(ctx, client.ID, status); !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}
	if repo.writes != writes {
		t.Fatalf("invalid status must not touch the store")
	}

	held, err := svc.HoldClient(ctx, client.ID, domain.StatusHold)
	if err != nil || held.Status != domain.StatusHold {
		t.Fatalf("expected hold, got %+v %v", held, err)
	}
	active, err := svc.HoldClient(ctx, client.ID, domain.StatusActive)
	if err != nil || active.Status != domain.StatusActive {
		t.Fatalf("expected active, got %+v %v", active, err)
	}
}

func TestClientService_DeleteClient_QueuesCleanup(t *testing.T) {
	repo := newStubAccountRepo()
	client := repo.seed(domain.RoleClient, "Jane", "jane@x.com")
	q := &recordingQueue{}
	svc := newClientSvc(repo, q)

	if err := svc.DeleteClient(context.Background(), client.ID); err != nil {
		t.Fatalf("DeleteClient returned error: %v", err)
	}
	if len(q.ids) != 1 || q.ids[0] != client.ID {
		t.Fatalf("expected cleanup queued for %s, got %v", client.ID, q.ids)
	}
	if _, err := repo.FindByID(context.Background(), client.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected client removed, got %v", err)
	}

	if err := svc.DeleteClient(context.Background(), client.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("second delete: expected ErrClientNotFound, got %v", err)
	}
	if len(q.ids) != 1 {
		t.Fatalf("failed delete must not queue cleanup")
	}
}

func TestClientService_StoreFailureIsWrapped(t *testing.T) {
	repo := newStubAccountRepo()
	storeErr := errors.New("connection reset")
	repo.err = storeErr
	svc := newClientSvc(repo, nil)

	_, err := svc.ListClients(context.Background())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	var de *domain.Error
	if errors.As(err, &de) {
		t.Fatalf("store failure must not look like a domain error")
	}
}
