package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory account repository mirroring the Mongo scoping rules.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*domain.Account
	order    []string
	writes   int   // number of mutating calls that reached the store
	err      error // if set, every call returns it
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *stubAccountRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("%024x", r.seq)
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.accounts {
		if existing.Email == a.Email || (a.Username != "" && existing.Username == a.Username) {
			return nil, fmt.Errorf("insert account: %w", domain.ErrConflict)
		}
	}
	r.writes++
	c := cloneAccount(a)
	c.ID = r.nextID()
	r.accounts[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneAccount(c), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email || (username != "" && a.Username == username) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Account
	for _, id := range r.order {
		if a, ok := r.accounts[id]; ok && a.Role == role {
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

func (r *stubAccountRepo) FindClientsByIDs(_ context.Context, ids []string) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	// Like $in, each matching document is returned once.
	var out []*domain.Account
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if a, ok := r.accounts[id]; ok && a.Role == domain.RoleClient && !seen[id] {
			seen[id] = true
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

func (r *stubAccountRepo) client(id string) (*domain.Account, bool) {
	a, ok := r.accounts[id]
	if !ok || a.Role != domain.RoleClient {
		return nil, false
	}
	return a, true
}

func (r *stubAccountRepo) UpdateClient(_ context.Context, id string, u ports.ClientUpdate) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.writes++
	a, ok := r.client(id)
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if u.Name != "" {
		a.Name = u.Name
	}
	if u.Email != "" {
		a.Email = u.Email
	}
	if u.Status != "" {
		a.Status = u.Status
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdateClientStatus(_ context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.writes++
	a, ok := r.client(id)
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	a.Status = status
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) DeleteClient(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes++
	if _, ok := r.client(id); !ok {
		return domain.ErrClientNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes++
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) UpdateEmail(_ context.Context, id, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes++
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Email = email
	return nil
}

// seed inserts an account directly, bypassing services.
func (r *stubAccountRepo) seed(role domain.Role, name, email string) *domain.Account {
	a, err := r.Create(context.Background(), &domain.Account{
		Email:  email,
		Name:   name,
		Role:   role,
		Status: domain.StatusActive,
	})
	if err != nil {
		panic(err)
	}
	return a
}

// ---------------------------------------------------------------------------
// In-memory event repository. Client expansion reads the account stub.
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	mu       sync.Mutex
	seq      int
	events   map[string]*domain.Event
	accounts *stubAccountRepo
	err      error
}

func newStubEventRepo(accounts *stubAccountRepo) *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event), accounts: accounts}
}

func (r *stubEventRepo) expand(e *domain.Event) *domain.Event {
	c := *e
	c.ClientIDs = append([]string(nil), e.ClientIDs...)
	c.Clients = nil
	for _, id := range e.ClientIDs {
		if a, err := r.accounts.FindByID(context.Background(), id); err == nil {
			c.Clients = append(c.Clients, domain.ClientSummary{ID: a.ID, Name: a.Name, Email: a.Email})
		}
	}
	return &c
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.seq++
	c := *e
	c.ID = fmt.Sprintf("e%023x", r.seq)
	r.events[c.ID] = &c
	return r.expand(&c), nil
}

func (r *stubEventRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Event
	for _, e := range r.events {
		if e.OwnerID == ownerID {
			out = append(out, r.expand(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, id, ownerID string, f ports.EventFields) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.events[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrEventNotFound
	}
	e.Title, e.Date, e.Description, e.ClientIDs = f.Title, f.Date, f.Description, f.ClientIDs
	return r.expand(e), nil
}

func (r *stubEventRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	e, ok := r.events[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) RemoveClientRefs(_ context.Context, clientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.events {
		kept := e.ClientIDs[:0]
		for _, id := range e.ClientIDs {
			if id != clientID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(e.ClientIDs) {
			n++
		}
		e.ClientIDs = kept
	}
	return n, nil
}

func (r *stubEventRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// ---------------------------------------------------------------------------
// Feedback repository, stats cache and removal queue stubs.
// ---------------------------------------------------------------------------

type stubFeedbackRepo struct {
	items      []*domain.CaseFeedback
	countCalls int
	lastLimit  int
	err        error
	// afterCount runs once Counts has taken its snapshot.
	afterCount func()
}

func (r *stubFeedbackRepo) Insert(_ context.Context, fb *domain.CaseFeedback) (*domain.CaseFeedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	c := *fb
	c.ID = fmt.Sprintf("f%023x", len(r.items)+1)
	r.items = append(r.items, &c)
	out := c
	return &out, nil
}

func (r *stubFeedbackRepo) Counts(_ context.Context) (domain.FeedbackCounts, error) {
	r.countCalls++
	if r.err != nil {
		return domain.FeedbackCounts{}, r.err
	}
	var c domain.FeedbackCounts
	for _, fb := range r.items {
		c.Total++
		if fb.IsHappy {
			c.Happy++
		}
	}
	if r.afterCount != nil {
		hook := r.afterCount
		r.afterCount = nil
		hook()
	}
	return c, nil
}

func (r *stubFeedbackRepo) ListRecent(_ context.Context, limit int) ([]*domain.CaseFeedback, error) {
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.CaseFeedback
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}

type stubStatsCache struct {
	gen         int64
	stats       map[int64]domain.FeedbackStats
	getErr      error
	invalidated int
}

func (c *stubStatsCache) Get(_ context.Context) (*domain.FeedbackStats, int64, error) {
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	if st, ok := c.stats[c.gen]; ok {
		return &st, c.gen, nil
	}
	return nil, c.gen, nil
}

func (c *stubStatsCache) Set(_ context.Context, gen int64, s domain.FeedbackStats) error {
	if c.stats == nil {
		c.stats = make(map[int64]domain.FeedbackStats)
	}
	c.stats[gen] = s
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.gen++
	return nil
}

type recordingQueue struct {
	ids []string
}

func (q *recordingQueue) Enqueue(clientID string) {
	q.ids = append(q.ids, clientID)
}
