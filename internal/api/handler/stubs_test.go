package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/legalaid/practice-api/internal/api/middleware"
	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// newContext builds an echo.Context for a JSON request. A non-nil principal
// is installed as if the Auth middleware had run.
func newContext(method, target, body string, principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		middleware.SetPrincipal(c, *principal)
	}
	return c, rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

var (
	lawyer = &domain.Principal{ID: "65a000000000000000000001", Role: domain.RoleLawyer}
	admin  = &domain.Principal{ID: "65a000000000000000000002", Role: domain.RoleAdmin}
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Account, error)
	meFn       func(ctx context.Context, id string) (*domain.Account, error)
}

func (s *stubAuthService) Verify(string) (domain.Principal, error) {
	return domain.Principal{}, domain.ErrInvalidToken
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, id string) (*domain.Account, error) {
	return s.meFn(ctx, id)
}

type stubClientService struct {
	listFn   func(ctx context.Context) ([]*domain.Account, error)
	addFn    func(ctx context.Context, in ports.AddClientInput) (*domain.Account, error)
	editFn   func(ctx context.Context, id string, u ports.ClientUpdate) (*domain.Account, error)
	deleteFn func(ctx context.Context, id string) error
	holdFn   func(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error)
}

func (s *stubClientService) ListClients(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubClientService) AddClient(ctx context.Context, in ports.AddClientInput) (*domain.Account, error) {
	return s.addFn(ctx, in)
}

func (s *stubClientService) EditClient(ctx context.Context, id string, u ports.ClientUpdate) (*domain.Account, error) {
	return s.editFn(ctx, id, u)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubClientService) HoldClient(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	return s.holdFn(ctx, id, status)
}

type stubEventService struct {
	createFn func(ctx context.Context, ownerID string, in ports.EventInput) (*domain.Event, error)
	listFn   func(ctx context.Context, ownerID string) ([]*domain.Event, error)
	updateFn func(ctx context.Context, id, ownerID string, in ports.EventInput) (*domain.Event, error)
	deleteFn func(ctx context.Context, id, ownerID string) error
}

func (s *stubEventService) CreateEvent(ctx context.Context, ownerID string, in ports.EventInput) (*domain.Event, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubEventService) ListEvents(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubEventService) UpdateEvent(ctx context.Context, id, ownerID string, in ports.EventInput) (*domain.Event, error) {
	return s.updateFn(ctx, id, ownerID, in)
}

func (s *stubEventService) DeleteEvent(ctx context.Context, id, ownerID string) error {
	return s.deleteFn(ctx, id, ownerID)
}

type stubFeedbackService struct {
	submitFn func(ctx context.Context, lawyerID string, in ports.FeedbackInput) (*domain.CaseFeedback, error)
	statsFn  func(ctx context.Context) (domain.FeedbackStats, error)
	listFn   func(ctx context.Context, limit int) ([]*domain.CaseFeedback, error)
}

func (s *stubFeedbackService) SubmitFeedback(ctx context.Context, lawyerID string, in ports.FeedbackInput) (*domain.CaseFeedback, error) {
	return s.submitFn(ctx, lawyerID, in)
}

func (s *stubFeedbackService) Stats(ctx context.Context) (domain.FeedbackStats, error) {
	return s.statsFn(ctx)
}

func (s *stubFeedbackService) ListAll(ctx context.Context, limit int) ([]*domain.CaseFeedback, error) {
	return s.listFn(ctx, limit)
}

type stubSettingsService struct {
	passwordFn func(ctx context.Context, id, current, next string) error
	emailFn    func(ctx context.Context, id, email string) error
}

func (s *stubSettingsService) ChangePassword(ctx context.Context, id, current, next string) error {
	return s.passwordFn(ctx, id, current, next)
}

func (s *stubSettingsService) ChangeEmail(ctx context.Context, id, email string) error {
	return s.emailFn(ctx, id, email)
}

// statusOf returns the status an *echo.HTTPError carries, or 0.
func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

