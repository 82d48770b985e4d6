package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

func TestFeedbackHandler_Submit(t *testing.T) {
	stub := &stubFeedbackService{
		submitFn: func(ctx context.Context, lawyerID string, in ports.FeedbackInput) (*domain.CaseFeedback, error) {
			if lawyerID != lawyer.ID || in.CaseType != domain.CaseTypeContract || in.IsHappy {
				t.Fatalf("unexpected submit %s %+v", lawyerID, in)
			}
			if in.SearchQuery.CauseOfAction != "breach" {
				t.Fatalf("search query not bound: %+v", in.SearchQuery)
			}
			return &domain.CaseFeedback{ID: "f1", LawyerID: lawyerID, CaseType: in.CaseType, SearchQuery: in.SearchQuery}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/feedback/case",
		`{"caseType":"contract","searchQuery":{"cause_of_action":"breach"},"isHappy":false}`, lawyer)

	if err := NewFeedbackHandler(stub, zerolog.Nop()).Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "Feedback submitted successfully" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if resp.Data["lawyerId"] != lawyer.ID {
		t.Fatalf("expected bare lawyer id, got %v", resp.Data["lawyerId"])
	}
}

func TestFeedbackHandler_Submit_MissingIsHappy(t *testing.T) {
	stub := &stubFeedbackService{
		submitFn: func(ctx context.Context, lawyerID string, in ports.FeedbackInput) (*domain.CaseFeedback, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/feedback/case", `{"caseType":"contract"}`, lawyer)

	if err := NewFeedbackHandler(stub, zerolog.Nop()).Submit(c); err != nil {
		t.Fatalf("envelope errors are written, not returned: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp feedbackErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success || resp.Message != "Error submitting feedback" || resp.Error == "" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestFeedbackHandler_Submit_WithoutPrincipalUsesEnvelope(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/api/feedback/case", `{"caseType":"contract","isHappy":true}`, nil)

	if err := NewFeedbackHandler(&stubFeedbackService{}, zerolog.Nop()).Submit(c); err != nil {
		t.Fatalf("envelope errors are written, not returned: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp feedbackErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success || resp.Message != "Error submitting feedback" || resp.Error != "unauthenticated" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestFeedbackHandler_Stats(t *testing.T) {
	tests := []struct {
		name  string
		stats domain.FeedbackStats
		want  string
	}{
		{
			name:  "with feedback",
			stats: domain.NewFeedbackStats(domain.FeedbackCounts{Total: 4, Happy: 3}),
			want:  `{"success":true,"data":{"total":4,"happy":3,"sad":1,"happyPercentage":"75.00","sadPercentage":"25.00"}}`,
		},
		{
			name:  "empty",
			stats: domain.NewFeedbackStats(domain.FeedbackCounts{}),
			want:  `{"success":true,"data":{"total":0,"happy":0,"sad":0,"happyPercentage":0,"sadPercentage":0}}`,
		},
		{
			name:  "thirds",
			stats: domain.NewFeedbackStats(domain.FeedbackCounts{Total: 3, Happy: 1}),
			want:  `{"success":true,"data":{"total":3,"happy":1,"sad":2,"happyPercentage":"33.33","sadPercentage":"66.67"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubFeedbackService{
				statsFn: func(ctx context.Context) (domain.FeedbackStats, error) { return tt.stats, nil },
			}
			c, rec := newContext(http.MethodGet, "/api/feedback/stats", "", admin)

			if err := NewFeedbackHandler(stub, zerolog.Nop()).Stats(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFeedbackHandler_Stats_HidesInternalErrors(t *testing.T) {
	stub := &stubFeedbackService{
		statsFn: func(ctx context.Context) (domain.FeedbackStats, error) {
			return domain.FeedbackStats{}, errors.New("connection refused: mongo:27017")
		},
	}
	c, rec := newContext(http.MethodGet, "/api/feedback/stats", "", admin)

	if err := NewFeedbackHandler(stub, zerolog.Nop()).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}

	var resp feedbackErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Error fetching feedback statistics" || resp.Error != "Server error" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestFeedbackHandler_All(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubFeedbackService{
		listFn: func(ctx context.Context, limit int) ([]*domain.CaseFeedback, error) {
			if limit != ports.DefaultFeedbackLimit {
				t.Fatalf("expected limit %d, got %d", ports.DefaultFeedbackLimit, limit)
			}
			return []*domain.CaseFeedback{
				{ID: "f2", LawyerID: "l1", Lawyer: &domain.LawyerSummary{ID: "l1", Name: "Lee", Email: "lee@x.com"}, CreatedAt: now},
				{ID: "f1", LawyerID: "gone", CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/feedback/all", "", admin)

	if err := NewFeedbackHandler(stub, zerolog.Nop()).All(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	lawyerInfo, ok := resp.Data[0]["lawyerId"].(map[string]any)
	if !ok || lawyerInfo["name"] != "Lee" || lawyerInfo["email"] != "lee@x.com" {
		t.Fatalf("expected expanded lawyer, got %v", resp.Data[0]["lawyerId"])
	}
	if resp.Data[1]["lawyerId"] != "gone" {
		t.Fatalf("unresolved lawyer should stay a bare id, got %v", resp.Data[1]["lawyerId"])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrMissingEventFields, http.StatusBadRequest},
		{domain.ErrBadCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrAccountOnHold, http.StatusForbidden},
		{domain.ErrClientNotFound, http.StatusNotFound},
		{domain.ErrEmailInUse, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
