package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// FeedbackRepository persists append-only case feedback.
type FeedbackRepository interface {
	Insert(ctx context.Context, fb *domain.CaseFeedback) (*domain.CaseFeedback, error)
	Counts(ctx context.Context) (domain.FeedbackCounts, error)
	// ListRecent returns up to limit records, newest first, with Lawyer expanded.
	ListRecent(ctx context.Context, limit int) ([]*domain.CaseFeedback, error)
}
