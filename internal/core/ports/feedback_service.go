package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// FeedbackInput is a lawyer's verdict on a similar-case search.
type FeedbackInput struct {
	CaseType    domain.CaseType
	SearchQuery domain.SearchQuery
	IsHappy     bool
}

// DefaultFeedbackLimit caps ListAll when the caller passes no positive limit.
const DefaultFeedbackLimit = 100

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, lawyerID string, in FeedbackInput) (*domain.CaseFeedback, error)
	Stats(ctx context.Context) (domain.FeedbackStats, error)
	ListAll(ctx context.Context, limit int) ([]*domain.CaseFeedback, error)
}

// StatsCache stores computed feedback stats under a generation number.
// Invalidate moves to a new generation, so stats stored for an older
// generation are never served again.
type StatsCache interface {
	// Get returns the stats of the current generation (nil on a miss) and
	// the generation a following Set must use.
	Get(ctx context.Context) (*domain.FeedbackStats, int64, error)
	Set(ctx context.Context, gen int64, stats domain.FeedbackStats) error
	Invalidate(ctx context.Context) error
}
