package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

type feedbackService struct {
	repo  ports.FeedbackRepository
	cache ports.StatsCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewFeedbackService returns a FeedbackService. cache may be nil; cache
// failures never fail a request.
func NewFeedbackService(repo ports.FeedbackRepository, cache ports.StatsCache, log zerolog.Logger) ports.FeedbackService {
	return &feedbackService{repo: repo, cache: cache, log: log, now: time.Now}
}

func (s *feedbackService) SubmitFeedback(ctx context.Context, lawyerID string, in ports.FeedbackInput) (*domain.CaseFeedback, error) {
	if !in.CaseType.Valid() {
		return nil, domain.ErrInvalidCaseType
	}

	stored, err := s.repo.Insert(ctx, &domain.CaseFeedback{
		LawyerID:    lawyerID,
		CaseType:    in.CaseType,
		SearchQuery: in.SearchQuery,
		IsHappy:     in.IsHappy,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate feedback stats cache")
		}
	}

	s.log.Info().
		Str("feedback_id", stored.ID).
		Str("lawyer_id", lawyerID).
		Str("case_type", string(in.CaseType)).
		Bool("happy", in.IsHappy).
		Msg("feedback submitted")
	return stored, nil
}

// Stats aggregates every feedback record, serving from the cache when possible.
// The result is cached under the generation read before aggregating, so a
// submit that lands in between leaves it unreachable.
func (s *feedbackService) Stats(ctx context.Context) (domain.FeedbackStats, error) {
	cacheable := false
	var gen int64
	if s.cache != nil {
		cached, g, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("feedback stats cache read failed, aggregating")
		case cached != nil:
			return *cached, nil
		default:
			cacheable, gen = true, g
		}
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return domain.FeedbackStats{}, fmt.Errorf("feedback stats: %w", err)
	}
	stats := domain.NewFeedbackStats(counts)

	if cacheable {
		if err := s.cache.Set(ctx, gen, stats); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache feedback stats")
		}
	}
	return stats, nil
}

func (s *feedbackService) ListAll(ctx context.Context, limit int) ([]*domain.CaseFeedback, error) {
	if limit <= 0 || limit > ports.DefaultFeedbackLimit {
		limit = ports.DefaultFeedbackLimit
	}
	items, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}
