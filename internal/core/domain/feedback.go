package domain

import (
	"math"
	"time"
)

// CaseType is the search corpus a feedback record refers to.
type CaseType string

const (
	CaseTypeContract       CaseType = "contract"
	CaseTypeConstitutional CaseType = "constitutional"
)

// Valid reports whether c is a known case type.
func (c CaseType) Valid() bool {
	return c == CaseTypeContract || c == CaseTypeConstitutional
}

// SearchQuery is the query a lawyer ran against the similar-case search.
type SearchQuery struct {
	CauseOfAction string `json:"cause_of_action" bson:"cause_of_action"`
	SubjectMatter string `json:"subject_matter" bson:"subject_matter"`
	KeyFacts      string `json:"key_facts" bson:"key_facts"`
}

// LawyerSummary is the expanded lawyer identity on feedback listings.
type LawyerSummary struct {
	ID    string
	Name  string
	Email string
}

// CaseFeedback is an append-only satisfaction record.
type CaseFeedback struct {
	ID          string
	LawyerID    string
	Lawyer      *LawyerSummary // set on listings only
	CaseType    CaseType
	SearchQuery SearchQuery
	IsHappy     bool
	CreatedAt   time.Time
}

// FeedbackCounts is the raw output of the feedback aggregation.
type FeedbackCounts struct {
	Total int64
	Happy int64
}

// FeedbackStats summarises all feedback records.
type FeedbackStats struct {
	Total           int64   `json:"total"`
	Happy           int64   `json:"happy"`
	Sad             int64   `json:"sad"`
	HappyPercentage float64 `json:"happyPercentage"`
	SadPercentage   float64 `json:"sadPercentage"`
}

// NewFeedbackStats derives sad counts and percentages from counts.
// Percentages are rounded to two decimals and are 0 when there is no feedback.
func NewFeedbackStats(c FeedbackCounts) FeedbackStats {
	stats := FeedbackStats{
		Total: c.Total,
		Happy: c.Happy,
		Sad:   c.Total - c.Happy,
	}
	if c.Total > 0 {
		stats.HappyPercentage = percentage(stats.Happy, stats.Total)
		stats.SadPercentage = percentage(stats.Sad, stats.Total)
	}
	return stats
}

func percentage(part, total int64) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
