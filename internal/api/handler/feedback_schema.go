package handler

import (
	"fmt"
	"time"

	"github.com/legalaid/practice-api/internal/core/domain"
)

type feedbackRequest struct {
	CaseType    string             `json:"caseType"    validate:"required,oneof=contract constitutional"`
	SearchQuery domain.SearchQuery `json:"searchQuery"`
	IsHappy     *bool              `json:"isHappy"     validate:"required"`
}

// feedbackView renders lawyerId as the bare id, or as {_id,name,email} on
// listings where the lawyer was expanded.
type feedbackView struct {
	ID          string             `json:"_id"`
	LawyerID    any                `json:"lawyerId"`
	CaseType    domain.CaseType    `json:"caseType"`
	SearchQuery domain.SearchQuery `json:"searchQuery"`
	IsHappy     bool               `json:"isHappy"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type lawyerView struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toFeedbackView(fb *domain.CaseFeedback) feedbackView {
	v := feedbackView{
		ID:          fb.ID,
		LawyerID:    fb.LawyerID,
		CaseType:    fb.CaseType,
		SearchQuery: fb.SearchQuery,
		IsHappy:     fb.IsHappy,
		CreatedAt:   fb.CreatedAt,
	}
	if fb.Lawyer != nil {
		v.LawyerID = lawyerView{ID: fb.Lawyer.ID, Name: fb.Lawyer.Name, Email: fb.Lawyer.Email}
	}
	return v
}

// percentage renders as a two-decimal string ("75.00") when there is
// feedback and as the number 0 otherwise, matching the dashboard contract.
type percentage struct {
	value   float64
	defined bool
}

func (p percentage) MarshalJSON() ([]byte, error) {
	if !p.defined {
		return []byte("0"), nil
	}
	return []byte(fmt.Sprintf("%q", fmt.Sprintf("%.2f", p.value))), nil
}

type statsView struct {
	Total           int64      `json:"total"`
	Happy           int64      `json:"happy"`
	Sad             int64      `json:"sad"`
	HappyPercentage percentage `json:"happyPercentage" swaggertype:"string"`
	SadPercentage   percentage `json:"sadPercentage"   swaggertype:"string"`
}

func toStatsView(s domain.FeedbackStats) statsView {
	defined := s.Total > 0
	return statsView{
		Total:           s.Total,
		Happy:           s.Happy,
		Sad:             s.Sad,
		HappyPercentage: percentage{value: s.HappyPercentage, defined: defined},
		SadPercentage:   percentage{value: s.SadPercentage, defined: defined},
	}
}

type feedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type feedbackListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []feedbackView `json:"data"`
}

type feedbackErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
