package handler

import (
	"time"

	"github.com/legalaid/practice-api/internal/core/domain"
)

type eventRequest struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	ClientIDs   []string `json:"clientIds"`
}

type eventView struct {
	ID          string                 `json:"_id"`
	Title       string                 `json:"title"`
	Date        string                 `json:"date"`
	Description string                 `json:"description,omitempty"`
	Clients     []domain.ClientSummary `json:"clients"`
	CreatedBy   string                 `json:"createdBy"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type eventResponse struct {
	Event eventView `json:"event"`
}

type eventListResponse struct {
	Events []eventView `json:"events"`
}

func toEventView(e *domain.Event) eventView {
	clients := e.Clients
	if clients == nil {
		clients = []domain.ClientSummary{}
	}
	return eventView{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Description: e.Description,
		Clients:     clients,
		CreatedBy:   e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
