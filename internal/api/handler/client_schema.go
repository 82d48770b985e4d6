package handler

import "github.com/legalaid/practice-api/internal/core/domain"

type addClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type editClientRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type holdClientRequest struct {
	Status string `json:"status"`
}

// clientView is the projection every client endpoint returns.
type clientView struct {
	ID     string               `json:"_id"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Status domain.AccountStatus `json:"status"`
}

type clientResponse struct {
	Client clientView `json:"client"`
}

type clientListResponse struct {
	Clients []clientView `json:"clients"`
}

func toClientView(a *domain.Account) clientView {
	return clientView{ID: a.ID, Name: a.Name, Email: a.Email, Status: a.Status}
}
