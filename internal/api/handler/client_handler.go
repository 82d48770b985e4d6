package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalaid/practice-api/internal/api/metrics"
	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// ClientHandler exposes client account management to lawyers and admins.
type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /api/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientListResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	accounts, err := h.clients.ListClients(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]clientView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toClientView(a))
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: views})
}

// Add handles POST /api/clients.
//
// @Summary      Add a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Add(c echo.Context) error {
	var req addClientRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	account, err := h.clients.AddClient(c.Request().Context(), ports.AddClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// The add-client form reports an existing email as a bad request.
		if errors.Is(err, domain.ErrConflict) {
			return echo.NewHTTPError(http.StatusBadRequest, domain.ErrClientExists.Message)
		}
		return err
	}

	metrics.ClientOperationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, clientResponse{Client: toClientView(account)})
}

// Edit handles PUT /api/clients/:id. Omitted fields keep their stored value.
//
// @Summary      Edit a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Client id"
// @Param        body  body      editClientRequest  true  "Fields to change"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Edit(c echo.Context) error {
	var req editClientRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	account, err := h.clients.EditClient(c.Request().Context(), c.Param("id"), ports.ClientUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Status: domain.AccountStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.ClientOperationsTotal.WithLabelValues("edit").Inc()
	return c.JSON(http.StatusOK, clientResponse{Client: toClientView(account)})
}

// Delete handles DELETE /api/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clients.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ClientOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Client deleted"})
}

// Hold handles PATCH /api/clients/:id/hold.
//
// @Summary      Put a client on hold or reactivate it
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Client id"
// @Param        body  body      holdClientRequest  true  "active or hold"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/clients/{id}/hold [patch]
func (h *ClientHandler) Hold(c echo.Context) error {
	var req holdClientRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	account, err := h.clients.HoldClient(c.Request().Context(), c.Param("id"), domain.AccountStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.ClientOperationsTotal.WithLabelValues("hold").Inc()
	return c.JSON(http.StatusOK, clientResponse{Client: toClientView(account)})
}
