package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalaid/practice-api/internal/api/metrics"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// EventHandler serves the calendar of the authenticated lawyer or admin.
// Every operation is scoped to events the caller created.
type EventHandler struct {
	events ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST /api/events.
//
// @Summary      Create a calendar event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	event, err := h.events.CreateEvent(c.Request().Context(), principal.ID, toEventInput(req))
	if err != nil {
		return err
	}

	metrics.EventOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, eventResponse{Event: toEventView(event)})
}

// List handles GET /api/events, ordered by date ascending.
//
// @Summary      List the caller's events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	events, err := h.events.ListEvents(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toEventView(e))
	}
	return c.JSON(http.StatusOK, eventListResponse{Events: views})
}

// Update handles PUT /api/events/:id. The body replaces every field.
//
// @Summary      Replace an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      eventRequest  true  "Event"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	event, err := h.events.UpdateEvent(c.Request().Context(), c.Param("id"), principal.ID, toEventInput(req))
	if err != nil {
		return err
	}

	metrics.EventOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, eventResponse{Event: toEventView(event)})
}

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.events.DeleteEvent(c.Request().Context(), c.Param("id"), principal.ID); err != nil {
		return err
	}

	metrics.EventOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted"})
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r eventRequest) ports.EventInput {
	return ports.EventInput{
		Title:       r.Title,
		Date:        r.Date,
		Description: r.Description,
		ClientIDs:   r.ClientIDs,
	}
}
