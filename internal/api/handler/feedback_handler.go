package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/api/metrics"
	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// FeedbackHandler serves case-search feedback. Unlike the other resources it
// answers every outcome with a {success, ...} envelope.
type FeedbackHandler struct {
	feedback ports.FeedbackService
	log      zerolog.Logger
}

func NewFeedbackHandler(feedback ports.FeedbackService, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, log: log}
}

// Submit handles POST /api/feedback/case.
//
// @Summary      Submit feedback on a similar-case search
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      201   {object}  feedbackResponse
// @Failure      400   {object}  feedbackErrorResponse
// @Failure      401   {object}  feedbackErrorResponse
// @Failure      500   {object}  feedbackErrorResponse
// @Router       /api/feedback/case [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	const failMsg = "Error submitting feedback"

	principal, err := ctxPrincipal(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, failMsg, domain.ErrUnauthenticated)
	}
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, failMsg, errors.New("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, failMsg, err)
	}

	fb, err := h.feedback.SubmitFeedback(c.Request().Context(), principal.ID, ports.FeedbackInput{
		CaseType:    domain.CaseType(req.CaseType),
		SearchQuery: req.SearchQuery,
		IsHappy:     *req.IsHappy,
	})
	if err != nil {
		return h.failFrom(c, failMsg, err)
	}

	metrics.FeedbackSubmittedTotal.WithLabelValues(string(fb.CaseType), strconv.FormatBool(fb.IsHappy)).Inc()
	return c.JSON(http.StatusCreated, feedbackResponse{
		Success: true,
		Message: "Feedback submitted successfully",
		Data:    toFeedbackView(fb),
	})
}

// Stats handles GET /api/feedback/stats.
//
// @Summary      Feedback satisfaction statistics
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedbackResponse{data=statsView}
// @Failure      500  {object}  feedbackErrorResponse
// @Router       /api/feedback/stats [get]
func (h *FeedbackHandler) Stats(c echo.Context) error {
	stats, err := h.feedback.Stats(c.Request().Context())
	if err != nil {
		return h.failFrom(c, "Error fetching feedback statistics", err)
	}
	return c.JSON(http.StatusOK, feedbackResponse{Success: true, Data: toStatsView(stats)})
}

// All handles GET /api/feedback/all: the latest 100 records, newest first.
//
// @Summary      List recent feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedbackListResponse
// @Failure      500  {object}  feedbackErrorResponse
// @Router       /api/feedback/all [get]
func (h *FeedbackHandler) All(c echo.Context) error {
	items, err := h.feedback.ListAll(c.Request().Context(), ports.DefaultFeedbackLimit)
	if err != nil {
		return h.failFrom(c, "Error fetching feedback", err)
	}

	views := make([]feedbackView, 0, len(items))
	for _, fb := range items {
		views = append(views, toFeedbackView(fb))
	}
	return c.JSON(http.StatusOK, feedbackListResponse{Success: true, Count: len(views), Data: views})
}

// failFrom answers a service error: domain errors keep their message and
// status, anything else is logged and reported as a 500 without internals.
func (h *FeedbackHandler) failFrom(c echo.Context, msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return h.fail(c, StatusFor(err), msg, de)
	}

	h.log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(msg)
	return h.fail(c, http.StatusInternalServerError, msg, errors.New("Server error"))
}

func (h *FeedbackHandler) fail(c echo.Context, status int, msg string, err error) error {
	return c.JSON(status, feedbackErrorResponse{Success: false, Message: msg, Error: err.Error()})
}

// StatusFor maps a domain error kind to its HTTP status. Errors of no known
// kind map to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
