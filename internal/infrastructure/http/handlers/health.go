package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves GET / and GET /health. Both answer as soon as the
// process can handle requests.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root answers the plain-text banner the frontend pings.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Backend is running")
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency.
type Check struct {
	Name string
	// Optional dependencies report their state without failing readiness.
	Optional bool
	Probe    func(ctx context.Context) error
}

// MongoCheck pings the database with a server round trip.
func MongoCheck(db *mongo.Database) Check {
	return Check{
		Name: "mongodb",
		Probe: func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
	}
}

// RedisCheck pings Redis. A nil client reports "disabled".
func RedisCheck(rdb *redis.Client) Check {
	return Check{
		Name:     "redis",
		Optional: true,
		Probe: func(ctx context.Context) error {
			if rdb == nil {
				return errDisabled
			}
			return rdb.Ping(ctx).Err()
		},
	}
}

type disabledError struct{}

func (disabledError) Error() string { return "disabled" }

var errDisabled error = disabledError{}

// ReadinessHandler handles GET /health/ready. It runs every check and answers
// 503 when a required dependency is unhealthy.
type ReadinessHandler struct {
	checks  []Check
	timeout time.Duration
}

func NewReadinessHandler(checks ...Check) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		err := check.Probe(ctx)
		switch {
		case err == nil:
			deps[check.Name] = dependencyStatus{Status: "ok"}
		case err == errDisabled:
			deps[check.Name] = dependencyStatus{Status: "disabled"}
		default:
			deps[check.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			if !check.Optional {
				healthy = false
			}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
