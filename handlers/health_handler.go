package handlers

import (
	"context"
	"fmt"
	"net/http"
)

// Pinger is satisfied by every db connector.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB Pinger
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(r *http.Request) (*Response, error) {
	if err := h.DB.Ping(r.Context()); err != nil {
		return nil, fmt.Errorf("datastore unavailable: %w", err)
	}
	return OK(statusResponse{Status: "ok"}), nil
}
