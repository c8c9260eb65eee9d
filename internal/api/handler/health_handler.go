package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/voltroute/backend/internal/domain"
)

// HealthHandler serves the liveness probe endpoint.
//
// It holds no state, inspects nothing about the request and has no side
// effects; every call writes the same bytes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Health handles GET /health/
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health/ [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var e jx.Encoder
	domain.NewStatusOK().Encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(e.Bytes())
}
