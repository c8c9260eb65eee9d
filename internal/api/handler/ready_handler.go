package handler

import (
	"net/http"

	"github.com/voltroute/backend/internal/readiness"
)

// ReadyHandler serves the readiness probe endpoint.
type ReadyHandler struct {
	checker *readiness.Checker
}

func NewReadyHandler(checker *readiness.Checker) *ReadyHandler {
	return &ReadyHandler{checker: checker}
}

// Ready handles GET /ready/
//
// @Summary  Readiness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  readiness.Report
// @Failure  503  {object}  readiness.Report
// @Router   /ready/ [get]
func (h *ReadyHandler) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.checker.Check(r.Context())
	if !report.Ready() {
		respondJSON(w, http.StatusServiceUnavailable, report)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
