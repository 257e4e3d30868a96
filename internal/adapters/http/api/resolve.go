// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	service "github.com/rumbita1974/Futbolai-ES-sub000/internal/app"
)

// ResolveHandler handles resolution requests.
type ResolveHandler struct {
	deps Dependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps Dependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// HandleResolve handles GET /resolve?q=...&bust_cache=true requests.
// The response is always 200 with a Resolution body; a resolution that
// found no data carries its own error field, per the boundary
// contract.
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, ErrMissingQuery))
		return
	}

	opts := service.ResolveOptions{
		BustCache: r.URL.Query().Get("bust_cache") == "true",
	}
	res := h.deps.Resolve(r.Context(), query, opts)
	writeJSON(w, http.StatusOK, res)
}
