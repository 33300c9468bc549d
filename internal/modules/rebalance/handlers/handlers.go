// Package handlers provides HTTP handlers for rebalancing operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/modules/rebalance"
)

// Handler handles rebalancing HTTP requests
type Handler struct {
	service *rebalance.Service
	log     zerolog.Logger
}

// NewHandler creates a new rebalancing handler
func NewHandler(service *rebalance.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "rebalance").Logger(),
	}
}

// ExecuteRequest represents a request to execute a rebalancing run
type ExecuteRequest struct {
	TargetValue float64 `json:"target_value"`
}

// HandlePreview handles GET /api/rebalance/preview. An optional target_value
// query parameter overrides the configured target.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	target, err := targetFromQuery(r)
	if err != nil {
		http.Error(w, "target_value must be a number", http.StatusBadRequest)
		return
	}

	result, err := h.service.Preview(target)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to preview rebalance")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"note":      "Dry-run allocation - no orders submitted",
		},
	})
}

// HandleExecute handles POST /api/rebalance/execute. The request body is
// optional; a target_value of zero (or no body) uses the configured target.
func (h *Handler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Error().Err(err).Msg("Failed to decode request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Rebalance(req.TargetValue)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to execute rebalance")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"executed":  len(result.ExecutedOrders),
			"failed":    len(result.FailedOrders),
		},
	})
}

// HandleMargins handles GET /api/margins. An optional segment query parameter
// selects the margin segment; the broker default is equity.
func (h *Handler) HandleMargins(w http.ResponseWriter, r *http.Request) {
	margins, err := h.service.Margins(r.URL.Query().Get("segment"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch margins")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": margins,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func targetFromQuery(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("target_value")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
