package recommend

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tayloredroots/salon-api/pkg/logging"
)

// Handler serves POST /recommendations.
type Handler struct {
	logger *logging.Logger
}

// NewHandler constructs the recommendations handler.
func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

type recommendRequest struct {
	Description string `json:"description"`
}

// Recommend handles POST /recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	services := ForDescription(req.Description)
	h.logger.Debug("recommendations served", "matches", len(services))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"services": services})
}
