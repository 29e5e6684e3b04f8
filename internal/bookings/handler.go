package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tayloredroots/salon-api/pkg/logging"
)

// Handler serves the public booking form and the admin booking console.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler constructs the bookings handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

type createBookingRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Notes          string `json:"notes"`
	PreviewURL     string `json:"previewUrl"`
	RequestedStart string `json:"requestedStart"`
	RequestedEnd   string `json:"requestedEnd"`
}

// Create handles POST /bookings (public, no auth).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Phone == "" {
		http.Error(w, "name and phone are required", http.StatusBadRequest)
		return
	}

	in := NewBookingInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Notes:      req.Notes,
		PreviewURL: req.PreviewURL,
	}
	var err error
	if in.RequestedStart, err = parseOptionalTime(req.RequestedStart); err != nil {
		http.Error(w, "invalid requestedStart", http.StatusBadRequest)
		return
	}
	if in.RequestedEnd, err = parseOptionalTime(req.RequestedEnd); err != nil {
		http.Error(w, "invalid requestedEnd", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create booking failed", "error", err)
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"booking": b})
}

// List handles GET /admin/bookings?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var status Status
	if q := r.URL.Query().Get("status"); q != "" {
		parsed, err := ParseStatus(q)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		status = parsed
	}

	list, err := h.svc.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list bookings failed", "error", err)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": list})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /admin/bookings/{id}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	b, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.logger.Error("update booking failed", "error", err, "booking_id", id)
		http.Error(w, "failed to update booking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": b})
}

// Delete handles DELETE /admin/bookings/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.logger.Error("delete booking failed", "error", err, "booking_id", id)
		http.Error(w, "failed to delete booking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
