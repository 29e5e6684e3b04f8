package availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tayloredroots/salon-api/internal/observability/metrics"
	"github.com/tayloredroots/salon-api/internal/schedule"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

// Handler serves the public availability query and the admin rule/blackout
// endpoints.
type Handler struct {
	svc        *Service
	repo       *Repository
	loc        *time.Location
	windowDays int
	metrics    *metrics.SalonMetrics
	logger     *logging.Logger
}

// NewHandler constructs the availability handler. loc is the salon's
// timezone; windowDays is the default query horizon when "to" is omitted.
func NewHandler(svc *Service, repo *Repository, loc *time.Location, windowDays int, m *metrics.SalonMetrics, logger *logging.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if windowDays <= 0 {
		windowDays = 7
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, repo: repo, loc: loc, windowDays: windowDays, metrics: m, logger: logger}
}

// GetSlots handles GET /availability?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Missing bounds default to today and today plus the configured window.
// "from" snaps to start of day and "to" to end of day, matching the day
// granularity the booking UI works at.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.loc)

	from := startOfDay(now)
	if q := r.URL.Query().Get("from"); q != "" {
		parsed, err := parseDateParam(q, h.loc)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		from = startOfDay(parsed)
	}

	to := endOfDay(now.AddDate(0, 0, h.windowDays))
	if q := r.URL.Query().Get("to"); q != "" {
		parsed, err := parseDateParam(q, h.loc)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		to = endOfDay(parsed)
	}

	start := time.Now()
	slots, err := h.svc.Slots(r.Context(), from, to)
	if err != nil {
		h.metrics.ObserveAvailabilityQuery("error", time.Since(start).Seconds())
		h.logger.Error("availability query failed", "error", err)
		http.Error(w, "failed to fetch availability", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveAvailabilityQuery("ok", time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

// ListRules handles GET /admin/availability/rules.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repo.ListRules(r.Context())
	if err != nil {
		h.logger.Error("list rules failed", "error", err)
		http.Error(w, "failed to list rules", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

type createRuleRequest struct {
	DayOfWeek *int   `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateRule handles POST /admin/availability/rules.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.DayOfWeek == nil || req.StartTime == "" || req.EndTime == "" {
		http.Error(w, "dayOfWeek, startTime, endTime are required", http.StatusBadRequest)
		return
	}

	rule := schedule.Rule{
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := rule.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.repo.CreateRule(r.Context(), rule)
	if err != nil {
		h.logger.Error("create rule failed", "error", err)
		http.Error(w, "failed to create rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"rule": rule})
}

// DeleteRule handles DELETE /admin/availability/rules/{id}.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.repo.DeleteRule)
}

// ListBlackouts handles GET /admin/availability/blackouts.
func (h *Handler) ListBlackouts(w http.ResponseWriter, r *http.Request) {
	blackouts, err := h.repo.ListBlackouts(r.Context())
	if err != nil {
		h.logger.Error("list blackouts failed", "error", err)
		http.Error(w, "failed to list blackouts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blackouts": blackouts})
}

type createBlackoutRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// CreateBlackout handles POST /admin/availability/blackouts.
func (h *Handler) CreateBlackout(w http.ResponseWriter, r *http.Request) {
	var req createBlackoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	date, err := parseDateParam(req.Date, h.loc)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	blackout, err := h.repo.CreateBlackout(r.Context(), schedule.Blackout{
		Date:   startOfDay(date),
		Reason: req.Reason,
	})
	if err != nil {
		h.logger.Error("create blackout failed", "error", err)
		http.Error(w, "failed to create blackout", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"blackout": blackout})
}

// DeleteBlackout handles DELETE /admin/availability/blackouts/{id}.
func (h *Handler) DeleteBlackout(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.repo.DeleteBlackout)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id string) error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	if err := del(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.logger.Error("delete failed", "error", err, "id", id)
		http.Error(w, "failed to delete", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// parseDateParam accepts a plain date or a full RFC 3339 timestamp.
func parseDateParam(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
