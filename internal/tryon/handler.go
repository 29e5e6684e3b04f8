package tryon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tayloredroots/salon-api/internal/observability/metrics"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

var tryonTracer = otel.Tracer("salon.internal.tryon")

// DefaultBodyLimit caps try-on request bodies; two inline images fit well
// under it.
const DefaultBodyLimit = 8 << 20

// Handler serves POST /try-on.
type Handler struct {
	gen       ImageGenerator
	store     PreviewStore
	metrics   *metrics.SalonMetrics
	bodyLimit int64
	logger    *logging.Logger
}

// NewHandler constructs the try-on handler. gen may be nil when no API key is
// configured; store and m may be nil.
func NewHandler(gen ImageGenerator, store PreviewStore, m *metrics.SalonMetrics, bodyLimit int64, logger *logging.Logger) *Handler {
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{gen: gen, store: store, metrics: m, bodyLimit: bodyLimit, logger: logger.Component("tryon")}
}

type tryOnRequest struct {
	ModelImage  string `json:"modelImage"`
	SelfieImage string `json:"selfieImage"`
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
}

// Generate handles POST /try-on.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tryonTracer.Start(r.Context(), "tryon.generate")
	defer span.End()

	if h.gen == nil {
		http.Error(w, "image generation is not configured", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit)
	var req tryOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ModelImage == "" || req.SelfieImage == "" {
		http.Error(w, "modelImage and selfieImage are required", http.StatusBadRequest)
		return
	}

	reference, refErr := ParseImage(req.ModelImage)
	selfie, selfieErr := ParseImage(req.SelfieImage)
	if refErr != nil || selfieErr != nil {
		http.Error(w, "invalid images, please re-upload and try again", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.Int("salon.selfie_bytes", len(selfie.Data)),
		attribute.Int("salon.reference_bytes", len(reference.Data)),
	)

	h.generate(ctx, w, GenerateRequest{
		Model:     req.Model,
		Prompt:    req.Prompt,
		Selfie:    selfie,
		Reference: reference,
	})
}

func (h *Handler) generate(ctx context.Context, w http.ResponseWriter, req GenerateRequest) {
	start := time.Now()
	out, err := h.gen.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		h.metrics.ObserveTryOn("error", elapsed.Seconds())
		h.logger.Error("try-on generation failed", "error", err, "duration_ms", elapsed.Milliseconds())
		http.Error(w, "image generation failed", http.StatusBadGateway)
		return
	}
	h.metrics.ObserveTryOn("ok", elapsed.Seconds())
	h.logger.Info("try-on generated", "bytes", len(out.Data), "duration_ms", elapsed.Milliseconds())

	resp := map[string]any{
		"outputImage": base64.StdEncoding.EncodeToString(out.Data),
	}
	if h.store != nil {
		// Preview storage is best effort; the inline image already answers
		// the request.
		if url, err := h.store.Put(ctx, out); err != nil {
			h.logger.Error("preview upload failed", "error", err)
		} else {
			resp["previewUrl"] = url
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
