package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecommendHandler(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/recommendations",
		strings.NewReader(`{"description":"lived-in balayage with caramel tones"}`))
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Services []Service `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Services) != 2 || resp.Services[0].Title != "Lived-in balayage" {
		t.Errorf("unexpected services: %+v", resp.Services)
	}
}

func TestRecommendHandlerNoMatch(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/recommendations",
		strings.NewReader(`{"description":"just a trim"}`))
	rec := httptest.NewRecorder()
	h.Recommend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"services":[]`) {
		t.Errorf("no match must serialize as empty array: %s", rec.Body.String())
	}
}

func TestRecommendHandlerBadInput(t *testing.T) {
	for name, body := range map[string]string{
		"not json":          "{",
		"blank description": `{"description":"   "}`,
		"missing field":     `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(nil)
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.Recommend(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
