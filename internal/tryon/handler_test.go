package tryon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeGenerator struct {
	got GenerateRequest
	out Image
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerateRequest) (Image, error) {
	f.got = req
	return f.out, f.err
}

type fakeStore struct {
	url string
	err error
}

func (f *fakeStore) Put(ctx context.Context, img Image) (string, error) {
	return f.url, f.err
}

func tryOnBody(t *testing.T) string {
	t.Helper()
	selfie := base64.StdEncoding.EncodeToString([]byte("selfie"))
	reference := base64.StdEncoding.EncodeToString([]byte("reference"))
	body, err := json.Marshal(map[string]string{
		"modelImage":  "data:image/png;base64," + reference,
		"selfieImage": selfie,
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestGenerateHandler(t *testing.T) {
	gen := &fakeGenerator{out: Image{MIMEType: "image/png", Data: []byte("result")}}
	h := NewHandler(gen, nil, nil, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tryOnBody(t)))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OutputImage string `json:"outputImage"`
		PreviewURL  string `json:"previewUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.OutputImage)
	if err != nil || string(decoded) != "result" {
		t.Errorf("unexpected output image: %q (%v)", resp.OutputImage, err)
	}
	if resp.PreviewURL != "" {
		t.Errorf("no store configured, previewUrl must be absent: %q", resp.PreviewURL)
	}
	if gen.got.Reference.MIMEType != "image/png" {
		t.Errorf("reference mime lost: %s", gen.got.Reference.MIMEType)
	}
	if gen.got.Selfie.MIMEType != "image/jpeg" {
		t.Errorf("raw base64 selfie must default to jpeg: %s", gen.got.Selfie.MIMEType)
	}
}

func TestGenerateHandlerStoresPreview(t *testing.T) {
	gen := &fakeGenerator{out: Image{MIMEType: "image/png", Data: []byte("result")}}
	h := NewHandler(gen, &fakeStore{url: "https://cdn.salon.test/previews/p.png"}, nil, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tryOnBody(t)))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if !strings.Contains(rec.Body.String(), "https://cdn.salon.test/previews/p.png") {
		t.Errorf("expected previewUrl in response: %s", rec.Body.String())
	}
}

func TestGenerateHandlerPreviewFailureNonFatal(t *testing.T) {
	gen := &fakeGenerator{out: Image{MIMEType: "image/png", Data: []byte("result")}}
	h := NewHandler(gen, &fakeStore{err: errors.New("denied")}, nil, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tryOnBody(t)))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preview failure must not fail the request, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "previewUrl") {
		t.Errorf("failed upload must not report a previewUrl: %s", rec.Body.String())
	}
}

func TestGenerateHandlerUnconfigured(t *testing.T) {
	h := NewHandler(nil, nil, nil, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tryOnBody(t)))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a generator, got %d", rec.Code)
	}
}

func TestGenerateHandlerBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing selfie", `{"modelImage":"aGFpcg=="}`},
		{"missing reference", `{"selfieImage":"c2VsZmll"}`},
		{"undecodable images", `{"modelImage":"???","selfieImage":"???"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&fakeGenerator{}, nil, nil, 0, nil)
			req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Generate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGenerateHandlerBodyTooLarge(t *testing.T) {
	h := NewHandler(&fakeGenerator{}, nil, nil, 64, nil)

	big := strings.Repeat("a", 4096)
	body := `{"modelImage":"` + big + `","selfieImage":"` + big + `"}`
	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestGenerateHandlerUpstreamFailure(t *testing.T) {
	h := NewHandler(&fakeGenerator{err: errors.New("model overloaded")}, nil, nil, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/try-on", strings.NewReader(tryOnBody(t)))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
