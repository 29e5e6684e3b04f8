package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSOptions configures the CORS middleware. Zero-value fields fall back to
// defaults suited to the salon API (admin token header, ten-minute preflight
// cache).
type CORSOptions struct {
	AllowedOrigins []string // exact origins; "*" allows any
	AllowedHeaders []string
	AllowedMethods []string
	MaxAge         time.Duration
}

var (
	defaultAllowedHeaders = []string{"Authorization", "Content-Type", "X-Admin-Token"}
	defaultAllowedMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
)

// CORS answers cross-origin requests for origins on the allowlist, preflight
// included. Unlisted origins get no CORS headers at all.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	origins := newOriginSet(opts.AllowedOrigins)

	headers := opts.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultAllowedHeaders
	}
	methods := opts.AllowedMethods
	if len(methods) == 0 {
		methods = defaultAllowedMethods
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}

	headerList := strings.Join(headers, ", ")
	methodList := strings.Join(methods, ", ")
	maxAgeSecs := strconv.Itoa(int(maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origins.contains(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Headers", headerList)
				h.Set("Access-Control-Allow-Methods", methodList)
				h.Set("Access-Control-Max-Age", maxAgeSecs)
			}

			if isPreflight(r) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

type originSet struct {
	any   bool
	exact map[string]struct{}
}

func newOriginSet(origins []string) originSet {
	set := originSet{exact: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			set.any = true
		default:
			set.exact[o] = struct{}{}
		}
	}
	return set
}

func (s originSet) contains(origin string) bool {
	if origin == "" {
		return false
	}
	if s.any {
		return true
	}
	_, ok := s.exact[origin]
	return ok
}
