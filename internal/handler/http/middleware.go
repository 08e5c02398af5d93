package http

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// visitorIDKey is the context key for the visitor's device identifier.
const visitorIDKey contextKey = "visitor_id"

// VisitorIDFromHeader reads the X-Visitor-ID header (a client-generated
// device identifier) and stores it in the request context. Visitor-scoped
// routes reject requests without it.
func VisitorIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vid := r.Header.Get("X-Visitor-ID")
		if vid == "" {
			writeBadRequest(w, "X-Visitor-ID header is required")
			return
		}
		ctx := context.WithValue(r.Context(), visitorIDKey, vid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// visitorIDFromContext extracts the visitor ID from the request context.
func visitorIDFromContext(ctx context.Context) (string, bool) {
	vid, ok := ctx.Value(visitorIDKey).(string)
	return vid, ok && vid != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
