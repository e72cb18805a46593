package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const CorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

// CorrelationID echoes the caller's correlation id, or a fresh one, on the
// response and stores it in the request context.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(CorrelationHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), correlationKey{}, id)))
	})
}

func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// NotFound answers unknown routes with a JSON error.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found", "code": http.StatusNotFound})
}
