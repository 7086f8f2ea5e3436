package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ViewerIDKey is the context key for the viewing participant's ID
	ViewerIDKey ContextKey = "viewer_id"
)

// ViewerMiddleware reads the X-Viewer-ID header set by the clients to
// identify the local viewing participant. There are no server-side
// accounts; authentication lives in an outer layer, this only personalizes
// report output ("you" markers, default breakdown target).
func ViewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewerIDStr := r.Header.Get("X-Viewer-ID")
		if viewerIDStr != "" {
			if viewerID, err := strconv.ParseInt(viewerIDStr, 10, 64); err == nil && viewerID > 0 {
				ctx := context.WithValue(r.Context(), ViewerIDKey, viewerID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetViewerID extracts the viewing participant's ID from the request context
func GetViewerID(ctx context.Context) (int64, bool) {
	viewerID, ok := ctx.Value(ViewerIDKey).(int64)
	return viewerID, ok
}
