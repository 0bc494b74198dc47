package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// logRequests assigns a request id, which is also sent in the X-Request-Id header, and logs every request when it is done.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {

		var id = uuid.NewString()
		var start = time.Now()

		w.Header().Set("X-Request-Id", id)
		var rec = &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), requestIDKey{}, id)))

		s.Log.Info(req.Context(), "request",
			"request_id", id,
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
