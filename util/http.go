package util

import (
	"net/http"
	"strings"
)

type prefixedResponseWriter struct {
	http.ResponseWriter
	prefix string // without trailing slash
}

// WriteHeader shadows and calls http.ResponseWriter.WriteHeader.
func (w prefixedResponseWriter) WriteHeader(statusCode int) {
	// modify Location header, absolute locations only
	if location := w.Header().Get("Location"); len(location) > 0 && location[0] == '/' {
		w.Header().Set("Location", w.prefix+location)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// NormalizePrefix returns "" or a path with a leading and without a trailing slash.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// StripPrefix serves handler below prefix. Absolute redirects of the handler get the prefix prepended.
// Your reverse proxy must not strip the prefix.
func StripPrefix(prefix string, handler http.Handler) http.Handler {
	prefix = NormalizePrefix(prefix)
	if prefix == "" {
		return handler
	}
	return http.StripPrefix(
		prefix,
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				handler.ServeHTTP(prefixedResponseWriter{w, prefix}, r)
			},
		),
	)
}
