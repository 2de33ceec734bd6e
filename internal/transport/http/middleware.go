package http

import (
	"log"
	"net/http"
	"time"
)

// RequestLogger logs method, path, final status and latency for each request.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)

		logger.Printf(
			"http method=%s path=%s status=%d took=%s",
			r.Method,
			r.URL.Path,
			lw.status,
			time.Since(start).Round(time.Microsecond),
		)
	})
}

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
