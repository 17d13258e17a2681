package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetricsRecorder приёмник HTTP метрик
type HTTPMetricsRecorder interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает метрики запросов. Путь берётся из шаблона маршрута,
// чтобы ID сессий и резервирований не попадали в метки.
func MetricsMiddleware(recorder HTTPMetricsRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}
			recorder.ObserveHTTPRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
