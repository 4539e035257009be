package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RequestMetrics интерфейс сборщика HTTP метрик
type RequestMetrics interface {
	ObserveRequest(method, route string, code int, duration time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Metrics middleware записывает длительность и код ответа каждого запроса.
// В качестве метки маршрута используется шаблон mux, а не сырой путь.
func Metrics(m RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			m.ObserveRequest(r.Method, route, recorder.status, time.Since(start))
		})
	}
}
