package middleware

import (
	"net/http"
	"time"
)

// Logging логирует каждый завершенный запрос
// 5xx пишутся как Error, 4xx как Warn
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			format := "HTTP %s %s - status=%d, duration=%s, request_id=%s, client_ip=%s"
			args := []interface{}{
				r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond),
				GetRequestID(r.Context()), ClientIP(r),
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error(format, args...)
			case rec.status >= http.StatusBadRequest:
				log.Warn(format, args...)
			default:
				log.Info(format, args...)
			}
		})
	}
}
