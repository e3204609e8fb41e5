package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPObserver получатель HTTP метрик (*metrics.Metrics)
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
}
