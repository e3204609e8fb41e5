package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/coastalgloss/BookingService/internal/api/handlers"
)

const (
	msgTooManyRequests = "too many requests, please try again later"

	visitorTTL      = 10 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter token bucket на каждый IP клиента
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter создает лимитер на requestsPerMinute запросов с запасом burst
// и запускает очистку неактивных клиентов до вызова Stop
func NewIPRateLimiter(requestsPerMinute float64, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(requestsPerMinute / 60),
		burst:    burst,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow расходует один токен клиента ip
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Stop останавливает фоновую очистку
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *IPRateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

// RateLimit ограничивает POST запросы по IP клиента; остальные методы пропускаются
func RateLimit(limiter *IPRateLimiter, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			if !limiter.Allow(ip) {
				log.Warn("Rate limit exceeded: client_ip=%s, path=%s, request_id=%s",
					ip, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
