package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"wedding-registry-go/internal/ratelimit"
	"wedding-registry-go/pkg/logger"
)

// RateLimit caps attempts per client address. A nil store or a limit below
// one lets every request through.
type RateLimit struct {
	store  ratelimit.Store
	limit  int
	window time.Duration
	log    logger.Logger
	now    func() time.Time
}

func NewRateLimit(store ratelimit.Store, limit int, window time.Duration, log logger.Logger) *RateLimit {
	return &RateLimit{store: store, limit: limit, window: window, log: log, now: time.Now}
}

// PerIP counts requests under scope, so routes sharing a scope share a budget.
// Store failures let the request through.
func (m *RateLimit) PerIP(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.store == nil || m.limit < 1 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := m.store.Allow(r.Context(), scope+":"+ip, m.limit, m.window)
			if err != nil {
				m.log.InternalError("http.ratelimit: check failed", err, "scope", scope)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := result.RetryAfter(m.now())
				m.log.Warn("http.ratelimit: blocked", "scope", scope, "ip", ip, "retry_after", retryAfter.String())
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))
				writeError(w, http.StatusTooManyRequests, "rate_limited",
					"Too many sign-in attempts. Please wait a few minutes and try again.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP reads RemoteAddr, which chi's RealIP has already rewritten from
// the proxy headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
