package middleware

import (
	"sync"

	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/httputil"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter IP별 토큰 버킷을 관리합니다.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (i *ipRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	l, ok := i.limiters[ip]
	if !ok {
		l = rate.NewLimiter(i.rate, i.burst)
		i.limiters[ip] = l
	}
	return l
}

// RateLimiting 클라이언트 IP마다 초당 요청 수를 제한하고, 초과하면 429를 응답합니다.
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic("RateLimiting: requestsPerSecond는 양수여야 합니다")
	}
	if burst <= 0 {
		panic("RateLimiting: burst는 양수여야 합니다")
	}

	limiters := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiters.limiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("Rate limit 초과")

				c.Response().Header().Set("Retry-After", "1")

				return httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
