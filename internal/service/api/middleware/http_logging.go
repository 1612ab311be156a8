package middleware

import (
	"strconv"
	"time"

	"github.com/darkkaiser/long-process/internal/service/api/constants"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청마다 메서드, 경로, 상태 코드, 지연 시간을 구조화된 로그로 남깁니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			// 에러를 여기서 처리해야 로그에 최종 상태 코드가 남는다.
			if err := next(c); err != nil {
				c.Error(err)
			}

			latency := time.Since(start)

			bytesIn := req.Header.Get(echo.HeaderContentLength)
			if bytesIn == "" {
				bytesIn = "0"
			}

			applog.WithComponentAndFields(constants.ComponentHTTPLogger, applog.Fields{
				"method":     req.Method,
				"uri":        req.RequestURI,
				"host":       req.Host,
				"remote_ip":  c.RealIP(),
				"user_agent": req.UserAgent(),

				"status":    res.Status,
				"bytes_in":  bytesIn,
				"bytes_out": strconv.FormatInt(res.Size, 10),

				"latency":       latency.Microseconds(),
				"latency_human": latency.String(),

				"request_id": res.Header().Get(echo.HeaderXRequestID),
			}).Info("HTTP 요청")

			return nil
		}
	}
}
