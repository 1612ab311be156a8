package api

import (
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/long-process/internal/service/api/middleware"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성 설정입니다.
type HTTPServerConfig struct {
	Debug bool
}

// NewHTTPServer 미들웨어 체인이 구성된 Echo 인스턴스를 생성합니다. 라우트는 포함되지 않습니다.
//
// 미들웨어 적용 순서:
//  1. PanicRecovery
//  2. RequestID
//  3. Server 헤더 제거
//  4. HTTPLogger (429 응답도 기록되도록 RateLimiting보다 앞에 둔다)
//  5. RateLimiting
//  6. BodyLimit
//  7. Secure
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.Secure())

	return e
}
