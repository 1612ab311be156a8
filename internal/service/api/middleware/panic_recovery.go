package middleware

import (
	"runtime/debug"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

// PanicRecovery 핸들러에서 발생한 패닉을 Internal 타입의 에러로 바꿔 반환합니다.
// 응답은 전역 에러 핸들러가 500으로 만든다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				if cause, ok := r.(error); ok {
					err = apperrors.Wrap(cause, apperrors.Internal, "요청 처리 중 패닉이 발생하였습니다")
				} else {
					err = apperrors.Newf(apperrors.Internal, "요청 처리 중 패닉이 발생하였습니다: %v", r)
				}

				applog.WithComponentAndFields(constants.ComponentPanicRecovery, applog.Fields{
					"method":     c.Request().Method,
					"path":       c.Request().URL.Path,
					"panic":      r,
					"stack":      string(debug.Stack()),
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Error("PANIC RECOVERED")
			}()

			return next(c)
		}
	}
}
