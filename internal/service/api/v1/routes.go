// Package v1 프로세스 제어 API(v1)의 라우트를 등록합니다.
package v1

import (
	"github.com/darkkaiser/long-process/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	v1Group := e.Group("/api/v1")

	v1Group.GET("/process", h.StatusHandler)
	v1Group.POST("/process/start", h.StartHandler)
	v1Group.POST("/process/cancel", h.CancelHandler)
}
