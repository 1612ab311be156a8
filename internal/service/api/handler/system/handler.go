// Package system 서버 상태(/health)와 빌드 정보(/version)를 제공하는 핸들러입니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/long-process/internal/pkg/version"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/model/system"
	"github.com/darkkaiser/long-process/internal/service/contract"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	controller contract.ProcessController

	buildInfo version.Info

	serverStartTime time.Time
}

func NewHandler(controller contract.ProcessController, buildInfo version.Info) *Handler {
	if controller == nil {
		panic(constants.PanicMsgProcessControllerRequired)
	}

	return &Handler{
		controller: controller,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버 가동 시간과 프로세스 실행 서비스의 상태를 응답합니다.
//
// @Summary 서버 상태 확인
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "서버 상태"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	status := h.controller.Status()

	runner := system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: status.State,
	}
	if status.State == "" {
		runner.Status = constants.HealthStatusUnhealthy
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status: runner.Status,
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: map[string]system.DependencyStatus{
			constants.DependencyProcessRunner: runner,
		},
	})
}

// VersionHandler 빌드 정보를 응답합니다.
//
// @Summary 버전 정보 조회
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "빌드 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
