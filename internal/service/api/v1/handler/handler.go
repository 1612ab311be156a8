// Package handler v1 프로세스 제어 API의 HTTP 핸들러를 제공합니다.
package handler

import (
	"context"
	"net/http"

	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/httputil"
	"github.com/darkkaiser/long-process/internal/service/api/model/response"
	"github.com/darkkaiser/long-process/internal/service/contract"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	msgStartAccepted  = "프로세스 시작 요청이 접수되었습니다"
	msgCancelAccepted = "프로세스 취소 요청이 접수되었습니다"
)

// Handler 프로세스 상태 조회와 시작/취소 요청을 처리합니다.
type Handler struct {
	controller contract.ProcessController
}

func NewHandler(controller contract.ProcessController) *Handler {
	if controller == nil {
		panic(constants.PanicMsgProcessControllerRequired)
	}

	return &Handler{controller: controller}
}

// StatusHandler 현재 프로세스 상태를 응답합니다.
//
// @Summary 프로세스 상태 조회
// @Description 실행 상태, 진행률, 마지막 실행 정보를 조회합니다.
// @Tags Process
// @Produce json
// @Success 200 {object} contract.ProcessStatus "현재 상태"
// @Router /api/v1/process [get]
func (h *Handler) StatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.controller.Status())
}

// StartHandler 프로세스 시작을 요청합니다. 이미 실행 중이면 409를 응답합니다.
//
// @Summary 프로세스 시작
// @Description 프로세스 시작을 요청합니다. 실행은 비동기로 진행되며 결과는 알림으로 전달됩니다.
// @Tags Process
// @Produce json
// @Success 202 {object} response.ProcessResponse "시작 요청 접수"
// @Failure 409 {object} response.ErrorResponse "이미 실행 중"
// @Failure 503 {object} response.ErrorResponse "실행 서비스 중지"
// @Failure 504 {object} response.ErrorResponse "요청 접수 시간 초과"
// @Router /api/v1/process/start [post]
func (h *Handler) StartHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), constants.RequestTimeout)
	defer cancel()

	if err := h.controller.Submit(ctx, contract.RunByAPI); err != nil {
		return httputil.FromAppError(err)
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"remote_ip": c.RealIP(),
	}).Info(msgStartAccepted)

	return c.JSON(http.StatusAccepted, response.ProcessResponse{
		Message: msgStartAccepted,
		Status:  h.controller.Status(),
	})
}

// CancelHandler 실행 중인 프로세스의 취소를 요청합니다. 실행 중이 아니면 409를 응답합니다.
//
// @Summary 프로세스 취소
// @Description 실행 중인 프로세스의 취소를 요청합니다. 다음 단계가 시작되기 전에 중단됩니다.
// @Tags Process
// @Produce json
// @Success 202 {object} response.ProcessResponse "취소 요청 접수"
// @Failure 409 {object} response.ErrorResponse "실행 중인 프로세스 없음"
// @Failure 503 {object} response.ErrorResponse "실행 서비스 중지"
// @Router /api/v1/process/cancel [post]
func (h *Handler) CancelHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), constants.RequestTimeout)
	defer cancel()

	if err := h.controller.Cancel(ctx); err != nil {
		return httputil.FromAppError(err)
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"remote_ip": c.RealIP(),
	}).Info(msgCancelAccepted)

	return c.JSON(http.StatusAccepted, response.ProcessResponse{
		Message: msgCancelAccepted,
		Status:  h.controller.Status(),
	})
}
