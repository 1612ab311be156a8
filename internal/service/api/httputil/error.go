// Package httputil HTTP 에러 변환과 전역 에러 핸들러를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/model/response"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) *echo.HTTPError {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

func NewConflictError(message string) error {
	return newHTTPError(http.StatusConflict, message)
}

func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

func NewServiceUnavailableError(message string) error {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// FromAppError AppError의 타입을 HTTP 상태 코드로 변환합니다.
// 4xx 응답에는 AppError의 메시지를 그대로 사용하고, 5xx 응답에는 고정 메시지를 사용합니다.
func FromAppError(err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		e := newHTTPError(http.StatusInternalServerError, constants.ErrMsgInternalServer)
		e.Internal = err
		return e
	}

	var code int
	var message string
	switch appErr.Type() {
	case apperrors.InvalidInput:
		code, message = http.StatusBadRequest, appErr.Message()
	case apperrors.NotFound:
		code, message = http.StatusNotFound, appErr.Message()
	case apperrors.Conflict:
		code, message = http.StatusConflict, appErr.Message()
	case apperrors.Unavailable:
		code, message = http.StatusServiceUnavailable, constants.ErrMsgServiceUnavailable
	case apperrors.Timeout:
		code, message = http.StatusGatewayTimeout, constants.ErrMsgGatewayTimeout
	default:
		code, message = http.StatusInternalServerError, constants.ErrMsgInternalServer
	}

	e := newHTTPError(code, message)
	e.Internal = err
	return e
}

// ErrorHandler Echo 전역 HTTP 에러 핸들러입니다. 모든 에러를 ErrorResponse JSON으로 응답합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			errors.As(FromAppError(err), &he)
		}
	}

	if he != nil {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}
	}

	if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
		message = constants.ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
