package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"InvalidInput", apperrors.New(apperrors.InvalidInput, "잘못된 값"), http.StatusBadRequest, "잘못된 값"},
		{"NotFound", apperrors.New(apperrors.NotFound, "없음"), http.StatusNotFound, "없음"},
		{"Conflict", apperrors.New(apperrors.Conflict, "실행 중"), http.StatusConflict, "실행 중"},
		{"Unavailable", apperrors.New(apperrors.Unavailable, "내부 사유"), http.StatusServiceUnavailable, constants.ErrMsgServiceUnavailable},
		{"Timeout", apperrors.New(apperrors.Timeout, "내부 사유"), http.StatusGatewayTimeout, constants.ErrMsgGatewayTimeout},
		{"Internal", apperrors.New(apperrors.Internal, "내부 사유"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
		{"일반 에러", errors.New("plain"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.True(t, errors.As(FromAppError(tt.err), &he))

			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, tt.wantMessage, he.Message.(response.ErrorResponse).Message)
			assert.Equal(t, tt.err, he.Internal)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"HTTPError", http.MethodGet, NewConflictError("충돌"), http.StatusConflict, "충돌"},
		{"AppError", http.MethodGet, apperrors.New(apperrors.InvalidInput, "검증 실패"), http.StatusBadRequest, "검증 실패"},
		{"Echo 404", http.MethodGet, echo.ErrNotFound, http.StatusNotFound, constants.ErrMsgNotFound},
		{"일반 에러", http.MethodGet, errors.New("boom"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
		{"HEAD 요청", http.MethodHead, NewBadRequestError("x"), http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(tt.method, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.method == http.MethodHead {
				assert.Empty(t, rec.Body.String())
				return
			}

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.ResultCode)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}
