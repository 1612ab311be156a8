package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/pkg/version"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/model/system"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/contract/mocks"
	"github.com/darkkaiser/long-process/internal/testutil"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T, port int) (*Service, *mocks.MockProcessController, *mocks.MockNotificationSender) {
	t.Helper()

	cfg := config.Default()
	cfg.API.Enabled = true
	cfg.API.ListenPort = port

	controller := &mocks.MockProcessController{}
	controller.On("Status").Return(contract.ProcessStatus{State: "Idle", Steps: 10, CanStart: true}).Maybe()
	sender := &mocks.MockNotificationSender{}

	return NewService(&cfg, controller, sender, version.Info{Version: "test"}), controller, sender
}

func TestNewService_Panics(t *testing.T) {
	cfg := config.Default()
	controller := &mocks.MockProcessController{}
	sender := &mocks.MockNotificationSender{}

	assert.PanicsWithValue(t, constants.PanicMsgAppConfigRequired, func() {
		NewService(nil, controller, sender, version.Info{})
	})
	assert.PanicsWithValue(t, constants.PanicMsgProcessControllerRequired, func() {
		NewService(&cfg, nil, sender, version.Info{})
	})
	assert.PanicsWithValue(t, constants.PanicMsgNotificationSenderRequired, func() {
		NewService(&cfg, controller, nil, version.Info{})
	})
}

func TestService_Routes(t *testing.T) {
	s, _, _ := newTestService(t, 0)
	e := s.setupServer()

	tests := []struct {
		method   string
		path     string
		wantCode int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodGet, "/api/v1/process", http.StatusOK},
		{http.MethodGet, "/swagger/index.html", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/process/start", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
			assert.Empty(t, rec.Header().Get("Server"))
		})
	}
}

func TestService_SwaggerDoc(t *testing.T) {
	s, _, _ := newTestService(t, 0)
	e := s.setupServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := rec.Body.String()
	assert.Equal(t, "Long Process API", gjson.Get(doc, "info.title").String())
	for _, path := range []string{"/health", "/version", "/api/v1/process", "/api/v1/process/start", "/api/v1/process/cancel"} {
		assert.True(t, gjson.Get(doc, "paths."+gjson.Escape(path)).Exists(), path)
	}
}

func TestService_StartAndShutdown(t *testing.T) {
	port, err := testutil.GetFreePort()
	require.NoError(t, err)
	s, _, _ := newTestService(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	require.NoError(t, testutil.WaitForServer(port, 3*time.Second))

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)

	var health system.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()

	assert.Equal(t, constants.HealthStatusHealthy, health.Status)

	// 중복 시작은 무시된다.
	wg2 := &sync.WaitGroup{}
	wg2.Add(1)
	assert.NoError(t, s.Start(ctx, wg2))
	wg2.Wait()

	cancel()
	wg.Wait()

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
}

func TestService_ListenFailureNotifies(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	s, _, sender := newTestService(t, l.Addr().(*net.TCPAddr).Port)
	sender.On("NotifyDefaultWithError", mock.MatchedBy(func(m string) bool {
		return len(m) > 0
	})).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	// 서버가 스스로 종료되므로 컨텍스트 취소 없이 반환되어야 한다.
	wg.Wait()

	sender.AssertExpectations(t)
}

func TestService_ListenFailureNotifyErrorLogged(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	hook := test.NewLocal(applog.StandardLogger())
	defer hook.Reset()

	s, _, sender := newTestService(t, l.Addr().(*net.TCPAddr).Port)
	sender.On("NotifyDefaultWithError", mock.Anything).
		Return(apperrors.New(apperrors.Unavailable, "notification service stopped")).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	wg.Wait()

	sender.AssertExpectations(t)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == constants.LogMsgNotifyFailed {
			logged = true
			assert.Equal(t, applog.WarnLevel, entry.Level)
			assert.Contains(t, fmt.Sprint(entry.Data["error"]), "notification service stopped")
		}
	}
	assert.True(t, logged, "알림 발송 실패가 로그로 남아야 합니다")
}
