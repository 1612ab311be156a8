// Package api 프로세스를 HTTP로 제어하는 API 서비스를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/long-process/docs"
	"github.com/darkkaiser/long-process/internal/config"
	"github.com/darkkaiser/long-process/internal/pkg/version"
	"github.com/darkkaiser/long-process/internal/service/api/constants"
	"github.com/darkkaiser/long-process/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/long-process/internal/service/api/v1"
	v1handler "github.com/darkkaiser/long-process/internal/service/api/v1/handler"
	"github.com/darkkaiser/long-process/internal/service/contract"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service Echo HTTP 서버의 생명주기를 관리합니다.
//
// Start로 시작하며 serviceStopCtx가 취소되면 ShutdownTimeout 안에서 Graceful Shutdown합니다.
// 서버가 예기치 않게 종료되면 오류 알림을 보냅니다.
type Service struct {
	appConfig *config.AppConfig

	controller         contract.ProcessController
	notificationSender contract.NotificationSender

	buildInfo version.Info

	echo *echo.Echo

	running   bool
	runningMu sync.Mutex
}

func NewService(appConfig *config.AppConfig, controller contract.ProcessController, notificationSender contract.NotificationSender, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if controller == nil {
		panic(constants.PanicMsgProcessControllerRequired)
	}
	if notificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Service{
		appConfig: appConfig,

		controller:         controller,
		notificationSender: notificationSender,

		buildInfo: buildInfo,
	}
}

func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true
	s.echo = s.setupServer()

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, s.echo)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{Debug: s.appConfig.Debug})

	RegisterRoutes(e, system.NewHandler(s.controller, s.buildInfo))
	v1.RegisterRoutes(e, v1handler.NewHandler(s.controller))

	return e
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.API.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Debug(constants.LogMsgHTTPServerStarting)

	s.handleServerError(e.Start(fmt.Sprintf(":%d", port)))
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	message := constants.LogMsgHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(message)

	if notifyErr := s.notificationSender.NotifyDefaultWithError(fmt.Sprintf("%s\r\n\r\n%s", message, err)); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn(constants.LogMsgNotifyFailed)
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
