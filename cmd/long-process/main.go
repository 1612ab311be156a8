package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/long-process/internal/config"
	"github.com/darkkaiser/long-process/internal/pkg/version"
	"github.com/darkkaiser/long-process/internal/service/api"
	"github.com/darkkaiser/long-process/internal/service/console"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/notification"
	"github.com/darkkaiser/long-process/internal/service/runner"
	"github.com/darkkaiser/long-process/internal/service/runner/idgen"
	"github.com/darkkaiser/long-process/internal/service/scheduler"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

// @title Long Process API
// @version 1.0.0
// @description 장기 실행 프로세스를 시작/취소하고 진행 상태를 조회하는 제어 API입니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

const banner = `
  _                             ____
 | |    ___   _ __    __ _     |  _ \  _ __  ___    ___  ___  ___  ___
 | |   / _ \ | '_ \  / _' |    | |_) || '__|/ _ \  / __|/ _ \/ __|/ __|
 | |__| (_) || | | || (_| |    |  __/ | |  | (_) || (__|  __/\__ \\__ \
 |_____\___/ |_| |_| \__, |    |_|    |_|   \___/  \___|\___||___/|___/
                     |___/                                    %s
--------------------------------------------------------------------------------
`

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 프로그램을 종료합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()

	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", buildInfo.Fields()).Info("프로그램 초기화 시작")

	os.Exit(run(appConfig, buildInfo, os.Stdin, os.Stdout))
}

// run 서비스를 만들어 시작하고 종료 신호를 기다립니다. 프로세스 종료 코드를 반환합니다.
func run(appConfig *config.AppConfig, buildInfo version.Info, in io.Reader, out io.Writer) int {
	services, consoleService := newServices(appConfig, buildInfo, in, out)

	group := &serviceGroup{}
	if err := group.start(services...); err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("서비스 초기화 실패")

		return 1
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	var consoleDone <-chan struct{}
	if consoleService != nil {
		consoleDone = consoleService.Done()
	}

	applog.WithComponent("main").Info("프로그램 가동 완료")

	select {
	case sig := <-termC:
		applog.WithComponentAndFields("main", applog.Fields{
			"signal": sig.String(),
		}).Info("종료 신호 수신")

	case <-consoleDone:
		applog.WithComponent("main").Info("콘솔 종료 명령 수신")
	}

	group.stop()

	applog.WithComponent("main").Info("프로그램 종료")

	return 0
}

// serviceGroup 서비스마다 별도의 중지 컨텍스트를 두고, 시작의 역순으로 하나씩 중지합니다.
// 먼저 시작된 서비스(알림 등)는 나중에 시작된 서비스가 완전히 중지될 때까지 동작합니다.
type serviceGroup struct {
	stops []func()
}

// start 서비스를 순서대로 시작합니다. 하나라도 실패하면 이미 시작된 서비스를 모두 중지하고 에러를 반환합니다.
func (g *serviceGroup) start(services ...contract.Service) error {
	for _, s := range services {
		serviceStopCtx, cancel := context.WithCancel(context.Background())
		serviceStopWG := &sync.WaitGroup{}

		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel()
			serviceStopWG.Wait()
			g.stop()

			return err
		}

		g.stops = append(g.stops, func() {
			cancel()
			serviceStopWG.Wait()
		})
	}

	return nil
}

// stop 시작의 역순으로 서비스를 중지하고 각각의 종료를 기다립니다.
func (g *serviceGroup) stop() {
	for i := len(g.stops) - 1; i >= 0; i-- {
		g.stops[i]()
	}
	g.stops = nil
}

// newServices 시작 순서대로 서비스를 생성합니다.
// 알림 서비스가 먼저 시작되고 가장 나중에 중지되어야 실행 서비스가 종료 시점의 결과 알림까지 보낼 수 있습니다.
func newServices(appConfig *config.AppConfig, buildInfo version.Info, in io.Reader, out io.Writer) ([]contract.Service, *console.Service) {
	notificationService := notification.NewService(appConfig)

	runnerService := runner.NewService(appConfig, &idgen.Generator{})
	runnerService.SetNotificationSender(notificationService)

	services := []contract.Service{
		notificationService,
		runnerService,
		scheduler.NewService(appConfig.Scheduler, runnerService, notificationService),
	}

	if appConfig.API.Enabled {
		services = append(services, api.NewService(appConfig, runnerService, notificationService, buildInfo))
	}

	var consoleService *console.Service
	if appConfig.Console.Enabled {
		consoleService = console.NewService(runnerService, in, out)
		services = append(services, consoleService)
	}

	return services, consoleService
}
