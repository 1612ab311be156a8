// Package scheduler 설정된 Cron 스케줄에 맞춰 프로세스 실행을 요청하는 서비스를 제공합니다.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/pkg/cronx"
	applog "github.com/darkkaiser/long-process/pkg/log"
	"github.com/robfig/cron/v3"
)

const component = "scheduler.service"

// submitTimeout 실행 요청이 이벤트 루프에 접수되기까지의 최대 대기 시간
const submitTimeout = 5 * time.Second

// Scheduler scheduler.time_spec 주기마다 RunByScheduler 실행 요청을 보내는 서비스입니다.
type Scheduler struct {
	schedulerConfig config.SchedulerConfig

	cron *cron.Cron

	submitter          contract.ProcessSubmitter
	notificationSender contract.NotificationSender

	running   bool
	runningMu sync.Mutex
}

// NewService 새 Scheduler를 생성합니다.
func NewService(schedulerConfig config.SchedulerConfig, submitter contract.ProcessSubmitter, notificationSender contract.NotificationSender) *Scheduler {
	if submitter == nil {
		panic("ProcessSubmitter는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Scheduler{
		schedulerConfig: schedulerConfig,

		submitter:          submitter,
		notificationSender: notificationSender,
	}
}

// Start Cron 엔진을 시작합니다. scheduler.runnable이 꺼져 있으면 스케줄을 등록하지 않습니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Scheduler 서비스 시작중...")

	if s.submitter == nil {
		serviceStopWG.Done()
		return ErrProcessSubmitterNotInitialized
	}
	if s.notificationSender == nil {
		serviceStopWG.Done()
		return ErrNotificationSenderNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// 6필드(초 분 시 일 월 요일) 표현식, 패닉 복구, 이전 요청이 끝나지 않았으면 건너뜀
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	s.register()

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"runnable":             s.schedulerConfig.Runnable,
		"time_spec":            s.schedulerConfig.TimeSpec,
		"registered_schedules": len(s.cron.Entries()),
	}).Info("Scheduler 서비스 시작됨")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop Cron 엔진을 중지하고 실행 중인 요청이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Scheduler 서비스 중지중...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 중지됨")
}

func (s *Scheduler) register() {
	if !s.schedulerConfig.Runnable {
		return
	}

	timeSpec := s.schedulerConfig.TimeSpec
	if _, err := s.cron.AddFunc(timeSpec, s.submit); err != nil {
		s.logAndNotifyError(fmt.Sprintf("스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec: %s)", timeSpec), newErrInvalidCronSpec(timeSpec, err))
	}
}

// submit 스케줄 시각마다 실행 요청을 보냅니다.
// 요청 컨텍스트는 서비스 종료와 분리되며, Stop은 진행 중인 submit이 끝나길 기다린다.
func (s *Scheduler) submit() {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	err := s.submitter.Submit(ctx, contract.RunByScheduler)
	switch {
	case err == nil:
		applog.WithComponent(component).Info("스케줄에 따라 프로세스 실행을 요청하였습니다")

	case apperrors.Is(err, apperrors.Conflict):
		// 이미 실행 중인 경우는 실행 서비스가 직접 알린다.
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Info("프로세스가 이미 실행 중이어서 이번 스케줄을 건너뜁니다")

	default:
		s.logAndNotifyError("작업 요청 실패: 프로세스 실행 요청 중 오류가 발생했습니다", err)
	}
}

func (s *Scheduler) logAndNotifyError(message string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.schedulerConfig.TimeSpec,
		"error":     err,
	}).Error(message)

	if notifyErr := s.notificationSender.NotifyDefaultWithError(fmt.Sprintf("%s\n\n☑ %v", message, err)); notifyErr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": notifyErr,
		}).Warn("스케줄러 오류 알림 발송 요청이 실패하였습니다")
	}
}
