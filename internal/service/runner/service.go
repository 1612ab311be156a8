// Package runner 장기 실행 프로세스를 호스팅하는 서비스를 제공합니다.
//
// 콘솔, HTTP API, 스케줄러 등 여러 트리거의 시작/취소 요청은 모두 채널을 통해 단일 이벤트 루프로
// 직렬화되며, 프로세스가 종료될 때마다 결과가 알림으로 발송됩니다.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/pkg/mark"
	"github.com/darkkaiser/long-process/internal/pkg/observable"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/task"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "runner.service"

const (
	// defaultQueueSize 요청 채널의 버퍼 크기
	defaultQueueSize = 10

	// defaultStopTimeout 서비스 종료 시 실행 중인 프로세스의 취소 완료를 기다리는 최대 시간
	defaultStopTimeout = 30 * time.Second
)

type submitRequest struct {
	runBy   contract.RunBy
	resultC chan error
}

type cancelRequest struct {
	resultC chan error
}

// runInfo 한 번의 실행에 대한 메타데이터입니다.
type runInfo struct {
	run        uint64
	instanceID contract.InstanceID
	runBy      contract.RunBy
	startedAt  time.Time
	finishedAt time.Time
}

func (r runInfo) elapsed(now time.Time) time.Duration {
	switch {
	case r.startedAt.IsZero():
		return 0
	case !r.finishedAt.IsZero():
		return r.finishedAt.Sub(r.startedAt)
	default:
		return now.Sub(r.startedAt)
	}
}

// Service 하나의 task.Task를 소유하고 시작/취소 요청을 직렬화하는 서비스입니다.
type Service struct {
	appConfig *config.AppConfig

	task *task.Task

	idGenerator        contract.IDGenerator
	notificationSender contract.NotificationSender

	submitC chan submitRequest
	cancelC chan cancelRequest

	// doneC 작업 고루틴이 종료 상태 알림을 이벤트 루프로 전달하는 채널
	doneC chan task.StateChange

	// loopDoneC 이벤트 루프가 끝나면 닫힌다.
	loopDoneC chan struct{}

	stopTimeout time.Duration

	watchers observable.Observers[contract.ProcessStatus]

	mu   sync.Mutex
	last runInfo

	running   bool
	runningMu sync.Mutex
}

// NewService 설정의 process 항목으로 구성된 Service를 생성합니다.
func NewService(appConfig *config.AppConfig, idGenerator contract.IDGenerator) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}

	return newService(appConfig, idGenerator, task.Options{
		Steps:     appConfig.Process.Steps,
		StepDelay: appConfig.Process.StepDelay,
	})
}

func newService(appConfig *config.AppConfig, idGenerator contract.IDGenerator, opts task.Options) *Service {
	if idGenerator == nil {
		panic("IDGenerator는 필수입니다")
	}

	s := &Service{
		appConfig: appConfig,

		task: task.New(opts),

		idGenerator: idGenerator,

		submitC:   make(chan submitRequest, defaultQueueSize),
		cancelC:   make(chan cancelRequest, defaultQueueSize),
		doneC:     make(chan task.StateChange, defaultQueueSize),
		loopDoneC: make(chan struct{}),

		stopTimeout: defaultStopTimeout,
	}

	s.task.OnStateChanged(s.onStateChanged)
	s.task.OnProgress(func(int) {
		s.watchers.Notify(s.Status())
	})

	return s
}

// SetNotificationSender 실행 결과를 발송할 NotificationSender를 주입합니다. Start 전에 호출해야 합니다.
func (s *Service) SetNotificationSender(notificationSender contract.NotificationSender) {
	s.notificationSender = notificationSender
}

// Start 이벤트 루프를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("프로세스 실행 서비스 시작중...")

	if s.notificationSender == nil {
		defer serviceStopWG.Done()
		return ErrNotificationSenderNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("프로세스 실행 서비스가 이미 시작됨!!!")
		return nil
	}

	s.running = true

	go s.runEventLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"steps":      s.task.Steps(),
		"step_delay": s.appConfig.Process.StepDelay.String(),
	}).Info("프로세스 실행 서비스 시작됨")

	return nil
}

func (s *Service) runEventLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()
	defer close(s.loopDoneC)

	for {
		// 한 회차의 패닉이 루프 전체를 멈추지 않도록 회차 단위로 복구한다.
		shouldStop := func() bool {
			defer func() {
				if r := recover(); r != nil {
					applog.WithComponentAndFields(component, applog.Fields{
						"panic":            r,
						"submit_queue_len": len(s.submitC),
						"cancel_queue_len": len(s.cancelC),
						"done_queue_len":   len(s.doneC),
					}).Error("이벤트 루프에서 패닉이 발생하여 복구하였습니다")
				}
			}()

			select {
			case req := <-s.submitC:
				s.handleSubmit(req)

			case req := <-s.cancelC:
				s.handleCancel(req)

			case change := <-s.doneC:
				s.handleDone(change)

			case <-serviceStopCtx.Done():
				s.handleStop()
				return true
			}

			return false
		}()

		if shouldStop {
			return
		}
	}
}

func (s *Service) handleSubmit(req submitRequest) {
	s.mu.Lock()
	started := s.task.Start()
	if started {
		s.last = runInfo{
			run:        s.task.RunCount(),
			instanceID: s.idGenerator.New(),
			runBy:      req.runBy,
			startedAt:  time.Now(),
		}
	}
	last := s.last
	s.mu.Unlock()

	if !started {
		applog.WithComponentAndFields(component, applog.Fields{
			"run_by":      req.runBy,
			"instance_id": last.instanceID,
		}).Warn("프로세스가 이미 실행 중이어서 시작 요청을 무시합니다")

		s.notify("프로세스가 이미 실행 중입니다. 시작 요청이 무시되었습니다.", false)
		req.resultC <- ErrAlreadyRunning
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"run_by":      last.runBy,
		"instance_id": last.instanceID,
	}).Info("프로세스 실행 시작")

	req.resultC <- nil
}

func (s *Service) handleCancel(req cancelRequest) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	fields := applog.Fields{"instance_id": last.instanceID}

	switch {
	case s.task.RequestCancel():
		applog.WithComponentAndFields(component, fields).Info("프로세스 취소 요청 접수")
		req.resultC <- nil

	case s.task.CancelRequested():
		applog.WithComponentAndFields(component, fields).Debug("이미 취소가 요청된 프로세스입니다")
		req.resultC <- nil

	default:
		applog.WithComponentAndFields(component, fields).Warn("실행 중인 프로세스가 없어 취소 요청을 무시합니다")

		s.notify("취소할 실행 중인 프로세스가 없습니다."+mark.Failed.WithSpace()+" 취소 요청이 실패하였습니다.", true)
		req.resultC <- ErrNotRunning
	}
}

func (s *Service) handleDone(change task.StateChange) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	fields := applog.Fields{
		"run":         change.Run,
		"instance_id": last.instanceID,
		"run_by":      last.runBy,
		"state":       change.State,
		"elapsed":     last.elapsed(time.Now()).String(),
	}

	if last.run != change.Run {
		fields["current_run"] = last.run
		applog.WithComponentAndFields(component, fields).Warn("현재 실행과 일치하지 않는 종료 알림을 무시합니다")
		return
	}

	if change.Err != nil {
		fields["error"] = change.Err
		applog.WithComponentAndFields(component, fields).Error("프로세스가 오류로 중단되었습니다")
	} else {
		applog.WithComponentAndFields(component, fields).Info("프로세스 실행 종료")
	}

	message, errorOccurred := outcomeMessage(last, change)
	s.notify(message, errorOccurred)
}

// handleStop 실행 중인 프로세스를 취소하고 종료될 때까지(최대 stopTimeout) 기다립니다.
func (s *Service) handleStop() {
	applog.WithComponent(component).Info("프로세스 실행 서비스 중지중...")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	if s.task.RequestCancel() {
		applog.WithComponent(component).Info("서비스 종료를 위해 실행 중인 프로세스를 취소합니다")
	}

	timer := time.NewTimer(s.stopTimeout)
	defer timer.Stop()

wait:
	for {
		select {
		case change := <-s.doneC:
			s.handleDone(change)

		case <-s.task.Done():
			break wait

		case <-timer.C:
			applog.WithComponentAndFields(component, applog.Fields{
				"timeout": s.stopTimeout.String(),
			}).Warn("프로세스 종료 대기 시간을 초과하였습니다")
			break wait
		}
	}

	// Done 직전에 전달된 종료 알림
	for {
		select {
		case change := <-s.doneC:
			s.handleDone(change)
		default:
			applog.WithComponent(component).Info("프로세스 실행 서비스 중지됨")
			return
		}
	}
}

func (s *Service) onStateChanged(change task.StateChange) {
	if change.State.IsTerminal() {
		s.mu.Lock()
		if s.last.run == change.Run {
			s.last.finishedAt = time.Now()
		}
		s.mu.Unlock()
	}

	s.watchers.Notify(s.Status())

	if change.State.IsTerminal() {
		select {
		case s.doneC <- change:
		case <-s.loopDoneC:
		}
	}
}

func (s *Service) notify(message string, errorOccurred bool) {
	send := s.notificationSender.NotifyDefault
	if errorOccurred {
		send = s.notificationSender.NotifyDefaultWithError
	}

	if err := send(message); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("알림 발송 요청이 실패하였습니다")
	}
}

// Submit 프로세스 시작을 요청하고 이벤트 루프의 처리 결과를 기다립니다.
func (s *Service) Submit(ctx context.Context, runBy contract.RunBy) error {
	if err := runBy.Validate(); err != nil {
		return err
	}

	req := submitRequest{runBy: runBy, resultC: make(chan error, 1)}

	return dispatch(ctx, s, s.submitC, req, req.resultC)
}

// Cancel 실행 중인 프로세스의 취소를 요청하고 이벤트 루프의 처리 결과를 기다립니다.
func (s *Service) Cancel(ctx context.Context) error {
	req := cancelRequest{resultC: make(chan error, 1)}

	return dispatch(ctx, s, s.cancelC, req, req.resultC)
}

func dispatch[T any](ctx context.Context, s *Service, c chan<- T, req T, resultC <-chan error) error {
	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	if !running {
		return ErrServiceNotRunning
	}

	select {
	case c <- req:
	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), apperrors.Timeout, "요청 대기열이 가득 차 요청을 전달하지 못했습니다")
	case <-s.loopDoneC:
		return ErrServiceNotRunning
	}

	select {
	case err := <-resultC:
		return err
	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), apperrors.Timeout, "요청 처리 결과를 기다리는 중 시간이 초과되었습니다")
	case <-s.loopDoneC:
		// 루프가 요청을 처리한 직후 종료되었을 수 있다.
		select {
		case err := <-resultC:
			return err
		default:
			return ErrServiceNotRunning
		}
	}
}

// Status 현재 상태의 스냅샷을 반환합니다.
func (s *Service) Status() contract.ProcessStatus {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	state := s.task.State()

	return contract.ProcessStatus{
		State:    state.String(),
		Progress: s.task.Progress(),
		Steps:    s.task.Steps(),

		CanStart:        task.CanStart(state),
		CanCancel:       task.CanCancel(state),
		CancelRequested: s.task.CancelRequested(),

		InstanceID: last.instanceID,
		RunBy:      last.runBy,
		StartedAt:  last.startedAt,
		Elapsed:    last.elapsed(time.Now()),
	}
}

// Watch 상태 또는 진행률이 바뀔 때마다 fn을 호출합니다.
func (s *Service) Watch(fn func(contract.ProcessStatus)) (unsubscribe func()) {
	return s.watchers.Subscribe(fn)
}
