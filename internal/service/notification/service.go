// Package notification 프로세스 실행 결과를 설정된 모든 알림 채널로 발송하는 서비스를 제공합니다.
package notification

import (
	"context"
	"errors"
	"sync"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/notification/notifier"
	"github.com/darkkaiser/long-process/internal/service/notification/notifier/lognotifier"
	"github.com/darkkaiser/long-process/internal/service/notification/notifier/telegram"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "notification.service"

var (
	// ErrServiceStopped 서비스가 실행 중이 아닐 때 알림을 요청하면 반환됩니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "Notification 서비스가 실행 중이 아니어서 메시지를 전송할 수 없습니다")

	// ErrNoNotifier 활성화된 Notifier가 하나도 없을 때 Start가 반환합니다.
	ErrNoNotifier = apperrors.New(apperrors.NotFound, "활성화된 Notifier가 없습니다. notifier.log 또는 notifier.telegrams 설정을 확인해주세요")
)

var _ contract.NotificationSender = (*Service)(nil)

// Service 등록된 모든 Notifier로 알림을 전달합니다.
type Service struct {
	appConfig *config.AppConfig

	creators  []notifier.CreatorFunc
	notifiers []notifier.Notifier

	// notifiersStopWG 모든 Notifier의 Run 종료를 기다린다.
	notifiersStopWG sync.WaitGroup

	running   bool
	runningMu sync.RWMutex
}

func NewService(appConfig *config.AppConfig) *Service {
	return &Service{
		appConfig: appConfig,

		creators: []notifier.CreatorFunc{
			lognotifier.NewCreator(),
			telegram.NewCreator(),
		},
	}
}

// SetCreators Notifier 생성 함수를 교체합니다. Start 전에 호출해야 합니다.
func (s *Service) SetCreators(creators ...notifier.CreatorFunc) {
	s.creators = creators
}

// Start 설정된 Notifier들을 생성하고 각각의 발송 루프를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작됨!!!")
		return nil
	}

	var notifiers []notifier.Notifier
	for _, create := range s.creators {
		created, err := create(s.appConfig)
		if err != nil {
			defer serviceStopWG.Done()
			return apperrors.Wrap(err, apperrors.Internal, "Notifier 초기화 중 에러가 발생했습니다")
		}
		notifiers = append(notifiers, created...)
	}

	if len(notifiers) == 0 {
		defer serviceStopWG.Done()
		return ErrNoNotifier
	}

	for _, n := range notifiers {
		s.notifiersStopWG.Add(1)
		go func(n notifier.Notifier) {
			defer s.notifiersStopWG.Done()
			n.Run(serviceStopCtx)
		}(n)

		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": n.ID(),
		}).Debug("Notifier가 Notification 서비스에 등록됨")
	}

	s.notifiers = notifiers
	s.running = true

	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"notifiers": len(notifiers),
	}).Info("Notification 서비스 시작됨")

	return nil
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("Notification 서비스 중지중...")

	// Notifier들은 같은 컨텍스트로 종료되며 남은 알림을 처리한 뒤 반환한다.
	s.notifiersStopWG.Wait()

	s.runningMu.Lock()
	s.running = false
	s.notifiers = nil
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 중지됨")
}

// NotifyDefault 모든 Notifier로 알림을 보냅니다.
// 하나 이상의 Notifier가 요청을 접수하면 nil을 반환합니다. 실제 발송 성공 여부는 아닙니다.
func (s *Service) NotifyDefault(message string) error {
	return s.notify(notifier.Notification{Message: message})
}

// NotifyDefaultWithError 모든 Notifier로 "오류" 알림을 보냅니다.
func (s *Service) NotifyDefaultWithError(message string) error {
	return s.notify(notifier.Notification{Message: message, ErrorOccurred: true})
}

func (s *Service) notify(notification notifier.Notification) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		applog.WithComponent(component).Warn("Notification 서비스가 중지된 상태여서 메시지를 전송할 수 없습니다")
		return ErrServiceStopped
	}

	var errs []error
	for _, n := range s.notifiers {
		if err := n.Notify(notification); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": n.ID(),
				"error":       err,
			}).Warn("Notifier가 알림 요청을 거부하였습니다")

			errs = append(errs, err)
		}
	}

	if len(errs) == len(s.notifiers) {
		return apperrors.Wrap(errors.Join(errs...), apperrors.Unavailable, "모든 Notifier가 알림 요청을 거부하였습니다")
	}

	return nil
}
