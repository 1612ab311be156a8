// Package notifier 알림 채널(Notifier)의 공통 인터페이스와 큐 기반 기본 구현을 제공합니다.
package notifier

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "notification.notifier"

// DefaultDrainTimeout 종료 시 큐에 남은 알림을 처리하기 위해 기다리는 최대 시간
const DefaultDrainTimeout = 10 * time.Second

var (
	// ErrClosed 종료된 Notifier에 알림을 요청했을 때 반환됩니다.
	ErrClosed = apperrors.New(apperrors.Unavailable, "Notifier가 종료되어 알림을 전송할 수 없습니다")

	// ErrQueueFull 발송 대기열이 가득 차 알림 요청이 거부되었을 때 반환됩니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "발송 대기열이 가득 차 알림 요청이 거부되었습니다")
)

// NotifierID 알림 채널 식별자
type NotifierID string

// Notification 발송할 알림 한 건입니다.
type Notification struct {
	Message       string
	ErrorOccurred bool
}

// Validate 알림 내용이 비어 있으면 에러를 반환합니다.
func (n Notification) Validate() error {
	if strings.TrimSpace(n.Message) == "" {
		return apperrors.New(apperrors.InvalidInput, "알림 메시지가 비어 있습니다")
	}
	return nil
}

// Notifier 알림 채널 하나를 나타냅니다.
type Notifier interface {
	ID() NotifierID

	// Notify 알림을 발송 대기열에 등록합니다. 실제 발송은 Run 고루틴에서 비동기로 이루어집니다.
	Notify(notification Notification) error

	// Run ctx가 취소될 때까지 대기열의 알림을 발송하고, 종료 전에 남은 알림을 처리합니다.
	Run(ctx context.Context)
}

// CreatorFunc 설정으로부터 Notifier들을 생성합니다.
type CreatorFunc func(appConfig *config.AppConfig) ([]Notifier, error)

// HandlerFunc 대기열에서 꺼낸 알림 한 건을 실제로 발송합니다.
type HandlerFunc func(ctx context.Context, notification Notification)

// Base 발송 대기열과 종료 상태를 관리하는 Notifier 공통 구현입니다.
// 구체 Notifier는 Base를 임베딩하고 Run에서 Consume을 호출합니다.
type Base struct {
	id NotifierID

	notificationC chan Notification

	drainTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewBase 새 Base를 생성합니다.
func NewBase(id NotifierID, bufferSize int) *Base {
	return &Base{
		id:            id,
		notificationC: make(chan Notification, bufferSize),
		drainTimeout:  DefaultDrainTimeout,
		done:          make(chan struct{}),
	}
}

func (b *Base) ID() NotifierID {
	return b.id
}

// Notify 알림을 대기열에 등록합니다. 대기열이 가득 차 있으면 기다리지 않고 ErrQueueFull을 반환합니다.
func (b *Base) Notify(notification Notification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	select {
	case b.notificationC <- notification:
		return nil
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": b.id,
			"queue_cap":   cap(b.notificationC),
		}).Warn("알림 요청 거부: 발송 대기열 용량 초과")
		return ErrQueueFull
	}
}

// Close 새 알림 요청을 더 이상 받지 않습니다. 여러 번 호출해도 안전합니다.
func (b *Base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.done)
	}
}

// Done Close가 호출되면 닫히는 채널을 반환합니다.
func (b *Base) Done() <-chan struct{} {
	return b.done
}

// Consume ctx가 취소되거나 Close될 때까지 대기열의 알림을 handle로 발송합니다.
// 종료 시 Close를 호출한 뒤 남은 알림을 drainTimeout 안에서 모두 처리합니다.
func (b *Base) Consume(ctx context.Context, handle HandlerFunc) {
	defer b.drain(handle)

	for {
		select {
		case notification := <-b.notificationC:
			b.dispatch(ctx, handle, notification)

		case <-ctx.Done():
			return

		case <-b.done:
			return
		}
	}
}

func (b *Base) drain(handle HandlerFunc) {
	// Close 이후에는 대기열에 새 알림이 들어오지 않는다.
	b.Close()

	drainCtx, cancel := context.WithTimeout(context.Background(), b.drainTimeout)
	defer cancel()

	for {
		select {
		case notification := <-b.notificationC:
			b.dispatch(drainCtx, handle, notification)

		default:
			return
		}

		if drainCtx.Err() != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": b.id,
				"remaining":   len(b.notificationC),
			}).Warn("종료 대기 시간을 초과하여 남은 알림을 버립니다")
			return
		}
	}
}

func (b *Base) dispatch(ctx context.Context, handle HandlerFunc, notification Notification) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": b.id,
				"panic":       r,
			}).Error("알림 발송 중 패닉이 발생하여 해당 알림을 건너뜁니다")
		}
	}()

	handle(ctx, notification)
}
