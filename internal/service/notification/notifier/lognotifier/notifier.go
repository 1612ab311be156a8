// Package lognotifier 알림을 애플리케이션 로그로 남기는 Notifier를 제공합니다.
package lognotifier

import (
	"context"

	"github.com/darkkaiser/long-process/internal/config"
	"github.com/darkkaiser/long-process/internal/service/notification/notifier"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "notification.notifier.log"

// ID 로그 Notifier의 고정 식별자
const ID notifier.NotifierID = "log"

const bufferSize = 100

type logNotifier struct {
	*notifier.Base
}

// NewCreator notifier.log.usable 설정이 켜져 있으면 로그 Notifier를 생성하는 CreatorFunc를 반환합니다.
func NewCreator() notifier.CreatorFunc {
	return func(appConfig *config.AppConfig) ([]notifier.Notifier, error) {
		if !appConfig.Notifier.Log.Usable {
			return nil, nil
		}
		return []notifier.Notifier{New()}, nil
	}
}

// New 로그 Notifier를 생성합니다.
func New() notifier.Notifier {
	return &logNotifier{Base: notifier.NewBase(ID, bufferSize)}
}

func (n *logNotifier) Run(ctx context.Context) {
	n.Consume(ctx, n.write)
}

func (n *logNotifier) write(_ context.Context, notification notifier.Notification) {
	entry := applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": n.ID(),
	})

	if notification.ErrorOccurred {
		entry.Error(notification.Message)
		return
	}
	entry.Info(notification.Message)
}
