// Package telegram 텔레그램 봇으로 알림을 발송하는 Notifier를 제공합니다.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/darkkaiser/long-process/internal/service/notification/notifier"
	applog "github.com/darkkaiser/long-process/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notification.notifier.telegram"

const (
	// messageMaxLength 메시지 한 건의 최대 바이트 수 (API 제한 4096자보다 여유 있게)
	messageMaxLength = 3900

	// sendTimeout 메시지 한 건(모든 청크와 재시도 포함)의 발송 제한 시간
	sendTimeout = 30 * time.Second

	maxRetries = 3

	errorFormat = "%s\n\n*** 오류가 발생하였습니다. ***"
)

type telegramNotifier struct {
	*notifier.Base

	chatID int64
	client botClient

	retryDelay time.Duration
	limiter    *rate.Limiter
}

// Run 대기열의 알림을 텔레그램으로 발송합니다.
func (n *telegramNotifier) Run(ctx context.Context) {
	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id":  n.ID(),
		"bot_username": n.client.GetSelf().UserName,
		"chat_id":      n.chatID,
	}).Debug("텔레그램 Notifier 시작됨")

	n.Consume(ctx, n.send)

	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": n.ID(),
		"chat_id":     n.chatID,
	}).Debug("텔레그램 Notifier 종료됨")
}

func (n *telegramNotifier) send(ctx context.Context, notification notifier.Notification) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := notification.Message
	if notification.ErrorOccurred {
		message = fmt.Sprintf(errorFormat, message)
	}

	for message != "" {
		var chunk string
		chunk, message = safeSplit(message, messageMaxLength)

		if err := n.sendWithRetry(ctx, chunk); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": n.ID(),
				"chat_id":     n.chatID,
				"error":       err,
			}).Error("텔레그램 메시지 발송에 실패하였습니다")
			return
		}
	}
}

// sendWithRetry 청크 하나를 발송하고, 재시도 가능한 오류면 최대 maxRetries회 시도합니다.
// 재시도를 포함한 모든 발송 시도가 속도 제한을 따릅니다.
func (n *telegramNotifier) sendWithRetry(ctx context.Context, chunk string) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}

		_, err := n.client.Send(tgbotapi.NewMessage(n.chatID, chunk))
		if err == nil {
			return nil
		}
		lastErr = err

		code, retryAfter := parseTelegramError(err)

		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": n.ID(),
			"attempt":     attempt,
			"status_code": code,
			"error":       err,
		}).Warn("텔레그램 메시지 발송 실패")

		if !shouldRetry(code) || attempt == maxRetries {
			break
		}

		timer := time.NewTimer(n.delayForRetry(retryAfter))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// shouldRetry 4xx 중 429만 재시도합니다. 상태 코드가 없는 네트워크 오류는 재시도합니다.
func shouldRetry(statusCode int) bool {
	if statusCode >= 400 && statusCode < 500 {
		return statusCode == http.StatusTooManyRequests
	}
	return true
}

func (n *telegramNotifier) delayForRetry(retryAfter int) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	return n.retryDelay
}

func parseTelegramError(err error) (code int, retryAfter int) {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}

	var apiErrValue tgbotapi.Error
	if errors.As(err, &apiErrValue) {
		return apiErrValue.Code, apiErrValue.ResponseParameters.RetryAfter
	}

	return 0, 0
}

// safeSplit s를 limit 바이트 이내의 UTF-8 경계에서 자릅니다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		return s[:limit], s[limit:]
	}

	return s[:i], s[i:]
}
