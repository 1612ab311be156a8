package telegram

import (
	"net/http"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/notification/notifier"
	applog "github.com/darkkaiser/long-process/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	bufferSize = 30

	// httpClientTimeout 봇 API 호출의 HTTP 타임아웃
	httpClientTimeout = 70 * time.Second

	defaultRetryDelay = 1 * time.Second

	// 초당 허용 요청 수와 순간 최대 허용 요청 수
	defaultRateLimit = 1
	defaultRateBurst = 5
)

// NewCreator 설정된 텔레그램 봇마다 Notifier를 생성하는 CreatorFunc를 반환합니다.
func NewCreator() notifier.CreatorFunc {
	return buildCreator(newBotClient)
}

type clientFactory func(botToken string, debug bool) (botClient, error)

func buildCreator(newClient clientFactory) notifier.CreatorFunc {
	return func(appConfig *config.AppConfig) ([]notifier.Notifier, error) {
		var notifiers []notifier.Notifier

		for _, t := range appConfig.Notifier.Telegrams {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": t.ID,
				"bot_token":   applog.MaskSensitiveData(t.BotToken),
				"chat_id":     t.ChatID,
			}).Debug("텔레그램 봇 클라이언트 초기화")

			client, err := newClient(t.BotToken, appConfig.Debug)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "텔레그램 Notifier('%s')의 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요", t.ID)
			}

			notifiers = append(notifiers, newNotifier(notifier.NotifierID(t.ID), t.ChatID, client))
		}

		return notifiers, nil
	}
}

// newBotClient 타임아웃이 설정된 HTTP 클라이언트로 봇 API 클라이언트를 생성합니다.
func newBotClient(botToken string, debug bool) (botClient, error) {
	client := &http.Client{Timeout: httpClientTimeout}

	botAPI, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, err
	}
	botAPI.Debug = debug

	return &defaultBotClient{BotAPI: botAPI}, nil
}

func newNotifier(id notifier.NotifierID, chatID int64, client botClient) *telegramNotifier {
	return &telegramNotifier{
		Base: notifier.NewBase(id, bufferSize),

		chatID: chatID,
		client: client,

		retryDelay: defaultRetryDelay,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
	}
}
