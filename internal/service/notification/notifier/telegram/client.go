package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botClient 텔레그램 봇 API 중 Notifier가 사용하는 부분입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetSelf() tgbotapi.User
}

type defaultBotClient struct {
	*tgbotapi.BotAPI
}

func (c *defaultBotClient) GetSelf() tgbotapi.User {
	return c.Self
}
