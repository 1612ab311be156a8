package config

import "time"

// AppConfig 애플리케이션 설정의 최상위 구조체입니다.
type AppConfig struct {
	Debug     bool            `json:"debug"`
	Process   ProcessConfig   `json:"process"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Notifier  NotifierConfig  `json:"notifier"`
	API       APIConfig       `json:"api"`
	Console   ConsoleConfig   `json:"console"`
}

// ProcessConfig 장기 실행 프로세스의 단계 구성입니다.
type ProcessConfig struct {
	// Steps 프로세스를 구성하는 단계 수. 단계 i가 끝나면 진행률 i*100/Steps가 보고됩니다.
	Steps int `json:"steps" validate:"min=1,max=100"`

	// StepDelay 단계 하나의 작업 시간
	StepDelay time.Duration `json:"step_delay" validate:"gt=0s,lte=1h"`
}

// SchedulerConfig 프로세스를 주기적으로 시작하는 스케줄러 설정입니다.
type SchedulerConfig struct {
	Runnable bool   `json:"runnable"`
	TimeSpec string `json:"time_spec"`
}

// NotifierConfig 실행 결과 알림 설정입니다.
type NotifierConfig struct {
	Log       LogNotifierConfig `json:"log"`
	Telegrams []TelegramConfig  `json:"telegrams" validate:"dive"`
}

// LogNotifierConfig 알림을 애플리케이션 로그로 남기는 Notifier 설정입니다.
type LogNotifierConfig struct {
	Usable bool `json:"usable"`
}

// TelegramConfig 텔레그램 봇 Notifier 설정입니다.
type TelegramConfig struct {
	ID       string `json:"id" validate:"required"`
	BotToken string `json:"bot_token" validate:"required,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required"`
}

// APIConfig HTTP 제어 API 설정입니다.
type APIConfig struct {
	Enabled    bool `json:"enabled"`
	ListenPort int  `json:"listen_port" validate:"min=1,max=65535"`
}

// ConsoleConfig 표준 입력 명령 처리 설정입니다.
type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
}
