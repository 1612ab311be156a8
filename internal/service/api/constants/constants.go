// Package constants API 서비스 전반에서 사용하는 상수를 정의합니다.
package constants

import "time"

// 로깅 컴포넌트 이름
const (
	ComponentService       = "api.service"
	ComponentHandler       = "api.handler"
	ComponentMiddleware    = "api.middleware"
	ComponentErrorHandler  = "api.error_handler"
	ComponentHTTPLogger    = "api.middleware.http_logger"
	ComponentPanicRecovery = "api.middleware.panic_recovery"
	ComponentRateLimit     = "api.middleware.rate_limit"
)

// 서버 기본값
const (
	// ShutdownTimeout Graceful Shutdown 최대 대기 시간
	ShutdownTimeout = 5 * time.Second

	DefaultReadTimeout       = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	DefaultMaxBodySize = "16K"

	// IP당 초당 요청 수와 버스트
	DefaultRateLimitPerSecond = 10
	DefaultRateLimitBurst     = 20

	// RequestTimeout 시작/취소 요청이 실행 서비스에 접수되기까지의 최대 대기 시간
	RequestTimeout = 5 * time.Second
)

// 헬스체크
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyProcessRunner = "process_runner"
)

// 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."
	LogMsgNotifyFailed            = "API 서비스 > 오류 알림 발송 요청이 실패하였습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)

// 응답 에러 메시지
const (
	ErrMsgBadRequest         = "잘못된 요청입니다"
	ErrMsgNotFound           = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgConflict           = "현재 상태에서 수행할 수 없는 요청입니다"
	ErrMsgTooManyRequests    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgServiceUnavailable = "서비스가 점검 중이거나 종료되었습니다. 관리자에게 문의해 주세요"
	ErrMsgGatewayTimeout     = "요청 처리 시간이 초과되었습니다"
)

// 패닉 메시지
const (
	PanicMsgAppConfigRequired          = "AppConfig는 필수입니다"
	PanicMsgProcessControllerRequired  = "ProcessController는 필수입니다"
	PanicMsgNotificationSenderRequired = "NotificationSender는 필수입니다"
)
