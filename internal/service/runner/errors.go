package runner

import (
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
)

var (
	// ErrNotificationSenderNotInitialized Start 전에 NotificationSender가 주입되지 않았을 때 반환됩니다.
	ErrNotificationSenderNotInitialized = apperrors.New(apperrors.Internal, "NotificationSender 객체가 초기화되지 않았습니다")

	// ErrServiceNotRunning 서비스가 실행 중이 아니어서 요청을 처리할 수 없을 때 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "프로세스 실행 서비스가 실행 중이지 않아 요청을 수행할 수 없습니다")

	// ErrAlreadyRunning 프로세스가 이미 실행 중이어서 시작 요청을 거부했을 때 반환됩니다.
	ErrAlreadyRunning = apperrors.New(apperrors.Conflict, "프로세스가 이미 실행 중입니다")

	// ErrNotRunning 실행 중인 프로세스가 없어 취소 요청을 거부했을 때 반환됩니다.
	ErrNotRunning = apperrors.New(apperrors.Conflict, "취소할 실행 중인 프로세스가 없습니다")
)
