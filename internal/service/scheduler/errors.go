package scheduler

import (
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
)

var (
	// ErrProcessSubmitterNotInitialized 서비스 시작 시 ProcessSubmitter가 초기화되지 않았을 때 반환됩니다.
	ErrProcessSubmitterNotInitialized = apperrors.New(apperrors.Internal, "ProcessSubmitter 객체가 초기화되지 않았습니다")

	// ErrNotificationSenderNotInitialized 서비스 시작 시 NotificationSender가 초기화되지 않았을 때 반환됩니다.
	ErrNotificationSenderNotInitialized = apperrors.New(apperrors.Internal, "NotificationSender 객체가 초기화되지 않았습니다")
)

// newErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때의 에러를 생성합니다.
func newErrInvalidCronSpec(timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec='%s')", timeSpec)
}
