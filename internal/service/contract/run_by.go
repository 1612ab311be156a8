package contract

import (
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
)

// RunBy 프로세스 실행을 요청한 주체입니다.
type RunBy int

const (
	// RunByUnknown 초기화되지 않은 값입니다.
	RunByUnknown RunBy = iota

	// RunByUser 콘솔에서 사용자가 직접 요청한 실행입니다.
	RunByUser

	// RunByAPI HTTP API로 요청된 실행입니다.
	RunByAPI

	// RunByScheduler 스케줄러에 의한 자동 실행입니다.
	RunByScheduler
)

func (r RunBy) IsValid() bool {
	switch r {
	case RunByUser, RunByAPI, RunByScheduler:
		return true
	default:
		return false
	}
}

func (r RunBy) Validate() error {
	if !r.IsValid() {
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 실행 주체(RunBy=%d)입니다", int(r))
	}
	return nil
}

func (r RunBy) String() string {
	switch r {
	case RunByUser:
		return "User"
	case RunByAPI:
		return "API"
	case RunByScheduler:
		return "Scheduler"
	default:
		return "Unknown"
	}
}

// MarshalText JSON 응답에서 문자열로 표현되도록 합니다.
func (r RunBy) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
