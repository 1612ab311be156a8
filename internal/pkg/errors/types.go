package errors

import "strconv"

// ErrorType 에러의 성격을 분류하는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (복구된 패닉, 잘못된 상태 전이 등)
	Internal

	// System 시스템 또는 인프라 오류 (파일, 네트워크 등)
	System

	// InvalidInput 잘못된 입력값 (설정값 검증 실패 등)
	InvalidInput

	// Conflict 현재 상태와 충돌하는 요청 (이미 실행 중인 프로세스의 재시작 등)
	Conflict

	// NotFound 대상을 찾을 수 없음
	NotFound

	// Unavailable 서비스 일시적 사용 불가 (서비스 중지, 큐 포화 등)
	Unavailable

	// Timeout 작업 시간 초과
	Timeout
)

var errorTypeNames = [...]string{
	Unknown:      "Unknown",
	Internal:     "Internal",
	System:       "System",
	InvalidInput: "InvalidInput",
	Conflict:     "Conflict",
	NotFound:     "NotFound",
	Unavailable:  "Unavailable",
	Timeout:      "Timeout",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
