package task

import "fmt"

// State 작업의 생명주기 상태입니다.
//
//	Idle ──Start──▶ Running ──모든 단계 완료──▶ Completed ──Start──▶ Running
//	                Running ──취소 요청 관찰──▶ Cancelled ──Start──▶ Running
type State int

const (
	// Idle 한 번도 시작되지 않은 초기 상태
	Idle State = iota

	// Running 작업 고루틴이 실행 중인 상태
	Running

	// Completed 모든 단계를 마치고 종료된 상태
	Completed

	// Cancelled 취소 요청을 관찰하여 중단된 상태 (작업 단계의 패닉으로 중단된 경우 포함)
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal Completed 또는 Cancelled인지 반환합니다.
func (s State) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanStart state에서 새 실행을 시작할 수 있는지 반환합니다.
func CanStart(state State) bool {
	return state != Running
}

// CanCancel state에서 취소를 요청할 수 있는지 반환합니다.
func CanCancel(state State) bool {
	return state == Running
}
