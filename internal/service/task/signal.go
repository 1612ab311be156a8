package task

import (
	"fmt"
	"sync/atomic"
)

// SignalState 취소 신호의 상태입니다. NotRequested -> Requested -> Observed 방향으로만 바뀝니다.
type SignalState int32

const (
	NotRequested SignalState = iota
	Requested
	Observed
)

func (s SignalState) String() string {
	switch s {
	case NotRequested:
		return "NotRequested"
	case Requested:
		return "Requested"
	case Observed:
		return "Observed"
	default:
		return fmt.Sprintf("SignalState(%d)", int32(s))
	}
}

// CancellationSignal 한 번의 실행에만 속하는 취소 신호입니다.
//
// 요청 측은 NotRequested -> Requested 전이만, 작업 고루틴은 Requested -> Observed 전이만 수행합니다.
// 실행이 끝나면 버려지며 다음 실행에는 새 신호가 만들어집니다.
type CancellationSignal struct {
	state atomic.Int32
}

// Request 취소를 요청합니다. 이번 호출로 상태가 바뀌었을 때만 true를 반환합니다.
func (s *CancellationSignal) Request() bool {
	return s.state.CompareAndSwap(int32(NotRequested), int32(Requested))
}

// Observe 요청된 취소를 관찰 처리합니다. 취소가 요청된 상태였다면 true를 반환합니다.
func (s *CancellationSignal) Observe() bool {
	return s.state.CompareAndSwap(int32(Requested), int32(Observed))
}

// State 현재 신호 상태를 반환합니다.
func (s *CancellationSignal) State() SignalState {
	return SignalState(s.state.Load())
}
