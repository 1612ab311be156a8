package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Guards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state      State
		canStart   bool
		canCancel  bool
		isTerminal bool
	}{
		{Idle, true, false, false},
		{Running, false, true, false},
		{Completed, true, false, true},
		{Cancelled, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.canStart, CanStart(tt.state))
			assert.Equal(t, tt.canCancel, CanCancel(tt.state))
			assert.Equal(t, tt.isTerminal, tt.state.IsTerminal())
		})
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cancelled", Cancelled.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.Equal(t, "Observed", Observed.String())
	assert.Equal(t, "SignalState(7)", SignalState(7).String())
}

// TestCancellationSignal_Transitions 신호가 NotRequested -> Requested -> Observed 방향으로만 전이되는지 검증합니다.
func TestCancellationSignal_Transitions(t *testing.T) {
	t.Parallel()

	var s CancellationSignal
	assert.Equal(t, NotRequested, s.State())

	assert.False(t, s.Observe(), "요청 전에는 관찰할 수 없습니다")
	assert.Equal(t, NotRequested, s.State())

	assert.True(t, s.Request())
	assert.False(t, s.Request(), "중복 요청은 상태를 바꾸지 않습니다")
	assert.Equal(t, Requested, s.State())

	assert.True(t, s.Observe())
	assert.False(t, s.Observe())
	assert.Equal(t, Observed, s.State())

	assert.False(t, s.Request(), "관찰 이후의 요청은 무시됩니다")
	assert.Equal(t, Observed, s.State())
}
