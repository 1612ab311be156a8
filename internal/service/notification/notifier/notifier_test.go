package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu       sync.Mutex
	received []Notification
}

func (r *recorder) handle(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.received = append(r.received, n)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []string
	for _, n := range r.received {
		messages = append(messages, n.Message)
	}
	return messages
}

func TestNotification_Validate(t *testing.T) {
	assert.NoError(t, Notification{Message: "ok"}.Validate())

	err := Notification{Message: "  "}.Validate()
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestBase_Notify(t *testing.T) {
	t.Run("대기열 용량 초과", func(t *testing.T) {
		b := NewBase("test", 1)

		require.NoError(t, b.Notify(Notification{Message: "first"}))
		assert.ErrorIs(t, b.Notify(Notification{Message: "second"}), ErrQueueFull)
	})

	t.Run("종료 후 요청 거부", func(t *testing.T) {
		b := NewBase("test", 1)
		b.Close()
		b.Close()

		assert.ErrorIs(t, b.Notify(Notification{Message: "late"}), ErrClosed)

		select {
		case <-b.Done():
		default:
			t.Fatal("Done 채널이 닫히지 않았습니다")
		}
	})

	t.Run("빈 메시지", func(t *testing.T) {
		b := NewBase("test", 1)
		assert.Error(t, b.Notify(Notification{}))
	})
}

func TestBase_Consume(t *testing.T) {
	t.Run("순서대로 발송", func(t *testing.T) {
		b := NewBase("test", 10)
		r := &recorder{}

		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			b.Consume(ctx, r.handle)
		}()

		for _, m := range []string{"a", "b", "c"} {
			require.NoError(t, b.Notify(Notification{Message: m}))
		}

		assert.Eventually(t, func() bool { return len(r.messages()) == 3 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, []string{"a", "b", "c"}, r.messages())

		cancel()
		<-stopped

		assert.ErrorIs(t, b.Notify(Notification{Message: "late"}), ErrClosed)
	})

	t.Run("종료 시 남은 알림 처리", func(t *testing.T) {
		b := NewBase("test", 10)
		r := &recorder{}

		for _, m := range []string{"a", "b"} {
			require.NoError(t, b.Notify(Notification{Message: m}))
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b.Consume(ctx, r.handle)

		assert.ElementsMatch(t, []string{"a", "b"}, r.messages())
	})

	t.Run("발송 패닉 복구", func(t *testing.T) {
		b := NewBase("test", 10)
		r := &recorder{}

		require.NoError(t, b.Notify(Notification{Message: "panic"}))
		require.NoError(t, b.Notify(Notification{Message: "ok"}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b.Consume(ctx, func(ctx context.Context, n Notification) {
			if n.Message == "panic" {
				panic("boom")
			}
			r.handle(ctx, n)
		})

		assert.Equal(t, []string{"ok"}, r.messages())
	})
}
