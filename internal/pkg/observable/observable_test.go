package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== Property =====

// TestProperty_SetNotifiesOnlyOnChange 값이 바뀔 때만 알림이 발생하는지 검증합니다.
func TestProperty_SetNotifiesOnlyOnChange(t *testing.T) {
	t.Parallel()

	p := NewProperty(0)
	var got []int
	p.Subscribe(func(v int) { got = append(got, v) })

	assert.True(t, p.Set(10))
	assert.False(t, p.Set(10))
	assert.True(t, p.Set(20))
	assert.True(t, p.Set(0))
	assert.False(t, p.Set(0))

	assert.Equal(t, []int{10, 20, 0}, got)
	assert.Equal(t, 0, p.Get())
}

func TestProperty_Unsubscribe(t *testing.T) {
	t.Parallel()

	p := NewProperty("a")
	count := 0
	unsubscribe := p.Subscribe(func(string) { count++ })

	p.Set("b")
	unsubscribe()
	unsubscribe()
	p.Set("c")

	assert.Equal(t, 1, count)
	assert.Equal(t, "c", p.Get())
}

// ===== Observers =====

func TestObservers_NotifyInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	var o Observers[int]
	var order []string

	o.Subscribe(func(int) { order = append(order, "first") })
	o.Subscribe(func(int) { order = append(order, "second") })
	o.Subscribe(nil)

	o.Notify(1)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, o.Len())
}

// TestObservers_PanicDoesNotStopOthers 관찰자 패닉이 나머지 관찰자 호출을 막지 않는지 검증합니다.
func TestObservers_PanicDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	var o Observers[int]
	called := false

	o.Subscribe(func(int) { panic("boom") })
	o.Subscribe(func(int) { called = true })

	require.NotPanics(t, func() { o.Notify(1) })
	assert.True(t, called)
}

// TestObservers_NotifySerialized 동시에 호출된 Notify의 관찰자 실행이 겹치지 않는지 검증합니다.
func TestObservers_NotifySerialized(t *testing.T) {
	t.Parallel()

	var o Observers[int]
	var mu sync.Mutex
	active, maxActive := 0, 0

	o.Subscribe(func(int) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()

		mu.Lock()
		active--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			o.Notify(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}
