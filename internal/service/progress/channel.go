// Package progress 작업 고루틴에서 관찰자에게 진행률을 전달하는 단일 슬롯 채널을 제공합니다.
package progress

import (
	"sync"

	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "progress"

const (
	// Min 진행률의 하한입니다.
	Min = 0

	// Max 진행률의 상한입니다.
	Max = 100
)

// Channel 최신 값 하나만 보관하는 진행률 전달 채널입니다.
//
// Report는 관찰자를 기다리지 않고 즉시 반환합니다. 관찰자는 전용 고루틴 하나에서만 호출되므로
// 호출이 서로 겹치지 않고 보고 순서대로 전달됩니다. 관찰자가 처리하는 동안 여러 값이 보고되면
// 마지막 값만 전달됩니다.
type Channel struct {
	mu       sync.Mutex
	observer func(int)
	pending  int
	hasValue bool
	closed   bool

	wakeC chan struct{}
	doneC chan struct{}
}

// NewChannel 전달 고루틴을 시작한 Channel을 반환합니다. 사용이 끝나면 Close를 호출해야 합니다.
func NewChannel() *Channel {
	c := &Channel{
		wakeC: make(chan struct{}, 1),
		doneC: make(chan struct{}),
	}

	go c.deliverLoop()

	return c
}

// Subscribe 관찰자를 등록합니다. 관찰자는 하나뿐이며 다시 호출하면 이전 관찰자를 대체합니다.
func (c *Channel) Subscribe(observer func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observer = observer
}

// Report 진행률 v를 보고합니다.
//
// 범위(0~100)를 벗어난 값은 가장 가까운 경계값으로 보정되어 전달됩니다.
// Close 이후의 보고는 버려지며 false를 반환합니다.
func (c *Channel) Report(v int) bool {
	if clamped := Clamp(v); clamped != v {
		applog.WithComponentAndFields(component, applog.Fields{
			"value":   v,
			"clamped": clamped,
		}).Warn("범위를 벗어난 진행률이 보고되어 보정하였습니다")

		v = clamped
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	c.pending = v
	c.hasValue = true

	select {
	case c.wakeC <- struct{}{}:
	default:
	}

	return true
}

// Close 새 보고를 막고, 아직 전달되지 않은 값을 마저 전달한 뒤 전달 고루틴이 끝날 때까지 기다립니다.
// 여러 번 호출해도 안전합니다. 관찰자 안에서 호출하면 교착 상태가 됩니다.
func (c *Channel) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.wakeC)
	}
	c.mu.Unlock()

	<-c.doneC
}

func (c *Channel) deliverLoop() {
	defer close(c.doneC)

	for range c.wakeC {
		c.deliver()
	}

	// wakeC가 닫히기 직전에 보고된 값
	c.deliver()
}

func (c *Channel) deliver() {
	c.mu.Lock()
	if !c.hasValue {
		c.mu.Unlock()
		return
	}
	v, observer := c.pending, c.observer
	c.hasValue = false
	c.mu.Unlock()

	if observer == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"value": v,
				"panic": r,
			}).Error("진행률 관찰자 실행 중 패닉이 발생하였습니다")
		}
	}()

	observer(v)
}

// Clamp v를 진행률 범위(0~100)로 보정합니다.
func Clamp(v int) int {
	return min(max(v, Min), Max)
}
