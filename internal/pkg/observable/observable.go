// Package observable 값 변경을 구독자에게 알리는 관찰 가능한 속성을 제공합니다.
package observable

import (
	"sync"

	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "observable"

// Observers 구독 순서대로 호출되는 관찰자 목록입니다.
//
// Notify 호출들은 서로 직렬화되므로, 한 Observers에 대한 알림이 동시에 여러 개 진행되지 않습니다.
// 관찰자 내부에서 같은 Observers의 Notify를 호출하면 교착 상태가 됩니다.
type Observers[T any] struct {
	notifyMu sync.Mutex

	mu     sync.Mutex
	nextID uint64
	items  []observer[T]
}

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe fn을 등록하고 등록 해제 함수를 반환합니다. 해제 함수는 여러 번 호출해도 안전합니다.
func (o *Observers[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.items = append(o.items, observer[T]{id: id, fn: fn})
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *Observers[T]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, it := range o.items {
		if it.id == id {
			o.items = append(o.items[:i:i], o.items[i+1:]...)
			return
		}
	}
}

// Len 등록된 관찰자 수를 반환합니다.
func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.items)
}

// Notify 등록된 모든 관찰자에게 v를 전달합니다.
// 관찰자에서 발생한 패닉은 로그로 남기고 다음 관찰자로 진행합니다.
func (o *Observers[T]) Notify(v T) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	items := make([]observer[T], len(o.items))
	copy(items, o.items)
	o.mu.Unlock()

	for _, it := range items {
		call(it.fn, v)
	}
}

func call[T any](fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("관찰자 실행 중 패닉이 발생하였습니다")
		}
	}()

	fn(v)
}

// Property 값이 실제로 바뀌었을 때만 구독자에게 알리는 속성입니다.
type Property[T comparable] struct {
	mu        sync.RWMutex
	value     T
	observers Observers[T]
}

// NewProperty initial 값을 가진 Property를 생성합니다.
func NewProperty[T comparable](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

// Get 현재 값을 반환합니다.
func (p *Property[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.value
}

// Set 값을 v로 바꾸고, 이전 값과 다르면 구독자에게 알린 뒤 true를 반환합니다.
// 알림이 끝난 뒤에 반환되므로 직렬화된 Set 호출의 알림 순서는 호출 순서와 같습니다.
func (p *Property[T]) Set(v T) bool {
	p.mu.Lock()
	if p.value == v {
		p.mu.Unlock()
		return false
	}
	p.value = v
	p.mu.Unlock()

	p.observers.Notify(v)

	return true
}

// Subscribe 값 변경 알림을 구독합니다.
func (p *Property[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return p.observers.Subscribe(fn)
}
