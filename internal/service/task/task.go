// Package task 취소 가능한, 진행률을 보고하는 장기 실행 작업을 제공합니다.
//
// Task는 한 번에 하나의 실행만 허용합니다. 실행마다 새 CancellationSignal과 progress.Channel을 만들고,
// 작업 고루틴은 각 단계를 시작하기 전에 취소 신호를 확인합니다. 실행이 끝나면(완료, 취소, 패닉 모두)
// 하나의 정리 루틴이 진행률을 0으로 되돌리고 종료 상태를 알립니다.
//
// 관찰자가 보는 한 실행의 이벤트 순서는 항상 다음과 같습니다.
//
//	상태 Running -> 진행률 p1 < p2 < ... -> 진행률 0 -> 상태 Completed | Cancelled
package task

import (
	"sync"
	"time"

	"github.com/darkkaiser/long-process/internal/pkg/observable"
	"github.com/darkkaiser/long-process/internal/service/progress"
	applog "github.com/darkkaiser/long-process/pkg/log"
)

const component = "task"

const (
	// DefaultSteps 기본 단계 수
	DefaultSteps = 10

	// DefaultStepDelay 기본 단계당 작업 시간
	DefaultStepDelay = 500 * time.Millisecond
)

// StepFunc 단계 하나의 작업입니다. step은 1부터 시작합니다.
// 단계 작업은 중간에 중단되지 않으며, 취소 신호는 단계 사이에서만 확인됩니다.
type StepFunc func(step int)

// Options Task 구성입니다. 0 이하 값 필드는 기본값으로 대체됩니다.
type Options struct {
	// Steps 단계 수. 진행률이 단계마다 증가하도록 progress.Max를 넘지 않게 제한됩니다.
	Steps     int
	StepDelay time.Duration

	// Work 지정하지 않으면 StepDelay만큼 대기합니다.
	Work StepFunc
}

// StateChange 상태 변경 알림입니다.
type StateChange struct {
	Run   uint64 // 실행 순번 (1부터 증가)
	State State

	// Err 작업 단계의 패닉으로 중단된 경우에만 설정됩니다.
	Err error
}

type run struct {
	seq      uint64
	signal   *CancellationSignal
	progress *progress.Channel
	done     chan struct{}
}

// Task 취소 가능한 장기 실행 작업입니다.
type Task struct {
	steps int
	work  StepFunc

	mu      sync.Mutex
	state   State
	current *run
	seq     uint64
	done    chan struct{}
	lastErr error

	progress *observable.Property[int]

	// 상태 알림과 상태 전이를 묶어 실행 간 이벤트 순서를 보장한다.
	notifyMu       sync.Mutex
	stateObservers observable.Observers[StateChange]
}

// New 주어진 구성으로 Idle 상태의 Task를 생성합니다.
func New(opts Options) *Task {
	steps := opts.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	steps = min(steps, progress.Max)

	work := opts.Work
	if work == nil {
		delay := opts.StepDelay
		if delay <= 0 {
			delay = DefaultStepDelay
		}
		work = func(int) { time.Sleep(delay) }
	}

	done := make(chan struct{})
	close(done)

	return &Task{
		steps:    steps,
		work:     work,
		state:    Idle,
		done:     done,
		progress: observable.NewProperty(0),
	}
}

// Start 새 실행을 시작하고 즉시 반환합니다. 이미 실행 중이면 아무것도 하지 않고 false를 반환합니다.
func (t *Task) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !CanStart(t.state) {
		return false
	}

	t.seq++
	r := &run{
		seq:      t.seq,
		signal:   &CancellationSignal{},
		progress: progress.NewChannel(),
		done:     make(chan struct{}),
	}
	r.progress.Subscribe(func(v int) { t.progress.Set(v) })

	t.current = r
	t.state = Running
	t.done = r.done
	t.lastErr = nil

	go t.execute(r)

	return true
}

// RequestCancel 실행 중인 작업에 취소를 요청합니다.
// 실행 중이 아니거나 이미 요청된 경우 아무것도 하지 않고 false를 반환합니다.
func (t *Task) RequestCancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !CanCancel(t.state) {
		return false
	}

	return t.current.signal.Request()
}

// State 현재 상태를 반환합니다.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// CanStart 지금 Start가 새 실행을 시작할 수 있는지 반환합니다.
func (t *Task) CanStart() bool {
	return CanStart(t.State())
}

// CanCancel 지금 RequestCancel이 의미가 있는지 반환합니다.
func (t *Task) CanCancel() bool {
	return CanCancel(t.State())
}

// CancelRequested 실행 중인 작업에 취소가 요청되었는지 반환합니다.
func (t *Task) CancelRequested() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current != nil && t.current.signal.State() != NotRequested
}

// Err 마지막 실행이 패닉으로 중단되었다면 그 에러를 반환합니다.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lastErr
}

// RunCount 지금까지 시작된 실행 수를 반환합니다. 가장 최근 실행의 StateChange.Run과 같습니다.
func (t *Task) RunCount() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seq
}

// Progress 마지막으로 관찰자에게 전달된 진행률을 반환합니다.
func (t *Task) Progress() int {
	return t.progress.Get()
}

// Steps 한 실행의 단계 수를 반환합니다.
func (t *Task) Steps() int {
	return t.steps
}

// Done 현재(또는 마지막) 실행의 모든 알림이 끝나면 닫히는 채널을 반환합니다.
// 한 번도 시작되지 않았다면 이미 닫힌 채널입니다.
func (t *Task) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done
}

// OnProgress 진행률 변경 알림을 구독합니다. 같은 값이 연속되면 한 번만 알립니다.
func (t *Task) OnProgress(fn func(int)) (unsubscribe func()) {
	return t.progress.Subscribe(fn)
}

// OnStateChanged 상태 변경 알림을 구독합니다.
func (t *Task) OnStateChanged(fn func(StateChange)) (unsubscribe func()) {
	return t.stateObservers.Subscribe(fn)
}

func (t *Task) execute(r *run) {
	outcome := Cancelled
	var err error
	step := 0

	defer func() {
		if v := recover(); v != nil {
			err = newStepPanicError(step, v)
			outcome = Cancelled

			applog.WithComponentAndFields(component, applog.Fields{
				"run":   r.seq,
				"step":  step,
				"error": err,
			}).Error("작업 단계 실행 중 패닉이 발생하여 작업을 중단합니다")
		}

		t.finish(r, outcome, err)
	}()

	t.notifyMu.Lock()
	t.stateObservers.Notify(StateChange{Run: r.seq, State: Running})
	t.notifyMu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{
		"run":   r.seq,
		"steps": t.steps,
	}).Debug("작업 실행 시작")

	for step = 1; step <= t.steps; step++ {
		if r.signal.Observe() {
			applog.WithComponentAndFields(component, applog.Fields{
				"run":  r.seq,
				"step": step,
			}).Debug("취소 요청을 확인하여 작업을 중단합니다")
			return
		}

		t.work(step)
		r.progress.Report(step * progress.Max / t.steps)
	}

	outcome = Completed
}

// finish 모든 종료 경로가 거치는 정리 루틴입니다.
func (t *Task) finish(r *run, outcome State, err error) {
	// 실행 채널을 닫아 남은 보고를 모두 전달한다. 이후의 보고는 버려진다.
	r.progress.Close()
	t.progress.Set(0)

	t.notifyMu.Lock()

	t.mu.Lock()
	t.state = outcome
	t.current = nil
	t.lastErr = err
	t.mu.Unlock()

	t.stateObservers.Notify(StateChange{Run: r.seq, State: outcome, Err: err})

	t.notifyMu.Unlock()

	close(r.done)

	applog.WithComponentAndFields(component, applog.Fields{
		"run":   r.seq,
		"state": outcome,
	}).Debug("작업 실행 종료")
}
