package runner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/contract/mocks"
	"github.com/darkkaiser/long-process/internal/service/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testInstanceID = contract.InstanceID("test-instance")

// ===== 테스트 헬퍼 =====

type notification struct {
	message string
	isError bool
}

type fixture struct {
	svc           *Service
	notifications chan notification

	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

func newTestService(t *testing.T, opts task.Options) *Service {
	t.Helper()

	cfg := config.Default()

	idGenerator := &mocks.MockIDGenerator{}
	idGenerator.On("New").Return(testInstanceID)

	return newService(&cfg, idGenerator, opts)
}

func setupRunning(t *testing.T, opts task.Options) *fixture {
	t.Helper()

	f := &fixture{
		svc:           newTestService(t, opts),
		notifications: make(chan notification, 32),
		wg:            &sync.WaitGroup{},
	}

	sender := &mocks.MockNotificationSender{}
	sender.On("NotifyDefault", mock.Anything).Run(func(args mock.Arguments) {
		f.notifications <- notification{message: args.String(0)}
	}).Return(nil).Maybe()
	sender.On("NotifyDefaultWithError", mock.Anything).Run(func(args mock.Arguments) {
		f.notifications <- notification{message: args.String(0), isError: true}
	}).Return(nil).Maybe()
	f.svc.SetNotificationSender(sender)

	var ctx context.Context
	ctx, f.cancel = context.WithCancel(context.Background())

	f.wg.Add(1)
	require.NoError(t, f.svc.Start(ctx, f.wg))

	t.Cleanup(f.stop)

	return f
}

func (f *fixture) stop() {
	f.cancel()
	f.wg.Wait()
}

func (f *fixture) nextNotification(t *testing.T) notification {
	t.Helper()

	select {
	case n := <-f.notifications:
		return n
	case <-time.After(5 * time.Second):
		t.Fatal("알림이 제한 시간 내에 발송되지 않았습니다")
		return notification{}
	}
}

// gatedWork 첫 단계에 진입한 것을 알리고 gate가 닫힐 때까지 각 단계를 멈춰 둡니다.
func gatedWork() (work task.StepFunc, entered <-chan int, gate chan struct{}) {
	enteredC := make(chan int, 128)
	gate = make(chan struct{})

	return func(step int) {
		enteredC <- step
		<-gate
	}, enteredC, gate
}

func waitEntered(t *testing.T, entered <-chan int) int {
	t.Helper()

	select {
	case step := <-entered:
		return step
	case <-time.After(5 * time.Second):
		t.Fatal("작업 단계가 시작되지 않았습니다")
		return 0
	}
}

// ===== 생성 및 시작 =====

func TestNewService(t *testing.T) {
	t.Run("IDGenerator가 nil이면 패닉", func(t *testing.T) {
		cfg := config.Default()
		assert.Panics(t, func() { NewService(&cfg, nil) })
	})

	t.Run("AppConfig가 nil이면 패닉", func(t *testing.T) {
		assert.Panics(t, func() { NewService(nil, &mocks.MockIDGenerator{}) })
	})

	t.Run("설정의 단계 수를 사용", func(t *testing.T) {
		cfg := config.Default()
		cfg.Process.Steps = 4

		svc := NewService(&cfg, &mocks.MockIDGenerator{})

		status := svc.Status()
		assert.Equal(t, 4, status.Steps)
		assert.Equal(t, "Idle", status.State)
		assert.True(t, status.CanStart)
		assert.False(t, status.CanCancel)
		assert.True(t, status.InstanceID.IsEmpty())
	})
}

func TestService_Start(t *testing.T) {
	t.Run("NotificationSender 미설정", func(t *testing.T) {
		svc := newTestService(t, task.Options{Steps: 1, Work: func(int) {}})

		wg := &sync.WaitGroup{}
		wg.Add(1)

		err := svc.Start(context.Background(), wg)
		assert.ErrorIs(t, err, ErrNotificationSenderNotInitialized)

		// Start가 실패해도 WaitGroup은 해제되어야 한다.
		wg.Wait()
	})

	t.Run("중복 시작", func(t *testing.T) {
		f := setupRunning(t, task.Options{Steps: 1, Work: func(int) {}})

		f.wg.Add(1)
		assert.NoError(t, f.svc.Start(context.Background(), f.wg))
	})
}

func TestService_NotRunning(t *testing.T) {
	svc := newTestService(t, task.Options{Steps: 1, Work: func(int) {}})

	assert.ErrorIs(t, svc.Submit(context.Background(), contract.RunByUser), ErrServiceNotRunning)
	assert.ErrorIs(t, svc.Cancel(context.Background()), ErrServiceNotRunning)
	assert.Equal(t, task.Idle, svc.task.State())
}

// ===== 시작 요청 =====

func TestService_Submit_Completes(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 3, Work: func(int) {}})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByAPI))

	n := f.nextNotification(t)
	assert.False(t, n.isError)
	assert.Contains(t, n.message, msgProcessCompleted)
	assert.Contains(t, n.message, string(testInstanceID))
	assert.Contains(t, n.message, contract.RunByAPI.String())

	status := f.svc.Status()
	assert.Equal(t, "Completed", status.State)
	assert.Equal(t, 0, status.Progress)
	assert.Equal(t, testInstanceID, status.InstanceID)
	assert.Equal(t, contract.RunByAPI, status.RunBy)
	assert.False(t, status.StartedAt.IsZero())
	assert.True(t, status.CanStart)
	assert.False(t, status.CancelRequested)
}

func TestService_Submit_InvalidRunBy(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 1, Work: func(int) {}})

	err := f.svc.Submit(context.Background(), contract.RunByUnknown)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Equal(t, task.Idle, f.svc.task.State())
}

func TestService_Submit_AlreadyRunning(t *testing.T) {
	work, entered, gate := gatedWork()
	f := setupRunning(t, task.Options{Steps: 2, Work: work})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	waitEntered(t, entered)

	err := f.svc.Submit(context.Background(), contract.RunByScheduler)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	n := f.nextNotification(t)
	assert.Contains(t, n.message, "이미 실행 중")

	// 거부된 요청은 현재 실행 정보를 바꾸지 않는다.
	assert.Equal(t, contract.RunByUser, f.svc.Status().RunBy)

	close(gate)

	n = f.nextNotification(t)
	assert.Contains(t, n.message, msgProcessCompleted)
}

func TestService_Submit_ContextCancelled(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 1, Work: func(int) {}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 요청 전달과 취소된 컨텍스트가 경합하므로 성공하거나 Timeout 에러여야 한다.
	if err := f.svc.Submit(ctx, contract.RunByUser); err != nil {
		assert.True(t, apperrors.Is(err, apperrors.Timeout))
	}
}

// ===== 취소 요청 =====

func TestService_Cancel(t *testing.T) {
	work, entered, gate := gatedWork()
	f := setupRunning(t, task.Options{Steps: 10, Work: work})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	waitEntered(t, entered)

	require.NoError(t, f.svc.Cancel(context.Background()))
	assert.True(t, f.svc.Status().CancelRequested)
	assert.True(t, f.svc.Status().CanCancel)

	// 이미 취소가 요청된 경우에도 성공으로 처리한다.
	require.NoError(t, f.svc.Cancel(context.Background()))

	close(gate)

	n := f.nextNotification(t)
	assert.False(t, n.isError)
	assert.Contains(t, n.message, msgProcessCancelled)

	status := f.svc.Status()
	assert.Equal(t, "Cancelled", status.State)
	assert.Equal(t, 0, status.Progress)
	assert.False(t, status.CancelRequested)
	assert.True(t, status.CanStart)
}

func TestService_Cancel_NothingRunning(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 1, Work: func(int) {}})

	err := f.svc.Cancel(context.Background())
	assert.ErrorIs(t, err, ErrNotRunning)

	n := f.nextNotification(t)
	assert.True(t, n.isError)
}

func TestService_RestartAfterCancel(t *testing.T) {
	work, entered, gate := gatedWork()
	f := setupRunning(t, task.Options{Steps: 2, Work: work})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	waitEntered(t, entered)
	require.NoError(t, f.svc.Cancel(context.Background()))
	close(gate)
	assert.Contains(t, f.nextNotification(t).message, msgProcessCancelled)

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByAPI))
	assert.Contains(t, f.nextNotification(t).message, msgProcessCompleted)
	assert.Equal(t, uint64(2), f.svc.task.RunCount())
	assert.Equal(t, contract.RunByAPI, f.svc.Status().RunBy)
}

func TestService_StepPanic(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 3, Work: func(step int) {
		if step == 2 {
			panic("boom")
		}
	}})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))

	n := f.nextNotification(t)
	assert.True(t, n.isError)
	assert.Contains(t, n.message, msgProcessFailed)
	assert.Contains(t, n.message, "boom")

	assert.Equal(t, "Cancelled", f.svc.Status().State)
}

// ===== 상태 구독 =====

func TestService_Watch(t *testing.T) {
	f := setupRunning(t, task.Options{Steps: 2, Work: func(int) {}})

	var mu sync.Mutex
	var statuses []contract.ProcessStatus
	unsubscribe := f.svc.Watch(func(s contract.ProcessStatus) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, s)
	})
	defer unsubscribe()

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	f.nextNotification(t)

	mu.Lock()
	defer mu.Unlock()

	require.NotEmpty(t, statuses)
	assert.Equal(t, "Running", statuses[0].State)
	assert.Equal(t, testInstanceID, statuses[0].InstanceID)

	last := statuses[len(statuses)-1]
	assert.Equal(t, "Completed", last.State)
	assert.Equal(t, 0, last.Progress)

	for _, s := range statuses[1 : len(statuses)-1] {
		assert.Equal(t, "Running", s.State)
	}
}

// ===== 서비스 종료 =====

func TestService_Stop_CancelsRunningProcess(t *testing.T) {
	work, entered, gate := gatedWork()
	f := setupRunning(t, task.Options{Steps: 10, Work: work})

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	waitEntered(t, entered)

	f.cancel()
	require.Eventually(t, f.svc.task.CancelRequested, 5*time.Second, 5*time.Millisecond)
	close(gate)
	f.wg.Wait()

	assert.Equal(t, task.Cancelled, f.svc.task.State())
	assert.Contains(t, f.nextNotification(t).message, msgProcessCancelled)

	assert.ErrorIs(t, f.svc.Submit(context.Background(), contract.RunByUser), ErrServiceNotRunning)
}

func TestService_Stop_Timeout(t *testing.T) {
	work, entered, gate := gatedWork()
	f := setupRunning(t, task.Options{Steps: 2, Work: work})
	f.svc.stopTimeout = 50 * time.Millisecond

	require.NoError(t, f.svc.Submit(context.Background(), contract.RunByUser))
	waitEntered(t, entered)

	f.stop()

	// 루프는 시간 초과로 먼저 끝나고, 작업은 단계가 풀린 뒤 스스로 종료된다.
	assert.Equal(t, task.Running, f.svc.task.State())

	close(gate)
	select {
	case <-f.svc.task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("작업이 종료되지 않았습니다")
	}
	assert.Equal(t, task.Cancelled, f.svc.task.State())
}

// ===== runInfo =====

func TestRunInfo_Elapsed(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		info runInfo
		want time.Duration
	}{
		{"시작 전", runInfo{}, 0},
		{"실행 중", runInfo{startedAt: now.Add(-3 * time.Second)}, 3 * time.Second},
		{"종료됨", runInfo{startedAt: now.Add(-10 * time.Second), finishedAt: now.Add(-4 * time.Second)}, 6 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.elapsed(now))
		})
	}
}
