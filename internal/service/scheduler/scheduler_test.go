package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/long-process/internal/config"
	apperrors "github.com/darkkaiser/long-process/internal/pkg/errors"
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/darkkaiser/long-process/internal/service/contract/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func everySecond() config.SchedulerConfig {
	return config.SchedulerConfig{Runnable: true, TimeSpec: "* * * * * *"}
}

func startScheduler(t *testing.T, s *Scheduler) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func TestNewService(t *testing.T) {
	submitter := &mocks.MockProcessController{}
	sender := &mocks.MockNotificationSender{}

	assert.PanicsWithValue(t, "ProcessSubmitter는 필수입니다", func() {
		NewService(everySecond(), nil, sender)
	})
	assert.PanicsWithValue(t, "NotificationSender는 필수입니다", func() {
		NewService(everySecond(), submitter, nil)
	})
	assert.NotPanics(t, func() {
		NewService(everySecond(), submitter, sender)
	})
}

func TestScheduler_SubmitsOnSchedule(t *testing.T) {
	submitted := make(chan contract.RunBy, 10)

	submitter := &mocks.MockProcessController{}
	submitter.On("Submit", mock.Anything, contract.RunByScheduler).Run(func(args mock.Arguments) {
		submitted <- args.Get(1).(contract.RunBy)
	}).Return(nil)
	sender := &mocks.MockNotificationSender{}

	s := NewService(everySecond(), submitter, sender)
	startScheduler(t, s)

	select {
	case runBy := <-submitted:
		assert.Equal(t, contract.RunByScheduler, runBy)
	case <-time.After(3 * time.Second):
		t.Fatal("스케줄에 따른 실행 요청이 없습니다")
	}

	sender.AssertNotCalled(t, "NotifyDefaultWithError", mock.Anything)
}

func TestScheduler_NotRunnable(t *testing.T) {
	submitter := &mocks.MockProcessController{}
	sender := &mocks.MockNotificationSender{}

	cfg := everySecond()
	cfg.Runnable = false

	s := NewService(cfg, submitter, sender)
	startScheduler(t, s)

	assert.Empty(t, s.cron.Entries())
}

func TestScheduler_InvalidTimeSpec(t *testing.T) {
	submitter := &mocks.MockProcessController{}
	sender := &mocks.MockNotificationSender{}
	sender.On("NotifyDefaultWithError", mock.MatchedBy(func(m string) bool {
		return strings.Contains(m, "not a cron")
	})).Return(nil).Once()

	s := NewService(config.SchedulerConfig{Runnable: true, TimeSpec: "not a cron"}, submitter, sender)
	startScheduler(t, s)

	assert.Empty(t, s.cron.Entries())
	sender.AssertExpectations(t)
}

func TestScheduler_Submit(t *testing.T) {
	tests := []struct {
		name        string
		submitErr   error
		expectAlert bool
	}{
		{"성공", nil, false},
		{"이미 실행 중", apperrors.New(apperrors.Conflict, "이미 실행 중"), false},
		{"서비스 중지", apperrors.New(apperrors.Unavailable, "중지됨"), true},
		{"알 수 없는 오류", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &mocks.MockProcessController{}
			submitter.On("Submit", mock.Anything, contract.RunByScheduler).Return(tt.submitErr)

			sender := &mocks.MockNotificationSender{}
			if tt.expectAlert {
				sender.On("NotifyDefaultWithError", mock.Anything).Return(nil).Once()
			}

			s := NewService(everySecond(), submitter, sender)
			s.submit()

			submitter.AssertExpectations(t)
			sender.AssertExpectations(t)
			if !tt.expectAlert {
				sender.AssertNotCalled(t, "NotifyDefaultWithError", mock.Anything)
			}
		})
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	s := NewService(config.SchedulerConfig{}, &mocks.MockProcessController{}, &mocks.MockNotificationSender{})
	startScheduler(t, s)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	assert.NoError(t, s.Start(context.Background(), wg))
	wg.Wait()
}

func TestScheduler_Stop(t *testing.T) {
	s := NewService(config.SchedulerConfig{}, &mocks.MockProcessController{}, &mocks.MockNotificationSender{})

	// 시작 전 Stop은 아무것도 하지 않는다.
	s.Stop()

	startScheduler(t, s)
	s.Stop()
	s.Stop()

	assert.False(t, s.running)
	assert.Nil(t, s.cron)
}
