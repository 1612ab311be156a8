package mocks

import (
	"context"

	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

var _ contract.ProcessController = (*MockProcessController)(nil)

// MockProcessController contract.ProcessController의 Mock 구현체입니다.
type MockProcessController struct {
	mock.Mock
}

func (m *MockProcessController) Submit(ctx context.Context, runBy contract.RunBy) error {
	args := m.Called(ctx, runBy)
	return args.Error(0)
}

func (m *MockProcessController) Cancel(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProcessController) Status() contract.ProcessStatus {
	args := m.Called()
	return args.Get(0).(contract.ProcessStatus)
}

// Watch 호출을 기록하고 아무 동작도 하지 않는 해제 함수를 반환합니다.
func (m *MockProcessController) Watch(fn func(contract.ProcessStatus)) func() {
	m.Called(fn)
	return func() {}
}
