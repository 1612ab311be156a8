package mocks

import (
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

var _ contract.IDGenerator = (*MockIDGenerator)(nil)

// MockIDGenerator 테스트에서 예측 가능한 InstanceID를 반환하기 위한 Mock 구현체입니다.
type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) New() contract.InstanceID {
	args := m.Called()
	return args.Get(0).(contract.InstanceID)
}
