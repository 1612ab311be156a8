package mocks

import (
	"github.com/darkkaiser/long-process/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

var _ contract.NotificationSender = (*MockNotificationSender)(nil)

// MockNotificationSender contract.NotificationSender의 Mock 구현체입니다.
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyDefault(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyDefaultWithError(message string) error {
	args := m.Called(message)
	return args.Error(0)
}
