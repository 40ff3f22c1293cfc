package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, userID, category, message string) error {
	args := m.Called(ctx, userID, category, message)
	return args.Error(0)
}
