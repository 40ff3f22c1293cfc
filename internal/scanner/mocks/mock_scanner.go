package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/scanner"
)

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) ScanBatch(ctx context.Context, files []scanner.File) ([]scanner.Verdict, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scanner.Verdict), args.Error(1)
}
