package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/upload"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) UploadBatch(ctx context.Context, company *model.Company, userID string, batch *upload.Batch) ([]model.Document, error) {
	args := m.Called(ctx, company, userID, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, companyID string) ([]model.Document, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, company *model.Company, id string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, company, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var doc *model.Document
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.Document)
	}
	return rc, doc, args.Error(2)
}

func (m *MockDocumentService) Delete(ctx context.Context, company *model.Company, userID string, id string) (*model.Document, error) {
	args := m.Called(ctx, company, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
