package repository

import (
	"context"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
)

// DocumentRepository defines data access for document metadata records.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document row. The stored bytes must already be
	// durably written before this is called; the repository never checks that.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByCompany returns all documents owned by one company, newest first.
	ListByCompany(ctx context.Context, companyID string) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}

// CompanyRepository resolves the ownership scope for authenticated users.
type CompanyRepository interface {
	// FindByUserID returns the company owned by the given user, or
	// sql.ErrNoRows when the user has no company.
	FindByUserID(ctx context.Context, userID string) (*model.Company, error)

	// FindByID returns a company by its ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Company, error)
}
