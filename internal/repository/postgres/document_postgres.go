package postgres

import (
	"context"
	"database/sql"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, company_id, name, content_type, size, storage_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, name, content_type, size, storage_path, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.CompanyID,
		doc.Name,
		doc.ContentType,
		doc.Size,
		doc.StoragePath,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.CompanyID,
		&out.Name,
		&out.ContentType,
		&out.Size,
		&out.StoragePath,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, company_id, name, content_type, size, storage_path, created_at
		FROM documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.CompanyID,
		&d.Name,
		&d.ContentType,
		&d.Size,
		&d.StoragePath,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByCompany returns every document owned by the company, newest first.
func (r *DocumentPostgres) ListByCompany(ctx context.Context, companyID string) ([]model.Document, error) {
	const q = `
		SELECT id, company_id, name, content_type, size, storage_path, created_at
		FROM documents
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.CompanyID,
			&d.Name,
			&d.ContentType,
			&d.Size,
			&d.StoragePath,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
