package postgres

import (
	"context"
	"database/sql"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/repository"
)

// CompanyPostgres is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyPostgres struct {
	db *sql.DB
}

// NewCompanyPostgres creates a new CompanyPostgres repository.
func NewCompanyPostgres(db *sql.DB) *CompanyPostgres {
	return &CompanyPostgres{db: db}
}

var _ repository.CompanyRepository = (*CompanyPostgres)(nil)

// FindByUserID fetches the company owned by the given user.
func (r *CompanyPostgres) FindByUserID(ctx context.Context, userID string) (*model.Company, error) {
	const q = `
		SELECT id, user_id, name, created_at
		FROM companies
		WHERE user_id = $1
	`
	return scanCompany(r.db.QueryRowContext(ctx, q, userID))
}

// FindByID fetches a company by its ID.
func (r *CompanyPostgres) FindByID(ctx context.Context, id string) (*model.Company, error) {
	const q = `
		SELECT id, user_id, name, created_at
		FROM companies
		WHERE id = $1
	`
	return scanCompany(r.db.QueryRowContext(ctx, q, id))
}

func scanCompany(row *sql.Row) (*model.Company, error) {
	var c model.Company
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
